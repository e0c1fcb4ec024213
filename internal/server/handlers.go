package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ironsheep/segment-tools-mcp/internal/imaging"
	"github.com/ironsheep/segment-tools-mcp/internal/segment"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "segment_classify").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// JSON-RPC error codes for tool failures.
const (
	codeInvalidParams          = -32602
	codeToolFailed             = -32000
	codeNotFound               = -32001
	codeInsufficientComponents = -32002
)

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool errors map to JSON-RPC codes through toolErrorCode.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		code, message := toolErrorCode(err)
		return s.errorResponse(req.ID, code, message, err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// toolErrorCode maps a tool error to a JSON-RPC code and message.
func toolErrorCode(err error) (int, string) {
	switch {
	case errors.Is(err, segment.ErrInvalidArgument):
		return codeInvalidParams, "Invalid params"
	case errors.Is(err, segment.ErrNotFound):
		return codeNotFound, "Image not found"
	case errors.Is(err, segment.ErrInsufficientComponents):
		return codeInsufficientComponents, "Insufficient components"
	default:
		return codeToolFailed, "Tool execution failed"
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies configured defaults for omitted parameters
//  3. Runs the imaging helper or pipeline operation
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Segmentation
	case "segment_classify":
		return s.handleSegmentClassify(args)
	case "segment_label":
		return s.handleSegmentLabel(args)
	case "segment_rank_top2":
		return s.handleSegmentRankTop2(args)
	case "segment_run":
		return s.handleSegmentRun(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments. Missing arguments decode as empty.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(bytes.TrimSpace(args)) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", segment.ErrInvalidArgument, err)
	}
	return nil
}

// parseNumber reads a numeric argument given either as a JSON number or as a
// numeric string. Absent or null values yield def.
func parseNumber(name string, raw json.RawMessage, def float64) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return def, nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f, nil
		}
	}

	return 0, fmt.Errorf("%w: %s must be a number, got %s", segment.ErrInvalidArgument, name, raw)
}

// parseInt is parseNumber restricted to whole numbers.
func parseInt(name string, raw json.RawMessage, def int) (int, error) {
	f, err := parseNumber(name, raw, float64(def))
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %s must be a whole number, got %v", segment.ErrInvalidArgument, name, f)
	}
	return int(f), nil
}

// parseModeArg reads an optional mode name, defaulting to red.
func parseModeArg(s string) (segment.Mode, error) {
	if s == "" {
		return segment.ModeRed, nil
	}
	return segment.ParseMode(s)
}

// thresholds reads optional upper/lower arguments over configured defaults.
func (s *Server) thresholds(upperRaw, lowerRaw json.RawMessage) (upper, lower float64, err error) {
	if upper, err = parseNumber("upper", upperRaw, s.cfg.Thresholds.Upper); err != nil {
		return 0, 0, err
	}
	if lower, err = parseNumber("lower", lowerRaw, s.cfg.Thresholds.Lower); err != nil {
		return 0, 0, err
	}
	return upper, lower, nil
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", segment.ErrInvalidArgument)
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	Path  string          `json:"path"`
	X     json.RawMessage `json:"x"`
	Y     json.RawMessage `json:"y"`
	Upper json.RawMessage `json:"upper"`
	Lower json.RawMessage `json:"lower"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		a.Path = s.cfg.Input
	}

	x, err := parseInt("x", a.X, 0)
	if err != nil {
		return nil, err
	}
	y, err := parseInt("y", a.Y, 0)
	if err != nil {
		return nil, err
	}
	upper, lower, err := s.thresholds(a.Upper, a.Lower)
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, x, y, upper, lower)
}

// === Segmentation Handlers ===

type segmentClassifyArgs struct {
	Path   string          `json:"path"`
	Mode   string          `json:"mode"`
	Upper  json.RawMessage `json:"upper"`
	Lower  json.RawMessage `json:"lower"`
	Output string          `json:"output"`
}

func (s *Server) handleSegmentClassify(args json.RawMessage) (interface{}, error) {
	var a segmentClassifyArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	mode, err := parseModeArg(a.Mode)
	if err != nil {
		return nil, err
	}
	upper, lower, err := s.thresholds(a.Upper, a.Lower)
	if err != nil {
		return nil, err
	}

	if a.Path == "" {
		a.Path = s.cfg.Input
	}
	if a.Output == "" {
		a.Output = s.cfg.Output.ClassifiedPath(mode)
	}
	return s.pipe.ClassifyTo(a.Path, a.Output, upper, lower, mode)
}

type segmentLabelArgs struct {
	Path   string          `json:"path"`
	Cutoff json.RawMessage `json:"cutoff"`
	Report string          `json:"report"`
}

type segmentLabelResult struct {
	Path       string              `json:"path"`
	Components []segment.Component `json:"components"`
	Regions    []segment.Region    `json:"regions"`
	Total      int                 `json:"total"`
	Report     string              `json:"report"`
}

func (s *Server) handleSegmentLabel(args json.RawMessage) (interface{}, error) {
	var a segmentLabelArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	cutoff, err := parseInt("cutoff", a.Cutoff, s.cfg.Thresholds.Cutoff)
	if err != nil {
		return nil, err
	}
	if a.Path == "" {
		a.Path = s.cfg.Output.ClassifiedPath(segment.ModeRed)
	}
	if a.Report == "" {
		a.Report = s.cfg.Output.Path(s.cfg.Output.DiscoveryReport)
	}

	labeling, err := s.pipe.LabelTo(a.Path, a.Report, cutoff)
	if err != nil {
		return nil, err
	}
	return &segmentLabelResult{
		Path:       a.Path,
		Components: labeling.Components,
		Regions:    segment.Regions(labeling.Grid),
		Total:      labeling.Total(),
		Report:     a.Report,
	}, nil
}

type segmentRankTop2Args struct {
	Path         string          `json:"path"`
	Cutoff       json.RawMessage `json:"cutoff"`
	Report       string          `json:"report"`
	RankedReport string          `json:"ranked_report"`
	Output       string          `json:"output"`
}

func (s *Server) handleSegmentRankTop2(args json.RawMessage) (interface{}, error) {
	var a segmentRankTop2Args
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	cutoff, err := parseInt("cutoff", a.Cutoff, s.cfg.Thresholds.Cutoff)
	if err != nil {
		return nil, err
	}
	o := s.cfg.Output
	if a.Path == "" {
		a.Path = o.ClassifiedPath(segment.ModeRed)
	}
	if a.Report == "" {
		a.Report = o.Path(o.DiscoveryReport)
	}
	if a.RankedReport == "" {
		a.RankedReport = o.Path(o.RankedReport)
	}
	if a.Output == "" {
		a.Output = o.Path(o.TopTwo)
	}

	labeling, err := s.pipe.LabelTo(a.Path, a.Report, cutoff)
	if err != nil {
		return nil, err
	}
	return s.pipe.RankAndExtractTop2To(labeling.Grid, a.RankedReport, a.Output)
}

type segmentRunArgs struct {
	Mode string `json:"mode"`
}

func (s *Server) handleSegmentRun(args json.RawMessage) (interface{}, error) {
	var a segmentRunArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	mode, err := parseModeArg(a.Mode)
	if err != nil {
		return nil, err
	}
	// A full run reads every input fresh from disk.
	s.cache.Clear()
	return s.pipe.Run(mode)
}
