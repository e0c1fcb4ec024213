package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// Shared schema fragments. Numeric thresholds also accept numeric strings.
var (
	upperProperty = map[string]interface{}{
		"type":        []string{"number", "string"},
		"description": "Upper channel threshold on a 0-255 scale. Defaults to the configured value (100)",
	}
	lowerProperty = map[string]interface{}{
		"type":        []string{"number", "string"},
		"description": "Lower channel threshold on a 0-255 scale. Defaults to the configured value (50)",
	}
	cutoffProperty = map[string]interface{}{
		"type":        []string{"integer", "string"},
		"description": "Grayscale cutoff (0-255); pixels strictly above it are foreground. Defaults to the configured value (200)",
	}
	modeProperty = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"red", "cyan"},
		"description": "Which colour counts as subject. Default red",
		"default":     "red",
	}
)

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, colour model and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact colour at a pixel and whether it is a red or cyan subject pixel under the given thresholds. Useful for tuning thresholds before classifying.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file. Defaults to the configured input",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
					"upper": upperProperty,
					"lower": lowerProperty,
				},
				"required": []string{"x", "y"},
			},
		},

		// Segmentation
		{
			Name:        "segment_classify",
			Description: "Threshold a colour image into a black and white subject mask (red or cyan) and save it. Returns the subject pixel count and output path.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Colour image to classify. Defaults to the configured input",
					},
					"mode":  modeProperty,
					"upper": upperProperty,
					"lower": lowerProperty,
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Where to save the mask. Defaults to map-red-pixels.jpg or map-cyan-pixels.jpg in the output directory",
					},
				},
			},
		},
		{
			Name:        "segment_label",
			Description: "Find 8-connected foreground components in a grayscale image. Components are numbered in raster discovery order; writes the discovery report.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Grayscale image to label. Defaults to the red classification output",
					},
					"cutoff": cutoffProperty,
					"report": map[string]interface{}{
						"type":        "string",
						"description": "Where to write the discovery report. Defaults to cc-output-2a.txt in the output directory",
					},
				},
			},
		},
		{
			Name:        "segment_rank_top2",
			Description: "Label a grayscale image, rank its components by size (largest first) and save an image of the two largest components. Writes both the discovery report and the ranked report.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Grayscale image to label. Defaults to the red classification output",
					},
					"cutoff": cutoffProperty,
					"report": map[string]interface{}{
						"type":        "string",
						"description": "Where to write the discovery report. Defaults to cc-output-2a.txt in the output directory",
					},
					"ranked_report": map[string]interface{}{
						"type":        "string",
						"description": "Where to write the ranked report. Defaults to cc-output-2b.txt in the output directory",
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Where to save the top-2 image. Defaults to cc-top-2.jpg in the output directory",
					},
				},
			},
		},
		{
			Name:        "segment_run",
			Description: "Run classify, label and rank/extract on the configured input with configured thresholds and artifact names.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"mode": modeProperty,
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
