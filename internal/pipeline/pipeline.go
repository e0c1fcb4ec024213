// Package pipeline wires the segmentation core to its collaborators.
//
// A Pipeline runs the three caller-facing operations (classify, label,
// rank-and-extract) against an injected image source, image sink and report
// writer. The segment package stays free of I/O; everything that touches
// files goes through the interfaces below.
package pipeline

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/segment-tools-mcp/internal/config"
	"github.com/ironsheep/segment-tools-mcp/internal/segment"
)

// ImageSource loads images by path. A missing path must wrap
// segment.ErrNotFound.
type ImageSource interface {
	LoadPixels(path string) (*segment.PixelGrid, error)
	LoadGray(path string) (*image.Gray, error)
}

// ImageSink persists grayscale images.
type ImageSink interface {
	SaveGray(path string, img *image.Gray) error
}

// ReportWriter persists an ordered component list with its total.
type ReportWriter interface {
	WriteReport(path string, comps []segment.Component) error
}

// Pipeline runs segmentation operations with configured defaults.
type Pipeline struct {
	cfg     *config.Config
	source  ImageSource
	sink    ImageSink
	reports ReportWriter
	logger  *log.Logger
}

// New creates a Pipeline. cfg supplies default thresholds and artifact names.
func New(cfg *config.Config, source ImageSource, sink ImageSink, reports ReportWriter) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		source:  source,
		sink:    sink,
		reports: reports,
	}
}

// SetLogger enables per-stage logging. A nil logger disables it.
func (p *Pipeline) SetLogger(l *log.Logger) {
	p.logger = l
}

func (p *Pipeline) logf(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}

// ClassifyResult describes a persisted classification.
type ClassifyResult struct {
	Mask          segment.Mask `json:"-"`
	Mode          string       `json:"mode"`
	Width         int          `json:"width"`
	Height        int          `json:"height"`
	SubjectPixels int          `json:"subject_pixels"`
	Output        string       `json:"output"`
}

// Classify thresholds the image at path and saves the mask to the configured
// artifact for mode.
func (p *Pipeline) Classify(path string, upper, lower float64, mode segment.Mode) (*ClassifyResult, error) {
	return p.ClassifyTo(path, p.cfg.Output.ClassifiedPath(mode), upper, lower, mode)
}

// ClassifyTo is Classify with an explicit output path.
func (p *Pipeline) ClassifyTo(path, output string, upper, lower float64, mode segment.Mode) (*ClassifyResult, error) {
	grid, err := p.source.LoadPixels(path)
	if err != nil {
		return nil, err
	}

	mask, err := segment.Classify(grid, upper, lower, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to classify %s: %w", path, err)
	}

	if err := p.sink.SaveGray(output, mask.Gray()); err != nil {
		return nil, err
	}

	res := &ClassifyResult{
		Mask:          mask,
		Mode:          mode.String(),
		Width:         mask.Width,
		Height:        mask.Height,
		SubjectPixels: mask.Count(),
		Output:        output,
	}
	p.logf("classified %s (%s, upper=%v lower=%v): %d of %d pixels -> %s",
		path, mode, upper, lower, res.SubjectPixels, mask.Width*mask.Height, output)
	return res, nil
}

// Label flood-fills the grayscale image at path and writes the
// discovery-order report to the configured artifact.
func (p *Pipeline) Label(path string, cutoff int) (*segment.Labeling, error) {
	return p.LabelTo(path, p.cfg.Output.Path(p.cfg.Output.DiscoveryReport), cutoff)
}

// LabelTo is Label with an explicit report path.
func (p *Pipeline) LabelTo(path, reportPath string, cutoff int) (*segment.Labeling, error) {
	gray, err := p.source.LoadGray(path)
	if err != nil {
		return nil, err
	}

	labeling, err := segment.Label(gray, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to label %s: %w", path, err)
	}

	if err := p.reports.WriteReport(reportPath, labeling.Components); err != nil {
		return nil, err
	}

	p.logf("labelled %s (cutoff=%d): %d components -> %s", path, cutoff, labeling.Total(), reportPath)
	return labeling, nil
}

// TopTwoResult describes a ranking and its top-2 extraction.
type TopTwoResult struct {
	Mask         segment.Mask        `json:"-"`
	Ranked       []segment.Component `json:"ranked"`
	Total        int                 `json:"total"`
	First        segment.Component   `json:"first"`
	Second       segment.Component   `json:"second"`
	Pixels       int                 `json:"pixels"`
	RankedReport string              `json:"ranked_report"`
	Output       string              `json:"output"`
}

// RankAndExtractTop2 ranks the components of grid, writes the ranked report
// and saves the mask of the two largest components, using configured
// artifact names.
func (p *Pipeline) RankAndExtractTop2(grid segment.LabelGrid) (*TopTwoResult, error) {
	o := p.cfg.Output
	return p.RankAndExtractTop2To(grid, o.Path(o.RankedReport), o.Path(o.TopTwo))
}

// RankAndExtractTop2To is RankAndExtractTop2 with explicit paths.
//
// The ranked report is written before top-2 selection, so it exists even when
// selection fails with segment.ErrInsufficientComponents. No image is saved
// in that case.
func (p *Pipeline) RankAndExtractTop2To(grid segment.LabelGrid, reportPath, output string) (*TopTwoResult, error) {
	mask, ranked, err := segment.RankAndExtractTop2(grid)

	if werr := p.reports.WriteReport(reportPath, ranked); werr != nil {
		return nil, werr
	}
	if err != nil {
		p.logf("ranked %d components -> %s; top-2 unavailable: %v", len(ranked), reportPath, err)
		return nil, fmt.Errorf("failed to select top 2 components: %w", err)
	}

	if err := p.sink.SaveGray(output, mask.Gray()); err != nil {
		return nil, err
	}

	res := &TopTwoResult{
		Mask:         mask,
		Ranked:       ranked,
		Total:        len(ranked),
		First:        ranked[0],
		Second:       ranked[1],
		Pixels:       mask.Count(),
		RankedReport: reportPath,
		Output:       output,
	}
	p.logf("ranked %d components -> %s; top 2 are %d (%d px) and %d (%d px) -> %s",
		res.Total, reportPath, res.First.ID, res.First.Size, res.Second.ID, res.Second.Size, output)
	return res, nil
}

// RunResult collects the outputs of a full Run.
type RunResult struct {
	Classify   *ClassifyResult     `json:"classify"`
	Components []segment.Component `json:"components"`
	Total      int                 `json:"total"`
	Discovery  string              `json:"discovery_report"`
	TopTwo     *TopTwoResult       `json:"top_two,omitempty"`
}

// Run classifies, labels and ranks/extracts the configured input with
// the configured thresholds and artifact names.
//
// When the classified image has fewer than two components, Run returns the
// partial result together with an error wrapping
// segment.ErrInsufficientComponents.
func (p *Pipeline) Run(mode segment.Mode) (*RunResult, error) {
	c := p.cfg

	cls, err := p.Classify(c.Input, c.Thresholds.Upper, c.Thresholds.Lower, mode)
	if err != nil {
		return nil, err
	}

	labeling, err := p.Label(cls.Output, c.Thresholds.Cutoff)
	if err != nil {
		return nil, err
	}

	res := &RunResult{
		Classify:   cls,
		Components: labeling.Components,
		Total:      labeling.Total(),
		Discovery:  c.Output.Path(c.Output.DiscoveryReport),
	}

	top, err := p.RankAndExtractTop2(labeling.Grid)
	if err != nil {
		if errors.Is(err, segment.ErrInsufficientComponents) {
			return res, err
		}
		return nil, err
	}
	res.TopTwo = top
	return res, nil
}
