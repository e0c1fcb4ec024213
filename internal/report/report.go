// Package report writes connected-component lists as plain-text reports.
//
// A report has one line per component, in the order given, followed by a
// total line:
//
//	Connected Component 1, number of pixels = 42
//	Connected Component 2, number of pixels = 7
//	Total number of connected components = 2
//
// The total line has no trailing newline.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ironsheep/segment-tools-mcp/internal/segment"
)

// Write emits the report for comps to w.
func Write(w io.Writer, comps []segment.Component) error {
	bw := bufio.NewWriter(w)
	for _, c := range comps {
		fmt.Fprintf(bw, "Connected Component %d, number of pixels = %d\n", c.ID, c.Size)
	}
	fmt.Fprintf(bw, "Total number of connected components = %d", len(comps))
	return bw.Flush()
}

// FileWriter writes reports to files, creating parent directories.
type FileWriter struct{}

// WriteReport replaces the file at path with the report for comps.
func (FileWriter) WriteReport(path string, comps []segment.Component) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	if err := Write(f, comps); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close report %s: %w", path, err)
	}
	return nil
}
