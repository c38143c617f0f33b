package batch

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/pagetrim/internal/imaging"
)

// PageResult is the outcome of one page.
type PageResult struct {
	Index        int                 `yaml:"index" json:"index"`
	Input        string              `yaml:"input" json:"input"`
	Output       string              `yaml:"output,omitempty" json:"output,omitempty"`
	Width        int                 `yaml:"width,omitempty" json:"width,omitempty"`
	Height       int                 `yaml:"height,omitempty" json:"height,omitempty"`
	Box          imaging.BoundingBox `yaml:"box" json:"box"`
	OutputWidth  int                 `yaml:"output_width,omitempty" json:"output_width,omitempty"`
	OutputHeight int                 `yaml:"output_height,omitempty" json:"output_height,omitempty"`
	Error        string              `yaml:"error,omitempty" json:"error,omitempty"`
}

// OK reports whether the page was written.
func (p PageResult) OK() bool {
	return p.Error == "" && p.Output != ""
}

// Report summarizes a run.
type Report struct {
	OutputDir string       `yaml:"output_dir" json:"output_dir"`
	Format    string       `yaml:"format" json:"format"`
	Total     int          `yaml:"total" json:"total"`
	Processed int          `yaml:"processed" json:"processed"`
	Failed    int          `yaml:"failed" json:"failed"`
	Skipped   int          `yaml:"skipped" json:"skipped"`
	Elapsed   string       `yaml:"elapsed" json:"elapsed"`
	Pages     []PageResult `yaml:"pages" json:"pages"`
}

func newReport(r *Runner, results []PageResult, elapsed time.Duration) *Report {
	rep := &Report{
		OutputDir: r.OutputDir,
		Format:    r.Format,
		Total:     len(results),
		Elapsed:   elapsed.Round(time.Millisecond).String(),
	}
	for _, res := range results {
		switch {
		case res.Input == "":
			// never scheduled
			rep.Skipped++
			continue
		case res.OK():
			rep.Processed++
		default:
			rep.Failed++
		}
		rep.Pages = append(rep.Pages, res)
	}
	return rep
}

// WriteReport writes the report as YAML.
func WriteReport(rep *Report, path string) error {
	data, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
