package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/ironsheep/pagetrim/internal/config"
)

// flagSet binds command-line flags onto a config.
type flagSet struct {
	fs         *flag.FlagSet
	configPath string
	margin     int
	colorSum   bool
	values     *config.Config
}

func newFlagSet(defaults *config.Config, output io.Writer) *flagSet {
	f := &flagSet{
		fs:     flag.NewFlagSet("pagetrim", flag.ContinueOnError),
		values: defaults,
	}
	f.fs.SetOutput(output)

	d := &f.values.Detection
	f.fs.StringVar(&f.configPath, "config", "", "YAML config file; explicit flags override it")
	f.fs.StringVar(&f.values.OutputDir, "output", "", "output directory (default <dir>/output)")
	f.fs.StringVar(&f.values.Format, "format", defaults.Format, "output format: png, jpeg or bmp")
	f.fs.IntVar(&f.values.Workers, "workers", defaults.Workers, "pages processed at once; 0 sizes to the host")
	f.fs.IntVar(&f.values.DPI, "dpi", defaults.DPI, "render resolution for PDF pages")
	f.fs.StringVar(&f.values.Report, "report", "", "write a YAML run report to this file")
	f.fs.Float64Var(&d.ActivityThreshold, "threshold", d.ActivityThreshold, "normalized activity a line must exceed to count as content")
	f.fs.IntVar(&f.margin, "margin", d.MarginTop, "background pixels kept outside the content on every edge")
	f.fs.IntVar(&d.MarginTop, "margin-top", d.MarginTop, "margin for the top edge")
	f.fs.IntVar(&d.MarginBottom, "margin-bottom", d.MarginBottom, "margin for the bottom edge")
	f.fs.IntVar(&d.MarginLeft, "margin-left", d.MarginLeft, "margin for the left edge")
	f.fs.IntVar(&d.MarginRight, "margin-right", d.MarginRight, "margin for the right edge")
	f.fs.BoolVar(&f.colorSum, "color-sum", false, "score lines by the sum of red, green and blue changes instead of luminance")
	f.fs.IntVar(&d.BorderWidth, "border", d.BorderWidth, "pad trimmed pages with a border of this width")
	f.fs.StringVar(&d.BorderColor, "border-color", d.BorderColor, "border color as #rrggbb")
	return f
}

// parseConfig builds the run configuration: defaults, then the -config file,
// then every flag given explicitly on the command line.
func parseConfig(args []string, output io.Writer) (*config.Config, error) {
	f := newFlagSet(config.Default(), output)
	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}
	if f.fs.NArg() != 1 {
		f.fs.Usage()
		return nil, errors.New("expected exactly one directory or PDF file")
	}

	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// Per-edge flags win over -margin when both are given.
	set := map[string]bool{}
	f.fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if set["margin"] {
		cfg.Detection.SetMargin(f.margin)
	}
	apply := map[string]func(){
		"output":        func() { cfg.OutputDir = f.values.OutputDir },
		"format":        func() { cfg.Format = f.values.Format },
		"workers":       func() { cfg.Workers = f.values.Workers },
		"dpi":           func() { cfg.DPI = f.values.DPI },
		"report":        func() { cfg.Report = f.values.Report },
		"threshold":     func() { cfg.Detection.ActivityThreshold = f.values.Detection.ActivityThreshold },
		"margin-top":    func() { cfg.Detection.MarginTop = f.values.Detection.MarginTop },
		"margin-bottom": func() { cfg.Detection.MarginBottom = f.values.Detection.MarginBottom },
		"margin-left":   func() { cfg.Detection.MarginLeft = f.values.Detection.MarginLeft },
		"margin-right":  func() { cfg.Detection.MarginRight = f.values.Detection.MarginRight },
		"color-sum":     func() { cfg.Detection.UseLuminance = !f.colorSum },
		"border":        func() { cfg.Detection.BorderWidth = f.values.Detection.BorderWidth },
		"border-color":  func() { cfg.Detection.BorderColor = f.values.Detection.BorderColor },
	}
	for name, fn := range apply {
		if set[name] {
			fn()
		}
	}

	cfg.Source = f.fs.Arg(0)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
