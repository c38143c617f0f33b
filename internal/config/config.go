// Package config holds the settings for a pagetrim run and loads them from
// YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/pagetrim/internal/imaging"
)

// Output formats accepted for cropped pages.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatBMP  = "bmp"
)

// DefaultOutputDirName is the directory created next to the input pages when
// no output directory is configured.
const DefaultOutputDirName = "output"

// DefaultDPI is the resolution PDF pages are rendered at.
const DefaultDPI = 300

// maxFileSize bounds the size of a config file.
const maxFileSize = 1 * 1024 * 1024

// Config is the root configuration for a run.
type Config struct {
	// Source is a directory of page images or a PDF file.
	Source string `yaml:"source,omitempty"`

	// OutputDir receives cropped pages. Empty means <source dir>/output.
	OutputDir string `yaml:"output_dir,omitempty"`

	// Format is the encoding of cropped pages: png, jpeg or bmp.
	Format string `yaml:"format"`

	// Workers bounds concurrent pages. Zero picks a value from the host.
	Workers int `yaml:"workers"`

	// DPI is used when rendering PDF pages.
	DPI int `yaml:"dpi"`

	// Report is an optional path for a YAML run report.
	Report string `yaml:"report,omitempty"`

	Detection DetectionConfig `yaml:"detection"`
}

// DetectionConfig mirrors imaging.CutOptions in a file-friendly form.
type DetectionConfig struct {
	ActivityThreshold float64 `yaml:"activity_threshold"`
	MarginTop         int     `yaml:"margin_top"`
	MarginBottom      int     `yaml:"margin_bottom"`
	MarginLeft        int     `yaml:"margin_left"`
	MarginRight       int     `yaml:"margin_right"`
	UseLuminance      bool    `yaml:"use_luminance"`
	BorderWidth       int     `yaml:"border_width"`
	BorderColor       string  `yaml:"border_color"`
}

// Default returns the stock configuration.
func Default() *Config {
	opts := imaging.DefaultCutOptions()
	return &Config{
		Format:  FormatPNG,
		Workers: 0,
		DPI:     DefaultDPI,
		Detection: DetectionConfig{
			ActivityThreshold: opts.ActivityThreshold,
			MarginTop:         opts.Margins.Top,
			MarginBottom:      opts.Margins.Bottom,
			MarginLeft:        opts.Margins.Left,
			MarginRight:       opts.Margins.Right,
			UseLuminance:      opts.UseLuminance,
			BorderWidth:       opts.BorderWidth,
			BorderColor:       imaging.HexColor(opts.BorderColor),
		},
	}
}

// Load reads a YAML config file on top of Default. Fields omitted from the
// file keep their default values, so partial configs are safe.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := strings.ToLower(filepath.Ext(cleanPath)); ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have .yaml or .yml extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration describes a runnable job.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatPNG, FormatJPEG, FormatBMP:
	default:
		return fmt.Errorf("format must be one of png, jpeg, bmp, got %q", c.Format)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be > 0, got %d", c.DPI)
	}
	if _, err := c.CutOptions(); err != nil {
		return err
	}
	return nil
}

// CutOptions converts the detection settings into engine options.
func (c *Config) CutOptions() (imaging.CutOptions, error) {
	d := c.Detection
	border, err := imaging.ParseHexColor(d.BorderColor)
	if err != nil {
		return imaging.CutOptions{}, fmt.Errorf("border_color: %w", err)
	}

	opts := imaging.CutOptions{
		ActivityThreshold: d.ActivityThreshold,
		Margins: imaging.Margins{
			Top:    d.MarginTop,
			Bottom: d.MarginBottom,
			Left:   d.MarginLeft,
			Right:  d.MarginRight,
		},
		UseLuminance: d.UseLuminance,
		BorderWidth:  d.BorderWidth,
		BorderColor:  border,
	}
	if err := opts.Validate(); err != nil {
		return imaging.CutOptions{}, err
	}
	return opts, nil
}

// SetMargin sets all four retention margins.
func (d *DetectionConfig) SetMargin(m int) {
	d.MarginTop, d.MarginBottom, d.MarginLeft, d.MarginRight = m, m, m, m
}

// ResolveOutputDir returns OutputDir, or the default output directory for
// Source when none is set. PDF sources put their output next to the file.
func (c *Config) ResolveOutputDir() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	base := c.Source
	if info, err := os.Stat(base); err != nil || !info.IsDir() {
		base = filepath.Dir(base)
	}
	return filepath.Join(base, DefaultOutputDirName)
}
