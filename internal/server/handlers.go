package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/pagetrim/internal/batch"
	"github.com/ironsheep/pagetrim/internal/imaging"
	"github.com/ironsheep/pagetrim/internal/source"
	"github.com/ironsheep/pagetrim/internal/system"
)

// defaultOutlineColor outlines the retained rectangle in previews.
const defaultOutlineColor = "#ff0000"

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "page_load", "page_cut_edges").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// errMissingPath is returned when a tool call has no path argument.
var errMissingPath = errors.New("path is required")

// handleToolsCall runs one tool and wraps its result in MCP's content
// format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Malformed params return -32602 and tool failures return -32000, with the Go
// error string as data.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return s.result(req, map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": mustMarshalJSON(result)},
		},
	})
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Page Information
	case "page_load":
		return s.handlePageLoad(args)
	case "page_activity_profile":
		return s.handleActivityProfile(args)

	// Detection and Cropping
	case "page_detect_margins":
		return s.handleDetectMargins(args)
	case "page_cut_edges":
		return s.handleCutEdges(args)
	case "page_preview_margins":
		return s.handlePreviewMargins(args)

	// Batch
	case "page_trim_directory":
		return s.handleTrimDirectory(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments and checks the path.
func decodeArgs(args json.RawMessage, v interface{ path() string }) error {
	if err := json.Unmarshal(args, v); err != nil {
		return err
	}
	if v.path() == "" {
		return errMissingPath
	}
	return nil
}

// detectionArgs are the optional overrides shared by detection tools. Nil
// fields keep the server's configured value.
type detectionArgs struct {
	Path         string   `json:"path"`
	Threshold    *float64 `json:"threshold"`
	Margin       *int     `json:"margin"`
	MarginTop    *int     `json:"margin_top"`
	MarginBottom *int     `json:"margin_bottom"`
	MarginLeft   *int     `json:"margin_left"`
	MarginRight  *int     `json:"margin_right"`
	UseLuminance *bool    `json:"use_luminance"`
	BorderWidth  *int     `json:"border_width"`
	BorderColor  *string  `json:"border_color"`
}

func (a *detectionArgs) path() string { return a.Path }

// cutOptions layers the call's overrides over the server configuration.
func (s *Server) cutOptions(a *detectionArgs) (imaging.CutOptions, error) {
	opts, err := s.cfg.CutOptions()
	if err != nil {
		return imaging.CutOptions{}, err
	}

	if a.Threshold != nil {
		opts.ActivityThreshold = *a.Threshold
	}
	if a.Margin != nil {
		opts.Margins = imaging.UniformMargins(*a.Margin)
	}
	for _, o := range []struct {
		v   *int
		dst *int
	}{
		{a.MarginTop, &opts.Margins.Top},
		{a.MarginBottom, &opts.Margins.Bottom},
		{a.MarginLeft, &opts.Margins.Left},
		{a.MarginRight, &opts.Margins.Right},
		{a.BorderWidth, &opts.BorderWidth},
	} {
		if o.v != nil {
			*o.dst = *o.v
		}
	}
	if a.UseLuminance != nil {
		opts.UseLuminance = *a.UseLuminance
	}
	if a.BorderColor != nil {
		c, err := imaging.ParseHexColor(*a.BorderColor)
		if err != nil {
			return imaging.CutOptions{}, fmt.Errorf("border_color: %w", err)
		}
		opts.BorderColor = c
	}

	if err := opts.Validate(); err != nil {
		return imaging.CutOptions{}, err
	}
	return opts, nil
}

// detect loads the page at a.Path and runs margin detection on it.
func (s *Server) detect(a *detectionArgs) (image.Image, *imaging.Detection, imaging.CutOptions, error) {
	opts, err := s.cutOptions(a)
	if err != nil {
		return nil, nil, opts, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, opts, err
	}
	d, err := imaging.Detect(imaging.FromImage(img), opts)
	if err != nil {
		return nil, nil, opts, err
	}
	return img, d, opts, nil
}

// Rect is a rectangle in tool output: [X1,X2) × [Y1,Y2).
type Rect struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func toRect(r image.Rectangle) Rect {
	return Rect{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

// === Page Information Handlers ===

type pageLoadArgs struct {
	Path string `json:"path"`
}

func (a *pageLoadArgs) path() string { return a.Path }

func (s *Server) handlePageLoad(args json.RawMessage) (interface{}, error) {
	var a pageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadPageInfo(s.cache, a.Path)
}

type activityProfileArgs struct {
	Path         string `json:"path"`
	UseLuminance *bool  `json:"use_luminance"`
}

func (a *activityProfileArgs) path() string { return a.Path }

// ActivityProfileResult is returned by page_activity_profile.
type ActivityProfileResult struct {
	Width        int             `json:"width"`
	Height       int             `json:"height"`
	UseLuminance bool            `json:"use_luminance"`
	Rows         imaging.Profile `json:"rows"`
	Cols         imaging.Profile `json:"cols"`
}

func (s *Server) handleActivityProfile(args json.RawMessage) (interface{}, error) {
	var a activityProfileArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	_, d, opts, err := s.detect(&detectionArgs{Path: a.Path, UseLuminance: a.UseLuminance})
	if err != nil {
		return nil, err
	}
	return &ActivityProfileResult{
		Width:        d.Width,
		Height:       d.Height,
		UseLuminance: opts.UseLuminance,
		Rows:         d.Profiles.Rows,
		Cols:         d.Profiles.Cols,
	}, nil
}

// === Detection and Cropping Handlers ===

// MarginsResult is returned by page_detect_margins.
type MarginsResult struct {
	Width    int                 `json:"width"`
	Height   int                 `json:"height"`
	Stride   int                 `json:"stride"`
	Box      imaging.BoundingBox `json:"box"`
	Retained Rect                `json:"retained"`
}

func (s *Server) handleDetectMargins(args json.RawMessage) (interface{}, error) {
	var a detectionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	_, d, _, err := s.detect(&a)
	if err != nil {
		return nil, err
	}
	return &MarginsResult{
		Width:    d.Width,
		Height:   d.Height,
		Stride:   d.Stride,
		Box:      d.Box,
		Retained: toRect(d.Retained()),
	}, nil
}

type cutEdgesArgs struct {
	detectionArgs
	OutputPath string `json:"output_path"`
}

// CutEdgesResult is returned by page_cut_edges.
type CutEdgesResult struct {
	imaging.CropResult
	Box        imaging.BoundingBox `json:"box"`
	OutputPath string              `json:"output_path,omitempty"`
}

func (s *Server) handleCutEdges(args json.RawMessage) (interface{}, error) {
	var a cutEdgesArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	var format string
	if a.OutputPath != "" {
		f, err := batch.FormatFromPath(a.OutputPath)
		if err != nil {
			return nil, err
		}
		format = f
	}

	opts, err := s.cutOptions(&a.detectionArgs)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	out, d, err := imaging.CutEdgeImage(img, opts)
	if err != nil {
		return nil, err
	}

	if a.OutputPath != "" {
		if err := batch.WriteImage(a.OutputPath, out, format); err != nil {
			return nil, err
		}
	}

	encoded, err := imaging.EncodeResult(out)
	if err != nil {
		return nil, err
	}
	return &CutEdgesResult{
		CropResult: *encoded,
		Box:        d.Box,
		OutputPath: a.OutputPath,
	}, nil
}

type previewMarginsArgs struct {
	detectionArgs
	OutlineColor string `json:"outline_color"`
}

func (s *Server) handlePreviewMargins(args json.RawMessage) (interface{}, error) {
	var a previewMarginsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.OutlineColor == "" {
		a.OutlineColor = defaultOutlineColor
	}
	outline, err := imaging.ParseHexColor(a.OutlineColor)
	if err != nil {
		return nil, fmt.Errorf("outline_color: %w", err)
	}

	img, d, _, err := s.detect(&a.detectionArgs)
	if err != nil {
		return nil, err
	}
	return imaging.EncodeResult(imaging.MarginPreview(img, d.Box, outline))
}

// === Batch Handlers ===

type trimDirectoryArgs struct {
	detectionArgs
	OutputDir string `json:"output_dir"`
	Format    string `json:"format"`
	Workers   *int   `json:"workers"`
	DPI       *int   `json:"dpi"`
}

func (s *Server) handleTrimDirectory(args json.RawMessage) (interface{}, error) {
	var a trimDirectoryArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	cfg := *s.cfg
	cfg.Source = a.Path
	cfg.OutputDir = a.OutputDir
	if a.Format != "" {
		cfg.Format = a.Format
	}
	if a.Workers != nil {
		cfg.Workers = *a.Workers
	}
	if a.DPI != nil {
		cfg.DPI = *a.DPI
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts, err := s.cutOptions(&a.detectionArgs)
	if err != nil {
		return nil, err
	}

	src, err := source.Open(cfg.Source, cfg.DPI)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	workers := cfg.Workers
	if workers == 0 {
		workers = system.DefaultWorkers()
	}

	runner := &batch.Runner{
		Source:    src,
		OutputDir: cfg.ResolveOutputDir(),
		Format:    cfg.Format,
		Options:   opts,
		Workers:   workers,
	}
	return runner.Run(context.Background())
}
