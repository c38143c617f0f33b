// Package batch trims every page of a source and writes the results to an
// output directory.
package batch

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/pagetrim/internal/imaging"
	"github.com/ironsheep/pagetrim/internal/source"
)

// Logf receives per-page failures and progress. It defaults to log.Printf.
var Logf = log.Printf

// jpegQuality is used for jpeg output.
const jpegQuality = 95

// Runner trims the pages of one source.
type Runner struct {
	Source    source.Source
	OutputDir string
	Format    string
	Options   imaging.CutOptions
	Workers   int
}

// Run processes every page with at most r.Workers pages in flight.
//
// A page that fails is logged as "[File:<path>] <message>", recorded in the
// report, and does not stop the others. Run itself fails only when the output
// directory cannot be created or ctx is cancelled; on cancellation, pages
// already started finish and the partial report is returned with ctx.Err().
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	encode, err := EncoderFor(r.Format)
	if err != nil {
		return nil, err
	}
	if err := r.Options.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	workers := r.Workers
	if workers < 1 {
		workers = 1
	}

	start := time.Now()
	n := r.Source.PageCount()
	results := make([]PageResult, n)
	seen := make(map[string]string, n)

	g := new(errgroup.Group)
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}

		res := &results[i]
		res.Index = i
		res.Input = r.Source.PagePath(i)
		res.Output = filepath.Join(r.OutputDir, r.Source.PageName(i)+"."+r.Format)

		if prev, dup := seen[res.Output]; dup {
			res.Error = fmt.Sprintf("output %s already written for %s", res.Output, prev)
			res.Output = ""
			Logf("[File:%s] %s", res.Input, res.Error)
			continue
		}
		seen[res.Output] = res.Input

		g.Go(func() error {
			if err := r.processPage(res, encode); err != nil {
				res.Error = err.Error()
				res.Output = ""
				Logf("[File:%s] %v", res.Input, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	report := newReport(r, results, time.Since(start))
	return report, ctx.Err()
}

func (r *Runner) processPage(res *PageResult, encode imgio.Encoder) error {
	img, err := r.Source.RenderPage(res.Index)
	if err != nil {
		return err
	}

	out, d, err := imaging.CutEdgeImage(img, r.Options)
	if err != nil {
		return err
	}

	res.Width, res.Height = d.Width, d.Height
	res.Box = d.Box
	res.OutputWidth, res.OutputHeight = out.Bounds().Dx(), out.Bounds().Dy()

	return writeAtomic(res.Output, func(f *os.File) error {
		return encode(f, out)
	})
}

// WriteImage encodes img in format and writes it to path atomically.
func WriteImage(path string, img image.Image, format string) error {
	encode, err := EncoderFor(format)
	if err != nil {
		return err
	}
	return writeAtomic(path, func(f *os.File) error {
		return encode(f, img)
	})
}

// writeAtomic writes through a temp file in the destination directory and
// renames it into place, so a failed write never leaves a partial page.
func writeAtomic(path string, write func(*os.File) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pagetrim-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// EncoderFor returns the encoder for an output format name.
func EncoderFor(format string) (imgio.Encoder, error) {
	switch format {
	case "png":
		return imgio.PNGEncoder(), nil
	case "jpeg":
		return imgio.JPEGEncoder(jpegQuality), nil
	case "bmp":
		return imgio.BMPEncoder(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// FormatFromPath maps a file extension to an output format name.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png", nil
	case ".jpg", ".jpeg":
		return "jpeg", nil
	case ".bmp":
		return "bmp", nil
	default:
		return "", fmt.Errorf("cannot pick an output format for %s", path)
	}
}
