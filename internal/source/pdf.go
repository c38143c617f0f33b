package source

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// PDFSource renders the pages of a PDF document with MuPDF.
type PDFSource struct {
	doc   *fitz.Document
	path  string
	base  string
	dpi   int
	pages int
}

// NewPDFSource opens path and reads its page count. Pages are rendered at dpi.
func NewPDFSource(path string, dpi int) (*PDFSource, error) {
	if dpi <= 0 {
		return nil, fmt.Errorf("dpi must be > 0, got %d", dpi)
	}
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	name := filepath.Base(path)
	return &PDFSource{
		doc:   doc,
		path:  path,
		base:  strings.TrimSuffix(name, filepath.Ext(name)),
		dpi:   dpi,
		pages: doc.NumPage(),
	}, nil
}

func (p *PDFSource) PageCount() int { return p.pages }

// PageName numbers pages from 1: "book-p0001".
func (p *PDFSource) PageName(index int) string {
	return pageName(p.base, index)
}

func (p *PDFSource) PagePath(index int) string {
	return fmt.Sprintf("%s#page=%d", p.path, index+1)
}

// RenderPage opens its own document handle, since a fitz.Document must not be
// shared between goroutines.
func (p *PDFSource) RenderPage(index int) (image.Image, error) {
	if index < 0 || index >= p.pages {
		return nil, fmt.Errorf("page %d out of range [0,%d)", index, p.pages)
	}
	doc, err := fitz.New(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	img, err := doc.ImageDPI(index, float64(p.dpi))
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", index+1, err)
	}
	return img, nil
}

func (p *PDFSource) Close() error {
	return p.doc.Close()
}

func pageName(base string, index int) string {
	return fmt.Sprintf("%s-p%04d", base, index+1)
}
