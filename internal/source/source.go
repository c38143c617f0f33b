// Package source enumerates the pages of a trimming job. A page comes either
// from an image file in a directory or from a rendered PDF page.
package source

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ironsheep/pagetrim/internal/imaging"
)

// Source is an ordered set of pages.
type Source interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageName returns a stable name for page index, without extension.
	// Output files are named after it.
	PageName(index int) string

	// PagePath returns the path reported for page index in logs and reports.
	PagePath(index int) string

	// RenderPage decodes page index. Safe for concurrent use.
	RenderPage(index int) (image.Image, error)

	Close() error
}

// Open picks a source for path: a PDF file becomes a PDFSource, a directory
// becomes a DirSource.
func Open(path string, dpi int) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source: %w", err)
	}
	if info.IsDir() {
		return NewDirSource(path)
	}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return NewPDFSource(path, dpi)
	}
	return nil, fmt.Errorf("source %s is neither a directory nor a PDF file", path)
}

// DirSource lists the regular files directly inside a directory. Nothing is
// decoded until RenderPage; files that are not images fail there and are
// reported per page.
type DirSource struct {
	dir   string
	files []string
}

// NewDirSource scans dir once. Subdirectories, symlinks to directories and
// other non-regular entries are skipped, and names are sorted.
func NewDirSource(dir string) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		info, err := os.Stat(filepath.Join(dir, e.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	return &DirSource{dir: dir, files: files}, nil
}

func (d *DirSource) PageCount() int { return len(d.files) }

func (d *DirSource) PageName(index int) string {
	name := d.files[index]
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func (d *DirSource) PagePath(index int) string {
	return filepath.Join(d.dir, d.files[index])
}

func (d *DirSource) RenderPage(index int) (image.Image, error) {
	img, _, err := imaging.DecodeFile(d.PagePath(index))
	return img, err
}

func (d *DirSource) Close() error { return nil }
