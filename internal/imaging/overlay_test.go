package imaging

import (
	"image/color"
	"testing"
)

func TestMarginPreview(t *testing.T) {
	white := color.NRGBA{255, 255, 255, 255}
	red := color.NRGBA{255, 0, 0, 255}
	img := createInMemoryImage(20, 20, white)

	out := MarginPreview(img, BoundingBox{Left: 5, Top: 5, Right: 5, Bottom: 5}, red)

	if out.Bounds().Dx() != 20 || out.Bounds().Dy() != 20 {
		t.Fatalf("dimensions: got %dx%d, want 20x20", out.Bounds().Dx(), out.Bounds().Dy())
	}

	shaded := out.NRGBAAt(0, 0)
	if shaded.R >= 255 || shaded.R != shaded.G || shaded.G != shaded.B {
		t.Errorf("trimmed band pixel: got %v, want darkened gray", shaded)
	}
	if got := out.NRGBAAt(19, 10); got != shaded {
		t.Errorf("right band pixel: got %v, want %v", got, shaded)
	}

	for _, p := range [][2]int{{5, 5}, {6, 10}, {14, 14}, {10, 13}} {
		if got := out.NRGBAAt(p[0], p[1]); got != red {
			t.Errorf("outline pixel %v: got %v, want red", p, got)
		}
	}
	if got := out.NRGBAAt(10, 10); got != white {
		t.Errorf("interior pixel: got %v, want white", got)
	}
	if got := out.NRGBAAt(7, 10); got != white {
		t.Errorf("pixel inside outline: got %v, want white", got)
	}
}

func TestMarginPreview_EmptyRetained(t *testing.T) {
	img := createInMemoryImage(20, 10, color.RGBA{255, 255, 255, 255})
	out := MarginPreview(img, BoundingBox{Left: 15, Right: 15}, color.NRGBA{255, 0, 0, 255})

	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			if c := out.NRGBAAt(x, y); c.R != c.G {
				t.Fatalf("pixel (%d,%d) = %v, want shaded gray only", x, y, c)
			}
		}
	}
}

func TestMarginPreview_ZeroBox(t *testing.T) {
	img := createPatternImage(10, 10)
	out := MarginPreview(img, BoundingBox{}, color.NRGBA{0, 0, 0, 255})

	// Nothing is shaded; only the outline along the edge changes.
	if got := out.NRGBAAt(4, 4); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("pixel (4,4): got %v, want red", got)
	}
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("pixel (0,0): got %v, want outline black", got)
	}
}
