package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

// createPageImage creates a white page with a filled rectangle covering
// [x0,x1) × [y0,y1).
func createPageImage(width, height, x0, y0, x1, y1 int, ink color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x >= x0 && x < x1 && y >= y0 && y < y1 {
				img.Set(x, y, ink)
			} else {
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			}
		}
	}
	return img
}

func TestLuminance(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    int
	}{
		{"black", 0, 0, 0, 0},
		{"pure red", 255, 0, 0, 54},
		{"pure green", 0, 255, 0, 182},
		{"pure blue", 0, 0, 255, 18},
		{"mixed", 100, 50, 200, 71},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Luminance(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("Luminance(%d,%d,%d) = %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestLuminance_White(t *testing.T) {
	// The weights sum to 1, truncation may land on either side of 255.
	got := Luminance(255, 255, 255)
	if got != 254 && got != 255 {
		t.Errorf("Luminance(white) = %d, want 254 or 255", got)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		want  color.NRGBA
	}{
		{"#FF7FFF", color.NRGBA{255, 127, 255, 255}},
		{"#ff7fff", color.NRGBA{255, 127, 255, 255}},
		{"ff7fff", color.NRGBA{255, 127, 255, 255}},
		{"#000000", color.NRGBA{0, 0, 0, 255}},
		{"#fff", color.NRGBA{255, 255, 255, 255}},
		{" #102030 ", color.NRGBA{16, 32, 48, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if err != nil {
				t.Fatalf("ParseHexColor(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseHexColor_Invalid(t *testing.T) {
	for _, input := range []string{"", "#12", "#zzzzzz", "magenta"} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseHexColor(input); err == nil {
				t.Errorf("ParseHexColor(%q) should fail", input)
			}
		})
	}
}

func TestHexColor(t *testing.T) {
	if got := HexColor(DefaultBorderColor); got != "#ff7fff" {
		t.Errorf("HexColor(default) = %s, want #ff7fff", got)
	}

	// Round trip every channel value through hex.
	for v := 0; v < 256; v += 15 {
		c := color.NRGBA{R: uint8(v), G: uint8(255 - v), B: uint8(v / 2), A: 255}
		back, err := ParseHexColor(HexColor(c))
		if err != nil {
			t.Fatalf("ParseHexColor(HexColor(%v)) failed: %v", c, err)
		}
		if back != c {
			t.Errorf("round trip: got %v, want %v", back, c)
		}
	}
}
