package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestRaster_Stride(t *testing.T) {
	tests := []struct {
		name    string
		r       Raster
		want    int
		wantErr error
	}{
		{"bgr", Raster{Width: 4, Height: 2, Pix: make([]byte, 24)}, StrideBGR, nil},
		{"abgr", Raster{Width: 4, Height: 2, Pix: make([]byte, 32)}, StrideABGR, nil},
		{"single pixel", Raster{Width: 1, Height: 1, Pix: make([]byte, 3)}, StrideBGR, nil},
		{"zero width", Raster{Width: 0, Height: 2, Pix: nil}, 0, ErrEmptyRaster},
		{"negative height", Raster{Width: 2, Height: -1, Pix: make([]byte, 6)}, 0, ErrEmptyRaster},
		{"gray", Raster{Width: 4, Height: 2, Pix: make([]byte, 8)}, 0, ErrUnsupportedPixelStride},
		{"ragged", Raster{Width: 4, Height: 2, Pix: make([]byte, 25)}, 0, ErrUnsupportedPixelStride},
		{"wide", Raster{Width: 4, Height: 2, Pix: make([]byte, 64)}, 0, ErrUnsupportedPixelStride},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.r.Stride()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Stride error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Stride failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Stride = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFromImage_StrideSelection(t *testing.T) {
	opaque := FromImage(createInMemoryImage(5, 4, color.RGBA{1, 2, 3, 255}))
	if s, err := opaque.Stride(); err != nil || s != StrideBGR {
		t.Errorf("opaque image: stride %d (%v), want %d", s, err, StrideBGR)
	}
	if opaque.Pix[0] != 3 || opaque.Pix[1] != 2 || opaque.Pix[2] != 1 {
		t.Errorf("opaque image: first pixel bytes %v, want [3 2 1]", opaque.Pix[:3])
	}

	trans := image.NewNRGBA(image.Rect(0, 0, 5, 4))
	trans.SetNRGBA(0, 0, color.NRGBA{1, 2, 3, 4})
	packed := FromImage(trans)
	if s, err := packed.Stride(); err != nil || s != StrideABGR {
		t.Errorf("transparent image: stride %d (%v), want %d", s, err, StrideABGR)
	}
	if got := packed.Pix[:4]; got[0] != 4 || got[1] != 3 || got[2] != 2 || got[3] != 1 {
		t.Errorf("transparent image: first pixel bytes %v, want [4 3 2 1]", got)
	}
}

func TestFromImage_SubImage(t *testing.T) {
	parent := createPatternImage(40, 40)
	sub := parent.SubImage(image.Rect(20, 20, 40, 40)) // white quadrant

	r := FromImage(sub)
	if r.Width != 20 || r.Height != 20 {
		t.Fatalf("dimensions: got %dx%d, want 20x20", r.Width, r.Height)
	}
	for i, b := range r.Pix {
		if b != 0xff {
			t.Fatalf("byte %d = %#x, want 0xff", i, b)
		}
	}
}

func TestToImage_RoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 6, 3))
	for i := range src.Pix {
		src.Pix[i] = byte(i * 13)
	}

	back, err := ToImage(FromImage(src))
	if err != nil {
		t.Fatalf("ToImage failed: %v", err)
	}
	if back.Bounds() != src.Bounds() {
		t.Fatalf("bounds: got %v, want %v", back.Bounds(), src.Bounds())
	}
	for i := range src.Pix {
		if back.Pix[i] != src.Pix[i] {
			t.Fatalf("byte %d: got %d, want %d", i, back.Pix[i], src.Pix[i])
		}
	}
}

func TestToImage_Errors(t *testing.T) {
	if _, err := ToImage(Raster{}); !errors.Is(err, ErrEmptyRaster) {
		t.Errorf("empty raster: error = %v, want ErrEmptyRaster", err)
	}
	if _, err := ToImage(Raster{Width: 1, Height: 1, Pix: []byte{1, 2}}); !errors.Is(err, ErrUnsupportedPixelStride) {
		t.Errorf("short raster: error = %v, want ErrUnsupportedPixelStride", err)
	}
}
