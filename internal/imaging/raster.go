package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Errors returned by the border detection engine. Call sites wrap them with
// context, so compare with errors.Is.
var (
	// ErrUnsupportedPixelStride is returned when a raster buffer does not
	// divide into 3-byte or 4-byte pixels.
	ErrUnsupportedPixelStride = errors.New("unsupported pixel stride")

	// ErrInvalidCropExtent is returned when a bounding box would leave a
	// region with zero or negative width or height.
	ErrInvalidCropExtent = errors.New("invalid crop extent")

	// ErrEmptyRaster is returned for rasters with no pixels.
	ErrEmptyRaster = errors.New("empty raster")
)

// Pixel strides accepted by Decode.
const (
	StrideBGR  = 3 // blue, green, red
	StrideABGR = 4 // alpha, blue, green, red
)

// Raster is a packed pixel buffer in row-major order.
//
// The stride is not stored; it is derived from the buffer length:
//
//	stride = len(Pix) / (Width * Height)
//
// A stride of 3 holds (blue, green, red) triples and a stride of 4 holds
// (alpha, blue, green, red) quads. Rasters are treated as immutable by every
// function in this package.
type Raster struct {
	Width  int
	Height int
	Pix    []byte
}

// Stride returns the number of bytes per pixel.
//
// Returns ErrEmptyRaster if the raster has no pixels and
// ErrUnsupportedPixelStride if the buffer length does not divide into 3 or 4
// bytes per pixel.
func (r Raster) Stride() (int, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrEmptyRaster, r.Width, r.Height)
	}
	n := r.Width * r.Height
	if len(r.Pix)%n != 0 {
		return 0, fmt.Errorf("%w: %d bytes for %dx%d pixels", ErrUnsupportedPixelStride, len(r.Pix), r.Width, r.Height)
	}
	stride := len(r.Pix) / n
	if stride != StrideBGR && stride != StrideABGR {
		return 0, fmt.Errorf("%w: %d bytes per pixel", ErrUnsupportedPixelStride, stride)
	}
	return stride, nil
}

// FromImage packs an image into a Raster.
//
// Opaque images use stride 3 (BGR); anything with transparency uses stride 4
// (ABGR). Colors are taken non-premultiplied, so an NRGBA source survives a
// FromImage/ToImage round trip unchanged.
func FromImage(img image.Image) Raster {
	stride := StrideABGR
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		stride = StrideBGR
	}
	return packNRGBA(imaging.Clone(img), stride)
}

// ToImage unpacks a Raster into an NRGBA image with bounds (0,0)-(w,h).
func ToImage(r Raster) (*image.NRGBA, error) {
	stride, err := r.Stride()
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for i, j := 0, 0; i < len(r.Pix); i, j = i+stride, j+4 {
		if stride == StrideABGR {
			img.Pix[j+0] = r.Pix[i+3]
			img.Pix[j+1] = r.Pix[i+2]
			img.Pix[j+2] = r.Pix[i+1]
			img.Pix[j+3] = r.Pix[i]
		} else {
			img.Pix[j+0] = r.Pix[i+2]
			img.Pix[j+1] = r.Pix[i+1]
			img.Pix[j+2] = r.Pix[i]
			img.Pix[j+3] = 0xff
		}
	}
	return img, nil
}

// packNRGBA converts an NRGBA image with a (0,0) origin into a raster of the
// given stride. Alpha is dropped for stride 3.
func packNRGBA(img *image.NRGBA, stride int) Raster {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := Raster{Width: w, Height: h, Pix: make([]byte, w*h*stride)}

	i := 0
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			if stride == StrideABGR {
				out.Pix[i] = row[x+3]
				out.Pix[i+1] = row[x+2]
				out.Pix[i+2] = row[x+1]
				out.Pix[i+3] = row[x]
			} else {
				out.Pix[i] = row[x+2]
				out.Pix[i+1] = row[x+1]
				out.Pix[i+2] = row[x]
			}
			i += stride
		}
	}
	return out
}
