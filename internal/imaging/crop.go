package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
)

// CropSpec describes what the cropper does to one image.
type CropSpec struct {
	// Box is the number of pixels removed from each edge.
	Box BoundingBox

	// BorderWidth pads the cropped result on every side when positive.
	BorderWidth int

	// BorderColor fills the padding.
	BorderColor color.NRGBA
}

// CropImage removes the box from each edge of img and pads the result when
// cs.BorderWidth is positive.
//
// The retained region is [Left, w-Right) × [Top, h-Bottom) relative to the
// image origin. A region with zero or negative extent, or one reaching
// outside the image, returns ErrInvalidCropExtent. The input is never
// modified.
func CropImage(img image.Image, cs CropSpec) (*image.NRGBA, error) {
	bounds := img.Bounds()
	rect := cs.Box.Retained(bounds.Dx(), bounds.Dy()).Add(bounds.Min)

	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return nil, fmt.Errorf("%w: box %+v leaves %dx%d of %dx%d",
			ErrInvalidCropExtent, cs.Box, rect.Dx(), rect.Dy(), bounds.Dx(), bounds.Dy())
	}
	if !rect.In(bounds) {
		return nil, fmt.Errorf("%w: region %v outside image bounds %v", ErrInvalidCropExtent, rect, bounds)
	}
	if cs.BorderWidth < 0 {
		return nil, fmt.Errorf("border width must be >= 0, got %d", cs.BorderWidth)
	}

	cropped := imaging.Crop(img, rect)
	if cs.BorderWidth > 0 {
		cropped = Pad(cropped, cs.BorderWidth, cs.BorderColor)
	}
	return cropped, nil
}

// Pad surrounds img with a solid border of the given width on all sides.
func Pad(img image.Image, width int, fill color.Color) *image.NRGBA {
	b := img.Bounds()
	canvas := imaging.New(b.Dx()+2*width, b.Dy()+2*width, fill)
	return imaging.Paste(canvas, img, image.Pt(width, width))
}

// CropRaster applies cs to a raster. The result keeps the input stride, so
// stride 3 input yields stride 3 output.
func CropRaster(r Raster, cs CropSpec) (Raster, error) {
	stride, err := r.Stride()
	if err != nil {
		return Raster{}, err
	}
	img, err := ToImage(r)
	if err != nil {
		return Raster{}, err
	}
	out, err := CropImage(img, cs)
	if err != nil {
		return Raster{}, err
	}
	return packNRGBA(out, stride), nil
}

// CropResult contains an encoded image returned to tool clients.
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodeResult encodes img as a base64 PNG.
func EncodeResult(img image.Image) (*CropResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &CropResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
