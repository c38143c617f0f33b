package imaging

import (
	"image"
	"image/color"
	"image/draw"
)

// trimShade darkens the part of the page that a crop would remove.
var trimShade = color.NRGBA{R: 0, G: 0, B: 0, A: 96}

// MarginPreview draws the detected box over a copy of img.
//
// The band that would be trimmed is shaded and the retained rectangle is
// outlined in outline, two pixels wide, drawn just inside the rectangle.
// Boxes that retain nothing produce a fully shaded image with no outline.
func MarginPreview(img image.Image, box BoundingBox, outline color.Color) *image.NRGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	result := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(result, result.Bounds(), img, bounds.Min, draw.Src)

	keep := box.Retained(w, h).Intersect(result.Bounds())
	shade := image.NewUniform(trimShade)

	// Shade the four trimmed bands: top, bottom, left, right.
	bands := []image.Rectangle{
		image.Rect(0, 0, w, keep.Min.Y),
		image.Rect(0, keep.Max.Y, w, h),
		image.Rect(0, keep.Min.Y, keep.Min.X, keep.Max.Y),
		image.Rect(keep.Max.X, keep.Min.Y, w, keep.Max.Y),
	}
	if keep.Empty() {
		bands = []image.Rectangle{result.Bounds()}
	}
	for _, band := range bands {
		draw.Draw(result, band, shade, image.Point{}, draw.Over)
	}

	if keep.Empty() {
		return result
	}

	const thickness = 2
	line := image.NewUniform(outline)
	edges := []image.Rectangle{
		image.Rect(keep.Min.X, keep.Min.Y, keep.Max.X, keep.Min.Y+thickness),
		image.Rect(keep.Min.X, keep.Max.Y-thickness, keep.Max.X, keep.Max.Y),
		image.Rect(keep.Min.X, keep.Min.Y, keep.Min.X+thickness, keep.Max.Y),
		image.Rect(keep.Max.X-thickness, keep.Min.Y, keep.Max.X, keep.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(result, e.Intersect(keep), line, image.Point{}, draw.Src)
	}
	return result
}
