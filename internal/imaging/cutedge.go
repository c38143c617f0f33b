package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// CutOptions configures margin detection and cropping for one page.
type CutOptions struct {
	// ActivityThreshold is the normalized profile value a line must exceed
	// to count as content.
	ActivityThreshold float64

	// Margins is the background kept outside detected content on each edge.
	Margins Margins

	// UseLuminance scores lines by luminance change instead of the sum of
	// red, green and blue changes.
	UseLuminance bool

	// BorderWidth pads the cropped page when positive.
	BorderWidth int

	// BorderColor fills the padding.
	BorderColor color.NRGBA
}

// DefaultCutOptions returns the stock detection settings.
func DefaultCutOptions() CutOptions {
	return CutOptions{
		ActivityThreshold: DefaultActivityThreshold,
		Margins:           UniformMargins(DefaultMargin),
		UseLuminance:      true,
		BorderWidth:       0,
		BorderColor:       DefaultBorderColor,
	}
}

// Validate rejects options that cannot describe a crop.
func (o CutOptions) Validate() error {
	if math.IsNaN(o.ActivityThreshold) || math.IsInf(o.ActivityThreshold, 0) {
		return fmt.Errorf("activity threshold must be finite, got %v", o.ActivityThreshold)
	}
	m := o.Margins
	if m.Top < 0 || m.Bottom < 0 || m.Left < 0 || m.Right < 0 {
		return fmt.Errorf("margins must be >= 0, got %+v", m)
	}
	if o.BorderWidth < 0 {
		return fmt.Errorf("border width must be >= 0, got %d", o.BorderWidth)
	}
	return nil
}

func (o CutOptions) cropSpec(box BoundingBox) CropSpec {
	return CropSpec{Box: box, BorderWidth: o.BorderWidth, BorderColor: o.BorderColor}
}

// Detection is the outcome of margin detection on one raster.
type Detection struct {
	Width    int              `json:"width"`
	Height   int              `json:"height"`
	Stride   int              `json:"stride"`
	Profiles ActivityProfiles `json:"-"`
	Box      BoundingBox      `json:"box"`
}

// Retained returns the rectangle the detected box keeps.
func (d *Detection) Retained() image.Rectangle {
	return d.Box.Retained(d.Width, d.Height)
}

// Detect decodes a raster, profiles it and locates the bounding box without
// cropping anything.
func Detect(r Raster, opts CutOptions) (*Detection, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	stride, err := r.Stride()
	if err != nil {
		return nil, fmt.Errorf("decode raster: %w", err)
	}
	grid, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode raster: %w", err)
	}

	profiles := ComputeProfiles(grid, opts.UseLuminance)
	return &Detection{
		Width:    r.Width,
		Height:   r.Height,
		Stride:   stride,
		Profiles: profiles,
		Box:      Locate(profiles, opts.ActivityThreshold, opts.Margins),
	}, nil
}

// CutEdge removes the uniform margin around the content of a raster.
//
// The raster is decoded, profiled along both axes, and the first and last
// active line on each axis is located. The configured retention margin is
// then applied and the raster is cropped, and padded when opts.BorderWidth is
// positive. The output keeps the input's pixel stride.
//
// Errors wrap ErrUnsupportedPixelStride, ErrEmptyRaster or
// ErrInvalidCropExtent. No partial raster is returned on error.
func CutEdge(r Raster, opts CutOptions) (Raster, error) {
	d, err := Detect(r, opts)
	if err != nil {
		return Raster{}, err
	}
	return CropRaster(r, opts.cropSpec(d.Box))
}

// CutEdgeImage is CutEdge for decoded images. Detection runs on the packed
// raster form of img; the crop is taken from img itself.
func CutEdgeImage(img image.Image, opts CutOptions) (*image.NRGBA, *Detection, error) {
	d, err := Detect(FromImage(img), opts)
	if err != nil {
		return nil, nil, err
	}
	out, err := CropImage(img, opts.cropSpec(d.Box))
	if err != nil {
		return nil, d, err
	}
	return out, d, nil
}
