package imaging

// ColorGrid holds one packed ARGB sample per pixel.
//
// Samples are laid out row-major in a single flat slice, so the sample for
// column x of row y lives at Pix[y*Width+x]. Each sample packs its channels
// as:
//
//	alpha<<24 | red<<16 | green<<8 | blue
type ColorGrid struct {
	Width  int
	Height int
	Pix    []uint32
}

// At returns the packed sample at column x, row y.
func (g *ColorGrid) At(x, y int) uint32 {
	return g.Pix[y*g.Width+x]
}

// Row returns the samples of row y. The slice aliases the grid.
func (g *ColorGrid) Row(y int) []uint32 {
	return g.Pix[y*g.Width : (y+1)*g.Width]
}

// PackARGB packs four 8-bit channels into a grid sample.
func PackARGB(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// UnpackARGB splits a grid sample into its four channels.
func UnpackARGB(s uint32) (a, r, g, b uint8) {
	return uint8(s >> 24), uint8(s >> 16), uint8(s >> 8), uint8(s)
}

// Decode converts a raster into a ColorGrid.
//
// The stride is derived from the buffer length and must be 3 or 4; anything
// else returns ErrUnsupportedPixelStride. Stride 4 pixels are read as
// (alpha, blue, green, red) and stride 3 pixels as (blue, green, red) with
// alpha forced to 0xff. Pixels are consumed in row-major order.
func Decode(r Raster) (*ColorGrid, error) {
	stride, err := r.Stride()
	if err != nil {
		return nil, err
	}

	g := &ColorGrid{
		Width:  r.Width,
		Height: r.Height,
		Pix:    make([]uint32, r.Width*r.Height),
	}

	p := r.Pix
	switch stride {
	case StrideABGR:
		for i, j := 0, 0; i < len(p); i, j = i+4, j+1 {
			g.Pix[j] = PackARGB(p[i], p[i+3], p[i+2], p[i+1])
		}
	case StrideBGR:
		for i, j := 0, 0; i < len(p); i, j = i+3, j+1 {
			g.Pix[j] = PackARGB(0xff, p[i+2], p[i+1], p[i])
		}
	}
	return g, nil
}
