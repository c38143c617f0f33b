package imaging

import "gonum.org/v1/gonum/floats"

// profileFloor is the smallest denominator used when normalizing a profile,
// so a blank page yields an all-zero profile instead of NaNs.
const profileFloor = 1e-4

// Profile is a normalized edge-activity measure along one axis: one entry per
// row or per column. Entries lie in [0, 1] and the busiest line is exactly 1
// unless every line is blank.
type Profile []float64

// ActivityProfiles holds the per-row and per-column profiles of one image.
type ActivityProfiles struct {
	Rows Profile `json:"rows"` // one entry per row, length = height
	Cols Profile `json:"cols"` // one entry per column, length = width
}

// ComputeProfiles measures how much adjacent pixels differ along every row
// and every column of the grid.
//
// For each line, the absolute differences between consecutive pixels are
// accumulated separately for red, green, blue and luminance. In luminance mode
// the line's score is the luminance total; otherwise it is the sum of the
// three channel totals. Each axis is then divided by its largest score
// (floored at 1e-4), which makes thresholds independent of page size.
//
// Every pixel is visited once per axis.
func ComputeProfiles(g *ColorGrid, useLuminance bool) ActivityProfiles {
	return ActivityProfiles{
		Rows: rowProfile(g, useLuminance),
		Cols: colProfile(g, useLuminance),
	}
}

func rowProfile(g *ColorGrid, useLuminance bool) Profile {
	p := make(Profile, g.Height)
	for y := range p {
		row := g.Row(y)
		var acc activity
		for x := 1; x < len(row); x++ {
			acc.add(row[x-1], row[x])
		}
		p[y] = acc.score(useLuminance)
	}
	p.normalize()
	return p
}

func colProfile(g *ColorGrid, useLuminance bool) Profile {
	p := make(Profile, g.Width)
	for x := range p {
		var acc activity
		for y := 1; y < g.Height; y++ {
			acc.add(g.At(x, y-1), g.At(x, y))
		}
		p[x] = acc.score(useLuminance)
	}
	p.normalize()
	return p
}

// activity accumulates channel differences along one line.
type activity struct {
	r, g, b, lum int
}

func (a *activity) add(prev, cur uint32) {
	_, pr, pg, pb := UnpackARGB(prev)
	_, cr, cg, cb := UnpackARGB(cur)
	a.r += absDiff(pr, cr)
	a.g += absDiff(pg, cg)
	a.b += absDiff(pb, cb)
	a.lum += absInt(Luminance(cr, cg, cb) - Luminance(pr, pg, pb))
}

func (a activity) score(useLuminance bool) float64 {
	if useLuminance {
		return float64(a.lum)
	}
	return float64(a.r + a.g + a.b)
}

func (p Profile) normalize() {
	if len(p) == 0 {
		return
	}
	max := floats.Max(p)
	if max < profileFloor {
		max = profileFloor
	}
	for i := range p {
		p[i] /= max
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
