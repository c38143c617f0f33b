package imaging

import "image"

// DefaultActivityThreshold is the normalized activity above which a line is
// treated as page content.
const DefaultActivityThreshold = 0.02

// DefaultMargin is the number of background pixels kept outside detected
// content on each edge.
const DefaultMargin = 15

// Margins holds the retention margin for each edge, in pixels.
type Margins struct {
	Top    int `json:"top" yaml:"top"`
	Bottom int `json:"bottom" yaml:"bottom"`
	Left   int `json:"left" yaml:"left"`
	Right  int `json:"right" yaml:"right"`
}

// UniformMargins returns the same margin on all four edges.
func UniformMargins(m int) Margins {
	return Margins{Top: m, Bottom: m, Left: m, Right: m}
}

// BoundingBox is the number of pixels to remove from each edge.
type BoundingBox struct {
	Left   int `json:"left" yaml:"left"`
	Top    int `json:"top" yaml:"top"`
	Right  int `json:"right" yaml:"right"`
	Bottom int `json:"bottom" yaml:"bottom"`
}

// Retained returns the rectangle kept by the box on a w×h image:
// [Left, w-Right) × [Top, h-Bottom).
func (b BoundingBox) Retained(w, h int) image.Rectangle {
	return image.Rectangle{
		Min: image.Point{X: b.Left, Y: b.Top},
		Max: image.Point{X: w - b.Right, Y: h - b.Bottom},
	}
}

// IsZero reports whether the box removes nothing.
func (b BoundingBox) IsZero() bool {
	return b == BoundingBox{}
}

// LeadingCut scans the profile forward and returns how many pixels to remove
// from its start.
//
// The raw cut is the index of the first entry strictly above threshold, or 0
// when no entry is. If the raw cut exceeds margin, margin pixels are given
// back; otherwise the raw cut is returned as is.
func LeadingCut(p Profile, threshold float64, margin int) int {
	raw := 0
	for i, v := range p {
		if v > threshold {
			raw = i
			break
		}
	}
	return retain(raw, margin)
}

// TrailingCut is LeadingCut scanning backward from the last entry.
func TrailingCut(p Profile, threshold float64, margin int) int {
	raw := 0
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] > threshold {
			raw = len(p) - 1 - i
			break
		}
	}
	return retain(raw, margin)
}

// retain pulls a cut back by margin only when there is room to do so.
func retain(cut, margin int) int {
	if cut > margin {
		return cut - margin
	}
	return cut
}

// Locate finds the four-sided bounding box from a pair of profiles: top and
// bottom from the row profile, left and right from the column profile.
func Locate(ap ActivityProfiles, threshold float64, m Margins) BoundingBox {
	return BoundingBox{
		Left:   LeadingCut(ap.Cols, threshold, m.Left),
		Top:    LeadingCut(ap.Rows, threshold, m.Top),
		Right:  TrailingCut(ap.Cols, threshold, m.Right),
		Bottom: TrailingCut(ap.Rows, threshold, m.Bottom),
	}
}
