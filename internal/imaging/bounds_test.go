package imaging

import (
	"image"
	"testing"
)

func TestLeadingTrailingCut(t *testing.T) {
	tests := []struct {
		name         string
		profile      Profile
		threshold    float64
		margin       int
		wantLeading  int
		wantTrailing int
	}{
		{
			name:         "content in the middle, no margin",
			profile:      Profile{0, 0, 0, 0.5, 1, 0.3, 0, 0},
			threshold:    0.02,
			wantLeading:  3,
			wantTrailing: 2,
		},
		{
			name:         "margin larger than cut keeps raw cut",
			profile:      Profile{0, 0, 0, 0.5, 1, 0.3, 0, 0},
			threshold:    0.02,
			margin:       5,
			wantLeading:  3,
			wantTrailing: 2,
		},
		{
			name:         "margin equal to cut keeps raw cut",
			profile:      Profile{0, 0, 0, 1, 0, 0, 0},
			threshold:    0.02,
			margin:       3,
			wantLeading:  3,
			wantTrailing: 3,
		},
		{
			name:         "margin subtracted when there is room",
			profile:      Profile{0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0},
			threshold:    0.02,
			margin:       2,
			wantLeading:  4,
			wantTrailing: 2,
		},
		{
			name:         "threshold is strict",
			profile:      Profile{0.02, 0.02, 0.5, 0.02},
			threshold:    0.02,
			wantLeading:  2,
			wantTrailing: 1,
		},
		{
			name:         "no activity",
			profile:      Profile{0, 0, 0, 0},
			threshold:    0.02,
			margin:       1,
			wantLeading:  0,
			wantTrailing: 0,
		},
		{
			name:         "activity at both ends",
			profile:      Profile{1, 0, 0, 1},
			threshold:    0.02,
			wantLeading:  0,
			wantTrailing: 0,
		},
		{
			name:         "empty profile",
			profile:      Profile{},
			threshold:    0.02,
			wantLeading:  0,
			wantTrailing: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LeadingCut(tt.profile, tt.threshold, tt.margin); got != tt.wantLeading {
				t.Errorf("LeadingCut = %d, want %d", got, tt.wantLeading)
			}
			if got := TrailingCut(tt.profile, tt.threshold, tt.margin); got != tt.wantTrailing {
				t.Errorf("TrailingCut = %d, want %d", got, tt.wantTrailing)
			}
		})
	}
}

func TestCut_MarginRetention(t *testing.T) {
	p := make(Profile, 100)
	p[60] = 1 // raw leading cut 60, raw trailing cut 39

	prevLeading, prevTrailing := LeadingCut(p, 0.02, 0), TrailingCut(p, 0.02, 0)
	for margin := 1; margin <= 80; margin++ {
		leading := LeadingCut(p, 0.02, margin)
		trailing := TrailingCut(p, 0.02, margin)

		if leading < 0 || trailing < 0 {
			t.Fatalf("margin %d: negative cut (%d, %d)", margin, leading, trailing)
		}
		if leading > 60 || trailing > 39 {
			t.Fatalf("margin %d: cut exceeds raw cut (%d, %d)", margin, leading, trailing)
		}
		if margin < 60 && leading >= prevLeading {
			t.Errorf("margin %d: leading cut %d did not decrease from %d", margin, leading, prevLeading)
		}
		if margin < 39 && trailing >= prevTrailing {
			t.Errorf("margin %d: trailing cut %d did not decrease from %d", margin, trailing, prevTrailing)
		}
		prevLeading, prevTrailing = leading, trailing
	}
}

func TestCut_ThresholdMonotonicity(t *testing.T) {
	// Activity ramps up toward the center from both sides.
	p := Profile{0, 0.01, 0.05, 0.1, 0.3, 0.6, 1, 0.7, 0.4, 0.2, 0.08, 0.03, 0}

	thresholds := []float64{0, 0.02, 0.04, 0.09, 0.25, 0.5, 0.65}
	prevLeading, prevTrailing := -1, -1
	for _, th := range thresholds {
		leading := LeadingCut(p, th, 0)
		trailing := TrailingCut(p, th, 0)
		if leading < prevLeading {
			t.Errorf("threshold %v: leading cut %d < %d at looser threshold", th, leading, prevLeading)
		}
		if trailing < prevTrailing {
			t.Errorf("threshold %v: trailing cut %d < %d at looser threshold", th, trailing, prevTrailing)
		}
		prevLeading, prevTrailing = leading, trailing
	}
}

func TestLocate(t *testing.T) {
	ap := ActivityProfiles{
		Rows: Profile{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0},
		Cols: Profile{0, 0, 0, 0, 0, 0, 1, 0, 0, 0},
	}
	m := Margins{Top: 2, Bottom: 3, Left: 4, Right: 1}

	got := Locate(ap, 0.02, m)
	want := BoundingBox{Left: 6 - 4, Top: 10 - 2, Right: 3 - 1, Bottom: 8 - 3}
	if got != want {
		t.Errorf("Locate = %+v, want %+v", got, want)
	}
}

func TestBoundingBox_Retained(t *testing.T) {
	b := BoundingBox{Left: 5, Top: 10, Right: 15, Bottom: 20}
	got := b.Retained(100, 80)
	want := image.Rect(5, 10, 85, 60)
	if got != want {
		t.Errorf("Retained = %v, want %v", got, want)
	}
	if b.IsZero() {
		t.Error("IsZero should be false")
	}
	if !(BoundingBox{}).IsZero() {
		t.Error("zero box should report IsZero")
	}
}
