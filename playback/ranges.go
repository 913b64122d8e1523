package playback

import (
	"math"
	"sort"

	"golang.org/x/exp/slices"
)

// Range is a buffered interval [Start, End) in seconds.
type Range struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Contains reports whether t falls inside r.
func (r Range) Contains(t float64) bool {
	return t >= r.Start && t < r.End
}

// NormalizeRanges sorts ranges, clamps them to be non-negative and merges
// overlapping or touching intervals. Empty and NaN intervals are dropped.
func NormalizeRanges(ranges []Range) []Range {
	clean := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		if math.IsNaN(r.Start) || math.IsNaN(r.End) {
			continue
		}
		r.Start = math.Max(0, r.Start)
		r.End = math.Max(0, r.End)
		if r.End <= r.Start {
			continue
		}
		clean = append(clean, r)
	}

	sort.SliceStable(clean, func(i, j int) bool {
		return clean[i].Start < clean[j].Start
	})

	merged := make([]Range, 0, len(clean))
	for _, r := range clean {
		if n := len(merged); n > 0 && r.Start <= merged[n-1].End {
			merged[n-1].End = math.Max(merged[n-1].End, r.End)
			continue
		}
		merged = append(merged, r)
	}

	return slices.Clip(merged)
}

// LoadedFraction is the end of the last range relative to duration, capped at 1.
func LoadedFraction(ranges []Range, duration float64) float64 {
	if len(ranges) == 0 || duration <= 0 || math.IsInf(duration, 0) {
		return 0
	}
	return math.Min(ranges[len(ranges)-1].End/duration, 1)
}
