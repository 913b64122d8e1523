package history

import (
	"fmt"
	"math"
	"time"

	"github.com/grauman/grauman/timefmt"
)

// resumeMargin keeps positions this close to either end from being resumed.
const resumeMargin = 5.0

// Entry is the last known playback position of a media URL.
type Entry struct {
	URL      string  `json:"url"`
	Title    string  `json:"title"`
	Kind     string  `json:"kind"`
	Position float64 `json:"position"`
	// Duration is zero for live streams.
	Duration          float64   `json:"duration"`
	WatchedPercentage float64   `json:"watched_percentage"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (e *Entry) watched() float64 {
	if e.Duration <= 0 {
		return 0
	}
	return math.Min(100, math.Max(0, e.Position/e.Duration*100))
}

// Resumable reports whether playback should continue from Position.
func (e *Entry) Resumable() bool {
	if e.Position < resumeMargin {
		return false
	}
	return e.Duration <= 0 || e.Position < e.Duration-resumeMargin
}

func (e *Entry) String() string {
	if e.Duration <= 0 {
		return fmt.Sprintf("%s : %s", e.Title, timefmt.ToTime(e.Position))
	}
	return fmt.Sprintf("%s : %s / %s", e.Title, timefmt.ToTime(e.Position), timefmt.ToTime(e.Duration))
}
