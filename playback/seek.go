package playback

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidSeek = errors.New("seek target must be a finite number of seconds or a frame with a known fps")

// SeekTarget is an absolute position given in seconds or in frames.
type SeekTarget struct {
	seconds float64
	frame   int
	byFrame bool
}

func Seconds(s float64) SeekTarget {
	return SeekTarget{seconds: s}
}

func Frame(n int) SeekTarget {
	return SeekTarget{frame: n, byFrame: true}
}

func (t SeekTarget) String() string {
	if t.byFrame {
		return fmt.Sprintf("frame %d", t.frame)
	}
	return fmt.Sprintf("%gs", t.seconds)
}

// resolve converts the target to seconds using fps for frame targets.
func (t SeekTarget) resolve(fps float64) (float64, error) {
	if t.byFrame {
		if fps <= 0 || math.IsNaN(fps) {
			return 0, fmt.Errorf("%w: %s without fps", ErrInvalidSeek, t)
		}
		return float64(t.frame) / fps, nil
	}
	if math.IsNaN(t.seconds) || math.IsInf(t.seconds, 0) {
		return 0, fmt.Errorf("%w: %s", ErrInvalidSeek, t)
	}
	return t.seconds, nil
}

// clampTime keeps seconds within [0, duration]. An infinite duration has no upper bound.
func clampTime(seconds, duration float64) float64 {
	return math.Min(math.Max(0, seconds), math.Max(0, duration))
}
