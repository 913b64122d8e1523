package scrub

import (
	"sync"

	"github.com/grauman/grauman/clock"
	"github.com/grauman/grauman/constant"
	"github.com/grauman/grauman/playback"
)

// Scrubber is the drag-to-seek model of the progress bar.
type Scrubber struct {
	mu sync.Mutex

	track   Track
	capture Capture
	focus   Focuser
	onSeek  func(seconds float64)

	duration    float64
	currentTime float64
	loaded      []playback.Range
	locked      bool

	dragging bool
	cursorX  float64
	pending  Point
	stop     func()
	throttle *clock.Throttle

	destroyed bool
}

// NewScrubber commits seeks through onSeek. capture and focus may be nil.
func NewScrubber(c clock.Clock, capture Capture, focus Focuser, onSeek func(seconds float64)) *Scrubber {
	s := &Scrubber{
		capture: capture,
		focus:   focus,
		onSeek:  onSeek,
	}
	s.throttle = clock.NewThrottle(c, constant.DragThrottle, s.flushMove)
	return s
}

// SetTrack updates the on-screen bar rectangle.
func (s *Scrubber) SetTrack(track Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track = track
}

// Update feeds the current playback state into the model.
func (s *Scrubber) Update(currentTime, duration float64, loaded []playback.Range, locked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentTime = currentTime
	s.duration = duration
	s.loaded = loaded
	s.locked = locked
}

func (s *Scrubber) setCursor(x float64) {
	s.cursorX = Fraction(x, s.track) * s.track.Width
}

func (s *Scrubber) playedFraction() float64 {
	if s.dragging {
		if s.track.Width <= 0 {
			return 0
		}
		return s.cursorX / s.track.Width
	}
	if s.duration <= 0 {
		return 0
	}
	return clamp01(s.currentTime / s.duration)
}

// revealed reports whether x lands on the played or a loaded part of the bar.
func (s *Scrubber) revealed(x float64) bool {
	f := Fraction(x, s.track)
	if f <= s.playedFraction() {
		return true
	}
	if s.duration <= 0 {
		return false
	}
	t := f * s.duration
	for _, r := range s.loaded {
		if t >= r.Start && t <= r.End {
			return true
		}
	}
	return false
}

func (s *Scrubber) hoverTime() float64 {
	if s.track.Width <= 0 {
		return 0
	}
	return s.cursorX / s.track.Width * s.duration
}

// Hover tracks the pointer over the bar for the hover tooltip.
func (s *Scrubber) Hover(p Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.destroyed {
		s.setCursor(p.X)
	}
}

// Press starts a drag. It reports whether the press was accepted.
func (s *Scrubber) Press(p Point) bool {
	s.mu.Lock()
	if s.destroyed || (s.locked && !s.revealed(p.X)) {
		s.mu.Unlock()
		return false
	}

	s.setCursor(p.X)
	s.dragging = true
	needCapture := s.capture != nil && s.stop == nil
	s.mu.Unlock()

	if needCapture {
		stop := s.capture.Capture(s.documentMove, s.documentRelease)
		s.mu.Lock()
		s.stop = stop
		s.mu.Unlock()
	}
	return true
}

func (s *Scrubber) documentMove(p Point) {
	s.mu.Lock()
	s.pending = p
	s.mu.Unlock()

	s.throttle.Call()
}

func (s *Scrubber) flushMove() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dragging && !s.destroyed {
		s.setCursor(s.pending.X)
	}
}

func (s *Scrubber) documentRelease(p Point) {
	s.mu.Lock()
	if s.destroyed || !s.dragging {
		s.mu.Unlock()
		return
	}
	s.setCursor(p.X)
	s.mu.Unlock()

	s.commit()
}

// commit ends the drag and seeks to the cursor.
func (s *Scrubber) commit() {
	s.throttle.Cancel()

	s.mu.Lock()
	s.dragging = false
	seconds := s.hoverTime()
	stop := s.stop
	s.stop = nil
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
	if s.onSeek != nil {
		s.onSeek(seconds)
	}
	if s.focus != nil {
		s.focus.Focus()
	}
}

// Click seeks to the clicked position without dragging.
func (s *Scrubber) Click(p Point) {
	s.mu.Lock()
	if s.destroyed || (s.locked && !s.revealed(p.X)) {
		s.mu.Unlock()
		return
	}
	seconds := Fraction(p.X, s.track) * s.duration
	s.mu.Unlock()

	if s.onSeek != nil {
		s.onSeek(seconds)
	}
}

// TouchStart begins a drag from the first touch point.
func (s *Scrubber) TouchStart(touches []Touch) bool {
	if len(touches) == 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	first := touches[0]
	if s.destroyed || (s.locked && !s.revealed(first.X)) {
		return false
	}
	s.setCursor(first.X)
	s.dragging = true
	return true
}

// TouchMove follows the primary touch while dragging.
func (s *Scrubber) TouchMove(touches []Touch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed || !s.dragging {
		return
	}
	if t, ok := findTouch(touches, primaryTouch); ok {
		s.setCursor(t.X)
	}
}

// TouchEnd commits once the primary touch is lifted or no touches remain.
func (s *Scrubber) TouchEnd(remaining []Touch) {
	s.mu.Lock()
	if s.destroyed || !s.dragging {
		s.mu.Unlock()
		return
	}
	_, primary := findTouch(remaining, primaryTouch)
	s.mu.Unlock()

	if len(remaining) == 0 || primary {
		s.commit()
	}
}

// Dragging reports whether a drag is in progress.
func (s *Scrubber) Dragging() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dragging
}

// HoverTime is the time under the cursor.
func (s *Scrubber) HoverTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hoverTime()
}

// PlayedFraction follows the cursor while dragging and the playhead otherwise.
func (s *Scrubber) PlayedFraction() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playedFraction()
}

// LoadedFraction is how far the buffer reaches.
func (s *Scrubber) LoadedFraction() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return playback.LoadedFraction(s.loaded, s.duration)
}

// Destroy releases the pointer capture and drops pending moves.
func (s *Scrubber) Destroy() {
	s.throttle.Cancel()

	s.mu.Lock()
	s.destroyed = true
	s.dragging = false
	stop := s.stop
	s.stop = nil
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
}
