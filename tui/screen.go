package tui

import (
	"sync"

	"github.com/grauman/grauman/geometry"
	"github.com/grauman/grauman/scrub"
)

// screen is the container of the terminal player: the terminal window in
// cells. Fullscreen requests go to the mpv window and pointer drags are
// captured from the terminal's mouse events.
type screen struct {
	mu sync.Mutex

	width, height int
	fullscreen    func(on bool) error

	move    func(scrub.Point)
	release func(scrub.Point)
}

func (s *screen) Box() geometry.Box {
	s.mu.Lock()
	defer s.mu.Unlock()
	return geometry.Box{Width: float64(s.width), Height: float64(s.height)}
}

func (s *screen) Viewport() geometry.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return geometry.Size{Width: float64(s.width), Height: float64(s.height)}
}

func (s *screen) resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
}

func (s *screen) setFullscreen(fn func(on bool) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fullscreen = fn
}

func (s *screen) RequestFullscreen(on bool) error {
	s.mu.Lock()
	fn := s.fullscreen
	s.mu.Unlock()

	if fn == nil {
		return nil
	}
	return fn(on)
}

func (s *screen) Capture(move, release func(scrub.Point)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.move, s.release = move, release

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.move, s.release = nil, nil
	}
}

// pointer routes a mouse motion or release to the captured drag.
// It reports whether a drag consumed it.
func (s *screen) pointer(p scrub.Point, released bool) bool {
	s.mu.Lock()
	move, release := s.move, s.release
	s.mu.Unlock()

	switch {
	case released && release != nil:
		release(p)
	case !released && move != nil:
		move(p)
	default:
		return false
	}
	return true
}
