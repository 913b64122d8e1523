// Package grauman exposes the host facades: a Grauman that picks a viewer for
// any asset, and the MediaPlayer, ImageViewer and DocumentViewer it delegates to.
//
// Facades own no rendering. The host supplies the container geometry, the
// media engines and the document frame, and forwards input and engine events.
package grauman

import (
	"errors"
	"math"

	"github.com/grauman/grauman/geometry"
	"github.com/grauman/grauman/playback"
	"github.com/grauman/grauman/scrub"
)

var (
	ErrInvalidContainer      = errors.New("container must be a non-nil Container")
	ErrInvalidFile           = errors.New("file must be a non-nil asset descriptor")
	ErrUnsupportedFile       = errors.New("no viewer for this file")
	ErrInvalidSpeed          = playback.ErrInvalidSpeed
	ErrInvalidUpscale        = geometry.ErrInvalidUpscale
	ErrInvalidViewMode       = errors.New("view mode must be FIT or FILL")
	ErrFullscreenUnsupported = errors.New("fullscreen is not supported in this environment")
	ErrNoEngineFactory       = errors.New("settings have no engine factory for media files")
	ErrNoFrameFactory        = errors.New("settings have no frame factory for documents")
)

// Container is the element a viewer mounts into.
type Container interface {
	// Box is the element's size including its padding.
	Box() geometry.Box
	// Viewport is the screen size used while fullscreen.
	Viewport() geometry.Size
}

// Fullscreener is implemented by containers that can enter fullscreen.
type Fullscreener interface {
	RequestFullscreen(on bool) error
}

// containerSize is the floored content box of c.
func containerSize(c Container) (width, height int) {
	if c == nil {
		return 0, 0
	}
	box := geometry.ContentBox(c.Box())
	return int(math.Floor(box.Width)), int(math.Floor(box.Height))
}

type noFocus struct{}

func (noFocus) Focus() {}

// focuser is c's Focuser, if any.
func focuser(c Container) scrub.Focuser {
	if f, ok := c.(scrub.Focuser); ok {
		return f
	}
	return noFocus{}
}

type noCapture struct{}

func (noCapture) Capture(func(scrub.Point), func(scrub.Point)) func() {
	return func() {}
}

// capturer routes document-wide pointer events through c when it can.
func capturer(c Container) scrub.Capture {
	if cp, ok := c.(scrub.Capture); ok {
		return cp
	}
	return noCapture{}
}

func requestFullscreen(c Container, on bool) error {
	if f, ok := c.(Fullscreener); ok {
		return f.RequestFullscreen(on)
	}
	return nil
}
