package scrub

import (
	"sync"

	"github.com/grauman/grauman/clock"
	"github.com/grauman/grauman/constant"
)

// VolumeSlider is the vertical drag-to-set-volume model. The top of the track is full volume.
type VolumeSlider struct {
	mu sync.Mutex

	track    Track
	capture  Capture
	focus    Focuser
	onChange func(volume float64)

	hovering bool
	dragging bool
	pending  Point
	stop     func()
	throttle *clock.Throttle

	destroyed bool
}

func NewVolumeSlider(c clock.Clock, capture Capture, focus Focuser, onChange func(volume float64)) *VolumeSlider {
	v := &VolumeSlider{
		capture:  capture,
		focus:    focus,
		onChange: onChange,
	}
	v.throttle = clock.NewThrottle(c, constant.DragThrottle, v.flushMove)
	return v
}

func (v *VolumeSlider) SetTrack(track Track) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.track = track
}

// SetHover records whether the pointer is over the volume button.
func (v *VolumeSlider) SetHover(hovering bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hovering = hovering
}

// Visible reports whether the slider should be shown.
func (v *VolumeSlider) Visible(controllable bool) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return controllable && (v.hovering || v.dragging)
}

func (v *VolumeSlider) Dragging() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dragging
}

// Press starts a drag.
func (v *VolumeSlider) Press() {
	v.mu.Lock()
	if v.destroyed {
		v.mu.Unlock()
		return
	}
	v.dragging = true
	needCapture := v.capture != nil && v.stop == nil
	v.mu.Unlock()

	if needCapture {
		stop := v.capture.Capture(v.documentMove, v.documentRelease)
		v.mu.Lock()
		v.stop = stop
		v.mu.Unlock()
	}
}

func (v *VolumeSlider) documentMove(p Point) {
	v.mu.Lock()
	v.pending = p
	v.mu.Unlock()

	v.throttle.Call()
}

func (v *VolumeSlider) flushMove() {
	v.mu.Lock()
	if !v.dragging || v.destroyed {
		v.mu.Unlock()
		return
	}
	volume := VerticalFraction(v.pending.Y, v.track)
	v.mu.Unlock()

	v.emit(volume)
}

func (v *VolumeSlider) documentRelease(p Point) {
	v.throttle.Cancel()

	v.mu.Lock()
	if v.destroyed || !v.dragging {
		v.mu.Unlock()
		return
	}
	v.dragging = false
	volume := VerticalFraction(p.Y, v.track)
	stop := v.stop
	v.stop = nil
	v.mu.Unlock()

	if stop != nil {
		stop()
	}
	if v.focus != nil {
		v.focus.Focus()
	}
	v.emit(volume)
}

// TouchStart begins a touch drag.
func (v *VolumeSlider) TouchStart() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.destroyed {
		v.dragging = true
	}
}

// TouchMove sets the volume from the primary touch.
func (v *VolumeSlider) TouchMove(touches []Touch) {
	v.mu.Lock()
	if v.destroyed || !v.dragging {
		v.mu.Unlock()
		return
	}
	t, ok := findTouch(touches, primaryTouch)
	volume := VerticalFraction(t.Y, v.track)
	v.mu.Unlock()

	if ok {
		v.emit(volume)
	}
}

// TouchEnd ends the drag once the primary touch is lifted or no touches remain.
func (v *VolumeSlider) TouchEnd(remaining []Touch) {
	v.mu.Lock()
	if v.destroyed || !v.dragging {
		v.mu.Unlock()
		return
	}
	_, primary := findTouch(remaining, primaryTouch)
	if len(remaining) != 0 && !primary {
		v.mu.Unlock()
		return
	}
	v.dragging = false
	v.mu.Unlock()

	if v.focus != nil {
		v.focus.Focus()
	}
}

func (v *VolumeSlider) emit(volume float64) {
	if v.onChange != nil {
		v.onChange(volume)
	}
}

// Destroy releases the pointer capture and drops pending moves.
func (v *VolumeSlider) Destroy() {
	v.throttle.Cancel()

	v.mu.Lock()
	v.destroyed = true
	v.dragging = false
	stop := v.stop
	v.stop = nil
	v.mu.Unlock()

	if stop != nil {
		stop()
	}
}
