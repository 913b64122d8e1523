// Package scrub translates pointer gestures on the seek bar and the volume
// slider into normalized values, independent of rendering.
package scrub

import "math"

// Point is a pointer position in client coordinates.
type Point struct {
	X, Y float64
}

// Touch is an active touch point.
type Touch struct {
	ID int
	Point
}

// primaryTouch is the only touch identifier a drag follows.
const primaryTouch = 0

// Track is the on-screen rectangle of a bar.
type Track struct {
	Left, Top, Width, Height float64
}

// Focuser returns keyboard focus to the player after a drag.
type Focuser interface {
	Focus()
}

// Capture routes document-wide pointer moves and the final release to a drag.
// The returned function stops the routing and must be called exactly once.
type Capture interface {
	Capture(move func(Point), release func(Point)) (stop func())
}

// Fraction is the horizontal position of x along track, clamped to [0, 1].
func Fraction(x float64, track Track) float64 {
	if track.Width <= 0 {
		return 0
	}
	return clamp01((x - track.Left) / track.Width)
}

// VerticalFraction is the position of y along track with the top edge at 1.
func VerticalFraction(y float64, track Track) float64 {
	switch {
	case y < track.Top:
		return 1
	case track.Height <= 0 || y > track.Top+track.Height:
		return 0
	default:
		return clamp01(1 - (y-track.Top)/track.Height)
	}
}

func clamp01(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return math.Max(0, math.Min(1, f))
}

func findTouch(touches []Touch, id int) (Touch, bool) {
	for _, t := range touches {
		if t.ID == id {
			return t, true
		}
	}
	return Touch{}, false
}
