// Package geometry sizes a player inside its container under an upscale policy.
package geometry

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/grauman/grauman/asset"
	"github.com/samber/lo"
)

var ErrInvalidUpscale = errors.New("invalid upscale mode")

// UpscaleMode governs whether the player may grow past the asset's natural size.
type UpscaleMode string

const (
	FullscreenOnly UpscaleMode = "FULLSCREEN_ONLY"
	Never          UpscaleMode = "NEVER"
	Always         UpscaleMode = "ALWAYS"
)

// DefaultUpscale is used when no mode is configured.
const DefaultUpscale = FullscreenOnly

// UpscaleModes lists every valid mode.
var UpscaleModes = []UpscaleMode{FullscreenOnly, Never, Always}

// ParseUpscaleMode accepts the mode names case-insensitively.
func ParseUpscaleMode(s string) (UpscaleMode, error) {
	for _, mode := range UpscaleModes {
		if strings.EqualFold(string(mode), s) {
			return mode, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidUpscale, s)
}

// Valid reports whether m is one of UpscaleModes.
func (m UpscaleMode) Valid() bool {
	return lo.Contains(UpscaleModes, m)
}

// Permits reports whether upscaling is allowed in the given fullscreen state.
func (m UpscaleMode) Permits(fullscreen bool) bool {
	return m == Always || (m == FullscreenOnly && fullscreen)
}

// Size is a width and height in CSS pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Fixed canvas sizes for assets without meaningful pixel dimensions.
var (
	StereoWaveformSize = Size{Width: 1280, Height: 720}
	MonoWaveformSize   = Size{Width: 1280, Height: 360}
	AudioBarSize       = Size{Width: 720, Height: 32}
	ImmersiveSize      = Size{Width: 1920, Height: 1080}
)

// NaturalSize is the size the player would have with unlimited room.
func NaturalSize(d *asset.Descriptor) Size {
	switch {
	case d.PrimaryType() == "audio":
		if d.Waveform() == "" {
			return AudioBarSize
		}
		if d.Channels() >= 2 {
			return StereoWaveformSize
		}
		return MonoWaveformSize
	case d.Is360():
		return ImmersiveSize
	default:
		return Size{Width: float64(d.Width()), Height: float64(d.Height())}
	}
}

// Insets are the paddings of a container element.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// Box is a container's border-box size with its padding.
type Box struct {
	Width, Height float64
	Padding       Insets
}

// ContentBox excludes the padding from b. Negative results are clamped to zero.
func ContentBox(b Box) Size {
	return Size{
		Width:  math.Max(0, b.Width-b.Padding.Left-b.Padding.Right),
		Height: math.Max(0, b.Height-b.Padding.Top-b.Padding.Bottom),
	}
}

// Bounds picks the viewport while fullscreen, otherwise the container's content box.
func Bounds(container Box, viewport Size, fullscreen bool) Size {
	if fullscreen {
		return viewport
	}
	return ContentBox(container)
}

// ComputeSize fits natural into bounds.
//
// Width is scaled first when upscaling is permitted or it overflows. Height is
// then scaled, re-deriving width, when upscaling is permitted and width did not
// drive, or when height still overflows. A natural size that already fits is
// returned as is. Results are rounded to whole pixels.
func ComputeSize(natural, bounds Size, fullscreen bool, mode UpscaleMode) Size {
	if natural.Width <= 0 || natural.Height <= 0 {
		return Size{Width: math.Round(natural.Width), Height: math.Round(natural.Height)}
	}

	upscale := mode.Permits(fullscreen)

	width, height := natural.Width, natural.Height
	newWidth, newHeight := width, height
	widthDriven := false

	if upscale || width > bounds.Width {
		widthDriven = true
		ratio := bounds.Width / width
		newWidth = bounds.Width
		newHeight = height * ratio
		height *= ratio
		width *= ratio
	}

	if (upscale && !widthDriven) || height > bounds.Height {
		ratio := bounds.Height / height
		newHeight = bounds.Height
		newWidth = width * ratio
	}

	return Size{Width: math.Round(newWidth), Height: math.Round(newHeight)}
}
