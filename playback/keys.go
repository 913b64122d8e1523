package playback

import (
	"errors"
	"fmt"
	"strings"

	"github.com/grauman/grauman/constant"
	"github.com/samber/lo"
)

var ErrInvalidSpeed = fmt.Errorf("playback speed must be one of %v", constant.PlaybackSpeeds)

// ValidSpeed reports whether speed is one of the allowed playback speeds.
func ValidSpeed(speed float64) bool {
	return lo.Contains(constant.PlaybackSpeeds, speed)
}

// StepSpeed returns the allowed speed next to current in direction dir (+1 or -1).
// It reports false at either end of the list or for a speed outside it.
func StepSpeed(current float64, dir int) (float64, bool) {
	i := lo.IndexOf(constant.PlaybackSpeeds, current)
	if i < 0 {
		return current, false
	}
	next := i + dir
	if next < 0 || next >= len(constant.PlaybackSpeeds) {
		return current, false
	}
	return constant.PlaybackSpeeds[next], true
}

// Controls is what keyboard shortcuts act on. A host facade implements it to
// route shortcuts through its validating, persisting setters.
type Controls interface {
	TogglePlay(notify bool)
	SeekBy(delta float64) error
	SeekTo(seconds float64) error
	StepFrame(delta int) bool
	IncreaseSpeed()
	DecreaseSpeed()
	ToggleMuted()
	AdjustVolume(delta float64)
	ToggleFullscreen()
	Duration() float64
}

// Key is a key press.
type Key struct {
	Name  string
	Shift bool
}

// Key names understood by HandleKey.
const (
	KeySpace = "space"
	KeyLeft  = "left"
	KeyRight = "right"
	KeyUp    = "up"
	KeyDown  = "down"
	KeyHome  = "home"
	KeyEnd   = "end"
)

var ErrUnknownKey = errors.New("unknown key")

// ParseKey reads names such as "space", "shift+.", "k" or "7".
func ParseKey(s string) (Key, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	var k Key
	if rest, ok := strings.CutPrefix(s, "shift+"); ok {
		k.Shift = true
		s = rest
	}
	switch s {
	case "", "shift":
		return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, s)
	case " ":
		s = KeySpace
	case "arrowleft":
		s = KeyLeft
	case "arrowright":
		s = KeyRight
	case "arrowup":
		s = KeyUp
	case "arrowdown":
		s = KeyDown
	}
	k.Name = s
	return k, nil
}

// HandleKey maps a key press onto c when shortcuts are enabled.
// It reports whether the key was consumed.
func HandleKey(c Controls, k Key) bool {
	switch k.Name {
	case ".":
		if k.Shift {
			c.IncreaseSpeed()
		} else {
			_ = c.SeekBy(constant.ShortSeekStep)
		}
	case ",":
		if k.Shift {
			c.DecreaseSpeed()
		} else {
			_ = c.SeekBy(-constant.ShortSeekStep)
		}
	case "f":
		c.ToggleFullscreen()
	case "l":
		_ = c.SeekBy(constant.LongSeekStep)
	case "j":
		_ = c.SeekBy(-constant.LongSeekStep)
	case KeySpace, "k":
		c.TogglePlay(true)
	case "m":
		c.ToggleMuted()
	case KeyLeft:
		return c.StepFrame(-1)
	case KeyRight:
		return c.StepFrame(1)
	case KeyUp:
		c.AdjustVolume(constant.VolumeStep)
	case KeyDown:
		c.AdjustVolume(-constant.VolumeStep)
	case KeyHome, "0":
		_ = c.SeekTo(0)
	case KeyEnd:
		// no end to jump to while the duration is unknown
		if d := c.Duration(); d > 0 {
			_ = c.SeekTo(d)
		}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if d := c.Duration(); d > 0 {
			decile := float64(k.Name[0]-'0') / 10
			_ = c.SeekTo(d * decile)
		}
	default:
		return false
	}
	return true
}

// HandleKey applies k through the configured controls when shortcuts are enabled.
func (m *Machine) HandleKey(k Key) bool {
	m.mu.Lock()
	enabled, controls, destroyed := m.shortcuts, m.controls, m.destroyed
	m.mu.Unlock()

	if !enabled || destroyed {
		return false
	}
	return HandleKey(controls, k)
}

// SetKeyboardShortcuts enables or disables HandleKey.
func (m *Machine) SetKeyboardShortcuts(enabled bool) {
	m.do(func() { m.shortcuts = enabled })
}

// SeekTo seeks to an absolute position in seconds.
func (m *Machine) SeekTo(seconds float64) error {
	return m.Seek(Seconds(seconds))
}

func (m *Machine) IncreaseSpeed() {
	if next, ok := StepSpeed(m.Settings().PlaybackSpeed, 1); ok {
		m.SetPlaybackSpeed(next)
	}
}

func (m *Machine) DecreaseSpeed() {
	if next, ok := StepSpeed(m.Settings().PlaybackSpeed, -1); ok {
		m.SetPlaybackSpeed(next)
	}
}

func (m *Machine) ToggleMuted() {
	m.SetMuted(!m.Settings().Muted)
}

func (m *Machine) AdjustVolume(delta float64) {
	m.SetVolume(m.Settings().Volume + delta)
}

func (m *Machine) ToggleFullscreen() {
	m.SetFullscreen(!m.Fullscreen())
}
