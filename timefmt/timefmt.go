// Package timefmt renders playback positions as clock or SMPTE timecodes.
package timefmt

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidTime = errors.New("invalid time")

// Format selects how a position is displayed.
type Format string

const (
	FormatTime  Format = "TIME"
	FormatSMPTE Format = "SMPTE"
)

// ParseFormat accepts the format names case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToUpper(s)) {
	case FormatTime:
		return FormatTime, nil
	case FormatSMPTE:
		return FormatSMPTE, nil
	}
	return "", fmt.Errorf("unknown time format %q", s)
}

func wrap(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func sanitize(seconds float64) float64 {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0
	}
	return seconds
}

// ToTime renders MM:SS, or HH:MM:SS once the position reaches an hour.
func ToTime(seconds float64) string {
	seconds = sanitize(seconds)

	hours := int(seconds / 3600)
	minutes := int(math.Mod(seconds/60, 60))
	secs := int(math.Mod(seconds, 60))

	if hours > 0 {
		return fmt.Sprintf("%s:%s:%s", wrap(hours), wrap(minutes), wrap(secs))
	}
	return fmt.Sprintf("%s:%s", wrap(minutes), wrap(secs))
}

// Frame is the zero-based frame shown at seconds.
func Frame(seconds, fps float64) int {
	rounded := math.Round(sanitize(seconds)*1e5) / 1e5
	return int(math.Floor(rounded * fps))
}

// ToSMPTE renders HH;MM;SS;FF. A non-positive fps yields a zero timecode.
func ToSMPTE(seconds, fps float64) string {
	if fps <= 0 || math.IsNaN(fps) {
		return "00;00;00;00"
	}

	frame := float64(Frame(seconds, fps))

	hours := int(frame / (fps * 3600))
	minutes := int(frame/(fps*60)) % 60
	secs := int(frame/fps) % 60
	frames := int(math.Floor(math.Mod(frame, fps)))

	return strings.Join([]string{wrap(hours), wrap(minutes), wrap(secs), wrap(frames)}, ";")
}

// Render formats seconds with f. SMPTE falls back to clock time when fps is unknown.
func Render(seconds, fps float64, f Format) string {
	if f == FormatSMPTE && fps > 0 {
		return ToSMPTE(seconds, fps)
	}
	return ToTime(seconds)
}

// ParseTime reads MM:SS or HH:MM:SS back into seconds.
func ParseTime(s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	var total int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}
		// hours are unbounded, minutes and seconds are not
		if i > 0 && n >= 60 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}
		total = total*60 + n
	}

	return float64(total), nil
}
