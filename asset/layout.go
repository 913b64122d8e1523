package asset

import (
	"fmt"
	"strings"
)

// Layout is the frame arrangement of stereoscopic 360° content.
type Layout int

const (
	LayoutNone Layout = iota
	LayoutTopBottom
	LayoutLeftRight
)

var layoutNames = map[Layout]string{
	LayoutNone:      "NONE",
	LayoutTopBottom: "TOP_BOTTOM",
	LayoutLeftRight: "LEFT_RIGHT",
}

func (l Layout) String() string {
	if name, ok := layoutNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// ParseLayout accepts the layout names case-insensitively. An empty string is LayoutNone.
func ParseLayout(s string) (Layout, error) {
	if s == "" {
		return LayoutNone, nil
	}
	for layout, name := range layoutNames {
		if strings.EqualFold(name, s) {
			return layout, nil
		}
	}
	return LayoutNone, fmt.Errorf("%w: unknown stereoscopic layout %q", ErrInvalid, s)
}

func (l Layout) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Layout) UnmarshalText(text []byte) error {
	parsed, err := ParseLayout(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
