// Package style holds the lipgloss helpers used for CLI output.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/grauman/grauman/color"
)

// New returns an empty style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a renderer applying the foreground color c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)

// Badge renders s as a padded tag, used for viewer kinds and statuses.
func Badge(fg, bg lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(fg).Background(bg).Padding(0, 1).Render(s) }
}

// ErrorBadge renders s on the error color.
var ErrorBadge = Badge(color.White, color.Red)

// Title renders a section heading of the terminal player.
var Title = Badge(color.White, color.Purple)

// Truncate cuts every line of s at width cells.
func Truncate(width int) func(string) string {
	return func(s string) string { return New().MaxWidth(width).Render(s) }
}
