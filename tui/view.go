package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grauman/grauman/color"
	"github.com/grauman/grauman/icon"
	"github.com/grauman/grauman/playback"
	"github.com/grauman/grauman/style"
	"github.com/grauman/grauman/timefmt"
	"github.com/grauman/grauman/viewer"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *bubble) View() string {
	st := b.player.State()

	lines := []string{
		b.viewTitle(),
		"",
		b.viewStatus(st),
		"",
		b.viewProgress(),
		b.viewTimes(st),
		b.viewSettings(st),
	}

	if b.lastError != "" {
		msg := b.lastError
		if b.width > 0 {
			msg = wrap.String(msg, b.width)
		}
		lines = append(lines, "", style.ErrorBadge("Error"), msg)
	}

	return b.renderLines(lines)
}

func (b *bubble) viewTitle() string {
	kind := b.player.Kind()
	glyph := icon.Get(lo.Ternary(kind == viewer.Audio, icon.Audio, icon.Video))

	title := b.title
	if title == "" && b.player.File() != nil {
		title = b.player.File().URL()
	}

	return style.Truncate(b.width)(fmt.Sprintf("%s %s %s", style.Title(kind.String()), glyph, style.Fg(color.Purple)(title)))
}

var statusIcons = map[playback.Status]icon.Icon{
	playback.InitialLoad: icon.Pause,
	playback.Loading:     icon.Loading,
	playback.Paused:      icon.Pause,
	playback.Playing:     icon.Play,
	playback.Ended:       icon.Ended,
	playback.Error:       icon.Fail,
}

func (b *bubble) viewStatus(st playback.State) string {
	parts := []string{icon.Get(statusIcons[st.Status]), style.Bold(strings.ToLower(st.Status.String()))}

	if st.Loading {
		parts = append(parts, b.spinnerC.View())
	}
	if st.ShowPlayPrompt {
		parts = append(parts, style.Faint("press space to play"))
	}
	switch st.Notification {
	case playback.NoticePlay:
		parts = append(parts, style.Fg(color.Green)(icon.Get(icon.Play)))
	case playback.NoticePause:
		parts = append(parts, style.Fg(color.Yellow)(icon.Get(icon.Pause)))
	}

	return strings.Join(lo.Compact(parts), " ")
}

func (b *bubble) viewProgress() string {
	s := b.player.Scrubber()
	if s == nil {
		return b.progressC.ViewAs(0)
	}
	return b.progressC.ViewAs(s.PlayedFraction())
}

func (b *bubble) viewTimes(st playback.State) string {
	times := fmt.Sprintf("%s / %s", st.ElapsedLabel, st.TotalLabel)

	if s := b.player.Scrubber(); s != nil {
		if loaded := s.LoadedFraction(); loaded > 0 {
			times += style.Faint(fmt.Sprintf("  buffered %.0f%%", loaded*100))
		}
		if s.Dragging() {
			times += style.Fg(color.Orange)(fmt.Sprintf("  → %s", timefmt.ToTime(s.HoverTime())))
		}
	}
	return times
}

func (b *bubble) viewSettings(st playback.State) string {
	volume := fmt.Sprintf("%s %.0f%%", icon.Get(icon.Volume), st.Volume*100)
	if st.Muted {
		volume = icon.Get(icon.Muted) + " muted"
	}

	parts := []string{volume, fmt.Sprintf("%gx", st.PlaybackSpeed)}
	if st.Loop {
		parts = append(parts, icon.Get(icon.Loop)+" loop")
	}
	if st.Fullscreen {
		parts = append(parts, "fullscreen")
	}
	if w, h := b.player.Width(), b.player.Height(); w > 0 && h > 0 {
		parts = append(parts, style.Faint(fmt.Sprintf("%dx%d", w, h)))
	}

	return strings.Join(parts, style.Faint(" · "))
}

func (b *bubble) renderLines(lines []string) string {
	l := strings.Join(lines, "\n")
	if h := len(lines) + lipgloss.Height(b.helpC.View(b.keymap)); b.height > h {
		l += strings.Repeat("\n", b.height-h+1)
	} else {
		l += "\n\n"
	}
	l += b.helpC.View(b.keymap)

	return paddingStyle.Render(l)
}
