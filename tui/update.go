package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grauman/grauman/event"
	"github.com/grauman/grauman/scrub"
)

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (b *bubble) Init() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, tick())
}

func (b *bubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return b.updateKey(msg)
	case tea.MouseMsg:
		b.updateMouse(msg)
	case engineMsg:
		b.lastEvent = msg.name
		switch msg.name {
		case event.Error:
			b.lastError = fmt.Sprint(msg.payload)
		case event.LoadStart, event.Playing:
			b.lastError = ""
		}
	case tickMsg:
		select {
		case <-b.exited:
			return b, tea.Quit
		default:
		}
		return b, tick()
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	}

	return b, nil
}

func (b *bubble) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keymap.forceQuit), key.Matches(msg, b.keymap.quit):
		return b, tea.Quit
	case key.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
		return b, nil
	}

	if k, ok := playerKey(msg); ok {
		b.player.HandleKey(k)
	}
	return b, nil
}

// updateMouse drives the scrubber: a press on the bar starts a drag that
// follows the pointer until release.
func (b *bubble) updateMouse(msg tea.MouseMsg) {
	p := scrub.Point{X: float64(msg.X), Y: float64(msg.Y)}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Y != paddingStyle.GetPaddingTop()+progressRow {
			return
		}
		if s := b.player.Scrubber(); s != nil {
			s.Press(p)
		}
	case tea.MouseActionMotion:
		if !b.screen.pointer(p, false) {
			if s := b.player.Scrubber(); s != nil {
				s.Hover(p)
			}
		}
	case tea.MouseActionRelease:
		b.screen.pointer(p, true)
	}
}
