package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grauman/grauman/color"
	"github.com/grauman/grauman/playback"
	"github.com/grauman/grauman/style"
)

// keymap lists the bindings shown in the help view. Player shortcuts are
// matched by playback.HandleKey, the bindings only document them.
type keymap struct {
	quit, forceQuit,
	playPause,
	seekBack, seekForward,
	stepFrame,
	volume, mute,
	speed,
	jump,
	fullscreen,
	showHelp key.Binding
}

func newKeymap() *keymap {
	return &keymap{
		quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" ", "k"),
			key.WithHelp(style.Fg(color.Orange)("space"), style.Fg(color.Orange)("play/pause")),
		),
		seekBack: key.NewBinding(
			key.WithKeys("j", ","),
			key.WithHelp("j/,", "back 10s/5s"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("l", "."),
			key.WithHelp("l/.", "forward 10s/5s"),
		),
		stepFrame: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("←/→", "frame"),
		),
		volume: key.NewBinding(
			key.WithKeys("up", "down"),
			key.WithHelp("↑/↓", "volume"),
		),
		mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		speed: key.NewBinding(
			key.WithKeys("<", ">"),
			key.WithHelp("</>", "speed"),
		),
		jump: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "home", "end"),
			key.WithHelp("0-9", "jump"),
		),
		fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.playPause, k.seekBack, k.seekForward, k.quit, k.showHelp}
}

func (k *keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.playPause, k.seekBack, k.seekForward, k.stepFrame, k.jump},
		{k.volume, k.mute, k.speed, k.fullscreen},
		{k.showHelp, k.quit, k.forceQuit},
	}
}

// playerKey translates a terminal key press into a player shortcut.
func playerKey(msg tea.KeyMsg) (playback.Key, bool) {
	switch s := msg.String(); s {
	case " ":
		return playback.Key{Name: playback.KeySpace}, true
	case ">":
		return playback.Key{Name: ".", Shift: true}, true
	case "<":
		return playback.Key{Name: ",", Shift: true}, true
	default:
		k, err := playback.ParseKey(s)
		return k, err == nil
	}
}
