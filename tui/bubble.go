package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/grauman/grauman/grauman"
	"github.com/grauman/grauman/scrub"
)

const refreshInterval = 200 * time.Millisecond

// progressRow is the line of the progress bar inside the padded view.
const progressRow = 4

// engineMsg carries an engine event into the program after the player handled it.
type engineMsg struct {
	name    string
	payload any
}

type tickMsg time.Time

// bubble renders a MediaPlayer and forwards terminal input to it.
type bubble struct {
	player *grauman.MediaPlayer
	screen *screen
	title  string

	keymap *keymap

	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model

	// exited is closed when the engine process is gone
	exited    <-chan struct{}
	lastEvent string
	lastError string

	width, height int
}

func newBubble(player *grauman.MediaPlayer, scr *screen, title string) *bubble {
	b := &bubble{
		player: player,
		screen: scr,
		title:  title,
		keymap: newKeymap(),
	}

	b.helpC = help.New()

	b.spinnerC = spinner.New()
	b.spinnerC.Spinner = spinner.Dot
	b.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	b.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	return b
}

// resize propagates terminal dimensions to the container and the components.
func (b *bubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	b.progressC.Width = b.width
	b.helpC.Width = b.width

	b.screen.resize(width, height)
	b.player.Resize()

	if s := b.player.Scrubber(); s != nil {
		s.SetTrack(scrub.Track{
			Left:   float64(paddingStyle.GetPaddingLeft()),
			Top:    float64(paddingStyle.GetPaddingTop() + progressRow),
			Width:  float64(b.width),
			Height: 1,
		})
	}
}
