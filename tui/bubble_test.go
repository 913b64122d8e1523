package tui

import (
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grauman/grauman/asset"
	"github.com/grauman/grauman/clock"
	"github.com/grauman/grauman/event"
	"github.com/grauman/grauman/grauman"
	"github.com/grauman/grauman/playback"
	"github.com/grauman/grauman/viewer"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeEngine struct {
	mu sync.Mutex

	plays, pauses int
	seeks         []float64
	fullscreen    []bool
}

func (f *fakeEngine) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays++
	return nil
}

func (f *fakeEngine) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses++
	return nil
}

func (f *fakeEngine) Seek(seconds float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, seconds)
	return nil
}

func (f *fakeEngine) Load() error { return nil }
func (f *fakeEngine) SetSource(string) error { return nil }
func (f *fakeEngine) CurrentTime() float64 { return 0 }
func (f *fakeEngine) Duration() float64 { return 0 }
func (f *fakeEngine) Paused() bool { return true }
func (f *fakeEngine) Buffered() []playback.Range { return nil }
func (f *fakeEngine) SetVolume(float64) {}
func (f *fakeEngine) SetMuted(bool) {}
func (f *fakeEngine) SetLoop(bool) {}
func (f *fakeEngine) SetPlaybackRate(float64) {}
func (f *fakeEngine) Attached() bool { return true }
func (f *fakeEngine) Release() error { return nil }
func (f *fakeEngine) setFullscreen(on bool) error { f.fullscreen = append(f.fullscreen, on); return nil }

func newTestBubble() (*bubble, *fakeEngine, *grauman.MediaPlayer) {
	engine := &fakeEngine{}
	scr := &screen{}
	scr.setFullscreen(engine.setFullscreen)

	clip := lo.Must(asset.New(asset.Options{URL: "https://cdn.example/clip.mp4", Width: 1920, Height: 1080, Duration: 120}))
	mp := lo.Must(grauman.NewMediaPlayer(scr, grauman.Settings{
		File:              clip,
		KeyboardShortcuts: mo.Some(true),
		StorageEnabled:    mo.Some(false),
		Clock:             clock.NewFake(),
		NewEngine: func(viewer.Kind, *asset.Descriptor) (playback.Engine, error) {
			return engine, nil
		},
	}))

	b := newBubble(mp, scr, "Clip")
	b.resize(84, 30)
	mp.HandleEngineEvent(event.LoadedMetadata, nil)
	return b, engine, mp
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBubbleKeys(t *testing.T) {
	Convey("Given a terminal player showing a video", t, func() {
		b, engine, mp := newTestBubble()

		Convey("When space is pressed", func() {
			b.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

			Convey("Then the engine plays", func() {
				So(engine.plays, ShouldEqual, 1)
			})
		})

		Convey("When the speed keys are pressed", func() {
			b.Update(runes(">"))
			b.Update(runes(">"))
			b.Update(runes("<"))

			Convey("Then the speed steps through the allowed values", func() {
				So(mp.PlaybackSpeed(), ShouldEqual, 1.25)
			})
		})

		Convey("When a digit is pressed", func() {
			b.Update(runes("5"))

			Convey("Then playback jumps to that tenth", func() {
				So(engine.seeks, ShouldResemble, []float64{60})
			})
		})

		Convey("When f is pressed", func() {
			b.Update(runes("f"))

			Convey("Then the mpv window goes fullscreen", func() {
				So(engine.fullscreen, ShouldResemble, []bool{true})
				So(mp.Fullscreen(), ShouldBeTrue)
			})
		})

		Convey("When ? is pressed", func() {
			b.Update(runes("?"))

			Convey("Then the full help is shown", func() {
				So(b.helpC.ShowAll, ShouldBeTrue)
				So(b.View(), ShouldContainSubstring, "fullscreen")
			})
		})

		Convey("When q is pressed", func() {
			_, cmd := b.Update(runes("q"))

			Convey("Then the program quits", func() {
				So(cmd, ShouldNotBeNil)
				_, ok := cmd().(tea.QuitMsg)
				So(ok, ShouldBeTrue)
			})
		})
	})
}

func TestBubbleMouse(t *testing.T) {
	Convey("Given a terminal player with a 80 cell progress bar", t, func() {
		b, engine, _ := newTestBubble()
		row := paddingStyle.GetPaddingTop() + progressRow

		Convey("When the bar is dragged from the middle to three quarters", func() {
			b.Update(tea.MouseMsg{X: 42, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
			b.Update(tea.MouseMsg{X: 62, Y: row, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

			Convey("Then playback seeks to the released position", func() {
				So(engine.seeks, ShouldResemble, []float64{90})
			})
		})

		Convey("When another row is pressed", func() {
			b.Update(tea.MouseMsg{X: 42, Y: row + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
			b.Update(tea.MouseMsg{X: 62, Y: row + 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

			Convey("Then nothing seeks", func() {
				So(engine.seeks, ShouldBeEmpty)
			})
		})
	})
}

func TestBubbleView(t *testing.T) {
	Convey("Given a terminal player", t, func() {
		b, _, _ := newTestBubble()

		Convey("Then the view shows the kind, title and times", func() {
			view := b.View()
			So(view, ShouldContainSubstring, "video")
			So(view, ShouldContainSubstring, "Clip")
			So(view, ShouldContainSubstring, "00:00 / 02:00")
		})

		Convey("When the engine reports an error", func() {
			b.Update(engineMsg{name: event.Error, payload: "loading failed"})

			Convey("Then it is shown until loading starts again", func() {
				So(b.View(), ShouldContainSubstring, "loading failed")
				b.Update(engineMsg{name: event.LoadStart})
				So(b.View(), ShouldNotContainSubstring, "loading failed")
			})
		})

		Convey("When the engine process exits", func() {
			exited := make(chan struct{})
			close(exited)
			b.exited = exited
			_, cmd := b.Update(tickMsg{})

			Convey("Then the program quits", func() {
				_, ok := cmd().(tea.QuitMsg)
				So(ok, ShouldBeTrue)
			})
		})
	})
}
