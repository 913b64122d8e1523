package playback

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/grauman/grauman/asset"
	"github.com/grauman/grauman/clock"
	"github.com/grauman/grauman/event"
	"github.com/grauman/grauman/timefmt"
	"github.com/grauman/grauman/viewer"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeEngine struct {
	mu sync.Mutex

	plays, pauses, loads, releases int
	seeks                          []float64
	seekErr                        error
	source                         string

	currentTime float64
	duration    float64
	paused      bool
	buffered    []Range
	detached    bool

	volume float64
	muted  bool
	loop   bool
	rate   float64
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{paused: true}
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

func (f *fakeEngine) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	return nil
}

func (f *fakeEngine) SetSource(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.source = url
	return nil
}

func (f *fakeEngine) Seek(seconds float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seekErr != nil {
		return f.seekErr
	}
	f.seeks = append(f.seeks, seconds)
	f.currentTime = seconds
	return nil
}

func (f *fakeEngine) CurrentTime() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.currentTime
}

func (f *fakeEngine) Duration() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration
}

func (f *fakeEngine) Paused() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paused
}

func (f *fakeEngine) Buffered() []Range {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buffered
}

func (f *fakeEngine) Attached() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.detached
}

func (f *fakeEngine) SetVolume(v float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volume = v
}

func (f *fakeEngine) SetMuted(m bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.muted = m
}

func (f *fakeEngine) SetLoop(l bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loop = l
}

func (f *fakeEngine) SetPlaybackRate(r float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rate = r
}

func (f *fakeEngine) Release() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releases++
	return nil
}

type fixture struct {
	machine *Machine
	engine  *fakeEngine
	clock   *clock.Fake
	hub     *event.Hub
	events  []string
}

func newFixture(opts asset.Options, configure func(*Options)) *fixture {
	f := &fixture{
		engine: newFakeEngine(),
		clock:  clock.NewFake(),
		hub:    &event.Hub{},
	}

	d := lo.Must(asset.New(opts))
	o := Options{
		Asset:             d,
		Kind:              viewer.Select(d, viewer.Desktop),
		Engine:            f.engine,
		Env:               viewer.Desktop,
		Clock:             f.clock,
		Notifier:          f.hub,
		Settings:          DefaultSettings(),
		KeyboardShortcuts: true,
	}
	if configure != nil {
		configure(&o)
	}

	f.machine = lo.Must(New(o))

	record := func(name string) event.Handler {
		return func(any) { f.events = append(f.events, name) }
	}
	names := append([]string{event.StateChange, event.Notification}, event.Native...)
	for _, name := range names {
		lo.Must(f.hub.On(name, record(name)))
	}
	return f
}

func (f *fixture) load() {
	f.machine.Handle(event.LoadStart, nil)
	f.machine.Handle(event.CanPlayThrough, nil)
}

func (f *fixture) play() {
	f.engine.paused = false
	f.machine.Handle(event.Playing, nil)
}

var clip = asset.Options{MimeType: "video/mp4", URL: "https://cdn.example/clip.mp4", Duration: 120, FPS: 25, Width: 1920, Height: 1080}

func TestMachineLifecycle(t *testing.T) {
	Convey("Given a machine for a 120s video", t, func() {
		f := newFixture(clip, nil)
		m := f.machine

		Convey("Then it starts in InitialLoad with the settings applied", func() {
			So(m.Status(), ShouldEqual, InitialLoad)
			So(f.engine.volume, ShouldEqual, 0.5)
			So(f.engine.rate, ShouldEqual, 1)
			So(m.State().ShowPlayPrompt, ShouldBeTrue)
		})

		Convey("When loading starts", func() {
			m.Handle(event.LoadStart, nil)

			Convey("Then it is Loading and announced", func() {
				So(m.Status(), ShouldEqual, Loading)
				So(f.events, ShouldResemble, []string{event.LoadStart, event.StateChange})
			})

			Convey("And it can play through", func() {
				m.Handle(event.CanPlayThrough, nil)

				Convey("Then it is Paused without autoplay", func() {
					So(m.Status(), ShouldEqual, Paused)
					So(f.engine.plays, ShouldEqual, 0)
				})
			})
		})

		Convey("When playing", func() {
			f.load()
			f.play()
			So(m.Status(), ShouldEqual, Playing)

			Convey("Then a repeated playing signal changes nothing", func() {
				before := len(f.events)
				m.Handle(event.Playing, nil)
				So(m.Status(), ShouldEqual, Playing)
				So(f.events[before:], ShouldResemble, []string{event.Playing})
			})

			Convey("Then the controls hide after the delay", func() {
				f.clock.Advance(2999 * time.Millisecond)
				So(m.State().ControlsHidden, ShouldBeFalse)
				f.clock.Advance(time.Millisecond)
				So(m.State().ControlsHidden, ShouldBeTrue)

				Convey("And pointer movement reveals them", func() {
					m.PointerMove()
					So(m.State().ControlsHidden, ShouldBeFalse)
				})
			})

			Convey("Then hovering over the controls keeps them visible", func() {
				m.SetHoveringControls(true)
				f.clock.Advance(5 * time.Second)
				So(m.State().ControlsHidden, ShouldBeFalse)
			})

			Convey("Then pausing cancels the auto-hide", func() {
				m.Handle(event.Pause, nil)
				f.clock.Advance(5 * time.Second)
				So(m.Status(), ShouldEqual, Paused)
				So(m.State().ControlsHidden, ShouldBeFalse)
			})

			Convey("Then waiting for data goes back to Loading", func() {
				m.Handle(event.Waiting, nil)
				So(m.Status(), ShouldEqual, Loading)
			})

			Convey("Then the end of playback is Ended", func() {
				m.Handle(event.Pause, nil)
				m.Handle(event.Ended, nil)
				So(m.Status(), ShouldEqual, Ended)

				Convey("And an error after the end reloads", func() {
					m.Handle(event.Error, nil)
					So(m.Status(), ShouldEqual, Loading)
					So(f.engine.loads, ShouldEqual, 1)
				})

				Convey("And a seek clears the end", func() {
					f.engine.paused = true
					m.Handle(event.Seeked, nil)
					So(m.Status(), ShouldEqual, Paused)
				})
			})

			Convey("Then the end arriving mid-playback keeps the controls and ignores Pause", func() {
				f.clock.Advance(time.Second)
				m.Handle(event.Ended, nil)
				f.clock.Advance(3 * time.Second)

				st := m.State()
				So(st.Status, ShouldEqual, Ended)
				So(st.ControlsHidden, ShouldBeFalse)

				m.Pause()
				So(m.Status(), ShouldEqual, Ended)
				So(f.engine.plays, ShouldEqual, 0)
				So(f.engine.pauses, ShouldEqual, 0)
				So(f.engine.seeks, ShouldBeEmpty)

				Convey("And Play restarts from zero", func() {
					m.Play()
					So(f.engine.seeks, ShouldResemble, []float64{0})
					So(f.engine.plays, ShouldEqual, 1)
				})
			})

			Convey("Then waiting after an error goes back to Loading", func() {
				m.Handle(event.Error, nil)
				So(m.Status(), ShouldEqual, Error)
				m.Handle(event.Waiting, nil)
				So(m.Status(), ShouldEqual, Loading)
			})

			Convey("Then an engine error is Error", func() {
				m.Handle(event.Error, "decode")
				st := m.State()
				So(st.Status, ShouldEqual, Error)
				So(f.events, ShouldContain, event.Error)
				So(f.engine.loads, ShouldEqual, 0)
			})

			Convey("Then a seek while the engine keeps playing stays Playing", func() {
				m.Handle(event.Seeked, nil)
				So(m.Status(), ShouldEqual, Playing)
			})
		})

		Convey("When waiting arrives before anything else", func() {
			m.Handle(event.Waiting, nil)

			Convey("Then the status is still one of the defined states", func() {
				So(m.Status(), ShouldEqual, Loading)
				So(m.Status().String(), ShouldEqual, "LOADING")
			})
		})
	})

	Convey("Given autoplay", t, func() {
		f := newFixture(clip, func(o *Options) { o.Autoplay = true })
		f.load()

		Convey("Then playback is requested as soon as it can play through", func() {
			So(f.engine.plays, ShouldEqual, 1)
			So(f.machine.State().ShowPlayPrompt, ShouldBeFalse)
		})
	})

	Convey("Given a touch-primary device", t, func() {
		touch := viewer.Environment{TouchPrimary: true, FullscreenSupported: true}
		opts := clip
		opts.Poster = "https://cdn.example/poster.jpg"
		f := newFixture(opts, func(o *Options) {
			o.Env = touch
			o.Autoplay = true
		})
		f.load()

		Convey("Then autoplay waits for a user gesture", func() {
			So(f.engine.plays, ShouldEqual, 0)
			st := f.machine.State()
			So(st.Status, ShouldEqual, Paused)
			So(st.ShowPoster, ShouldBeTrue)
			So(st.ShowPlayPrompt, ShouldBeTrue)
		})

		Convey("Then the first toggle clears the poster and prompt", func() {
			f.machine.TogglePlay(false)
			st := f.machine.State()
			So(f.engine.plays, ShouldEqual, 1)
			So(st.ShowPoster, ShouldBeFalse)
		})
	})
}

func TestMachineCommands(t *testing.T) {
	Convey("Given a loaded machine", t, func() {
		f := newFixture(clip, nil)
		m := f.machine
		f.load()

		Convey("When toggled with a notification", func() {
			m.TogglePlay(true)

			Convey("Then it plays and shows the notice for 600ms", func() {
				So(f.engine.plays, ShouldEqual, 1)
				So(m.State().Notification, ShouldEqual, NoticePlay)
				So(f.events, ShouldContain, event.Notification)
				f.clock.Advance(600 * time.Millisecond)
				So(m.State().Notification, ShouldEqual, NoticeNone)
			})
		})

		Convey("When toggled while playing", func() {
			f.play()
			m.TogglePlay(false)

			Convey("Then it pauses", func() {
				So(f.engine.pauses, ShouldEqual, 1)
			})
		})

		Convey("When toggled after the end", func() {
			f.play()
			m.Handle(event.Ended, nil)
			m.TogglePlay(false)

			Convey("Then it restarts from zero", func() {
				So(f.engine.seeks, ShouldResemble, []float64{0})
				So(f.engine.plays, ShouldEqual, 1)
			})
		})

		Convey("When toggled after an error", func() {
			m.Handle(event.Error, nil)
			m.TogglePlay(false)

			Convey("Then it reloads", func() {
				So(f.engine.loads, ShouldEqual, 1)
				So(f.engine.plays, ShouldEqual, 0)
			})
		})

		Convey("When Play and Pause are repeated", func() {
			m.Pause()
			So(f.engine.pauses, ShouldEqual, 0)
			f.play()
			m.Play()
			So(f.engine.plays, ShouldEqual, 0)
		})

		Convey("When seeking beyond the duration", func() {
			So(m.SeekTo(150), ShouldBeNil)

			Convey("Then it clamps to the end", func() {
				So(f.engine.seeks, ShouldResemble, []float64{120})
				So(m.CurrentTime(), ShouldEqual, 120)
				So(m.Status(), ShouldEqual, Paused)
			})
		})

		Convey("When seeking before the start", func() {
			So(m.SeekTo(-10), ShouldBeNil)
			So(f.engine.seeks, ShouldResemble, []float64{0})
		})

		Convey("When seeking by frame", func() {
			So(m.Seek(Frame(50)), ShouldBeNil)
			So(f.engine.seeks, ShouldResemble, []float64{2})

			Convey("Then frame steps move one frame", func() {
				So(m.StepFrame(1), ShouldBeTrue)
				So(f.engine.seeks[1], ShouldAlmostEqual, 51.0/25, 1e-9)
			})
		})

		Convey("When the target is malformed", func() {
			So(errors.Is(m.Seek(Seconds(math.NaN())), ErrInvalidSeek), ShouldBeTrue)
			So(errors.Is(m.SeekBy(math.Inf(1)), ErrInvalidSeek), ShouldBeTrue)
			So(f.engine.seeks, ShouldBeEmpty)
		})

		Convey("When the engine refuses the seek", func() {
			f.engine.seekErr = errors.New("not seekable")

			Convey("Then the failure is swallowed and the position kept", func() {
				So(m.SeekTo(30), ShouldBeNil)
				So(m.CurrentTime(), ShouldEqual, 0)
			})
		})

		Convey("When seeking relative to the playhead", func() {
			lo.Must0(m.SeekTo(100))
			lo.Must0(m.SeekBy(30))
			lo.Must0(m.SeekBy(-200))

			Convey("Then both ends clamp", func() {
				So(f.engine.seeks, ShouldResemble, []float64{100, 120, 0})
			})
		})

		Convey("When the volume is set out of range", func() {
			m.SetVolume(1.5)
			So(m.Settings().Volume, ShouldEqual, 1)
			So(f.engine.volume, ShouldEqual, 1)

			m.SetVolume(math.NaN())
			So(m.Settings().Volume, ShouldEqual, 1)

			m.SetVolume(-1)
			So(m.Settings().Volume, ShouldEqual, 0)
		})
	})
}

func TestMachineBuffering(t *testing.T) {
	Convey("Given a playing machine", t, func() {
		f := newFixture(clip, nil)
		m := f.machine
		f.load()
		f.play()

		Convey("When progress arrives in bursts", func() {
			f.engine.buffered = []Range{{Start: 0, End: 10}}
			m.Handle(event.Progress, nil)
			f.engine.buffered = []Range{{Start: 20, End: 30}, {Start: -1, End: 12}, {Start: 11, End: 15}}
			m.Handle(event.Progress, nil)
			m.Handle(event.Progress, nil)

			Convey("Then ranges update at most every 50ms and stay normalized", func() {
				So(m.State().LoadedRanges, ShouldResemble, []Range{{Start: 0, End: 10}})
				f.clock.Advance(50 * time.Millisecond)
				So(m.State().LoadedRanges, ShouldResemble, []Range{{Start: 0, End: 15}, {Start: 20, End: 30}})
			})
		})

		Convey("When the engine reports the time", func() {
			f.engine.currentTime = 42
			m.Handle(event.TimeUpdate, nil)

			Convey("Then the labels follow", func() {
				st := m.State()
				So(st.CurrentTime, ShouldEqual, 42)
				So(st.ElapsedLabel, ShouldEqual, "00:42")
				So(st.TotalLabel, ShouldEqual, "02:00")
			})

			Convey("Then SMPTE labels use the asset fps", func() {
				m.SetTimeFormat(timefmt.FormatSMPTE)
				So(m.State().ElapsedLabel, ShouldEqual, "00;00;42;00")
			})
		})

		Convey("When the media element leaves the page", func() {
			f.engine.detached = true
			m.Handle(event.TimeUpdate, nil)
			m.Handle(event.TimeUpdate, nil)

			Convey("Then the engine is released once", func() {
				So(f.engine.releases, ShouldEqual, 1)
				So(m.Status(), ShouldEqual, Paused)
				So(m.Destroy(), ShouldBeNil)
				So(f.engine.releases, ShouldEqual, 1)
			})
		})
	})

	Convey("Given an asset of unknown duration", t, func() {
		opts := clip
		opts.Duration = asset.UnknownDuration
		f := newFixture(opts, nil)
		f.engine.duration = 75.5

		Convey("Then metadata supplies the duration", func() {
			So(f.machine.Duration(), ShouldEqual, 0)
			f.machine.Handle(event.LoadedMetadata, nil)
			So(f.machine.Duration(), ShouldEqual, 75.5)
		})

		Convey("Then seeking before metadata is only bounded below", func() {
			So(f.machine.SeekTo(30), ShouldBeNil)
			So(f.machine.SeekTo(-5), ShouldBeNil)
			So(f.engine.seeks, ShouldResemble, []float64{30, 0})
		})
	})

	Convey("Given an HLS stream whose engine reports an infinite duration", t, func() {
		f := newFixture(asset.Options{Extension: "m3u8", URL: "https://cdn.example/live.m3u8", Duration: asset.UnknownDuration}, nil)
		m := f.machine
		f.engine.duration = math.Inf(1)
		f.engine.currentTime = 500
		f.load()
		m.Handle(event.LoadedMetadata, nil)
		m.Handle(event.TimeUpdate, nil)

		Convey("When seeking back a little", func() {
			So(m.SeekTo(480), ShouldBeNil)

			Convey("Then the engine seeks to the requested position", func() {
				So(f.engine.seeks, ShouldResemble, []float64{480})
				So(m.CurrentTime(), ShouldEqual, 480)
			})
		})

		Convey("Then the reported duration and labels stay finite", func() {
			f.engine.buffered = []Range{{Start: 400, End: 510}}
			m.Handle(event.Progress, nil)

			st := m.State()
			So(st.Duration, ShouldEqual, 0)
			So(st.TotalLabel, ShouldEqual, "00:00")
			So(LoadedFraction(st.LoadedRanges, st.Duration), ShouldEqual, 0)
		})
	})

	Convey("Given a live stream", t, func() {
		f := newFixture(asset.Options{Extension: "m3u8"}, nil)
		m := f.machine

		Convey("Then a live level update locks seeking", func() {
			m.Handle(event.HLSLevelUpdated, LevelUpdate{Level: 1, CurrentLevel: 1, Live: true})
			So(m.State().SeekLocked, ShouldBeTrue)
			So(f.events, ShouldContain, event.StateChange)

			m.Handle(event.HLSLevelUpdated, &LevelUpdate{Level: 0, CurrentLevel: 1, Live: false})
			So(m.State().SeekLocked, ShouldBeTrue)

			m.Handle(event.HLSLevelUpdated, LevelUpdate{Level: 1, CurrentLevel: 1, Live: false})
			So(m.State().SeekLocked, ShouldBeFalse)
		})
	})
}

func TestMachineTeardown(t *testing.T) {
	Convey("Given a playing machine with pending timers", t, func() {
		f := newFixture(clip, nil)
		m := f.machine
		f.load()
		f.play()
		m.TogglePlay(true)
		f.engine.buffered = []Range{{Start: 0, End: 5}}
		m.Handle(event.Progress, nil)
		m.Handle(event.Progress, nil)

		Convey("When destroyed", func() {
			So(m.Destroy(), ShouldBeNil)
			events := len(f.events)

			Convey("Then nothing fires afterwards", func() {
				f.clock.Advance(time.Minute)
				m.Handle(event.Playing, nil)
				So(f.clock.Pending(), ShouldEqual, 0)
				So(len(f.events), ShouldEqual, events)
				So(m.Destroyed(), ShouldBeTrue)
			})

			Convey("Then destroying again is a no-op", func() {
				So(m.Destroy(), ShouldBeNil)
				So(f.engine.releases, ShouldEqual, 1)
			})
		})
	})

	Convey("Given a machine switched to another asset", t, func() {
		f := newFixture(clip, nil)
		f.load()
		f.play()

		next := clip
		next.URL = "https://cdn.example/next.mp4"
		next.Duration = 30
		So(f.machine.Reset(lo.Must(asset.New(next))), ShouldBeNil)

		Convey("Then state is reset and the engine gets the new source", func() {
			So(f.machine.Status(), ShouldEqual, InitialLoad)
			So(f.machine.Duration(), ShouldEqual, 30)
			So(f.engine.source, ShouldEqual, next.URL)
			So(f.machine.Reset(nil), ShouldEqual, ErrNoAsset)
		})
	})

	Convey("Given missing collaborators", t, func() {
		_, err := New(Options{})
		So(err, ShouldEqual, ErrNoEngine)
		_, err = New(Options{Engine: newFakeEngine()})
		So(err, ShouldEqual, ErrNoAsset)
	})
}

type recordingControls struct {
	calls    []string
	duration float64
}

func (r *recordingControls) TogglePlay(notify bool) {
	r.calls = append(r.calls, lo.Ternary(notify, "toggle!", "toggle"))
}

func (r *recordingControls) SeekBy(d float64) error {
	r.calls = append(r.calls, "by "+timefmt.ToTime(math.Abs(d))+lo.Ternary(d < 0, "-", "+"))
	return nil
}

func (r *recordingControls) SeekTo(s float64) error {
	r.calls = append(r.calls, "to "+timefmt.ToTime(s))
	return nil
}

func (r *recordingControls) StepFrame(d int) bool {
	r.calls = append(r.calls, lo.Ternary(d < 0, "frame-", "frame+"))
	return true
}

func (r *recordingControls) IncreaseSpeed() { r.calls = append(r.calls, "faster") }

func (r *recordingControls) DecreaseSpeed() { r.calls = append(r.calls, "slower") }

func (r *recordingControls) ToggleMuted() { r.calls = append(r.calls, "mute") }

func (r *recordingControls) AdjustVolume(d float64) {
	r.calls = append(r.calls, lo.Ternary(d < 0, "quieter", "louder"))
}

func (r *recordingControls) ToggleFullscreen() { r.calls = append(r.calls, "fullscreen") }

func (r *recordingControls) Duration() float64 { return r.duration }

func TestHandleKey(t *testing.T) {
	Convey("Given controls for a 100s asset", t, func() {
		c := &recordingControls{duration: 100}

		press := func(names ...string) {
			for _, name := range names {
				So(HandleKey(c, lo.Must(ParseKey(name))), ShouldBeTrue)
			}
		}

		Convey("Then every shortcut maps to its command", func() {
			press(".", ",", "shift+.", "shift+,", "l", "j", "space", "k", "m", "left", "right", "up", "down", "f", "home", "0", "end", "3")
			So(c.calls, ShouldResemble, []string{
				"by 00:05+", "by 00:05-", "faster", "slower", "by 00:10+", "by 00:10-",
				"toggle!", "toggle!", "mute", "frame-", "frame+", "louder", "quieter",
				"fullscreen", "to 00:00", "to 00:00", "to 01:40", "to 00:30",
			})
		})

		Convey("Then position keys keep the playhead while the duration is unknown", func() {
			c.duration = 0
			press("end", "5")
			So(c.calls, ShouldBeEmpty)
		})

		Convey("Then other keys are not consumed", func() {
			So(HandleKey(c, Key{Name: "q"}), ShouldBeFalse)
			So(c.calls, ShouldBeEmpty)
			_, err := ParseKey("")
			So(errors.Is(err, ErrUnknownKey), ShouldBeTrue)
		})
	})

	Convey("Given a machine with its own controls", t, func() {
		f := newFixture(clip, nil)
		m := f.machine
		f.load()

		Convey("Then shortcuts act on it", func() {
			So(m.HandleKey(Key{Name: "up"}), ShouldBeTrue)
			So(m.Settings().Volume, ShouldAlmostEqual, 0.55, 1e-9)
			So(m.HandleKey(Key{Name: ".", Shift: true}), ShouldBeTrue)
			So(m.Settings().PlaybackSpeed, ShouldEqual, 1.25)
			So(m.HandleKey(Key{Name: "5"}), ShouldBeTrue)
			So(f.engine.seeks, ShouldResemble, []float64{60})
		})

		Convey("Then disabled shortcuts consume nothing", func() {
			m.SetKeyboardShortcuts(false)
			So(m.HandleKey(Key{Name: "m"}), ShouldBeFalse)
			So(m.Settings().Muted, ShouldBeFalse)
		})

		Convey("Then speed steps stop at the ends", func() {
			m.SetPlaybackSpeed(1.5)
			m.IncreaseSpeed()
			So(m.Settings().PlaybackSpeed, ShouldEqual, 1.5)
			m.SetPlaybackSpeed(0.5)
			m.DecreaseSpeed()
			So(m.Settings().PlaybackSpeed, ShouldEqual, 0.5)
		})
	})

	Convey("Given an asset without fps", t, func() {
		f := newFixture(asset.Options{MimeType: "video/webm", Duration: 10}, nil)

		Convey("Then frame steps are not consumed", func() {
			So(f.machine.HandleKey(Key{Name: "left"}), ShouldBeFalse)
			So(errors.Is(f.machine.Seek(Frame(3)), ErrInvalidSeek), ShouldBeTrue)
		})
	})
}
