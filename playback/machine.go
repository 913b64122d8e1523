// Package playback derives a consistent playback state from loosely ordered
// media engine events and user commands.
package playback

import (
	"errors"
	"math"
	"sync"

	"github.com/grauman/grauman/asset"
	"github.com/grauman/grauman/clock"
	"github.com/grauman/grauman/constant"
	"github.com/grauman/grauman/event"
	"github.com/grauman/grauman/log"
	"github.com/grauman/grauman/timefmt"
	"github.com/grauman/grauman/viewer"
	"github.com/samber/lo"
)

var (
	ErrNoEngine = errors.New("playback machine needs an engine")
	ErrNoAsset  = errors.New("playback machine needs an asset")
)

// Settings are the user-adjustable playback attributes.
type Settings struct {
	Volume        float64
	Muted         bool
	Loop          bool
	PlaybackSpeed float64
}

// DefaultSettings are used when nothing else is known.
func DefaultSettings() Settings {
	return Settings{
		Volume:        constant.DefaultVolume,
		Muted:         constant.DefaultMuted,
		Loop:          constant.DefaultLoop,
		PlaybackSpeed: constant.DefaultPlaybackSpeed,
	}
}

// Options configure a Machine.
type Options struct {
	Asset  *asset.Descriptor
	Kind   viewer.Kind
	Engine Engine
	Env    viewer.Environment

	// Clock defaults to the wall clock.
	Clock clock.Clock
	// Notifier receives every engine event plus state changes. Optional.
	Notifier event.Notifier
	// Controls receive keyboard commands. Defaults to the machine itself.
	Controls Controls
	Logger   *log.Entry

	Settings          Settings
	Autoplay          bool
	KeyboardShortcuts bool
	TimeFormat        timefmt.Format
}

// Machine is the playback state machine of one mounted audio or video viewer.
type Machine struct {
	mu sync.Mutex

	asset    *asset.Descriptor
	kind     viewer.Kind
	engine   Engine
	env      viewer.Environment
	clock    clock.Clock
	notifier event.Notifier
	controls Controls
	log      *log.Entry

	autoplay  bool
	shortcuts bool
	format    timefmt.Format

	started     bool
	initialLoad bool
	loading     bool
	playing     bool
	paused      bool
	ended       bool
	errored     bool

	needsUserTrigger bool
	showPoster       bool

	autohideControls bool
	controlsHidden   bool
	viewerLock       bool
	hoverLock        bool

	live       bool
	seekLocked bool

	currentTime float64
	duration    float64
	ranges      []Range

	settings   Settings
	fullscreen bool

	notice      Notice
	noticeTimer clock.Timer
	hide        *clock.Debouncer
	buffered    *clock.Throttle

	detached  bool
	destroyed bool

	effects []func()
}

// New creates a machine in the InitialLoad state and pushes the settings to the engine.
func New(opts Options) (*Machine, error) {
	if opts.Engine == nil {
		return nil, ErrNoEngine
	}
	if opts.Asset == nil {
		return nil, ErrNoAsset
	}

	m := &Machine{
		kind:             opts.Kind,
		engine:           opts.Engine,
		env:              opts.Env,
		clock:            opts.Clock,
		notifier:         opts.Notifier,
		controls:         opts.Controls,
		log:              opts.Logger,
		autoplay:         opts.Autoplay,
		shortcuts:        opts.KeyboardShortcuts,
		format:           opts.TimeFormat,
		settings:         opts.Settings,
		autohideControls: true,
	}

	if m.clock == nil {
		m.clock = clock.Real()
	}
	if m.log == nil {
		m.log = log.With(log.Fields{"component": "playback"})
	}
	if m.format == "" {
		m.format = timefmt.FormatTime
	}
	if m.settings.PlaybackSpeed == 0 {
		m.settings.PlaybackSpeed = constant.DefaultPlaybackSpeed
	}
	if m.controls == nil {
		m.controls = m
	}

	m.hide = clock.NewDebouncer(m.clock, constant.ControlsHideDelay, m.hideControls)
	m.buffered = clock.NewThrottle(m.clock, constant.BufferedThrottle, m.updateBuffered)

	m.assign(opts.Asset)
	m.applySettings(m.settings)

	return m, nil
}

// assign resets every per-asset flag. Callers hold the lock or own m exclusively.
func (m *Machine) assign(d *asset.Descriptor) {
	m.asset = d

	m.started = false
	m.initialLoad = false
	m.loading = false
	m.playing = false
	m.paused = false
	m.ended = false
	m.errored = false
	m.live = false
	m.seekLocked = false
	m.currentTime = 0
	m.ranges = nil
	m.controlsHidden = false
	m.detached = false

	m.duration = math.Inf(1)
	if !d.HasUnknownDuration() {
		m.duration = d.Duration()
	}

	m.needsUserTrigger = m.env.TouchPrimary
	// iOS starts HLS playlists without a gesture
	if m.env.IOS && d.Extension() == "m3u8" {
		m.needsUserTrigger = false
	}
	m.showPoster = d.Poster() != "" && (m.needsUserTrigger || !m.autoplay)
}

func (m *Machine) applySettings(s Settings) {
	m.engine.SetVolume(s.Volume)
	m.engine.SetMuted(s.Muted)
	m.engine.SetLoop(s.Loop)
	m.engine.SetPlaybackRate(s.PlaybackSpeed)
}

// after queues fn to run once the lock is released.
func (m *Machine) after(fn func()) {
	m.effects = append(m.effects, fn)
}

// do runs a transition under the lock, then its queued effects and, if the
// visible state changed, a state change notification.
func (m *Machine) do(transition func()) {
	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		return
	}

	before := m.viewLocked()
	transition()
	effects := m.effects
	m.effects = nil

	if after := m.viewLocked(); after != before {
		state := m.stateLocked()
		effects = append(effects, func() { m.notify(event.StateChange, state) })
	}
	m.mu.Unlock()

	for _, effect := range effects {
		effect()
	}
}

func (m *Machine) notify(name string, payload any) {
	if m.notifier != nil {
		m.notifier.Notify(name, payload)
	}
}

func (m *Machine) statusLocked() Status {
	switch {
	case m.errored:
		return Error
	case m.loading:
		return Loading
	case m.ended:
		return Ended
	case m.playing:
		return Playing
	case m.paused, m.started:
		return Paused
	default:
		return InitialLoad
	}
}

func (m *Machine) playPromptLocked() bool {
	if m.needsUserTrigger {
		return true
	}
	return m.asset.PrimaryType() != "audio" &&
		!m.autoplay &&
		m.currentTime == 0 &&
		!m.loading &&
		!m.playing &&
		!m.errored &&
		!m.ended
}

func (m *Machine) viewLocked() view {
	return view{
		status:         m.statusLocked(),
		loading:        m.loading,
		poster:         m.showPoster,
		prompt:         m.playPromptLocked(),
		controlsHidden: m.controlsHidden,
		seekLocked:     m.seekLocked,
		notification:   m.notice,
		fullscreen:     m.fullscreen,
	}
}

func (m *Machine) labelLocked(seconds float64) string {
	if m.kind == viewer.Audio || !m.asset.HasFPS() || m.format == timefmt.FormatTime {
		return timefmt.ToTime(seconds)
	}
	return timefmt.ToSMPTE(seconds, m.asset.FPS())
}

func (m *Machine) stateLocked() State {
	return State{
		Status:         m.statusLocked(),
		CurrentTime:    m.currentTime,
		Duration:       m.knownDurationLocked(),
		LoadedRanges:   append([]Range(nil), m.ranges...),
		Volume:         m.settings.Volume,
		Muted:          m.settings.Muted,
		Loop:           m.settings.Loop,
		PlaybackSpeed:  m.settings.PlaybackSpeed,
		Fullscreen:     m.fullscreen,
		Loading:        m.loading,
		ShowPoster:     m.showPoster,
		ShowPlayPrompt: m.playPromptLocked(),
		ControlsHidden: m.controlsHidden,
		SeekLocked:     m.seekLocked,
		Notification:   m.notice,
		ElapsedLabel:   m.labelLocked(m.currentTime),
		TotalLabel:     m.labelLocked(m.knownDurationLocked()),
	}
}

// knownDurationLocked is the duration, or zero while it is unknown.
func (m *Machine) knownDurationLocked() float64 {
	if math.IsInf(m.duration, 0) {
		return 0
	}
	return m.duration
}

// State returns a snapshot.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

// Status returns the current status.
func (m *Machine) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statusLocked()
}

// Asset returns the descriptor being played.
func (m *Machine) Asset() *asset.Descriptor {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.asset
}

// Handle consumes an engine event and forwards it to the notifier.
func (m *Machine) Handle(name string, payload any) {
	// engine reads happen before taking the lock so an engine may call back into the machine
	var engineTime, engineDuration float64
	attached := true
	switch name {
	case event.TimeUpdate:
		engineTime = m.engine.CurrentTime()
		attached = m.engine.Attached()
	case event.LoadedMetadata:
		engineDuration = m.engine.Duration()
	}
	enginePaused := name == event.Seeked && m.engine.Paused()

	m.do(func() {
		m.after(func() { m.notify(name, payload) })

		switch name {
		case event.LoadStart:
			m.onLoadStart()
		case event.CanPlayThrough:
			m.onCanPlayThrough()
		case event.Waiting:
			m.loading = true
			m.errored = false
		case event.Playing:
			m.onPlaying()
		case event.Pause:
			m.onPause()
		case event.Ended:
			m.onEnded()
		case event.Error:
			m.onError()
		case event.Seeked:
			m.onSeeked(enginePaused)
		case event.LoadedMetadata:
			m.onLoadedMetadata(engineDuration)
		case event.Progress:
			m.after(m.buffered.Call)
		case event.TimeUpdate:
			m.onTimeUpdate(engineTime, attached)
		case event.HLSLevelUpdated:
			m.onLevelUpdated(payload)
		}
	})
}

func (m *Machine) onLoadStart() {
	m.started = true
	m.currentTime = 0
	m.initialLoad = true
	m.loading = true
	m.ended = false
	m.errored = false
	m.playing = false
	m.paused = m.needsUserTrigger
}

func (m *Machine) onCanPlayThrough() {
	m.loading = false

	if m.initialLoad && !m.env.TouchPrimary {
		m.paused = true
		m.initialLoad = false

		if m.autoplay {
			m.togglePlayLocked(false)
		}
	}
}

func (m *Machine) onPlaying() {
	m.paused = false
	m.playing = true
	m.loading = false
	m.ended = false
	m.after(m.hide.Trigger)
}

func (m *Machine) onPause() {
	m.playing = false
	m.paused = true
	m.controlsHidden = false
	m.after(m.hide.Cancel)
}

func (m *Machine) onEnded() {
	m.ended = true
	m.playing = false
	m.paused = true
	m.controlsHidden = false
	m.after(m.hide.Cancel)
}

func (m *Machine) onError() {
	if m.ended {
		// an error after the end is a stale source, reload it
		m.ended = false
		m.loading = true
		m.after(m.engineCall("load", m.engine.Load))
		return
	}

	m.loading = false
	m.errored = true
	m.playing = false
	m.paused = true
	m.controlsHidden = false
	m.after(m.hide.Cancel)
}

func (m *Machine) onSeeked(enginePaused bool) {
	m.ended = false
	m.loading = false

	if m.errored {
		return
	}
	m.paused = true
	m.playing = false
	if !enginePaused {
		// the engine kept playing through the seek
		m.paused = false
		m.playing = true
	}
}

func (m *Machine) onLoadedMetadata(engineDuration float64) {
	if m.env.TouchPrimary && !m.env.VolumeControllable {
		// iOS never fires canplaythrough
		m.loading = false
	}

	if m.asset.HasUnknownDuration() {
		// live and open-ended streams keep an unbounded duration
		if math.IsNaN(engineDuration) || math.IsInf(engineDuration, 0) || engineDuration <= 0 {
			engineDuration = math.Inf(1)
		}
		m.duration = engineDuration
	} else {
		m.duration = m.asset.Duration()
	}
}

func (m *Machine) onTimeUpdate(engineTime float64, attached bool) {
	if !attached {
		if !m.detached {
			m.detached = true
			m.playing = false
			m.paused = true
			m.after(m.release)
		}
		return
	}

	m.currentTime = engineTime
	m.after(m.buffered.Call)
}

func (m *Machine) onLevelUpdated(payload any) {
	var update LevelUpdate
	switch p := payload.(type) {
	case LevelUpdate:
		update = p
	case *LevelUpdate:
		if p == nil {
			return
		}
		update = *p
	default:
		return
	}

	if update.Level == update.CurrentLevel && update.Live != m.live {
		m.live = update.Live
		m.seekLocked = update.Live
	}
}

func (m *Machine) release() {
	m.log.Warnf("media element left the page, releasing it")
	if err := m.engine.Release(); err != nil {
		m.log.Warnf("release engine: %s", err)
	}
}

func (m *Machine) updateBuffered() {
	ranges := NormalizeRanges(m.engine.Buffered())
	m.do(func() {
		m.ranges = ranges
	})
}

func (m *Machine) engineCall(what string, call func() error) func() {
	return func() {
		if err := call(); err != nil {
			m.log.Warnf("engine %s: %s", what, err)
		}
	}
}

// togglePlayLocked is the play button: reload after an error, restart after
// the end, otherwise flip between playing and paused.
func (m *Machine) togglePlayLocked(notify bool) {
	m.needsUserTrigger = false
	m.showPoster = false

	switch {
	case m.errored:
		m.after(m.engineCall("load", m.engine.Load))
	case m.ended:
		m.currentTime = 0
		m.after(m.engineCall("seek", func() error { return m.engine.Seek(0) }))
		m.after(m.engineCall("play", m.engine.Play))
		m.noticeLocked(notify, NoticePlay)
	case !m.playing:
		m.after(m.engineCall("play", m.engine.Play))
		m.noticeLocked(notify, NoticePlay)
	default:
		m.after(m.engineCall("pause", m.engine.Pause))
		m.noticeLocked(notify, NoticePause)
	}
}

func (m *Machine) noticeLocked(notify bool, notice Notice) {
	if !notify {
		return
	}

	if m.noticeTimer != nil {
		m.noticeTimer.Stop()
	}
	m.notice = notice
	m.noticeTimer = m.clock.AfterFunc(constant.NotificationDuration, func() {
		m.do(func() {
			m.notice = NoticeNone
			m.noticeTimer = nil
		})
	})
	m.after(func() { m.notify(event.Notification, notice) })
}

// TogglePlay plays or pauses. With notify a transient notice is shown.
func (m *Machine) TogglePlay(notify bool) {
	m.do(func() { m.togglePlayLocked(notify) })
}

// Play starts playback unless it is already playing. After the end it restarts.
func (m *Machine) Play() {
	m.do(func() {
		switch m.statusLocked() {
		case Playing:
			return
		case Loading:
			if m.playing {
				return
			}
		}
		m.togglePlayLocked(false)
	})
}

// Pause pauses playback. It does nothing once playback ended or failed.
func (m *Machine) Pause() {
	m.do(func() {
		switch m.statusLocked() {
		case Ended, Error, Paused, InitialLoad:
			return
		}
		if m.playing {
			m.togglePlayLocked(false)
		}
	})
}

// Seek moves to target, clamped to [0, duration], without changing play/pause.
// While the duration is unknown only the lower bound applies.
// Malformed targets are returned as errors; engine refusals are only logged.
func (m *Machine) Seek(target SeekTarget) error {
	m.mu.Lock()
	fps := m.asset.FPS()
	m.mu.Unlock()

	seconds, err := target.resolve(fps)
	if err != nil {
		return err
	}

	m.do(func() {
		seconds = clampTime(seconds, m.duration)
		m.after(func() {
			if err := m.engine.Seek(seconds); err != nil {
				m.log.Warnf("cannot seek in the current state: %s", err)
				return
			}
			m.do(func() { m.currentTime = seconds })
		})
	})
	return nil
}

// SeekBy moves relative to the current position.
func (m *Machine) SeekBy(delta float64) error {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return ErrInvalidSeek
	}

	m.mu.Lock()
	target := m.currentTime + delta
	m.mu.Unlock()

	return m.Seek(Seconds(target))
}

// CurrentFrame is the frame under the playhead, or zero without fps.
func (m *Machine) CurrentFrame() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.asset.HasFPS() {
		return 0
	}
	return timefmt.Frame(m.currentTime, m.asset.FPS())
}

// StepFrame seeks delta frames away. It reports false when the asset has no fps.
func (m *Machine) StepFrame(delta int) bool {
	m.mu.Lock()
	hasFPS := m.asset.HasFPS()
	m.mu.Unlock()

	if !hasFPS {
		return false
	}
	return m.Seek(Frame(m.CurrentFrame()+delta)) == nil
}

// CurrentTime is the last position reported by the engine.
func (m *Machine) CurrentTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime
}

// Duration is the descriptor's duration, or the engine's once metadata arrived for
// unknown durations. It is zero while no finite duration is known.
func (m *Machine) Duration() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.knownDurationLocked()
}

// Settings returns the current playback attributes.
func (m *Machine) Settings() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// SetVolume clamps volume to [0, 1] and applies it. NaN is ignored.
func (m *Machine) SetVolume(volume float64) {
	if math.IsNaN(volume) {
		return
	}
	volume = lo.Clamp(volume, 0, 1)
	m.do(func() {
		m.settings.Volume = volume
		m.after(func() { m.engine.SetVolume(volume) })
	})
}

func (m *Machine) SetMuted(muted bool) {
	m.do(func() {
		m.settings.Muted = muted
		m.after(func() { m.engine.SetMuted(muted) })
	})
}

func (m *Machine) SetLoop(loop bool) {
	m.do(func() {
		m.settings.Loop = loop
		m.after(func() { m.engine.SetLoop(loop) })
	})
}

// SetPlaybackSpeed applies speed. Validation is the caller's job.
func (m *Machine) SetPlaybackSpeed(speed float64) {
	m.do(func() {
		m.settings.PlaybackSpeed = speed
		m.after(func() { m.engine.SetPlaybackRate(speed) })
	})
}

func (m *Machine) SetAutoplay(autoplay bool) {
	m.do(func() { m.autoplay = autoplay })
}

func (m *Machine) SetTimeFormat(format timefmt.Format) {
	m.do(func() { m.format = format })
}

// SetFullscreen records the fullscreen state reported by the host.
func (m *Machine) SetFullscreen(fullscreen bool) {
	m.do(func() { m.fullscreen = fullscreen })
}

func (m *Machine) Fullscreen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fullscreen
}

// SetSeekLocked locks seeking outside loaded regions, as for live streams.
func (m *Machine) SetSeekLocked(locked bool) {
	m.do(func() { m.seekLocked = locked })
}

// LockControls keeps the controls visible on behalf of the viewer (audio does this).
func (m *Machine) LockControls(lock bool) {
	m.do(func() {
		m.viewerLock = lock
		if lock {
			m.controlsHidden = false
		}
	})
}

// SetHoveringControls keeps the controls visible while the pointer is over them.
func (m *Machine) SetHoveringControls(hovering bool) {
	m.do(func() {
		m.hoverLock = hovering
		if hovering {
			m.controlsHidden = false
		}
	})
}

func (m *Machine) hideControls() {
	m.do(func() {
		if m.autohideControls && !m.viewerLock && !m.hoverLock && m.playing {
			m.controlsHidden = true
		}
	})
}

// PointerEnter reveals the controls.
func (m *Machine) PointerEnter() {
	m.do(func() { m.controlsHidden = false })
}

// PointerLeave hides the controls right away if playback allows it.
func (m *Machine) PointerLeave() {
	m.hideControls()
}

// PointerMove reveals hidden controls, otherwise restarts the auto-hide delay.
func (m *Machine) PointerMove() {
	m.do(func() {
		if m.controlsHidden {
			m.controlsHidden = false
			return
		}
		m.after(m.hide.Trigger)
	})
}

// TouchActivity restarts the auto-hide delay.
func (m *Machine) TouchActivity() {
	m.do(func() { m.after(m.hide.Trigger) })
}

// Reset switches to another asset of the same kind without remounting.
func (m *Machine) Reset(d *asset.Descriptor) error {
	if d == nil {
		return ErrNoAsset
	}

	m.hide.Cancel()
	m.buffered.Cancel()

	m.do(func() {
		if m.noticeTimer != nil {
			m.noticeTimer.Stop()
			m.noticeTimer = nil
		}
		m.notice = NoticeNone
		m.assign(d)
		m.after(m.engineCall("set source", func() error { return m.engine.SetSource(d.URL()) }))
	})
	return nil
}

// Destroy cancels every pending callback and releases the engine. It is idempotent.
func (m *Machine) Destroy() error {
	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		return nil
	}
	m.destroyed = true
	if m.noticeTimer != nil {
		m.noticeTimer.Stop()
		m.noticeTimer = nil
	}
	detached := m.detached
	m.mu.Unlock()

	m.hide.Cancel()
	m.buffered.Cancel()

	if detached {
		return nil
	}
	return m.engine.Release()
}

// Destroyed reports whether Destroy was called.
func (m *Machine) Destroyed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.destroyed
}
