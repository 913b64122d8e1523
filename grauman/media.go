package grauman

import (
	"fmt"
	"math"
	"sync"

	"github.com/grauman/grauman/asset"
	"github.com/grauman/grauman/clock"
	"github.com/grauman/grauman/constant"
	"github.com/grauman/grauman/event"
	"github.com/grauman/grauman/geometry"
	"github.com/grauman/grauman/log"
	"github.com/grauman/grauman/playback"
	"github.com/grauman/grauman/preference"
	"github.com/grauman/grauman/scrub"
	"github.com/grauman/grauman/timefmt"
	"github.com/grauman/grauman/viewer"
	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
)

// MediaPlayer plays audio, video, HLS, 360 and stereoscopic files.
type MediaPlayer struct {
	observable

	id    string
	log   *log.Entry
	env   viewer.Environment
	clock clock.Clock
	store *preference.Store

	newEngine EngineFactory

	// load serialises mounting so that engines never overlap.
	load sync.Mutex

	mu        sync.Mutex
	container Container
	file      *asset.Descriptor
	kind      viewer.Kind

	autoplay   bool
	shortcuts  bool
	volume     float64
	muted      bool
	loop       bool
	speed      float64
	upscale    geometry.UpscaleMode
	timeFormat timefmt.Format
	fullscreen bool
	size       geometry.Size

	machine  *playback.Machine
	scrubber *scrub.Scrubber
	slider   *scrub.VolumeSlider
}

// NewMediaPlayer creates a player in container and loads settings.File, if any.
func NewMediaPlayer(container Container, settings Settings) (*MediaPlayer, error) {
	if container == nil {
		return nil, ErrInvalidContainer
	}

	id, logger := newLogger("media-player")
	p := &MediaPlayer{
		id:        id,
		log:       logger,
		env:       settings.env(),
		clock:     settings.clock(),
		store:     settings.store(),
		newEngine: settings.NewEngine,
		container: container,
		autoplay:  settings.autoplay(),
		shortcuts: settings.keyboardShortcuts(),
	}

	p.upscale = settings.upscale(p.log)
	p.timeFormat = settings.timeFormat(p.log)

	explicitVolume := settings.Volume.Map(func(v float64) (float64, bool) {
		if math.IsNaN(v) {
			return v, true
		}
		return lo.Clamp(v, 0, 1), true
	})
	p.volume = preferred(p.log, p.store, preference.Volume, explicitVolume, func(v float64) bool {
		return !math.IsNaN(v) && v >= 0 && v <= 1
	}, constant.DefaultVolume)
	p.muted = preferred(p.log, p.store, preference.Muted, settings.Muted, always[bool], constant.DefaultMuted)
	p.loop = preferred(p.log, p.store, preference.Loop, settings.Loop, always[bool], constant.DefaultLoop)
	p.speed = preferred(p.log, p.store, preference.PlaybackSpeed, settings.PlaybackSpeed, playback.ValidSpeed, constant.DefaultPlaybackSpeed)

	if !p.env.VolumeControllable {
		log.WarnOnce("grauman.volume", "volume is not controllable in this environment")
	}

	if settings.File != nil {
		if err := p.SetFile(settings.File); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// ID identifies the player in logs.
func (p *MediaPlayer) ID() string {
	return p.id
}

// SetContainer moves the player to another container, remounting the current file.
func (p *MediaPlayer) SetContainer(container Container) error {
	if container == nil {
		return ErrInvalidContainer
	}

	p.load.Lock()
	defer p.load.Unlock()

	err := p.unmount()

	p.mu.Lock()
	p.container = container
	file := p.file
	p.mu.Unlock()

	if file == nil {
		return err
	}
	return multierror.Append(err, p.mount(file)).ErrorOrNil()
}

func (p *MediaPlayer) Container() Container {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.container
}

// File is the loaded descriptor, if any.
func (p *MediaPlayer) File() *asset.Descriptor {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.file
}

// Kind is the mounted viewer kind.
func (p *MediaPlayer) Kind() viewer.Kind {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.kind
}

// SetFile loads d. A file of the kind already mounted reuses the engine,
// any other kind remounts.
func (p *MediaPlayer) SetFile(d *asset.Descriptor) error {
	if d == nil {
		return ErrInvalidFile
	}

	kind := viewer.Select(d, p.env)
	if !kind.IsMedia() {
		return fmt.Errorf("%w: media player cannot show %s", ErrUnsupportedFile, d)
	}

	p.load.Lock()
	defer p.load.Unlock()

	p.mu.Lock()
	if p.file == d {
		p.mu.Unlock()
		return nil
	}
	machine, current := p.machine, p.kind
	p.mu.Unlock()

	if machine != nil && current == kind {
		p.log.Debugf("reusing %s viewer for %s", kind, d.URL())
		if err := machine.Reset(d); err != nil {
			return err
		}
		p.mu.Lock()
		p.file = d
		p.mu.Unlock()
		p.Resize()
		return nil
	}

	err := p.unmount()
	if mountErr := p.mount(d); mountErr != nil {
		// the previous file is gone with its viewer
		p.mu.Lock()
		p.file = nil
		p.mu.Unlock()
		err = multierror.Append(err, mountErr)
	}
	return err
}

// mount creates the engine, machine and interaction models for d and makes it
// the current file once they exist. Callers hold p.load.
func (p *MediaPlayer) mount(d *asset.Descriptor) error {
	if p.newEngine == nil {
		return ErrNoEngineFactory
	}

	kind := viewer.Select(d, p.env)
	engine, err := p.newEngine(kind, d)
	if err != nil {
		return fmt.Errorf("create %s engine: %w", kind, err)
	}

	p.mu.Lock()
	container := p.container
	opts := playback.Options{
		Asset:    d,
		Kind:     kind,
		Engine:   engine,
		Env:      p.env,
		Clock:    p.clock,
		Notifier: relay(p.relay),
		Controls: controls{p},
		Logger:   p.log,
		Settings: playback.Settings{
			Volume:        p.volume,
			Muted:         p.muted,
			Loop:          p.loop,
			PlaybackSpeed: p.speed,
		},
		Autoplay:          p.autoplay,
		KeyboardShortcuts: p.shortcuts,
		TimeFormat:        p.timeFormat,
	}
	p.mu.Unlock()

	machine, err := playback.New(opts)
	if err != nil {
		return multierror.Append(err, engine.Release()).ErrorOrNil()
	}
	if kind == viewer.Audio {
		// audio has nothing to look at behind the controls
		machine.LockControls(true)
	}

	scrubber := scrub.NewScrubber(p.clock, capturer(container), focuser(container), func(seconds float64) {
		_ = p.SeekTo(seconds)
	})
	slider := scrub.NewVolumeSlider(p.clock, capturer(container), focuser(container), func(volume float64) {
		_ = p.SetVolume(volume)
	})

	p.mu.Lock()
	p.file = d
	p.kind = kind
	p.machine = machine
	p.scrubber = scrubber
	p.slider = slider
	fullscreen := p.fullscreen
	p.mu.Unlock()

	machine.SetFullscreen(fullscreen)
	p.log.Infof("mounted %s viewer for %s", kind, d.URL())
	p.Resize()
	return nil
}

// unmount releases everything mount created. Callers hold p.load.
func (p *MediaPlayer) unmount() error {
	p.mu.Lock()
	machine, scrubber, slider := p.machine, p.scrubber, p.slider
	p.machine, p.scrubber, p.slider = nil, nil, nil
	p.kind = viewer.Unsupported
	p.size = geometry.Size{}
	p.mu.Unlock()

	if machine == nil {
		return nil
	}

	scrubber.Destroy()
	slider.Destroy()

	var result *multierror.Error
	if err := machine.Destroy(); err != nil {
		result = multierror.Append(result, fmt.Errorf("release engine: %w", err))
	}
	return result.ErrorOrNil()
}

// Destroy unmounts the viewer. A later SetFile or SetContainer mounts again.
func (p *MediaPlayer) Destroy() error {
	p.load.Lock()
	defer p.load.Unlock()
	return p.unmount()
}

// relay receives the machine's events, keeps the scrubber current and republishes them.
func (p *MediaPlayer) relay(name string, payload any) {
	switch name {
	case event.TimeUpdate, event.Progress, event.StateChange, event.LoadedMetadata, event.Seeked:
		p.syncScrubber()
	}
	p.Notify(name, payload)
}

func (p *MediaPlayer) syncScrubber() {
	p.mu.Lock()
	machine, scrubber := p.machine, p.scrubber
	p.mu.Unlock()

	if machine == nil {
		return
	}
	st := machine.State()
	scrubber.Update(st.CurrentTime, st.Duration, st.LoadedRanges, st.SeekLocked)
}

// mounted returns the machine, or nil when nothing is mounted.
func (p *MediaPlayer) mounted() *playback.Machine {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.machine
}

// HandleEngineEvent feeds an engine event into the player.
func (p *MediaPlayer) HandleEngineEvent(name string, payload any) {
	if m := p.mounted(); m != nil {
		m.Handle(name, payload)
	}
}

// HandleKey applies a keyboard shortcut. It reports whether the key was consumed.
func (p *MediaPlayer) HandleKey(k playback.Key) bool {
	if m := p.mounted(); m != nil {
		return m.HandleKey(k)
	}
	return false
}

// State is the playback snapshot, or the zero State when nothing is mounted.
func (p *MediaPlayer) State() playback.State {
	if m := p.mounted(); m != nil {
		return m.State()
	}
	return playback.State{}
}

// Scrubber is the seek bar model of the mounted viewer.
func (p *MediaPlayer) Scrubber() *scrub.Scrubber {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scrubber
}

// VolumeSlider is the volume model of the mounted viewer.
func (p *MediaPlayer) VolumeSlider() *scrub.VolumeSlider {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.slider
}

// Pointer activity over the player shows the controls.
func (p *MediaPlayer) PointerEnter() {
	if m := p.mounted(); m != nil {
		m.PointerEnter()
	}
}

func (p *MediaPlayer) PointerMove() {
	if m := p.mounted(); m != nil {
		m.PointerMove()
	}
}

func (p *MediaPlayer) PointerLeave() {
	if m := p.mounted(); m != nil {
		m.PointerLeave()
	}
}

func (p *MediaPlayer) TouchActivity() {
	if m := p.mounted(); m != nil {
		m.TouchActivity()
	}
}

// HoverControls locks the controls while the pointer is over them.
func (p *MediaPlayer) HoverControls(hovering bool) {
	if m := p.mounted(); m != nil {
		m.SetHoveringControls(hovering)
	}
}

// Play starts playback unless it is already playing.
func (p *MediaPlayer) Play() {
	if m := p.mounted(); m != nil {
		m.Play()
	}
}

// Pause pauses unless playback is already paused.
func (p *MediaPlayer) Pause() {
	if m := p.mounted(); m != nil {
		m.Pause()
	}
}

// Stop pauses and rewinds.
func (p *MediaPlayer) Stop() {
	p.Pause()
	_ = p.SeekTo(0)
}

// SeekTo jumps to seconds, clamped to the duration.
func (p *MediaPlayer) SeekTo(seconds float64) error {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Errorf("seek to %v: %w", seconds, playback.ErrInvalidSeek)
	}
	if m := p.mounted(); m != nil {
		return m.SeekTo(seconds)
	}
	return nil
}

// Seek moves by a relative number of seconds.
func (p *MediaPlayer) Seek(delta float64) error {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return fmt.Errorf("seek by %v: %w", delta, playback.ErrInvalidSeek)
	}
	if m := p.mounted(); m != nil {
		return m.SeekBy(delta)
	}
	return nil
}

// SeekFrame jumps to a frame of a file with known fps.
func (p *MediaPlayer) SeekFrame(frame int) error {
	if m := p.mounted(); m != nil {
		return m.Seek(playback.Frame(frame))
	}
	return nil
}

// CurrentTime is the playhead position in seconds.
func (p *MediaPlayer) CurrentTime() float64 {
	if m := p.mounted(); m != nil {
		return m.CurrentTime()
	}
	return 0
}

// Duration is the file's duration, or the engine's when the file does not know it.
func (p *MediaPlayer) Duration() float64 {
	if m := p.mounted(); m != nil {
		return m.Duration()
	}
	if d := p.File(); d != nil && !d.HasUnknownDuration() {
		return d.Duration()
	}
	return 0
}

func (p *MediaPlayer) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// SetVolume clamps volume to [0, 1], applies and stores it. NaN is ignored with a warning.
func (p *MediaPlayer) SetVolume(volume float64) error {
	if math.IsNaN(volume) {
		p.log.Warnf("volume was asked to assign NaN, ignoring")
		return nil
	}
	volume = lo.Clamp(volume, 0, 1)

	p.mu.Lock()
	p.volume = volume
	machine := p.machine
	p.mu.Unlock()

	if machine != nil {
		machine.SetVolume(volume)
	}
	p.store.Set(preference.Volume, volume)
	return nil
}

func (p *MediaPlayer) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

func (p *MediaPlayer) SetMuted(muted bool) error {
	p.mu.Lock()
	p.muted = muted
	machine := p.machine
	p.mu.Unlock()

	if machine != nil {
		machine.SetMuted(muted)
	}
	p.store.Set(preference.Muted, muted)
	return nil
}

func (p *MediaPlayer) Loop() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loop
}

func (p *MediaPlayer) SetLoop(loop bool) error {
	p.mu.Lock()
	p.loop = loop
	machine := p.machine
	p.mu.Unlock()

	if machine != nil {
		machine.SetLoop(loop)
	}
	p.store.Set(preference.Loop, loop)
	return nil
}

func (p *MediaPlayer) PlaybackSpeed() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speed
}

// SetPlaybackSpeed accepts only the allowed speeds.
func (p *MediaPlayer) SetPlaybackSpeed(speed float64) error {
	if !playback.ValidSpeed(speed) {
		return fmt.Errorf("playback speed %v: %w", speed, ErrInvalidSpeed)
	}

	p.mu.Lock()
	p.speed = speed
	machine := p.machine
	p.mu.Unlock()

	if machine != nil {
		machine.SetPlaybackSpeed(speed)
	}
	p.store.Set(preference.PlaybackSpeed, speed)
	return nil
}

// IncreaseSpeed steps to the next allowed speed. It does nothing at the fastest.
func (p *MediaPlayer) IncreaseSpeed() {
	if next, ok := playback.StepSpeed(p.PlaybackSpeed(), 1); ok {
		_ = p.SetPlaybackSpeed(next)
	}
}

// DecreaseSpeed steps to the previous allowed speed. It does nothing at the slowest.
func (p *MediaPlayer) DecreaseSpeed() {
	if next, ok := playback.StepSpeed(p.PlaybackSpeed(), -1); ok {
		_ = p.SetPlaybackSpeed(next)
	}
}

func (p *MediaPlayer) Autoplay() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.autoplay
}

func (p *MediaPlayer) SetAutoplay(autoplay bool) error {
	p.mu.Lock()
	p.autoplay = autoplay
	machine := p.machine
	p.mu.Unlock()

	if machine != nil {
		machine.SetAutoplay(autoplay)
	}
	return nil
}

func (p *MediaPlayer) Upscale() geometry.UpscaleMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.upscale
}

// SetUpscale changes the upscale policy and resizes.
func (p *MediaPlayer) SetUpscale(mode geometry.UpscaleMode) error {
	if !mode.Valid() {
		return fmt.Errorf("upscale %q: %w", mode, ErrInvalidUpscale)
	}

	p.mu.Lock()
	changed := p.upscale != mode
	p.upscale = mode
	p.mu.Unlock()

	if changed {
		p.Resize()
	}
	return nil
}

// SetTimeFormat switches the elapsed/total labels between TIME and SMPTE.
func (p *MediaPlayer) SetTimeFormat(format timefmt.Format) error {
	format, err := timefmt.ParseFormat(string(format))
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.timeFormat = format
	machine := p.machine
	p.mu.Unlock()

	if machine != nil {
		machine.SetTimeFormat(format)
	}
	return nil
}

// SetKeyboardShortcuts enables or disables HandleKey.
func (p *MediaPlayer) SetKeyboardShortcuts(enabled bool) {
	p.mu.Lock()
	p.shortcuts = enabled
	machine := p.machine
	p.mu.Unlock()

	if machine != nil {
		machine.SetKeyboardShortcuts(enabled)
	}
}

func (p *MediaPlayer) IsFullscreenEnabled() bool {
	return p.env.FullscreenSupported
}

func (p *MediaPlayer) IsVolumeControllable() bool {
	return p.env.VolumeControllable
}

func (p *MediaPlayer) Fullscreen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fullscreen
}

// SetFullscreen asks the container to enter or leave fullscreen.
func (p *MediaPlayer) SetFullscreen(on bool) error {
	if !p.env.FullscreenSupported {
		return ErrFullscreenUnsupported
	}
	if on == p.Fullscreen() {
		return nil
	}
	if err := requestFullscreen(p.Container(), on); err != nil {
		return fmt.Errorf("request fullscreen: %w", err)
	}
	p.FullscreenChanged(on)
	return nil
}

// FullscreenChanged records a fullscreen change reported by the host.
func (p *MediaPlayer) FullscreenChanged(on bool) {
	p.mu.Lock()
	if p.fullscreen == on {
		p.mu.Unlock()
		return
	}
	p.fullscreen = on
	machine := p.machine
	p.mu.Unlock()

	if machine != nil {
		machine.SetFullscreen(on)
	}
	p.Resize()
	p.Notify(event.Fullscreen, on)
}

// Resize recomputes the player size, e.g. after the container was resized.
func (p *MediaPlayer) Resize() {
	p.mu.Lock()
	if p.machine == nil || p.file == nil {
		p.mu.Unlock()
		return
	}
	bounds := geometry.Bounds(p.container.Box(), p.container.Viewport(), p.fullscreen)
	size := geometry.ComputeSize(geometry.NaturalSize(p.file), bounds, p.fullscreen, p.upscale)
	changed := size != p.size
	p.size = size
	p.mu.Unlock()

	if changed {
		p.Notify(event.Resize, size)
	}
}

// Width is the computed player width, zero when nothing is mounted.
func (p *MediaPlayer) Width() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return int(p.size.Width)
}

func (p *MediaPlayer) Height() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return int(p.size.Height)
}

// ContainerWidth is the container's content width in whole pixels.
func (p *MediaPlayer) ContainerWidth() int {
	w, _ := containerSize(p.Container())
	return w
}

func (p *MediaPlayer) ContainerHeight() int {
	_, h := containerSize(p.Container())
	return h
}

// controls routes keyboard shortcuts through the player's validating, persisting setters.
type controls struct {
	p *MediaPlayer
}

func (c controls) TogglePlay(notify bool) {
	if m := c.p.mounted(); m != nil {
		m.TogglePlay(notify)
	}
}

func (c controls) SeekBy(delta float64) error { return c.p.Seek(delta) }
func (c controls) SeekTo(seconds float64) error { return c.p.SeekTo(seconds) }

func (c controls) StepFrame(delta int) bool {
	if m := c.p.mounted(); m != nil {
		return m.StepFrame(delta)
	}
	return false
}

func (c controls) IncreaseSpeed() { c.p.IncreaseSpeed() }
func (c controls) DecreaseSpeed() { c.p.DecreaseSpeed() }
func (c controls) ToggleMuted() { _ = c.p.SetMuted(!c.p.Muted()) }

func (c controls) AdjustVolume(delta float64) {
	_ = c.p.SetVolume(c.p.Volume() + delta)
}

func (c controls) ToggleFullscreen() {
	if err := c.p.SetFullscreen(!c.p.Fullscreen()); err != nil {
		c.p.log.Warnf("toggle fullscreen: %s", err)
	}
}

func (c controls) Duration() float64 { return c.p.Duration() }
