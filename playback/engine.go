package playback

// Engine is the media element a machine drives.
// Implementations deliver their lifecycle events to Machine.Handle.
type Engine interface {
	Play() error
	Pause() error
	// Load restarts loading of the current source.
	Load() error
	SetSource(url string) error
	Seek(seconds float64) error

	CurrentTime() float64
	Duration() float64
	Paused() bool
	Buffered() []Range

	SetVolume(volume float64)
	SetMuted(muted bool)
	SetLoop(loop bool)
	SetPlaybackRate(rate float64)

	// Attached reports whether the element is still part of the host page.
	Attached() bool
	// Release stops playback and drops the source.
	Release() error
}

// LevelUpdate is the payload of the streaming engine's level update event.
type LevelUpdate struct {
	Level        int  `json:"level"`
	CurrentLevel int  `json:"current_level"`
	Live         bool `json:"live"`
}
