package grauman

import (
	"github.com/google/uuid"
	"github.com/grauman/grauman/asset"
	"github.com/grauman/grauman/clock"
	"github.com/grauman/grauman/geometry"
	"github.com/grauman/grauman/key"
	"github.com/grauman/grauman/log"
	"github.com/grauman/grauman/playback"
	"github.com/grauman/grauman/preference"
	"github.com/grauman/grauman/timefmt"
	"github.com/grauman/grauman/viewer"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// EngineFactory creates the media engine of a newly mounted player.
type EngineFactory func(kind viewer.Kind, d *asset.Descriptor) (playback.Engine, error)

// FrameFactory embeds a new document viewer frame into the container.
type FrameFactory func() (DocumentFrame, error)

// Settings configure a facade. Unset options fall back to the stored
// preference, then to the configuration defaults.
type Settings struct {
	// File is loaded right after construction.
	File *asset.Descriptor

	Autoplay          mo.Option[bool]
	KeyboardShortcuts mo.Option[bool]
	Volume            mo.Option[float64]
	Muted             mo.Option[bool]
	Loop              mo.Option[bool]
	PlaybackSpeed     mo.Option[float64]
	Upscale           mo.Option[geometry.UpscaleMode]
	TimeFormat        mo.Option[timefmt.Format]

	// StorageEnabled toggles preference persistence. StorageKey overrides the base key.
	StorageEnabled mo.Option[bool]
	StorageKey     string
	// Store replaces the process-wide preference store.
	Store *preference.Store

	PrintingEnabled    mo.Option[bool]
	DownloadingEnabled mo.Option[bool]
	// PageOrigin is the only origin document frame messages are accepted from.
	PageOrigin string

	// Env defaults to a desktop browser.
	Env   mo.Option[viewer.Environment]
	Clock clock.Clock

	NewEngine EngineFactory
	NewFrame  FrameFactory
}

func (s Settings) env() viewer.Environment {
	return s.Env.OrElse(viewer.Desktop)
}

func (s Settings) clock() clock.Clock {
	if s.Clock == nil {
		return clock.Real()
	}
	return s.Clock
}

// store resolves the preference store, or a disabled one when persistence is off or unavailable.
func (s Settings) store() *preference.Store {
	if !s.StorageEnabled.OrElse(viper.GetBool(key.StorageEnabled)) {
		return preference.Disabled()
	}

	store := s.Store
	if store == nil {
		store = preference.FromConfig()
	}
	if !store.Available() {
		log.WarnOnce("grauman.storage", "preference storage not available in this environment, disabling")
		return preference.Disabled()
	}
	return store.Namespace(s.StorageKey)
}

func (s Settings) autoplay() bool {
	return s.Autoplay.OrElse(viper.GetBool(key.PlayerAutoplay))
}

func (s Settings) keyboardShortcuts() bool {
	return s.KeyboardShortcuts.OrElse(viper.GetBool(key.PlayerKeyboardShortcuts))
}

func (s Settings) upscale(l *log.Entry) geometry.UpscaleMode {
	if mode, ok := s.Upscale.Get(); ok {
		if mode.Valid() {
			return mode
		}
		l.Warnf("ignoring upscale setting: %s", ErrInvalidUpscale)
	}

	if configured := viper.GetString(key.PlayerUpscale); configured != "" {
		mode, err := geometry.ParseUpscaleMode(configured)
		if err == nil {
			return mode
		}
		l.Warnf("ignoring %s: %s", key.PlayerUpscale, err)
	}
	return geometry.DefaultUpscale
}

func (s Settings) timeFormat(l *log.Entry) timefmt.Format {
	if format, ok := s.TimeFormat.Get(); ok {
		return format
	}

	if configured := viper.GetString(key.PlayerTimeFormat); configured != "" {
		format, err := timefmt.ParseFormat(configured)
		if err == nil {
			return format
		}
		l.Warnf("ignoring %s: %s", key.PlayerTimeFormat, err)
	}
	return timefmt.FormatTime
}

// preferred resolves explicit > stored > fallback. Invalid explicit values are
// warned about and skipped, invalid stored ones silently.
func preferred[T any](l *log.Entry, store *preference.Store, setting string, explicit mo.Option[T], valid func(T) bool, fallback T) T {
	if value, ok := explicit.Get(); ok {
		if valid(value) {
			return value
		}
		l.Warnf("ignoring invalid %s setting %v", setting, value)
	}

	if stored, ok := preference.Lookup[T](store, setting).Get(); ok && valid(stored) {
		return stored
	}
	return fallback
}

func always[T any](T) bool { return true }

// newLogger tags every message with a fresh instance id.
func newLogger(component string) (string, *log.Entry) {
	id := uuid.NewString()
	return id, log.With(log.Fields{"component": component, "instance": id})
}
