package constant

import "time"

// Playback defaults applied when neither an explicit setting nor a stored preference exists.
const (
	DefaultVolume        = 0.5
	DefaultLoop          = false
	DefaultMuted         = false
	DefaultPlaybackSpeed = 1.0

	// DefaultFPS is the NTSC frame rate used when a frame-accurate display is requested without fps metadata.
	DefaultFPS = 2997.0 / 125.0

	// DefaultPreferenceBaseKey namespaces persisted preferences.
	DefaultPreferenceBaseKey = "media-player"
)

// PlaybackSpeeds is the ordered set of speeds a player accepts.
var PlaybackSpeeds = []float64{0.5, 1, 1.25, 1.5}

// Timing constants shared by the playback state machine and the interaction models.
const (
	ControlsHideDelay    = 3000 * time.Millisecond
	NotificationDuration = 600 * time.Millisecond
	BufferedThrottle     = 50 * time.Millisecond
	DragThrottle         = 25 * time.Millisecond
)

// Keyboard step sizes.
const (
	ShortSeekStep = 5.0
	LongSeekStep  = 10.0
	VolumeStep    = 0.05
)
