package playback

// Status is the coarse playback state. A machine is always in exactly one.
type Status int

const (
	InitialLoad Status = iota
	Loading
	Paused
	Playing
	Ended
	Error
)

var statusNames = [...]string{
	InitialLoad: "INITIAL_LOAD",
	Loading:     "LOADING",
	Paused:      "PAUSED",
	Playing:     "PLAYING",
	Ended:       "ENDED",
	Error:       "ERROR",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "UNKNOWN"
	}
	return statusNames[s]
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Notice is the transient play/pause glyph shown after a user toggle.
type Notice string

const (
	NoticeNone  Notice = ""
	NoticePlay  Notice = "play"
	NoticePause Notice = "pause"
)

// State is a snapshot of a machine.
type State struct {
	Status       Status  `json:"status"`
	CurrentTime  float64 `json:"current_time"`
	Duration     float64 `json:"duration"`
	LoadedRanges []Range `json:"loaded_ranges"`

	Volume        float64 `json:"volume"`
	Muted         bool    `json:"muted"`
	Loop          bool    `json:"loop"`
	PlaybackSpeed float64 `json:"playback_speed"`
	Fullscreen    bool    `json:"fullscreen"`

	Loading        bool   `json:"loading"`
	ShowPoster     bool   `json:"show_poster"`
	ShowPlayPrompt bool   `json:"show_play_prompt"`
	ControlsHidden bool   `json:"controls_hidden"`
	SeekLocked     bool   `json:"seek_locked"`
	Notification   Notice `json:"notification,omitempty"`

	ElapsedLabel string `json:"elapsed_label"`
	TotalLabel   string `json:"total_label"`
}

// view is the comparable part of State used to detect changes worth announcing.
type view struct {
	status         Status
	loading        bool
	poster         bool
	prompt         bool
	controlsHidden bool
	seekLocked     bool
	notification   Notice
	fullscreen     bool
}
