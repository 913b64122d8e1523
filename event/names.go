package event

import (
	"strings"
	"unicode"
)

// Media lifecycle events, named as the engine delivers them.
const (
	Abort          = "abort"
	CanPlay        = "canplay"
	CanPlayThrough = "canplaythrough"
	Ended          = "ended"
	Error          = "error"
	LoadedData     = "loadeddata"
	LoadedMetadata = "loadedmetadata"
	LoadEnd        = "loadend"
	LoadStart      = "loadstart"
	Pause          = "pause"
	Play           = "play"
	Playing        = "playing"
	Progress       = "progress"
	RateChange     = "ratechange"
	Seeked         = "seeked"
	Seeking        = "seeking"
	Stalled        = "stalled"
	Suspend        = "suspend"
	TimeUpdate     = "timeupdate"
	VolumeChange   = "volumechange"
	Waiting        = "waiting"
)

// Native lists every media lifecycle event.
var Native = []string{
	Abort, CanPlay, CanPlayThrough, Ended, Error, LoadedData, LoadedMetadata,
	LoadEnd, LoadStart, Pause, Play, Playing, Progress, RateChange, Seeked,
	Seeking, Stalled, Suspend, TimeUpdate, VolumeChange, Waiting,
}

// Events raised by the player itself rather than the engine.
const (
	StateChange  = "statechange"
	Notification = "notification"
	Resize       = "resize"
	Fullscreen   = "fullscreenchange"
	ViewMode     = "viewmode"
	DocumentOpen = "documentopen"
)

// IsNative reports whether name is a media lifecycle event.
func IsNative(name string) bool {
	for _, n := range Native {
		if n == name {
			return true
		}
	}
	return false
}

// HLSEventName maps a streaming engine event key such as MANIFEST_LOADED to
// its public name, hlsManifestLoaded.
func HLSEventName(key string) string {
	var b strings.Builder
	b.WriteString("hls")

	for _, word := range strings.Fields(strings.ReplaceAll(key, "_", " ")) {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}

	return b.String()
}

// HLS engine events the player reacts to.
var (
	HLSLevelUpdated = HLSEventName("LEVEL_UPDATED")
	HLSError        = HLSEventName("ERROR")
)
