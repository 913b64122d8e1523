package viewer

import (
	"strings"

	"xojoc.pw/useragent"
)

// Environment describes the host capabilities that influence viewer choice and player behaviour.
type Environment struct {
	Safari bool `json:"safari"`
	IOS    bool `json:"ios"`

	// TouchPrimary devices need a user gesture before playback starts.
	TouchPrimary bool `json:"touch_primary"`

	FullscreenSupported bool `json:"fullscreen_supported"`
	VolumeControllable  bool `json:"volume_controllable"`
}

// Desktop is a non-Safari desktop browser with every capability.
var Desktop = Environment{
	FullscreenSupported: true,
	VolumeControllable:  true,
}

// NativeHLS reports whether the platform plays HLS playlists without a streaming engine.
func (e Environment) NativeHLS() bool {
	return e.Safari || e.IOS
}

// DetectEnvironment derives capabilities from a User-Agent header.
func DetectEnvironment(ua string) Environment {
	env := Desktop

	var name, os string
	if agent := useragent.Parse(ua); agent != nil {
		name, os = agent.Name, agent.OS
	}

	env.IOS = strings.EqualFold(os, "iOS") ||
		strings.Contains(ua, "iPhone") ||
		strings.Contains(ua, "iPad") ||
		strings.Contains(ua, "iPod")

	env.Safari = strings.EqualFold(name, "Safari") ||
		(strings.Contains(ua, "Safari/") && !strings.Contains(ua, "Chrome/") && !strings.Contains(ua, "Chromium/"))

	env.TouchPrimary = env.IOS ||
		strings.EqualFold(os, "Android") ||
		strings.Contains(ua, "Android") ||
		strings.Contains(ua, "Mobi")

	if env.IOS {
		env.VolumeControllable = false
		env.FullscreenSupported = strings.Contains(ua, "iPad")
	}

	return env
}
