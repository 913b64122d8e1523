// Package player drives an external mpv process as the media engine of a
// terminal-hosted media player. Commands go over mpv's JSON IPC socket and
// observed properties come back as media lifecycle events.
package player

import (
	"errors"

	"github.com/grauman/grauman/playback"
)

var (
	ErrNotRunning = errors.New("mpv is not running")
	ErrNoSink     = errors.New("mpv needs an event sink")
)

// Sink receives the media lifecycle events translated from mpv.
type Sink func(name string, payload any)

// Options configure the mpv process.
type Options struct {
	// Binary defaults to the mpv found in PATH.
	Binary string
	Title  string
	// Headers are sent with every HTTP request mpv makes for the source.
	Headers map[string]string
	// Window forces a video window even for audio sources.
	Window bool
	// StartAt is the position in seconds playback begins from.
	StartAt float64
}

var _ playback.Engine = (*MPV)(nil)
