// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Player Defaults - consulted by the host facades when a setting is not passed explicitly.
const (
	PlayerAutoplay          = "player.autoplay"
	PlayerKeyboardShortcuts = "player.keyboard_shortcuts"
	PlayerUpscale           = "player.upscale"
	PlayerTimeFormat        = "player.time_format"
)

// Document Viewer - capabilities forwarded to the embedded document viewer.
const (
	DocumentPrinting    = "document.printing"
	DocumentDownloading = "document.downloading"
)

// Preference Storage - these keys govern the persistence of user playback preferences.
const (
	StorageEnabled = "storage.enabled"
	StorageBaseKey = "storage.base_key"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// Policy Server - these keys configure the HTTP surface used by browser front ends.
const (
	ServerAddr           = "server.addr"
	ServerAllowedOrigins = "server.allowed_origins"
)

// Terminal Player - options of `grauman play`.
const (
	PlayerMpvBinary = "player.mpv_binary"
	IconsVariant    = "icons.variant"
)

// CLI Execution Environment.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)

// Playback History - positions recorded by `grauman play`.
const (
	HistorySave   = "history.save"
	HistoryResume = "history.resume"
)
