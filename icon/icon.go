// Package icon renders the status glyphs of the CLI and the terminal player.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/grauman/grauman/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants lists the accepted values of icons.variant.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a symbol.
type Icon int

const (
	Fail Icon = iota
	Success
	Play
	Pause
	Loading
	Ended
	Muted
	Volume
	Loop
	Video
	Audio
	Image
	Document
	Unsupported
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

var icons = map[Icon]*iconDef{
	Fail:        {emoji: "💀", nerd: "", plain: "X", kaomoji: "(×_×)", squares: "▣"},
	Success:     {emoji: "🎉", nerd: "", plain: "OK", kaomoji: "(ᵔᴥᵔ)", squares: "■"},
	Play:        {emoji: "▶️", nerd: "", plain: ">", kaomoji: "(>‿<)", squares: "▶"},
	Pause:       {emoji: "⏸️", nerd: "", plain: "||", kaomoji: "(-_-)", squares: "⏸"},
	Loading:     {emoji: "⏳", nerd: "", plain: "...", kaomoji: "(・_・;)", squares: "◧"},
	Ended:       {emoji: "⏹️", nerd: "", plain: "[]", kaomoji: "(￣▽￣)", squares: "□"},
	Muted:       {emoji: "🔇", nerd: "", plain: "mute", kaomoji: "(ー_ー)zzZ", squares: "▯"},
	Volume:      {emoji: "🔊", nerd: "", plain: "vol", kaomoji: "ヽ(°〇°)ﾉ", squares: "▮"},
	Loop:        {emoji: "🔁", nerd: "", plain: "loop", kaomoji: "(๑•̀ㅂ•́)و", squares: "◫"},
	Video:       {emoji: "🎬", nerd: "", plain: "video", kaomoji: "(⌐■_■)", squares: "▤"},
	Audio:       {emoji: "🎵", nerd: "", plain: "audio", kaomoji: "♪(´▽｀)", squares: "▥"},
	Image:       {emoji: "🖼️", nerd: "", plain: "image", kaomoji: "(◕‿◕)", squares: "▦"},
	Document:    {emoji: "📄", nerd: "", plain: "doc", kaomoji: "φ(゜▽゜*)♪", squares: "▧"},
	Unsupported: {emoji: "🚫", nerd: "", plain: "-", kaomoji: "¯\\_(ツ)_/¯", squares: "▨"},
}

func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get renders i in the configured variant. Unknown variants render nothing.
func Get(i Icon) string {
	if d, ok := icons[i]; ok {
		return d.Get()
	}
	return ""
}
