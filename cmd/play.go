package cmd

import (
	"fmt"

	"github.com/grauman/grauman/geometry"
	"github.com/grauman/grauman/grauman"
	"github.com/grauman/grauman/history"
	"github.com/grauman/grauman/key"
	"github.com/grauman/grauman/log"
	"github.com/grauman/grauman/open"
	"github.com/grauman/grauman/timefmt"
	"github.com/grauman/grauman/tui"
	"github.com/grauman/grauman/util"
	"github.com/grauman/grauman/viewer"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playCmd)
	addAssetFlags(playCmd.Flags())

	playCmd.Flags().StringP("title", "t", "", "Title shown above the controls, the file name when empty")
	playCmd.Flags().String("app", "", "Application opening images and documents, the system default when empty")

	playCmd.Flags().String("mpv", "", "mpv executable")
	lo.Must0(viper.BindPFlag(key.PlayerMpvBinary, playCmd.Flags().Lookup("mpv")))

	playCmd.Flags().BoolP("autoplay", "a", false, "Start as soon as the media can play through")
	playCmd.Flags().Float64("volume", 0, "Volume between 0 and 1")
	playCmd.Flags().Bool("muted", false, "Start muted")
	playCmd.Flags().BoolP("loop", "l", false, "Loop playback")
	playCmd.Flags().Float64P("speed", "s", 1, "Playback speed")
	playCmd.Flags().String("time-format", "", "TIME or SMPTE")
	playCmd.Flags().String("upscale", "", "Upscale policy")
	playCmd.Flags().Bool("no-storage", false, "Neither read nor write stored preferences")
	playCmd.Flags().String("namespace", "", "Preference namespace")
	playCmd.Flags().Bool("from-start", false, "Ignore the position recorded in the playback history")
	playCmd.Flags().Bool("no-history", false, "Do not record the position in the playback history")
}

// resumePosition is where the last session of url stopped, or zero.
func resumePosition(cmd *cobra.Command, url string) float64 {
	if !viper.GetBool(key.HistoryResume) || lo.Must(cmd.Flags().GetBool("from-start")) {
		return 0
	}

	found, err := history.Lookup(url)
	if err != nil {
		log.Warnf("playback history unreadable: %s", err)
		return 0
	}
	if entry, ok := found.Get(); ok && entry.Resumable() {
		return entry.Position
	}
	return 0
}

// optional is Some only when the user passed the flag, so that stored
// preferences and config defaults still apply otherwise.
func optional[T any](flags *pflag.FlagSet, name string, get func(string) (T, error)) mo.Option[T] {
	if !flags.Changed(name) {
		return mo.None[T]()
	}
	return mo.Some(lo.Must(get(name)))
}

func playSettings(cmd *cobra.Command) (grauman.Settings, error) {
	flags := cmd.Flags()

	settings := grauman.Settings{
		Autoplay:          optional(flags, "autoplay", flags.GetBool),
		KeyboardShortcuts: mo.Some(true),
		Volume:            optional(flags, "volume", flags.GetFloat64),
		Muted:             optional(flags, "muted", flags.GetBool),
		Loop:              optional(flags, "loop", flags.GetBool),
		PlaybackSpeed:     optional(flags, "speed", flags.GetFloat64),
		StorageKey:        lo.Must(flags.GetString("namespace")),
	}

	if lo.Must(flags.GetBool("no-storage")) {
		settings.StorageEnabled = mo.Some(false)
	}

	if raw := lo.Must(flags.GetString("time-format")); raw != "" {
		format, err := timefmt.ParseFormat(raw)
		if err != nil {
			return settings, err
		}
		settings.TimeFormat = mo.Some(format)
	}

	if raw := lo.Must(flags.GetString("upscale")); raw != "" {
		mode, err := geometry.ParseUpscaleMode(raw)
		if err != nil {
			return settings, err
		}
		settings.Upscale = mo.Some(mode)
	}

	return settings, nil
}

var playCmd = &cobra.Command{
	Use:   "play url|path",
	Short: "Play audio and video in the terminal with mpv",
	Long: `Play audio and video with mpv while the terminal shows the controls.
Images and documents are handed to the system viewer.`,
	Example: `  grauman play https://cdn.example/live.m3u8 --loop
  grauman play ./podcast.mp3 --speed 1.5`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, err := assetFromFlags(cmd, args[0])
		handleErr(err)

		switch kind := viewer.Select(d, viewer.Desktop); kind.Family() {
		case viewer.FamilyMedia:
			settings, err := playSettings(cmd)
			handleErr(err)

			title := lo.Must(cmd.Flags().GetString("title"))
			if title == "" {
				title = util.FileStem(args[0])
			}

			handleErr(tui.Run(tui.Options{
				File:     d,
				Title:    title,
				Binary:   viper.GetString(key.PlayerMpvBinary),
				Settings: settings,
				StartAt:  resumePosition(cmd, d.URL()),
				Record:   viper.GetBool(key.HistorySave) && !lo.Must(cmd.Flags().GetBool("no-history")),
			}))
		case viewer.FamilyImage, viewer.FamilyDocument:
			handleErr(open.StartWith(d.URL(), lo.Must(cmd.Flags().GetString("app"))))
			success("opened %s in the %s", d.URL(), kind.Family())
		default:
			handleErr(fmt.Errorf("%s cannot be displayed", d))
		}
	},
}
