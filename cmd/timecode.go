package cmd

import (
	"strconv"

	"github.com/grauman/grauman/constant"
	"github.com/grauman/grauman/key"
	"github.com/grauman/grauman/style"
	"github.com/grauman/grauman/timefmt"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(timecodeCmd)
	timecodeCmd.Flags().Float64("fps", constant.DefaultFPS, "Frame rate for SMPTE timecodes")
	timecodeCmd.Flags().StringP("format", "f", "", "TIME or SMPTE, the player.time_format config when empty")
	timecodeCmd.Flags().Bool("frame", false, "Also print the frame number")
}

var timecodeCmd = &cobra.Command{
	Use:   "timecode position...",
	Short: "Render playback positions as timecodes",
	Long:  "Render playback positions, given in seconds or as [HH:]MM:SS, as clock times or SMPTE timecodes.",
	Example: `  grauman timecode 3725.5
  grauman timecode -f smpte --fps 25 01:02:05`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		raw := lo.Must(cmd.Flags().GetString("format"))
		if raw == "" {
			raw = viper.GetString(key.PlayerTimeFormat)
		}
		format, err := timefmt.ParseFormat(raw)
		handleErr(err)

		fps := lo.Must(cmd.Flags().GetFloat64("fps"))
		withFrame := lo.Must(cmd.Flags().GetBool("frame"))

		for _, arg := range args {
			seconds, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				seconds, err = timefmt.ParseTime(arg)
				handleErr(err)
			}

			label := timefmt.Render(seconds, fps, format)
			if withFrame {
				label += " " + style.Faint("frame "+strconv.Itoa(timefmt.Frame(seconds, fps)))
			}
			cmd.Println(label)
		}
	},
}
