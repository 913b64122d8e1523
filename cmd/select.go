package cmd

import (
	"encoding/json"

	"github.com/grauman/grauman/color"
	"github.com/grauman/grauman/style"
	"github.com/grauman/grauman/util"
	"github.com/grauman/grauman/viewer"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(selectCmd)
	addAssetFlags(selectCmd.Flags())
	selectCmd.Flags().StringP("user-agent", "u", "", "Browser User-Agent to select for, a desktop browser when empty")
	selectCmd.Flags().BoolP("json", "j", false, "Print as json")
}

var selectCmd = &cobra.Command{
	Use:   "select url|path",
	Short: "Show which viewer would display a file",
	Example: `  grauman select https://cdn.example/live.m3u8 -u "$(cat ua.txt)"
  grauman select ./scan.pdf`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, err := assetFromFlags(cmd, args[0])
		handleErr(err)

		env := viewer.Desktop
		if ua := lo.Must(cmd.Flags().GetString("user-agent")); ua != "" {
			env = viewer.DetectEnvironment(ua)
		}

		kind := viewer.Select(d, env)

		if lo.Must(cmd.Flags().GetBool("json")) {
			lo.Must0(json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
				"asset":       d,
				"kind":        kind,
				"family":      kind.Family().String(),
				"environment": env,
			}))
			return
		}

		if kind == viewer.Unsupported {
			cmd.Printf("%s %s\n", style.ErrorBadge("unsupported"), d)
			return
		}

		cmd.Printf("%s %s\n", style.Title(kind.String()), d)
		cmd.Printf("%s %s\n", style.Faint("family"), util.Capitalize(kind.Family().String()))
		if kind.Family() == viewer.FamilyMedia {
			cmd.Printf("%s %s\n", style.Faint("native hls"), style.Fg(color.Yellow)(lo.Ternary(env.NativeHLS(), "yes", "no")))
		}
	},
}
