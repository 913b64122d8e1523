package cmd

import (
	"fmt"
	"strings"

	"github.com/grauman/grauman/geometry"
	"github.com/grauman/grauman/key"
	"github.com/grauman/grauman/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(sizeCmd)
	addAssetFlags(sizeCmd.Flags())
	sizeCmd.Flags().StringP("container", "c", "1280x720", "Container border box as WIDTHxHEIGHT")
	sizeCmd.Flags().Float64P("padding", "p", 0, "Container padding on every side")
	sizeCmd.Flags().String("viewport", "1920x1080", "Viewport as WIDTHxHEIGHT, used while fullscreen")
	sizeCmd.Flags().BoolP("fullscreen", "f", false, "Size for fullscreen")
	sizeCmd.Flags().String("upscale", "", "Upscale policy, the player.upscale config when empty")
	lo.Must0(sizeCmd.RegisterFlagCompletionFunc("upscale", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(geometry.UpscaleModes, func(m geometry.UpscaleMode, _ int) string { return string(m) }), cobra.ShellCompDirectiveNoFileComp
	}))
}

func parseSize(s string) (geometry.Size, error) {
	var size geometry.Size
	if _, err := fmt.Sscanf(strings.ToLower(s), "%gx%g", &size.Width, &size.Height); err != nil {
		return size, fmt.Errorf("invalid size %q, expected WIDTHxHEIGHT", s)
	}
	if size.Width < 0 || size.Height < 0 {
		return size, fmt.Errorf("invalid size %q, dimensions must not be negative", s)
	}
	return size, nil
}

var sizeCmd = &cobra.Command{
	Use:     "size url|path",
	Short:   "Compute the size a player would render a file at",
	Example: "  grauman size clip.mp4 --width 3840 --height 2160 -c 800x600 -p 16",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, err := assetFromFlags(cmd, args[0])
		handleErr(err)

		container, err := parseSize(lo.Must(cmd.Flags().GetString("container")))
		handleErr(err)
		viewport, err := parseSize(lo.Must(cmd.Flags().GetString("viewport")))
		handleErr(err)

		raw := lo.Must(cmd.Flags().GetString("upscale"))
		if raw == "" {
			raw = viper.GetString(key.PlayerUpscale)
		}
		mode, err := geometry.ParseUpscaleMode(raw)
		handleErr(err)

		padding := lo.Must(cmd.Flags().GetFloat64("padding"))
		box := geometry.Box{
			Width:   container.Width,
			Height:  container.Height,
			Padding: geometry.Insets{Top: padding, Right: padding, Bottom: padding, Left: padding},
		}

		fullscreen := lo.Must(cmd.Flags().GetBool("fullscreen"))
		natural := geometry.NaturalSize(d)
		bounds := geometry.Bounds(box, viewport, fullscreen)

		cmd.Printf("%s %s\n", style.Faint("natural"), natural)
		cmd.Printf("%s %s\n", style.Faint("bounds "), bounds)
		cmd.Printf("%s %s\n", style.Faint("size   "), style.Bold(geometry.ComputeSize(natural, bounds, fullscreen, mode).String()))
	},
}
