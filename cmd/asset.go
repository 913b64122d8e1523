package cmd

import (
	"net/url"

	"github.com/grauman/grauman/asset"
	"github.com/grauman/grauman/filesystem"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// addAssetFlags registers the descriptor fields that cannot be derived from the target.
func addAssetFlags(flags *pflag.FlagSet) {
	flags.StringP("mime", "m", "", "MIME type, derived from the extension when empty")
	flags.StringP("ext", "e", "", "File extension, taken from the target when empty")
	flags.Float64P("duration", "d", 0, "Duration in seconds, -1 when unknown")
	flags.Float64("fps", 0, "Frame rate")
	flags.Int("width", 0, "Natural width in pixels")
	flags.Int("height", 0, "Natural height in pixels")
	flags.Int("channels", 0, "Audio channel count")
	flags.String("waveform", "", "Waveform image URL")
	flags.String("poster", "", "Poster image URL")
	flags.Bool("360", false, "Equirectangular 360° video")
	flags.String("stereo", "", "Stereoscopic layout of a 360° video: NONE, TOP_BOTTOM, LEFT_RIGHT")
}

// assetFromFlags describes target, a URL or a local path.
func assetFromFlags(cmd *cobra.Command, target string) (*asset.Descriptor, error) {
	flags := cmd.Flags()

	layout, err := asset.ParseLayout(lo.Must(flags.GetString("stereo")))
	if err != nil {
		return nil, err
	}

	opts := asset.Options{
		MimeType:     lo.Must(flags.GetString("mime")),
		Extension:    lo.Must(flags.GetString("ext")),
		Duration:     lo.Must(flags.GetFloat64("duration")),
		FPS:          lo.Must(flags.GetFloat64("fps")),
		Width:        lo.Must(flags.GetInt("width")),
		Height:       lo.Must(flags.GetInt("height")),
		Channels:     lo.Must(flags.GetInt("channels")),
		Waveform:     lo.Must(flags.GetString("waveform")),
		Poster:       lo.Must(flags.GetString("poster")),
		Is360:        lo.Must(flags.GetBool("360")),
		Stereoscopic: layout,
	}

	if isLocal(target) {
		return asset.FromFile(target, opts)
	}

	opts.URL = target
	return asset.New(opts)
}

func isLocal(target string) bool {
	if u, err := url.Parse(target); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return false
	}
	exists, _ := filesystem.API().Exists(target)
	return exists
}
