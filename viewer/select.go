package viewer

import (
	"github.com/grauman/grauman/asset"
	"github.com/grauman/grauman/log"
)

// Select maps d to a viewer kind; the first matching rule wins.
//
//  1. audio/video MIME types and m3u8 playlists go to the media family
//  2. images go to the image viewer
//  3. pdf documents go to the document viewer
//  4. everything else is Unsupported
func Select(d *asset.Descriptor, env Environment) Kind {
	if d == nil {
		return Unsupported
	}

	primary := d.PrimaryType()

	switch {
	case primary == "audio" || primary == "video" || d.Extension() == "m3u8":
		return selectMedia(d, env)
	case primary == "image":
		return Image
	case d.Extension() == "pdf":
		return Document
	default:
		return Unsupported
	}
}

func selectMedia(d *asset.Descriptor, env Environment) Kind {
	switch {
	case d.Extension() == "m3u8":
		if env.NativeHLS() {
			return Video
		}
		return HLS
	case d.Is360():
		if d.Stereoscopic() != asset.LayoutNone {
			return Stereoscopic
		}
		return ThreeSixty
	case d.PrimaryType() == "video":
		return Video
	default:
		return Audio
	}
}

// Mountable returns the kind for d and whether anything can show it.
// Unsupported assets are reported as a warning.
func Mountable(d *asset.Descriptor, env Environment) (Kind, bool) {
	kind := Select(d, env)
	if kind != Unsupported {
		return kind, true
	}

	if d == nil {
		log.Warn("no asset to mount")
	} else {
		log.Warnf("no acceptable viewer for %s", d)
	}
	return kind, false
}
