// Package viewer decides which presentation strategy mounts a given asset.
package viewer

// Kind is the closed set of viewer implementations.
type Kind int

const (
	Unsupported Kind = iota
	Image
	Document
	Audio
	Video
	HLS
	ThreeSixty
	Stereoscopic
)

var kindNames = map[Kind]string{
	Unsupported:  "unsupported",
	Image:        "image",
	Document:     "document",
	Audio:        "audio",
	Video:        "video",
	HLS:          "hls",
	ThreeSixty:   "360",
	Stereoscopic: "vr",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unsupported"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Family groups kinds served by the same host facade.
type Family int

const (
	FamilyNone Family = iota
	FamilyImage
	FamilyDocument
	FamilyMedia
)

func (f Family) String() string {
	switch f {
	case FamilyImage:
		return "image viewer"
	case FamilyDocument:
		return "document viewer"
	case FamilyMedia:
		return "media player"
	default:
		return "none"
	}
}

func (k Kind) Family() Family {
	switch k {
	case Image:
		return FamilyImage
	case Document:
		return FamilyDocument
	case Audio, Video, HLS, ThreeSixty, Stereoscopic:
		return FamilyMedia
	default:
		return FamilyNone
	}
}

// IsMedia reports whether the kind is driven by a playback state machine.
func (k Kind) IsMedia() bool {
	return k.Family() == FamilyMedia
}

// Immersive reports whether the kind renders a 360° scene.
func (k Kind) Immersive() bool {
	return k == ThreeSixty || k == Stereoscopic
}
