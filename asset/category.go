package asset

// Category is the coarse classification of a descriptor.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryImage
	CategoryDocument
	CategoryAudio
	CategoryVideo
	CategoryVideo360
)

func (c Category) String() string {
	switch c {
	case CategoryImage:
		return "image"
	case CategoryDocument:
		return "document"
	case CategoryAudio:
		return "audio"
	case CategoryVideo:
		return "video"
	case CategoryVideo360:
		return "video360"
	default:
		return "unknown"
	}
}

// Category derives the classification from the MIME type, extension and 360° flag.
// Audio and video MIME types win over a coincidental pdf extension.
func (d *Descriptor) Category() Category {
	primary := d.PrimaryType()

	if primary == "audio" || primary == "video" || d.opts.Extension == "m3u8" {
		switch {
		case d.opts.Extension == "m3u8":
			return CategoryVideo
		case d.opts.Is360:
			return CategoryVideo360
		case primary == "audio":
			return CategoryAudio
		default:
			return CategoryVideo
		}
	}

	if primary == "image" {
		return CategoryImage
	}

	if d.opts.Extension == "pdf" {
		return CategoryDocument
	}

	return CategoryUnknown
}
