// Package asset describes a playable or viewable media item.
package asset

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"path"
	"strings"

	"github.com/h2non/filetype"
)

// ErrInvalid is returned for descriptors that cannot be classified or carry impossible values.
var ErrInvalid = errors.New("invalid asset")

// UnknownDuration defers the duration to the playback engine.
const UnknownDuration = -1

func init() {
	filetype.AddType("jpeg", "image/jpeg")
	filetype.AddType("m3u8", "application/vnd.apple.mpegurl")
}

// Options is the mutable input to New.
type Options struct {
	MimeType     string  `json:"mime_type,omitempty"`
	Extension    string  `json:"extension,omitempty"`
	URL          string  `json:"url"`
	Duration     float64 `json:"duration,omitempty"`
	FPS          float64 `json:"fps,omitempty"`
	Width        int     `json:"width,omitempty"`
	Height       int     `json:"height,omitempty"`
	Poster       string  `json:"poster,omitempty"`
	Waveform     string  `json:"waveform,omitempty"`
	Channels     int     `json:"channels,omitempty"`
	Is360        bool    `json:"is_360,omitempty"`
	Stereoscopic Layout  `json:"stereoscopic,omitempty"`
}

// Descriptor is an immutable asset description.
type Descriptor struct {
	opts Options
}

// New validates and normalizes opts.
// The extension is lower-cased and stripped of its dot, falling back to the URL path.
// A missing MIME type is inferred from the extension.
func New(opts Options) (*Descriptor, error) {
	opts.Extension = normalizeExtension(opts.Extension)
	if opts.Extension == "" {
		opts.Extension = extensionFromURL(opts.URL)
	}

	opts.MimeType = strings.ToLower(strings.TrimSpace(opts.MimeType))
	if opts.MimeType == "" && opts.Extension != "" {
		opts.MimeType = MimeTypeForExtension(opts.Extension)
	}

	if err := validate(&opts); err != nil {
		return nil, err
	}

	return &Descriptor{opts: opts}, nil
}

func validate(opts *Options) error {
	if opts.MimeType == "" && opts.Extension == "" {
		return fmt.Errorf("%w: neither mime type nor extension given", ErrInvalid)
	}

	if opts.MimeType != "" {
		primary, sub, ok := strings.Cut(opts.MimeType, "/")
		if !ok || primary == "" || sub == "" {
			return fmt.Errorf("%w: mime type %q is not of the form type/subtype", ErrInvalid, opts.MimeType)
		}
	}

	switch {
	case math.IsNaN(opts.Duration) || (opts.Duration < 0 && opts.Duration != UnknownDuration):
		return fmt.Errorf("%w: duration %v", ErrInvalid, opts.Duration)
	case math.IsNaN(opts.FPS) || opts.FPS < 0:
		return fmt.Errorf("%w: fps %v", ErrInvalid, opts.FPS)
	case opts.Width < 0 || opts.Height < 0:
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalid, opts.Width, opts.Height)
	case opts.Channels < 0:
		return fmt.Errorf("%w: channels %d", ErrInvalid, opts.Channels)
	}

	if _, ok := layoutNames[opts.Stereoscopic]; !ok {
		return fmt.Errorf("%w: stereoscopic layout %d", ErrInvalid, opts.Stereoscopic)
	}

	return nil
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

func extensionFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}
	return normalizeExtension(path.Ext(p))
}

// MimeTypeForExtension returns the registered MIME type for ext, or an empty string.
func MimeTypeForExtension(ext string) string {
	return filetype.GetType(normalizeExtension(ext)).MIME.Value
}

func (d *Descriptor) MimeType() string { return d.opts.MimeType }
func (d *Descriptor) Extension() string { return d.opts.Extension }
func (d *Descriptor) URL() string { return d.opts.URL }
func (d *Descriptor) Duration() float64 { return d.opts.Duration }
func (d *Descriptor) FPS() float64 { return d.opts.FPS }
func (d *Descriptor) Width() int { return d.opts.Width }
func (d *Descriptor) Height() int { return d.opts.Height }
func (d *Descriptor) Poster() string { return d.opts.Poster }
func (d *Descriptor) Waveform() string { return d.opts.Waveform }
func (d *Descriptor) Channels() int { return d.opts.Channels }
func (d *Descriptor) Is360() bool { return d.opts.Is360 }
func (d *Descriptor) Stereoscopic() Layout { return d.opts.Stereoscopic }
func (d *Descriptor) HasFPS() bool { return d.opts.FPS > 0 }
func (d *Descriptor) HasUnknownDuration() bool { return d.opts.Duration == UnknownDuration }

// PrimaryType is the part of the MIME type before the slash.
func (d *Descriptor) PrimaryType() string {
	primary, _, _ := strings.Cut(d.opts.MimeType, "/")
	return primary
}

// Options returns a copy of the normalized options.
func (d *Descriptor) Options() Options {
	return d.opts
}

func (d *Descriptor) String() string {
	if d.opts.URL != "" {
		return fmt.Sprintf("%s (%s)", d.opts.URL, d.opts.MimeType)
	}
	return fmt.Sprintf("%s asset (%s)", d.opts.Extension, d.opts.MimeType)
}

func (d *Descriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.opts)
}

func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var opts Options
	if err := json.Unmarshal(data, &opts); err != nil {
		return err
	}

	parsed, err := New(opts)
	if err != nil {
		return err
	}

	*d = *parsed
	return nil
}
