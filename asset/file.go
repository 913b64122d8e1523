package asset

import (
	"io"
	"path/filepath"

	"github.com/grauman/grauman/filesystem"
	"github.com/h2non/filetype"
)

// headerSize covers every signature filetype matches on.
const headerSize = 261

// FromFile describes a local file. When opts carries neither a MIME type nor a
// known extension, the type is sniffed from the file header.
func FromFile(path string, opts Options) (*Descriptor, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if opts.URL == "" {
		opts.URL = "file://" + filepath.ToSlash(abs)
	}

	if opts.MimeType == "" {
		ext := normalizeExtension(opts.Extension)
		if ext == "" {
			ext = normalizeExtension(filepath.Ext(path))
		}
		if MimeTypeForExtension(ext) == "" {
			sniffed, err := sniff(abs)
			if err != nil {
				return nil, err
			}
			opts.MimeType = sniffed
		}
	}

	return New(opts)
}

func sniff(path string) (string, error) {
	f, err := filesystem.API().Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return "", nil
	}
	return kind.MIME.Value, nil
}
