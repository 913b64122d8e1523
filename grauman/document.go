package grauman

import (
	"fmt"
	"sync"

	"github.com/grauman/grauman/asset"
	"github.com/grauman/grauman/event"
	"github.com/grauman/grauman/key"
	"github.com/grauman/grauman/log"
	"github.com/grauman/grauman/viewer"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
)

// Message types sent to the embedded document viewer.
const (
	MessageInitialize = "initialize"
	MessageOpen       = "open"
)

// MessageReady is what the embedded document viewer sends once it can take a document.
const MessageReady = "ready"

// DocumentMessage is posted to the embedded document viewer.
type DocumentMessage struct {
	Type             string `json:"type"`
	URL              string `json:"url"`
	AllowPrinting    bool   `json:"allowPrinting,omitempty"`
	AllowDownloading bool   `json:"allowDownloading,omitempty"`
}

// DocumentFrame is the embedded document viewer.
type DocumentFrame interface {
	// Post sends msg to the frame, restricted to targetOrigin.
	Post(msg DocumentMessage, targetOrigin string) error
	Close() error
}

// DocumentViewer shows PDF documents through an embedded viewer frame.
type DocumentViewer struct {
	observable

	id  string
	log *log.Entry

	env         viewer.Environment
	newFrame    FrameFactory
	origin      string
	printing    bool
	downloading bool

	mu        sync.Mutex
	container Container
	file      *asset.Descriptor
	frame     DocumentFrame
	ready     bool
}

// NewDocumentViewer creates a document viewer in container and loads settings.File, if any.
func NewDocumentViewer(container Container, settings Settings) (*DocumentViewer, error) {
	if container == nil {
		return nil, ErrInvalidContainer
	}

	id, logger := newLogger("document-viewer")
	v := &DocumentViewer{
		id:          id,
		log:         logger,
		env:         settings.env(),
		newFrame:    settings.NewFrame,
		origin:      settings.PageOrigin,
		printing:    settings.PrintingEnabled.OrElse(viper.GetBool(key.DocumentPrinting)),
		downloading: settings.DownloadingEnabled.OrElse(viper.GetBool(key.DocumentDownloading)),
		container:   container,
	}

	if settings.File != nil {
		if err := v.SetFile(settings.File); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (v *DocumentViewer) ID() string {
	return v.id
}

func (v *DocumentViewer) Container() Container {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.container
}

// SetContainer moves the viewer, embedding a new frame for the current file.
func (v *DocumentViewer) SetContainer(container Container) error {
	if container == nil {
		return ErrInvalidContainer
	}

	err := v.Destroy()

	v.mu.Lock()
	v.container = container
	file := v.file
	v.mu.Unlock()

	if file == nil {
		return err
	}
	return multierror.Append(err, v.load()).ErrorOrNil()
}

func (v *DocumentViewer) File() *asset.Descriptor {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.file
}

// SetFile shows d, reusing the embedded frame when one is already up.
func (v *DocumentViewer) SetFile(d *asset.Descriptor) error {
	if d == nil {
		return ErrInvalidFile
	}
	if viewer.Select(d, v.env) != viewer.Document {
		return fmt.Errorf("%w: document viewer cannot show %s", ErrUnsupportedFile, d)
	}

	v.mu.Lock()
	if v.file == d {
		v.mu.Unlock()
		return nil
	}
	v.file = d
	v.mu.Unlock()

	return v.load()
}

func (v *DocumentViewer) load() error {
	v.mu.Lock()
	frame, ready, file := v.frame, v.ready, v.file
	v.mu.Unlock()

	switch {
	case frame == nil:
		return v.embed()
	case ready:
		if err := v.post(frame, DocumentMessage{Type: MessageOpen, URL: file.URL()}); err != nil {
			return err
		}
		v.Notify(event.DocumentOpen, file.URL())
		return nil
	default:
		// the frame will initialize with whatever file is current when it is ready
		v.log.Warnf("asked to change the document before the last one finished rendering, ignoring")
		return nil
	}
}

func (v *DocumentViewer) embed() error {
	if v.newFrame == nil {
		return ErrNoFrameFactory
	}

	frame, err := v.newFrame()
	if err != nil {
		return fmt.Errorf("embed document frame: %w", err)
	}

	v.mu.Lock()
	v.frame = frame
	v.ready = false
	v.mu.Unlock()
	return nil
}

func (v *DocumentViewer) post(frame DocumentFrame, msg DocumentMessage) error {
	if err := frame.Post(msg, v.origin); err != nil {
		return fmt.Errorf("post %s: %w", msg.Type, err)
	}
	return nil
}

// HandleMessage takes a message from a frame. Messages from another origin or
// another frame are ignored.
func (v *DocumentViewer) HandleMessage(origin string, source DocumentFrame, data any) {
	v.mu.Lock()
	frame, file := v.frame, v.file
	v.mu.Unlock()

	if origin != v.origin || frame == nil || source != frame {
		return
	}

	if data != MessageReady {
		v.log.Warnf("unhandled message from document frame: %v", data)
		return
	}

	v.mu.Lock()
	v.ready = true
	v.mu.Unlock()

	if file == nil {
		return
	}

	err := v.post(frame, DocumentMessage{
		Type:             MessageInitialize,
		URL:              file.URL(),
		AllowPrinting:    v.printing,
		AllowDownloading: v.downloading,
	})
	if err != nil {
		v.log.Warnf("%s", err)
		return
	}
	v.Notify(event.DocumentOpen, file.URL())
}

// Ready reports whether the frame accepted its first document.
func (v *DocumentViewer) Ready() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ready
}

func (v *DocumentViewer) PrintingEnabled() bool {
	return v.printing
}

func (v *DocumentViewer) DownloadingEnabled() bool {
	return v.downloading
}

func (v *DocumentViewer) ContainerWidth() int {
	w, _ := containerSize(v.Container())
	return w
}

func (v *DocumentViewer) ContainerHeight() int {
	_, h := containerSize(v.Container())
	return h
}

// Destroy closes the frame.
func (v *DocumentViewer) Destroy() error {
	v.mu.Lock()
	frame := v.frame
	v.frame = nil
	v.ready = false
	v.mu.Unlock()

	if frame == nil {
		return nil
	}
	if err := frame.Close(); err != nil {
		return fmt.Errorf("close document frame: %w", err)
	}
	return nil
}
