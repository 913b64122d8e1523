package grauman

import (
	"fmt"
	"sync"

	"github.com/grauman/grauman/asset"
	"github.com/grauman/grauman/event"
	"github.com/grauman/grauman/log"
	"github.com/grauman/grauman/viewer"
	"github.com/hashicorp/go-multierror"
)

// Viewer is what every facade mounted by Grauman offers.
type Viewer interface {
	File() *asset.Descriptor
	SetFile(d *asset.Descriptor) error
	SetContainer(container Container) error
	On(name string, fn event.Handler) (event.ListenerID, error)
	Off(name string, ids ...event.ListenerID)
	SetEventBubbleTarget(target event.Notifier) error
	Destroy() error
}

var (
	_ Viewer = (*MediaPlayer)(nil)
	_ Viewer = (*ImageViewer)(nil)
	_ Viewer = (*DocumentViewer)(nil)
)

// Grauman picks the right viewer for each file and forwards its events.
type Grauman struct {
	observable

	id  string
	log *log.Entry

	settings Settings

	// load serialises mounting.
	load sync.Mutex

	mu        sync.Mutex
	container Container
	file      *asset.Descriptor
	kind      viewer.Kind
	viewer    Viewer
}

// New creates a Grauman in container and shows settings.File, if any.
func New(container Container, settings Settings) (*Grauman, error) {
	if container == nil {
		return nil, ErrInvalidContainer
	}

	id, logger := newLogger("grauman")
	g := &Grauman{
		id:        id,
		log:       logger,
		container: container,
	}

	file := settings.File
	settings.File = nil
	g.settings = settings

	if file != nil {
		if err := g.SetFile(file); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Grauman) ID() string {
	return g.id
}

func (g *Grauman) File() *asset.Descriptor {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.file
}

// Kind is the kind of the mounted viewer, Unsupported when nothing is mounted.
func (g *Grauman) Kind() viewer.Kind {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.kind
}

// Viewer is the mounted facade, or nil.
func (g *Grauman) Viewer() Viewer {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.viewer
}

// MediaPlayer returns the mounted player when the file is audio or video.
func (g *Grauman) MediaPlayer() (*MediaPlayer, bool) {
	p, ok := g.Viewer().(*MediaPlayer)
	return p, ok
}

func (g *Grauman) ImageViewer() (*ImageViewer, bool) {
	v, ok := g.Viewer().(*ImageViewer)
	return v, ok
}

func (g *Grauman) DocumentViewer() (*DocumentViewer, bool) {
	v, ok := g.Viewer().(*DocumentViewer)
	return v, ok
}

// SetFile shows d. A viewer of the same family is reused, any other one is
// destroyed first. Files nothing can show are logged and leave nothing mounted.
func (g *Grauman) SetFile(d *asset.Descriptor) error {
	if d == nil {
		return ErrInvalidFile
	}

	g.load.Lock()
	defer g.load.Unlock()

	g.mu.Lock()
	if g.file == d {
		g.mu.Unlock()
		return nil
	}
	g.file = d
	current := g.viewer
	family := g.kind.Family()
	g.mu.Unlock()

	kind, ok := viewer.Mountable(d, g.settings.env())
	if current != nil && ok && kind.Family() == family {
		if err := current.SetFile(d); err != nil {
			return err
		}
		g.mu.Lock()
		g.kind = kind
		g.mu.Unlock()
		return nil
	}

	err := g.unmount()
	if !ok {
		return err
	}
	return multierror.Append(err, g.mount(kind, d)).ErrorOrNil()
}

// SetContainer moves the mounted viewer to container.
func (g *Grauman) SetContainer(container Container) error {
	if container == nil {
		return ErrInvalidContainer
	}

	g.load.Lock()
	defer g.load.Unlock()

	err := g.unmount()

	g.mu.Lock()
	g.container = container
	file := g.file
	g.mu.Unlock()

	if file == nil {
		return err
	}
	kind, ok := viewer.Mountable(file, g.settings.env())
	if !ok {
		return err
	}
	return multierror.Append(err, g.mount(kind, file)).ErrorOrNil()
}

// mount creates the facade for kind. Callers hold g.load.
func (g *Grauman) mount(kind viewer.Kind, d *asset.Descriptor) error {
	g.mu.Lock()
	container := g.container
	g.mu.Unlock()

	var (
		v   Viewer
		err error
	)

	switch kind.Family() {
	case viewer.FamilyMedia:
		v, err = NewMediaPlayer(container, g.settings)
	case viewer.FamilyImage:
		v, err = NewImageViewer(container, g.settings)
	case viewer.FamilyDocument:
		v, err = NewDocumentViewer(container, g.settings)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, d)
	}
	if err != nil {
		return err
	}

	if err := v.SetEventBubbleTarget(g); err != nil {
		return multierror.Append(err, v.Destroy()).ErrorOrNil()
	}
	if err := v.SetFile(d); err != nil {
		return multierror.Append(err, v.Destroy()).ErrorOrNil()
	}

	g.mu.Lock()
	g.viewer = v
	g.kind = kind
	g.mu.Unlock()

	g.log.Debugf("mounted %s for %s", kind.Family(), d.URL())
	return nil
}

// unmount destroys the mounted facade. Callers hold g.load.
func (g *Grauman) unmount() error {
	g.mu.Lock()
	v := g.viewer
	g.viewer = nil
	g.kind = viewer.Unsupported
	g.mu.Unlock()

	if v == nil {
		return nil
	}
	return v.Destroy()
}

// Destroy tears down the mounted viewer. It is safe to call more than once.
func (g *Grauman) Destroy() error {
	g.load.Lock()
	defer g.load.Unlock()

	return g.unmount()
}
