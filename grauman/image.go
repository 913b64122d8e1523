package grauman

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/grauman/grauman/asset"
	"github.com/grauman/grauman/clock"
	"github.com/grauman/grauman/constant"
	"github.com/grauman/grauman/event"
	"github.com/grauman/grauman/geometry"
	"github.com/grauman/grauman/log"
	"github.com/grauman/grauman/preference"
	"github.com/grauman/grauman/scrub"
	"github.com/grauman/grauman/viewer"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ViewMode is how an image fills the viewer.
type ViewMode string

const (
	// ViewFit shrinks the image into the viewport.
	ViewFit ViewMode = "FIT"
	// ViewFill shows the image at its actual size and lets it be dragged around.
	ViewFill ViewMode = "FILL"
)

var ViewModes = []ViewMode{ViewFit, ViewFill}

func ParseViewMode(s string) (ViewMode, error) {
	mode := ViewMode(strings.ToUpper(strings.TrimSpace(s)))
	if !lo.Contains(ViewModes, mode) {
		return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, s)
	}
	return mode, nil
}

func (m ViewMode) Valid() bool {
	return lo.Contains(ViewModes, m)
}

// ImageState is what an image view should present.
type ImageState struct {
	URL            string      `json:"url"`
	ViewMode       ViewMode    `json:"view_mode"`
	Loading        bool        `json:"loading"`
	Draggable      bool        `json:"draggable"`
	Dragging       bool        `json:"dragging"`
	Fullscreen     bool        `json:"fullscreen"`
	ControlsHidden bool        `json:"controls_hidden"`
	Position       scrub.Point `json:"position"`
	// PanX and PanY tell whether Position applies on that axis. Other axes are centered.
	PanX bool `json:"pan_x"`
	PanY bool `json:"pan_y"`
	// Contain scales the image down to the viewport.
	Contain bool `json:"contain"`
}

// ImageViewer shows still images, fitted or at actual size.
type ImageViewer struct {
	observable

	id    string
	log   *log.Entry
	env   viewer.Environment
	clock clock.Clock
	store *preference.Store

	mu        sync.Mutex
	container Container
	file      *asset.Descriptor
	mounted   bool

	viewMode   ViewMode
	fullscreen bool

	// decoded is the natural size reported once the host decoded the image.
	decoded   geometry.Size
	loading   bool
	viewport  geometry.Size
	position  scrub.Point
	last      scrub.Point
	draggable bool
	dragging  bool
	stopDrag  func()

	controlsHidden bool
	controlsLocked bool
	hide           *clock.Debouncer
}

// NewImageViewer creates an image viewer in container and loads settings.File, if any.
func NewImageViewer(container Container, settings Settings) (*ImageViewer, error) {
	if container == nil {
		return nil, ErrInvalidContainer
	}

	id, logger := newLogger("image-viewer")
	v := &ImageViewer{
		id:        id,
		log:       logger,
		env:       settings.env(),
		clock:     settings.clock(),
		store:     settings.store(),
		container: container,
	}
	v.viewMode = preferred(v.log, v.store, preference.ViewMode, mo.None[ViewMode](), ViewMode.Valid, ViewFit)
	v.hide = clock.NewDebouncer(v.clock, constant.ControlsHideDelay, v.hideControls)

	if settings.File != nil {
		if err := v.SetFile(settings.File); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (v *ImageViewer) ID() string {
	return v.id
}

func (v *ImageViewer) Container() Container {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.container
}

// SetContainer moves the viewer, reloading the current file.
func (v *ImageViewer) SetContainer(container Container) error {
	if container == nil {
		return ErrInvalidContainer
	}

	_ = v.Destroy()

	v.mu.Lock()
	v.container = container
	file := v.file
	v.mu.Unlock()

	if file != nil {
		v.load(file)
	}
	return nil
}

func (v *ImageViewer) File() *asset.Descriptor {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.file
}

// SetFile loads an image.
func (v *ImageViewer) SetFile(d *asset.Descriptor) error {
	if d == nil {
		return ErrInvalidFile
	}
	if viewer.Select(d, v.env) != viewer.Image {
		return fmt.Errorf("%w: image viewer cannot show %s", ErrUnsupportedFile, d)
	}

	v.mu.Lock()
	same := v.file == d
	v.file = d
	v.mu.Unlock()

	if !same {
		v.load(d)
	}
	return nil
}

// load starts showing d. The host decodes the image and reports it through ImageDecoded.
func (v *ImageViewer) load(d *asset.Descriptor) {
	v.mu.Lock()
	v.mounted = true
	v.loading = true
	v.decoded = geometry.Size{}
	v.viewport = geometry.Bounds(v.container.Box(), v.container.Viewport(), v.fullscreen)
	v.mu.Unlock()

	v.log.Debugf("loading image %s", d.URL())
	v.hide.Trigger()
	v.Notify(event.LoadStart, d.URL())
}

// ImageDecoded reports that url finished decoding at its natural size. Reports
// for a file no longer shown, or after Destroy, are ignored.
func (v *ImageViewer) ImageDecoded(url string, natural geometry.Size) {
	v.mu.Lock()
	if !v.mounted || v.file == nil || v.file.URL() != url {
		v.mu.Unlock()
		v.log.Debugf("ignoring stale decode of %s", url)
		return
	}

	v.loading = false
	v.decoded = natural
	// centre the image in the viewport
	v.position = scrub.Point{
		X: -(natural.Width/2 - v.viewport.Width/2),
		Y: -(natural.Height/2 - v.viewport.Height/2),
	}
	v.last = v.position
	v.resizeLocked(v.viewport)
	v.mu.Unlock()

	v.Notify(event.LoadedData, url)
}

// Resize re-reads the container and keeps a panned image against its edges.
func (v *ImageViewer) Resize() {
	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return
	}
	viewport := geometry.Bounds(v.container.Box(), v.container.Viewport(), v.fullscreen)
	v.resizeLocked(viewport)
	v.mu.Unlock()

	v.Notify(event.Resize, viewport)
}

func (v *ImageViewer) resizeLocked(viewport geometry.Size) {
	img := v.decoded

	if v.viewMode == ViewFill && v.draggable {
		// a viewport grown past the image's far edge would show a gutter
		if gutter := viewport.Width - (img.Width - math.Abs(v.position.X)); viewport.Width < img.Width && gutter > 0 {
			v.position.X += gutter
		}
		if gutter := viewport.Height - (img.Height - math.Abs(v.position.Y)); viewport.Height < img.Height && gutter > 0 {
			v.position.Y += gutter
		}
	}

	v.viewport = viewport
	v.draggable = viewport.Width < img.Width || viewport.Height < img.Height
}

// PointerDown starts dragging a FILL image that is larger than the viewport.
func (v *ImageViewer) PointerDown(p scrub.Point) {
	v.mu.Lock()
	if !v.mounted || v.viewMode != ViewFill || !v.draggable || v.dragging {
		v.mu.Unlock()
		return
	}
	v.dragging = true
	v.last = p
	container := v.container
	v.mu.Unlock()

	stop := capturer(container).Capture(v.drag, func(scrub.Point) { v.endDrag() })

	v.mu.Lock()
	if !v.dragging {
		// released before the capture was installed
		v.mu.Unlock()
		stop()
		return
	}
	v.stopDrag = stop
	v.mu.Unlock()
}

func (v *ImageViewer) drag(p scrub.Point) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.dragging || v.viewMode != ViewFill || !v.draggable {
		return
	}

	img, vp := v.decoded, v.viewport
	x := v.position.X - (v.last.X - p.X)
	y := v.position.Y - (v.last.Y - p.Y)

	if vp.Width < img.Width {
		if gutter := vp.Width - (img.Width - math.Abs(x)); x > 0 {
			x = 0
		} else if gutter > 0 {
			x += gutter
		}
	}
	if vp.Height < img.Height {
		if gutter := vp.Height - (img.Height - math.Abs(y)); y > 0 {
			y = 0
		} else if gutter > 0 {
			y += gutter
		}
	}

	v.last = p
	v.position = scrub.Point{X: x, Y: y}
}

func (v *ImageViewer) endDrag() {
	v.mu.Lock()
	stop := v.stopDrag
	v.stopDrag = nil
	v.dragging = false
	v.last = scrub.Point{}
	v.mu.Unlock()

	if stop != nil {
		stop()
	}
}

// PointerEnter shows the controls.
func (v *ImageViewer) PointerEnter() {
	v.mu.Lock()
	v.controlsHidden = false
	v.mu.Unlock()
}

// PointerMove shows hidden controls, otherwise restarts the fade delay.
func (v *ImageViewer) PointerMove() {
	v.mu.Lock()
	hidden := v.controlsHidden
	v.controlsHidden = false
	v.mu.Unlock()

	if !hidden {
		v.hide.Trigger()
	}
}

// PointerLeave hides the controls unless the pointer rests on them.
func (v *ImageViewer) PointerLeave() {
	v.hideControls()
}

// HoverControls keeps the controls visible while the pointer is over them.
func (v *ImageViewer) HoverControls(hovering bool) {
	v.mu.Lock()
	v.controlsLocked = hovering
	v.mu.Unlock()
}

func (v *ImageViewer) hideControls() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.mounted && !v.controlsLocked {
		v.controlsHidden = true
	}
}

func (v *ImageViewer) ViewMode() ViewMode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewMode
}

// SetViewMode switches between FIT and FILL and remembers the choice.
func (v *ImageViewer) SetViewMode(mode ViewMode) error {
	if !mode.Valid() {
		return fmt.Errorf("view mode %q: %w", mode, ErrInvalidViewMode)
	}

	v.mu.Lock()
	if v.viewMode == mode {
		v.mu.Unlock()
		return nil
	}
	v.viewMode = mode
	v.mu.Unlock()

	v.store.Set(preference.ViewMode, mode)
	v.Notify(event.ViewMode, mode)
	return nil
}

func (v *ImageViewer) IsFullscreenEnabled() bool {
	return v.env.FullscreenSupported
}

func (v *ImageViewer) Fullscreen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.fullscreen
}

// SetFullscreen asks the container to enter or leave fullscreen.
func (v *ImageViewer) SetFullscreen(on bool) error {
	if !v.env.FullscreenSupported {
		return ErrFullscreenUnsupported
	}
	if on == v.Fullscreen() {
		return nil
	}
	if err := requestFullscreen(v.Container(), on); err != nil {
		return fmt.Errorf("request fullscreen: %w", err)
	}
	v.FullscreenChanged(on)
	return nil
}

// FullscreenChanged records a fullscreen change reported by the host.
func (v *ImageViewer) FullscreenChanged(on bool) {
	v.mu.Lock()
	if v.fullscreen == on {
		v.mu.Unlock()
		return
	}
	v.fullscreen = on
	v.mu.Unlock()

	v.Resize()
	v.Notify(event.Fullscreen, on)
}

// State is a snapshot of what to present.
func (v *ImageViewer) State() ImageState {
	v.mu.Lock()
	defer v.mu.Unlock()

	st := ImageState{
		ViewMode:       v.viewMode,
		Loading:        v.loading,
		Draggable:      v.draggable,
		Dragging:       v.dragging,
		Fullscreen:     v.fullscreen,
		ControlsHidden: v.controlsHidden,
		Position:       v.position,
	}
	if v.file != nil {
		st.URL = v.file.URL()
	}

	switch {
	case v.viewMode == ViewFill && v.draggable:
		st.PanX = v.viewport.Width < v.decoded.Width
		st.PanY = v.viewport.Height < v.decoded.Height
	case v.draggable:
		st.Contain = true
	}
	return st
}

// Width is the viewport width the image is shown in.
func (v *ImageViewer) Width() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return int(v.viewport.Width)
}

func (v *ImageViewer) Height() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return int(v.viewport.Height)
}

func (v *ImageViewer) ContainerWidth() int {
	w, _ := containerSize(v.Container())
	return w
}

func (v *ImageViewer) ContainerHeight() int {
	_, h := containerSize(v.Container())
	return h
}

// Destroy unmounts the image, releasing a drag in progress and the fade timer.
func (v *ImageViewer) Destroy() error {
	v.hide.Cancel()

	v.mu.Lock()
	stop := v.stopDrag
	v.stopDrag = nil
	v.mounted = false
	v.dragging = false
	v.loading = false
	v.controlsHidden = false
	v.mu.Unlock()

	if stop != nil {
		stop()
	}
	return nil
}
