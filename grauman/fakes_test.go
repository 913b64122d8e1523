package grauman

import (
	"sync"

	"github.com/grauman/grauman/asset"
	"github.com/grauman/grauman/geometry"
	"github.com/grauman/grauman/playback"
	"github.com/grauman/grauman/scrub"
	"github.com/grauman/grauman/viewer"
	"github.com/samber/lo"
)

type fakeContainer struct {
	mu sync.Mutex

	box      geometry.Box
	viewport geometry.Size

	fullscreen []bool
	focused    int

	move    func(scrub.Point)
	release func(scrub.Point)
	stops   int
}

func newContainer(width, height float64) *fakeContainer {
	return &fakeContainer{
		box:      geometry.Box{Width: width, Height: height},
		viewport: geometry.Size{Width: 1920, Height: 1080},
	}
}

func (c *fakeContainer) Box() geometry.Box {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.box
}

func (c *fakeContainer) Viewport() geometry.Size {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

func (c *fakeContainer) resize(width, height float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.box.Width, c.box.Height = width, height
}

func (c *fakeContainer) RequestFullscreen(on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fullscreen = append(c.fullscreen, on)
	return nil
}

func (c *fakeContainer) Focus() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focused++
}

func (c *fakeContainer) Capture(move func(scrub.Point), release func(scrub.Point)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.move, c.release = move, release
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.move, c.release = nil, nil
		c.stops++
	}
}

// drag replays pointer moves through the captured handlers, then releases.
func (c *fakeContainer) drag(points ...scrub.Point) {
	for _, p := range points {
		c.mu.Lock()
		move := c.move
		c.mu.Unlock()
		if move != nil {
			move(p)
		}
	}
}

func (c *fakeContainer) drop() {
	c.mu.Lock()
	release := c.release
	c.mu.Unlock()
	if release != nil {
		release(scrub.Point{})
	}
}

type fakeEngine struct {
	mu sync.Mutex

	kind   viewer.Kind
	source string

	plays, pauses, releases int
	seeks                   []float64
	currentTime             float64
	paused                  bool

	volume float64
	muted  bool
	loop   bool
	rate   float64
}

func (f *fakeEngine) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays++
	return nil
}

func (f *fakeEngine) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses++
	return nil
}

func (f *fakeEngine) Load() error {
	return nil
}

func (f *fakeEngine) SetSource(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.source = url
	return nil
}

func (f *fakeEngine) Seek(seconds float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, seconds)
	f.currentTime = seconds
	return nil
}

func (f *fakeEngine) CurrentTime() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.currentTime
}

func (f *fakeEngine) Duration() float64 {
	return 0
}

func (f *fakeEngine) Paused() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paused
}

func (f *fakeEngine) Buffered() []playback.Range {
	return nil
}

func (f *fakeEngine) Attached() bool {
	return true
}

func (f *fakeEngine) SetVolume(v float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volume = v
}

func (f *fakeEngine) SetMuted(m bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.muted = m
}

func (f *fakeEngine) SetLoop(l bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loop = l
}

func (f *fakeEngine) SetPlaybackRate(r float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rate = r
}

func (f *fakeEngine) Release() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releases++
	return nil
}

// engines hands out fake engines and remembers them in creation order.
type engines struct {
	mu  sync.Mutex
	all []*fakeEngine
	err error
}

func (e *engines) factory(kind viewer.Kind, d *asset.Descriptor) (playback.Engine, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	engine := &fakeEngine{kind: kind, source: d.URL(), paused: true}
	e.all = append(e.all, engine)
	return engine, nil
}

func (e *engines) fail(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = err
}

func (e *engines) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.all)
}

func (e *engines) last() *fakeEngine {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.all[len(e.all)-1]
}

type posted struct {
	msg    DocumentMessage
	origin string
}

type fakeFrame struct {
	mu     sync.Mutex
	posts  []posted
	closed int
}

func (f *fakeFrame) Post(msg DocumentMessage, targetOrigin string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append(f.posts, posted{msg: msg, origin: targetOrigin})
	return nil
}

func (f *fakeFrame) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

type frames struct {
	all []*fakeFrame
}

func (f *frames) factory() (DocumentFrame, error) {
	frame := &fakeFrame{}
	f.all = append(f.all, frame)
	return frame, nil
}

func mustAsset(opts asset.Options) *asset.Descriptor {
	return lo.Must(asset.New(opts))
}

var (
	wideClip  = asset.Options{MimeType: "video/mp4", URL: "https://cdn.example/wide.mp4", Duration: 120, FPS: 25, Width: 1920, Height: 1080}
	smallClip = asset.Options{MimeType: "video/mp4", URL: "https://cdn.example/small.mp4", Duration: 60, Width: 640, Height: 360}
	song      = asset.Options{MimeType: "audio/mpeg", URL: "https://cdn.example/song.mp3", Duration: 200}
	photo     = asset.Options{MimeType: "image/png", URL: "https://cdn.example/photo.png", Width: 1600, Height: 1200}
	sketch    = asset.Options{MimeType: "image/png", URL: "https://cdn.example/sketch.png", Width: 400, Height: 300}
	report    = asset.Options{MimeType: "application/pdf", URL: "https://cdn.example/report.pdf"}
	appendix  = asset.Options{MimeType: "application/pdf", URL: "https://cdn.example/appendix.pdf"}
	archive   = asset.Options{MimeType: "application/zip", URL: "https://cdn.example/bundle.zip"}
)
