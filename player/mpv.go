package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/grauman/grauman/constant"
	"github.com/grauman/grauman/log"
	"github.com/grauman/grauman/playback"
	"github.com/samber/lo"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

// MPV is a playback engine backed by an mpv process.
// Settings applied before Start become command line options.
type MPV struct {
	opts Options
	log  *log.Entry

	// ipc serializes socket commands
	ipc sync.Mutex

	mu         sync.Mutex
	source     string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	running    bool
	released   bool

	volume float64
	muted  bool
	loop   bool
	speed  float64

	translator *translator
	listener   *listener
}

// New prepares an engine for source. Nothing runs until Start.
func New(source string, opts Options) (*MPV, error) {
	safe, err := sanitizeMediaTarget(source)
	if err != nil {
		return nil, fmt.Errorf("invalid media target: %w", err)
	}

	if opts.Binary == "" {
		opts.Binary = "mpv"
	}

	return &MPV{
		opts:       opts,
		log:        log.With(log.Fields{"component": "mpv"}),
		source:     safe,
		exited:     make(chan struct{}),
		volume:     constant.DefaultVolume,
		speed:      constant.DefaultPlaybackSpeed,
		translator: newTranslator(),
	}, nil
}

// arguments builds the mpv command line. The user's mpv.conf stays in charge
// of rendering options.
func (m *MPV) arguments() []string {
	title := sanitizeTitle(m.opts.Title)

	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--input-ipc-server=" + m.socketPath,
		"--idle=yes",
		"--pause=yes",
		"--keep-open=yes",
		"--volume=" + strconv.FormatFloat(m.volume*100, 'f', -1, 64),
		"--mute=" + yesNo(m.muted),
		"--loop-file=" + lo.Ternary(m.loop, "inf", "no"),
		"--speed=" + strconv.FormatFloat(m.speed, 'f', -1, 64),
	}

	if title != "" {
		args = append(args, "--force-media-title="+title, "--title="+title)
	}
	if m.opts.Window {
		args = append(args, "--force-window=yes")
	}
	if m.opts.StartAt > 0 {
		args = append(args, "--start="+strconv.FormatFloat(m.opts.StartAt, 'f', -1, 64))
	}
	if headers := headerFields(m.opts.Headers); headers != "" {
		args = append(args, "--http-header-fields="+headers)
	}

	// end of options, the source can never be read as a flag
	return append(args, "--", m.source)
}

func headerFields(headers map[string]string) string {
	fields := make([]string, 0, len(headers))
	for k, v := range headers {
		fields = append(fields, fmt.Sprintf("%s: %s", k, strings.ReplaceAll(v, ",", "%2C")))
	}
	sort.Strings(fields)
	return strings.Join(fields, ",")
}

func yesNo(b bool) string {
	return lo.Ternary(b, "yes", "no")
}

// Start launches mpv paused on the source and streams its events to sink.
func (m *MPV) Start(sink Sink) error {
	if sink == nil {
		return ErrNoSink
	}

	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return nil
	}
	if m.socketPath == "" {
		random := make([]byte, 4)
		if _, err := rand.Read(random); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.sock", constant.Grauman, random))
	}

	cmd := exec.Command(m.opts.Binary, m.arguments()...)
	cmd.SysProcAttr = sysProcAttr()
	if err := cmd.Start(); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("start mpv: %w", err)
	}

	exited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()
	m.cmd, m.exited, m.released = cmd, exited, false
	m.listener = &listener{
		socketPath: m.socketPath,
		translator: m.translator,
		sink:       sink,
		log:        m.log,
	}
	m.mu.Unlock()

	if err := m.waitForSocket(exited); err != nil {
		select {
		case <-exited:
		default:
			m.log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	if err := m.listener.start(); err != nil {
		_ = killProcess(cmd)
		return err
	}

	m.mu.Lock()
	m.running = true
	m.mu.Unlock()

	m.log.Infof("mpv %d playing %s", cmd.Process.Pid, m.source)
	return nil
}

// Wait returns a channel closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exited
}

func (m *MPV) waitForSocket(exited <-chan struct{}) error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		if conn, err := net.Dial("unix", m.socketPath); err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *MPV) isRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *MPV) set(property string, value any) error {
	if !m.isRunning() {
		return ErrNotRunning
	}
	_, err := m.sendCommand("set_property", property, value)
	return err
}

// setLogged is for the setters the engine interface gives no error return.
func (m *MPV) setLogged(property string, value any) {
	if !m.isRunning() {
		return
	}
	if err := m.set(property, value); err != nil {
		m.log.Warnf("set %s: %s", property, err)
	}
}

func (m *MPV) Play() error {
	return m.set("pause", false)
}

func (m *MPV) Pause() error {
	return m.set("pause", true)
}

// Load restarts the current source.
func (m *MPV) Load() error {
	m.mu.Lock()
	source := m.source
	m.mu.Unlock()

	if !m.isRunning() {
		return ErrNotRunning
	}
	_, err := m.sendCommand("loadfile", source, "replace")
	return err
}

// SetSource replaces the source, loading it right away when mpv runs.
func (m *MPV) SetSource(source string) error {
	safe, err := sanitizeMediaTarget(source)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	m.mu.Lock()
	m.source = safe
	m.mu.Unlock()

	if !m.isRunning() {
		return nil
	}
	return m.Load()
}

func (m *MPV) Seek(seconds float64) error {
	if !m.isRunning() {
		return ErrNotRunning
	}
	if _, err := m.sendCommand("seek", seconds, "absolute"); err != nil {
		return err
	}
	m.translator.seekTo(seconds)
	return nil
}

func (m *MPV) CurrentTime() float64 {
	return m.translator.currentTime()
}

func (m *MPV) Duration() float64 {
	return m.translator.totalDuration()
}

func (m *MPV) Paused() bool {
	return m.translator.isPaused()
}

func (m *MPV) Buffered() []playback.Range {
	return m.translator.buffered()
}

func (m *MPV) SetVolume(volume float64) {
	m.mu.Lock()
	m.volume = volume
	m.mu.Unlock()
	m.setLogged("volume", volume*100)
}

func (m *MPV) SetMuted(muted bool) {
	m.mu.Lock()
	m.muted = muted
	m.mu.Unlock()
	m.setLogged("mute", muted)
}

func (m *MPV) SetLoop(loop bool) {
	m.mu.Lock()
	m.loop = loop
	m.mu.Unlock()
	m.setLogged("loop-file", lo.Ternary(loop, "inf", "no"))
}

func (m *MPV) SetPlaybackRate(rate float64) {
	m.mu.Lock()
	m.speed = rate
	m.mu.Unlock()
	m.setLogged("speed", rate)
}

// Attached reports whether mpv is still running.
func (m *MPV) Attached() bool {
	m.mu.Lock()
	running, exited := m.running, m.exited
	m.mu.Unlock()

	if !running {
		return false
	}
	select {
	case <-exited:
		return false
	default:
		return true
	}
}

// Release quits mpv, killing it when it does not exit in time. It is idempotent.
func (m *MPV) Release() error {
	m.mu.Lock()
	if m.released || m.cmd == nil {
		m.released = true
		m.mu.Unlock()
		return nil
	}
	m.released = true
	cmd, exited, listener, socketPath := m.cmd, m.exited, m.listener, m.socketPath
	m.mu.Unlock()

	listener.close()
	_, _ = m.sendCommand("quit")

	m.mu.Lock()
	m.running = false
	m.mu.Unlock()

	select {
	case <-exited:
	case <-time.After(quitTimeout):
		_ = killProcess(cmd)
	}

	_ = os.Remove(socketPath)
	return nil
}

// sanitizeMediaTarget accepts http(s) URLs and local paths, never anything
// mpv could read as an option.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "file":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}

// SetFullscreen toggles fullscreen of the mpv window.
func (m *MPV) SetFullscreen(on bool) error {
	return m.set("fullscreen", on)
}
