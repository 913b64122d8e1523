package player

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/grauman/grauman/event"
	"github.com/grauman/grauman/log"
	"github.com/grauman/grauman/playback"
)

// observed lists the properties mpv reports changes of, keyed by observer id.
var observed = []string{
	"time-pos",
	"duration",
	"pause",
	"seeking",
	"eof-reached",
	"demuxer-cache-time",
	"paused-for-cache",
}

// message is one line of mpv's event stream.
type message struct {
	Event     string `json:"event"`
	Name      string `json:"name"`
	Data      any    `json:"data"`
	Reason    string `json:"reason"`
	FileError string `json:"file_error"`
}

// translator turns mpv messages into media lifecycle events and caches the
// values the engine getters report.
type translator struct {
	mu sync.Mutex

	time     float64
	duration float64
	cached   float64
	paused   bool
	seeking  bool
	ended    bool
	stalled  bool
}

func newTranslator() *translator {
	// mpv is started paused, the machine decides when to play
	return &translator{paused: true}
}

type emitted struct {
	name    string
	payload any
}

func emit(name string) emitted {
	return emitted{name: name}
}

func (t *translator) translate(msg message) []emitted {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch msg.Event {
	case "start-file":
		t.time, t.duration, t.cached = 0, 0, 0
		t.ended, t.seeking, t.stalled = false, false, false
		return []emitted{emit(event.LoadStart)}
	case "file-loaded":
		return []emitted{emit(event.LoadedMetadata), emit(event.CanPlayThrough)}
	case "end-file":
		if msg.Reason == "error" {
			return []emitted{{name: event.Error, payload: msg.FileError}}
		}
		return nil
	case "property-change":
		return t.property(msg.Name, msg.Data)
	}
	return nil
}

func (t *translator) property(name string, data any) []emitted {
	switch name {
	case "time-pos":
		if v, ok := data.(float64); ok {
			t.time = v
			return []emitted{emit(event.TimeUpdate)}
		}
	case "duration":
		if v, ok := data.(float64); ok && v > 0 && v != t.duration {
			t.duration = v
			return []emitted{emit(event.LoadedMetadata)}
		}
	case "demuxer-cache-time":
		if v, ok := data.(float64); ok {
			t.cached = v
			return []emitted{emit(event.Progress)}
		}
	case "pause":
		paused, ok := data.(bool)
		if !ok || paused == t.paused {
			return nil
		}
		t.paused = paused
		if paused {
			return []emitted{emit(event.Pause)}
		}
		return []emitted{emit(event.Play), emit(event.Playing)}
	case "seeking":
		seeking, _ := data.(bool)
		if seeking == t.seeking {
			return nil
		}
		t.seeking = seeking
		if seeking {
			return []emitted{emit(event.Seeking)}
		}
		return []emitted{emit(event.Seeked)}
	case "eof-reached":
		ended, _ := data.(bool)
		if ended == t.ended {
			return nil
		}
		t.ended = ended
		if ended {
			return []emitted{emit(event.Ended)}
		}
	case "paused-for-cache":
		stalled, _ := data.(bool)
		if stalled == t.stalled {
			return nil
		}
		t.stalled = stalled
		if stalled {
			return []emitted{emit(event.Waiting)}
		}
		if !t.paused {
			return []emitted{emit(event.Playing)}
		}
	}
	return nil
}

func (t *translator) seekTo(seconds float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.time = seconds
}

func (t *translator) currentTime() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.time
}

func (t *translator) totalDuration() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.duration
}

func (t *translator) isPaused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paused
}

func (t *translator) buffered() []playback.Range {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cached <= 0 {
		return nil
	}
	return []playback.Range{{Start: t.time, End: t.time + t.cached}}
}

// listener reads mpv's event stream over a dedicated connection.
type listener struct {
	socketPath string
	translator *translator
	sink       Sink
	log        *log.Entry

	mu        sync.Mutex
	conn      net.Conn
	stop      chan struct{}
	listening bool
}

func (l *listener) start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.listening {
		return nil
	}

	conn, err := net.Dial("unix", l.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	// observers are bound to the connection that registered them
	for id, name := range observed {
		if err := writeCommand(conn, []any{"observe_property", id + 1, name}); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	l.conn = conn
	l.stop = make(chan struct{})
	l.listening = true
	go l.readLoop(conn, l.stop)

	l.log.Debugf("observing %v on %s", observed, l.socketPath)
	return nil
}

func (l *listener) close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.listening {
		return
	}
	close(l.stop)
	_ = l.conn.Close()
	l.listening = false
}

func (l *listener) readLoop(conn net.Conn, stop <-chan struct{}) {
	buf := make([]byte, readBufSize)
	var pending []byte

	for {
		select {
		case <-stop:
			return
		default:
		}

		if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
			return
		}

		n, err := conn.Read(buf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			select {
			case <-stop:
			default:
				l.log.Warnf("event stream closed: %s", err)
			}
			return
		}

		pending = append(pending, buf[:n]...)
		for {
			i := bytes.IndexByte(pending, '\n')
			if i < 0 {
				break
			}
			l.dispatch(pending[:i])
			pending = pending[i+1:]
		}
	}
}

func (l *listener) dispatch(line []byte) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return
	}

	var msg message
	if err := json.Unmarshal(line, &msg); err != nil || msg.Event == "" {
		// command replies share the stream
		return
	}

	for _, e := range l.translator.translate(msg) {
		l.sink(e.name, e.payload)
	}
}
