package clock

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Debouncer runs fn once the calls to Trigger have stopped for the configured delay.
type Debouncer struct {
	mu    sync.Mutex
	clock Clock
	delay time.Duration
	fn    func()
	timer Timer
}

func NewDebouncer(c Clock, delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{clock: c, delay: delay, fn: fn}
}

// Trigger (re)starts the delay.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	var self Timer
	self = d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.timer != self {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		d.fn()
	})
	d.timer = self
}

// Cancel drops a pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Throttle runs fn at most once per interval. A call arriving inside the
// interval is coalesced into a single trailing run at the end of it.
type Throttle struct {
	mu       sync.Mutex
	clock    Clock
	interval time.Duration
	limiter  *rate.Limiter
	fn       func()
	trailing Timer
}

func NewThrottle(c Clock, interval time.Duration, fn func()) *Throttle {
	return &Throttle{
		clock:    c,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		fn:       fn,
	}
}

// Call runs fn now if the interval allows it, otherwise schedules the trailing run.
func (t *Throttle) Call() {
	t.mu.Lock()
	if t.limiter.AllowN(t.clock.Now(), 1) {
		t.mu.Unlock()
		t.fn()
		return
	}
	if t.trailing == nil {
		t.trailing = t.clock.AfterFunc(t.interval, t.flush)
	}
	t.mu.Unlock()
}

func (t *Throttle) flush() {
	t.mu.Lock()
	if t.trailing == nil {
		t.mu.Unlock()
		return
	}
	t.trailing = nil
	t.limiter.ReserveN(t.clock.Now(), 1)
	t.mu.Unlock()

	t.fn()
}

// Cancel drops the trailing run, if any.
func (t *Throttle) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.trailing != nil {
		t.trailing.Stop()
		t.trailing = nil
	}
}
