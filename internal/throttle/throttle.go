// Package throttle provides a leading-edge throttle with a guaranteed
// trailing call.
package throttle

import (
	"sync"
	"time"
)

// DefaultInterval is the default throttle window, roughly one frame at 60Hz.
const DefaultInterval = 16 * time.Millisecond

// Timer is the subset of *time.Timer the throttle uses.
type Timer interface {
	Stop() bool
}

// Clock is the time source of a Throttle.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Throttle bounds how often a call runs.
//
// The first call of a window runs synchronously. Calls arriving before the
// window has elapsed are coalesced: only the most recent one is kept, and it
// runs once the window elapses. A Throttle is safe for concurrent use; the
// trailing call runs on the timer's goroutine.
type Throttle struct {
	interval time.Duration
	clock    Clock

	mu      sync.Mutex
	last    time.Time
	ran     bool
	pending func()
	timer   Timer
	seq     uint64
}

// Option configures a Throttle.
type Option func(*Throttle)

// WithClock sets the time source.
func WithClock(c Clock) Option {
	return func(t *Throttle) {
		if c != nil {
			t.clock = c
		}
	}
}

// New creates a Throttle with the given window.
// If interval is 0, DefaultInterval is used.
func New(interval time.Duration, opts ...Option) *Throttle {
	if interval <= 0 {
		interval = DefaultInterval
	}
	t := &Throttle{
		interval: interval,
		clock:    realClock{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Do runs fn now if the window is open and reports true. Otherwise fn
// replaces any pending call, the trailing timer is armed for the rest of
// the window, and Do reports false.
func (t *Throttle) Do(fn func()) bool {
	t.mu.Lock()
	now := t.clock.Now()
	if t.timer == nil && (!t.ran || now.Sub(t.last) >= t.interval) {
		t.last = now
		t.ran = true
		t.mu.Unlock()
		fn()
		return true
	}

	t.pending = fn
	if t.timer == nil {
		wait := t.interval - now.Sub(t.last)
		if wait < 0 {
			wait = 0
		}
		t.seq++
		seq := t.seq
		t.timer = t.clock.AfterFunc(wait, func() { t.fire(seq) })
	}
	t.mu.Unlock()
	return false
}

// fire runs the pending call for the timer armed with seq.
func (t *Throttle) fire(seq uint64) {
	fn := func() func() {
		t.mu.Lock()
		defer t.mu.Unlock()

		// A Flush or Stop that raced the timer already handled this window.
		if seq != t.seq {
			return nil
		}
		t.timer = nil
		fn := t.pending
		t.pending = nil
		if fn != nil {
			t.last = t.clock.Now()
		}
		return fn
	}()
	if fn != nil {
		fn()
	}
}

// Flush runs the pending call, if any, immediately and reports whether one ran.
func (t *Throttle) Flush() bool {
	t.mu.Lock()
	fn := t.pending
	t.reset()
	if fn != nil {
		t.last = t.clock.Now()
		t.ran = true
	}
	t.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// Stop drops the pending call.
func (t *Throttle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reset()
}

// Pending reports whether a trailing call is waiting.
func (t *Throttle) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}

// Interval returns the throttle window.
func (t *Throttle) Interval() time.Duration {
	return t.interval
}

// reset cancels the timer and drops the pending call. Callers hold mu.
func (t *Throttle) reset() {
	t.seq++
	t.pending = nil
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
