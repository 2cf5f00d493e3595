package strata

import (
	"time"

	"go.uber.org/zap"
)

// TickFunc is a per-frame callback. dt is the time since the previous tick
// in seconds; the first tick after Start reports 0 because there is no prior
// timestamp.
type TickFunc func(dt float64)

// Clock drives all animation processors. It does not own a goroutine: the
// host pumps it once per displayed frame (see [Clock.Pump]), which keeps the
// tick rate synchronized to the display refresh and the whole system on a
// single logical thread.
//
// Callbacks run synchronously in registration order. A panic in one callback
// is recovered and logged without stopping the clock or the remaining
// callbacks for that frame.
type Clock struct {
	callbacks []*clockCallback
	running   bool
	hasLast   bool
	last      time.Time
	log       *zap.Logger
}

type clockCallback struct {
	fn TickFunc
}

// NewClock creates a stopped clock. log may be nil.
func NewClock(log *zap.Logger) *Clock {
	if log == nil {
		log = zap.NewNop()
	}
	return &Clock{log: log}
}

// Start begins delivering ticks on subsequent Pump calls. Idempotent.
func (c *Clock) Start() {
	if c.running {
		return
	}
	c.running = true
	c.hasLast = false
}

// Stop suspends tick delivery. Idempotent; registered callbacks are kept.
func (c *Clock) Stop() {
	c.running = false
	c.hasLast = false
}

// Running reports whether the clock is currently delivering ticks.
func (c *Clock) Running() bool {
	return c.running
}

// Add registers a tick callback and returns a handle for Remove.
// Callbacks registered in the same batch run in insertion order.
func (c *Clock) Add(fn TickFunc) *clockCallback {
	cb := &clockCallback{fn: fn}
	c.callbacks = append(c.callbacks, cb)
	return cb
}

// Remove unregisters a callback. Unknown handles are a no-op.
func (c *Clock) Remove(cb *clockCallback) {
	for i, existing := range c.callbacks {
		if existing == cb {
			c.callbacks = append(c.callbacks[:i], c.callbacks[i+1:]...)
			return
		}
	}
}

// Pump delivers one tick at the given timestamp if the clock is running.
// The first pump after Start reports a zero delta; negative deltas (a
// timestamp earlier than the previous one) are clamped to zero.
func (c *Clock) Pump(now time.Time) {
	if !c.running {
		return
	}

	var dt float64
	if c.hasLast {
		dt = now.Sub(c.last).Seconds()
		if dt < 0 {
			dt = 0
		}
	}
	c.last = now
	c.hasLast = true

	// Snapshot so a callback that adds or removes callbacks does not
	// disturb this frame's iteration.
	for _, cb := range append([]*clockCallback(nil), c.callbacks...) {
		c.invoke(cb, dt)
	}
}

// invoke runs a single callback with panic isolation.
func (c *Clock) invoke(cb *clockCallback, dt float64) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("animation tick panicked", zap.Any("panic", r))
		}
	}()
	cb.fn(dt)
}

// Dispose stops the clock and clears all callbacks.
func (c *Clock) Dispose() {
	c.Stop()
	c.callbacks = nil
}
