package clock

import (
	"time"
)

// Clock derives song time from a real time source. It is driven from the
// frame loop only and is not safe for concurrent use.
type Clock struct {
	now func() time.Time

	start    time.Time // Song time zero, shifted forward by every pause
	pausedAt time.Time
	running  bool
	paused   bool
	last     time.Duration // Largest value returned by Now
}

// New creates a stopped clock. A nil now uses time.Now.
func New(now func() time.Time) *Clock {
	if nil == now {
		now = time.Now
	}
	return &Clock{now: now}
}

// Start records the reference instant, song time restarts at zero
func (c *Clock) Start() {
	c.start = c.now()
	c.running = true
	c.paused = false
	c.last = 0
}

func (c *Clock) Stop() {
	c.last = c.Now()
	c.running = false
	c.paused = false
}

// Wall returns the real time reading
func (c *Clock) Wall() time.Time {
	return c.now()
}

// Now returns the elapsed song time, it never decreases while playing
func (c *Clock) Now() time.Duration {
	if !c.running {
		return c.last
	}
	d := c.elapsed(c.now())
	if d < c.last {
		return c.last
	}
	c.last = d
	return d
}

// At converts a real time instant to song time, it is clamped to the
// current song time so an event is never judged in the future
func (c *Clock) At(t time.Time) time.Duration {
	if !c.running {
		return c.last
	}
	now := c.Now()
	d := c.elapsed(t)
	if d > now {
		return now
	}
	return d
}

func (c *Clock) elapsed(t time.Time) time.Duration {
	if c.paused && t.After(c.pausedAt) {
		t = c.pausedAt
	}
	return t.Sub(c.start)
}

// Pause freezes song time
func (c *Clock) Pause() {
	if !c.running || c.paused {
		return
	}
	c.pausedAt = c.now()
	c.paused = true
}

// Resume shifts the reference instant by the paused duration, so song time
// continues exactly where it stopped
func (c *Clock) Resume() {
	if !c.running || !c.paused {
		return
	}
	c.start = c.start.Add(c.now().Sub(c.pausedAt))
	c.paused = false
}

// Seek moves song time to d
func (c *Clock) Seek(d time.Duration) {
	ref := c.now()
	if c.paused {
		ref = c.pausedAt
	}
	c.start = ref.Add(-d)
	c.last = d
}

func (c *Clock) Running() bool {
	return c.running
}

func (c *Clock) Paused() bool {
	return c.paused
}
