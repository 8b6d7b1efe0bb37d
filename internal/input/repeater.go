package input

import (
	"time"
)

const (
	// DefaultReleaseDelay outlasts the usual terminal auto-repeat delay
	DefaultReleaseDelay = 600 * time.Millisecond
	// TapReleaseDelay is faster than a person can tap the same key twice
	TapReleaseDelay = 100 * time.Millisecond
)

// Repeater turns a press only key stream with auto-repeat into presses and
// releases. A key whose lane is sustaining a hold is released once its
// repeats stop for the delay, any other key after the tap delay. Another
// event for an unsustained key that comes at least the tap delay later is a
// new tap rather than a repeat.
type Repeater struct {
	delay time.Duration
	tap   time.Duration
	last  map[string]time.Time
}

func NewRepeater(delay time.Duration) *Repeater {
	if delay <= 0 {
		delay = DefaultReleaseDelay
	}
	return &Repeater{
		delay: delay,
		tap:   min(TapReleaseDelay, delay),
		last:  map[string]time.Time{},
	}
}

func (r *Repeater) delayFor(u *Unifier, key string) time.Duration {
	if u.sustained(key) {
		return r.delay
	}
	return r.tap
}

// Key feeds one key event, it reports whether the unifier used it
func (r *Repeater) Key(u *Unifier, key string, at time.Time) bool {
	if t, ok := r.last[key]; ok {
		r.last[key] = at
		if at.Sub(t) >= r.delayFor(u, key) {
			u.KeyUp(key, t)
			u.KeyDown(key, at)
		}
		return true
	}
	if !u.KeyDown(key, at) {
		return false
	}
	r.last[key] = at
	return true
}

// Expire releases every key that stopped repeating. The release is stamped
// with the last time the key was seen.
func (r *Repeater) Expire(u *Unifier, now time.Time) {
	for key, t := range r.last {
		if now.Sub(t) >= r.delayFor(u, key) {
			delete(r.last, key)
			u.KeyUp(key, t)
		}
	}
}
