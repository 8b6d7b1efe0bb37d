package input

import (
	"time"
)

// Source is a device read once per frame. Pump hands the frame's events to
// the unifier and returns the pressed keys it did not use.
type Source interface {
	Pump(u *Unifier, now time.Time) []string
	Close() error
}

// Pump runs every source for this frame
func Pump(u *Unifier, now time.Time, sources ...Source) []string {
	var unused []string
	for _, s := range sources {
		if nil == s {
			continue
		}
		unused = append(unused, s.Pump(u, now)...)
	}
	return unused
}
