package input

import (
	"strings"
	"time"

	"git.lost.host/meutraa/djmix/internal/game"
)

// Capture listens for the next raw key or button instead of dispatching it.
// Done receives the key, or the button when Gamepad is set, and ok is false
// when the capture was cancelled with escape.
type Capture struct {
	Lane    int // game.FeverLane for the fever binding
	Gamepad bool
	Done    func(key string, button int, ok bool)
}

// Unifier merges every source into one held state per lane. An edge is only
// emitted when the merged state changes, so holding a lane on two devices
// and letting go of one keeps the lane held.
type Unifier struct {
	// Sustain reports whether lane has a hold in progress, press only
	// sources keep such a lane down through longer repeat gaps
	Sustain func(lane int) bool

	bindings Bindings
	held     [game.Lanes]Device
	fever    Device
	keys     map[string]bool
	buttons  []bool // Previous gamepad poll
	edges    []Edge
	capture  *Capture
}

func NewUnifier(b Bindings) *Unifier {
	return &Unifier{bindings: b, keys: map[string]bool{}}
}

func (u *Unifier) SetBindings(b Bindings) {
	u.bindings = b
}

func (u *Unifier) Bindings() Bindings {
	return u.bindings
}

func (u *Unifier) press(lane int, src Device, at time.Time) {
	if lane == game.FeverLane {
		if u.fever == 0 {
			u.edges = append(u.edges, Edge{Lane: lane, Action: Press, Source: src, At: at})
		}
		u.fever |= src
		return
	}
	if u.held[lane] == 0 {
		u.edges = append(u.edges, Edge{Lane: lane, Action: Press, Source: src, At: at})
	}
	u.held[lane] |= src
}

func (u *Unifier) release(lane int, src Device, at time.Time) {
	if lane == game.FeverLane {
		u.fever &^= src
		return
	}
	if u.held[lane] == 0 {
		return
	}
	u.held[lane] &^= src
	if u.held[lane] == 0 {
		u.edges = append(u.edges, Edge{Lane: lane, Action: Release, Source: src, At: at})
	}
}

// KeyDown reports whether the key was used, unbound keys are left for menus.
// Repeats of a key already down are swallowed.
func (u *Unifier) KeyDown(key string, at time.Time) bool {
	key = strings.ToLower(key)
	if nil != u.capture {
		u.captureKey(key)
		return true
	}
	lane, ok := u.bindings.keyLane(key)
	if !ok {
		return false
	}
	if u.keys[key] {
		return true
	}
	u.keys[key] = true
	u.press(lane, Keyboard, at)
	return true
}

func (u *Unifier) KeyUp(key string, at time.Time) bool {
	key = strings.ToLower(key)
	if nil != u.capture {
		return true
	}
	if !u.keys[key] {
		return false
	}
	delete(u.keys, key)
	if lane, ok := u.bindings.keyLane(key); ok {
		u.release(lane, Keyboard, at)
	}
	return true
}

func (u *Unifier) sustained(key string) bool {
	if nil == u.Sustain {
		return false
	}
	lane, ok := u.bindings.keyLane(strings.ToLower(key))
	return ok && lane != game.FeverLane && u.Sustain(lane)
}

func pressed(buttons []bool, b int) bool {
	return b >= 0 && b < len(buttons) && buttons[b]
}

// Poll takes the gamepad snapshot of this frame. Edges come from buttons that
// changed since the previous poll.
func (u *Unifier) Poll(buttons []bool, at time.Time) {
	prev := u.buttons
	u.buttons = append(u.buttons[:0:0], buttons...)

	if nil != u.capture {
		if !u.capture.Gamepad {
			return
		}
		for b := range buttons {
			if pressed(buttons, b) && !pressed(prev, b) {
				u.finishCapture("", b, true)
				return
			}
		}
		return
	}

	check := func(lane, b int) {
		now, was := pressed(buttons, b), pressed(prev, b)
		switch {
		case now && !was:
			u.press(lane, Gamepad, at)
		case !now && was:
			u.release(lane, Gamepad, at)
		}
	}
	for lane, b := range u.bindings.Buttons {
		check(lane, b)
	}
	check(game.FeverLane, u.bindings.FeverButton)
}

func (u *Unifier) TouchStart(lane int, at time.Time) {
	if nil != u.capture || lane < 0 || lane >= game.Lanes {
		return
	}
	u.press(lane, Touch, at)
}

func (u *Unifier) TouchEnd(lane int, at time.Time) {
	if nil != u.capture || lane < 0 || lane >= game.Lanes {
		return
	}
	u.release(lane, Touch, at)
}

// TouchFever is the on-screen fever control
func (u *Unifier) TouchFever(at time.Time) {
	if nil != u.capture {
		return
	}
	u.press(game.FeverLane, Touch, at)
	u.release(game.FeverLane, Touch, at)
}

// Held is the merged per lane state used for hold notes
func (u *Unifier) Held() [game.Lanes]bool {
	var h [game.Lanes]bool
	for i, s := range u.held {
		h[i] = s != 0
	}
	return h
}

// Drain returns the edges since the last call, in arrival order
func (u *Unifier) Drain() []Edge {
	edges := u.edges
	u.edges = nil
	return edges
}

// BeginCapture drops all held state without emitting releases, and routes
// the next key or button to c.Done
func (u *Unifier) BeginCapture(c Capture) {
	u.held = [game.Lanes]Device{}
	u.fever = 0
	clear(u.keys)
	u.edges = nil
	u.capture = &c
}

func (u *Unifier) Capturing() bool {
	return nil != u.capture
}

func (u *Unifier) captureKey(key string) {
	if key == "esc" {
		u.finishCapture("", -1, false)
		return
	}
	if u.capture.Gamepad {
		return
	}
	u.finishCapture(key, -1, true)
}

func (u *Unifier) finishCapture(key string, button int, ok bool) {
	c := u.capture
	u.capture = nil
	if nil != c.Done {
		c.Done(key, button, ok)
	}
}
