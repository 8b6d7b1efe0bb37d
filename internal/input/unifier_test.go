package input

import (
	"testing"
	"time"

	"git.lost.host/meutraa/djmix/internal/config"
	"git.lost.host/meutraa/djmix/internal/fixture"
	"git.lost.host/meutraa/djmix/internal/game"
)

func newUnifier() *Unifier {
	return NewUnifier(BindingsFrom(config.Default()))
}

func kinds(edges []Edge) []Action {
	a := make([]Action, len(edges))
	for i, e := range edges {
		a[i] = e.Action
	}
	return a
}

func TestKeyboardEdges(t *testing.T) {
	c := fixture.NewManualClock()
	u := newUnifier()

	if !u.KeyDown("J", c.Now()) {
		t.Fatal("bound key not used")
	}
	// Auto-repeat is swallowed
	u.KeyDown("j", c.Advance(30*time.Millisecond))
	u.KeyDown("j", c.Advance(30*time.Millisecond))
	u.KeyUp("j", c.Advance(30*time.Millisecond))

	edges := u.Drain()
	if len(edges) != 2 || edges[0].Action != Press || edges[1].Action != Release {
		t.Fatalf("unexpected edges %+v", edges)
	}
	if edges[0].Lane != 2 || edges[0].Source != Keyboard || !edges[0].At.Equal(fixture.Epoch) {
		t.Errorf("unexpected press %+v", edges[0])
	}
	if u.KeyDown("q", c.Now()) {
		t.Errorf("unbound key was used")
	}
	if len(u.Drain()) != 0 {
		t.Errorf("drain did not clear")
	}
}

func TestFeverKey(t *testing.T) {
	u := newUnifier()
	now := fixture.Epoch
	u.KeyDown(" ", now)
	u.KeyDown(" ", now)
	u.KeyUp(" ", now)
	edges := u.Drain()
	if len(edges) != 1 || !edges[0].Fever() || edges[0].Action != Press {
		t.Errorf("unexpected fever edges %+v", edges)
	}
}

func TestGamepadPoll(t *testing.T) {
	u := newUnifier()
	now := fixture.Epoch
	buttons := make([]bool, 16)

	u.Poll(buttons, now)
	buttons[14] = true
	u.Poll(buttons, now)
	u.Poll(buttons, now)
	buttons[14] = false
	buttons[0] = true
	u.Poll(buttons, now)

	edges := u.Drain()
	if len(edges) != 3 {
		t.Fatalf("unexpected edges %+v", edges)
	}
	if edges[0].Lane != 0 || edges[0].Action != Press || edges[0].Source != Gamepad {
		t.Errorf("unexpected press %+v", edges[0])
	}
	if edges[1].Lane != 0 || edges[1].Action != Release {
		t.Errorf("unexpected release %+v", edges[1])
	}
	if !edges[2].Fever() {
		t.Errorf("expected the fever button, got %+v", edges[2])
	}
}

func TestSourcesMerge(t *testing.T) {
	u := newUnifier()
	now := fixture.Epoch
	buttons := make([]bool, 16)

	u.KeyDown("d", now)
	buttons[14] = true
	u.Poll(buttons, now)
	u.TouchStart(0, now)
	u.KeyUp("d", now)
	buttons[14] = false
	u.Poll(buttons, now)
	if !u.Held()[0] {
		t.Fatal("lane released while touch still held")
	}
	u.TouchEnd(0, now)
	if u.Held()[0] {
		t.Fatal("lane still held")
	}

	a := kinds(u.Drain())
	if len(a) != 2 || a[0] != Press || a[1] != Release {
		t.Errorf("expected one press and one release, got %v", a)
	}
}

func TestTouch(t *testing.T) {
	u := newUnifier()
	now := fixture.Epoch
	u.TouchStart(3, now)
	u.TouchStart(game.Lanes, now)
	u.TouchEnd(3, now)
	u.TouchFever(now)
	edges := u.Drain()
	if len(edges) != 3 || edges[0].Source != Touch || !edges[2].Fever() {
		t.Errorf("unexpected touch edges %+v", edges)
	}
}

func TestCaptureKey(t *testing.T) {
	u := newUnifier()
	now := fixture.Epoch
	u.KeyDown("d", now)
	u.Drain()

	var got string
	var ok bool
	u.BeginCapture(Capture{Lane: 1, Done: func(key string, button int, o bool) {
		got, ok = key, o
	}})
	if u.Held()[0] {
		t.Errorf("capture kept held state")
	}
	buttons := make([]bool, 16)
	buttons[14] = true
	u.Poll(buttons, now)
	u.TouchStart(2, now)
	if !u.Capturing() {
		t.Fatal("capture finished on a gamepad button")
	}
	u.KeyDown("L", now)
	if u.Capturing() || got != "l" || !ok {
		t.Errorf("unexpected capture %q %v", got, ok)
	}
	if edges := u.Drain(); len(edges) != 0 {
		t.Errorf("captured input was dispatched: %+v", edges)
	}
}

func TestCaptureGamepad(t *testing.T) {
	u := newUnifier()
	now := fixture.Epoch
	buttons := make([]bool, 16)
	buttons[3] = true
	u.Poll(buttons, now)

	got := -1
	u.BeginCapture(Capture{Lane: 0, Gamepad: true, Done: func(key string, button int, ok bool) {
		got = button
	}})
	u.KeyDown("k", now)
	// Already held buttons are not captured
	u.Poll(buttons, now)
	if got != -1 {
		t.Fatalf("captured a held button")
	}
	buttons[7] = true
	u.Poll(buttons, now)
	if got != 7 || u.Capturing() {
		t.Errorf("expected button 7, got %v", got)
	}
	if edges := u.Drain(); len(edges) != 0 {
		t.Errorf("captured input was dispatched: %+v", edges)
	}
}

func TestCaptureCancel(t *testing.T) {
	u := newUnifier()
	cancelled := false
	u.BeginCapture(Capture{Lane: 0, Done: func(key string, button int, ok bool) {
		cancelled = !ok
	}})
	u.KeyDown("esc", fixture.Epoch)
	if !cancelled || u.Capturing() {
		t.Error("escape did not cancel")
	}
}

func TestRepeater(t *testing.T) {
	c := fixture.NewManualClock()
	u := newUnifier()
	r := NewRepeater(100 * time.Millisecond)

	if !r.Key(u, "f", c.Now()) {
		t.Fatal("bound key not used")
	}
	pressed := c.Advance(80 * time.Millisecond)
	r.Key(u, "f", pressed)
	r.Expire(u, c.Advance(80*time.Millisecond))
	if !u.Held()[1] {
		t.Fatal("released while repeating")
	}
	r.Expire(u, c.Advance(20*time.Millisecond))
	if u.Held()[1] {
		t.Fatal("not released after repeats stopped")
	}
	edges := u.Drain()
	if len(edges) != 2 || edges[1].Action != Release || !edges[1].At.Equal(pressed) {
		t.Errorf("unexpected edges %+v", edges)
	}
	if r.Key(u, "x", c.Now()) {
		t.Errorf("unbound key was used")
	}
}

func TestRepeaterRetap(t *testing.T) {
	c := fixture.NewManualClock()
	u := newUnifier()
	r := NewRepeater(DefaultReleaseDelay)

	first := c.Now()
	r.Key(u, "f", first)
	r.Expire(u, c.Advance(TapReleaseDelay))
	if u.Held()[1] {
		t.Fatal("tap still held after the tap delay")
	}
	r.Expire(u, c.Advance(300*time.Millisecond))
	second := c.Now()
	r.Key(u, "f", second)
	r.Expire(u, c.Advance(700*time.Millisecond))

	edges := u.Drain()
	want := []Action{Press, Release, Press, Release}
	if len(edges) != len(want) {
		t.Fatalf("expected %d edges, got %+v", len(want), edges)
	}
	for i, e := range edges {
		if e.Action != want[i] || e.Lane != 1 {
			t.Errorf("edge %d: expected %v in lane 1, got %+v", i, want[i], e)
		}
	}
	if !edges[2].At.Equal(second) {
		t.Errorf("second press at %v, expected %v", edges[2].At, second)
	}

	// A second tap before any frame expired the first
	r.Key(u, "f", c.Now())
	r.Key(u, "f", c.Advance(200*time.Millisecond))
	if edges := u.Drain(); len(edges) != 3 || edges[2].Action != Press {
		t.Errorf("unexpected edges for a quick retap %+v", edges)
	}
}

func TestRepeaterSustain(t *testing.T) {
	c := fixture.NewManualClock()
	u := newUnifier()
	holding := false
	u.Sustain = func(lane int) bool { return holding && lane == 1 }
	r := NewRepeater(DefaultReleaseDelay)

	r.Key(u, "f", c.Now())
	holding = true
	for range 3 {
		r.Expire(u, c.Advance(200*time.Millisecond))
		r.Key(u, "f", c.Advance(200*time.Millisecond))
	}
	if edges := u.Drain(); len(edges) != 1 || edges[0].Action != Press {
		t.Fatalf("repeats during a hold produced %+v", edges)
	}
	last := c.Now()
	r.Expire(u, c.Advance(500*time.Millisecond))
	if !u.Held()[1] {
		t.Fatal("hold released before the release delay")
	}
	r.Expire(u, c.Advance(100*time.Millisecond))
	edges := u.Drain()
	if len(edges) != 1 || edges[0].Action != Release || !edges[0].At.Equal(last) {
		t.Errorf("unexpected release %+v", edges)
	}
}

func TestJoystickApply(t *testing.T) {
	j := &Joystick{buttons: make([]bool, MaxButtons)}
	j.apply(jsEvent{Type: jsButton | jsInit, Number: 2, Value: 1})
	j.apply(jsEvent{Type: jsButton, Number: 5, Value: 1})
	j.apply(jsEvent{Type: 0x02, Number: 6, Value: 1})
	j.apply(jsEvent{Type: jsButton, Number: 5, Value: 0})
	s := j.Snapshot()
	if !s[2] || s[5] || s[6] {
		t.Errorf("unexpected snapshot %v", s[:8])
	}
}
