package render

import (
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"git.lost.host/meutraa/djmix/internal/game"
	"git.lost.host/meutraa/djmix/internal/input"
)

func newSimulation(t *testing.T) *TcellRenderer {
	s := tcell.NewSimulationScreen("UTF-8")
	r := &TcellRenderer{Screen: s, ReleaseDelay: input.DefaultReleaseDelay}
	if err := r.Init(); nil != err {
		t.Fatalf("unable to init simulation: %v", err)
	}
	s.SetSize(80, 25)
	t.Cleanup(func() { r.Deinit() })
	return r
}

func TestTcellFill(t *testing.T) {
	r := newSimulation(t)
	r.FillColor(2, 3, color.RGBA{255, 0, 0, 255}, "ab")
	ch, _, style, _ := r.Screen.GetContent(2, 1)
	if fg, _, _ := style.Decompose(); ch != 'a' || fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("unexpected cell %q %v", ch, fg)
	}
	if ch, _, _, _ := r.Screen.GetContent(3, 1); ch != 'b' {
		t.Errorf("unexpected cell %q", ch)
	}
}

func TestTcellTouch(t *testing.T) {
	r := newSimulation(t)
	u := input.NewUnifier(input.Bindings{})
	now := time.Now()
	l := NewLayout(80, 25)

	r.mouse(u, tcell.NewEventMouse(l.Lanes[1]-1, l.HitRow-1, tcell.Button1, tcell.ModNone), now)
	if !u.Held()[1] {
		t.Errorf("lane not held after a click")
	}
	r.mouse(u, tcell.NewEventMouse(l.Lanes[1]-1, l.HitRow-1, tcell.ButtonNone, tcell.ModNone), now)
	edges := u.Drain()
	if len(edges) != 2 || edges[0].Action != input.Press || edges[1].Action != input.Release || edges[0].Source != input.Touch {
		t.Errorf("unexpected edges %v", edges)
	}

	r.mouse(u, tcell.NewEventMouse(l.FeverCol, l.FeverRow-1, tcell.Button1, tcell.ModNone), now)
	edges = u.Drain()
	if len(edges) != 2 || !edges[0].Fever() || edges[0].Lane != game.FeverLane {
		t.Errorf("fever badge click gave %v", edges)
	}
}
