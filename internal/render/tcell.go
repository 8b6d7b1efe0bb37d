package render

import (
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"git.lost.host/meutraa/djmix/internal/input"
)

// TcellRenderer draws through tcell, and doubles as the input source of
// that frontend: keys go through a Repeater and mouse clicks on the lanes
// are touches.
type TcellRenderer struct {
	// Screen is created in Init when nil
	Screen       tcell.Screen
	ReleaseDelay time.Duration

	decorations decorations
	events      chan tcell.Event
	rep         *input.Repeater
	touch       int // Lane held by the mouse, -1 for none
}

func (r *TcellRenderer) Init() error {
	if nil == r.Screen {
		s, err := tcell.NewScreen()
		if nil != err {
			return fmt.Errorf("unable to create screen: %w", err)
		}
		r.Screen = s
	}
	if err := r.Screen.Init(); nil != err {
		return fmt.Errorf("unable to init screen: %w", err)
	}
	r.Screen.EnableMouse(tcell.MouseButtonEvents)
	r.Screen.HideCursor()
	r.rep = input.NewRepeater(r.ReleaseDelay)
	r.touch = -1
	r.events = make(chan tcell.Event, 128)
	go func() {
		for {
			ev := r.Screen.PollEvent()
			if nil == ev {
				return
			}
			r.events <- ev
		}
	}()
	return nil
}

func (r *TcellRenderer) Deinit() error {
	r.Screen.Fini()
	return nil
}

func (r *TcellRenderer) Size() (int, int) {
	return r.Screen.Size()
}

func (r *TcellRenderer) AddDecoration(col, row int, content string, c color.RGBA, frames int) {
	r.decorations.add(col, row, content, c, frames)
}

func (r *TcellRenderer) RenderLoop(period time.Duration, render func(now time.Time) bool) {
	loop(period, func(now time.Time) bool {
		r.Screen.Clear()
		cont := render(now)
		r.decorations.tick(r.FillColor)
		r.Screen.Show()
		return cont
	})
}

func (r *TcellRenderer) fill(row, column int, style tcell.Style, message string) {
	x, y := column-1, row-1
	for _, ch := range message {
		r.Screen.SetContent(x, y, ch, nil, style)
		x += max(1, runewidth.RuneWidth(ch))
	}
}

func (r *TcellRenderer) Fill(row, column int, message string) {
	r.fill(row, column, tcell.StyleDefault, message)
}

func (r *TcellRenderer) FillColor(row, column int, c color.RGBA, message string) {
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	r.fill(row, column, style, message)
}

var tcellKeys = map[tcell.Key]string{
	tcell.KeyEsc:        "esc",
	tcell.KeyEnter:      "enter",
	tcell.KeyTab:        "tab",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyCtrlC:      "ctrl+c",
}

func tcellKeyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		return string(ev.Rune())
	}
	return tcellKeys[ev.Key()]
}

// Pump implements input.Source
func (r *TcellRenderer) Pump(u *input.Unifier, now time.Time) []string {
	var unused []string
	for {
		select {
		case ev := <-r.events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				name := tcellKeyName(ev)
				if name != "" && !r.rep.Key(u, name, now) {
					unused = append(unused, name)
				}
			case *tcell.EventMouse:
				r.mouse(u, ev, now)
			case *tcell.EventResize:
				r.Screen.Sync()
			}
		default:
			r.rep.Expire(u, now)
			return unused
		}
	}
}

func (r *TcellRenderer) mouse(u *input.Unifier, ev *tcell.EventMouse, now time.Time) {
	x, y := ev.Position()
	col, row := x+1, y+1
	l := NewLayout(r.Screen.Size())
	if ev.Buttons()&tcell.Button1 == 0 {
		if r.touch >= 0 {
			u.TouchEnd(r.touch, now)
			r.touch = -1
		}
		return
	}
	if r.touch >= 0 {
		return
	}
	if l.FeverAt(col, row) {
		u.TouchFever(now)
		return
	}
	if lane := l.LaneAt(col); lane >= 0 {
		r.touch = lane
		u.TouchStart(lane, now)
	}
}

func (r *TcellRenderer) Close() error {
	return nil
}
