package input

import (
	"fmt"
	"time"

	"github.com/eiannone/keyboard"
)

var terminalKeys = map[keyboard.Key]string{
	keyboard.KeySpace:      " ",
	keyboard.KeyEsc:        "esc",
	keyboard.KeyEnter:      "enter",
	keyboard.KeyTab:        "tab",
	keyboard.KeyBackspace:  "backspace",
	keyboard.KeyBackspace2: "backspace",
	keyboard.KeyArrowUp:    "up",
	keyboard.KeyArrowDown:  "down",
	keyboard.KeyArrowLeft:  "left",
	keyboard.KeyArrowRight: "right",
	keyboard.KeyCtrlC:      "ctrl+c",
}

// KeyName is the binding name of a terminal key event
func KeyName(r rune, k keyboard.Key) string {
	if r != 0 {
		return string(r)
	}
	return terminalKeys[k]
}

// Terminal reads keys from the controlling terminal. Terminals only report
// presses, releases are synthesized by a Repeater.
type Terminal struct {
	events <-chan keyboard.KeyEvent
	rep    *Repeater
}

func OpenTerminal(releaseDelay time.Duration) (*Terminal, error) {
	events, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, fmt.Errorf("unable to open terminal keyboard: %w", err)
	}
	return &Terminal{events: events, rep: NewRepeater(releaseDelay)}, nil
}

func (t *Terminal) Pump(u *Unifier, now time.Time) []string {
	var unused []string
	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				t.rep.Expire(u, now)
				return unused
			}
			if nil != ev.Err {
				continue
			}
			name := KeyName(ev.Rune, ev.Key)
			if name == "" {
				continue
			}
			if !t.rep.Key(u, name, now) {
				unused = append(unused, name)
			}
		default:
			t.rep.Expire(u, now)
			return unused
		}
	}
}

func (t *Terminal) Close() error {
	return keyboard.Close()
}
