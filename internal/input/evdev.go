package input

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"syscall"
	"time"
)

const evKey = 0x01

type keyEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// Linux key codes, see input-event-codes.h
var evdevNames = map[uint16]string{
	1: "esc", 2: "1", 3: "2", 4: "3", 5: "4", 6: "5", 7: "6", 8: "7", 9: "8", 10: "9", 11: "0",
	14: "backspace", 15: "tab",
	16: "q", 17: "w", 18: "e", 19: "r", 20: "t", 21: "y", 22: "u", 23: "i", 24: "o", 25: "p",
	28: "enter",
	30: "a", 31: "s", 32: "d", 33: "f", 34: "g", 35: "h", 36: "j", 37: "k", 38: "l", 39: ";",
	44: "z", 45: "x", 46: "c", 47: "v", 48: "b", 49: "n", 50: "m", 51: ",", 52: ".", 53: "/",
	57: " ",
	103: "up", 105: "left", 106: "right", 108: "down",
}

type evdevEvent struct {
	name  string
	value int32
	at    time.Time
}

// Evdev reads a keyboard event device, which unlike a terminal reports
// releases. The device is read on its own goroutine.
type Evdev struct {
	file   *os.File
	events chan evdevEvent
}

func OpenEvdev(path string, log *slog.Logger) (*Evdev, error) {
	file, err := os.Open(path)
	if nil != err {
		return nil, fmt.Errorf("unable to open %v: %w", path, err)
	}
	e := &Evdev{file: file, events: make(chan evdevEvent, 128)}
	go e.read(log)
	return e, nil
}

func (e *Evdev) read(log *slog.Logger) {
	defer close(e.events)
	var ev keyEvent
	for {
		if err := binary.Read(e.file, binary.LittleEndian, &ev); nil != err {
			log.Warn("unable to read keyboard input", "err", err)
			return
		}
		if ev.Type != evKey {
			continue
		}
		name, ok := evdevNames[ev.Code]
		if !ok {
			continue
		}
		e.events <- evdevEvent{
			name:  name,
			value: ev.Value,
			at:    time.Unix(int64(ev.Time.Sec), int64(ev.Time.Usec)*1000),
		}
	}
}

// Pump applies queued events, repeats (value 2) are swallowed by the unifier
func (e *Evdev) Pump(u *Unifier, now time.Time) []string {
	var unused []string
	for {
		select {
		case ev, ok := <-e.events:
			if !ok {
				return unused
			}
			at := ev.at
			if at.After(now) {
				at = now
			}
			switch ev.value {
			case 0:
				u.KeyUp(ev.name, at)
			case 1, 2:
				if !u.KeyDown(ev.name, at) && ev.value == 1 {
					unused = append(unused, ev.name)
				}
			}
		default:
			return unused
		}
	}
}

func (e *Evdev) Close() error {
	return e.file.Close()
}
