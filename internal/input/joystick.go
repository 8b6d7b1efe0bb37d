package input

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

const (
	jsButton = 0x01
	jsInit   = 0x80
	// MaxButtons bounds the snapshot of a joystick device
	MaxButtons = 32
)

type jsEvent struct {
	Time   uint32
	Value  int16
	Type   uint8
	Number uint8
}

// Joystick keeps the button state of a Linux joystick device, which the
// frame loop polls once per frame
type Joystick struct {
	file    *os.File
	mu      sync.Mutex
	buttons []bool
}

func OpenJoystick(path string, log *slog.Logger) (*Joystick, error) {
	file, err := os.Open(path)
	if nil != err {
		return nil, fmt.Errorf("unable to open %v: %w", path, err)
	}
	j := &Joystick{file: file, buttons: make([]bool, MaxButtons)}
	go j.read(log)
	return j, nil
}

func (j *Joystick) read(log *slog.Logger) {
	var ev jsEvent
	for {
		if err := binary.Read(j.file, binary.LittleEndian, &ev); nil != err {
			log.Warn("unable to read gamepad input", "err", err)
			return
		}
		j.apply(ev)
	}
}

func (j *Joystick) apply(ev jsEvent) {
	if ev.Type&^jsInit != jsButton || int(ev.Number) >= MaxButtons {
		return
	}
	j.mu.Lock()
	j.buttons[ev.Number] = ev.Value != 0
	j.mu.Unlock()
}

// Snapshot copies the current button state
func (j *Joystick) Snapshot() []bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]bool(nil), j.buttons...)
}

func (j *Joystick) Pump(u *Unifier, now time.Time) []string {
	u.Poll(j.Snapshot(), now)
	return nil
}

func (j *Joystick) Close() error {
	return j.file.Close()
}
