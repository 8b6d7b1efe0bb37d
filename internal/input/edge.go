// Package input unifies keyboard, gamepad and touch into per lane press and
// release edges plus the fever edge.
package input

import (
	"time"

	"git.lost.host/meutraa/djmix/internal/config"
	"git.lost.host/meutraa/djmix/internal/game"
)

type Action uint8

const (
	Press Action = iota
	Release
)

type Device uint8

const (
	Keyboard Device = 1 << iota
	Gamepad
	Touch
)

// Edge is a unified transition, Lane is game.FeverLane for the fever control
type Edge struct {
	Lane   int
	Action Action
	Source Device
	At     time.Time
}

func (e Edge) Fever() bool {
	return e.Lane == game.FeverLane
}

// Bindings map keys and gamepad buttons to lanes, keys are lower case
type Bindings struct {
	Keys        [game.Lanes]string
	Buttons     [game.Lanes]int
	FeverKey    string
	FeverButton int
}

func BindingsFrom(s config.Settings) Bindings {
	s = s.Normalize()
	return Bindings{
		Keys:        s.Keybinds,
		Buttons:     s.GamepadBindings,
		FeverKey:    s.FeverKeybind,
		FeverButton: s.FeverGamepadBinding,
	}
}

// keyLane returns the lane bound to key, game.FeverLane for the fever key
func (b *Bindings) keyLane(key string) (int, bool) {
	for i, k := range b.Keys {
		if k == key {
			return i, true
		}
	}
	if key == b.FeverKey {
		return game.FeverLane, true
	}
	return 0, false
}
