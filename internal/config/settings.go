package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"git.lost.host/meutraa/djmix/internal/game"
)

var ErrInvalidSettings = errors.New("invalid settings")

const (
	MinNoteSpeed = 500 * time.Millisecond
	MaxNoteSpeed = 2500 * time.Millisecond
)

// Settings is the player configuration, read at session start and
// changed at runtime through a Store
type Settings struct {
	MasterVolume        float64            `json:"masterVolume" env:"MASTER_VOLUME"`
	MusicVolume         float64            `json:"musicVolume" env:"MUSIC_VOLUME"`
	SfxVolume           float64            `json:"sfxVolume" env:"SFX_VOLUME"`
	NoteSpeed           time.Duration      `json:"noteSpeed" env:"NOTE_SPEED"`
	Keybinds            [game.Lanes]string `json:"keybinds"`
	GamepadBindings     [game.Lanes]int    `json:"gamepadBindings"`
	FeverKeybind        string             `json:"feverKeybind" env:"FEVER_KEYBIND"`
	FeverGamepadBinding int                `json:"feverGamepadBinding" env:"FEVER_GAMEPAD_BINDING"`
	AutoFever           bool               `json:"autoFever" env:"AUTO_FEVER"`
	Offset              time.Duration      `json:"offset" env:"OFFSET"` // Added to every input timestamp
	Seed                uint64             `json:"seed" env:"SEED"`     // 0 draws fresh notes every run
}

func Default() Settings {
	return Settings{
		MasterVolume:        0.8,
		MusicVolume:         1.0,
		SfxVolume:           1.0,
		NoteSpeed:           1500 * time.Millisecond,
		Keybinds:            [game.Lanes]string{"d", "f", "j", "k"},
		GamepadBindings:     [game.Lanes]int{14, 12, 3, 1},
		FeverKeybind:        " ",
		FeverGamepadBinding: 0,
	}
}

// FromEnv overrides settings with DJMIX_ prefixed environment variables
func FromEnv(s Settings) (Settings, error) {
	if err := env.ParseWithOptions(&s, env.Options{Prefix: "DJMIX_"}); nil != err {
		return s, fmt.Errorf("unable to parse environment: %w", err)
	}
	return s.Normalize(), nil
}

// Normalize lower cases the key bindings, matching is case-insensitive
func (s Settings) Normalize() Settings {
	for i, k := range s.Keybinds {
		s.Keybinds[i] = normalizeKey(k)
	}
	s.FeverKeybind = normalizeKey(s.FeverKeybind)
	return s
}

func normalizeKey(k string) string {
	if k == " " {
		return k
	}
	k = strings.ToLower(strings.TrimSpace(k))
	if k == "space" {
		return " "
	}
	return k
}

func (s Settings) Validate() error {
	volumes := []struct {
		name string
		v    float64
	}{{"masterVolume", s.MasterVolume}, {"musicVolume", s.MusicVolume}, {"sfxVolume", s.SfxVolume}}
	for _, v := range volumes {
		if v.v < 0 || v.v > 1 {
			return fmt.Errorf("%w: %s %v is outside [0, 1]", ErrInvalidSettings, v.name, v.v)
		}
	}
	if s.NoteSpeed < MinNoteSpeed || s.NoteSpeed > MaxNoteSpeed {
		return fmt.Errorf("%w: noteSpeed %v is outside [%v, %v]", ErrInvalidSettings, s.NoteSpeed, MinNoteSpeed, MaxNoteSpeed)
	}
	seen := map[string]bool{}
	for i, k := range s.Keybinds {
		if k == "" {
			return fmt.Errorf("%w: lane %v has no keybind", ErrInvalidSettings, i)
		}
		if seen[k] {
			return fmt.Errorf("%w: key %q is bound twice", ErrInvalidSettings, k)
		}
		seen[k] = true
	}
	if s.FeverKeybind == "" {
		return fmt.Errorf("%w: fever has no keybind", ErrInvalidSettings)
	}
	if seen[s.FeverKeybind] {
		return fmt.Errorf("%w: fever key %q is also a lane key", ErrInvalidSettings, s.FeverKeybind)
	}
	for i, b := range s.GamepadBindings {
		if b < 0 {
			return fmt.Errorf("%w: lane %v gamepad button %v is negative", ErrInvalidSettings, i, b)
		}
	}
	if s.FeverGamepadBinding < 0 {
		return fmt.Errorf("%w: fever gamepad button %v is negative", ErrInvalidSettings, s.FeverGamepadBinding)
	}
	return nil
}
