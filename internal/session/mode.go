package session

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid transition")

type Mode uint8

const (
	Start Mode = iota
	SongSelect
	Connecting
	Ready
	Playing
	Paused
	Result
	GameOver
)

var modeNames = [...]string{"START", "SONG_SELECT", "CONNECTING", "READY", "PLAYING", "PAUSED", "RESULT", "GAME_OVER"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "UNKNOWN"
}

var transitions = map[Mode][]Mode{
	Start:      {SongSelect},
	SongSelect: {Connecting, Ready},
	Connecting: {Ready, SongSelect},
	Ready:      {Playing, SongSelect},
	Playing:    {Paused, Result, GameOver},
	Paused:     {Playing, SongSelect},
	Result:     {SongSelect, Playing},
	GameOver:   {SongSelect, Playing},
}

// CanTransition reports whether to is reachable from from in one step
func CanTransition(from, to Mode) bool {
	for _, m := range transitions[from] {
		if m == to {
			return true
		}
	}
	return false
}

func checkTransition(from, to Mode) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %v to %v", ErrInvalidTransition, from, to)
	}
	return nil
}
