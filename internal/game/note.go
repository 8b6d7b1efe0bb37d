package game

import (
	"time"
)

// Lanes is the number of parallel input columns
const Lanes = 4

type Kind uint8

const (
	Tap Kind = iota
	Hold
)

func (k Kind) String() string {
	if k == Hold {
		return "HOLD"
	}
	return "TAP"
}

// State is the judgement lifecycle of a single note.
// Taps go Unjudged -> Hit|Miss, holds go Unjudged -> Holding -> Complete|Miss.
type State uint8

const (
	Unjudged State = iota
	Holding
	Hit
	Miss
	Complete
)

var stateNames = [...]string{"UNJUDGED", "HOLDING", "HIT", "MISS", "COMPLETE"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "UNKNOWN"
}

type Note struct {
	ID    uint64
	Lane  int           // The lane column, 0 to Lanes-1
	Kind  Kind
	Time  time.Duration // The time the note should be hit
	Hold  time.Duration // The length of a hold, 0 for taps
	Spawn time.Duration // The time the note entered the field

	// This is state
	State       State
	HitTime     time.Duration // When the head was pressed
	ResolveTime time.Duration // When the note left the Unjudged/Holding states
}

// TimeEnd is the time a hold must be kept down until
func (n *Note) TimeEnd() time.Duration {
	return n.Time + n.Hold
}

func (n *Note) Resolved() bool {
	return n.State == Hit || n.State == Miss || n.State == Complete
}

func (n *Note) Holding() bool {
	return n.State == Holding
}
