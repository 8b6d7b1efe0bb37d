package judge

import (
	"time"

	"git.lost.host/meutraa/djmix/internal/game"
)

type Kind uint8

const (
	// Whiff is a press that matched nothing, it only has visual effect
	Whiff Kind = iota
	HoldStart
	Hit
	Miss
	Complete
	FeverStart
	FeverEnd
)

var kindNames = [...]string{"WHIFF", "HOLD_START", "HIT", "MISS", "COMPLETE", "FEVER_START", "FEVER_END"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Event is a judgement outcome for the presentation and the log
type Event struct {
	Kind   Kind
	Lane   int
	Note   *game.Note // nil for whiffs and fever events
	Tier   game.Tier
	Points int // Points before the combo bonus, doubled under fever
	Ratio  float64
	Fever  bool // Judged while fever was active
	At     time.Duration
	Label  string
}

func label(e Event) string {
	switch e.Kind {
	case Whiff:
		return ""
	case HoldStart:
		return "HOLD"
	case FeverStart:
		return "FEVER!!"
	case FeverEnd:
		return ""
	}
	l := e.Tier.String()
	if e.Fever && e.Kind != Miss {
		l += " x2"
	}
	return l
}
