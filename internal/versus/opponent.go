// Package versus provides the simulated opponents of versus play. There is no
// network, an opponent is a score source driven by the player's own score.
package versus

import (
	"math/rand/v2"
	"time"
)

const (
	// Tick is the song time between opponent score updates
	Tick = time.Second
	// MaxGain bounds a single opponent score increment
	MaxGain = 500
	// AIPace and HumanPace are the fraction of the player's score an opponent chases
	AIPace    = 0.9
	HumanPace = 1.1
)

// Opponent is a pluggable source of the rival's score
type Opponent interface {
	Name() string
	Human() bool
	Score() int64
	// Update advances the opponent to song time now
	Update(now time.Duration, player int64)
	Reset()
}

// Simulated chases a fixed fraction of the player's score with random gains
type Simulated struct {
	name  string
	human bool
	score int64
	next  time.Duration
	rng   *rand.Rand
}

func NewSimulated(name string, human bool, src rand.Source) *Simulated {
	return &Simulated{name: name, human: human, next: Tick, rng: rand.New(src)}
}

func (s *Simulated) Name() string { return s.name }
func (s *Simulated) Human() bool  { return s.human }
func (s *Simulated) Score() int64 { return s.score }

func (s *Simulated) pace() float64 {
	if s.human {
		return HumanPace
	}
	return AIPace
}

func (s *Simulated) Update(now time.Duration, player int64) {
	for now >= s.next {
		s.next += Tick
		target := int64(float64(player) * s.pace())
		if s.score < target {
			s.score += s.rng.Int64N(MaxGain)
		}
	}
}

func (s *Simulated) Reset() {
	s.score = 0
	s.next = Tick
}

// Victory is the result screen verdict, a tie goes to the player
func Victory(player int64, o Opponent) bool {
	return nil == o || player >= o.Score()
}
