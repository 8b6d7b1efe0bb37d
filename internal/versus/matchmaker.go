package versus

import (
	"math/rand/v2"
	"time"
)

const (
	// SearchTime is the longest matchmaking takes
	SearchTime = 5 * time.Second
	// HumanChance is the chance per second of finding a human stand-in
	HumanChance = 0.15
	HumanName   = "Kaito_Runner"
)

var (
	prefixes = []string{"NEO", "CYBER", "HYPER", "VOID", "ZEN", "PROTO", "CORE", "DATA", "SYNC", "NULL", "OMEGA", "XENO"}
	suffixes = []string{"X", "ZERO", "UNIT_01", "GHOST", "PILOT", "DRIVE", "CORE", "BEAT", "PULSE", "WAVE", "SOUL", "EDGE"}
)

// Matchmaker counts down the search, one roll per elapsed second
type Matchmaker struct {
	start    time.Time
	ticks    int
	rng      *rand.Rand
	src      rand.Source
	opponent Opponent
}

func NewMatchmaker(start time.Time, src rand.Source) *Matchmaker {
	return &Matchmaker{start: start, rng: rand.New(src), src: src}
}

// Remaining is the countdown shown while searching
func (m *Matchmaker) Remaining(now time.Time) time.Duration {
	left := SearchTime - now.Sub(m.start)
	if left < 0 || nil != m.opponent {
		return 0
	}
	return left
}

// Poll rolls for every second passed since the last call, and returns the
// opponent once one is found
func (m *Matchmaker) Poll(now time.Time) Opponent {
	if nil != m.opponent {
		return m.opponent
	}
	total := int(SearchTime / time.Second)
	for m.ticks < total && now.Sub(m.start) >= time.Duration(m.ticks+1)*time.Second {
		m.ticks++
		if m.rng.Float64() < HumanChance {
			m.opponent = NewSimulated(HumanName, true, m.src)
			return m.opponent
		}
	}
	if m.ticks >= total {
		name := prefixes[m.rng.IntN(len(prefixes))] + "_" + suffixes[m.rng.IntN(len(suffixes))]
		m.opponent = NewSimulated(name, false, m.src)
	}
	return m.opponent
}
