// Package chart generates the note stream of a track from its tempo.
package chart

import (
	"math/rand/v2"
	"time"

	"git.lost.host/meutraa/djmix/internal/game"
)

const (
	// HoldChance is the probability of a spawned note being a hold
	HoldChance = 0.2
	// MaxHold caps the hold length, which is otherwise three beats
	MaxHold = 800 * time.Millisecond
	// SpawnCutoff stops spawning this long before the end of the song
	SpawnCutoff = 3 * time.Second
	// DefaultLead is the time a note takes to fall to the hit line
	DefaultLead = 1500 * time.Millisecond
)

// NewSource returns a seeded random source, or a freshly drawn one for seed 0
func NewSource(seed uint64) rand.Source {
	if seed == 0 {
		return rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// Scheduler spawns one note per beat. It is not restartable, a new run
// needs a new scheduler.
type Scheduler struct {
	HoldChance float64

	interval time.Duration
	cutoff   time.Duration
	lead     time.Duration
	hold     time.Duration
	cursor   time.Duration // Time of the next beat a note may spawn on
	nextID   uint64
	rng      *rand.Rand
}

func NewScheduler(track *game.Track, lead time.Duration, src rand.Source) *Scheduler {
	interval := track.BeatInterval()
	return &Scheduler{
		HoldChance: HoldChance,
		interval:   interval,
		cutoff:     track.Duration - SpawnCutoff,
		lead:       lead,
		hold:       min(MaxHold, 3*interval),
		nextID:     1,
		rng:        rand.New(src),
	}
}

// SetLead changes the fall time for notes spawned from now on
func (s *Scheduler) SetLead(lead time.Duration) {
	s.lead = lead
}

func (s *Scheduler) Lead() time.Duration {
	return s.lead
}

func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Advance spawns at most one note once the next beat is due. A hold pushes
// the following beat back by its own length.
func (s *Scheduler) Advance(now time.Duration) *game.Note {
	if now >= s.cutoff || now < s.cursor {
		return nil
	}

	kind := game.Tap
	if s.rng.Float64() < s.HoldChance {
		kind = game.Hold
	}
	note := &game.Note{
		ID:    s.nextID,
		Lane:  s.rng.IntN(game.Lanes),
		Kind:  kind,
		Time:  now + s.lead,
		Spawn: now,
	}
	if kind == game.Hold {
		note.Hold = s.hold
	}
	s.nextID++

	s.cursor += s.interval + note.Hold
	// A stalled frame skips the beats it missed rather than bursting them
	for s.cursor <= now {
		s.cursor += s.interval
	}
	return note
}
