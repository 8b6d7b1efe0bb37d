package session

import (
	"math/rand/v2"
	"sort"
	"time"

	"git.lost.host/meutraa/djmix/internal/chart"
	"git.lost.host/meutraa/djmix/internal/game"
	"git.lost.host/meutraa/djmix/internal/judge"
	"git.lost.host/meutraa/djmix/internal/score"
)

// Run is a single playthrough of a track. A retry builds a new Run, nothing
// is reused across runs.
type Run struct {
	Track     *game.Track
	Seed      uint64
	Scheduler *chart.Scheduler
	Engine    *judge.Engine
	Inputs    []game.Input

	now  time.Duration
	done bool
}

// NewRun seeds the note stream with seed, or a fresh seed when it is 0.
// The seed used is kept so the run can be reported.
func NewRun(track *game.Track, lead time.Duration, autoFever bool, seed uint64) *Run {
	if seed == 0 {
		seed = rand.Uint64() | 1
	}
	return &Run{
		Track:     track,
		Seed:      seed,
		Scheduler: chart.NewScheduler(track, lead, chart.NewSource(seed)),
		Engine:    judge.New(score.NewProgression(autoFever)),
	}
}

func (r *Run) Progression() *score.Progression {
	return r.Engine.Progression()
}

// Now is the song time the run has been advanced to
func (r *Run) Now() time.Duration {
	return r.now
}

func (r *Run) Done() bool {
	return r.done
}

func (r *Run) advance(t time.Duration) {
	if t < r.now {
		return
	}
	r.now = t
	if n := r.Scheduler.Advance(t); nil != n {
		r.Engine.Add(n)
	}
	r.Engine.Advance(t)
}

func (r *Run) apply(in game.Input) {
	r.Inputs = append(r.Inputs, in)
	switch {
	case in.Lane == game.FeverLane:
		r.Engine.ActivateFever(in.Time)
	case in.Release:
		r.Engine.Release(in.Lane, in.Time)
	default:
		r.Engine.Press(in.Lane, in.Time)
	}
}

// Step is the simulation step of one frame. Inputs are applied in time
// order, with time advanced to each input before it is judged, then time is
// advanced to now. It reports the outcome once the run has ended.
func (r *Run) Step(now time.Duration, inputs []game.Input) (score.Outcome, bool) {
	if r.done {
		return "", false
	}
	sort.SliceStable(inputs, func(i, j int) bool {
		return inputs[i].Time < inputs[j].Time
	})
	p := r.Progression()
	for _, in := range inputs {
		if p.Over() {
			break
		}
		at := min(in.Time, now)
		in.Time = max(at, r.now)
		r.advance(in.Time)
		if in.Release && in.Lane == game.FeverLane {
			continue
		}
		if in.Release {
			// Judged at its own time, a late release may predate the hold end
			in.Time = at
		}
		r.apply(in)
	}
	if !p.Over() {
		r.advance(now)
	}

	switch {
	case p.Over():
		r.done = true
		return score.OutcomeGameOver, true
	case now > r.Track.Duration:
		r.done = true
		return score.OutcomeResult, true
	}
	return "", false
}
