// Package judge matches input edges against the live notes, and drives the
// progression with the results.
package judge

import (
	"time"

	"git.lost.host/meutraa/djmix/internal/game"
	"git.lost.host/meutraa/djmix/internal/score"
)

// Engine owns the live notes of a run. Every method must be called with
// non-decreasing song times, except Release.
type Engine struct {
	// HoldGrace delays the completion of a held hold past its end, so a
	// release reported late by a press only source is still judged
	HoldGrace time.Duration

	p      *score.Progression
	notes  []*game.Note
	events []Event
}

func New(p *score.Progression) *Engine {
	return &Engine{p: p}
}

func (e *Engine) Progression() *score.Progression {
	return e.p
}

// Add puts a freshly spawned note into play
func (e *Engine) Add(n *game.Note) {
	e.notes = append(e.notes, n)
}

// Notes are the live notes, oldest first
func (e *Engine) Notes() []*game.Note {
	return e.notes
}

// Holding reports whether lane has a hold in progress
func (e *Engine) Holding(lane int) bool {
	for _, n := range e.notes {
		if n.Lane == lane && n.State == game.Holding {
			return true
		}
	}
	return false
}

// Events returns and clears the events emitted since the last call
func (e *Engine) Events() []Event {
	evs := e.events
	e.events = nil
	return evs
}

func (e *Engine) emit(ev Event) Event {
	ev.Label = label(ev)
	e.events = append(e.events, ev)
	return ev
}

// closest finds the unjudged note in lane nearest to at, the earlier wins a tie
func (e *Engine) closest(lane int, at time.Duration) (*game.Note, time.Duration) {
	var best *game.Note
	var bestDistance time.Duration
	for _, n := range e.notes {
		if n.Lane != lane || n.State != game.Unjudged {
			continue
		}
		d := n.Time - at
		if d < 0 {
			d = -d
		}
		if nil == best || d < bestDistance {
			best, bestDistance = n, d
		}
	}
	return best, bestDistance
}

// Press judges a press edge in lane
func (e *Engine) Press(lane int, at time.Duration) Event {
	if e.p.Over() {
		return Event{Kind: Whiff, Lane: lane, At: at}
	}
	n, d := e.closest(lane, at)
	if nil == n || d >= game.HitWindow {
		return e.emit(Event{Kind: Whiff, Lane: lane, At: at})
	}

	n.HitTime = at
	fever := e.p.Fever.Active
	if n.Kind == game.Hold {
		n.State = game.Holding
		return e.emit(Event{Kind: HoldStart, Lane: lane, Note: n, At: at, Fever: fever})
	}

	j := game.Judge(d, fever)
	ratio := game.Ratio(d, fever)
	points := j.Points
	if fever {
		points *= 2
	}
	n.State = game.Hit
	n.ResolveTime = at
	e.p.RegisterHit(j.Tier, points, ratio)
	ev := e.emit(Event{Kind: Hit, Lane: lane, Note: n, Tier: j.Tier, Points: points, Ratio: ratio, Fever: fever, At: at})
	if !fever && e.p.Fever.Charge(j.Fever, at) {
		e.emit(Event{Kind: FeverStart, Lane: game.FeverLane, At: at})
	}
	return ev
}

// Release ends a hold in lane. Letting go before the end is a miss, even by
// a single millisecond. at may be earlier than the last advance when the
// release was detected late.
func (e *Engine) Release(lane int, at time.Duration) {
	if e.p.Over() {
		return
	}
	for _, n := range e.notes {
		if n.Lane != lane || n.State != game.Holding {
			continue
		}
		if at < n.TimeEnd() {
			e.miss(n, at)
		} else {
			e.complete(n, at)
		}
	}
}

// ActivateFever is the manual fever edge, it needs a full meter
func (e *Engine) ActivateFever(now time.Duration) bool {
	if e.p.Over() || !e.p.Fever.Activate(now) {
		return false
	}
	e.emit(Event{Kind: FeverStart, Lane: game.FeverLane, At: now})
	return true
}

func (e *Engine) miss(n *game.Note, at time.Duration) {
	n.State = game.Miss
	n.ResolveTime = at
	fever := e.p.Fever.Active
	e.p.RegisterMiss()
	e.emit(Event{Kind: Miss, Lane: n.Lane, Note: n, Tier: game.Missed, Fever: fever, At: at})
}

func (e *Engine) complete(n *game.Note, at time.Duration) {
	fever := e.p.Fever.Active
	points := game.HoldPoints
	if fever {
		points *= 2
	}
	n.State = game.Complete
	n.ResolveTime = at
	e.p.RegisterHit(game.HoldComplete, points, 100)
	e.emit(Event{Kind: Complete, Lane: n.Lane, Note: n, Tier: game.HoldComplete, Points: points, Ratio: 100, Fever: fever, At: at})
	if !fever && e.p.Fever.Charge(game.HoldFever, at) {
		e.emit(Event{Kind: FeverStart, Lane: game.FeverLane, At: at})
	}
}

// Advance applies the passage of time: fever expiry, completed holds and
// notes that scrolled past the miss window. Resolved notes leave play.
func (e *Engine) Advance(now time.Duration) {
	if e.p.Over() {
		return
	}
	if e.p.Fever.Tick(now) {
		e.emit(Event{Kind: FeverEnd, Lane: game.FeverLane, At: now})
	}
	for _, n := range e.notes {
		if e.p.Over() {
			break
		}
		switch n.State {
		case game.Holding:
			if now >= n.TimeEnd()+e.HoldGrace {
				e.complete(n, n.TimeEnd())
			}
		case game.Unjudged:
			if n.Time-now < -game.MissWindow {
				e.miss(n, now)
			}
		}
	}
	live := e.notes[:0]
	for _, n := range e.notes {
		if !n.Resolved() {
			live = append(live, n)
		}
	}
	clear(e.notes[len(live):])
	e.notes = live
}
