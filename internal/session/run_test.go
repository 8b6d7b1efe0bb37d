package session

import (
	"testing"
	"time"

	"git.lost.host/meutraa/djmix/internal/fixture"
	"git.lost.host/meutraa/djmix/internal/game"
	"git.lost.host/meutraa/djmix/internal/score"
)

const frame = 10 * time.Millisecond

// perfectInputs presses every note that reached the hit line since the last step
func perfectInputs(r *Run, now time.Duration) []game.Input {
	var ins []game.Input
	for _, n := range r.Engine.Notes() {
		if n.State == game.Unjudged && n.Time <= now {
			ins = append(ins, game.Input{Lane: n.Lane, Time: n.Time})
		}
	}
	return ins
}

func TestRunPerfect(t *testing.T) {
	r := NewRun(fixture.Track120(), 1500*time.Millisecond, false, 42)
	var outcome score.Outcome
	done := false
	for now := time.Duration(0); !done; now += frame {
		outcome, done = r.Step(now, perfectInputs(r, now))
		if now > time.Minute {
			t.Fatal("run never finished")
		}
	}
	p := r.Progression()
	if outcome != score.OutcomeResult {
		t.Fatalf("expected a result, got %v", outcome)
	}
	if r.Now() <= r.Track.Duration {
		t.Errorf("finished at %v, before the end of the song", r.Now())
	}
	if p.Judged() == 0 || p.Counts[game.Missed] != 0 {
		t.Fatalf("unexpected judgements %v", p.Counts)
	}
	if p.MaxCombo != p.Judged() || p.Accuracy() != 100 || p.Health != score.MaxHealth {
		t.Errorf("unexpected progression combo %v accuracy %v health %v", p.MaxCombo, p.Accuracy(), p.Health)
	}
	if len(r.Inputs) != p.Counts[game.Perfect]+p.Counts[game.HoldComplete] {
		t.Errorf("recorded %v inputs for %v notes", len(r.Inputs), p.Judged())
	}
	if _, again := r.Step(r.Now()+frame, nil); again {
		t.Errorf("a finished run finished again")
	}
}

func TestRunGameOver(t *testing.T) {
	track := fixture.Track120()
	track.Duration = time.Minute
	r := NewRun(track, 1500*time.Millisecond, false, 7)
	var outcome score.Outcome
	done := false
	now := time.Duration(0)
	for ; !done; now += 100 * time.Millisecond {
		outcome, done = r.Step(now, nil)
	}
	p := r.Progression()
	if outcome != score.OutcomeGameOver || !p.Over() || p.Health != 0 {
		t.Fatalf("expected game over, got %v with health %v", outcome, p.Health)
	}
	if p.Counts[game.Missed] != score.MaxHealth/score.MissDamage {
		t.Errorf("misses applied after game over: %v", p.Counts[game.Missed])
	}
	if now > 30*time.Second {
		t.Errorf("game over too late at %v", now)
	}
}

func TestRunSeeded(t *testing.T) {
	a := NewRun(fixture.Track120(), 1500*time.Millisecond, false, 9)
	b := NewRun(fixture.Track120(), 1500*time.Millisecond, false, 9)
	for now := time.Duration(0); now < 3*time.Second; now += frame {
		a.Step(now, nil)
		b.Step(now, nil)
	}
	na, nb := a.Engine.Notes(), b.Engine.Notes()
	if len(na) == 0 || len(na) != len(nb) {
		t.Fatalf("note counts differ %v %v", len(na), len(nb))
	}
	for i := range na {
		if na[i].Lane != nb[i].Lane || na[i].Kind != nb[i].Kind || na[i].Time != nb[i].Time {
			t.Errorf("note %v differs", i)
		}
	}

	c := NewRun(fixture.Track120(), 1500*time.Millisecond, false, 0)
	if c.Seed == 0 {
		t.Errorf("unseeded run has no seed to report")
	}
}

func TestRunInputOrder(t *testing.T) {
	r := NewRun(fixture.Track120(), 1500*time.Millisecond, false, 3)
	r.Scheduler.HoldChance = 0
	r.Step(0, nil)
	n := r.Engine.Notes()[0]

	// A late arriving input in the same frame is still judged at its own time
	other := (n.Lane + 1) % game.Lanes
	r.Step(n.Time+50*time.Millisecond, []game.Input{
		{Lane: other, Time: n.Time + 40*time.Millisecond},
		{Lane: n.Lane, Time: n.Time},
	})
	if n.State != game.Hit || n.HitTime != n.Time {
		t.Fatalf("note judged %v at %v", n.State, n.HitTime)
	}
	if r.Inputs[0].Lane != n.Lane {
		t.Errorf("inputs not recorded in time order")
	}
}

func TestRunLateRelease(t *testing.T) {
	r := NewRun(fixture.Track120(), 1500*time.Millisecond, false, 5)
	r.Scheduler.HoldChance = 1
	r.Engine.HoldGrace = 600 * time.Millisecond
	r.Step(0, nil)
	n := r.Engine.Notes()[0]
	r.Step(n.Time, []game.Input{{Lane: n.Lane, Time: n.Time}})
	if n.State != game.Holding {
		t.Fatalf("hold not started: %v", n.State)
	}

	// The release comes in a frame after the end of the hold
	end := n.TimeEnd()
	r.Step(end+300*time.Millisecond, nil)
	if n.State != game.Holding {
		t.Fatalf("hold resolved inside the grace: %v", n.State)
	}
	r.Step(end+310*time.Millisecond, []game.Input{{Lane: n.Lane, Release: true, Time: end - 100*time.Millisecond}})
	if n.State != game.Miss || n.ResolveTime != end-100*time.Millisecond {
		t.Errorf("early release judged %v at %v", n.State, n.ResolveTime)
	}
}
