package chart

import (
	"testing"
	"time"

	"git.lost.host/meutraa/djmix/internal/fixture"
	"git.lost.host/meutraa/djmix/internal/game"
)

func spawnAll(s *Scheduler, end, step time.Duration) []*game.Note {
	notes := []*game.Note{}
	for now := time.Duration(0); now <= end; now += step {
		if n := s.Advance(now); nil != n {
			notes = append(notes, n)
		}
	}
	return notes
}

func TestSchedulerCadence(t *testing.T) {
	s := NewScheduler(fixture.Track120(), DefaultLead, NewSource(1))
	s.HoldChance = 0
	notes := spawnAll(s, 10*time.Second, time.Millisecond)

	if len(notes) != 14 {
		t.Fatalf("expected 14 notes, got %v", len(notes))
	}
	for i, n := range notes {
		want := time.Duration(i) * 500 * time.Millisecond
		if n.Spawn != want {
			t.Errorf("note %v spawned at %v, want %v", i, n.Spawn, want)
		}
		if n.Time != want+DefaultLead {
			t.Errorf("note %v targets %v", i, n.Time)
		}
		if n.Lane < 0 || n.Lane >= game.Lanes || n.Kind != game.Tap || n.Hold != 0 {
			t.Errorf("bad note %+v", n)
		}
		if i > 0 && n.ID <= notes[i-1].ID {
			t.Errorf("ids not increasing at %v", i)
		}
	}
}

func TestSchedulerHoldSkipsBeats(t *testing.T) {
	s := NewScheduler(fixture.Track120(), DefaultLead, NewSource(1))
	s.HoldChance = 1
	notes := spawnAll(s, 10*time.Second, time.Millisecond)

	// Each hold is min(800, 3*500) long, pushing the next spawn 1300ms on
	want := []time.Duration{0, 1300, 2600, 3900, 5200, 6500}
	if len(notes) != len(want) {
		t.Fatalf("expected %v holds, got %v", len(want), len(notes))
	}
	for i, n := range notes {
		if n.Spawn != want[i]*time.Millisecond || n.Kind != game.Hold || n.Hold != MaxHold {
			t.Errorf("hold %v: %+v", i, n)
		}
	}
}

func TestSchedulerShortHold(t *testing.T) {
	track := fixture.Track120()
	track.BPM = 600 // 100ms beats, so three beats are shorter than the cap
	s := NewScheduler(track, DefaultLead, NewSource(1))
	s.HoldChance = 1
	n := s.Advance(0)
	if n.Hold != 300*time.Millisecond {
		t.Errorf("expected a 300ms hold, got %v", n.Hold)
	}
}

func TestSchedulerStall(t *testing.T) {
	s := NewScheduler(fixture.Track120(), DefaultLead, NewSource(1))
	s.HoldChance = 0
	if s.Advance(0) == nil {
		t.Fatal("expected a note at zero")
	}
	// A 1.7s frame spawns once and then waits for the next beat on the grid
	if s.Advance(1700*time.Millisecond) == nil {
		t.Fatal("expected a note after the stall")
	}
	if s.Advance(1800*time.Millisecond) != nil {
		t.Fatal("stall should not burst missed beats")
	}
	if n := s.Advance(2000 * time.Millisecond); nil == n {
		t.Fatal("expected the note on the next beat")
	}
}

func TestSchedulerSeeded(t *testing.T) {
	a := spawnAll(NewScheduler(fixture.Track120(), DefaultLead, NewSource(42)), 7*time.Second, 10*time.Millisecond)
	b := spawnAll(NewScheduler(fixture.Track120(), DefaultLead, NewSource(42)), 7*time.Second, 10*time.Millisecond)
	if len(a) != len(b) {
		t.Fatalf("seeded runs differ in length %v %v", len(a), len(b))
	}
	for i := range a {
		if a[i].Lane != b[i].Lane || a[i].Kind != b[i].Kind || a[i].Time != b[i].Time {
			t.Fatalf("seeded runs differ at %v", i)
		}
	}
}

func TestSchedulerLead(t *testing.T) {
	s := NewScheduler(fixture.Track120(), DefaultLead, NewSource(3))
	s.SetLead(800 * time.Millisecond)
	if n := s.Advance(0); n.Time != 800*time.Millisecond {
		t.Errorf("lead not applied: %v", n.Time)
	}
}
