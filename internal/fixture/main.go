// Package fixture holds shared test helpers: a hand driven clock, tracks and
// a StepMania file.
package fixture

import (
	"time"

	"git.lost.host/meutraa/djmix/internal/game"
)

// Epoch is the wall time every ManualClock starts at
var Epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type ManualClock struct {
	t time.Time
}

func NewManualClock() *ManualClock {
	return &ManualClock{t: Epoch}
}

func (m *ManualClock) Now() time.Time {
	return m.t
}

func (m *ManualClock) Advance(d time.Duration) time.Time {
	m.t = m.t.Add(d)
	return m.t
}

// Set moves the clock to Epoch plus d
func (m *ManualClock) Set(d time.Duration) time.Time {
	m.t = Epoch.Add(d)
	return m.t
}

// Track120 is a ten second song at 120 bpm, a 500ms beat interval
func Track120() *game.Track {
	return &game.Track{
		ID:         "fixture-120",
		Title:      "FIXTURE",
		Artist:     "Test",
		Difficulty: game.Normal,
		BPM:        120,
		Duration:   10 * time.Second,
	}
}

// FakeMedia records seeks and reports a position set by the test
type FakeMedia struct {
	Pos     time.Duration
	Seeks   []time.Duration
	Playing bool
}

func (f *FakeMedia) Position() time.Duration { return f.Pos }

func (f *FakeMedia) Seek(d time.Duration) error {
	f.Seeks = append(f.Seeks, d)
	f.Pos = d
	return nil
}

func (f *FakeMedia) Play()  { f.Playing = true }
func (f *FakeMedia) Pause() { f.Playing = false }
