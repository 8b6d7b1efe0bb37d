package score

import (
	"time"

	"git.lost.host/meutraa/djmix/internal/game"
)

type Scorer interface {
	Init(path string) error
	Deinit()

	// Save the result of this performance, and credit the player
	Save(s *Submission) error

	// Load up previous results for the track
	Load(trackID string) ([]History, error)

	// Top is the leaderboard for a track, best score first
	Top(trackID string, n int) ([]Submission, error)

	Credits() (int64, error)
}

type Outcome string

const (
	OutcomeResult   Outcome = "RESULT"
	OutcomeGameOver Outcome = "GAME_OVER"
)

// Submission is what a finished run hands to the leaderboard
type Submission struct {
	TrackID    string
	Title      string
	Difficulty game.Difficulty
	Score      int64
	Accuracy   float64
	MaxCombo   int
	Combo      int // Combo at the last judgement
	Outcome    Outcome
	Seed       uint64
	Inputs     []game.Input
	Created    time.Time
}

// Credits awarded for a submission
func (s *Submission) Credits() int64 {
	if s.Score <= 0 {
		return 0
	}
	return s.Score / 100
}

type History struct {
	Submission
	ID int64
}

// Submit builds the submission for a finished run
func (p *Progression) Submit(track *game.Track, outcome Outcome) Submission {
	return Submission{
		TrackID:    track.ID,
		Title:      track.Title,
		Difficulty: track.Difficulty,
		Score:      p.Score,
		Accuracy:   p.Accuracy(),
		MaxCombo:   p.MaxCombo,
		Combo:      p.Combo,
		Outcome:    outcome,
	}
}
