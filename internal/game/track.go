package game

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTrack = errors.New("invalid track")

// Track is a song descriptor from the catalog
type Track struct {
	ID         string
	Title      string
	Artist     string
	Difficulty Difficulty
	BPM        float64
	Duration   time.Duration
	Cover      string
	Media      string // Optional audio file, empty when the song has no media
}

// BeatInterval is 60000/bpm milliseconds
func (t *Track) BeatInterval() time.Duration {
	return time.Duration(float64(time.Minute) / t.BPM)
}

func (t *Track) Validate() error {
	if t.BPM <= 0 {
		return fmt.Errorf("%w: bpm %v must be positive", ErrInvalidTrack, t.BPM)
	}
	if t.Duration <= 0 {
		return fmt.Errorf("%w: duration %v must be positive", ErrInvalidTrack, t.Duration)
	}
	return nil
}
