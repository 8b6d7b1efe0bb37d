package game

import "time"

// Input is a recorded edge in song time, kept with a submission
type Input struct {
	Lane    int // -1 for the fever control
	Release bool
	Time    time.Duration
}

const FeverLane = -1
