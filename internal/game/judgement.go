package game

import (
	"time"
)

type Tier uint8

const (
	Perfect Tier = iota
	Great
	Nice
	Good
	HoldComplete
	Missed
	TierCount
)

var tierNames = [...]string{"PERFECT", "GREAT", "NICE", "GOOD", "COMPLETE", "MISS"}

func (t Tier) String() string {
	if t < TierCount {
		return tierNames[t]
	}
	return "UNKNOWN"
}

type Judgement struct {
	Tier   Tier
	Time   time.Duration // Upper bound (exclusive) of the adjusted error for this tier
	Points int
	Fever  int // Fever meter gained when judged outside of fever
}

const (
	// HitWindow is the largest error that will match a note at all
	HitWindow = 150 * time.Millisecond
	// MissWindow is how far past the hit line an unjudged head may travel
	MissWindow = 200 * time.Millisecond
	// FeverForgiveness is removed from the error while fever is active
	FeverForgiveness = 40 * time.Millisecond
	// FeverRatioBoost is added to the accuracy ratio while fever is active
	FeverRatioBoost = 20.0

	HoldPoints = 300
	HoldFever  = 10
)

// Judgements are checked in order, the last entry catches everything inside HitWindow
var Judgements = [...]Judgement{
	{Tier: Perfect, Time: 40 * time.Millisecond, Points: 300, Fever: 5},
	{Tier: Great, Time: 80 * time.Millisecond, Points: 150, Fever: 3},
	{Tier: Nice, Time: 120 * time.Millisecond, Points: 100, Fever: 1},
	{Tier: Good, Time: HitWindow, Points: 50, Fever: 0},
}

// Judge classifies an absolute timing error, with the fever forgiveness applied if active
func Judge(d time.Duration, fever bool) Judgement {
	if fever {
		d -= FeverForgiveness
		if d < 0 {
			d = 0
		}
	}
	for i := 0; i < len(Judgements)-1; i++ {
		if d < Judgements[i].Time {
			return Judgements[i]
		}
	}
	return Judgements[len(Judgements)-1]
}

// Ratio is the accuracy percentage for an absolute timing error
func Ratio(d time.Duration, fever bool) float64 {
	r := (1 - float64(d)/float64(HitWindow)) * 100
	if r < 0 {
		r = 0
	}
	if fever {
		r += FeverRatioBoost
		if r > 100 {
			r = 100
		}
	}
	return r
}
