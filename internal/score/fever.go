package score

import (
	"time"
)

const (
	FeverMax       = 100
	FeverDuration  = 7 * time.Second
	FeverMissDrain = 5
)

// Fever is the meter and the active window of the scoring multiplier.
// While active the meter is spent, and the countdown to End is shown instead.
type Fever struct {
	Meter  int
	Active bool
	End    time.Duration
	Auto   bool // Activate the moment the meter fills
}

// Ready is true when a manual activation would succeed
func (f *Fever) Ready() bool {
	return !f.Active && f.Meter >= FeverMax
}

// Charge fills the meter, it does nothing while fever is active.
// It reports whether the charge triggered an automatic activation.
func (f *Fever) Charge(amount int, now time.Duration) bool {
	if f.Active {
		return false
	}
	f.Meter = min(FeverMax, f.Meter+amount)
	if f.Auto && f.Meter >= FeverMax {
		return f.Activate(now)
	}
	return false
}

// Drain empties the meter by amount, floored at zero
func (f *Fever) Drain(amount int) {
	if f.Active {
		return
	}
	f.Meter = max(0, f.Meter-amount)
}

func (f *Fever) Activate(now time.Duration) bool {
	if !f.Ready() {
		return false
	}
	f.Active = true
	f.End = now + FeverDuration
	return true
}

// Tick expires an active fever, reporting whether it just ended
func (f *Fever) Tick(now time.Duration) bool {
	if !f.Active || now < f.End {
		return false
	}
	f.Active = false
	f.Meter = 0
	return true
}

// Remaining is the fever countdown, zero when inactive
func (f *Fever) Remaining(now time.Duration) time.Duration {
	if !f.Active || now >= f.End {
		return 0
	}
	return f.End - now
}

// Fill is the displayed bar fraction: the countdown while active, else the meter
func (f *Fever) Fill(now time.Duration) float64 {
	if f.Active {
		return float64(f.Remaining(now)) / float64(FeverDuration)
	}
	return float64(f.Meter) / FeverMax
}
