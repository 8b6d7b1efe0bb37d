package game

import (
	"time"
)

type Measure struct {
	Denom int           // 1 on the first beat of a bar, 4 on other beats
	Time  time.Duration // The time the beat crosses the hit line
}

// Measures returns the beat grid lines in [from, to)
func Measures(interval, from, to time.Duration) []Measure {
	if interval <= 0 || to <= from {
		return nil
	}
	first := from / interval
	if from > 0 && from%interval != 0 {
		first++
	}
	if from < 0 {
		first = 0
	}
	measures := []Measure{}
	for i := first; i*interval < to; i++ {
		denom := 4
		if i%4 == 0 {
			denom = 1
		}
		measures = append(measures, Measure{Denom: denom, Time: i * interval})
	}
	return measures
}
