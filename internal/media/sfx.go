package media

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

type shape uint8

const (
	triangle shape = iota
	square
)

// tone is an oscillator sweeping exponentially from one frequency to another,
// with a linear attack and an exponential decay to silence
type tone struct {
	sr     beep.SampleRate
	shape  shape
	from   float64
	to     float64
	peak   float64
	attack int
	total  int
	pos    int
	phase  float64
}

func newTone(sr beep.SampleRate, s shape, from, to, peak float64, attack, length time.Duration) *tone {
	return &tone{
		sr:     sr,
		shape:  s,
		from:   from,
		to:     to,
		peak:   peak,
		attack: sr.N(attack),
		total:  sr.N(length),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) && t.pos < t.total {
		progress := float64(t.pos) / float64(t.total)
		freq := t.from * math.Pow(t.to/t.from, progress)
		t.phase += freq / float64(t.sr)
		t.phase -= math.Floor(t.phase)

		var v float64
		switch t.shape {
		case triangle:
			v = 4*math.Abs(t.phase-0.5) - 1
		case square:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		}

		amp := t.peak * math.Pow(0.001/t.peak, progress)
		if t.pos < t.attack {
			amp *= float64(t.pos) / float64(t.attack)
		}
		samples[n][0] = v * amp
		samples[n][1] = v * amp
		t.pos++
		n++
	}
	return n, n > 0
}

func (t *tone) Err() error {
	return nil
}

// HitSound is a 100ms triangle falling from 400Hz to 50Hz
func HitSound(sr beep.SampleRate) beep.Streamer {
	return newTone(sr, triangle, 400, 50, 0.6, 0, 100*time.Millisecond)
}

var feverSteps = []float64{300, 400, 500, 600, 800, 1000, 1200, 1600}

// FeverSound is a square arpeggio, one note every 50ms each ringing for 500ms
func FeverSound(sr beep.SampleRate) beep.Streamer {
	m := &beep.Mixer{}
	for i, f := range feverSteps {
		delay := time.Duration(i) * 50 * time.Millisecond
		m.Add(beep.Seq(
			beep.Silence(sr.N(delay)),
			newTone(sr, square, f, f, 0.1, 20*time.Millisecond, 500*time.Millisecond),
		))
	}
	return beep.Take(sr.N(time.Duration(len(feverSteps)-1)*50*time.Millisecond+500*time.Millisecond), m)
}
