package media

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
)

// memory is an in memory song of silence
type memory struct {
	len, pos int
}

func (m *memory) Stream(samples [][2]float64) (int, bool) {
	n := min(len(samples), m.len-m.pos)
	for i := 0; i < n; i++ {
		samples[i] = [2]float64{}
	}
	m.pos += n
	return n, n > 0
}

func (m *memory) Err() error { return nil }
func (m *memory) Len() int { return m.len }
func (m *memory) Position() int { return m.pos }
func (m *memory) Close() error { return nil }

func (m *memory) Seek(p int) error {
	if p < 0 || p >= m.len {
		return errors.New("out of range")
	}
	m.pos = p
	return nil
}

func TestPlayer(t *testing.T) {
	format := beep.Format{SampleRate: 1000, NumChannels: 2, Precision: 2}
	p := newPlayer(&memory{len: 10000}, format)
	if p.Length() != 10*time.Second {
		t.Errorf("unexpected length %v", p.Length())
	}
	if !p.Paused() {
		t.Errorf("player does not start paused")
	}
	p.Play()
	if p.Paused() {
		t.Errorf("player did not play")
	}

	if err := p.Seek(2500 * time.Millisecond); nil != err {
		t.Fatal(err)
	}
	if p.Position() != 2500*time.Millisecond {
		t.Errorf("unexpected position %v", p.Position())
	}
	if err := p.Seek(time.Minute); nil != err {
		t.Fatal(err)
	}
	if p.Position() != 9999*time.Millisecond {
		t.Errorf("seek past the end not clamped: %v", p.Position())
	}
}

func TestGain(t *testing.T) {
	if _, silent := gain(0); !silent {
		t.Errorf("zero volume is not silent")
	}
	if v, silent := gain(1); silent || v != 0 {
		t.Errorf("full volume is %v", v)
	}
	if v, _ := gain(0.5); v != -1 {
		t.Errorf("half volume is %v", v)
	}
}

func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for _, v := range buf[:n] {
			peak = math.Max(peak, math.Abs(v[0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestSounds(t *testing.T) {
	rate := beep.SampleRate(44100)
	n, peak := drain(HitSound(rate))
	if n != rate.N(100*time.Millisecond) {
		t.Errorf("hit lasted %v samples", n)
	}
	if peak == 0 || peak > 1 {
		t.Errorf("unexpected hit peak %v", peak)
	}

	n, peak = drain(FeverSound(rate))
	if n != rate.N(850*time.Millisecond) {
		t.Errorf("fever lasted %v samples", n)
	}
	if peak == 0 || peak > 1 {
		t.Errorf("unexpected fever peak %v", peak)
	}
}

func TestOpenUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.flac")
	if err := os.WriteFile(path, nil, 0o644); nil != err {
		t.Fatal(err)
	}
	if _, err := Open(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected unsupported format, got %v", err)
	}
}
