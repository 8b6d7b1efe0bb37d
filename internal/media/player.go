// Package media plays the song and the sound effects through beep.
package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if nil != err {
		return nil, beep.Format{}, err
	}
	var s beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		s, format, err = mp3.Decode(f)
	case ".ogg":
		s, format, err = vorbis.Decode(f)
	case ".wav":
		s, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, format, fmt.Errorf("%w: %v", ErrUnsupportedFormat, path)
	}
	if nil != err {
		f.Close()
		return nil, format, fmt.Errorf("unable to decode %v: %w", path, err)
	}
	return s, format, nil
}

// Probe returns the length of an audio file
func Probe(path string) (time.Duration, error) {
	s, format, err := decode(path)
	if nil != err {
		return 0, err
	}
	defer s.Close()
	return format.SampleRate.D(s.Len()), nil
}

// Player is a decoded song. It starts paused, positions are in song time
// whatever the output sample rate.
type Player struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
}

func Open(path string) (*Player, error) {
	s, format, err := decode(path)
	if nil != err {
		return nil, err
	}
	return newPlayer(s, format), nil
}

func newPlayer(s beep.StreamSeekCloser, format beep.Format) *Player {
	ctrl := &beep.Ctrl{Streamer: s, Paused: true}
	return &Player{
		streamer: s,
		format:   format,
		ctrl:     ctrl,
		volume:   &effects.Volume{Streamer: ctrl, Base: 2},
	}
}

// output resamples the player to the speaker rate
func (p *Player) output(rate beep.SampleRate) beep.Streamer {
	if rate == p.format.SampleRate {
		return p.volume
	}
	return beep.Resample(4, p.format.SampleRate, rate, p.volume)
}

func (p *Player) Length() time.Duration {
	return p.format.SampleRate.D(p.streamer.Len())
}

func (p *Player) Position() time.Duration {
	speaker.Lock()
	defer speaker.Unlock()
	return p.format.SampleRate.D(p.streamer.Position())
}

// Seek clamps d to the song
func (p *Player) Seek(d time.Duration) error {
	pos := p.format.SampleRate.N(d)
	pos = max(0, min(pos, p.streamer.Len()-1))
	speaker.Lock()
	defer speaker.Unlock()
	if err := p.streamer.Seek(pos); nil != err {
		return fmt.Errorf("unable to seek to %v: %w", d, err)
	}
	return nil
}

func (p *Player) Play() {
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
}

func (p *Player) Pause() {
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
}

func (p *Player) Paused() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return p.ctrl.Paused
}

func (p *Player) setGain(v float64) {
	p.volume.Volume, p.volume.Silent = gain(v)
}

func (p *Player) Close() error {
	return p.streamer.Close()
}
