package media

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"

	"git.lost.host/meutraa/djmix/internal/config"
)

const SampleRate = beep.SampleRate(44100)

// gain converts a linear volume to the base 2 exponent of effects.Volume
func gain(v float64) (float64, bool) {
	if v <= 0 {
		return 0, true
	}
	return math.Log2(v), false
}

// Audio is the output graph: the song, and a bus of sound effects with its
// own volume. Everything added to it is guarded by the speaker lock.
type Audio struct {
	root   *beep.Mixer
	sfx    *beep.Mixer
	sfxVol *effects.Volume
	music  *Player

	settings config.Settings
	log      *slog.Logger
}

func NewAudio(settings config.Settings, log *slog.Logger) *Audio {
	sfx := &beep.Mixer{}
	a := &Audio{
		root:     &beep.Mixer{},
		sfx:      sfx,
		sfxVol:   &effects.Volume{Streamer: sfx, Base: 2},
		settings: settings,
		log:      log,
	}
	a.root.Add(a.sfxVol)
	a.Apply(settings)
	return a
}

// Init opens the audio device
func (a *Audio) Init() error {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/60)); nil != err {
		return fmt.Errorf("unable to open audio device: %w", err)
	}
	speaker.Play(a.root)
	return nil
}

// Load replaces the song with the file at path
func (a *Audio) Load(path string) (*Player, error) {
	p, err := Open(path)
	if nil != err {
		return nil, err
	}
	a.Unload()
	p.setGain(a.settings.MasterVolume * a.settings.MusicVolume)
	speaker.Lock()
	a.music = p
	a.root.Add(p.output(SampleRate))
	speaker.Unlock()
	a.log.Info("song loaded", "path", path, "length", p.Length())
	return p, nil
}

// Unload stops the current song, its streamer drains out of the mixer
func (a *Audio) Unload() {
	if nil == a.music {
		return
	}
	a.music.Pause()
	if err := a.music.Close(); nil != err {
		a.log.Warn("unable to close song", "err", err)
	}
	speaker.Lock()
	a.root.Clear()
	a.root.Add(a.sfxVol)
	a.music = nil
	speaker.Unlock()
}

// Apply takes the volumes of changed settings
func (a *Audio) Apply(s config.Settings) {
	speaker.Lock()
	defer speaker.Unlock()
	a.settings = s
	a.sfxVol.Volume, a.sfxVol.Silent = gain(s.MasterVolume * s.SfxVolume)
	if nil != a.music {
		a.music.setGain(s.MasterVolume * s.MusicVolume)
	}
}

func (a *Audio) play(s beep.Streamer) {
	speaker.Lock()
	a.sfx.Add(s)
	speaker.Unlock()
}

// Hit is the judgement blip
func (a *Audio) Hit() {
	a.play(HitSound(SampleRate))
}

// Fever is the rising arpeggio of a fever activation
func (a *Audio) Fever() {
	a.play(FeverSound(SampleRate))
}
