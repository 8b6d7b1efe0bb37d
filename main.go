package main

import (
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"git.lost.host/meutraa/djmix/internal/catalog"
	"git.lost.host/meutraa/djmix/internal/config"
	"git.lost.host/meutraa/djmix/internal/game"
	"git.lost.host/meutraa/djmix/internal/input"
	"git.lost.host/meutraa/djmix/internal/media"
	"git.lost.host/meutraa/djmix/internal/parser"
	"git.lost.host/meutraa/djmix/internal/render"
	"git.lost.host/meutraa/djmix/internal/score"
	"git.lost.host/meutraa/djmix/internal/session"
	"git.lost.host/meutraa/djmix/internal/theme"
)

var (
	app      = kingpin.New("djmix", "Four lane rhythm game for the terminal")
	database = app.Flag("db", "Score and profile database").Default("djmix.db").String()
	logFile  = app.Flag("log", "Log file, the terminal belongs to the game").Default("djmix.log").String()
	debug    = app.Flag("debug", "Log at debug level").Bool()

	play         = app.Command("play", "Play").Default()
	songs        = play.Arg("songs", "Song directory, builtin tracks when empty").ExistingDir()
	frontend     = play.Flag("frontend", "Terminal frontend").Default("tcell").Enum("tcell", "ansi")
	versusMode   = play.Flag("versus", "Start in versus mode").Short('v').Bool()
	seed         = play.Flag("seed", "Note seed for this session, 0 for random").Uint64()
	noteSpeed    = play.Flag("note-speed", "Note travel time for this session").Short('s').Duration()
	autoFever    = play.Flag("auto-fever", "Activate fever as soon as it is full").Bool()
	keyboardDev  = play.Flag("keyboard-device", "evdev keyboard, reports real key releases").String()
	gamepadDev   = play.Flag("gamepad-device", "Linux joystick device").String()
	releaseDelay = play.Flag("release-delay", "Terminal keys sustaining a hold are released after this long without a repeat").Default(input.DefaultReleaseDelay.String()).Duration()
	framePeriod  = play.Flag("frame-period", "Render frame period").Default("4ms").Short('p').Duration()
	mute         = play.Flag("mute", "Do not open the audio device").Bool()
	tile         = play.Flag("tile", "Note tile").Default("default").String()
	effect       = play.Flag("effect", "Hit effect").Default("default").String()
	gear         = play.Flag("gear", "Gear under the hit line").String()
	pet          = play.Flag("pet", "Pet next to the combo").String()

	tracks     = app.Command("tracks", "List the catalog")
	tracksDir  = tracks.Arg("songs", "Song directory").ExistingDir()
	scores     = app.Command("scores", "Show results")
	scoreTrack = scores.Arg("track", "Track id, the leaderboard of every track when empty").String()
	scoreDir   = scores.Flag("songs", "Song directory").ExistingDir()

	settings     = app.Command("settings", "Show or change the saved settings")
	setMaster    = settings.Flag("master-volume", "Master volume [0, 1]").String()
	setMusic     = settings.Flag("music-volume", "Music volume [0, 1]").String()
	setSfx       = settings.Flag("sfx-volume", "Sound effect volume [0, 1]").String()
	setSpeed     = settings.Flag("note-speed", "Note travel time").String()
	setKeys      = settings.Flag("keys", "Four lane keys, left to right").String()
	setFever     = settings.Flag("fever-key", "Fever key, 'space' for the space bar").String()
	setAutoFever = settings.Flag("auto-fever", "Activate fever as soon as it is full").Enum("on", "off")
	setOffset    = settings.Flag("offset", "Added to every input timestamp").String()
	setSeed      = settings.Flag("seed", "Note seed, 0 for random").String()
	setResetAll  = settings.Flag("reset", "Restore the defaults").Bool()
)

func main() {
	app.Version("0.3.0")
	command := kingpin.MustParse(app.Parse(os.Args[1:]))
	if err := run(command); nil != err {
		log.Fatalln(err)
	}
}

func openLog() (*slog.Logger, func(), error) {
	f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if nil != err {
		return nil, nil, fmt.Errorf("unable to open log %v: %w", *logFile, err)
	}
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), func() { f.Close() }, nil
}

func loadTracks(dir string, log *slog.Logger) ([]*game.Track, error) {
	if dir == "" {
		return catalog.Builtin(), nil
	}
	return catalog.Load(dir, &parser.DefaultParser{}, media.Probe, log)
}

func run(command string) error {
	logger, closeLog, err := openLog()
	if nil != err {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	// Ensure our Default implementations are used as interfaces
	var scorer score.Scorer = &score.DefaultScorer{Log: logger}
	if err := scorer.Init(*database); nil != err {
		return err
	}
	defer scorer.Deinit()

	store, err := openStore(scorer, logger)
	if nil != err {
		return err
	}

	switch command {
	case tracks.FullCommand():
		return listTracks(*tracksDir, logger)
	case scores.FullCommand():
		return listScores(scorer, *scoreDir, *scoreTrack, logger)
	case settings.FullCommand():
		return changeSettings(store)
	}
	return playGame(scorer, store, logger)
}

// openStore loads the settings from the profile the scorer keeps
func openStore(scorer score.Scorer, log *slog.Logger) (*config.Store, error) {
	kv, ok := scorer.(config.KV)
	if !ok {
		return nil, fmt.Errorf("unable to load settings: %T keeps no profile", scorer)
	}
	return config.Load(kv, log)
}

func listTracks(dir string, log *slog.Logger) error {
	ts, err := loadTracks(dir, log)
	if nil != err {
		return err
	}
	for _, t := range ts {
		fmt.Println(catalog.Describe(t))
	}
	return nil
}

func listScores(scorer score.Scorer, dir, id string, log *slog.Logger) error {
	credits, err := scorer.Credits()
	if nil != err {
		return err
	}
	fmt.Printf("credits %v\n", catalog.FormatScore(credits))

	ts, err := loadTracks(dir, log)
	if nil != err {
		return err
	}

	if id != "" {
		t, err := catalog.Find(ts, id)
		if nil != err {
			return err
		}
		fmt.Printf("%s (%s)\n", t.Title, t.ID)
		history, err := scorer.Load(t.ID)
		if nil != err {
			return err
		}
		for _, h := range history {
			fmt.Printf("%4d  %s  %12s  %6.2f%%  x%-4d %-9s seed %v  %d inputs\n",
				h.ID, h.Created.Format(time.DateTime), catalog.FormatScore(h.Score), h.Accuracy, h.MaxCombo, h.Outcome, h.Seed, len(h.Inputs))
		}
		return nil
	}

	for _, t := range ts {
		top, err := scorer.Top(t.ID, 5)
		if nil != err {
			return err
		}
		fmt.Printf("%s (%s)\n", t.Title, t.ID)
		for i, s := range top {
			fmt.Printf("  %d. %12s  %6.2f%%  x%-4d %s\n", i+1, catalog.FormatScore(s.Score), s.Accuracy, s.MaxCombo, s.Outcome)
		}
	}
	return nil
}

func parseVolume(name, v string, dst *float64) error {
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if nil != err {
		return fmt.Errorf("unable to parse %v: %w", name, err)
	}
	*dst = f
	return nil
}

func changeSettings(store *config.Store) error {
	var perr error
	err := store.Update(func(s *config.Settings) {
		if *setResetAll {
			*s = config.Default()
		}
		for _, v := range []struct {
			name, value string
			dst         *float64
		}{
			{"master-volume", *setMaster, &s.MasterVolume},
			{"music-volume", *setMusic, &s.MusicVolume},
			{"sfx-volume", *setSfx, &s.SfxVolume},
		} {
			if err := parseVolume(v.name, v.value, v.dst); nil != err {
				perr = err
			}
		}
		for _, d := range []struct {
			name, value string
			dst         *time.Duration
		}{
			{"note-speed", *setSpeed, &s.NoteSpeed},
			{"offset", *setOffset, &s.Offset},
		} {
			if d.value == "" {
				continue
			}
			v, err := time.ParseDuration(d.value)
			if nil != err {
				perr = fmt.Errorf("unable to parse %v: %w", d.name, err)
				continue
			}
			*d.dst = v
		}
		if *setKeys != "" {
			keys := []rune(*setKeys)
			if len(keys) != game.Lanes {
				perr = fmt.Errorf("%w: %v keys given for %v lanes", config.ErrInvalidSettings, len(keys), game.Lanes)
			} else {
				for i, k := range keys {
					s.Keybinds[i] = string(k)
				}
			}
		}
		if *setFever != "" {
			s.FeverKeybind = *setFever
		}
		if *setAutoFever != "" {
			s.AutoFever = *setAutoFever == "on"
		}
		if *setSeed != "" {
			v, err := strconv.ParseUint(*setSeed, 10, 64)
			if nil != err {
				perr = fmt.Errorf("unable to parse seed: %w", err)
			}
			s.Seed = v
		}
	})
	if nil != perr {
		return perr
	}
	if nil != err {
		return err
	}
	data, err := json.MarshalIndent(store.Get(), "", "  ")
	if nil != err {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func playGame(scorer score.Scorer, store *config.Store, logger *slog.Logger) error {
	if err := store.Override(func(s *config.Settings) {
		if 0 != *seed {
			s.Seed = *seed
		}
		if 0 != *noteSpeed {
			s.NoteSpeed = *noteSpeed
		}
		if *autoFever {
			s.AutoFever = true
		}
	}); nil != err {
		return err
	}

	ts, err := loadTracks(*songs, logger)
	if nil != err {
		return err
	}

	var th theme.Theme = &theme.DefaultTheme{Cosmetics: theme.Cosmetics{Tile: *tile, Effect: *effect, Gear: *gear, Pet: *pet}}

	var audio *media.Audio
	if !*mute {
		audio = media.NewAudio(store.Get(), logger)
		if err := audio.Init(); nil != err {
			logger.Warn("playing without sound", "err", err)
			audio = nil
		}
	}

	unifier := input.NewUnifier(input.BindingsFrom(store.Get()))
	store.Subscribe(func(s config.Settings) {
		unifier.SetBindings(input.BindingsFrom(s))
		if nil != audio {
			audio.Apply(s)
		}
	})

	p := &Program{
		Scorer:  scorer,
		Theme:   th,
		Store:   store,
		Audio:   audio,
		Unifier: unifier,
		Tracks:  ts,
		Log:     logger,
		versus:  *versusMode,
	}

	var sources []input.Source
	switch *frontend {
	case "tcell":
		tr := &render.TcellRenderer{ReleaseDelay: *releaseDelay}
		p.Renderer = tr
		if err := p.Renderer.Init(); nil != err {
			return err
		}
		sources = append(sources, tr)
	default:
		p.Renderer = &render.DefaultRenderer{}
		if err := p.Renderer.Init(); nil != err {
			return err
		}
		t, err := input.OpenTerminal(*releaseDelay)
		if nil != err {
			p.Renderer.Deinit()
			return err
		}
		sources = append(sources, t)
	}
	defer func() {
		// Restore the terminal state
		if err := p.Renderer.Deinit(); nil != err {
			logger.Error("unable to restore terminal", "err", err)
		}
	}()

	if *keyboardDev != "" {
		e, err := input.OpenEvdev(*keyboardDev, logger)
		if nil != err {
			logger.Warn("keyboard device unavailable", "err", err)
		} else {
			sources = append(sources, e)
		}
	}
	if *gamepadDev != "" {
		j, err := input.OpenJoystick(*gamepadDev, logger)
		if nil != err {
			logger.Warn("gamepad unavailable", "err", err)
		} else {
			sources = append(sources, j)
		}
	}
	p.Sources = sources
	defer func() {
		for _, s := range p.Sources {
			// The tcell renderer is closed with its Deinit
			if _, ok := s.(render.Renderer); ok {
				continue
			}
			if err := s.Close(); nil != err {
				logger.Warn("unable to close input", "err", err)
			}
		}
	}()

	p.Session = session.New(store, nil, logger)
	p.Session.OnFinish = p.save
	// Terminal releases are seen up to the release delay late
	p.Session.HoldGrace = *releaseDelay
	p.Unifier.Sustain = p.Session.Holding
	p.refresh()

	p.Renderer.RenderLoop(*framePeriod, p.Frame)
	if nil != audio {
		audio.Unload()
	}
	return nil
}
