// Package session drives the game mode lifecycle around a run: selecting a
// track, matchmaking, playing, pausing, and reporting the result.
package session

import (
	"fmt"
	"log/slog"
	"time"

	"git.lost.host/meutraa/djmix/internal/chart"
	"git.lost.host/meutraa/djmix/internal/clock"
	"git.lost.host/meutraa/djmix/internal/config"
	"git.lost.host/meutraa/djmix/internal/game"
	"git.lost.host/meutraa/djmix/internal/input"
	"git.lost.host/meutraa/djmix/internal/judge"
	"git.lost.host/meutraa/djmix/internal/score"
	"git.lost.host/meutraa/djmix/internal/versus"
)

// Frame is everything the presentation needs to draw one frame
type Frame struct {
	Mode       Mode
	Track      *game.Track
	Now        time.Duration
	Lead       time.Duration
	Notes      []*game.Note
	Events     []judge.Event
	Progress   *score.Progression
	Opponent   versus.Opponent
	Countdown  time.Duration // Matchmaking time left
	Submission *score.Submission
}

// Session is not safe for concurrent use, it belongs to the frame loop
type Session struct {
	// OnFinish receives the submission when a run ends
	OnFinish func(score.Submission)
	// HoldGrace is given to the engine of every run
	HoldGrace time.Duration

	mode      Mode
	settings  config.Settings
	clock     *clock.Clock
	transport *clock.Transport
	log       *slog.Logger

	track      *game.Track
	media      clock.Media
	versus     bool
	matchmaker *versus.Matchmaker
	opponent   versus.Opponent
	run        *Run
	submission *score.Submission
}

// New creates a session in the Start mode. now is the real time source,
// nil for time.Now.
func New(store *config.Store, now func() time.Time, log *slog.Logger) *Session {
	if nil == log {
		log = slog.Default()
	}
	c := clock.New(now)
	s := &Session{
		mode:      Start,
		settings:  store.Get(),
		clock:     c,
		transport: clock.NewTransport(c, nil, log),
		log:       log,
	}
	store.Subscribe(s.apply)
	return s
}

// apply takes changed settings, a running scheduler only uses the new
// note speed for notes spawned afterwards
func (s *Session) apply(settings config.Settings) {
	s.settings = settings
	if nil == s.run {
		return
	}
	s.run.Scheduler.SetLead(settings.NoteSpeed)
	s.run.Progression().Fever.Auto = settings.AutoFever
}

func (s *Session) Mode() Mode {
	return s.mode
}

func (s *Session) Run() *Run {
	return s.run
}

// Holding reports whether lane has a hold in progress in a running game
func (s *Session) Holding(lane int) bool {
	return s.mode == Playing && nil != s.run && s.run.Engine.Holding(lane)
}

func (s *Session) Clock() *clock.Clock {
	return s.clock
}

func (s *Session) Track() *game.Track {
	return s.track
}

func (s *Session) Opponent() versus.Opponent {
	return s.opponent
}

func (s *Session) set(to Mode) error {
	if err := checkTransition(s.mode, to); nil != err {
		return err
	}
	s.log.Debug("session mode", "from", s.mode, "to", to)
	s.mode = to
	return nil
}

// Open leaves the start screen
func (s *Session) Open() error {
	return s.set(SongSelect)
}

// Select picks the track to play. media may be nil for a track without
// audio. In versus mode matchmaking starts straight away.
func (s *Session) Select(track *game.Track, media clock.Media, vs bool) error {
	if err := checkTransition(s.mode, Ready); nil != err {
		return err
	}
	if err := track.Validate(); nil != err {
		return err
	}
	if err := s.settings.Validate(); nil != err {
		return err
	}
	s.track = track
	s.media = media
	s.transport = clock.NewTransport(s.clock, media, s.log)
	s.versus = vs
	s.opponent = nil
	s.submission = nil
	if vs {
		s.matchmaker = versus.NewMatchmaker(s.clock.Wall(), chart.NewSource(s.settings.Seed))
		return s.set(Connecting)
	}
	return s.set(Ready)
}

// Begin starts the run from Ready
func (s *Session) Begin() error {
	if s.mode != Ready {
		return fmt.Errorf("%w: begin from %v", ErrInvalidTransition, s.mode)
	}
	s.start()
	return s.set(Playing)
}

func (s *Session) start() {
	s.run = NewRun(s.track, s.settings.NoteSpeed, s.settings.AutoFever, s.settings.Seed)
	s.run.Engine.HoldGrace = s.HoldGrace
	s.submission = nil
	if nil != s.opponent {
		s.opponent.Reset()
	}
	s.transport.Start()
	s.log.Info("run started", "track", s.track.ID, "seed", s.run.Seed, "versus", s.versus)
}

func (s *Session) Pause() error {
	if err := s.set(Paused); nil != err {
		return err
	}
	s.transport.Pause()
	return nil
}

func (s *Session) Resume() error {
	if s.mode != Paused {
		return fmt.Errorf("%w: resume from %v", ErrInvalidTransition, s.mode)
	}
	if err := s.set(Playing); nil != err {
		return err
	}
	s.transport.Resume()
	return nil
}

// Retry throws the run away and starts the same track over
func (s *Session) Retry() error {
	switch s.mode {
	case Paused, Result, GameOver:
	default:
		return fmt.Errorf("%w: retry from %v", ErrInvalidTransition, s.mode)
	}
	s.transport.Stop()
	s.start()
	s.mode = Playing
	return nil
}

// Exit returns to song select, abandoning a paused run
func (s *Session) Exit() error {
	if err := s.set(SongSelect); nil != err {
		return err
	}
	s.transport.Stop()
	s.run = nil
	s.matchmaker = nil
	return nil
}

// Step advances the session by one frame. Edges are converted to song time
// using their own timestamps, then offset by the configured input offset.
func (s *Session) Step(edges []input.Edge) Frame {
	switch s.mode {
	case Connecting:
		if o := s.matchmaker.Poll(s.clock.Wall()); nil != o {
			s.opponent = o
			s.log.Info("opponent found", "name", o.Name(), "human", o.Human())
			s.set(Ready)
		}
	case Playing:
		s.play(edges)
	}
	return s.frame()
}

func (s *Session) play(edges []input.Edge) {
	s.transport.Sync()
	now := s.clock.Now()

	inputs := make([]game.Input, 0, len(edges))
	for _, e := range edges {
		at := s.clock.At(e.At) + s.settings.Offset
		inputs = append(inputs, game.Input{
			Lane:    e.Lane,
			Release: e.Action == input.Release,
			Time:    min(max(at, 0), now),
		})
	}

	outcome, done := s.run.Step(now, inputs)
	p := s.run.Progression()
	if nil != s.opponent {
		s.opponent.Update(now, p.Score)
	}
	if done {
		s.finish(outcome)
	}
}

func (s *Session) finish(outcome score.Outcome) {
	s.transport.Stop()
	to := Result
	if outcome == score.OutcomeGameOver {
		to = GameOver
	}
	if err := s.set(to); nil != err {
		s.log.Error("unable to finish run", "err", err)
		return
	}
	sub := s.run.Progression().Submit(s.track, outcome)
	sub.Seed = s.run.Seed
	sub.Inputs = s.run.Inputs
	sub.Created = s.clock.Wall()
	s.submission = &sub
	s.log.Info("run finished", "track", s.track.ID, "outcome", outcome, "score", sub.Score, "accuracy", sub.Accuracy)
	if nil != s.OnFinish {
		s.OnFinish(sub)
	}
}

func (s *Session) frame() Frame {
	f := Frame{
		Mode:       s.mode,
		Track:      s.track,
		Lead:       s.settings.NoteSpeed,
		Opponent:   s.opponent,
		Submission: s.submission,
	}
	if nil != s.matchmaker && s.mode == Connecting {
		f.Countdown = s.matchmaker.Remaining(s.clock.Wall())
	}
	if nil != s.run {
		f.Now = s.run.Now()
		f.Notes = s.run.Engine.Notes()
		f.Events = s.run.Engine.Events()
		f.Progress = s.run.Progression()
		f.Lead = s.run.Scheduler.Lead()
	}
	return f
}
