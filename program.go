package main

import (
	"fmt"
	"log/slog"
	"time"

	"git.lost.host/meutraa/djmix/internal/clock"
	"git.lost.host/meutraa/djmix/internal/config"
	"git.lost.host/meutraa/djmix/internal/game"
	"git.lost.host/meutraa/djmix/internal/input"
	"git.lost.host/meutraa/djmix/internal/judge"
	"git.lost.host/meutraa/djmix/internal/media"
	"git.lost.host/meutraa/djmix/internal/render"
	"git.lost.host/meutraa/djmix/internal/score"
	"git.lost.host/meutraa/djmix/internal/session"
	"git.lost.host/meutraa/djmix/internal/theme"
)

const (
	leaderboardSize = 10
	noteSpeedStep   = 100 * time.Millisecond
)

// Program owns everything the frame loop touches
type Program struct {
	Scorer   score.Scorer
	Theme    theme.Theme
	Renderer render.Renderer
	Store    *config.Store
	Audio    *media.Audio // nil when muted
	Session  *session.Session
	Unifier  *input.Unifier
	Sources  []input.Source
	Tracks   []*game.Track
	Log      *slog.Logger

	selected    int
	versus      bool
	leaderboard []score.Submission
	credits     int64
	prompt      string
	status      string
	quit        bool
}

// Frame is one iteration of the render loop, it returns false to quit
func (p *Program) Frame(now time.Time) bool {
	for _, key := range input.Pump(p.Unifier, now, p.Sources...) {
		p.Key(key)
	}
	if p.quit {
		return false
	}

	f := p.Session.Step(p.Unifier.Drain())
	p.events(f.Events)

	render.Draw(p.Renderer, p.Theme, &render.View{
		Frame:       f,
		Held:        p.Unifier.Held(),
		Tracks:      p.Tracks,
		Selected:    p.selected,
		Versus:      p.versus,
		Leaderboard: p.leaderboard,
		Credits:     p.credits,
		Settings:    p.Store.Get(),
		Prompt:      p.prompt,
		Status:      p.status,
	})
	return true
}

func (p *Program) events(events []judge.Event) {
	for _, ev := range events {
		p.Log.Debug("judgement", "kind", ev.Kind, "lane", ev.Lane, "tier", ev.Tier, "points", ev.Points, "at", ev.At)
		if nil == p.Audio {
			continue
		}
		switch ev.Kind {
		case judge.Hit, judge.HoldStart, judge.Complete:
			p.Audio.Hit()
		case judge.FeverStart:
			p.Audio.Fever()
		}
	}
}

func (p *Program) report(err error) {
	if nil == err {
		return
	}
	p.status = err.Error()
	p.Log.Warn("action failed", "mode", p.Session.Mode(), "err", err)
}

// Key handles a key no lane binding consumed
func (p *Program) Key(key string) {
	if key == "ctrl+c" {
		p.quit = true
		return
	}
	p.status = ""

	switch p.Session.Mode() {
	case session.Start:
		switch key {
		case "enter":
			p.report(p.Session.Open())
		case "esc", "q":
			p.quit = true
		}
	case session.SongSelect:
		p.menu(key)
	case session.Connecting, session.Ready:
		switch key {
		case "enter":
			if p.Session.Mode() == session.Ready {
				p.report(p.Session.Begin())
			}
		case "esc":
			p.exit()
		}
	case session.Playing:
		if key == "esc" || key == "p" {
			p.report(p.Session.Pause())
		}
	case session.Paused:
		switch key {
		case "enter", "p":
			p.report(p.Session.Resume())
		case "r":
			p.report(p.Session.Retry())
		case "esc":
			p.exit()
		}
	case session.Result, session.GameOver:
		switch key {
		case "enter", "esc":
			p.exit()
		case "r":
			p.report(p.Session.Retry())
		}
	}
}

func (p *Program) menu(key string) {
	switch key {
	case "up":
		p.selected = (p.selected + len(p.Tracks) - 1) % len(p.Tracks)
		p.refresh()
	case "down", "tab":
		p.selected = (p.selected + 1) % len(p.Tracks)
		p.refresh()
	case "enter":
		p.selectTrack()
	case "v":
		p.versus = !p.versus
	case "1", "2", "3", "4":
		lane := int(key[0] - '1')
		p.captureKey(lane)
	case "5":
		p.captureKey(game.FeverLane)
	case "g":
		p.captureButton(0)
	case "+", "=":
		p.report(p.Store.Update(func(s *config.Settings) {
			s.NoteSpeed = min(s.NoteSpeed+noteSpeedStep, config.MaxNoteSpeed)
		}))
	case "-":
		p.report(p.Store.Update(func(s *config.Settings) {
			s.NoteSpeed = max(s.NoteSpeed-noteSpeedStep, config.MinNoteSpeed)
		}))
	case "a":
		p.report(p.Store.Update(func(s *config.Settings) {
			s.AutoFever = !s.AutoFever
		}))
	case "esc", "q":
		p.quit = true
	}
}

func laneName(lane int) string {
	if lane == game.FeverLane {
		return "FEVER"
	}
	return fmt.Sprintf("LANE %d", lane+1)
}

func (p *Program) captureKey(lane int) {
	p.prompt = fmt.Sprintf("PRESS A KEY FOR %s  (esc cancels)", laneName(lane))
	p.Unifier.BeginCapture(input.Capture{
		Lane: lane,
		Done: func(key string, _ int, ok bool) {
			p.prompt = ""
			if !ok {
				return
			}
			p.report(p.Store.Update(func(s *config.Settings) {
				if lane == game.FeverLane {
					s.FeverKeybind = key
				} else {
					s.Keybinds[lane] = key
				}
			}))
		},
	})
}

// captureButton binds every lane then fever, one button press each
func (p *Program) captureButton(lane int) {
	if lane >= game.Lanes {
		lane = game.FeverLane
	}
	p.prompt = fmt.Sprintf("PRESS A BUTTON FOR %s  (esc cancels)", laneName(lane))
	p.Unifier.BeginCapture(input.Capture{
		Lane:    lane,
		Gamepad: true,
		Done: func(_ string, button int, ok bool) {
			p.prompt = ""
			if !ok {
				return
			}
			p.report(p.Store.Update(func(s *config.Settings) {
				if lane == game.FeverLane {
					s.FeverGamepadBinding = button
				} else {
					s.GamepadBindings[lane] = button
				}
			}))
			if lane != game.FeverLane {
				p.captureButton(lane + 1)
			}
		},
	})
}

func (p *Program) selectTrack() {
	t := p.Tracks[p.selected]
	var m clock.Media
	if t.Media != "" && nil != p.Audio {
		player, err := p.Audio.Load(t.Media)
		if nil != err {
			p.Log.Warn("playing without music", "track", t.ID, "err", err)
		} else {
			m = player
			if length := player.Length(); length > 0 {
				t.Duration = length
			}
		}
	}
	if err := p.Session.Select(t, m, p.versus); nil != err {
		p.report(err)
		if nil != p.Audio {
			p.Audio.Unload()
		}
	}
}

func (p *Program) exit() {
	p.report(p.Session.Exit())
	if nil != p.Audio {
		p.Audio.Unload()
	}
	p.refresh()
}

func (p *Program) save(sub score.Submission) {
	if err := p.Scorer.Save(&sub); nil != err {
		p.report(fmt.Errorf("unable to save result: %w", err))
		return
	}
	p.status = fmt.Sprintf("+%d credits", sub.Credits())
	p.refresh()
}

// refresh reloads the leaderboard of the selected track and the credits
func (p *Program) refresh() {
	top, err := p.Scorer.Top(p.Tracks[p.selected].ID, leaderboardSize)
	if nil != err {
		p.report(err)
	}
	p.leaderboard = top
	credits, err := p.Scorer.Credits()
	if nil != err {
		p.report(err)
	}
	p.credits = credits
}
