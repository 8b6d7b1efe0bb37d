package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"git.lost.host/meutraa/djmix/internal/config"
	"git.lost.host/meutraa/djmix/internal/game"
	"git.lost.host/meutraa/djmix/internal/judge"
	"git.lost.host/meutraa/djmix/internal/score"
	"git.lost.host/meutraa/djmix/internal/session"
	"git.lost.host/meutraa/djmix/internal/theme"
	"git.lost.host/meutraa/djmix/internal/versus"
)

// View is the state of one drawn frame
type View struct {
	Frame       session.Frame
	Held        [game.Lanes]bool
	Tracks      []*game.Track
	Selected    int
	Versus      bool
	Leaderboard []score.Submission
	Credits     int64
	Settings    config.Settings
	Prompt      string // Shown while capturing a binding
	Status      string
}

var (
	white = color.RGBA{255, 255, 255, 255}
	grey  = color.RGBA{106, 106, 106, 255}
	red   = color.RGBA{236, 30, 0, 255}
	gold  = color.RGBA{236, 195, 0, 255}
	green = color.RGBA{0, 236, 128, 255}
)

const (
	labelFrames  = 24
	effectFrames = 6
	whiffFrames  = 4
)

func center(r Renderer, l *Layout, row int, c color.RGBA, message string) {
	r.FillColor(row, max(1, l.Middle-runewidth.StringWidth(message)/2), c, message)
}

func bar(width int, fill float64) string {
	n := int(float64(width) * min(1, max(0, fill)))
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

// Draw renders the view for its mode
func Draw(r Renderer, th theme.Theme, v *View) {
	cols, rows := r.Size()
	l := NewLayout(cols, rows)
	f := &v.Frame

	switch f.Mode {
	case session.Start:
		center(r, &l, rows/2-1, gold, "D J M I X")
		center(r, &l, rows/2+1, white, "press enter")
	case session.SongSelect:
		drawSongSelect(r, &l, v)
	case session.Connecting:
		center(r, &l, rows/2, gold, fmt.Sprintf("SEARCHING FOR OPPONENT  %.0fs", f.Countdown.Seconds()))
		center(r, &l, rows/2+2, grey, "esc cancel")
	case session.Ready:
		center(r, &l, rows/2-2, gold, f.Track.Title)
		if nil != f.Opponent {
			center(r, &l, rows/2, white, "VS "+opponentName(f.Opponent))
		}
		center(r, &l, rows/2+2, white, "press enter")
	case session.Playing:
		drawField(r, th, &l, v)
	case session.Paused:
		drawField(r, th, &l, v)
		center(r, &l, rows/2, gold, "PAUSED")
		center(r, &l, rows/2+2, white, "enter resume  r retry  esc exit")
	case session.Result, session.GameOver:
		drawResult(r, &l, v)
	}
	if v.Status != "" {
		r.FillColor(rows, 2, grey, v.Status)
	}
}

func opponentName(o versus.Opponent) string {
	if o.Human() {
		return o.Name()
	}
	return o.Name() + " (AI)"
}

func drawSongSelect(r Renderer, l *Layout, v *View) {
	r.FillColor(2, 4, gold, "SONG SELECT")
	r.FillColor(2, 24, grey, "credits "+humanize.Comma(v.Credits))
	for i, t := range v.Tracks {
		c := white
		cursor := "  "
		if i == v.Selected {
			c = gold
			cursor = "> "
		}
		r.FillColor(4+i, 4, c, fmt.Sprintf("%s%-24s %-16s %-7s %4.0fbpm", cursor, t.Title, t.Artist, t.Difficulty, t.BPM))
	}

	row := 5 + len(v.Tracks)
	r.FillColor(row, 4, gold, "LEADERBOARD")
	for i, s := range v.Leaderboard {
		r.FillColor(row+1+i, 4, white, fmt.Sprintf("%2d. %12s  %6.2f%%  x%-4d %s", i+1, humanize.Comma(s.Score), s.Accuracy, s.MaxCombo, s.Outcome))
	}

	s := v.Settings
	mode := "SOLO"
	if v.Versus {
		mode = "VERSUS"
	}
	help := []string{
		fmt.Sprintf("enter play  v mode %s  esc quit", mode),
		fmt.Sprintf("keys %s  fever %q  1-4 rebind  5 fever key  g gamepad", strings.Join(s.Keybinds[:], " "), s.FeverKeybind),
		fmt.Sprintf("+/- note speed %v  a auto fever %v", s.NoteSpeed, s.AutoFever),
	}
	for i, h := range help {
		r.FillColor(l.Rows-4+i, 4, grey, h)
	}
	if v.Prompt != "" {
		center(r, l, l.Rows/2, gold, v.Prompt)
	}
}

func drawField(r Renderer, th theme.Theme, l *Layout, v *View) {
	f := &v.Frame
	if nil == f.Progress {
		return
	}
	p := f.Progress

	for i, col := range l.Lanes {
		sym, c := th.RenderHitField(i, v.Held[i])
		r.FillColor(l.HitRow, col, c, sym)
	}
	if g := th.Gear(); g != "" {
		center(r, l, l.HitRow+2, grey, g)
	}

	if nil != f.Track && f.Track.BPM > 0 {
		for _, m := range game.Measures(f.Track.BeatInterval(), f.Now, f.Now+f.Lead) {
			row := l.Row(m.Time, f.Now, f.Lead)
			if !l.InField(row) || row == l.HitRow {
				continue
			}
			c := grey
			if m.Denom == 1 {
				c = white
			}
			r.FillColor(row, l.Lanes[0]-ColumnSpacing, c, "╴")
			r.FillColor(row, l.Lanes[game.Lanes-1]+ColumnSpacing, c, "╶")
		}
	}

	for _, n := range f.Notes {
		col := l.Lanes[n.Lane]
		head := l.NoteRow(n, f.Now, f.Lead)
		if n.Kind == game.Hold {
			sym, c := th.RenderHoldBody(n)
			for row := max(l.Top, l.TailRow(n, f.Now, f.Lead)); row < head; row++ {
				r.FillColor(row, col, c, sym)
			}
		}
		if l.InField(head) {
			sym, c := th.RenderNote(n)
			r.FillColor(head, col, c, sym)
		}
	}

	for _, ev := range f.Events {
		decorate(r, th, l, ev)
	}

	fever := p.Fever
	stats := []struct {
		c    color.RGBA
		text string
	}{
		{white, fmt.Sprintf("     Score:  %s", humanize.Comma(p.Score))},
		{white, fmt.Sprintf("     Combo:  %d %s", p.Combo, th.Pet())},
		{white, fmt.Sprintf("  Accuracy:  %6.2f%%", p.Accuracy())},
		{red, fmt.Sprintf("    Health:  %s", bar(20, float64(p.Health)/score.MaxHealth))},
		{gold, fmt.Sprintf("     Fever:  %s", bar(20, fever.Fill(f.Now)))},
	}
	if fever.Active {
		stats = append(stats, struct {
			c    color.RGBA
			text string
		}{gold, fmt.Sprintf("             %.1fs", fever.Remaining(f.Now).Seconds())})
	}
	for i, s := range stats {
		r.FillColor(4+i, l.Side, s.c, s.text)
	}
	if nil != f.Track && f.Track.Duration > 0 {
		r.FillColor(2, l.Side, grey, fmt.Sprintf("%s  %s", f.Track.Title, bar(20, float64(f.Now)/float64(f.Track.Duration))))
	}
	if nil != f.Opponent {
		r.FillColor(11, l.Side, white, fmt.Sprintf("  %8s:  %s", opponentName(f.Opponent), humanize.Comma(f.Opponent.Score())))
	}

	badge := grey
	if fever.Ready() {
		badge = gold
	}
	if fever.Active {
		badge = green
	}
	r.FillColor(l.FeverRow, l.FeverCol, badge, feverBadge)
}

func decorate(r Renderer, th theme.Theme, l *Layout, ev judge.Event) {
	mid := l.Rows / 2
	switch ev.Kind {
	case judge.Whiff:
		r.AddDecoration(l.Lanes[ev.Lane], l.HitRow-1, "·", grey, whiffFrames)
	case judge.HoldStart:
		label(r, l, mid, gold, ev.Label)
	case judge.Hit, judge.Complete:
		sym, c := th.RenderHitEffect(ev.Lane)
		r.AddDecoration(l.Lanes[ev.Lane], l.HitRow-1, sym, c, effectFrames)
		label(r, l, mid, th.RenderJudgement(ev.Tier, ev.Fever), ev.Label)
	case judge.Miss:
		label(r, l, mid, th.RenderJudgement(game.Missed, ev.Fever), ev.Label)
	case judge.FeverStart:
		label(r, l, mid-2, gold, ev.Label)
	}
}

func label(r Renderer, l *Layout, row int, c color.RGBA, text string) {
	// Pad so a shorter label fully covers the one before it
	text = fmt.Sprintf("%-10s", text)
	r.AddDecoration(max(1, l.Middle-5), row, text, c, labelFrames)
}

func drawResult(r Renderer, l *Layout, v *View) {
	f := &v.Frame
	mid := l.Rows / 2
	title, c := "RESULT", gold
	if f.Mode == session.GameOver {
		title, c = "GAME OVER", red
	}
	center(r, l, mid-8, c, title)
	if nil != f.Opponent && nil != f.Progress {
		if versus.Victory(f.Progress.Score, f.Opponent) {
			center(r, l, mid-6, green, "VICTORY")
		} else {
			center(r, l, mid-6, red, "DEFEAT")
		}
	}
	if nil != f.Submission {
		s := f.Submission
		lines := []string{
			fmt.Sprintf("     Score:  %s", humanize.Comma(s.Score)),
			fmt.Sprintf("  Accuracy:  %.2f%%", s.Accuracy),
			fmt.Sprintf(" Max combo:  %d", s.MaxCombo),
			fmt.Sprintf("   Credits:  +%d", s.Credits()),
		}
		for i, line := range lines {
			r.FillColor(mid-4+i, l.Middle-12, white, line)
		}
	}
	if nil != f.Progress {
		for i := game.Perfect; i < game.TierCount; i++ {
			r.FillColor(mid+1+int(i), l.Middle-12, grey, fmt.Sprintf("%10s:  %d", i, f.Progress.Counts[i]))
		}
	}
	if nil != f.Opponent {
		r.FillColor(mid+8, l.Middle-12, grey, fmt.Sprintf("%10s:  %s", f.Opponent.Name(), humanize.Comma(f.Opponent.Score())))
	}
	center(r, l, l.Rows-2, white, "enter song select  r retry")
}
