package render

import (
	"math"
	"time"

	"git.lost.host/meutraa/djmix/internal/game"
)

const (
	ColumnSpacing = 4
	feverBadge    = "[FEVER]"
)

// Layout places the playfield on a screen of the given size
type Layout struct {
	Cols, Rows int
	Middle     int
	Lanes      [game.Lanes]int // Column of each lane
	Top        int             // Row a note appears on when spawned
	HitRow     int
	Side       int // Column of the stats panel
	FeverRow   int
	FeverCol   int
}

func NewLayout(cols, rows int) Layout {
	mc := cols / 2
	l := Layout{
		Cols:   cols,
		Rows:   rows,
		Middle: mc,
		Lanes: [game.Lanes]int{
			mc - ColumnSpacing*3,
			mc - ColumnSpacing,
			mc + ColumnSpacing,
			mc + ColumnSpacing*3,
		},
		Top:      3,
		HitRow:   max(5, rows-4),
		FeverRow: max(7, rows-1),
		FeverCol: mc - len(feverBadge)/2,
	}
	l.Side = max(2, l.Lanes[0]-36)
	return l
}

// Row is the row of something due at target, notes fall from Top at
// target-lead to HitRow at target and keep going past it
func (l *Layout) Row(target, now, lead time.Duration) int {
	if lead <= 0 {
		return l.HitRow
	}
	progress := 1 - float64(target-now)/float64(lead)
	return l.Top + int(math.Round(progress*float64(l.HitRow-l.Top)))
}

// NoteRow is the head of a note, a hold being held stays on the hit line
func (l *Layout) NoteRow(n *game.Note, now, lead time.Duration) int {
	if n.Holding() {
		return l.HitRow
	}
	return l.Row(n.Time, now, lead)
}

// TailRow is the far end of a hold
func (l *Layout) TailRow(n *game.Note, now, lead time.Duration) int {
	return l.Row(n.TimeEnd(), now, lead)
}

func (l *Layout) InField(row int) bool {
	return row >= l.Top && row < l.FeverRow-1
}

// LaneAt returns the lane whose column band contains col, or -1
func (l *Layout) LaneAt(col int) int {
	for i, c := range l.Lanes {
		if col > c-ColumnSpacing && col < c+ColumnSpacing {
			return i
		}
	}
	return -1
}

func (l *Layout) FeverAt(col, row int) bool {
	return row == l.FeverRow && col >= l.FeverCol && col < l.FeverCol+len(feverBadge)
}
