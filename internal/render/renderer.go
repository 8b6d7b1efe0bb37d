package render

import (
	"image/color"
	"time"
)

// Rows and columns are 1 based, as in ANSI cursor positioning
type Renderer interface {
	Init() error
	Deinit() error
	Size() (cols, rows int)
	AddDecoration(col, row int, content string, c color.RGBA, frames int)
	// RenderLoop clears the screen, calls render, then shows the frame once
	// per period until render returns false
	RenderLoop(period time.Duration, render func(now time.Time) bool)
	Fill(row, column int, message string)
	FillColor(row, column int, color color.RGBA, message string)
}

type decoration struct {
	X, Y    int
	Content string
	Color   color.RGBA
	Frames  int // remaining frames until removed
}

type decorations []*decoration

func (ds *decorations) add(col, row int, content string, c color.RGBA, frames int) {
	*ds = append(*ds, &decoration{X: col, Y: row, Content: content, Color: c, Frames: frames})
}

// tick draws the live decorations and drops the expired ones
func (ds *decorations) tick(fill func(row, column int, c color.RGBA, message string)) {
	nd := (*ds)[:0]
	for _, d := range *ds {
		if d.Frames <= 0 {
			continue
		}
		fill(d.Y, d.X, d.Color, d.Content)
		d.Frames--
		nd = append(nd, d)
	}
	clear((*ds)[len(nd):])
	*ds = nd
}

func loop(period time.Duration, frame func(now time.Time) bool) {
	cont := true
	for cont {
		now := time.Now()
		deadline := now.Add(period)
		cont = frame(now)
		time.Sleep(time.Until(deadline))
	}
}
