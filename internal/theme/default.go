package theme

import (
	"image/color"

	"git.lost.host/meutraa/djmix/internal/game"
)

type DefaultTheme struct {
	Cosmetics Cosmetics
}

func (t *DefaultTheme) RenderNote(n *game.Note) (string, color.RGBA) {
	sym := pick(tiles, t.Cosmetics.Tile)
	if n.Kind == game.Hold {
		return sym, holdColor
	}
	return sym, laneColors[n.Lane%len(laneColors)]
}

func (t *DefaultTheme) RenderHoldBody(n *game.Note) (string, color.RGBA) {
	if n.Holding() {
		return "┃", feverColor
	}
	return "│", holdColor
}

func (t *DefaultTheme) RenderHitField(lane int, held bool) (string, color.RGBA) {
	if held {
		return "▀", laneColors[lane%len(laneColors)]
	}
	return barSyms[lane%len(barSyms)], grey
}

func (t *DefaultTheme) RenderJudgement(tier game.Tier, fever bool) color.RGBA {
	if fever && tier != game.Missed {
		return feverColor
	}
	return tierColors[tier]
}

func (t *DefaultTheme) RenderHitEffect(lane int) (string, color.RGBA) {
	return pick(effects, t.Cosmetics.Effect), laneColors[lane%len(laneColors)]
}

func (t *DefaultTheme) Gear() string {
	return gears[t.Cosmetics.Gear]
}

func (t *DefaultTheme) Pet() string {
	return pets[t.Cosmetics.Pet]
}

func pick(set map[string]string, id string) string {
	if s, ok := set[id]; ok {
		return s
	}
	return set[""]
}

var (
	grey       = color.RGBA{106, 106, 106, 255}
	holdColor  = color.RGBA{0, 236, 128, 255}
	feverColor = color.RGBA{236, 195, 0, 255}

	barSyms    = [...]string{"-", "-", "-", "-"}
	laneColors = [...]color.RGBA{
		{236, 0, 106, 255}, // pink
		{0, 118, 236, 255}, // blue
		{0, 118, 236, 255}, // blue
		{236, 0, 106, 255}, // pink
	}
	tierColors = [game.TierCount]color.RGBA{
		game.Perfect:      {173, 236, 236, 255},
		game.Great:        {0, 236, 128, 255},
		game.Nice:         {0, 118, 236, 255},
		game.Good:         {106, 0, 236, 255},
		game.HoldComplete: {0, 236, 128, 255},
		game.Missed:       {236, 30, 0, 255},
	}

	tiles = map[string]string{
		"":        "⬤",
		"diamond": "◆",
		"square":  "■",
		"star":    "★",
	}
	effects = map[string]string{
		"":      "✶",
		"spark": "✦",
		"ring":  "◎",
		"heart": "♥",
	}
	gears = map[string]string{
		"turntable": "◉═◉",
		"synth":     "▥▥▥",
	}
	pets = map[string]string{
		"cat":   "ᓚᘏᗢ",
		"robot": "[o_o]",
	}
)
