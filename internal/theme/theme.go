package theme

import (
	"image/color"

	"git.lost.host/meutraa/djmix/internal/game"
)

type Theme interface {
	RenderNote(n *game.Note) (string, color.RGBA)
	RenderHoldBody(n *game.Note) (string, color.RGBA)
	RenderHitField(lane int, held bool) (string, color.RGBA)
	RenderJudgement(tier game.Tier, fever bool) color.RGBA
	RenderHitEffect(lane int) (string, color.RGBA)
	// Gear and Pet are the equipped decorations, empty when none
	Gear() string
	Pet() string
}

// Cosmetics are the equipped inventory identifiers
type Cosmetics struct {
	Tile   string
	Effect string
	Gear   string
	Pet    string
}
