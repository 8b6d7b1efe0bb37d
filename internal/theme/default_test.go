package theme

import (
	"testing"

	"git.lost.host/meutraa/djmix/internal/game"
)

func TestCosmetics(t *testing.T) {
	var th Theme = &DefaultTheme{}
	n := &game.Note{Lane: 1}
	if s, _ := th.RenderNote(n); s != "⬤" {
		t.Errorf("unexpected default tile %q", s)
	}
	if th.Pet() != "" || th.Gear() != "" {
		t.Errorf("decorations shown without cosmetics")
	}

	th = &DefaultTheme{Cosmetics: Cosmetics{Tile: "star", Effect: "ring", Pet: "cat", Gear: "unknown"}}
	if s, _ := th.RenderNote(n); s != "★" {
		t.Errorf("unexpected tile %q", s)
	}
	if s, _ := th.RenderHitEffect(0); s != "◎" {
		t.Errorf("unexpected effect %q", s)
	}
	if th.Pet() != "ᓚᘏᗢ" || th.Gear() != "" {
		t.Errorf("unexpected decorations %q %q", th.Pet(), th.Gear())
	}
}

func TestFeverJudgementColor(t *testing.T) {
	th := &DefaultTheme{}
	if th.RenderJudgement(game.Perfect, true) != feverColor {
		t.Errorf("fever hit not marked")
	}
	if th.RenderJudgement(game.Missed, true) != tierColors[game.Missed] {
		t.Errorf("fever miss marked as fever")
	}
}
