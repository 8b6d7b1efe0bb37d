package score

import (
	"math"

	"git.lost.host/meutraa/djmix/internal/game"
)

const (
	MaxHealth  = 100
	HitHeal    = 2
	MissDamage = 10
	// ComboBonus is the percentage added to a hit per combo step
	ComboBonus = 5

	comboStep = ComboBonus / 100.0
)

// Progression aggregates judgements of a single run
type Progression struct {
	Score    int64
	Combo    int
	MaxCombo int
	Health   int
	Fever    Fever
	Counts   [game.TierCount]int

	accuracySum float64
	judged      int
	over        bool
}

func NewProgression(autoFever bool) *Progression {
	return &Progression{
		Health: MaxHealth,
		Fever:  Fever{Auto: autoFever},
	}
}

// RegisterHit scores a hit. The combo bonus uses the combo before this hit,
// points * (1 + combo*0.05) floored, in float64 so the rounding of large
// combos matches the web leaderboard.
func (p *Progression) RegisterHit(tier game.Tier, points int, ratio float64) {
	if p.over {
		return
	}
	p.Score += int64(math.Floor(float64(points) * (1 + float64(p.Combo)*comboStep)))
	p.Combo++
	if p.Combo > p.MaxCombo {
		p.MaxCombo = p.Combo
	}
	p.accuracySum += ratio
	p.judged++
	p.Health = min(MaxHealth, p.Health+HitHeal)
	if tier < game.TierCount {
		p.Counts[tier]++
	}
}

// RegisterMiss breaks the combo and drains health and an inactive fever.
// It returns true only for the miss that ends the run.
func (p *Progression) RegisterMiss() bool {
	if p.over {
		return false
	}
	p.Combo = 0
	p.judged++
	p.Counts[game.Missed]++
	p.Fever.Drain(FeverMissDrain)
	p.Health -= MissDamage
	if p.Health <= 0 {
		p.Health = 0
		p.over = true
		return true
	}
	return false
}

// Accuracy is the mean ratio over every judgement, 100 before the first
func (p *Progression) Accuracy() float64 {
	if p.judged == 0 {
		return 100
	}
	return p.accuracySum / float64(p.judged)
}

func (p *Progression) Judged() int {
	return p.judged
}

// Over is true once health reached zero, nothing is applied after that
func (p *Progression) Over() bool {
	return p.over
}
