package score

import (
	"sort"
	"time"

	"git.lost.host/meutraa/djmix/internal/game"
)

// InputsCompact groups the input times of one lane and action
type InputsCompact struct {
	Index   int
	Release bool
	Times   []time.Duration
}

// channel orders presses, then releases, then the fever control
func channel(i game.Input) int {
	if i.Lane == game.FeverLane {
		return 2 * game.Lanes
	}
	if i.Release {
		return game.Lanes + i.Lane
	}
	return i.Lane
}

func compactInputs(inputs []game.Input) []InputsCompact {
	if len(inputs) == 0 {
		return []InputsCompact{}
	}
	byChannel := map[int]*InputsCompact{}
	for _, i := range inputs {
		c := channel(i)
		ic, ok := byChannel[c]
		if !ok {
			ic = &InputsCompact{Index: i.Lane, Release: i.Release}
			byChannel[c] = ic
		}
		ic.Times = append(ic.Times, i.Time)
	}
	keys := make([]int, 0, len(byChannel))
	for k := range byChannel {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	ins := make([]InputsCompact, 0, len(keys))
	for _, k := range keys {
		ins = append(ins, *byChannel[k])
	}
	return ins
}

// uncompactInputs restores the time ordered input stream
func uncompactInputs(inputs []InputsCompact) []game.Input {
	ins := []game.Input{}
	for _, i := range inputs {
		for _, t := range i.Times {
			ins = append(ins, game.Input{Lane: i.Index, Release: i.Release, Time: t})
		}
	}
	sort.SliceStable(ins, func(a, b int) bool {
		return ins[a].Time < ins[b].Time
	})
	return ins
}
