package score

import (
	"testing"
	"time"

	"git.lost.host/meutraa/djmix/internal/game"
)

var compactTests = []struct {
	inputs  []game.Input
	compact []InputsCompact
}{
	{[]game.Input{}, []InputsCompact{}},
	{
		[]game.Input{{Lane: 0, Time: 100}, {Lane: 3, Time: 200}, {Lane: 0, Release: true, Time: 250}},
		[]InputsCompact{
			{Index: 0, Times: []time.Duration{100}},
			{Index: 3, Times: []time.Duration{200}},
			{Index: 0, Release: true, Times: []time.Duration{250}},
		},
	},
	{
		[]game.Input{{Lane: 1, Time: 1}, {Lane: game.FeverLane, Time: 2}, {Lane: 1, Time: 3}},
		[]InputsCompact{
			{Index: 1, Times: []time.Duration{1, 3}},
			{Index: game.FeverLane, Times: []time.Duration{2}},
		},
	},
}

func equalCompact(p, q []InputsCompact) bool {
	if len(p) != len(q) {
		return false
	}
	for i := 0; i < len(p); i++ {
		pi, qi := p[i], q[i]
		if pi.Index != qi.Index || pi.Release != qi.Release {
			return false
		}
		if len(pi.Times) != len(qi.Times) {
			return false
		}
		for j := 0; j < len(pi.Times); j++ {
			if pi.Times[j] != qi.Times[j] {
				return false
			}
		}
	}
	return true
}

func TestCompactInputs(t *testing.T) {
	for _, test := range compactTests {
		out := compactInputs(test.inputs)
		if !equalCompact(out, test.compact) {
			t.Log("out     ", out)
			t.Log("expected", test.compact)
			t.Fail()
		}
	}
}

func TestUncompactInputs(t *testing.T) {
	for _, test := range compactTests {
		out := uncompactInputs(test.compact)
		if len(out) != len(test.inputs) {
			t.Fatalf("expected %v inputs, got %v", len(test.inputs), len(out))
		}
		for i := range out {
			if out[i] != test.inputs[i] {
				t.Log("out     ", out)
				t.Log("expected", test.inputs)
				t.Fail()
				break
			}
		}
	}
}
