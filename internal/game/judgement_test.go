package game

import (
	"testing"
	"time"
)

var judgeTests = []struct {
	d      time.Duration
	fever  bool
	tier   Tier
	points int
}{
	{0, false, Perfect, 300},
	{39 * time.Millisecond, false, Perfect, 300},
	{40 * time.Millisecond, false, Great, 150},
	{79 * time.Millisecond, false, Great, 150},
	{80 * time.Millisecond, false, Nice, 100},
	{119 * time.Millisecond, false, Nice, 100},
	{120 * time.Millisecond, false, Good, 50},
	{149 * time.Millisecond, false, Good, 50},
	{0, true, Perfect, 300},
	{79 * time.Millisecond, true, Perfect, 300},
	{80 * time.Millisecond, true, Great, 150},
	{149 * time.Millisecond, true, Nice, 100},
}

func TestJudge(t *testing.T) {
	for _, test := range judgeTests {
		j := Judge(test.d, test.fever)
		if j.Tier != test.tier || j.Points != test.points {
			t.Log("  Error:", test.d, "fever", test.fever)
			t.Log("    Got:", j.Tier, j.Points)
			t.Log("   Want:", test.tier, test.points)
			t.Fail()
		}
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		d     time.Duration
		fever bool
		ratio float64
	}{
		{0, false, 100},
		{75 * time.Millisecond, false, 50},
		{150 * time.Millisecond, false, 0},
		{300 * time.Millisecond, false, 0},
		{75 * time.Millisecond, true, 70},
		{0, true, 100},
		{150 * time.Millisecond, true, 20},
	}
	for _, test := range tests {
		if r := Ratio(test.d, test.fever); r != test.ratio {
			t.Errorf("Ratio(%v, %v) = %v, want %v", test.d, test.fever, r, test.ratio)
		}
	}
}
