package game

import "strings"

type Difficulty string

const (
	Easy   Difficulty = "EASY"
	Normal Difficulty = "NORMAL"
	Hard   Difficulty = "HARD"
	Nexus  Difficulty = "NEXUS"
)

// NKeyMap holds the StepMania chart types that have Lanes columns
var NKeyMap = map[string]uint8{
	"dance-single": Lanes,
}

var smDifficulties = map[string]Difficulty{
	"beginner":  Easy,
	"easy":      Easy,
	"medium":    Normal,
	"normal":    Normal,
	"hard":      Hard,
	"challenge": Nexus,
	"expert":    Nexus,
	"edit":      Nexus,
	"nexus":     Nexus,
}

// ParseDifficulty maps both our own labels and StepMania difficulty names.
func ParseDifficulty(name string) (Difficulty, bool) {
	d, ok := smDifficulties[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

func (d Difficulty) Rank() int {
	switch d {
	case Easy:
		return 0
	case Normal:
		return 1
	case Hard:
		return 2
	case Nexus:
		return 3
	}
	return -1
}
