package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/djmix/internal/game"
)

var ErrNoChart = errors.New("no playable chart")

// DefaultParser reads StepMania .sm files. Notes are generated from the
// tempo, so of the charts only the difficulty and length are used.
type DefaultParser struct{}

type bpm struct {
	startingBeat float64
	value        float64
}

func (p *DefaultParser) getSecondsPerNote(rates []bpm, currentBeat float64, bpn float64) float64 {
	sel := 0.0
	for _, r := range rates {
		if currentBeat >= r.startingBeat {
			sel = r.value
		} else {
			break
		}
	}
	if sel <= 0 {
		return 0
	}
	return bpn * 60.0 / sel
}

type chart struct {
	difficulty game.Difficulty
	section    string
}

func value(mdl, key string) (string, bool) {
	if !strings.HasPrefix(mdl, key+":") {
		return "", false
	}
	mdl = strings.TrimPrefix(mdl, key+":")
	return strings.TrimSpace(strings.TrimSuffix(mdl, ";")), true
}

func (p *DefaultParser) Parse(file string) (*game.Track, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}

	str := strings.ReplaceAll(string(data), "\r", "")
	sections := strings.Split(str, "#NOTES:")
	meta := sections[0]

	var selected *chart
	for _, section := range sections[1:] {
		lines := strings.SplitN(section, "\n", 7)
		if len(lines) < 7 {
			continue
		}
		chartType := strings.TrimSuffix(strings.TrimSpace(lines[1]), ":")
		if _, ok := game.NKeyMap[chartType]; !ok {
			continue
		}
		difficulty, ok := game.ParseDifficulty(strings.TrimSuffix(strings.TrimSpace(lines[3]), ":"))
		if !ok {
			difficulty = game.Normal
		}
		selected = &chart{difficulty: difficulty, section: lines[6]}
		break
	}
	if nil == selected {
		return nil, fmt.Errorf("%w in %v", ErrNoChart, file)
	}

	dir := filepath.Dir(file)
	track := &game.Track{
		ID:         filepath.Base(dir),
		Difficulty: selected.difficulty,
	}
	offset := 0.0
	bpms := []bpm{}

	for _, mdl := range strings.Split(meta, "\n#") {
		mdl = strings.TrimPrefix(strings.TrimSpace(mdl), "#")
		if v, ok := value(mdl, "TITLE"); ok {
			track.Title = v
		} else if v, ok := value(mdl, "ARTIST"); ok {
			track.Artist = v
		} else if v, ok := value(mdl, "MUSIC"); ok && v != "" {
			track.Media = filepath.Join(dir, v)
		} else if v, ok := value(mdl, "BANNER"); ok && v != "" {
			track.Cover = filepath.Join(dir, v)
		} else if v, ok := value(mdl, "OFFSET"); ok {
			offs, err := strconv.ParseFloat(v, 64)
			if nil != err {
				return nil, fmt.Errorf("unable to parse offset: %w", err)
			}
			offset = -offs
		} else if v, ok := value(mdl, "BPMS"); ok {
			v = strings.ReplaceAll(v, "\n", "")
			for _, b := range strings.Split(v, ",") {
				as := strings.Split(b, "=")
				if len(as) != 2 {
					return nil, fmt.Errorf("unable to parse bpm %q", b)
				}
				sb, err := strconv.ParseFloat(strings.TrimSpace(as[0]), 64)
				if nil != err {
					return nil, fmt.Errorf("unable to parse bpm: %w", err)
				}
				bb, err := strconv.ParseFloat(strings.TrimSpace(as[1]), 64)
				if nil != err {
					return nil, fmt.Errorf("unable to parse bpm: %w", err)
				}
				bpms = append(bpms, bpm{startingBeat: sb, value: bb})
			}
		}
	}
	if len(bpms) == 0 {
		return nil, fmt.Errorf("%w: no bpm in %v", game.ErrInvalidTrack, file)
	}
	track.BPM = bpms[0].value
	if track.Title == "" {
		track.Title = track.ID
	}
	track.Duration = p.length(selected.section, offset, bpms)
	return track, nil
}

// length walks the chart measures to find the end time of the chart, which
// stands in for the song length until the audio is probed
func (p *DefaultParser) length(section string, offset float64, bpms []bpm) time.Duration {
	seconds := offset
	currentBeat := 0.0
	section, _, _ = strings.Cut(section, ";")
	for _, block := range strings.Split(section, "\n,") {
		lines := []string{}
		for _, l := range strings.Split(block, "\n") {
			if strings.HasPrefix(l, " ") || strings.Contains(l, "-") {
				continue
			}
			l = strings.TrimSpace(l)
			if len(l) > 3 {
				lines = append(lines, l)
			}
		}
		if len(lines) == 0 {
			continue
		}
		// Beat count is 4 per block
		beatsPerNote := 4.0 / float64(len(lines))
		for range lines {
			seconds += p.getSecondsPerNote(bpms, currentBeat, beatsPerNote)
			currentBeat += beatsPerNote
		}
	}
	return time.Duration(seconds * float64(time.Second))
}
