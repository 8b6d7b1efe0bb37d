// Package catalog lists the playable tracks: the built in songs and the ones
// imported from a songs directory.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/remeh/sizedwaitgroup"

	"git.lost.host/meutraa/djmix/internal/game"
	"git.lost.host/meutraa/djmix/internal/parser"
)

var (
	ErrNoTracks     = errors.New("no tracks found")
	ErrUnknownTrack = errors.New("unknown track")
)

// ImportBPM is assumed for audio imported without a chart
const ImportBPM = 140

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

// Probe returns the length of an audio file
type Probe func(path string) (time.Duration, error)

func Builtin() []*game.Track {
	return []*game.Track{
		{ID: "neon-genesis", Title: "NEON GENESIS", Artist: "Hatsune X", Difficulty: game.Normal, BPM: 128, Duration: 120 * time.Second, Cover: "neon-genesis"},
		{ID: "cyberpunk-love", Title: "CYBERPUNK LOVE", Artist: "Low-Fi Unit", Difficulty: game.Hard, BPM: 140, Duration: 145 * time.Second, Cover: "cyberpunk-love"},
		{ID: "void-step", Title: "VOID STEP", Artist: "Ex-Machina", Difficulty: game.Nexus, BPM: 175, Duration: 180 * time.Second, Cover: "void-step"},
	}
}

func isAudio(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ogg", ".mp3", ".wav":
		return true
	}
	return false
}

type entry struct {
	chart, audio string
}

// Load imports every song directory below dir. A directory with a .sm chart
// takes its header from the chart, one with only audio becomes a track at
// ImportBPM. Broken songs are logged and skipped.
func Load(dir string, p parser.Parser, probe Probe, log *slog.Logger) ([]*game.Track, error) {
	entries := map[string]*entry{}
	if err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		if info.IsDir() {
			return nil
		}
		d := filepath.Dir(path)
		e, ok := entries[d]
		if !ok {
			e = &entry{}
		}
		switch {
		case strings.EqualFold(filepath.Ext(path), ".sm"):
			e.chart = path
		case isAudio(path) && e.audio == "":
			e.audio = path
		default:
			return nil
		}
		entries[d] = e
		return nil
	}); nil != err {
		return nil, fmt.Errorf("unable to walk song directory: %w", err)
	}

	var mu sync.Mutex
	tracks := []*game.Track{}
	wg := sizedwaitgroup.New(runtime.NumCPU())
	for d, e := range entries {
		wg.Add()
		go func(d string, e *entry) {
			defer wg.Done()
			t, err := load(d, e, p, probe)
			if nil != err {
				log.Warn("unable to import song", "dir", d, "err", err)
				return
			}
			mu.Lock()
			tracks = append(tracks, t)
			mu.Unlock()
		}(d, e)
	}
	wg.Wait()

	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w in %v", ErrNoTracks, dir)
	}
	sort.Slice(tracks, func(i, j int) bool {
		if tracks[i].Difficulty != tracks[j].Difficulty {
			return tracks[i].Difficulty.Rank() < tracks[j].Difficulty.Rank()
		}
		return tracks[i].Title < tracks[j].Title
	})
	log.Info("songs imported", "dir", dir, "count", len(tracks))
	return tracks, nil
}

func load(dir string, e *entry, p parser.Parser, probe Probe) (*game.Track, error) {
	var t *game.Track
	if e.chart != "" {
		var err error
		if t, err = p.Parse(e.chart); nil != err {
			return nil, err
		}
		if t.Media == "" {
			t.Media = e.audio
		}
	} else {
		name := strings.TrimSuffix(filepath.Base(e.audio), filepath.Ext(e.audio))
		t = &game.Track{
			ID:         filepath.Base(dir),
			Title:      strings.ToUpper(name),
			Artist:     "Imported",
			Difficulty: game.Normal,
			BPM:        ImportBPM,
			Media:      e.audio,
		}
	}

	if t.Media != "" && nil != probe {
		length, err := probe(t.Media)
		if nil != err {
			return nil, fmt.Errorf("unable to probe %v: %w", t.Media, err)
		}
		t.Duration = length
	}
	if err := t.Validate(); nil != err {
		return nil, err
	}
	return t, nil
}

// Find returns the track with id
func Find(tracks []*game.Track, id string) (*game.Track, error) {
	for _, t := range tracks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownTrack, id)
}

func FormatDuration(d time.Duration) string {
	return durafmt.Parse(d.Round(time.Second)).LimitFirstN(2).Format(shortUnits)
}

// Describe is the one line listing of a track
func Describe(t *game.Track) string {
	return fmt.Sprintf("%-16s %-24s %-14s %-7s %4.0fbpm %s", t.ID, t.Title, t.Artist, t.Difficulty, t.BPM, FormatDuration(t.Duration))
}

// FormatScore groups the digits of a score
func FormatScore(score int64) string {
	return humanize.Comma(score)
}
