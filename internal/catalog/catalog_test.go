package catalog

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/djmix/internal/fixture"
	"git.lost.host/meutraa/djmix/internal/game"
	"git.lost.host/meutraa/djmix/internal/parser"
)

func TestBuiltin(t *testing.T) {
	tracks := Builtin()
	if len(tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %v", len(tracks))
	}
	for _, track := range tracks {
		if err := track.Validate(); nil != err {
			t.Errorf("builtin %v invalid: %v", track.ID, err)
		}
	}
	void, err := Find(tracks, "void-step")
	if nil != err || void.BPM != 175 || void.Duration != 180*time.Second || void.Difficulty != game.Nexus {
		t.Errorf("unexpected void step %+v %v", void, err)
	}
	for id, artist := range map[string]string{
		"neon-genesis":   "Hatsune X",
		"cyberpunk-love": "Low-Fi Unit",
		"void-step":      "Ex-Machina",
	} {
		if track, err := Find(tracks, id); nil != err || track.Artist != artist {
			t.Errorf("%v: expected artist %q, got %+v %v", id, artist, track, err)
		}
	}
	if _, err := Find(tracks, "missing"); !errors.Is(err, ErrUnknownTrack) {
		t.Errorf("expected unknown track, got %v", err)
	}
}

func touch(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); nil != err {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); nil != err {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "void", "void.sm"), fixture.StepMania)
	touch(t, filepath.Join(dir, "void", "void.ogg"), "")
	touch(t, filepath.Join(dir, "loose", "night drive.mp3"), "")
	touch(t, filepath.Join(dir, "broken", "broken.sm"), "#TITLE:Broken;")
	touch(t, filepath.Join(dir, "notes.txt"), "")

	probe := func(path string) (time.Duration, error) {
		return 95 * time.Second, nil
	}
	tracks, err := Load(dir, &parser.DefaultParser{}, probe, slog.Default())
	if nil != err {
		t.Fatal(err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %+v", tracks)
	}

	loose, void := tracks[0], tracks[1]
	if loose.Title != "NIGHT DRIVE" || loose.BPM != ImportBPM || loose.Difficulty != game.Normal || loose.ID != "loose" {
		t.Errorf("unexpected import %+v", loose)
	}
	if void.Title != "Void Step" || void.BPM != 175 || void.Duration != 95*time.Second {
		t.Errorf("unexpected chart import %+v", void)
	}
	if void.Media != filepath.Join(dir, "void", "void.ogg") {
		t.Errorf("unexpected media %v", void.Media)
	}
}

func TestLoadEmpty(t *testing.T) {
	if _, err := Load(t.TempDir(), &parser.DefaultParser{}, nil, slog.Default()); !errors.Is(err, ErrNoTracks) {
		t.Errorf("expected no tracks, got %v", err)
	}
}

func TestFormat(t *testing.T) {
	if s := FormatDuration(145 * time.Second); s != "2 m 25 s" {
		t.Errorf("unexpected duration %q", s)
	}
	if s := FormatScore(1234567); s != "1,234,567" {
		t.Errorf("unexpected score %q", s)
	}
}
