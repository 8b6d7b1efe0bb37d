package score

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"git.lost.host/meutraa/djmix/internal/game"
	_ "github.com/mattn/go-sqlite3"
)

const creditsKey = "credits"

// DefaultScorer keeps results and the player profile in sqlite
type DefaultScorer struct {
	db  *sql.DB
	Log *slog.Logger
}

func (s *DefaultScorer) Init(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("unable to open %v: %w", path, err)
	}

	initStatement := `
	create table if not exists scores 
	  (
		  id integer not null primary key, 
		  track text not null,
		  title text,
		  difficulty text,
		  score integer,
		  accuracy real,
		  max_combo integer,
		  combo integer,
		  outcome text,
		  seed text,
		  inputs bytearray,
		  created integer
	  );
	create index if not exists scores_track on scores(track, score desc);
	create table if not exists profile
	  (
		  key text not null primary key,
		  value text
	  );
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return fmt.Errorf("unable to create tables: %w", err)
	}

	s.db = db
	if nil == s.Log {
		s.Log = slog.Default()
	}
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

func (s *DefaultScorer) Save(sub *Submission) error {
	data, err := json.Marshal(compactInputs(sub.Inputs))
	if nil != err {
		return fmt.Errorf("unable to marshal inputs: %w", err)
	}
	created := sub.Created
	if created.IsZero() {
		created = time.Now()
	}

	tx, err := s.db.Begin()
	if nil != err {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"insert into scores(track, title, difficulty, score, accuracy, max_combo, combo, outcome, seed, inputs, created) values(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		sub.TrackID, sub.Title, string(sub.Difficulty), sub.Score, sub.Accuracy, sub.MaxCombo, sub.Combo,
		string(sub.Outcome), strconv.FormatUint(sub.Seed, 10), data, created.UnixMilli(),
	)
	if nil != err {
		return fmt.Errorf("unable to save score: %w", err)
	}

	credits, err := credits(tx)
	if nil != err {
		return err
	}
	if err := setProfile(tx, creditsKey, strconv.FormatInt(credits+sub.Credits(), 10)); nil != err {
		return err
	}
	if err := tx.Commit(); nil != err {
		return fmt.Errorf("unable to commit score: %w", err)
	}
	s.Log.Info("score saved", "track", sub.TrackID, "score", sub.Score, "outcome", sub.Outcome)
	return nil
}

func (s *DefaultScorer) query(q string, args ...any) ([]History, error) {
	rows, err := s.db.Query(q, args...)
	if nil != err {
		return nil, fmt.Errorf("unable to load scores: %w", err)
	}
	defer rows.Close()

	histories := []History{}
	for rows.Next() {
		var h History
		var difficulty, outcome, seed string
		var inputs []byte
		var created int64
		if err := rows.Scan(&h.ID, &h.TrackID, &h.Title, &difficulty, &h.Score, &h.Accuracy,
			&h.MaxCombo, &h.Combo, &outcome, &seed, &inputs, &created); nil != err {
			return nil, err
		}
		h.Difficulty = game.Difficulty(difficulty)
		h.Outcome = Outcome(outcome)
		h.Seed, _ = strconv.ParseUint(seed, 10, 64)
		h.Created = time.UnixMilli(created)
		var ns []InputsCompact
		if err := json.Unmarshal(inputs, &ns); nil != err {
			s.Log.Warn("unable to unmarshal input history", "id", h.ID, "err", err)
		} else {
			h.Inputs = uncompactInputs(ns)
		}
		histories = append(histories, h)
	}
	return histories, rows.Err()
}

const columns = "id, track, title, difficulty, score, accuracy, max_combo, combo, outcome, seed, inputs, created"

func (s *DefaultScorer) Load(trackID string) ([]History, error) {
	return s.query("select "+columns+" from scores where track = ? order by created", trackID)
}

func (s *DefaultScorer) Top(trackID string, n int) ([]Submission, error) {
	histories, err := s.query("select "+columns+" from scores where track = ? order by score desc, created limit ?", trackID, n)
	if nil != err {
		return nil, err
	}
	top := make([]Submission, len(histories))
	for i, h := range histories {
		top[i] = h.Submission
	}
	return top, nil
}

func (s *DefaultScorer) Credits() (int64, error) {
	return credits(s.db)
}

type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
}

func credits(q querier) (int64, error) {
	v, ok, err := profile(q, creditsKey)
	if nil != err || !ok {
		return 0, err
	}
	return strconv.ParseInt(v, 10, 64)
}

func profile(q querier, key string) (string, bool, error) {
	var value string
	err := q.QueryRow("select value from profile where key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if nil != err {
		return "", false, fmt.Errorf("unable to read profile %v: %w", key, err)
	}
	return value, true, nil
}

func setProfile(q querier, key, value string) error {
	if _, err := q.Exec("insert into profile(key, value) values(?, ?) on conflict(key) do update set value = excluded.value", key, value); nil != err {
		return fmt.Errorf("unable to write profile %v: %w", key, err)
	}
	return nil
}

// Profile implements config.KV
func (s *DefaultScorer) Profile(key string) (string, bool, error) {
	return profile(s.db, key)
}

func (s *DefaultScorer) SetProfile(key, value string) error {
	return setProfile(s.db, key, value)
}
