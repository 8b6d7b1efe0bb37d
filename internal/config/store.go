package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

const settingsKey = "settings"

// KV is the profile key value storage settings are persisted in
type KV interface {
	Profile(key string) (string, bool, error)
	SetProfile(key, value string) error
}

// Store owns the current settings and notifies subscribers on change
type Store struct {
	kv          KV
	current     Settings
	subscribers []func(Settings)
	log         *slog.Logger
}

// Load reads persisted settings over the defaults, then applies the environment
func Load(kv KV, log *slog.Logger) (*Store, error) {
	s := Default()
	if nil != kv {
		data, ok, err := kv.Profile(settingsKey)
		if nil != err {
			return nil, fmt.Errorf("unable to read settings: %w", err)
		}
		if ok {
			if err := json.Unmarshal([]byte(data), &s); nil != err {
				return nil, fmt.Errorf("unable to decode settings: %w", err)
			}
		}
	}
	s, err := FromEnv(s)
	if nil != err {
		return nil, err
	}
	if err := s.Validate(); nil != err {
		return nil, err
	}
	return &Store{kv: kv, current: s, log: log}, nil
}

func (st *Store) Get() Settings {
	return st.current
}

// Update applies fn to a copy of the settings, and only keeps the result if valid
func (st *Store) Update(fn func(*Settings)) error {
	next := st.current
	fn(&next)
	next = next.Normalize()
	if err := next.Validate(); nil != err {
		return err
	}
	if nil != st.kv {
		data, err := json.Marshal(next)
		if nil != err {
			return fmt.Errorf("unable to encode settings: %w", err)
		}
		if err := st.kv.SetProfile(settingsKey, string(data)); nil != err {
			return fmt.Errorf("unable to save settings: %w", err)
		}
	}
	st.current = next
	if nil != st.log {
		st.log.Debug("settings changed", "noteSpeed", next.NoteSpeed, "autoFever", next.AutoFever)
	}
	for _, fn := range st.subscribers {
		fn(next)
	}
	return nil
}

// Override changes the settings for this process only, without persisting
func (st *Store) Override(fn func(*Settings)) error {
	kv := st.kv
	st.kv = nil
	defer func() { st.kv = kv }()
	return st.Update(fn)
}

func (st *Store) Subscribe(fn func(Settings)) {
	st.subscribers = append(st.subscribers, fn)
}
