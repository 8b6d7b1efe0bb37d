package clock

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DriftTolerance is how far the media may wander before it is reset
	DriftTolerance = 500 * time.Millisecond
	// ResyncInterval is how often the media position is compared
	ResyncInterval = 250 * time.Millisecond
)

// Media is a playing track that can report and change its position
type Media interface {
	Position() time.Duration
	Seek(d time.Duration) error
	Play()
	Pause()
}

// Transport keeps a media element following the clock. The clock is
// authoritative, so scoring never depends on a stalled decoder.
type Transport struct {
	Clock *Clock

	media     Media
	tolerance time.Duration
	limiter   *rate.Limiter
	log       *slog.Logger
	resyncs   int
}

// NewTransport wraps a clock, media may be nil for songs without audio
func NewTransport(c *Clock, media Media, log *slog.Logger) *Transport {
	if nil == log {
		log = slog.Default()
	}
	return &Transport{
		Clock:     c,
		media:     media,
		tolerance: DriftTolerance,
		limiter:   rate.NewLimiter(rate.Every(ResyncInterval), 1),
		log:       log,
	}
}

func (t *Transport) Start() {
	t.Clock.Start()
	if nil == t.media {
		return
	}
	if err := t.media.Seek(0); nil != err {
		t.log.Warn("unable to rewind media", "err", err)
	}
	t.media.Play()
}

func (t *Transport) Pause() {
	t.Clock.Pause()
	if nil != t.media {
		t.media.Pause()
	}
}

func (t *Transport) Resume() {
	t.Clock.Resume()
	if nil != t.media {
		t.media.Play()
	}
}

func (t *Transport) Stop() {
	t.Clock.Stop()
	if nil != t.media {
		t.media.Pause()
	}
}

// Sync compares the media position with the clock at most once per
// ResyncInterval, and seeks the media when it drifted past the tolerance.
// It reports whether a seek happened.
func (t *Transport) Sync() bool {
	if nil == t.media || !t.Clock.Running() || t.Clock.Paused() {
		return false
	}
	if !t.limiter.AllowN(t.Clock.Wall(), 1) {
		return false
	}
	now := t.Clock.Now()
	drift := t.media.Position() - now
	if drift < 0 {
		drift = -drift
	}
	if drift <= t.tolerance {
		return false
	}
	if err := t.media.Seek(now); nil != err {
		t.log.Warn("unable to resync media", "err", err)
		return false
	}
	t.resyncs++
	t.log.Debug("media resynced", "drift", drift, "at", now)
	return true
}

// Resyncs counts the corrections made since the transport was created
func (t *Transport) Resyncs() int {
	return t.resyncs
}
