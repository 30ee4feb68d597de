// Package transcript obtains time-coded transcripts for shortlisted
// candidates by trying an ordered list of caption strategies.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"course_assembler/internal/domain"
)

const RejectNoTranscript = "no transcript"

// ErrNotFound is returned when every strategy failed for a video.
var ErrNotFound = errors.New("transcript not found")

// Strategy is one way of obtaining captions.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, videoID string) ([]domain.TranscriptEntry, error)
}

// Cache stores transcripts across runs. Get returns nil on a miss.
type Cache interface {
	Get(ctx context.Context, videoID string) (*domain.CachedTranscript, error)
	Set(ctx context.Context, t domain.CachedTranscript) error
}

type Config struct {
	JitterMin time.Duration
	JitterMax time.Duration
}

func DefaultConfig() Config {
	return Config{JitterMin: time.Second, JitterMax: 3 * time.Second}
}

type Acquirer struct {
	strategies []Strategy
	cache      Cache
	jitterMin  time.Duration
	jitterMax  time.Duration
	logger     *slog.Logger

	sleep func(ctx context.Context, d time.Duration) error
	rand  func() float64
	now   func() time.Time
}

// NewAcquirer builds an acquirer. cache may be nil.
func NewAcquirer(strategies []Strategy, cache Cache, cfg Config, logger *slog.Logger) *Acquirer {
	if cfg.JitterMax < cfg.JitterMin {
		cfg.JitterMax = cfg.JitterMin
	}
	return &Acquirer{
		strategies: strategies,
		cache:      cache,
		jitterMin:  cfg.JitterMin,
		jitterMax:  cfg.JitterMax,
		logger:     logger.With("component", "transcript_acquirer"),
		sleep:      sleepContext,
		rand:       rand.Float64,
		now:        time.Now,
	}
}

// Fetch fills in transcripts for every shortlisted candidate that has not
// been fetched yet. Candidates with no obtainable transcript are rejected.
func (a *Acquirer) Fetch(ctx context.Context, candidates []*domain.VideoCandidate) {
	for _, c := range candidates {
		if !c.IsShortlisted || c.TranscriptFetched {
			continue
		}
		if ctx.Err() != nil {
			return
		}

		entries, source, err := a.FetchOne(ctx, c.VideoID)
		c.TranscriptFetched = true
		if err != nil {
			a.logger.Info("transcript unavailable", "video_id", c.VideoID, "error", err)
			c.TranscriptAvailable = false
			c.Reject(RejectNoTranscript)
			continue
		}

		c.RawTranscript = entries
		c.TranscriptSource = source
		c.TranscriptAvailable = true
	}
}

// FetchOne returns the transcript of one video and the name of the strategy
// that produced it.
func (a *Acquirer) FetchOne(ctx context.Context, videoID string) ([]domain.TranscriptEntry, string, error) {
	if cached := a.fromCache(ctx, videoID); cached != nil {
		return cached.Entries, cached.Source, nil
	}

	if err := a.sleep(ctx, a.jitter()); err != nil {
		return nil, "", err
	}

	var errs []error
	for _, s := range a.strategies {
		entries, err := s.Fetch(ctx, videoID)
		if err == nil && len(entries) > 0 {
			a.logger.Debug("transcript fetched", "video_id", videoID, "source", s.Name(), "entries", len(entries))
			a.toCache(ctx, videoID, s.Name(), entries)
			return entries, s.Name(), nil
		}
		if err == nil {
			err = errors.New("empty transcript")
		}
		a.logger.Debug("strategy failed", "video_id", videoID, "strategy", s.Name(), "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
	}

	if len(errs) == 0 {
		return nil, "", ErrNotFound
	}
	return nil, "", fmt.Errorf("%w: %w", ErrNotFound, errors.Join(errs...))
}

func (a *Acquirer) fromCache(ctx context.Context, videoID string) *domain.CachedTranscript {
	if a.cache == nil {
		return nil
	}
	cached, err := a.cache.Get(ctx, videoID)
	if err != nil {
		a.logger.Warn("transcript cache read failed", "video_id", videoID, "error", err)
		return nil
	}
	if cached == nil || len(cached.Entries) == 0 {
		return nil
	}
	return cached
}

func (a *Acquirer) toCache(ctx context.Context, videoID, source string, entries []domain.TranscriptEntry) {
	if a.cache == nil {
		return
	}
	err := a.cache.Set(ctx, domain.CachedTranscript{
		VideoID:   videoID,
		Source:    source,
		Entries:   entries,
		FetchedAt: a.now().UTC(),
	})
	if err != nil {
		a.logger.Warn("transcript cache write failed", "video_id", videoID, "error", err)
	}
}

func (a *Acquirer) jitter() time.Duration {
	span := a.jitterMax - a.jitterMin
	if span <= 0 {
		return a.jitterMin
	}
	return a.jitterMin + time.Duration(a.rand()*float64(span))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
