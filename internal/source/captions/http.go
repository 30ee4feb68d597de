// Package captions fetches YouTube caption tracks without the Data API.
// Two independent strategies are provided: the timedtext endpoint and the
// caption tracks embedded in the watch page.
package captions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultBaseURL = "https://www.youtube.com"

var (
	// ErrNoTracks is returned when a video exposes no usable caption track.
	ErrNoTracks = errors.New("no caption tracks")

	errNotFoundStatus = errors.New("not found")
)

// Config holds HTTP settings shared by both strategies.
type Config struct {
	BaseURL        string
	Language       string
	UserAgent      string
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func (c *Config) setDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.UserAgent == "" {
		c.UserAgent = "Mozilla/5.0 (compatible; CourseAssembler/1.0)"
	}
	if c.Timeout == 0 {
		c.Timeout = 15 * time.Second
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 3
	}
	if c.InitialBackoff == 0 {
		c.InitialBackoff = 500 * time.Millisecond
	}
	if c.MaxBackoff == 0 {
		c.MaxBackoff = 5 * time.Second
	}
}

type fetcher struct {
	httpClient     *http.Client
	userAgent      string
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

func newFetcher(cfg Config, logger *slog.Logger) *fetcher {
	return &fetcher{
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		userAgent:      cfg.UserAgent,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger,
	}
}

// get retries transient failures with exponential backoff. A 404 is final.
func (f *fetcher) get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	var err error

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		body, err = f.doRequest(ctx, url)
		if err == nil {
			return body, nil
		}
		if errors.Is(err, errNotFoundStatus) || attempt == f.maxAttempts {
			break
		}

		backoff := f.calculateBackoff(attempt)
		f.logger.Warn("request failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", f.maxAttempts, err)
}

func (f *fetcher) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFoundStatus
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func (f *fetcher) calculateBackoff(attempt int) time.Duration {
	backoff := f.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > f.maxBackoff {
		backoff = f.maxBackoff
	}
	return backoff
}
