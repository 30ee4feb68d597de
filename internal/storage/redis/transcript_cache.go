package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"course_assembler/internal/domain"
)

const (
	connectionTimeout = 2 * time.Second
	defaultKeyPrefix  = "transcript:"
	defaultTTL        = 7 * 24 * time.Hour
)

// NewClient creates a Redis client and checks the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// TranscriptCache keeps fetched transcripts as JSON values with a TTL.
type TranscriptCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewTranscriptCache(client redis.UniversalClient, prefix string, ttl time.Duration) *TranscriptCache {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &TranscriptCache{client: client, prefix: prefix, ttl: ttl}
}

// Get returns nil, nil on a miss.
func (c *TranscriptCache) Get(ctx context.Context, videoID string) (*domain.CachedTranscript, error) {
	raw, err := c.client.Get(ctx, c.key(videoID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transcript: %w", err)
	}

	var t domain.CachedTranscript
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	return &t, nil
}

func (c *TranscriptCache) Set(ctx context.Context, t domain.CachedTranscript) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	if err := c.client.Set(ctx, c.key(t.VideoID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set transcript: %w", err)
	}
	return nil
}

func (c *TranscriptCache) key(videoID string) string {
	return c.prefix + videoID
}
