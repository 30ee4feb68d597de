package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	es "github.com/elastic/go-elasticsearch/v8"

	"course_assembler/internal/domain"
)

var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Embedder turns text into dense vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

type Config struct {
	Addresses []string
	Username  string
	Password  string
	Index     string
	Dims      int
}

// NewClient creates an Elasticsearch client from config.
func NewClient(cfg Config) (*es.Client, error) {
	addresses := make([]string, 0, len(cfg.Addresses))
	for _, a := range cfg.Addresses {
		if !strings.HasPrefix(a, "http://") && !strings.HasPrefix(a, "https://") {
			a = "http://" + a
		}
		addresses = append(addresses, a)
	}

	clientConfig := es.Config{Addresses: addresses}
	if cfg.Username != "" {
		clientConfig.Username = cfg.Username
		clientConfig.Password = cfg.Password
	}

	client, err := es.NewClient(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return client, nil
}

type chunkDoc struct {
	ChunkID   string    `json:"chunk_id"`
	VideoID   string    `json:"video_id"`
	StartTime float64   `json:"start_time"`
	EndTime   float64   `json:"end_time"`
	Text      string    `json:"text"`
	Embedding []float64 `json:"embedding,omitempty"`
}

// ChunkIndex stores transcript chunks with their embeddings and answers
// nearest-neighbour queries restricted to a set of videos.
type ChunkIndex struct {
	client   *es.Client
	index    string
	dims     int
	embedder Embedder
	logger   *slog.Logger
}

func NewChunkIndex(client *es.Client, cfg Config, embedder Embedder, logger *slog.Logger) *ChunkIndex {
	index := cfg.Index
	if index == "" {
		index = "transcript_chunks"
	}
	return &ChunkIndex{
		client:   client,
		index:    index,
		dims:     cfg.Dims,
		embedder: embedder,
		logger:   logger.With("component", "chunk_index", "index", index),
	}
}

// EnsureIndex creates the index with a dense_vector mapping if missing.
func (c *ChunkIndex) EnsureIndex(ctx context.Context) error {
	res, err := c.client.Indices.Exists([]string{c.index}, c.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to check index: %w", err)
	}
	res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("error checking index: %s", res.String())
	}

	mapping := map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"chunk_id":   map[string]any{"type": "keyword"},
				"video_id":   map[string]any{"type": "keyword"},
				"start_time": map[string]any{"type": "float"},
				"end_time":   map[string]any{"type": "float"},
				"text":       map[string]any{"type": "text"},
				"embedding": map[string]any{
					"type":       "dense_vector",
					"dims":       c.dims,
					"index":      true,
					"similarity": "l2_norm",
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(mapping); err != nil {
		return fmt.Errorf("failed to encode mapping: %w", err)
	}

	res, err = c.client.Indices.Create(
		c.index,
		c.client.Indices.Create.WithContext(ctx),
		c.client.Indices.Create.WithBody(&buf),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating index: %s", res.String())
	}

	c.logger.Info("index created", "dims", c.dims)
	return nil
}

// Upsert embeds and indexes chunks keyed by chunk id, then refreshes so the
// chunks are immediately searchable.
func (c *ChunkIndex) Upsert(ctx context.Context, chunks []domain.TranscriptChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	vectors, err := c.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embed chunks: got %d vectors for %d chunks", len(vectors), len(chunks))
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i, ch := range chunks {
		if c.dims > 0 && len(vectors[i]) != c.dims {
			return fmt.Errorf("%w: chunk %s has %d, want %d", ErrDimensionMismatch, ch.ChunkID, len(vectors[i]), c.dims)
		}
		meta := map[string]any{
			"index": map[string]any{"_index": c.index, "_id": ch.ChunkID},
		}
		if err := enc.Encode(meta); err != nil {
			return fmt.Errorf("failed to encode meta: %w", err)
		}
		doc := chunkDoc{
			ChunkID:   ch.ChunkID,
			VideoID:   ch.VideoID,
			StartTime: ch.StartTime,
			EndTime:   ch.EndTime,
			Text:      ch.Text,
			Embedding: vectors[i],
		}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode chunk: %w", err)
		}
	}

	res, err := c.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		c.client.Bulk.WithContext(ctx),
		c.client.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("bulk request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk indexing error: %s", res.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			ID    string `json:"_id"`
			Error *struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulkResp); err != nil {
		return fmt.Errorf("error decoding bulk response: %w", err)
	}
	if bulkResp.Errors {
		for _, item := range bulkResp.Items {
			for _, op := range item {
				if op.Error != nil {
					return fmt.Errorf("bulk item %s failed: %s: %s", op.ID, op.Error.Type, op.Error.Reason)
				}
			}
		}
		return errors.New("bulk indexing reported errors")
	}

	c.logger.Debug("chunks indexed", "count", len(chunks))
	return nil
}

// Query returns up to k chunks closest to text among the given videos.
// l2_norm scores are 1/(1+d²); Distance is d², so 1/(1+Distance) is the
// score again.
func (c *ChunkIndex) Query(ctx context.Context, text string, k int, videoIDs []string) ([]domain.ChunkMatch, error) {
	if len(videoIDs) == 0 || k <= 0 {
		return nil, nil
	}

	vectors, err := c.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embed query: got %d vectors", len(vectors))
	}

	query := map[string]any{
		"knn": map[string]any{
			"field":          "embedding",
			"query_vector":   vectors[0],
			"k":              k,
			"num_candidates": max(k*10, 100),
			"filter": map[string]any{
				"terms": map[string]any{"video_id": videoIDs},
			},
		},
		"size":    k,
		"_source": []string{"chunk_id", "video_id", "start_time", "end_time", "text"},
	}

	queryBytes, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	res, err := c.client.Search(
		c.client.Search.WithContext(ctx),
		c.client.Search.WithIndex(c.index),
		c.client.Search.WithBody(bytes.NewReader(queryBytes)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching: %s", res.String())
	}

	var searchResult struct {
		Hits struct {
			Hits []struct {
				ID     string   `json:"_id"`
				Score  float64  `json:"_score"`
				Source chunkDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&searchResult); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	matches := make([]domain.ChunkMatch, 0, len(searchResult.Hits.Hits))
	for _, hit := range searchResult.Hits.Hits {
		id := hit.Source.ChunkID
		if id == "" {
			id = hit.ID
		}
		matches = append(matches, domain.ChunkMatch{
			ChunkID:   id,
			Distance:  scoreToDistance(hit.Score),
			VideoID:   hit.Source.VideoID,
			StartTime: hit.Source.StartTime,
			EndTime:   hit.Source.EndTime,
			Text:      hit.Source.Text,
		})
	}
	return matches, nil
}

func scoreToDistance(score float64) float64 {
	if score <= 0 {
		return 1e9
	}
	d := 1/score - 1
	if d < 0 {
		return 0
	}
	return d
}
