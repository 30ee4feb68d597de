package youtube

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"course_assembler/internal/domain"
)

const videosBatchSize = 50

// Config holds YouTube Data API settings.
type Config struct {
	APIKey            string
	Endpoint          string
	RequestsPerSecond float64
	RelevanceLanguage string
}

// Client searches YouTube and enriches hits with duration and statistics.
type Client struct {
	svc      *yt.Service
	limiter  *rate.Limiter
	language string
	logger   *slog.Logger
}

// New builds a client. Extra options are appended after the API key so
// tests can point it at a fake endpoint.
func New(ctx context.Context, cfg Config, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	clientOpts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(cfg.Endpoint))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := yt.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	lang := cfg.RelevanceLanguage
	if lang == "" {
		lang = "en"
	}

	return &Client{
		svc:      svc,
		limiter:  rate.NewLimiter(rate.Limit(rps), 1),
		language: lang,
		logger:   logger.With("component", "youtube"),
	}, nil
}

// Search runs a video search and resolves details for every hit.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]domain.SearchResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Search.List([]string{"id", "snippet"}).
		Q(query).
		MaxResults(int64(maxResults)).
		Type("video").
		RelevanceLanguage(c.language).
		VideoEmbeddable("true").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("search list: %w", err)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		ids = append(ids, item.Id.VideoId)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	details, err := c.videoDetails(ctx, ids)
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(ids))
	for _, id := range ids {
		v, ok := details[id]
		if !ok {
			c.logger.Debug("video details missing", "video_id", id)
			continue
		}
		results = append(results, toSearchResult(v))
	}

	c.logger.Debug("search completed", "query", query, "hits", len(ids), "results", len(results))
	return results, nil
}

func (c *Client) videoDetails(ctx context.Context, ids []string) (map[string]*yt.Video, error) {
	out := make(map[string]*yt.Video, len(ids))
	for start := 0; start < len(ids); start += videosBatchSize {
		end := min(start+videosBatchSize, len(ids))

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		resp, err := c.svc.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
			Id(ids[start:end]...).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("videos list: %w", err)
		}
		for _, v := range resp.Items {
			out[v.Id] = v
		}
	}
	return out, nil
}

func toSearchResult(v *yt.Video) domain.SearchResult {
	r := domain.SearchResult{VideoID: v.Id}
	if v.Snippet != nil {
		r.Title = v.Snippet.Title
		r.ChannelTitle = v.Snippet.ChannelTitle
		r.ChannelID = v.Snippet.ChannelId
		if t, err := time.Parse(time.RFC3339, v.Snippet.PublishedAt); err == nil {
			r.PublishedAt = t
		}
	}
	if v.ContentDetails != nil {
		r.Duration = v.ContentDetails.Duration
		r.HasCaptions = v.ContentDetails.Caption == "true"
	}
	if v.Statistics != nil {
		r.ViewCount = int64(v.Statistics.ViewCount)
		r.LikeCount = int64(v.Statistics.LikeCount)
	}
	return r
}
