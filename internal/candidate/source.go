package candidate

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"course_assembler/internal/domain"
)

const DefaultSearchSuffix = "tutorial education"

// Searcher is the external video search collaborator.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]domain.SearchResult, error)
}

type SourceConfig struct {
	Suffix  string
	Weights Weights
}

// Source turns a topic into a ranked pool of candidates.
type Source struct {
	searcher Searcher
	suffix   string
	weights  Weights
	logger   *slog.Logger
}

func NewSource(searcher Searcher, cfg SourceConfig, logger *slog.Logger) *Source {
	if cfg.Suffix == "" {
		cfg.Suffix = DefaultSearchSuffix
	}
	if cfg.Weights == (Weights{}) {
		cfg.Weights = DefaultWeights()
	}
	return &Source{
		searcher: searcher,
		suffix:   cfg.Suffix,
		weights:  cfg.Weights,
		logger:   logger.With("component", "candidate_source"),
	}
}

// Search never fails: a collaborator error yields an empty pool.
func (s *Source) Search(ctx context.Context, topic string, maxResults int) []*domain.VideoCandidate {
	query := strings.TrimSpace(topic + " " + s.suffix)
	s.logger.Info("searching videos", "query", query, "max_results", maxResults)

	results, err := s.searcher.Search(ctx, query, maxResults)
	if err != nil {
		s.logger.Error("video search failed", "query", query, "error", err)
		return nil
	}

	candidates := make([]*domain.VideoCandidate, 0, len(results))
	for _, r := range results {
		c := &domain.VideoCandidate{
			VideoID:         r.VideoID,
			Title:           r.Title,
			ChannelTitle:    r.ChannelTitle,
			ChannelID:       r.ChannelID,
			DurationSeconds: ParseISODuration(r.Duration),
			ViewCount:       r.ViewCount,
			LikeCount:       r.LikeCount,
			PublishedAt:     r.PublishedAt,
			HasCaptions:     r.HasCaptions,
			IsShortlisted:   true,
		}
		c.MetaScore = MetaScore(c, s.weights)
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MetaScore > candidates[j].MetaScore
	})

	s.logger.Debug("search results mapped", "query", query, "candidates", len(candidates))
	return candidates
}
