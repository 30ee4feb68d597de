package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"course_assembler/internal/domain"
)

// Oracle is the similarity index over transcript chunks.
type Oracle interface {
	Upsert(ctx context.Context, chunks []domain.TranscriptChunk) error
	Query(ctx context.Context, text string, k int, videoIDs []string) ([]domain.ChunkMatch, error)
}

// LessonModel is the language model surface the scorer needs.
type LessonModel interface {
	SummarizeLesson(ctx context.Context, title, description string) (string, error)
	ScoreCoverage(ctx context.Context, spec, transcript string) (domain.CoverageReport, error)
}

type Config struct {
	TopK             int
	SimilarityWeight float64
	MetaWeight       float64
}

func DefaultConfig() Config {
	return Config{TopK: 10, SimilarityWeight: 0.7, MetaWeight: 0.3}
}

type Scorer struct {
	oracle Oracle
	model  LessonModel
	cfg    Config
	logger *slog.Logger
}

func NewScorer(oracle Oracle, model LessonModel, cfg Config, logger *slog.Logger) *Scorer {
	def := DefaultConfig()
	if cfg.TopK <= 0 {
		cfg.TopK = def.TopK
	}
	if cfg.SimilarityWeight == 0 && cfg.MetaWeight == 0 {
		cfg.SimilarityWeight = def.SimilarityWeight
		cfg.MetaWeight = def.MetaWeight
	}
	return &Scorer{
		oracle: oracle,
		model:  model,
		cfg:    cfg,
		logger: logger.With("component", "similarity_scorer"),
	}
}

// Index makes chunks available to later queries.
func (s *Scorer) Index(ctx context.Context, chunks []domain.TranscriptChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	if err := s.oracle.Upsert(ctx, chunks); err != nil {
		return fmt.Errorf("index chunks: %w", err)
	}
	return nil
}

// LessonSpec condenses the plan into a query string. A model failure falls
// back to a spec built from the title alone.
func (s *Scorer) LessonSpec(ctx context.Context, plan domain.LessonPlan) string {
	spec, err := s.model.SummarizeLesson(ctx, plan.Title, plan.Description)
	if err != nil || spec == "" {
		s.logger.Warn("lesson spec generation failed, using fallback", "lesson", plan.Title, "error", err)
		return "Teach: " + plan.Title
	}
	return spec
}

// Score ranks shortlisted candidates by blended similarity and metadata
// score, best first. Candidates with no matching chunk are omitted.
func (s *Scorer) Score(ctx context.Context, plan domain.LessonPlan, candidates []*domain.VideoCandidate) ([]domain.ScoredCandidate, error) {
	if len(shortlistedIDs(candidates)) == 0 {
		return nil, nil
	}
	return s.ScoreWithSpec(ctx, s.LessonSpec(ctx, plan), candidates)
}

// ScoreWithSpec is Score with a lesson spec the caller already holds.
func (s *Scorer) ScoreWithSpec(ctx context.Context, spec string, candidates []*domain.VideoCandidate) ([]domain.ScoredCandidate, error) {
	ids := shortlistedIDs(candidates)
	if len(ids) == 0 {
		return nil, nil
	}
	byID := make(map[string]*domain.VideoCandidate, len(ids))
	for _, c := range candidates {
		if c.IsShortlisted {
			if _, ok := byID[c.VideoID]; !ok {
				byID[c.VideoID] = c
			}
		}
	}

	matches, err := s.oracle.Query(ctx, spec, s.cfg.TopK, ids)
	if err != nil {
		return nil, fmt.Errorf("query similar chunks: %w", err)
	}

	best := make(map[string]domain.ChunkMatch)
	for _, m := range matches {
		if _, ok := byID[m.VideoID]; !ok {
			continue
		}
		if cur, ok := best[m.VideoID]; !ok || m.Distance < cur.Distance {
			best[m.VideoID] = m
		}
	}

	scored := make([]domain.ScoredCandidate, 0, len(best))
	for _, id := range ids {
		m, ok := best[id]
		if !ok {
			continue
		}
		c := byID[id]
		similarity := 1 / (1 + m.Distance)
		scored = append(scored, domain.ScoredCandidate{
			VideoID:         id,
			FinalScore:      s.cfg.SimilarityWeight*similarity + s.cfg.MetaWeight*c.MetaScore,
			SimilarityScore: similarity,
			MetaScore:       c.MetaScore,
			BestChunk:       m,
			Candidate:       c,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})

	s.logger.Debug("candidates scored", "spec", spec, "shortlisted", len(ids), "scored", len(scored))
	return scored, nil
}

// Verify asks the model for a coverage report on a chunk. It never changes
// scores.
func (s *Scorer) Verify(ctx context.Context, spec, text string) (*domain.CoverageReport, error) {
	report, err := s.model.ScoreCoverage(ctx, spec, text)
	if err != nil {
		return nil, fmt.Errorf("verify coverage: %w", err)
	}
	return &report, nil
}

func shortlistedIDs(candidates []*domain.VideoCandidate) []string {
	seen := make(map[string]struct{}, len(candidates))
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if !c.IsShortlisted {
			continue
		}
		if _, dup := seen[c.VideoID]; dup {
			continue
		}
		seen[c.VideoID] = struct{}{}
		ids = append(ids, c.VideoID)
	}
	return ids
}
