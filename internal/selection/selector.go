package selection

import (
	"log/slog"

	"course_assembler/internal/domain"
)

const (
	DefaultMinCoverage   = 0.70
	DefaultLowConfidence = 0.5
	SnippetLength        = 200

	NoteLowConfidence = "low confidence match"
)

type Config struct {
	MinCoverage   float64
	LowConfidence float64
}

// Selector turns the top-ranked candidate into a video node when its score
// clears one of the two thresholds.
type Selector struct {
	minCoverage   float64
	lowConfidence float64
	logger        *slog.Logger
}

func NewSelector(cfg Config, logger *slog.Logger) *Selector {
	if cfg.MinCoverage == 0 {
		cfg.MinCoverage = DefaultMinCoverage
	}
	if cfg.LowConfidence == 0 {
		cfg.LowConfidence = DefaultLowConfidence
	}
	return &Selector{
		minCoverage:   cfg.MinCoverage,
		lowConfidence: cfg.LowConfidence,
		logger:        logger.With("component", "lesson_selector"),
	}
}

// Select returns nil when nothing is good enough.
func (s *Selector) Select(plan domain.LessonPlan, ranked []domain.ScoredCandidate) *domain.LessonNode {
	if len(ranked) == 0 {
		return nil
	}

	top := ranked[0]
	var note string
	switch {
	case top.FinalScore >= s.minCoverage:
	case top.FinalScore >= s.lowConfidence:
		note = NoteLowConfidence
	default:
		s.logger.Debug("no candidate above threshold", "lesson", plan.Title, "top_score", top.FinalScore)
		return nil
	}

	binding := domain.VideoBinding{
		VideoID:           top.VideoID,
		StartTime:         top.BestChunk.StartTime,
		EndTime:           top.BestChunk.EndTime,
		TranscriptSnippet: Snippet(top.BestChunk.Text),
		Note:              note,
	}
	if top.Candidate != nil {
		binding.Title = top.Candidate.Title
		binding.Channel = top.Candidate.ChannelTitle
	}

	return domain.NewVideoNode(binding, plan.Description, top.FinalScore)
}

// Snippet keeps the first SnippetLength characters, appending "..." when
// the text was cut.
func Snippet(text string) string {
	r := []rune(text)
	if len(r) <= SnippetLength {
		return text
	}
	return string(r[:SnippetLength]) + "..."
}
