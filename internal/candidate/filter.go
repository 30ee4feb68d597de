package candidate

import (
	"log/slog"

	"course_assembler/internal/domain"
)

const (
	ReasonTooShort    = "too short"
	ReasonTooLong     = "too long"
	ReasonTooFewViews = "too few views"
)

type FilterConfig struct {
	MinDurationSeconds int
	MaxDurationSeconds int
	MinViews           int64
}

func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinDurationSeconds: 60,
		MaxDurationSeconds: 7200,
		MinViews:           100,
	}
}

// Filter is the hard pass/fail gate applied before any transcript work.
type Filter struct {
	cfg    FilterConfig
	logger *slog.Logger
}

func NewFilter(cfg FilterConfig, logger *slog.Logger) *Filter {
	def := DefaultFilterConfig()
	if cfg.MinDurationSeconds == 0 {
		cfg.MinDurationSeconds = def.MinDurationSeconds
	}
	if cfg.MaxDurationSeconds == 0 {
		cfg.MaxDurationSeconds = def.MaxDurationSeconds
	}
	if cfg.MinViews == 0 {
		cfg.MinViews = def.MinViews
	}
	return &Filter{cfg: cfg, logger: logger.With("component", "constraint_filter")}
}

// Apply returns the candidates that pass every rule, in input order, and
// marks the rest as rejected.
func (f *Filter) Apply(candidates []*domain.VideoCandidate) []*domain.VideoCandidate {
	passed := make([]*domain.VideoCandidate, 0, len(candidates))
	for _, c := range candidates {
		if reason := f.rejection(c); reason != "" {
			c.Reject(reason)
			continue
		}
		passed = append(passed, c)
	}

	f.logger.Debug("constraints applied", "passed", len(passed), "total", len(candidates))
	return passed
}

func (f *Filter) rejection(c *domain.VideoCandidate) string {
	switch {
	case c.DurationSeconds < f.cfg.MinDurationSeconds:
		return ReasonTooShort
	case c.DurationSeconds > f.cfg.MaxDurationSeconds:
		return ReasonTooLong
	case c.ViewCount < f.cfg.MinViews:
		return ReasonTooFewViews
	default:
		return ""
	}
}
