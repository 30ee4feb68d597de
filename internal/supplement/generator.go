package supplement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"course_assembler/internal/domain"
)

var ErrEmptyContent = errors.New("empty supplement content")

// Writer produces lesson text for a topic and learner level.
type Writer interface {
	GenerateSupplement(ctx context.Context, topic, level string) (string, error)
}

type Generator struct {
	writer       Writer
	defaultLevel string
	logger       *slog.Logger
}

func NewGenerator(writer Writer, defaultLevel string, logger *slog.Logger) *Generator {
	if defaultLevel == "" {
		defaultLevel = "beginner"
	}
	return &Generator{
		writer:       writer,
		defaultLevel: defaultLevel,
		logger:       logger.With("component", "supplement_generator"),
	}
}

// Generate builds a text node for a lesson that has no suitable video.
func (g *Generator) Generate(ctx context.Context, plan domain.LessonPlan) (*domain.LessonNode, error) {
	level := plan.TargetLevel
	if level == "" {
		level = g.defaultLevel
	}

	content, err := g.writer.GenerateSupplement(ctx, plan.Title, level)
	if err != nil {
		return nil, fmt.Errorf("generate supplement for %q: %w", plan.Title, err)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("generate supplement for %q: %w", plan.Title, ErrEmptyContent)
	}

	g.logger.Debug("supplement generated", "lesson", plan.Title, "level", level, "words", len(strings.Fields(content)))
	return domain.NewTextNode(plan.Title, content, plan.Description), nil
}
