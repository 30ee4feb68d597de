package persistence

import (
	"context"
	"fmt"
	"log/slog"

	"course_assembler/internal/domain"
)

type RoadmapStore interface {
	ReplaceRoadmap(ctx context.Context, courseID string, roadmap *domain.Roadmap) error
}

type LessonRowStore interface {
	DeleteForCourse(ctx context.Context, courseID string) (int64, error)
	InsertBatch(ctx context.Context, rows []domain.LessonRow) error
}

type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Writer stores an assembled roadmap and rebuilds the derived lesson rows.
// The roadmap update and the lesson rebuild are separate steps: a failure
// in the second leaves the new roadmap with the old rows.
type Writer struct {
	roadmaps RoadmapStore
	lessons  LessonRowStore
	tx       Transactor
	logger   *slog.Logger
}

func NewWriter(roadmaps RoadmapStore, lessons LessonRowStore, tx Transactor, logger *slog.Logger) *Writer {
	return &Writer{
		roadmaps: roadmaps,
		lessons:  lessons,
		tx:       tx,
		logger:   logger.With("component", "persistence_writer"),
	}
}

func (w *Writer) Save(ctx context.Context, courseID string, roadmap *domain.Roadmap) error {
	if err := w.roadmaps.ReplaceRoadmap(ctx, courseID, roadmap); err != nil {
		return fmt.Errorf("replace roadmap: %w", err)
	}

	rows := LessonRows(courseID, roadmap)
	var deleted int64
	err := w.tx.WithTransaction(ctx, func(ctx context.Context) error {
		n, err := w.lessons.DeleteForCourse(ctx, courseID)
		if err != nil {
			return fmt.Errorf("delete lessons: %w", err)
		}
		deleted = n
		if err := w.lessons.InsertBatch(ctx, rows); err != nil {
			return fmt.Errorf("insert lessons: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("rebuild lessons: %w", err)
	}

	w.logger.Info("roadmap saved", "course_id", courseID, "lessons", len(rows), "replaced", deleted)
	return nil
}

// LessonRows flattens a roadmap into lesson rows in module and lesson order.
func LessonRows(courseID string, roadmap *domain.Roadmap) []domain.LessonRow {
	if roadmap == nil {
		return nil
	}
	rows := make([]domain.LessonRow, 0, roadmap.TotalLessons())
	for _, m := range roadmap.Modules {
		for _, l := range m.Lessons {
			row := domain.LessonRow{
				CourseID:   courseID,
				Title:      l.Title,
				StartTime:  l.StartTime,
				EndTime:    l.EndTime,
				OrderIndex: len(rows),
			}
			if l.VideoID != "" {
				id := l.VideoID
				row.VideoID = &id
			}
			text := l.TranscriptSnippet
			if text == "" {
				text = l.Content
			}
			if text != "" {
				row.TranscriptText = &text
			}
			rows = append(rows, row)
		}
	}
	return rows
}
