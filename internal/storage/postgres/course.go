package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"course_assembler/internal/domain"
)

type CourseStore struct {
	db *sqlx.DB
}

func NewCourseStore(db *sqlx.DB) *CourseStore {
	return &CourseStore{db: db}
}

type courseRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Roadmap     []byte         `db:"roadmap_json"`
}

func (s *CourseStore) GetCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	query := `
		SELECT id, title, description, roadmap_json
		FROM courses
		WHERE id = $1`

	var row courseRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, courseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	course := &domain.Course{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description.String,
	}
	if len(row.Roadmap) > 0 && string(row.Roadmap) != "null" {
		var roadmap domain.Roadmap
		if err := json.Unmarshal(row.Roadmap, &roadmap); err != nil {
			return nil, fmt.Errorf("decode roadmap: %w", err)
		}
		course.Roadmap = &roadmap
	}
	return course, nil
}

// GetRoadmap returns the stored roadmap document as is, or
// domain.ErrCourseNotFound when the course or its roadmap is missing.
func (s *CourseStore) GetRoadmap(ctx context.Context, courseID string) (json.RawMessage, error) {
	var raw []byte
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &raw,
		"SELECT roadmap_json FROM courses WHERE id = $1", courseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, domain.ErrCourseNotFound
	}
	return raw, nil
}

func (s *CourseStore) ReplaceRoadmap(ctx context.Context, courseID string, roadmap *domain.Roadmap) error {
	doc, err := json.Marshal(roadmap)
	if err != nil {
		return fmt.Errorf("encode roadmap: %w", err)
	}

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"UPDATE courses SET roadmap_json = $2, updated_at = NOW() WHERE id = $1",
		courseID, string(doc),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}
