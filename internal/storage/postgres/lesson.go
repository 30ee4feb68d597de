package postgres

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"course_assembler/internal/domain"
)

const lessonColumns = 7

type LessonStore struct {
	db *sqlx.DB
}

func NewLessonStore(db *sqlx.DB) *LessonStore {
	return &LessonStore{db: db}
}

func (s *LessonStore) DeleteForCourse(ctx context.Context, courseID string) (int64, error) {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM lessons WHERE course_id = $1",
		courseID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *LessonStore) InsertBatch(ctx context.Context, rows []domain.LessonRow) error {
	if len(rows) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO lessons (course_id, title, video_id, start_time, end_time, transcript_text, order_index) VALUES ")
	valueArgs := make([]interface{}, 0, len(rows)*lessonColumns)

	for i, r := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for c := 0; c < lessonColumns; c++ {
			if c > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("$")
			sb.WriteString(itoa(i*lessonColumns + c + 1))
		}
		sb.WriteString(")")
		valueArgs = append(valueArgs,
			r.CourseID,
			r.Title,
			r.VideoID,
			r.StartTime,
			r.EndTime,
			r.TranscriptText,
			r.OrderIndex,
		)
	}

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, sb.String(), valueArgs...)
	return err
}

func (s *LessonStore) ListForCourse(ctx context.Context, courseID string) ([]domain.LessonRow, error) {
	query := `
		SELECT id, course_id, title, video_id, start_time, end_time, transcript_text, order_index
		FROM lessons
		WHERE course_id = $1
		ORDER BY order_index`

	var rows []domain.LessonRow
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, courseID)
	return rows, err
}

func itoa(i int) string {
	if i < 10 {
		return string(rune('0' + i))
	}
	return itoa(i/10) + string(rune('0'+i%10))
}
