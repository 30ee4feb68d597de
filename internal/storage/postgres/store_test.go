package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course_assembler/internal/domain"
	"course_assembler/internal/testutil"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestCourseStore_GetCourse(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewCourseStore(db)

	roadmap := `{"title":"Go","modules":[{"title":"Basics","lessons":[{"title":"Variables","custom":1}]}],"version":2}`
	mock.ExpectQuery("SELECT id, title, description, roadmap_json FROM courses").
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "roadmap_json"}).
			AddRow("c1", "Go", nil, []byte(roadmap)))

	course, err := store.GetCourse(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, "Go", course.Title)
	assert.Empty(t, course.Description)
	require.NotNil(t, course.Roadmap)
	require.Len(t, course.Roadmap.Modules, 1)
	assert.Equal(t, "Variables", course.Roadmap.Modules[0].Lessons[0].Title)
	assert.Contains(t, course.Roadmap.Extra, "version")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseStore_GetCourse_NullRoadmap(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT id, title").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "roadmap_json"}).
			AddRow("c1", "Go", "desc", nil))

	course, err := NewCourseStore(db).GetCourse(context.Background(), "c1")
	require.NoError(t, err)
	assert.Nil(t, course.Roadmap)
	assert.Equal(t, "desc", course.Description)
}

func TestCourseStore_GetCourse_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT id, title").WillReturnError(sql.ErrNoRows)

	_, err := NewCourseStore(db).GetCourse(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestCourseStore_GetRoadmap(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewCourseStore(db)

	mock.ExpectQuery("SELECT roadmap_json FROM courses").
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"roadmap_json"}).AddRow([]byte(`{"modules":[]}`)))
	raw, err := store.GetRoadmap(context.Background(), "c1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"modules":[]}`, string(raw))

	mock.ExpectQuery("SELECT roadmap_json FROM courses").
		WithArgs("c2").
		WillReturnRows(sqlmock.NewRows([]string{"roadmap_json"}).AddRow(nil))
	_, err = store.GetRoadmap(context.Background(), "c2")
	require.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestCourseStore_ReplaceRoadmap(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "updates",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE courses SET roadmap_json").
					WithArgs("c1", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "missing course",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE courses SET roadmap_json").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrCourseNotFound,
		},
		{
			name: "database error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE courses SET roadmap_json").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setup(mock)

			err := NewCourseStore(db).ReplaceRoadmap(context.Background(), "c1", &domain.Roadmap{Title: "Go"})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonStore_InsertBatch(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewLessonStore(db)

	rows := []domain.LessonRow{
		{CourseID: "c1", Title: "Intro", VideoID: testutil.Ptr("v1"), StartTime: testutil.Ptr(10.0), EndTime: testutil.Ptr(70.0), TranscriptText: testutil.Ptr("hello"), OrderIndex: 0},
		{CourseID: "c1", Title: "Maps", TranscriptText: testutil.Ptr("A map is"), OrderIndex: 1},
	}

	mock.ExpectExec(`INSERT INTO lessons .* VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7\), \(\$8, \$9, \$10, \$11, \$12, \$13, \$14\)`).
		WithArgs(
			"c1", "Intro", "v1", 10.0, 70.0, "hello", 0,
			"c1", "Maps", nil, nil, nil, "A map is", 1,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, store.InsertBatch(context.Background(), rows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonStore_InsertBatch_Empty(t *testing.T) {
	db, mock := newMockDB(t)

	require.NoError(t, NewLessonStore(db).InsertBatch(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonStore_DeleteForCourse(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("DELETE FROM lessons WHERE course_id").
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := NewLessonStore(db).DeleteForCourse(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestLessonStore_ListForCourse(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT id, course_id, title").
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "title", "video_id", "start_time", "end_time", "transcript_text", "order_index"}).
			AddRow(1, "c1", "Intro", "v1", 1.5, 9.5, "hi", 0).
			AddRow(2, "c1", "Maps", nil, nil, nil, "text", 1))

	rows, err := NewLessonStore(db).ListForCourse(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "v1", *rows[0].VideoID)
	assert.Nil(t, rows[1].VideoID)
	assert.Equal(t, 1, rows[1].OrderIndex)
}

func TestTransactionManager_CommitAndRollback(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTransactionManager(db)
	lessons := NewLessonStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM lessons").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		assert.NotNil(t, GetTxFromContext(ctx))
		_, err := lessons.DeleteForCourse(ctx, "c1")
		return err
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM lessons").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	boom := errors.New("boom")
	err = tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		if _, err := lessons.DeleteForCourse(ctx, "c1"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_NestedReusesOuter(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTransactionManager(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		outer := GetTxFromContext(ctx)
		return tm.WithTransaction(ctx, func(inner context.Context) error {
			assert.Same(t, outer, GetTxFromContext(inner))
			return nil
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
