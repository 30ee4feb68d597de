package domain

import "time"

// LessonRow is the flattened lesson record rebuilt after every run.
type LessonRow struct {
	ID             int64    `db:"id"`
	CourseID       string   `db:"course_id"`
	Title          string   `db:"title"`
	VideoID        *string  `db:"video_id"`
	StartTime      *float64 `db:"start_time"`
	EndTime        *float64 `db:"end_time"`
	TranscriptText *string  `db:"transcript_text"`
	OrderIndex     int      `db:"order_index"`
}

// RunStats holds statistics about one assembly run.
type RunStats struct {
	CourseID     string
	Lessons      int
	Reused       int
	Video        int
	LowConfident int
	Text         int
	Skipped      int
	Errors       int
	Duration     time.Duration
}
