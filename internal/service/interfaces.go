package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"course_assembler/internal/domain"
	"course_assembler/internal/jobs"
)

type CourseReader interface {
	GetCourse(ctx context.Context, courseID string) (*domain.Course, error)
}

type CandidateSource interface {
	Search(ctx context.Context, topic string, maxResults int) []*domain.VideoCandidate
}

type CandidateFilter interface {
	Apply(candidates []*domain.VideoCandidate) []*domain.VideoCandidate
}

type TranscriptAcquirer interface {
	Fetch(ctx context.Context, candidates []*domain.VideoCandidate)
}

type Chunker interface {
	ChunkAll(candidates []*domain.VideoCandidate) []domain.TranscriptChunk
}

type CandidateScorer interface {
	Index(ctx context.Context, chunks []domain.TranscriptChunk) error
	LessonSpec(ctx context.Context, plan domain.LessonPlan) string
	ScoreWithSpec(ctx context.Context, spec string, candidates []*domain.VideoCandidate) ([]domain.ScoredCandidate, error)
	Verify(ctx context.Context, spec, text string) (*domain.CoverageReport, error)
}

type LessonSelector interface {
	Select(plan domain.LessonPlan, ranked []domain.ScoredCandidate) *domain.LessonNode
}

type SupplementGenerator interface {
	Generate(ctx context.Context, plan domain.LessonPlan) (*domain.LessonNode, error)
}

type RoadmapWriter interface {
	Save(ctx context.Context, courseID string, roadmap *domain.Roadmap) error
}

type JobTracker interface {
	UpdateStatus(jobID string, status domain.JobStatus, opts ...jobs.Option)
	AppendLog(jobID, message string)
	Get(jobID string) (domain.Job, bool)
}

type Publisher interface {
	PublishJob(ctx context.Context, job domain.Job) error
}
