// Package jobs tracks assembly runs in memory so clients can poll them.
//
// Records are not persisted; a process restart loses every job.
package jobs

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"course_assembler/internal/domain"
)

type Option func(*domain.Job)

func WithProgress(percent int) Option {
	return func(j *domain.Job) {
		if percent < 0 {
			percent = 0
		}
		if percent > 100 {
			percent = 100
		}
		j.Progress.Percent = percent
	}
}

func WithStep(step string) Option {
	return func(j *domain.Job) {
		j.Progress.CurrentStep = step
	}
}

func WithResult(result map[string]any) Option {
	return func(j *domain.Job) {
		j.Result = result
	}
}

func WithError(msg string) Option {
	return func(j *domain.Job) {
		j.Error = msg
	}
}

type entry struct {
	job domain.Job
	seq uint64
}

// Tracker is safe for concurrent use. Mutations that would move a job
// backwards, or touch a job that already finished, are ignored.
type Tracker struct {
	mu   sync.RWMutex
	jobs map[string]*entry
	seq  uint64

	now   func() time.Time
	newID func() string
}

func NewTracker() *Tracker {
	return &Tracker{
		jobs:  make(map[string]*entry),
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.NewString() },
	}
}

func (t *Tracker) Create(courseID, jobType string) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.newID()
	now := t.now()
	t.seq++
	t.jobs[id] = &entry{
		seq: t.seq,
		job: domain.Job{
			ID:        id,
			CourseID:  courseID,
			Type:      jobType,
			Status:    domain.JobPending,
			CreatedAt: now,
			UpdatedAt: now,
			Progress: domain.JobProgress{
				CurrentStep: "initialized",
				Details:     []string{},
			},
		},
	}
	return id
}

func (t *Tracker) UpdateStatus(jobID string, status domain.JobStatus, opts ...Option) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.jobs[jobID]
	if !ok || !e.job.Status.CanTransition(status) {
		return
	}

	e.job.Status = status
	e.job.UpdatedAt = t.now()
	for _, opt := range opts {
		opt(&e.job)
	}
}

func (t *Tracker) AppendLog(jobID, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.jobs[jobID]
	if !ok || e.job.Status.Terminal() {
		return
	}

	now := t.now()
	e.job.Progress.Details = append(e.job.Progress.Details,
		fmt.Sprintf("[%s] %s", now.Format("15:04:05"), message))
	e.job.UpdatedAt = now
}

func (t *Tracker) Get(jobID string) (domain.Job, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.jobs[jobID]
	if !ok {
		return domain.Job{}, false
	}
	return e.job.Clone(), true
}

// LatestForCourse returns the most recently created job for the course.
func (t *Tracker) LatestForCourse(courseID string) (domain.Job, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var latest *entry
	for _, e := range t.jobs {
		if e.job.CourseID != courseID {
			continue
		}
		if latest == nil ||
			e.job.CreatedAt.After(latest.job.CreatedAt) ||
			(e.job.CreatedAt.Equal(latest.job.CreatedAt) && e.seq > latest.seq) {
			latest = e
		}
	}
	if latest == nil {
		return domain.Job{}, false
	}
	return latest.job.Clone(), true
}
