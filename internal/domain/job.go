package domain

import "time"

type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

const JobTypeAssembleVideos = "assemble_videos"

// Terminal reports whether no further transitions are allowed.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

func (s JobStatus) rank() int {
	switch s {
	case JobPending:
		return 0
	case JobRunning:
		return 1
	case JobCompleted, JobFailed:
		return 2
	default:
		return -1
	}
}

// CanTransition reports whether moving from s to next keeps the lifecycle
// monotonic. A pending job completes only by way of running; it may fail
// directly when it is rejected before starting.
func (s JobStatus) CanTransition(next JobStatus) bool {
	if s.Terminal() || next.rank() < 0 {
		return false
	}
	if s == JobPending && next == JobCompleted {
		return false
	}
	return next.rank() >= s.rank()
}

type JobProgress struct {
	CurrentStep string   `json:"current_step"`
	Percent     int      `json:"percent"`
	Details     []string `json:"details"`
}

type Job struct {
	ID        string         `json:"job_id"`
	CourseID  string         `json:"course_id"`
	Type      string         `json:"type"`
	Status    JobStatus      `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Progress  JobProgress    `json:"progress"`
	Result    map[string]any `json:"result"`
	Error     string         `json:"error,omitempty"`
}

// Clone returns a deep copy safe to hand to readers.
func (j *Job) Clone() Job {
	c := *j
	c.Progress.Details = append([]string(nil), j.Progress.Details...)
	if j.Result != nil {
		c.Result = make(map[string]any, len(j.Result))
		for k, v := range j.Result {
			c.Result[k] = v
		}
	}
	return c
}
