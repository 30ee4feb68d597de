package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to JobStatus
		want     bool
	}{
		{JobPending, JobRunning, true},
		{JobPending, JobCompleted, false},
		{JobPending, JobFailed, true},
		{JobRunning, JobRunning, true},
		{JobRunning, JobFailed, true},
		{JobRunning, JobPending, false},
		{JobCompleted, JobRunning, false},
		{JobCompleted, JobFailed, false},
		{JobFailed, JobCompleted, false},
		{JobPending, JobStatus("bogus"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestJob_CloneIsDeep(t *testing.T) {
	j := Job{
		ID:       "j1",
		Progress: JobProgress{Details: []string{"a"}},
		Result:   map[string]any{"course_id": "c1"},
	}

	c := j.Clone()
	c.Progress.Details[0] = "changed"
	c.Result["course_id"] = "c2"

	assert.Equal(t, "a", j.Progress.Details[0])
	assert.Equal(t, "c1", j.Result["course_id"])
}
