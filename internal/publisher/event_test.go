package publisher

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course_assembler/internal/domain"
)

func TestNewJobEvent(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status domain.JobStatus
		want   string
	}{
		{name: "completed", status: domain.JobCompleted, want: ActionCompleted},
		{name: "failed", status: domain.JobFailed, want: ActionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := NewJobEvent(domain.Job{ID: "j1", Status: tt.status}, at)
			assert.Equal(t, tt.want, ev.Action)
			assert.Equal(t, at, ev.Timestamp)
		})
	}
}

func TestJobEvent_WireShape(t *testing.T) {
	ev := NewJobEvent(domain.Job{
		ID:       "j1",
		CourseID: "c1",
		Type:     domain.JobTypeAssembleVideos,
		Status:   domain.JobCompleted,
		Result:   map[string]any{"course_id": "c1"},
	}, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	body, err := json.Marshal(ev)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, "completed", raw["action"])
	assert.Equal(t, "2026-03-01T12:00:00Z", raw["timestamp"])

	job, ok := raw["job"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "j1", job["job_id"])
	assert.Equal(t, "assemble_videos", job["type"])
}
