package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"course_assembler/internal/domain"
	"course_assembler/internal/scheduler"
)

type Trigger interface {
	Trigger(courseID string, force bool) (string, error)
}

type JobReader interface {
	LatestForCourse(courseID string) (domain.Job, bool)
}

type RoadmapReader interface {
	GetRoadmap(ctx context.Context, courseID string) (json.RawMessage, error)
}

type Handler struct {
	trigger  Trigger
	jobs     JobReader
	roadmaps RoadmapReader
	logger   *slog.Logger
}

func NewHandler(trigger Trigger, jobs JobReader, roadmaps RoadmapReader, logger *slog.Logger) *Handler {
	return &Handler{
		trigger:  trigger,
		jobs:     jobs,
		roadmaps: roadmaps,
		logger:   logger.With("component", "api"),
	}
}

type assembleRequest struct {
	ForceRebuild bool `json:"force_rebuild"`
}

// Assemble queues an assembly run. The body is optional.
func (h *Handler) Assemble(c *gin.Context) {
	courseID := c.Param("id")

	var req assembleRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	jobID, err := h.trigger.Trigger(courseID, req.ForceRebuild)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scheduler.ErrQueueFull) || errors.Is(err, scheduler.ErrStopped) {
			status = http.StatusServiceUnavailable
		}
		_ = c.Error(err)
		c.JSON(status, gin.H{
			"job_id": jobID,
			"status": domain.JobFailed,
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": jobID,
		"status": domain.JobPending,
	})
}

func (h *Handler) Status(c *gin.Context) {
	job, ok := h.jobs.LatestForCourse(c.Param("id"))
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"status":  "none",
			"message": "No jobs found for this course",
		})
		return
	}
	c.JSON(http.StatusOK, job)
}

// Final returns the stored roadmap document unchanged.
func (h *Handler) Final(c *gin.Context) {
	raw, err := h.roadmaps.GetRoadmap(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrCourseNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "roadmap not found"})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load roadmap"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
