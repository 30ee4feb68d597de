package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"course_assembler/internal/domain"
	"course_assembler/internal/jobs"
	"course_assembler/internal/metrics"
)

var (
	ErrQueueFull = errors.New("assembly queue is full")
	ErrStopped   = errors.New("dispatcher stopped")
)

const (
	defaultWorkers   = 2
	defaultQueueSize = 16
)

// Runner executes one assembly run and records its outcome on the job.
type Runner interface {
	Run(ctx context.Context, courseID, jobID string, forceRebuild bool) error
}

type JobTracker interface {
	Create(courseID, jobType string) string
	UpdateStatus(jobID string, status domain.JobStatus, opts ...jobs.Option)
}

type task struct {
	jobID    string
	courseID string
	force    bool
}

type Dispatcher struct {
	runner  Runner
	tracker JobTracker
	metrics *metrics.Metrics
	workers int
	queue   chan task
	logger  *slog.Logger

	// mu orders Trigger sends against the shutdown drain.
	mu      sync.Mutex
	stopped bool
}

func NewDispatcher(runner Runner, tracker JobTracker, m *metrics.Metrics, workers, queueSize int, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Dispatcher{
		runner:  runner,
		tracker: tracker,
		metrics: m,
		workers: workers,
		queue:   make(chan task, queueSize),
		logger:  logger.With("component", "dispatcher"),
	}
}

// Trigger creates a job and queues the run without blocking.
// The job id is returned even when the run is rejected.
func (d *Dispatcher) Trigger(courseID string, force bool) (string, error) {
	jobID := d.tracker.Create(courseID, domain.JobTypeAssembleVideos)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		d.reject(jobID, "dispatcher is shutting down")
		return jobID, ErrStopped
	}

	select {
	case d.queue <- task{jobID: jobID, courseID: courseID, force: force}:
		d.metrics.QueueDepth.Inc()
		d.logger.Info("run queued", "job_id", jobID, "course_id", courseID, "force_rebuild", force)
		return jobID, nil
	default:
		d.metrics.JobsRejected.Inc()
		d.reject(jobID, ErrQueueFull.Error())
		d.logger.Warn("run rejected", "job_id", jobID, "course_id", courseID, "reason", "queue full")
		return jobID, ErrQueueFull
	}
}

// Start runs the workers until ctx is done. Runs already started are
// finished before Start returns; queued runs that never started are failed.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.logger.Info("dispatcher started", "workers", d.workers, "queue_size", cap(d.queue))

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < d.workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case t := <-d.queue:
					d.metrics.QueueDepth.Dec()
					d.execute(gctx, t)
				}
			}
		})
	}
	err := g.Wait()

	d.mu.Lock()
	d.stopped = true
	d.drain()
	d.mu.Unlock()
	d.logger.Info("dispatcher stopped")
	if err != nil {
		return err
	}
	return ctx.Err()
}

func (d *Dispatcher) execute(ctx context.Context, t task) {
	runCtx := context.WithoutCancel(ctx)

	d.metrics.RunsRunning.Inc()
	defer d.metrics.RunsRunning.Dec()

	if err := d.runner.Run(runCtx, t.courseID, t.jobID, t.force); err != nil {
		d.logger.Error("run failed", "job_id", t.jobID, "course_id", t.courseID, "error", err)
	}
}

func (d *Dispatcher) drain() {
	for {
		select {
		case t := <-d.queue:
			d.metrics.QueueDepth.Dec()
			d.reject(t.jobID, "dispatcher is shutting down")
		default:
			return
		}
	}
}

func (d *Dispatcher) reject(jobID, reason string) {
	d.tracker.UpdateStatus(jobID, domain.JobFailed, jobs.WithError(reason), jobs.WithStep("rejected"))
}
