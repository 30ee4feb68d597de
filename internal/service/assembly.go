package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"course_assembler/internal/candidate"
	"course_assembler/internal/config"
	"course_assembler/internal/domain"
	"course_assembler/internal/jobs"
	"course_assembler/internal/metrics"
)

var ErrNoRoadmap = errors.New("course has no roadmap")

const poolQuerySuffix = " full course"

type Components struct {
	Courses     CourseReader
	Source      CandidateSource
	Filter      CandidateFilter
	Transcripts TranscriptAcquirer
	Chunker     Chunker
	Scorer      CandidateScorer
	Selector    LessonSelector
	Supplements SupplementGenerator
	Writer      RoadmapWriter
	Tracker     JobTracker
	Publisher   Publisher
	Metrics     *metrics.Metrics
}

// AssemblyService binds videos or text supplements to every lesson of a
// course roadmap. One Run handles one course; lessons are processed in
// order and a failing lesson never fails the run.
type AssemblyService struct {
	Components
	logger *slog.Logger
	config config.PipelineConfig
}

func NewAssemblyService(c Components, logger *slog.Logger, cfg config.PipelineConfig) *AssemblyService {
	return &AssemblyService{
		Components: c,
		logger:     logger.With("component", "assembly"),
		config:     cfg,
	}
}

// run is the state of one Run call.
type run struct {
	jobID   string
	force   bool
	pool    []*domain.VideoCandidate
	indexed map[string]struct{}
	stats   domain.RunStats
}

func (s *AssemblyService) Run(ctx context.Context, courseID, jobID string, forceRebuild bool) error {
	startTime := time.Now()
	r := &run{
		jobID:   jobID,
		force:   forceRebuild,
		indexed: make(map[string]struct{}),
		stats:   domain.RunStats{CourseID: courseID},
	}

	s.Tracker.UpdateStatus(jobID, domain.JobRunning, jobs.WithStep("starting"))
	s.Tracker.AppendLog(jobID, "starting assembly pipeline")
	s.logger.Info("starting assembly",
		"course_id", courseID,
		"job_id", jobID,
		"force_rebuild", forceRebuild,
		"fallback_policy", s.config.FallbackPolicy,
		"shared_pool", s.config.SharedPool,
	)

	err := s.assemble(ctx, courseID, r)
	r.stats.Duration = time.Since(startTime)

	if err != nil {
		s.Tracker.AppendLog(jobID, "assembly failed: "+err.Error())
		s.Tracker.UpdateStatus(jobID, domain.JobFailed,
			jobs.WithStep("failed"),
			jobs.WithError(err.Error()),
		)
		s.logger.Error("assembly failed", "course_id", courseID, "job_id", jobID, "error", err)
	} else {
		s.Tracker.AppendLog(jobID, "assembly completed")
		s.Tracker.UpdateStatus(jobID, domain.JobCompleted,
			jobs.WithStep("completed"),
			jobs.WithProgress(100),
			jobs.WithResult(map[string]any{
				"course_id": courseID,
				"lessons":   r.stats.Lessons,
				"video":     r.stats.Video + r.stats.LowConfident,
				"text":      r.stats.Text,
				"reused":    r.stats.Reused,
				"skipped":   r.stats.Skipped,
				"errors":    r.stats.Errors,
			}),
		)
		s.logger.Info("assembly completed",
			"course_id", courseID,
			"job_id", jobID,
			"lessons", r.stats.Lessons,
			"video", r.stats.Video,
			"low_confidence", r.stats.LowConfident,
			"text", r.stats.Text,
			"reused", r.stats.Reused,
			"skipped", r.stats.Skipped,
			"errors", r.stats.Errors,
			"duration", r.stats.Duration,
		)
	}

	if s.Metrics != nil {
		s.Metrics.ObserveRun(r.stats, err)
	}
	s.publish(ctx, jobID)

	return err
}

func (s *AssemblyService) assemble(ctx context.Context, courseID string, r *run) error {
	s.Tracker.UpdateStatus(r.jobID, domain.JobRunning, jobs.WithStep("loading course"))
	course, err := s.Courses.GetCourse(ctx, courseID)
	if err != nil {
		return fmt.Errorf("load course: %w", err)
	}
	if course.Roadmap == nil {
		return ErrNoRoadmap
	}
	roadmap := course.Roadmap
	total := roadmap.TotalLessons()
	s.Tracker.AppendLog(r.jobID, fmt.Sprintf("loaded course %q with %d lessons", course.Title, total))

	if s.config.SharedPool {
		s.Tracker.UpdateStatus(r.jobID, domain.JobRunning, jobs.WithStep("sourcing candidate pool"))
		r.pool = s.Source.Search(ctx, course.Title+poolQuerySuffix, s.config.PoolSize)
		s.Tracker.AppendLog(r.jobID, fmt.Sprintf("candidate pool has %d videos", len(r.pool)))
	}

	processed := 0
	for mi := range roadmap.Modules {
		module := &roadmap.Modules[mi]
		kept := make([]domain.Lesson, 0, len(module.Lessons))

		for li := range module.Lessons {
			lesson := module.Lessons[li]
			s.Tracker.UpdateStatus(r.jobID, domain.JobRunning,
				jobs.WithStep(fmt.Sprintf("processing lesson %d/%d: %s", processed+1, total, lesson.Title)))

			if s.processLesson(ctx, r, &lesson) {
				kept = append(kept, lesson)
			}
			r.stats.Lessons++
			processed++
			s.Tracker.UpdateStatus(r.jobID, domain.JobRunning, jobs.WithProgress(processed*100/total))
		}
		module.Lessons = kept
	}

	s.Tracker.UpdateStatus(r.jobID, domain.JobRunning, jobs.WithStep("saving roadmap"), jobs.WithProgress(100))
	if err := s.Writer.Save(ctx, courseID, roadmap); err != nil {
		return fmt.Errorf("save roadmap: %w", err)
	}
	return nil
}

// processLesson updates the lesson in place and reports whether it stays
// in the roadmap.
func (s *AssemblyService) processLesson(ctx context.Context, r *run, lesson *domain.Lesson) bool {
	if lesson.HasBinding() && !r.force {
		r.stats.Reused++
		s.Tracker.AppendLog(r.jobID, fmt.Sprintf("lesson %q already has video %s", lesson.Title, lesson.VideoID))
		return true
	}

	plan := lesson.Plan(s.config.DefaultLevel)
	node, err := s.selectVideo(ctx, r, plan)
	if err == nil && node == nil {
		if s.config.FallbackPolicy == config.FallbackSkip {
			r.stats.Skipped++
			s.Tracker.AppendLog(r.jobID, fmt.Sprintf("no suitable video for %q, lesson dropped", lesson.Title))
			s.logger.Info("lesson skipped", "lesson", lesson.Title)
			return false
		}
		s.Tracker.AppendLog(r.jobID, fmt.Sprintf("no suitable video for %q, generating text", lesson.Title))
		node, err = s.Supplements.Generate(ctx, plan)
	}

	if err != nil {
		r.stats.Errors++
		s.Tracker.AppendLog(r.jobID, fmt.Sprintf("lesson %q failed: %v", lesson.Title, err))
		s.logger.Error("lesson failed", "lesson", lesson.Title, "error", err)
		if s.config.FallbackPolicy == config.FallbackSkip {
			return false
		}
		lesson.Fail(err)
		return true
	}

	lesson.Apply(node)
	switch {
	case node.Type == domain.NodeText:
		r.stats.Text++
		s.Tracker.AppendLog(r.jobID, fmt.Sprintf("lesson %q: text supplement", lesson.Title))
	case node.Video.Note != "":
		r.stats.LowConfident++
		s.Tracker.AppendLog(r.jobID, fmt.Sprintf("lesson %q: video %s (%s, score %.2f)",
			lesson.Title, node.Video.VideoID, node.Video.Note, node.Score))
	default:
		r.stats.Video++
		s.Tracker.AppendLog(r.jobID, fmt.Sprintf("lesson %q: video %s (score %.2f)",
			lesson.Title, node.Video.VideoID, node.Score))
	}
	return true
}

// selectVideo runs the candidate pipeline for one lesson. A nil node with a
// nil error means no candidate qualified.
func (s *AssemblyService) selectVideo(ctx context.Context, r *run, plan domain.LessonPlan) (*domain.LessonNode, error) {
	var candidates []*domain.VideoCandidate
	if s.config.SharedPool {
		candidates = candidate.RankByKeywordOverlap(r.pool, plan.Title, s.config.PerLessonResults)
	} else {
		candidates = s.Source.Search(ctx, plan.Title, s.config.PerLessonResults)
	}

	shortlist := s.Filter.Apply(candidates)
	s.Transcripts.Fetch(ctx, shortlist)

	usable := 0
	for _, c := range shortlist {
		if c.IsShortlisted && c.TranscriptAvailable {
			usable++
		}
	}
	s.logger.Debug("candidates prepared",
		"lesson", plan.Title,
		"candidates", len(candidates),
		"shortlisted", len(shortlist),
		"with_transcript", usable,
	)
	if usable == 0 {
		return nil, nil
	}

	if err := s.index(ctx, r, shortlist); err != nil {
		return nil, err
	}

	spec := s.Scorer.LessonSpec(ctx, plan)
	ranked, err := s.Scorer.ScoreWithSpec(ctx, spec, shortlist)
	if err != nil {
		return nil, err
	}

	node := s.Selector.Select(plan, ranked)
	if node != nil && s.config.VerifyCoverage {
		report, err := s.Scorer.Verify(ctx, spec, ranked[0].BestChunk.Text)
		if err != nil {
			s.logger.Warn("coverage verification failed", "lesson", plan.Title, "error", err)
		} else {
			node.Video.Coverage = report
		}
	}
	return node, nil
}

// index upserts chunks of videos not yet indexed during this run.
func (s *AssemblyService) index(ctx context.Context, r *run, shortlist []*domain.VideoCandidate) error {
	fresh := make([]*domain.VideoCandidate, 0, len(shortlist))
	for _, c := range shortlist {
		if !c.IsShortlisted || !c.TranscriptAvailable {
			continue
		}
		if _, done := r.indexed[c.VideoID]; done {
			continue
		}
		fresh = append(fresh, c)
	}
	if len(fresh) == 0 {
		return nil
	}

	if err := s.Scorer.Index(ctx, s.Chunker.ChunkAll(fresh)); err != nil {
		return err
	}
	for _, c := range fresh {
		r.indexed[c.VideoID] = struct{}{}
	}
	return nil
}

func (s *AssemblyService) publish(ctx context.Context, jobID string) {
	if s.Publisher == nil {
		return
	}
	job, ok := s.Tracker.Get(jobID)
	if !ok {
		return
	}
	if err := s.Publisher.PublishJob(ctx, job); err != nil {
		s.logger.Warn("failed to publish job event", "job_id", jobID, "error", err)
	}
}
