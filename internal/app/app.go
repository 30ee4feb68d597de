// Package app wires the assembler's components from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"course_assembler/internal/api"
	"course_assembler/internal/candidate"
	"course_assembler/internal/chunker"
	"course_assembler/internal/config"
	"course_assembler/internal/domain"
	"course_assembler/internal/jobs"
	"course_assembler/internal/llm"
	"course_assembler/internal/metrics"
	"course_assembler/internal/persistence"
	"course_assembler/internal/publisher"
	"course_assembler/internal/scheduler"
	"course_assembler/internal/scoring"
	"course_assembler/internal/selection"
	"course_assembler/internal/service"
	"course_assembler/internal/source/captions"
	"course_assembler/internal/source/youtube"
	"course_assembler/internal/storage/elastic"
	"course_assembler/internal/storage/postgres"
	"course_assembler/internal/storage/redis"
	"course_assembler/internal/supplement"
	"course_assembler/internal/transcript"
)

type App struct {
	cfg    *config.Config
	logger *slog.Logger

	Courses    *postgres.CourseStore
	Tracker    *jobs.Tracker
	Metrics    *metrics.Metrics
	Service    *service.AssemblyService
	Dispatcher *scheduler.Dispatcher

	closers []func() error
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *App, err error) {
	a := &App{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	a.closers = append(a.closers, db.Close)
	logger.Info("connected to database")

	var cache transcript.Cache
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rdb.Close)
		cache = redis.NewTranscriptCache(rdb, cfg.Redis.KeyPrefix, cfg.Redis.TTL)
		logger.Info("transcript cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	}

	var events service.Publisher = publisher.Noop{}
	if cfg.RabbitMQ.URL != "" {
		rmq, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rmq.Close)
		events = rmq
	}

	model := llm.New(llm.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		EmbeddingModel: cfg.LLM.EmbeddingModel,
		Referer:        cfg.LLM.Referer,
		Title:          cfg.LLM.Title,
		Timeout:        cfg.LLM.Timeout,
		MaxRetries:     cfg.LLM.MaxRetries,
	}, logger)

	esCfg := elastic.Config{
		Addresses: cfg.Elasticsearch.Addresses,
		Username:  cfg.Elasticsearch.Username,
		Password:  cfg.Elasticsearch.Password,
		Index:     cfg.Elasticsearch.Index,
		Dims:      cfg.Elasticsearch.Dims,
	}
	esClient, err := elastic.NewClient(esCfg)
	if err != nil {
		return nil, err
	}
	chunkIndex := elastic.NewChunkIndex(esClient, esCfg, model, logger)
	if err := chunkIndex.EnsureIndex(ctx); err != nil {
		return nil, err
	}

	search, err := youtube.New(ctx, youtube.Config{
		APIKey:            cfg.YouTube.APIKey,
		Endpoint:          cfg.YouTube.Endpoint,
		RequestsPerSecond: cfg.YouTube.RequestsPerSecond,
		RelevanceLanguage: cfg.YouTube.RelevanceLanguage,
	}, logger)
	if err != nil {
		return nil, err
	}

	captionsCfg := captions.Config{
		BaseURL:        cfg.Captions.BaseURL,
		Language:       cfg.Captions.Language,
		UserAgent:      cfg.Captions.UserAgent,
		Timeout:        cfg.Captions.Timeout,
		MaxAttempts:    cfg.Captions.Retry.MaxAttempts,
		InitialBackoff: cfg.Captions.Retry.InitialBackoff,
		MaxBackoff:     cfg.Captions.Retry.MaxBackoff,
	}
	acquirer := transcript.NewAcquirer(
		[]transcript.Strategy{
			captions.NewTimedText(captionsCfg, logger),
			captions.NewWatchPage(captionsCfg, logger),
		},
		cache,
		transcript.Config{JitterMin: cfg.Captions.JitterMin, JitterMax: cfg.Captions.JitterMax},
		logger,
	)

	p := cfg.Pipeline
	a.Courses = postgres.NewCourseStore(db)
	a.Tracker = jobs.NewTracker()
	a.Metrics = metrics.New(nil)

	a.Service = service.NewAssemblyService(service.Components{
		Courses: a.Courses,
		Source: candidate.NewSource(search, candidate.SourceConfig{
			Suffix: cfg.YouTube.SearchSuffix,
		}, logger),
		Filter: candidate.NewFilter(candidate.FilterConfig{
			MinDurationSeconds: p.MinDurationSeconds,
			MaxDurationSeconds: p.MaxDurationSeconds,
			MinViews:           p.MinViews,
		}, logger),
		Transcripts: acquirer,
		Chunker:     chunker.New(p.ChunkTargetWords, p.ChunkMaxSeconds),
		Scorer: scoring.NewScorer(chunkIndex, model, scoring.Config{
			TopK:             p.TopK,
			SimilarityWeight: p.SimilarityWeight,
			MetaWeight:       p.MetaWeight,
		}, logger),
		Selector: selection.NewSelector(selection.Config{
			MinCoverage:   p.MinCoverage,
			LowConfidence: p.LowConfidence,
		}, logger),
		Supplements: supplement.NewGenerator(model, p.DefaultLevel, logger),
		Writer: persistence.NewWriter(
			a.Courses,
			postgres.NewLessonStore(db),
			postgres.NewTransactionManager(db),
			logger,
		),
		Tracker:   a.Tracker,
		Publisher: events,
		Metrics:   a.Metrics,
	}, logger, p)

	a.Dispatcher = scheduler.NewDispatcher(a.Service, a.Tracker, a.Metrics,
		cfg.Workers.Count, cfg.Workers.QueueSize, logger)

	return a, nil
}

func (a *App) Router() *gin.Engine {
	h := api.NewHandler(a.Dispatcher, a.Tracker, a.Courses, a.logger)
	return api.NewRouter(h, a.Metrics, a.logger)
}

// Serve runs the HTTP surface and the workers until ctx is done.
func (a *App) Serve(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)
	server := api.NewServer(a.cfg.HTTP.Addr, a.Router(),
		a.cfg.HTTP.ReadTimeout, a.cfg.HTTP.WriteTimeout, a.cfg.HTTP.ShutdownTimeout, a.logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.Dispatcher.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return server.Run(gctx)
	})
	return g.Wait()
}

// AssembleNow runs one course in the calling goroutine.
func (a *App) AssembleNow(ctx context.Context, courseID string, force bool) (domain.Job, error) {
	jobID := a.Tracker.Create(courseID, domain.JobTypeAssembleVideos)
	runErr := a.Service.Run(ctx, courseID, jobID, force)
	job, _ := a.Tracker.Get(jobID)
	return job, runErr
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
