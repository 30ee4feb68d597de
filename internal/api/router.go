package api

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"course_assembler/internal/metrics"
)

func NewRouter(h *Handler, m *metrics.Metrics, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(requestMetrics(m))

	router.GET("/healthz", h.Healthz)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	courses := router.Group("/api/v1/courses/:id")
	courses.POST("/assemble_videos", h.Assemble)
	courses.GET("/assemble_status", h.Status)
	courses.GET("/final", h.Final)

	return router
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			logger.Error("HTTP request with errors", append(attrs, "errors", c.Errors.String())...)
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/healthz") || c.Request.URL.Path == "/metrics" {
			logger.Debug("HTTP request", attrs...)
			return
		}
		logger.Info("HTTP request", attrs...)
	}
}

func requestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
