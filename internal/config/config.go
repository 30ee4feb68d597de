package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	FallbackSupplement = "supplement"
	FallbackSkip       = "skip"
)

type Config struct {
	Database      DatabaseConfig      `yaml:"database"`
	RabbitMQ      RabbitMQConfig      `yaml:"rabbitmq"`
	Redis         RedisConfig         `yaml:"redis"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	YouTube       YouTubeConfig       `yaml:"youtube"`
	Captions      CaptionsConfig      `yaml:"captions"`
	LLM           LLMConfig           `yaml:"llm"`
	Pipeline      PipelineConfig      `yaml:"pipeline"`
	HTTP          HTTPConfig          `yaml:"http"`
	Workers       WorkersConfig       `yaml:"workers"`
	LogLevel      string              `yaml:"log_level"`
}

// RabbitMQConfig with an empty URL disables job events.
type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig with an empty Addr disables the transcript cache.
type RedisConfig struct {
	Addr      string        `yaml:"addr"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db"`
	KeyPrefix string        `yaml:"key_prefix"`
	TTL       time.Duration `yaml:"ttl"`
}

type ElasticsearchConfig struct {
	Addresses []string `yaml:"addresses"`
	Username  string   `yaml:"username"`
	Password  string   `yaml:"password"`
	Index     string   `yaml:"index"`
	Dims      int      `yaml:"dims"`
}

type YouTubeConfig struct {
	APIKey            string  `yaml:"api_key"`
	Endpoint          string  `yaml:"endpoint"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	RelevanceLanguage string  `yaml:"relevance_language"`
	SearchSuffix      string  `yaml:"search_suffix"`
}

type CaptionsConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Language  string        `yaml:"language"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
	Retry     RetryConfig   `yaml:"retry"`
	JitterMin time.Duration `yaml:"jitter_min"`
	JitterMax time.Duration `yaml:"jitter_max"`
}

type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

type LLMConfig struct {
	APIKey         string        `yaml:"api_key"`
	BaseURL        string        `yaml:"base_url"`
	Model          string        `yaml:"model"`
	EmbeddingModel string        `yaml:"embedding_model"`
	Referer        string        `yaml:"referer"`
	Title          string        `yaml:"title"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"`
}

type PipelineConfig struct {
	FallbackPolicy   string `yaml:"fallback_policy"`
	SharedPool       bool   `yaml:"shared_pool"`
	PoolSize         int    `yaml:"pool_size"`
	PerLessonResults int    `yaml:"per_lesson_results"`
	DefaultLevel     string `yaml:"default_level"`
	VerifyCoverage   bool   `yaml:"verify_coverage"`

	MinCoverage      float64 `yaml:"min_coverage"`
	LowConfidence    float64 `yaml:"low_confidence"`
	SimilarityWeight float64 `yaml:"similarity_weight"`
	MetaWeight       float64 `yaml:"meta_weight"`
	TopK             int     `yaml:"top_k"`

	ChunkTargetWords int     `yaml:"chunk_target_words"`
	ChunkMaxSeconds  float64 `yaml:"chunk_max_seconds"`

	MinDurationSeconds int   `yaml:"min_duration_seconds"`
	MaxDurationSeconds int   `yaml:"max_duration_seconds"`
	MinViews           int64 `yaml:"min_views"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type WorkersConfig struct {
	Count     int `yaml:"count"`
	QueueSize int `yaml:"queue_size"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "course_assembler"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "jobs"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "course_jobs"
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "transcript:"
	}
	if c.Redis.TTL == 0 {
		c.Redis.TTL = 7 * 24 * time.Hour
	}
	if len(c.Elasticsearch.Addresses) == 0 {
		c.Elasticsearch.Addresses = []string{"http://localhost:9200"}
	}
	if c.Elasticsearch.Index == "" {
		c.Elasticsearch.Index = "transcript_chunks"
	}
	if c.Elasticsearch.Dims == 0 {
		c.Elasticsearch.Dims = 1536
	}
	if c.YouTube.RequestsPerSecond == 0 {
		c.YouTube.RequestsPerSecond = 5
	}
	if c.YouTube.RelevanceLanguage == "" {
		c.YouTube.RelevanceLanguage = "en"
	}
	if c.YouTube.SearchSuffix == "" {
		c.YouTube.SearchSuffix = "tutorial education"
	}
	if c.Captions.Language == "" {
		c.Captions.Language = "en"
	}
	if c.Captions.Timeout == 0 {
		c.Captions.Timeout = 30 * time.Second
	}
	if c.Captions.Retry.MaxAttempts == 0 {
		c.Captions.Retry.MaxAttempts = 3
	}
	if c.Captions.Retry.InitialBackoff == 0 {
		c.Captions.Retry.InitialBackoff = 1 * time.Second
	}
	if c.Captions.Retry.MaxBackoff == 0 {
		c.Captions.Retry.MaxBackoff = 30 * time.Second
	}
	if c.Captions.JitterMin == 0 {
		c.Captions.JitterMin = 1 * time.Second
	}
	if c.Captions.JitterMax == 0 {
		c.Captions.JitterMax = 3 * time.Second
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = "https://openrouter.ai/api/v1"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "openai/gpt-4o-mini"
	}
	if c.LLM.EmbeddingModel == "" {
		c.LLM.EmbeddingModel = "text-embedding-3-small"
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 90 * time.Second
	}
	if c.LLM.MaxRetries == 0 {
		c.LLM.MaxRetries = 2
	}
	c.Pipeline.setDefaults()
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = 15 * time.Second
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = 30 * time.Second
	}
	if c.HTTP.ShutdownTimeout == 0 {
		c.HTTP.ShutdownTimeout = 30 * time.Second
	}
	if c.Workers.Count == 0 {
		c.Workers.Count = 2
	}
	if c.Workers.QueueSize == 0 {
		c.Workers.QueueSize = 16
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (p *PipelineConfig) setDefaults() {
	if p.FallbackPolicy == "" {
		p.FallbackPolicy = FallbackSupplement
	}
	if p.PoolSize == 0 {
		p.PoolSize = 25
	}
	if p.PerLessonResults == 0 {
		p.PerLessonResults = 10
	}
	if p.DefaultLevel == "" {
		p.DefaultLevel = "beginner"
	}
	if p.MinCoverage == 0 {
		p.MinCoverage = 0.70
	}
	if p.LowConfidence == 0 {
		p.LowConfidence = 0.5
	}
	if p.SimilarityWeight == 0 && p.MetaWeight == 0 {
		p.SimilarityWeight = 0.7
		p.MetaWeight = 0.3
	}
	if p.TopK == 0 {
		p.TopK = 10
	}
	if p.ChunkTargetWords == 0 {
		p.ChunkTargetWords = 300
	}
	if p.ChunkMaxSeconds == 0 {
		p.ChunkMaxSeconds = 600
	}
	if p.MinDurationSeconds == 0 {
		p.MinDurationSeconds = 60
	}
	if p.MaxDurationSeconds == 0 {
		p.MaxDurationSeconds = 7200
	}
	if p.MinViews == 0 {
		p.MinViews = 100
	}
}

func (c *Config) validate() error {
	switch c.Pipeline.FallbackPolicy {
	case FallbackSupplement, FallbackSkip:
	default:
		return fmt.Errorf("invalid pipeline.fallback_policy %q: want %q or %q",
			c.Pipeline.FallbackPolicy, FallbackSupplement, FallbackSkip)
	}
	if c.Pipeline.LowConfidence > c.Pipeline.MinCoverage {
		return fmt.Errorf("pipeline.low_confidence (%v) must not exceed pipeline.min_coverage (%v)",
			c.Pipeline.LowConfidence, c.Pipeline.MinCoverage)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}
