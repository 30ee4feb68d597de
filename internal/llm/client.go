// Package llm wraps an OpenAI-compatible API for the text and embedding
// calls the pipeline makes.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"course_assembler/internal/domain"
)

const (
	maxCoverageTranscript = 4000
	embedBatchSize        = 64
)

var errEmptyResponse = errors.New("empty model response")

type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	EmbeddingModel string
	Referer        string
	Title          string
	Timeout        time.Duration
	MaxRetries     int
}

type Client struct {
	client         openai.Client
	model          string
	embeddingModel string
	timeout        time.Duration
	logger         *slog.Logger
}

// New builds a client. Extra request options are applied last.
func New(cfg Config, logger *slog.Logger, opts ...option.RequestOption) *Client {
	clientOpts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Referer != "" {
		clientOpts = append(clientOpts, option.WithHeader("HTTP-Referer", cfg.Referer))
	}
	if cfg.Title != "" {
		clientOpts = append(clientOpts, option.WithHeader("X-Title", cfg.Title))
	}
	clientOpts = append(clientOpts, opts...)

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 90 * time.Second
	}

	return &Client{
		client:         openai.NewClient(clientOpts...),
		model:          cfg.Model,
		embeddingModel: cfg.EmbeddingModel,
		timeout:        timeout,
		logger:         logger.With("component", "llm"),
	}
}

// SummarizeLesson condenses a lesson into a one-sentence teaching spec.
func (c *Client) SummarizeLesson(ctx context.Context, title, description string) (string, error) {
	out, err := c.complete(ctx, fmt.Sprintf(lessonSpecPrompt, title, description), 200, false)
	if err != nil {
		return "", fmt.Errorf("summarize lesson: %w", err)
	}
	return strings.Trim(out, "\" \n"), nil
}

// GenerateSupplement writes a short standalone lesson text.
func (c *Client) GenerateSupplement(ctx context.Context, topic, level string) (string, error) {
	out, err := c.complete(ctx, fmt.Sprintf(supplementPrompt, topic, level), 1500, false)
	if err != nil {
		return "", fmt.Errorf("generate supplement: %w", err)
	}
	return out, nil
}

// ScoreCoverage asks the model how well a transcript covers a lesson spec.
func (c *Client) ScoreCoverage(ctx context.Context, spec, transcript string) (domain.CoverageReport, error) {
	if r := []rune(transcript); len(r) > maxCoverageTranscript {
		transcript = string(r[:maxCoverageTranscript])
	}

	out, err := c.complete(ctx, fmt.Sprintf(coveragePrompt, spec, transcript), 400, true)
	if err != nil {
		return domain.CoverageReport{}, fmt.Errorf("score coverage: %w", err)
	}

	var report domain.CoverageReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		return domain.CoverageReport{}, fmt.Errorf("decode coverage report: %w", err)
	}
	report.Score = min(max(report.Score, 0), 1)
	return report, nil
}

// Embed returns one vector per input text, in input order.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, 0, len(texts))
	for start := 0; start < len(texts); start += embedBatchSize {
		end := min(start+embedBatchSize, len(texts))
		batch, err := c.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
	}
	return out, nil
}

func (c *Client) embedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model: openai.EmbeddingModel(c.embeddingModel),
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("create embeddings: got %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	data := resp.Data
	sort.Slice(data, func(i, j int) bool { return data[i].Index < data[j].Index })

	out := make([][]float64, len(data))
	for i, d := range data {
		out[i] = d.Embedding
	}
	return out, nil
}

func (c *Client) complete(ctx context.Context, prompt string, maxTokens int64, jsonMode bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:     c.model,
		MaxTokens: openai.Int(maxTokens),
	}
	if jsonMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{Type: "json_object"},
		}
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyResponse
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.logger.Debug("completion finished", "model", c.model, "duration", time.Since(start), "chars", len(out))
	if out == "" {
		return "", errEmptyResponse
	}
	return out, nil
}
