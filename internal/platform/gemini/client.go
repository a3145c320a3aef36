// Package gemini wraps the Gemini API for JSON completions with a bounded retry on
// rate limiting and server errors.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/careerpath/careerpath-backend/internal/observability"
	"github.com/careerpath/careerpath-backend/internal/platform/apierr"
	"github.com/careerpath/careerpath-backend/internal/platform/envutil"
	"github.com/careerpath/careerpath-backend/internal/platform/httpx"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

type Config struct {
	APIKey          string
	Model           string
	Temperature     float64
	MaxOutputTokens int
	Timeout         time.Duration
	MaxRetries      int
	RetryBackoff    time.Duration
}

func ConfigFromEnv() Config {
	return Config{
		APIKey:          envutil.String("GOOGLE_API_KEY", ""),
		Model:           envutil.String("GEMINI_MODEL", "gemini-flash-latest"),
		Temperature:     envutil.Float("GEMINI_TEMPERATURE", 0.7),
		MaxOutputTokens: envutil.Int("GEMINI_MAX_OUTPUT_TOKENS", 2048),
		Timeout:         envutil.Seconds("GEMINI_TIMEOUT_SECONDS", 60*time.Second),
		MaxRetries:      envutil.Int("GEMINI_MAX_RETRIES", 2),
		RetryBackoff:    time.Second,
	}
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Client struct {
	log    *logger.Logger
	cfg    Config
	models contentGenerator
}

func New(ctx context.Context, log *logger.Logger, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing GOOGLE_API_KEY")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newWithGenerator(log, cfg, gc.Models), nil
}

func newWithGenerator(log *logger.Logger, cfg Config, models contentGenerator) *Client {
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = "gemini-flash-latest"
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = time.Second
	}
	return &Client{
		log:    log.With("client", "GeminiClient", "model", cfg.Model),
		cfg:    cfg,
		models: models,
	}
}

// GenerateJSON asks for a JSON response and returns the raw text. The schema is
// already embedded in the prompt; the caller validates the output.
func (c *Client) GenerateJSON(ctx context.Context, system, user string, _ map[string]any) (string, error) {
	gcfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(c.cfg.Temperature)),
		ResponseMIMEType: "application/json",
	}
	if c.cfg.MaxOutputTokens > 0 {
		gcfg.MaxOutputTokens = int32(c.cfg.MaxOutputTokens)
	}
	if strings.TrimSpace(system) != "" {
		gcfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	backoff := c.cfg.RetryBackoff
	start := time.Now()
	for attempt := 0; ; attempt++ {
		callStart := time.Now()
		text, usage, err := c.generateOnce(ctx, user, gcfg)
		if err == nil {
			observability.Current().ObserveLLMRequest(c.cfg.Model, "ok", time.Since(callStart), usage.input, usage.output)
			c.log.Debug("gemini request ok", "attempt", attempt+1, "duration", time.Since(start).String())
			return text, nil
		}
		status := statusOf(err)
		observability.Current().ObserveLLMRequest(c.cfg.Model, llmStatus(status), time.Since(callStart), 0, 0)
		if !retryable(err, status) || attempt >= c.cfg.MaxRetries {
			c.log.Warn("gemini request failed", "attempt", attempt+1, "status", status, "error", err.Error())
			return "", classify(err, status)
		}

		sleepFor := httpx.JitterSleep(backoff)
		c.log.Warn("gemini request retrying",
			"attempt", attempt+1,
			"max_retries", c.cfg.MaxRetries,
			"status", status,
			"sleep", sleepFor.String(),
		)
		if err := httpx.Sleep(ctx, sleepFor); err != nil {
			return "", apierr.Upstream(err)
		}
		backoff *= 2
	}
}

type tokenUsage struct {
	input  int
	output int
}

func (c *Client) generateOnce(ctx context.Context, user string, gcfg *genai.GenerateContentConfig) (string, tokenUsage, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}
	resp, err := c.models.GenerateContent(ctx, c.cfg.Model, genai.Text(user), gcfg)
	if err != nil {
		return "", tokenUsage{}, err
	}
	if resp == nil {
		return "", tokenUsage{}, errEmptyResponse
	}
	var usage tokenUsage
	if resp.UsageMetadata != nil {
		usage.input = int(resp.UsageMetadata.PromptTokenCount)
		usage.output = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", usage, errEmptyResponse
	}
	return text, usage, nil
}

func llmStatus(status int) string {
	switch {
	case status == 429:
		return "rate_limited"
	case status >= 500:
		return "server_error"
	case status != 0:
		return "client_error"
	default:
		return "error"
	}
}

var errEmptyResponse = errors.New("gemini returned an empty response")

func statusOf(err error) int {
	var v genai.APIError
	if errors.As(err, &v) {
		return v.Code
	}
	var p *genai.APIError
	if errors.As(err, &p) && p != nil {
		return p.Code
	}
	return httpx.StatusCode(err)
}

func retryable(err error, status int) bool {
	if status != 0 {
		return httpx.IsRetryableHTTPStatus(status)
	}
	return httpx.IsRetryableError(err)
}

func classify(err error, status int) error {
	if status == 429 {
		return apierr.UpstreamBusy(fmt.Errorf("gemini rate limited: %w", err))
	}
	return apierr.Upstream(fmt.Errorf("gemini: %w", err))
}
