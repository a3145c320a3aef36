// Package sendgrid sends transactional mail through the SendGrid v3 API.
package sendgrid

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/careerpath/careerpath-backend/internal/platform/ctxutil"
	"github.com/careerpath/careerpath-backend/internal/platform/envutil"
	"github.com/careerpath/careerpath-backend/internal/platform/httpx"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

const (
	defaultBaseURL  = "https://api.sendgrid.com"
	mailSendPath    = "/v3/mail/send"
	maxRetryAfter   = 10 * time.Second
	maxErrorBodyLen = 2048
)

type Client interface {
	Send(ctx context.Context, req SendEmailRequest) (*SendEmailResult, error)
}

type Config struct {
	APIKey           string
	BaseURL          string
	DefaultFromEmail string
	DefaultFromName  string
	Timeout          time.Duration
	MaxRetries       int
	RetryBackoff     time.Duration
	// SandboxMode asks SendGrid to validate without delivering.
	SandboxMode bool
}

func ConfigFromEnv() Config {
	return Config{
		APIKey:           envutil.String("SENDGRID_API_KEY", ""),
		BaseURL:          envutil.String("SENDGRID_BASE_URL", defaultBaseURL),
		DefaultFromEmail: envutil.String("SENDGRID_FROM_EMAIL", ""),
		DefaultFromName:  envutil.String("SENDGRID_FROM_NAME", "CareerPath"),
		Timeout:          envutil.Duration("SENDGRID_TIMEOUT", 15*time.Second),
		MaxRetries:       envutil.Int("SENDGRID_MAX_RETRIES", 2),
		RetryBackoff:     envutil.Duration("SENDGRID_RETRY_BACKOFF", 500*time.Millisecond),
		SandboxMode:      envutil.Bool("SENDGRID_SANDBOX", false),
	}
}

type client struct {
	log  *logger.Logger
	cfg  Config
	http *http.Client
	from EmailAddress
}

// New validates cfg and fills defaults. A missing API key is an error so the
// caller can decide to run without mail.
func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, errors.New("sendgrid: logger required")
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, errors.New("sendgrid: missing SENDGRID_API_KEY")
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	cfg.MaxRetries = max(cfg.MaxRetries, 0)
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 500 * time.Millisecond
	}
	return &client{
		log:  log.With("client", "sendgrid"),
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		from: EmailAddress{Email: cfg.DefaultFromEmail, Name: cfg.DefaultFromName},
	}, nil
}

func (c *client) Send(ctx context.Context, req SendEmailRequest) (*SendEmailResult, error) {
	payload, err := buildPayload(req, c.from, c.cfg.SandboxMode)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("sendgrid: encode: %w", err)
	}

	ctx = ctxutil.Default(ctx)
	backoff := c.cfg.RetryBackoff
	for attempt := 0; ; attempt++ {
		res, resp, err := c.post(ctx, body)
		if err == nil {
			return res, nil
		}
		if attempt >= c.cfg.MaxRetries || !httpx.IsRetryableError(err) {
			return nil, err
		}
		wait := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, maxRetryAfter))
		c.log.Warn("sendgrid send retrying", "attempt", attempt+1, "wait", wait.String(), "error", err)
		if err := httpx.Sleep(ctx, wait); err != nil {
			return nil, err
		}
		backoff *= 2
	}
}

// post makes one attempt. The response is returned with errors so Retry-After
// can be honoured.
func (c *client) post(ctx context.Context, body []byte) (*SendEmailResult, *http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+mailSendPath, bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, resp, err
	}
	if resp.StatusCode/100 != 2 {
		return nil, resp, newHTTPError(resp.StatusCode, raw)
	}
	return &SendEmailResult{
		StatusCode: resp.StatusCode,
		MessageID:  strings.TrimSpace(resp.Header.Get("X-Message-Id")),
	}, resp, nil
}

// HTTPError is a non-2xx answer from SendGrid.
type HTTPError struct {
	StatusCode int
	Body       string
	Messages   []string
}

func newHTTPError(status int, raw []byte) *HTTPError {
	he := &HTTPError{StatusCode: status, Body: string(raw)}
	var parsed struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if json.Unmarshal(raw, &parsed) == nil {
		for _, e := range parsed.Errors {
			if m := strings.TrimSpace(e.Message); m != "" {
				he.Messages = append(he.Messages, m)
			}
		}
	}
	return he
}

func (e *HTTPError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("sendgrid http %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
	}
	msg := strings.TrimSpace(e.Body)
	if len(msg) > maxErrorBodyLen {
		msg = msg[:maxErrorBodyLen] + "..."
	}
	if msg == "" {
		msg = "<empty body>"
	}
	return fmt.Sprintf("sendgrid http %d: %s", e.StatusCode, msg)
}

// HTTPStatusCode lets httpx classify the error for retries.
func (e *HTTPError) HTTPStatusCode() int { return e.StatusCode }
