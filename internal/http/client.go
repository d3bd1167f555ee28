package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxErrorBody caps how much of a failed response body is kept in StatusError.
const maxErrorBody = 512

// StatusError is returned when the server answers with a non-200 status.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
	}
	return fmt.Sprintf("HTTP %d: %s - %s", e.Code, e.Status, e.Body)
}

// Temporary reports whether the request may succeed when retried.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// Config holds HTTP client settings.
type Config struct {
	// UserAgent is sent with every request.
	UserAgent string

	// Timeout bounds a single request attempt.
	Timeout time.Duration

	// MaxRetries is how many times a failed request is retried.
	MaxRetries int

	// RetryCooldown is the base wait in seconds before the first retry.
	RetryCooldown float64

	// RetryExponent multiplies the wait after every retry.
	RetryExponent float64

	// RequestsPerSecond limits outgoing requests. Zero or less disables limiting.
	RequestsPerSecond float64
}

// DefaultConfig returns the configuration used when NewClient gets nil.
func DefaultConfig() *Config {
	return &Config{
		UserAgent:         "lyricstat",
		Timeout:           60 * time.Second,
		MaxRetries:        3,
		RetryCooldown:     0.2,
		RetryExponent:     4.0,
		RequestsPerSecond: 5,
	}
}

// Client wraps HTTP operations for the Genius API and song pages.
//
// Client provides:
//   - Configured User-Agent header
//   - Optional Bearer authorization
//   - Request rate limiting shared by all copies of a client
//   - Retries with exponential backoff on network errors, 429 and 5xx
//
// Example usage:
//
//	client := NewClient(cfg, logger)
//	api := client.WithBearerToken(token)
//
//	var resp searchResponse
//	err := api.GetJSON(ctx, "https://api.genius.com/search?q=artist", &resp)
//
//	html, err := client.GetString(ctx, songURL)
type Client struct {
	httpClient *http.Client
	config     Config
	limiter    *rate.Limiter
	token      string
	logger     *zap.Logger
}

// NewClient creates a new HTTP client.
//
// A nil config uses DefaultConfig, a nil logger discards log output.
func NewClient(cfg *Config, logger *zap.Logger) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config:  *cfg,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

// WithBearerToken returns a copy of the client that sends
// "Authorization: Bearer <token>". The copy shares the rate limiter.
func (c *Client) WithBearerToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns a *StatusError if the response status is not 200 OK. Temporary
// failures are retried up to Config.MaxRetries times.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for tries := 0; tries <= c.config.MaxRetries; tries++ {
		if tries > 0 {
			c.logger.Debug("retrying request",
				zap.String("url", url),
				zap.Int("try", tries),
				zap.Error(lastErr))
			if err := c.waitForRetry(ctx, tries-1); err != nil {
				return nil, err
			}
		}

		body, err := c.do(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable(ctx, err) {
			break
		}
	}

	return nil, lastErr
}

// GetString performs a GET request and returns the response body as a string.
//
// This is a convenience wrapper around Get for fetching text content like HTML.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetJSON performs a GET request and decodes the JSON response into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status, Body: string(snippet)}
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) waitForRetry(ctx context.Context, tries int) error {
	cooldown := c.config.RetryCooldown * math.Pow(c.config.RetryExponent, float64(tries))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
		return nil
	}
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}
