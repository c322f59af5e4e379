package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"paytm-mcp/internal/logger"
	"paytm-mcp/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Sender dispatches a sealed envelope to a gateway path.
type Sender interface {
	Send(ctx context.Context, path string, env Envelope, policy RetryPolicy) (json.RawMessage, error)
}

// Client posts envelopes to the gateway over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	sleep      func(ctx context.Context, d time.Duration) error
}

var _ Sender = (*Client)(nil)

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit throttles outbound attempts; rps <= 0 leaves them unthrottled.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithSleep overrides how the client waits between attempts.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.sleep = fn }
}

// ----------------- Constructor -----------------

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		sleep: sleepCtx,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ----------------- Send -----------------

// Send posts env to path and returns the raw JSON response. Network errors,
// non-2xx statuses and undecodable bodies are retried per policy; a decoded
// body is returned as-is, whatever business status it carries.
func (c *Client) Send(ctx context.Context, path string, env Envelope, policy RetryPolicy) (json.RawMessage, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "gateway"),
		zap.String("path", path),
	)

	payload, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}

	maxAttempts := policy.attempts()
	var last attemptError
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, &Error{Kind: KindTransport, Path: path, Attempts: attempt - 1, Err: err}
			}
		}

		raw, aerr := c.attempt(ctx, path, payload)
		if aerr == nil {
			if attempt > 1 {
				log.Info("gateway request succeeded after retry", zap.Int("attempt", attempt))
			}
			return raw, nil
		}
		last = *aerr

		if ctx.Err() != nil {
			return nil, last.toError(path, attempt)
		}
		if attempt == maxAttempts {
			break
		}

		wait := policy.wait(attempt)
		log.Warn("gateway attempt failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
			zap.Error(aerr.err),
		)
		metrics.IncGatewayRetry(path)
		if err := c.sleep(ctx, wait); err != nil {
			return nil, last.toError(path, attempt)
		}
	}

	log.Error("gateway request failed", zap.Int("attempts", maxAttempts), zap.Error(last.err))
	return nil, last.toError(path, maxAttempts)
}

type attemptError struct {
	kind   ErrorKind
	status int
	err    error
}

func (a attemptError) toError(path string, attempts int) *Error {
	return &Error{Kind: a.kind, Path: path, Attempts: attempts, StatusCode: a.status, Err: a.err}
}

func (c *Client) attempt(ctx context.Context, path string, payload []byte) (json.RawMessage, *attemptError) {
	start := time.Now()
	log := logger.FromCtx(ctx).With(zap.String("layer", "gateway"), zap.String("path", path))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, &attemptError{kind: KindTransport, err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveGatewayAttempt(path, "network_error", time.Since(start))
		return nil, &attemptError{kind: KindTransport, err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveGatewayAttempt(path, "network_error", time.Since(start))
		return nil, &attemptError{kind: KindTransport, status: resp.StatusCode, err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.ObserveGatewayAttempt(path, "http_error", time.Since(start))
		log.Warn("gateway returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.Int("response_bytes", len(bodyBytes)),
		)
		return nil, &attemptError{kind: KindTransport, status: resp.StatusCode, err: fmt.Errorf("%w: %d", ErrHTTPStatus, resp.StatusCode)}
	}

	trimmed := bytes.TrimSpace(bodyBytes)
	if len(trimmed) == 0 {
		metrics.ObserveGatewayAttempt(path, "malformed", time.Since(start))
		return nil, &attemptError{kind: KindProtocol, status: resp.StatusCode, err: ErrEmptyBody}
	}
	if !json.Valid(trimmed) {
		metrics.ObserveGatewayAttempt(path, "malformed", time.Since(start))
		return nil, &attemptError{kind: KindProtocol, status: resp.StatusCode, err: ErrMalformedBody}
	}

	metrics.ObserveGatewayAttempt(path, "ok", time.Since(start))
	log.Debug("gateway response received", zap.Int("status", resp.StatusCode), zap.Duration("duration", time.Since(start)))
	return json.RawMessage(trimmed), nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
