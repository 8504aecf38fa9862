/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package fetch provides the HTTP client used by remote capability
// implementations: capped exponential backoff on transient failures,
// Retry-After support and an instrumented transport.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/friendsincode/skald/telemetry"
	"github.com/friendsincode/skald/version"
)

// Retry policy defaults.
const (
	DefaultMaxAttempts = 4
	DefaultRetryBase   = 500 * time.Millisecond
	DefaultTimeout     = 30 * time.Second
)

// retryableStatus lists the transient transport conditions worth retrying.
// Everything else is returned to the caller as-is.
var retryableStatus = map[int]struct{}{
	http.StatusTooManyRequests:     {},
	http.StatusInternalServerError: {},
	http.StatusBadGateway:          {},
	http.StatusServiceUnavailable:  {},
	http.StatusGatewayTimeout:      {},
}

// Client wraps an http.Client with the retry policy.
type Client struct {
	httpClient  *http.Client
	logger      zerolog.Logger
	maxAttempts int
	retryBase   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMaxAttempts overrides the bounded retry count.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithRetryBase overrides the backoff base interval.
func WithRetryBase(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.retryBase = d
		}
	}
}

// New creates a retrying client with an otel-instrumented transport.
func New(logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger:      logger.With().Str("component", "fetch").Logger(),
		maxAttempts: DefaultMaxAttempts,
		retryBase:   DefaultRetryBase,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do executes the request, retrying transient failures with exponential
// backoff. The request must have been built with http.NewRequestWithContext;
// cancellation is honored between attempts. Non-2xx responses after the final
// attempt are returned as an error.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", version.UserAgent())

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			telemetry.FetchRetries.Inc()
			wait := c.retryBase << (attempt - 1)
			if ra := lastRetryAfter(lastErr); ra > wait {
				wait = ra
			}
			c.logger.Debug().
				Int("attempt", attempt).
				Dur("wait", wait).
				Str("url", req.URL.String()).
				Msg("retrying request")
			if err := sleep(req.Context(), wait); err != nil {
				return nil, err
			}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if _, retryable := retryableStatus[resp.StatusCode]; retryable {
			lastErr = &StatusError{Code: resp.StatusCode, RetryAfter: parseRetryAfter(resp)}
			_ = resp.Body.Close()
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			_ = resp.Body.Close()
			return nil, &StatusError{Code: resp.StatusCode}
		}

		return resp, nil
	}

	return nil, fmt.Errorf("fetch: giving up after %d attempts: %w", c.maxAttempts, lastErr)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code       int
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected http status %d", e.Code)
}

func lastRetryAfter(err error) time.Duration {
	if serr, ok := err.(*StatusError); ok {
		return serr.RetryAfter
	}
	return 0
}

func parseRetryAfter(resp *http.Response) time.Duration {
	ra := resp.Header.Get("Retry-After")
	if ra == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(ra); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(ra); err == nil {
		return time.Until(t)
	}
	return 0
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
