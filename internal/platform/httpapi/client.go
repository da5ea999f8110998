// Package httpapi is the shared HTTP plumbing of the map API adapters.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// StatusError is returned for any response with status >= 400.
type StatusError struct {
	Code       int
	Body       string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// Client sends JSON requests to one API host with fixed headers.
type Client struct {
	session     *http.Client
	BaseURL     string
	headers     map[string]string
	MaxAttempts int
	Backoff     time.Duration
}

func New(baseURL string, headers map[string]string) Client {
	return Client{
		session:     &http.Client{Timeout: 10 * time.Second},
		BaseURL:     strings.TrimRight(baseURL, "/"),
		headers:     headers,
		MaxAttempts: 4,
		Backoff:     200 * time.Millisecond,
	}
}

func (c Client) NewRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// Do sends req once and turns error statuses into *StatusError.
func (c Client) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 400 {
		return resp, nil
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return nil, &StatusError{
		Code:       resp.StatusCode,
		Body:       strings.TrimSpace(string(b)),
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
	}
}

// DoWithRetry rebuilds and resends the request on network errors, 429 and
// 5xx gateway statuses. The wait doubles per attempt unless the server sent
// Retry-After.
func (c Client) DoWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	attempts := max(c.MaxAttempts, 1)
	wait := c.Backoff

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.Do(req)
		if err == nil {
			return resp, nil
		}
		delay, ok := retryDelay(err, wait)
		if !ok || attempt >= attempts {
			return nil, err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}
}

// retryDelay reports whether err is transient and how long to wait before
// the next attempt.
func retryDelay(err error, fallback time.Duration) (time.Duration, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		switch se.Code {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			if se.RetryAfter > 0 {
				return min(se.RetryAfter, 5*time.Second), true
			}
			return fallback, true
		}
		return 0, false
	}
	var netErr net.Error
	return fallback, errors.As(err, &netErr)
}

func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
