package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"
)

// Client wraps http.Client with bounded retry and exponential backoff.
// Only transient failures are retried: network-level errors, 5xx server
// errors, and 429. Authentication failures (401/403) and other 4xx are
// terminal and surface immediately.
type Client struct {
	http       *http.Client
	maxRetries int
	retryDelay time.Duration
	maxDelay   time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithMaxRetries sets the number of retries after the initial attempt.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithRetryDelay sets the base backoff delay.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a Client with default settings: 3 retries, 500ms base
// delay, 30s per-attempt timeout.
func New(opts ...Option) *Client {
	c := &Client{
		http:       &http.Client{Timeout: 30 * time.Second},
		maxRetries: 3,
		retryDelay: 500 * time.Millisecond,
		maxDelay:   30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do executes the request, retrying transient failures with exponential
// backoff plus jitter. The request must have GetBody set when it carries
// a body (http.NewRequest does this for common body types). On
// exhaustion the last error is returned, tagged with the request's
// method and URL.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, fmt.Errorf("%s %s: rewinding request body: %w", req.Method, req.URL, err)
				}
				req.Body = body
			}
			if err := c.sleep(req.Context(), attempt); err != nil {
				return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
			}
		}

		resp, err := c.http.Do(req)
		if err != nil {
			// Network-level failure: transient.
			lastErr = err
			continue
		}

		if !retryableStatus(resp.StatusCode) {
			return resp, nil
		}

		// Drain so the connection can be reused, then retry.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		lastErr = fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	return nil, fmt.Errorf("%s %s: giving up after %d attempts: %w", req.Method, req.URL, c.maxRetries+1, lastErr)
}

// DoJSON issues a request with a JSON body (in may be nil) and decodes a
// JSON response into out (out may be nil). Non-2xx responses are errors;
// transient ones have already been retried by Do.
func (c *Client) DoJSON(ctx context.Context, method, url string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s %s: encoding request: %w", method, url, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("%s %s: building request: %w", method, url, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: status %d: %s", method, url, resp.StatusCode, bytes.TrimSpace(data))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decoding response: %w", method, url, err)
	}
	return nil
}

// retryableStatus reports whether a response status is transient.
func retryableStatus(code int) bool {
	return code >= 500 || code == http.StatusTooManyRequests
}

// sleep waits for the backoff delay of the given attempt (1-based),
// doubling each time with up to 25% random jitter, capped at maxDelay.
// Context cancellation aborts the wait.
func (c *Client) sleep(ctx context.Context, attempt int) error {
	delay := c.retryDelay << (attempt - 1)
	if delay > c.maxDelay {
		delay = c.maxDelay
	}
	if delay > 0 {
		delay += time.Duration(rand.Int63n(int64(delay)/4 + 1))
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
