// Package fetch is the HTTP client shared by the font tools. It wraps
// go-retryablehttp with a timeout, an optional retry budget, a fixed user
// agent and a response size limit.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// DefaultMaxBytes caps response bodies unless [Options.MaxBytes] is set.
const DefaultMaxBytes = 32 << 20 // 32 MiB

// ///////////////////////////////////////////////
// Types
// ///////////////////////////////////////////////

// Options configures a [Client].
type Options struct {
	// Timeout bounds each attempt. Zero means no timeout.
	Timeout time.Duration
	// RetryMax is the number of retries after the first attempt.
	RetryMax int
	// RetryWait is the minimum backoff between attempts. Zero keeps the
	// library default.
	RetryWait time.Duration
	// UserAgent is sent with every request when non-empty.
	UserAgent string
	// MaxBytes caps the response body. Zero means DefaultMaxBytes.
	MaxBytes int64
}

// Client performs GET requests and returns whole response bodies.
type Client struct {
	http      *retryablehttp.Client
	userAgent string
	maxBytes  int64
}

// StatusError reports a response with a status other than 200 OK.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.Code)
}

// ///////////////////////////////////////////////
// Client
// ///////////////////////////////////////////////

// New builds a Client from opts.
func New(opts Options) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.RetryMax
	if opts.RetryWait > 0 {
		rc.RetryWaitMin = opts.RetryWait
		rc.RetryWaitMax = 4 * opts.RetryWait
	}
	rc.HTTPClient.Timeout = opts.Timeout
	rc.Logger = nil // suppress retryablehttp's default logging
	// Hand the last response back so non-200 statuses surface as StatusError.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Client{http: rc, userAgent: opts.UserAgent, maxBytes: maxBytes}
}

// Get fetches url and returns the response body. Transport failures, non-200
// statuses and oversized bodies are errors that name the URL.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}
	if int64(len(body)) > c.maxBytes {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", url, c.maxBytes)
	}
	return body, nil
}
