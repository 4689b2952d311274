package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a single HTTP round trip.
const DefaultTimeout = 30 * time.Second

// Client is a thin HTTP client for the Munchie REST API. It handles Bearer
// token authentication, JSON marshaling, a client-side request rate limit,
// and retry with exponential backoff on HTTP 429.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	limiter    *rate.Limiter
	log        logrus.FieldLogger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithMaxRetries sets how many times a 429 response is retried.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithRateLimit caps outgoing requests to perSec with a burst of the same
// size. A non-positive value disables the limit.
func WithRateLimit(perSec float64) Option {
	return func(c *Client) {
		if perSec <= 0 {
			c.limiter = nil
			return
		}
		burst := int(perSec)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
	}
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient creates a Munchie API client. The baseURL is the backend root
// (e.g., http://localhost:8080); a trailing slash is ignored.
func NewClient(baseURL string, opts ...Option) *Client {
	discard := logrus.New()
	discard.Out = io.Discard

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		maxRetries: 3,
		log:        discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request describes a single API call.
type request struct {
	method string
	path   string
	token  string
	body   interface{}
	result interface{}

	// noRetry disables the 429 retry loop for this call.
	noRetry bool
}

// do is the core HTTP method that builds the request, handles auth,
// rate limiting with exponential backoff, and JSON (de)serialization.
// Transport failures and non-2xx responses come back as *FetchError.
func (c *Client) do(ctx context.Context, r request) error {
	url := c.baseURL + r.path

	var payload []byte
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		payload = data
	}

	maxRetries := c.maxRetries
	if r.noRetry {
		maxRetries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return &FetchError{Method: r.method, Path: r.path, Err: err}
			}
		}

		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, r.method, url, bodyReader)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}

		if r.token != "" {
			req.Header.Set("Authorization", "Bearer "+r.token)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return &FetchError{Method: r.method, Path: r.path, Err: err}
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return &FetchError{
				Method:     r.method,
				Path:       r.path,
				StatusCode: resp.StatusCode,
				Err:        fmt.Errorf("reading response body: %w", readErr),
			}
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = &FetchError{
				Method:     r.method,
				Path:       r.path,
				StatusCode: resp.StatusCode,
				Body:       string(respBody),
			}
			if attempt == maxRetries {
				break
			}

			waitDuration := retryAfterDuration(resp, attempt)
			c.log.WithFields(logrus.Fields{
				"method": r.method,
				"path":   r.path,
				"wait":   waitDuration.String(),
			}).Debug("rate limited, backing off")

			select {
			case <-ctx.Done():
				return &FetchError{Method: r.method, Path: r.path, Err: ctx.Err()}
			case <-time.After(waitDuration):
				continue
			}
		}

		if resp.StatusCode == http.StatusUnauthorized {
			return &FetchError{
				Method:     r.method,
				Path:       r.path,
				StatusCode: resp.StatusCode,
				Body:       string(respBody),
				Err:        &AuthError{Path: r.path, Message: "check your access token"},
			}
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &FetchError{
				Method:     r.method,
				Path:       r.path,
				StatusCode: resp.StatusCode,
				Body:       string(respBody),
			}
		}

		// No content to parse (e.g. 204).
		if r.result == nil || resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
			return nil
		}

		if err := json.Unmarshal(respBody, r.result); err != nil {
			return fmt.Errorf(
				"unmarshaling response from %s %s: %w",
				r.method, r.path, err,
			)
		}

		return nil
	}

	return fmt.Errorf("max retries (%d) exceeded: %w", maxRetries, lastErr)
}

// retryAfterDuration reads the Retry-After header and computes a wait
// duration. Falls back to exponential backoff if the header is missing.
func retryAfterDuration(resp *http.Response, attempt int) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}

	// Exponential backoff: 1s, 2s, 4s, ...
	backoff := time.Duration(1<<uint(attempt)) * time.Second
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	return backoff
}
