// Package backend is the HTTP client for the integrations backend. The
// backend owns the OAuth client secrets and token exchange; this client only
// asks it for authorization URLs, stored credentials and provider objects.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driven"
	"github.com/vectorshift/integrations-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.IntegrationBackend = (*Client)(nil)

const (
	// DefaultBaseURL is where the backend listens in local development.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds a single backend request.
	DefaultTimeout = 30 * time.Second

	// maxErrorBody caps how much of an error body is read.
	maxErrorBody = 64 << 10
)

// Options configures a Client.
type Options struct {
	// BaseURL is the backend root. Defaults to DefaultBaseURL.
	BaseURL string
	// Timeout bounds each request. Defaults to DefaultTimeout.
	Timeout time.Duration
	// RateLimit throttles outgoing requests. Defaults to DefaultRateLimit.
	RateLimit RateLimitConfig
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to the backend over form-encoded POSTs.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	limiter *RateLimiter
}

// NewClient creates a backend client.
func NewClient(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: backend url %q: %w", domain.ErrInvalidInput, raw, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: backend url %q must be http or https", domain.ErrInvalidInput, raw)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: base,
		http:    httpClient,
		limiter: NewRateLimiter(opts.RateLimit),
	}, nil
}

// BaseURL returns the backend root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Authorize posts user_id and org_id to /integrations/{slug}/authorize and
// returns the provider authorization URL.
func (c *Client) Authorize(ctx context.Context, slug string, session domain.SessionContext) (string, error) {
	body, err := c.postForm(ctx, slug, "authorize", sessionForm(session))
	if err != nil {
		return "", err
	}
	return decodeURL(body)
}

// Credentials posts user_id and org_id to /integrations/{slug}/credentials.
// An empty body is returned as an empty credential.
func (c *Client) Credentials(ctx context.Context, slug string, session domain.SessionContext) (domain.Credential, error) {
	body, err := c.postForm(ctx, slug, "credentials", sessionForm(session))
	if err != nil {
		return domain.Credential{}, err
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return domain.Credential{}, nil
	}
	if !json.Valid(body) {
		return domain.Credential{}, fmt.Errorf("credentials: %w", domain.ErrMalformedResponse)
	}
	return domain.NewCredential(body), nil
}

// Load posts the serialized credential to /integrations/{slug}/load and
// returns the raw response body.
func (c *Client) Load(ctx context.Context, slug string, cred domain.Credential) ([]byte, error) {
	form := url.Values{}
	form.Set("credentials", cred.JSON())
	return c.postForm(ctx, slug, "load", form)
}

// Ping checks that the backend root answers.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.JoinPath("/").String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	_, err = c.do(req)
	return err
}

func sessionForm(session domain.SessionContext) url.Values {
	form := url.Values{}
	form.Set("user_id", session.UserID)
	form.Set("org_id", session.OrgID)
	return form
}

func (c *Client) postForm(ctx context.Context, slug, action string, form url.Values) ([]byte, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: empty provider slug", domain.ErrInvalidInput)
	}
	endpoint := c.baseURL.JoinPath("integrations", slug, action).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	logger.Debug("backend: %s %s", req.Method, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	logger.Debug("backend: %s %s -> %d (%s)", req.Method, req.URL.Path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusTooManyRequests {
			c.limiter.RecordRateLimitError(parseRetryAfter(resp.Header.Get("Retry-After")))
		}
		return nil, decodeError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// decodeError builds a BackendError from a non-2xx response. Only a JSON
// body with a string "detail" field populates Detail.
func decodeError(resp *http.Response) error {
	backendErr := &domain.BackendError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return backendErr
	}

	var errResp struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil || len(errResp.Detail) == 0 {
		return backendErr
	}

	var detail string
	if err := json.Unmarshal(errResp.Detail, &detail); err == nil {
		backendErr.Detail = detail
		return backendErr
	}
	// Validation errors carry a structured detail; show it compactly.
	var compact bytes.Buffer
	if err := json.Compact(&compact, errResp.Detail); err == nil {
		backendErr.Detail = compact.String()
	}
	return backendErr
}

// decodeURL accepts a JSON string or a bare URL.
func decodeURL(body []byte) (string, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return "", errors.New("empty authorization response")
	}

	raw := string(body)
	if body[0] == '"' {
		if err := json.Unmarshal(body, &raw); err != nil {
			return "", fmt.Errorf("authorization response: %w", domain.ErrMalformedResponse)
		}
	}

	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("authorization response is not a URL: %w", domain.ErrMalformedResponse)
	}
	return u.String(), nil
}

// parseRetryAfter reads the delay-seconds form of Retry-After.
func parseRetryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
