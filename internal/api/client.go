// Package api provides the HTTP gateway client for the matching API.
//
// Every call resolves to its decoded payload or fails with an *APIError that
// carries the HTTP status (0 for transport failures) and the server's error
// detail. Higher layers depend on this contract only.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jonathan/career-navigator/internal/schemas"
)

// DefaultBaseURL is the API root used when none is configured.
const DefaultBaseURL = "http://localhost:8000/api/v1"

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 30 * time.Second

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the transport; Timeout is ignored when set.
	HTTPClient *http.Client
	// RequestsPerSecond throttles outgoing calls. Zero disables throttling.
	RequestsPerSecond float64
	Logger            *slog.Logger
	// ValidatePayloads checks status, results and analytics bodies against
	// the embedded JSON schemas before decoding.
	ValidatePayloads bool
}

// Client talks to the matching API.
type Client struct {
	baseURL  string
	http     *http.Client
	limiter  *rate.Limiter
	logger   *slog.Logger
	validate bool
}

// New creates a client from cfg, filling unset fields with defaults.
func New(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return &Client{
		baseURL:  base,
		http:     hc,
		limiter:  limiter,
		logger:   logger,
		validate: cfg.ValidatePayloads,
	}
}

// BaseURL returns the resolved API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends a JSON request and decodes the response payload into out.
// body and out may be nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	return c.doJSON(ctx, method, path, body, out, "")
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any, schema schemas.Name) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &APIError{Detail: "failed to encode request body", Cause: err}
		}
		reader = bytes.NewReader(data)
	}
	return c.send(ctx, method, path, reader, "application/json", out, schema)
}

// Upload sends r as a multipart form file under field and decodes the response into out.
func (c *Client) Upload(ctx context.Context, path, field, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return &APIError{Detail: "failed to build upload form", Cause: err}
	}
	if _, err := io.Copy(part, r); err != nil {
		return &APIError{Detail: "failed to read upload", Cause: err}
	}
	if err := mw.Close(); err != nil {
		return &APIError{Detail: "failed to build upload form", Cause: err}
	}
	return c.send(ctx, http.MethodPost, path, &buf, mw.FormDataContentType(), out, "")
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, out any, schema schemas.Name) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &APIError{Detail: err.Error(), Cause: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return &APIError{Detail: "failed to create request", Cause: err}
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("api request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.Any("error", err))
		return &APIError{Detail: err.Error(), Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Detail: "failed to read response body", Cause: err}
	}

	c.logger.Debug("api request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
		slog.String("request_id", requestID))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Detail: extractDetail(data, resp)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if c.validate && schema != "" {
		if err := schemas.Validate(schema, data); err != nil {
			return &APIError{Detail: fmt.Sprintf("unexpected %s payload", schema), Cause: err}
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &APIError{Detail: "invalid response body", Cause: err}
	}
	return nil
}
