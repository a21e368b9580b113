// Package apiclient is the single configured HTTP client for the hirely API.
// Tokens are attached per call with WithBearer. Any 401 response runs the
// client's UnauthorizedHandler before the call returns its error.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/VishalGhuge111/hirely/internal/logutil"
	"github.com/VishalGhuge111/hirely/pkg/models"
	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request id for correlating client and server logs.
const RequestIDHeader = "X-Request-ID"

// UnauthorizedHandler is invoked for every 401 response, whichever call
// triggered it.
type UnauthorizedHandler interface {
	HandleUnauthorized(ctx context.Context)
}

// UnauthorizedFunc adapts a function to UnauthorizedHandler.
type UnauthorizedFunc func(ctx context.Context)

func (f UnauthorizedFunc) HandleUnauthorized(ctx context.Context) {
	f(ctx)
}

// Client talks to one API base URL, fixed at construction.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	log          *slog.Logger
	unauthorized UnauthorizedHandler
}

type Option func(*Client)

// WithHTTPClient sets the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithUnauthorizedHandler sets the hook run on every 401 response.
func WithUnauthorizedHandler(h UnauthorizedHandler) Option {
	return func(c *Client) {
		c.unauthorized = h
	}
}

// New returns a Client for baseURL. Trailing slashes are dropped.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: http.DefaultClient,
		log:        logutil.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the URL every request path is joined to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type requestOptions struct {
	token string
}

type RequestOption func(*requestOptions)

// WithBearer attaches token as the Authorization header for one call.
// An empty token attaches nothing.
func WithBearer(token string) RequestOption {
	return func(o *requestOptions) {
		o.token = token
	}
}

// Do sends one request. body, when non-nil, is sent as JSON. out, when
// non-nil, receives the decoded 2xx body; an empty body leaves it untouched.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	ro := &requestOptions{}
	for _, opt := range opts {
		opt(ro)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	requestID := uuid.NewString()
	log := logutil.WithFields(c.log, "method", method, "path", path, "request_id", requestID)
	defer logutil.NewTimingLogger(log, time.Now(), "api request finished")()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ro.token != "" {
		req.Header.Set("Authorization", "Bearer "+ro.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return logutil.DebugAndWrapErr(log, "api request failed",
			&TransportError{Method: method, Path: path, err: err})
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, Path: path, err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Status:  resp.StatusCode,
			Message: parseErrorBody(payload),
			Method:  method,
			Path:    path,
		}
		if resp.StatusCode == http.StatusUnauthorized {
			log.Warn("api rejected credentials, ending session")
			if c.unauthorized != nil {
				// the teardown must finish even if the caller has gone away
				c.unauthorized.HandleUnauthorized(context.WithoutCancel(ctx))
			}
		} else {
			log.Debug("api returned error", "status", resp.StatusCode, "message", apiErr.Message)
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return logutil.DebugAndWrapErr(log, "api response not decodable",
			models.NewDecodeError(method+" "+path+" response", err))
	}
	return nil
}
