// Package api is the HTTP client for the metrics backend.
//
// The backend exposes three endpoints under a base URL:
//
//	GET  /system-info   aggregate CPU, memory, disk and process count
//	GET  /processes     ordered process list
//	POST /kill-process  terminate a process by pid
//
// Any transport failure, non-2xx status or undecodable body is returned as
// an error. Callers decide how to classify it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/logger"
)

// Endpoint paths relative to the base URL.
const (
	PathSystemInfo  = "/system-info"
	PathProcesses   = "/processes"
	PathKillProcess = "/kill-process"
)

// DefaultBaseURL is where the backend listens when nothing else is configured.
const DefaultBaseURL = "http://localhost:8000/api"

// maxErrorBody caps how much of a failed response body is kept for diagnostics.
const maxErrorBody = 512

// Backend is the set of operations the dashboard needs from the metrics backend.
// Client is the real implementation; tests use a fake.
type Backend interface {
	SystemInfo(ctx context.Context) (*SystemInfo, error)
	Processes(ctx context.Context) ([]ProcessEntry, error)
	KillProcess(ctx context.Context, pid int) error
}

// Client talks to the backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTransport sets the round tripper used for all requests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = rt
	}
}

// WithTimeout sets a per-request timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient creates a client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' isn't a usable backend URL", baseURL),
			"Use something like http://localhost:8000/api")
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     logger.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized base URL (no trailing slash).
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SystemInfo fetches the current system snapshot.
func (c *Client) SystemInfo(ctx context.Context) (*SystemInfo, error) {
	var info SystemInfo
	if err := c.do(ctx, http.MethodGet, PathSystemInfo, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Processes fetches the process list in backend order.
func (c *Client) Processes(ctx context.Context) ([]ProcessEntry, error) {
	var procs []ProcessEntry
	if err := c.do(ctx, http.MethodGet, PathProcesses, nil, &procs); err != nil {
		return nil, err
	}
	if procs == nil {
		procs = []ProcessEntry{}
	}
	return procs, nil
}

// KillProcess asks the backend to terminate pid. The response body is ignored.
func (c *Client) KillProcess(ctx context.Context, pid int) error {
	return c.do(ctx, http.MethodPost, PathKillProcess, KillRequest{PID: pid}, nil)
}

// do performs one request. If out is non-nil the response body is decoded into it.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("%s %s failed after %s: %v", method, path, time.Since(start), err)
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug("%s %s -> %d in %s", method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: backend returned %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: backend returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}
