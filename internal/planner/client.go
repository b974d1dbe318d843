package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	optionsPath  = "dropdown-options"
	submitPath   = "submit-selections"
	progressPath = "student-progress"
	uploadPath   = "upload"

	// UploadField is the multipart field the service reads the transcript from.
	UploadField = "file"

	DefaultTimeout = 30 * time.Second
)

// Client talks to the degree planner service. Each call is a single request;
// nothing is retried.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
	newID   func() string
	timeout *time.Duration
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each request end to end. Zero disables the bound.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = &d
	}
}

func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger.With().Str("component", "planner-client").Logger()
	}
}

func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("planner: parse base url: %w", err)
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  zerolog.Nop(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.timeout != nil {
		hc := *c.http
		hc.Timeout = *c.timeout
		c.http = &hc
	}
	return c, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// FetchOptions loads the majors and minors catalogs.
func (c *Client) FetchOptions(ctx context.Context) (Options, error) {
	body, err := c.do(ctx, http.MethodGet, optionsPath, nil, "")
	if err != nil {
		return Options{}, err
	}
	var opts Options
	if err := json.Unmarshal(body, &opts); err != nil {
		return Options{}, fmt.Errorf("planner: decode options: %w", err)
	}
	return opts.normalized(), nil
}

// SubmitSelections posts both fields' selections and returns the response text.
func (c *Client) SubmitSelections(ctx context.Context, sel Selections) (string, error) {
	payload, err := json.Marshal(sel.normalized())
	if err != nil {
		return "", fmt.Errorf("planner: encode selections: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, submitPath, bytes.NewReader(payload), "application/json")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchProgress returns the student's progress text as served.
func (c *Client) FetchProgress(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodGet, progressPath, nil, "")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// UploadFile sends r as a multipart file named name and returns the response text.
func (c *Client) UploadFile(ctx context.Context, name string, r io.Reader) (string, error) {
	if r == nil {
		return "", fmt.Errorf("planner: upload %q: nil reader", name)
	}
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(UploadField, name)
	if err != nil {
		return "", fmt.Errorf("planner: create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("planner: read %q: %w", name, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("planner: close multipart: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, uploadPath, &buf, mw.FormDataContentType())
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("planner: build url for %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("planner: new request: %w", err)
	}
	requestID := c.newID()
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("request_id", requestID).
			Str("method", method).
			Str("path", path).
			Msg("planner request failed")
		return nil, fmt.Errorf("planner: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("planner: read %s response: %w", path, err)
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("planner request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}
