// Package verif provides the HTTP client for the content verification backend
package verif

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	perr "verihub/internal/platform/errors"
	"verihub/internal/platform/logger"
)

const (
	defaultBaseURL = "http://localhost:8000"
	defaultTimeout = 60 * time.Second
	defaultUA      = "verihub-coordinator"
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client is a thin client over the backend's analyze and chat endpoints.
// Retries are the caller's concern so attempt counts stay per operation
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = defaultBaseURL
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("verif"),
		now:  time.Now,
	}
}

// postJSON issues a JSON POST and decodes the report plus headers
func (c *Client) postJSON(ctx context.Context, path string, body any) (*Report, Headers, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, Headers{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "verif encode body failed")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, Headers{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "verif new request failed")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path)
}

// postMultipart issues a multipart POST built by fill and decodes the report
func (c *Client) postMultipart(ctx context.Context, path string, fill func(*multipart.Writer) error) (*Report, Headers, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := fill(mw); err != nil {
		return nil, Headers{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "verif build form failed")
	}
	if err := mw.Close(); err != nil {
		return nil, Headers{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "verif close form failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+path, &buf)
	if err != nil {
		return nil, Headers{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "verif new request failed")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, path)
}

func (c *Client) do(req *http.Request, path string) (*Report, Headers, error) {
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		return nil, Headers{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "verif request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("verif http response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, Headers{}, statusError(resp)
	}

	var report Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, Headers{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "verif decode report failed")
	}
	return &report, ExtractHeaders(resp.Header), nil
}

// statusError reads the backend error detail, tolerating non JSON bodies
func statusError(resp *http.Response) error {
	detail := resp.Status
	var body struct {
		Detail string `json:"detail"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(raw, &body) == nil && body.Detail != "" {
		detail = body.Detail
	}
	return &StatusError{Status: resp.StatusCode, Detail: detail}
}
