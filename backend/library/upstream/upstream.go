// Package upstream carries the request plumbing shared by the model and
// simulation engine clients. It never retries and never interprets payloads.
package upstream

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
	"unicode/utf8"

	"sbml-builder/backend/common"
	"sbml-builder/backend/library/metrics"

	"github.com/sirupsen/logrus"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeXML  = "application/xml"

	// maxErrorBody bounds how much of a failed response ends up in an error.
	maxErrorBody = 4096
)

// Error is returned for transport failures and non-2xx responses.
type Error struct {
	Service    string
	Operation  string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %v", e.Service, e.Operation, e.Err)
	}
	return fmt.Sprintf("%s %s returned status %d: %s", e.Service, e.Operation, e.StatusCode, e.Body)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Request describes one outbound call.
type Request struct {
	// Operation names the call in logs and metrics.
	Operation   string
	Method      string
	Path        string
	Body        []byte
	ContentType string
	Accept      string
	// Timeout overrides the client default when positive.
	Timeout time.Duration
}

// Client issues requests against one engine's base URL.
type Client struct {
	Service        string
	BaseURL        string
	DefaultTimeout time.Duration
	HTTPClient     *http.Client
}

func NewClient(service, baseURL string, defaultTimeout time.Duration) *Client {
	return &Client{
		Service:        service,
		BaseURL:        strings.TrimRight(baseURL, "/"),
		DefaultTimeout: defaultTimeout,
		HTTPClient:     &http.Client{},
	}
}

// Do performs req and returns the response body of a 2xx answer.
func (c *Client) Do(ctx context.Context, req Request) ([]byte, error) {
	start := time.Now()
	body, status, err := c.do(ctx, req)

	outcome := "ok"
	switch {
	case status != 0 && (status < 200 || status > 299):
		outcome = strconv.Itoa(status)
	case err != nil:
		outcome = "error"
	}
	metrics.RecordUpstream(c.Service, req.Operation, outcome, time.Since(start))

	if err != nil {
		common.Logger.WithFields(logrus.Fields{
			"service":   c.Service,
			"operation": req.Operation,
			"path":      req.Path,
		}).Errorf("upstream call failed: %v", err)
		return nil, err
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, req Request) ([]byte, int, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.DefaultTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var reader io.Reader
	if req.Body != nil {
		reader = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.BaseURL+req.Path, reader)
	if err != nil {
		return nil, 0, c.wrap(req, fmt.Errorf("failed to create request: %w", err))
	}
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	if req.Accept != "" {
		httpReq.Header.Set("Accept", req.Accept)
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, 0, c.wrap(req, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, c.wrap(req, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, &Error{
			Service:    c.Service,
			Operation:  req.Operation,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(truncateBody(data, maxErrorBody))),
		}
	}
	return data, resp.StatusCode, nil
}

// truncateBody cuts data to at most limit bytes without splitting a UTF-8 rune.
func truncateBody(data []byte, limit int) []byte {
	if len(data) <= limit {
		return data
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(data[cut]) {
		cut--
	}
	return data[:cut]
}

func (c *Client) wrap(req Request, err error) error {
	return &Error{Service: c.Service, Operation: req.Operation, Err: err}
}

// JSON sends payload (when non-nil) as a JSON body and returns the JSON
// response untouched.
func (c *Client) JSON(ctx context.Context, req Request, payload any) (json.RawMessage, error) {
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, c.wrap(req, fmt.Errorf("failed to encode request: %w", err))
		}
		req.Body = body
		if req.ContentType == "" {
			req.ContentType = ContentTypeJSON
		}
	}
	if req.Accept == "" {
		req.Accept = ContentTypeJSON
	}

	data, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		err := c.wrap(req, fmt.Errorf("response is not valid JSON"))
		common.Logger.WithField("service", c.Service).Error(err.Error())
		return nil, err
	}
	return json.RawMessage(data), nil
}

// Ping issues GET /health and reports whether it answered 200 within timeout.
// Failures are never returned to the caller.
func (c *Client) Ping(ctx context.Context, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		common.Logger.WithField("service", c.Service).Debugf("health probe failed: %v", err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}
