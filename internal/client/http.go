// Package client talks to a running projection server and drives the
// projector command line tool.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/nestegg/internal/domain/model"
	"github.com/okian/nestegg/internal/domain/projection"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 10 * time.Second

// HTTPClient posts Input Records to POST /api/projection.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout sets the request timeout of the default transport.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.client = &http.Client{Timeout: d}
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.client = hc
		}
	}
}

// NewHTTPClient creates a client for the server at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		client:  &http.Client{Timeout: DefaultTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Project asks the server for a projection. A 422 answer is returned as a
// *projection.ValidationError carrying the server's message.
func (c *HTTPClient) Project(ctx context.Context, in model.InputRecord) (model.Result, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return model.Result{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/projection", bytes.NewReader(payload))
	if err != nil {
		return model.Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return model.Result{}, fmt.Errorf("post projection: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Result{}, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var res model.Result
		if err := json.Unmarshal(body, &res); err != nil {
			return model.Result{}, fmt.Errorf("decode result: %w", err)
		}
		return res, nil
	case http.StatusUnprocessableEntity:
		var eb errorBody
		if err := json.Unmarshal(body, &eb); err != nil {
			return model.Result{}, fmt.Errorf("decode error: %w", err)
		}
		return model.Result{}, &projection.ValidationError{Message: eb.Message}
	default:
		var eb errorBody
		_ = json.Unmarshal(body, &eb)
		return model.Result{}, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, eb.Message)
	}
}
