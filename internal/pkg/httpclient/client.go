// Package httpclient fetches upstream API payloads with fixed identifying headers and retries.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize is the maximum allowed response size (100MB)
	MaxResponseSize = 100 * 1024 * 1024
)

// ErrEmptyBody is returned for a 200 response without content.
var ErrEmptyBody = errors.New("empty response body")

// Client is an interface for HTTP operations
//
//go:generate mockgen -destination=mocks/mock_client.go -package=mocks -source=client.go Client
type Client interface {
	// Get performs an HTTP GET request and returns the response body
	Get(ctx context.Context, url string) ([]byte, error)
}

// Options configures DefaultClient. Zero values fall back to sane defaults.
type Options struct {
	Timeout       time.Duration
	Headers       map[string]string
	MaxRetries    uint64
	RetryInterval time.Duration
}

type DefaultClient struct {
	client  *http.Client
	headers http.Header
	retries uint64
	wait    time.Duration
}

func NewDefaultClient(opts Options) *DefaultClient {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	headers := make(http.Header, len(opts.Headers)+1)
	headers.Set("Accept", "application/json")
	for k, v := range opts.Headers {
		if v != "" {
			headers.Set(k, v)
		}
	}

	return &DefaultClient{
		client:  &http.Client{Timeout: timeout},
		headers: headers,
		retries: opts.MaxRetries,
		wait:    opts.RetryInterval,
	}
}

// Get performs an HTTP GET request. Transport errors, 429 and 5xx are retried;
// any other non-200 status fails immediately with *HTTPError.
func (c *DefaultClient) Get(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	err := backoff.Retry(
		func() error {
			var getErr error
			body, getErr = c.get(ctx, url)
			if getErr == nil {
				return nil
			}

			var httpErr *HTTPError
			if errors.As(getErr, &httpErr) && !httpErr.Temporary() {
				return backoff.Permanent(getErr)
			}
			if errors.Is(getErr, ErrEmptyBody) {
				return backoff.Permanent(getErr)
			}
			return getErr
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(c.wait), c.retries),
			ctx,
		),
	)
	if err != nil {
		return nil, err
	}

	return body, nil
}

func (c *DefaultClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = c.headers.Clone()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, NewHTTPError(resp.StatusCode, url, resp.Status)
	}

	if resp.ContentLength > MaxResponseSize {
		return nil, fmt.Errorf("response size %d bytes exceeds maximum allowed size of %d bytes",
			resp.ContentLength, MaxResponseSize)
	}

	// +1 to detect if limit exceeded
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response size exceeds maximum allowed size of %d bytes", MaxResponseSize)
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, ErrEmptyBody
	}

	return body, nil
}
