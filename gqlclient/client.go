/**
 * Copyright (c) 2026, The gqlcodegen Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package gqlclient is a minimal GraphQL-over-HTTP client. The generator uses it to introspect
// URL schema pointers, and code produced by the gosdk plugin executes operations through the same
// Client interface, so any transport satisfying it can back a generated SDK.
package gqlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	jsoniter "github.com/json-iterator/go"

	"github.com/zirkelc/gqlcodegen/jsonwriter"
)

// Request is a single GraphQL request.
type Request struct {
	// Query holds the operation document text.
	Query string

	// OperationName selects the operation when the document contains more than one. Optional.
	OperationName string

	// Variables are the operation's variable values. Optional; must marshal to a JSON object.
	Variables interface{}
}

// Client executes GraphQL requests. Do decodes the response's "data" member into response, which
// must be a pointer. When the response carries GraphQL errors, they are returned as an ErrorList
// after any partial data has been decoded.
type Client interface {
	Do(ctx context.Context, req *Request, response interface{}) error
}

// ErrorLocation is a position within the request document attached to a GraphQL error.
type ErrorLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error is one member of the response's "errors" array.
//
// Reference: https://spec.graphql.org/June2018/#sec-Errors
type Error struct {
	Message   string          `json:"message"`
	Locations []ErrorLocation `json:"locations,omitempty"`
	Path      []interface{}   `json:"path,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// ErrorList collects the GraphQL errors of one response into a single error value.
type ErrorList []*Error

func (list ErrorList) Error() string {
	messages := make([]string, len(list))
	for i, err := range list {
		messages[i] = err.Message
	}
	return strings.Join(messages, "\n")
}

// HTTPError reports a response with a non-2xx status code, after retries were exhausted.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned %s", e.Status)
	}
	return fmt.Sprintf("server returned %s: %s", e.Status, e.Body)
}

const (
	defaultMaxRetries = 3
	defaultBaseDelay  = 100 * time.Millisecond
	defaultMaxDelay   = 5 * time.Second

	// maxErrorBodySize bounds how much of a non-2xx response body is kept for the error message.
	maxErrorBodySize = 4 << 10
)

// HTTPClient implements Client against a GraphQL HTTP endpoint using POST with a JSON body.
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
	headers    map[string]string
	executor   failsafe.Executor[*http.Response]
}

var _ Client = (*HTTPClient)(nil)

// Option configures an HTTPClient.
type Option func(*options)

type options struct {
	httpClient *http.Client
	headers    map[string]string
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

// WithHTTPClient sets the underlying http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithHeaders adds headers to every request. Intended for authorization.
func WithHeaders(headers map[string]string) Option {
	return func(o *options) {
		if o.headers == nil {
			o.headers = make(map[string]string, len(headers))
		}
		for name, value := range headers {
			o.headers[name] = value
		}
	}
}

// WithRetries overrides the retry policy. maxRetries of 0 disables retrying.
func WithRetries(maxRetries int, baseDelay, maxDelay time.Duration) Option {
	return func(o *options) {
		o.maxRetries = maxRetries
		o.baseDelay = baseDelay
		o.maxDelay = maxDelay
	}
}

// retryableStatus reports whether a status code marks a transient failure: rate limits and server
// errors are; everything else is not.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
		http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}

// shouldRetry reports whether a request attempt should be retried. Attempts fail with an error for
// network problems and transient statuses; context cancellation must not be retried.
func shouldRetry(resp *http.Response, err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// New creates an HTTPClient for the given endpoint.
func New(endpoint string, opts ...Option) *HTTPClient {
	o := options{
		httpClient: http.DefaultClient,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
		maxDelay:   defaultMaxDelay,
	}
	for _, opt := range opts {
		opt(&o)
	}

	retry := retrypolicy.NewBuilder[*http.Response]().
		WithBackoff(o.baseDelay, o.maxDelay).
		WithMaxRetries(o.maxRetries).
		HandleIf(shouldRetry).
		Build()

	return &HTTPClient{
		endpoint:   endpoint,
		httpClient: o.httpClient,
		headers:    o.headers,
		executor:   failsafe.With(retry),
	}
}

// encodeRequest renders the request body. The variables value is arbitrary caller data and goes
// through the json-iterator fallback.
func encodeRequest(req *Request) ([]byte, error) {
	var buf bytes.Buffer
	stream := jsonwriter.NewStream(&buf)

	stream.WriteObjectStart()
	stream.WriteObjectField("query")
	stream.WriteString(req.Query)
	if req.OperationName != "" {
		stream.WriteMore()
		stream.WriteObjectField("operationName")
		stream.WriteString(req.OperationName)
	}
	if req.Variables != nil {
		stream.WriteMore()
		stream.WriteObjectField("variables")
		stream.WriteValue(req.Variables)
	}
	stream.WriteObjectEnd()

	if err := stream.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var jsonConfig = jsoniter.ConfigCompatibleWithStandardLibrary

// Do implements Client.
func (c *HTTPClient) Do(ctx context.Context, req *Request, response interface{}) error {
	body, err := encodeRequest(req)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	resp, err := c.executor.WithContext(ctx).Get(func() (*http.Response, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Accept", "application/json")
		for name, value := range c.headers {
			httpReq.Header.Set(name, value)
		}

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return nil, err
		}
		if retryableStatus(resp.StatusCode) {
			// Fail the attempt with the status detail; the body must be drained so the connection
			// can be reused by the next attempt.
			detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
			resp.Body.Close()
			return nil, &HTTPError{
				StatusCode: resp.StatusCode,
				Status:     resp.Status,
				Body:       strings.TrimSpace(string(detail)),
			}
		}
		return resp, nil
	})
	if err != nil {
		return fmt.Errorf("post %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(detail)),
		}
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors ErrorList       `json:"errors"`
	}
	if err := jsonConfig.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	// Partial data accompanies field errors; decode it before reporting them.
	if len(envelope.Data) > 0 && string(envelope.Data) != "null" && response != nil {
		if err := jsonConfig.Unmarshal(envelope.Data, response); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}

	if len(envelope.Errors) > 0 {
		return envelope.Errors
	}
	return nil
}
