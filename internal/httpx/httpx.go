// Package httpx implements the HTTP core shared by the provider adapters.
//
// A Client owns a base URL, an immutable set of default headers and an
// optional HeaderSource callback. The callback is invoked once per request
// so that headers derived from mutable adapter state (auth tokens, company
// context) are rebuilt from that state instead of being patched into a
// shared header map. Responses are size-limited and non-2xx statuses are
// surfaced as *StatusError values that adapters translate into domain
// errors.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout          = 30 * time.Second
	defaultMaxResponseBytes = 10 << 20 // 10MB
	defaultRetryMax         = 2
	defaultRetryWaitMin     = 250 * time.Millisecond
	defaultRetryWaitMax     = 2 * time.Second

	headerRequestID = "X-Request-ID"
)

// Common errors
var (
	ErrBaseURLRequired  = errors.New("httpx: base URL is required")
	ErrInvalidBaseURL   = errors.New("httpx: invalid base URL")
	ErrResponseTooLarge = errors.New("httpx: response body exceeds limit")

	// Status-class sentinels, matchable through errors.Is on *StatusError.
	ErrStatusNotFound      = errors.New("httpx: not found")
	ErrStatusDenied        = errors.New("httpx: access denied")
	ErrStatusConflict      = errors.New("httpx: conflict")
	ErrStatusUnprocessable = errors.New("httpx: unprocessable request")
	ErrStatusBadRequest    = errors.New("httpx: bad request")
	ErrStatusServer        = errors.New("httpx: server error")
)

// HeaderSource supplies headers rebuilt from adapter state for every
// outgoing request. It must be safe for concurrent use.
type HeaderSource func() map[string]string

// Options configures a Client.
type Options struct {
	// BaseURL is the vendor API root, e.g. "https://api.example.com/v1".
	BaseURL string
	// Timeout bounds each attempt end to end. Defaults to 30s.
	Timeout time.Duration
	// DefaultHeaders are copied at construction and never mutated again.
	DefaultHeaders map[string]string
	// HeaderSource, when set, contributes per-request headers. It wins
	// over DefaultHeaders and loses to per-request headers.
	HeaderSource HeaderSource
	// UserAgent overrides the default user agent string.
	UserAgent string
	// Logger receives request lifecycle events. Defaults to a nop logger.
	Logger *zap.Logger
	// Transport overrides the underlying round tripper. The transport is
	// always wrapped with OpenTelemetry instrumentation.
	Transport http.RoundTripper
	// MaxResponseBytes caps response bodies. Defaults to 10MB.
	MaxResponseBytes int64
	// RetryMax is the number of retries for idempotent requests that fail
	// with a transport error or a 5xx status. Defaults to 2; negative
	// disables retries.
	RetryMax int
	// RetryWaitMin/RetryWaitMax bound the exponential backoff between
	// retries.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// RateLimit throttles outgoing requests (requests per second) to stay
	// inside vendor quotas. Zero disables throttling.
	RateLimit float64
	// RateBurst is the throttle burst size. Defaults to 1 when RateLimit
	// is set.
	RateBurst int
}

// Client is a JSON-over-HTTP client bound to a single vendor API.
type Client struct {
	baseURL      *url.URL
	hc           *http.Client
	defaults     http.Header
	source       HeaderSource
	log          *zap.Logger
	limiter      *rate.Limiter
	userAgent    string
	maxBytes     int64
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

// New builds a Client from opts.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}
	base, err := url.Parse(opts.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := opts.Transport
	if transport == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.MaxIdleConns = 100
		t.MaxIdleConnsPerHost = 10
		t.IdleConnTimeout = 90 * time.Second
		transport = t
	}

	defaults := make(http.Header, len(opts.DefaultHeaders))
	for k, v := range opts.DefaultHeaders {
		defaults.Set(k, v)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	maxBytes := opts.MaxResponseBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxResponseBytes
	}

	retryMax := opts.RetryMax
	switch {
	case retryMax == 0:
		retryMax = defaultRetryMax
	case retryMax < 0:
		retryMax = 0
	}
	retryWaitMin := opts.RetryWaitMin
	if retryWaitMin <= 0 {
		retryWaitMin = defaultRetryWaitMin
	}
	retryWaitMax := opts.RetryWaitMax
	if retryWaitMax <= 0 {
		retryWaitMax = defaultRetryWaitMax
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "b2b-commerce-client/1.0"
	}

	return &Client{
		baseURL:      base,
		hc:           &http.Client{Timeout: timeout, Transport: otelhttp.NewTransport(transport)},
		defaults:     defaults,
		source:       opts.HeaderSource,
		log:          logger,
		limiter:      limiter,
		userAgent:    userAgent,
		maxBytes:     maxBytes,
		retryMax:     retryMax,
		retryWaitMin: retryWaitMin,
		retryWaitMax: retryWaitMax,
	}, nil
}

// BaseURL reports the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Request describes one API call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	// Body is JSON-encoded unless it is a json.RawMessage or []byte,
	// which pass through as-is. A nil Body sends no payload.
	Body any
}

// Response is a fully-read API response.
type Response struct {
	Status    int
	Header    http.Header
	Body      []byte
	RequestID string
	Elapsed   time.Duration
}

// StatusError reports a non-2xx response. It unwraps to one of the
// status-class sentinels so callers can match with errors.Is.
type StatusError struct {
	Status    int
	Method    string
	Path      string
	Body      []byte
	RequestID string
}

func (e *StatusError) Error() string {
	msg := strings.TrimSpace(string(e.Body))
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	if msg == "" {
		return fmt.Sprintf("httpx: %s %s returned status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("httpx: %s %s returned status %d: %s", e.Method, e.Path, e.Status, msg)
}

func (e *StatusError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return ErrStatusNotFound
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return ErrStatusDenied
	case e.Status == http.StatusConflict:
		return ErrStatusConflict
	case e.Status == http.StatusUnprocessableEntity:
		return ErrStatusUnprocessable
	case e.Status >= http.StatusInternalServerError:
		return ErrStatusServer
	default:
		return ErrStatusBadRequest
	}
}

// Do executes req and returns the fully-read response. Idempotent requests
// are retried on transport errors and 5xx statuses with exponential
// backoff; everything else fails fast.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("httpx: rate limit wait: %w", err)
		}
	}

	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, fmt.Errorf("httpx: encode request body: %w", err)
	}
	requestID := uuid.NewString()

	var resp *Response
	attempt := func() error {
		r, err := c.do(ctx, req, body, requestID)
		if err != nil {
			var se *StatusError
			if errors.As(err, &se) && se.Status < http.StatusInternalServerError {
				return backoff.Permanent(err)
			}
			if !idempotent(req.Method) {
				return backoff.Permanent(err)
			}
			return err
		}
		resp = r
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryWaitMin
	bo.MaxInterval = c.retryWaitMax
	bo.MaxElapsedTime = 0

	err = backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(c.retryMax)), ctx))
	if err != nil {
		c.log.Warn("http request failed",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, req Request, body []byte, requestID string) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.endpoint(req.Path, req.Query), reader)
	if err != nil {
		return nil, fmt.Errorf("httpx: build request: %w", err)
	}
	c.applyHeaders(httpReq, req, body != nil, requestID)

	// Tie the caller's span to the vendor request so a failing call can be
	// matched against vendor-side logs.
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("commerce.request_id", requestID))

	start := time.Now()
	httpResp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("httpx: %s %s: %w", req.Method, req.Path, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("httpx: read response: %w", err)
	}
	if int64(len(respBody)) > c.maxBytes {
		return nil, fmt.Errorf("%w: %s %s", ErrResponseTooLarge, req.Method, req.Path)
	}
	elapsed := time.Since(start)

	c.log.Debug("http request",
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.Int("status", httpResp.StatusCode),
		zap.Duration("elapsed", elapsed),
		zap.String("request_id", requestID))

	if httpResp.StatusCode >= http.StatusBadRequest {
		return nil, &StatusError{
			Status:    httpResp.StatusCode,
			Method:    req.Method,
			Path:      req.Path,
			Body:      respBody,
			RequestID: requestID,
		}
	}

	return &Response{
		Status:    httpResp.StatusCode,
		Header:    httpResp.Header,
		Body:      respBody,
		RequestID: requestID,
		Elapsed:   elapsed,
	}, nil
}

// applyHeaders layers headers for one attempt: immutable defaults, then the
// per-request snapshot from the header source, then request overrides.
func (c *Client) applyHeaders(httpReq *http.Request, req Request, hasBody bool, requestID string) {
	for k, vs := range c.defaults {
		for _, v := range vs {
			httpReq.Header.Set(k, v)
		}
	}
	if c.source != nil {
		for k, v := range c.source() {
			if v == "" {
				continue
			}
			httpReq.Header.Set(k, v)
		}
	}
	for k, v := range req.Headers {
		if v == "" {
			continue
		}
		httpReq.Header.Set(k, v)
	}
	if hasBody {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(headerRequestID, requestID)
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return b, nil
	case []byte:
		return b, nil
	default:
		return json.Marshal(body)
	}
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return true
	default:
		return false
	}
}

// DoJSON executes req and decodes the response body into out when out is
// non-nil and the body is non-empty.
func (c *Client) DoJSON(ctx context.Context, req Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("httpx: decode %s %s response: %w", req.Method, req.Path, err)
	}
	return nil
}

// Get issues a GET with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.DoJSON(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.DoJSON(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.DoJSON(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.DoJSON(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.DoJSON(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}
