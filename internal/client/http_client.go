package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"polluxkart-admin/internal/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

var HttpClientTracer = otel.Tracer("HttpClient")

// HTTPClient is a thin JSON client for the outbound integrations this
// service talks to (currently only the SMS gateway).
type HTTPClient struct {
	client  *http.Client
	baseURL string
	headers map[string]string
}

// RequestOptions for request configuration
type RequestOptions struct {
	Method      string
	URL         string
	Headers     map[string]string
	QueryParams map[string]string
	Body        interface{}
	Context     context.Context
}

// Response wrapper with the decoded body and transport details.
type Response[T any] struct {
	Data       T
	StatusCode int
	Headers    http.Header
	RawBody    []byte
}

// NewHTTPClient creates a new HTTP client instance
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: make(map[string]string),
	}
}

// SetDefaultHeader adds a default header
func (c *HTTPClient) SetDefaultHeader(key, value string) {
	c.headers[key] = value
}

// Do performs the request and decodes a JSON response into result when the
// caller provides one. The trace context propagates via the standard otel
// headers plus X-Trace-ID for manual log correlation.
func (c *HTTPClient) Do(opts RequestOptions) (*Response[any], error) {
	fullURL, err := c.buildURL(opts.URL, opts.QueryParams)
	if err != nil {
		logger.Error(opts.Context, "Failed to build URL", slog.Any("error", err))
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		bodyBytes, err := c.encodeBody(opts.Body)
		if err != nil {
			logger.Error(opts.Context, "Failed to encode body", slog.Any("error", err))
			return nil, fmt.Errorf("failed to encode body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, span := HttpClientTracer.Start(ctx, "outbound-http-request")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, opts.Method, fullURL, bodyReader)
	if err != nil {
		logger.Error(ctx, "Failed to create request", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	c.setHeaders(req, map[string]string{
		"X-Trace-ID": span.SpanContext().TraceID().String(),
	})
	c.setHeaders(req, opts.Headers)

	logger.Info(ctx, "HttpClient request",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
	)

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Error(ctx, "Failed to execute request", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error(ctx, "Failed to read response body", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	out := &Response[any]{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		RawBody:    rawBody,
	}
	if len(rawBody) > 0 {
		// Non-JSON bodies stay available through RawBody.
		_ = json.Unmarshal(rawBody, &out.Data)
	}
	return out, nil
}

// Post performs a JSON POST request.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*Response[any], error) {
	return c.Do(RequestOptions{
		Method:  http.MethodPost,
		URL:     url,
		Body:    body,
		Context: ctx,
	})
}

// buildURL builds complete URL with query parameters
func (c *HTTPClient) buildURL(endpoint string, queryParams map[string]string) (string, error) {
	var fullURL string

	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		fullURL = endpoint
	} else {
		endpoint = strings.TrimLeft(endpoint, "/")
		fullURL = fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	}

	if len(queryParams) > 0 {
		u, err := url.Parse(fullURL)
		if err != nil {
			return "", err
		}

		q := u.Query()
		for k, v := range queryParams {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
		fullURL = u.String()
	}

	return fullURL, nil
}

// encodeBody encodes request body
func (c *HTTPClient) encodeBody(body interface{}) ([]byte, error) {
	switch v := body.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case io.Reader:
		return io.ReadAll(v)
	default:
		return json.Marshal(body)
	}
}

// setHeaders sets request headers
func (c *HTTPClient) setHeaders(req *http.Request, headers map[string]string) {
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	if req.Body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}
}

// Utility methods for checking response status
func (r *Response[T]) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response[T]) GetHeader(key string) string {
	return r.Headers.Get(key)
}
