// Package apiclient is the single path from this process to the hospital
// backend. It attaches the bearer token, turns non-2xx responses into
// *APIError values and never retries.
package apiclient

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

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/hms/hms/internal/platform/telemetry"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// WithRequestID returns a context whose outgoing requests reuse id instead
// of minting a new one.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id stored by WithRequestID, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 64 << 10

// publicEndpoints never carry the bearer token.
var publicEndpoints = map[string]bool{
	"/signup": true,
	"/login":  true,
}

// TokenSource yields the current bearer token. An empty token means no
// session; the request is then sent without an Authorization header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTimeout bounds every request that arrives without its own deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithBreaker guards requests with a circuit breaker. The breaker only fails
// fast; nothing is retried.
func WithBreaker(cb *gobreaker.CircuitBreaker) Option {
	return func(c *Client) { c.breaker = cb }
}

// WithMetrics records request counts and latency.
func WithMetrics(m *telemetry.ClientMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     zerolog.Logger
	timeout    time.Duration
	breaker    *gobreaker.CircuitBreaker
	metrics    *telemetry.ClientMetrics
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     zerolog.Nop(),
		timeout:    30 * time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, endpoint string, out interface{}) error {
	return c.Do(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *Client) Post(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, endpoint, body, out)
}

func (c *Client) Put(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, endpoint, body, out)
}

func (c *Client) Delete(ctx context.Context, endpoint string, out interface{}) error {
	return c.Do(ctx, http.MethodDelete, endpoint, nil, out)
}

// Do sends one request and decodes a 2xx JSON body into out (when non-nil).
func (c *Client) Do(ctx context.Context, method, endpoint string, body, out interface{}) error {
	if c.timeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}
	}

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request for %s: %w", endpoint, err)
		}
		payload = b
	}

	var (
		data []byte
		err  error
	)
	if c.breaker != nil {
		var res interface{}
		res, err = c.breaker.Execute(func() (interface{}, error) {
			return c.send(ctx, method, endpoint, payload)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return &APIError{Status: 0, Message: "Service temporarily unavailable", Err: err}
		}
		if err == nil {
			data, _ = res.([]byte)
		}
	} else {
		data, err = c.send(ctx, method, endpoint, payload)
	}
	if err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return nil
}

// send performs a single attempt. It returns the body of a 2xx response and
// an *APIError for everything else.
func (c *Client) send(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(endpoint), reader)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", endpoint, err)
	}
	rid := RequestIDFrom(ctx)
	if rid == "" {
		rid = uuid.NewString()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, rid)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if !isPublic(endpoint) && c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("read session token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		c.metrics.Observe(method, endpoint, 0, latency)
		c.logger.Warn().Err(err).
			Str("request_id", rid).
			Str("method", method).
			Str("endpoint", endpoint).
			Dur("latency", latency).
			Msg("backend unreachable")
		msg := "Unable to reach the server"
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "Request timed out"
		}
		return nil, &APIError{Status: 0, Message: msg, Err: err}
	}
	defer resp.Body.Close()

	c.metrics.Observe(method, endpoint, resp.StatusCode, latency)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := newAPIError(resp.StatusCode, raw)
		c.logger.Warn().
			Str("request_id", rid).
			Str("method", method).
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Dur("latency", latency).
			Str("error", apiErr.Message).
			Msg("backend request failed")
		return nil, apiErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: 0, Message: "Connection interrupted", Err: err}
	}
	c.logger.Debug().
		Str("request_id", rid).
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("latency", latency).
		Msg("backend request")
	return data, nil
}

func (c *Client) url(endpoint string) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.baseURL + endpoint
}

func isPublic(endpoint string) bool {
	p := endpoint
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return publicEndpoints[strings.TrimRight(p, "/")]
}

// Requester is what the domain repositories need from a Client.
type Requester interface {
	Get(ctx context.Context, endpoint string, out interface{}) error
	Post(ctx context.Context, endpoint string, body, out interface{}) error
	Put(ctx context.Context, endpoint string, body, out interface{}) error
	Delete(ctx context.Context, endpoint string, out interface{}) error
}

var _ Requester = (*Client)(nil)

// HTTPStatus picks the status a local HTTP surface should answer with for err.
func HTTPStatus(err error) int {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsClientError():
			return apiErr.Status
		case apiErr.IsNetworkError():
			return http.StatusServiceUnavailable
		default:
			return http.StatusBadGateway
		}
	}
	return http.StatusInternalServerError
}
