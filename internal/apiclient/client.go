package apiclient

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

	"github.com/anonto42/travel-match/gateway/internal/metrics"
)

// TokenSource supplies the bearer token of the current session, or "".
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	onUnauthorized func()
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithAuthFailureHandler registers the hook run on 401/403 before the call
// returns its AuthError.
func WithAuthFailureHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    NewHTTPClient(15 * time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewHTTPClient builds the transport shared by all workspaces. A zero timeout
// leaves requests unbounded.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

type request struct {
	method string
	route  string
	path   string
	query  url.Values
	body   any
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func call[T any](ctx context.Context, c *Client, r request) Result[T] {
	start := time.Now()
	res := do[T](ctx, c, r)
	metrics.ObserveUpstream(r.method, r.route, outcomeOf(res.err), time.Since(start))
	return res
}

func do[T any](ctx context.Context, c *Client, r request) Result[T] {
	var reader io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return Fail[T](fmt.Errorf("encode %s body: %w", r.route, err))
		}
		reader = bytes.NewReader(b)
	}

	u := c.baseURL + "/" + strings.TrimPrefix(r.path, "/")
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u, reader)
	if err != nil {
		return Fail[T](err)
	}
	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Fail[T](fmt.Errorf("%s %s: %w", r.method, r.route, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return Fail[T](&AuthError{Status: resp.StatusCode})
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Fail[T](fmt.Errorf("read %s response: %w", r.route, err))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			return Fail[T](&StatusError{Status: resp.StatusCode})
		}
		return Fail[T](fmt.Errorf("decode %s envelope: %w", r.route, err))
	}
	if env.Code != 0 {
		msg := env.Message
		if msg == "" {
			msg = DefaultFailureMessage
		}
		return Fail[T](&APIError{Code: env.Code, Message: msg})
	}
	if resp.StatusCode >= 400 {
		return Fail[T](&StatusError{Status: resp.StatusCode})
	}

	var out T
	if len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		if err := json.Unmarshal(env.Data, &out); err != nil {
			return Fail[T](fmt.Errorf("decode %s data: %w", r.route, err))
		}
	}
	return Ok(out)
}

func outcomeOf(err error) string {
	switch err.(type) {
	case nil:
		return metrics.OutcomeOK
	case *APIError:
		return metrics.OutcomeAPIError
	case *AuthError:
		return metrics.OutcomeAuth
	default:
		return metrics.OutcomeTransport
	}
}

func get[T any](ctx context.Context, c *Client, route, path string, query url.Values) Result[T] {
	return call[T](ctx, c, request{method: http.MethodGet, route: route, path: path, query: query})
}

func post[T any](ctx context.Context, c *Client, route, path string, body any) Result[T] {
	if body == nil {
		body = struct{}{}
	}
	return call[T](ctx, c, request{method: http.MethodPost, route: route, path: path, body: body})
}

func del[T any](ctx context.Context, c *Client, route, path string, query url.Values) Result[T] {
	return call[T](ctx, c, request{method: http.MethodDelete, route: route, path: path, query: query})
}
