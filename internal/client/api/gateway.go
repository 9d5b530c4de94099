// Package api implements the HTTP gateway every outbound call to the
// reservation backend goes through. The gateway owns bearer-token injection,
// response/error normalization, and the reaction to HTTP 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tablebook/tablebook/internal/logging"
)

const defaultTimeout = 15 * time.Second

// SnapshotClearer wipes the persisted credential snapshot. The credential
// store satisfies this; the gateway holds it so a 401 can invalidate stored
// credentials without the gateway knowing about session logic.
type SnapshotClearer interface {
	Clear(ctx context.Context) error
}

// Gateway is the single configured HTTP client wrapping every backend call.
type Gateway struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     logging.Logger
	clearer SnapshotClearer

	mu             sync.Mutex
	token          string
	onUnauthorized func()
}

// Option customises gateway construction.
type Option func(*Gateway)

// WithHTTPClient overrides the underlying HTTP client (tests use this).
func WithHTTPClient(h *http.Client) Option {
	return func(g *Gateway) {
		if h != nil {
			g.http = h
		}
	}
}

// WithTimeout sets the per-call deadline applied to every request.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(l logging.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.log = l
		}
	}
}

// WithSnapshotClearer wires the credential store the gateway wipes on 401.
func WithSnapshotClearer(c SnapshotClearer) Option {
	return func(g *Gateway) { g.clearer = c }
}

// New constructs a Gateway for the given base URL.
func New(baseURL string, opts ...Option) (*Gateway, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return nil, fmt.Errorf("base url must include http:// or https:// scheme: %q", baseURL)
	}

	g := &Gateway{
		baseURL: trimmed,
		http:    &http.Client{},
		timeout: defaultTimeout,
		log:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// SetAuthToken sets the bearer token attached to subsequent requests.
// An empty token clears it. Idempotent; last write wins. Requests already
// in flight keep whatever token they were built with.
func (g *Gateway) SetAuthToken(token string) {
	g.mu.Lock()
	g.token = token
	g.mu.Unlock()
}

// Token returns the currently set bearer token ("" when cleared).
func (g *Gateway) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token
}

// OnUnauthorized registers the callback invoked after any call observes
// HTTP 401. At most one listener; the session container registers itself
// at startup.
func (g *Gateway) OnUnauthorized(fn func()) {
	g.mu.Lock()
	g.onUnauthorized = fn
	g.mu.Unlock()
}

// CallOption adjusts a single request.
type CallOption func(*callConfig)

type callConfig struct {
	timeout time.Duration
}

// CallTimeout overrides the gateway-wide deadline for one request.
func CallTimeout(d time.Duration) CallOption {
	return func(c *callConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func (g *Gateway) Get(ctx context.Context, path string, opts ...CallOption) (*Envelope, error) {
	return g.do(ctx, http.MethodGet, path, nil, opts...)
}

func (g *Gateway) Post(ctx context.Context, path string, body any, opts ...CallOption) (*Envelope, error) {
	return g.do(ctx, http.MethodPost, path, body, opts...)
}

func (g *Gateway) Put(ctx context.Context, path string, body any, opts ...CallOption) (*Envelope, error) {
	return g.do(ctx, http.MethodPut, path, body, opts...)
}

func (g *Gateway) Patch(ctx context.Context, path string, body any, opts ...CallOption) (*Envelope, error) {
	return g.do(ctx, http.MethodPatch, path, body, opts...)
}

func (g *Gateway) Delete(ctx context.Context, path string, opts ...CallOption) (*Envelope, error) {
	return g.do(ctx, http.MethodDelete, path, nil, opts...)
}

// do performs one request and normalizes every possible failure into one of
// the four error kinds. It is the only place raw transport errors are seen.
func (g *Gateway) do(ctx context.Context, method, path string, body any, opts ...CallOption) (*Envelope, error) {
	cfg := callConfig{timeout: g.timeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	reqID := uuid.NewString()
	log := g.log.With("req_id", reqID, "method", method, "path", path)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &UnexpectedError{Message: "encode request body: " + err.Error(), Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return nil, &UnexpectedError{Message: "create request: " + err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	if token := g.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := g.http.Do(req)
	if err != nil {
		norm := classifyTransport(err)
		log.Warn(ctx, "request failed before response", "err", err)
		return nil, norm
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request finished", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, g.rejected(ctx, resp, log)
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &UnexpectedError{Message: "decode response body: " + err.Error(), Err: err}
	}
	return &env, nil
}

// rejected builds a ServerError from a non-2xx response and, on 401, wipes
// the persisted snapshot, drops the in-memory token, and notifies the
// registered listener.
func (g *Gateway) rejected(ctx context.Context, resp *http.Response, log logging.Logger) error {
	serverErr := &ServerError{Status: resp.StatusCode, Message: "request failed"}

	data, err := io.ReadAll(resp.Body)
	if err == nil && len(data) > 0 {
		var body errorBody
		if json.Unmarshal(data, &body) == nil {
			if body.Message != "" {
				serverErr.Message = body.Message
			}
			serverErr.FieldErrors = body.Errors
		}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		g.handleUnauthorized(ctx, log)
	}

	return serverErr
}

func (g *Gateway) handleUnauthorized(_ context.Context, log logging.Logger) {
	// Detached context: the request deadline may already be spent and the
	// wipe must still happen.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if g.clearer != nil {
		if err := g.clearer.Clear(ctx); err != nil {
			log.Error(ctx, "failed to clear stored credentials after 401", "err", err)
		}
	}

	g.mu.Lock()
	g.token = ""
	fn := g.onUnauthorized
	g.mu.Unlock()

	log.Warn(ctx, "session invalidated by 401")
	if fn != nil {
		fn()
	}
}
