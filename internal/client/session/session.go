// Package session is the single source of truth for "is someone logged in,
// and who". It owns the auth status machine, keeps the gateway token, the
// persisted snapshot and the in-memory state in agreement, and is the only
// component allowed to mutate any of them on the auth path.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/tablebook/tablebook/internal/client/api"
	"github.com/tablebook/tablebook/internal/client/credstore"
	"github.com/tablebook/tablebook/internal/client/models"
	"github.com/tablebook/tablebook/internal/client/services"
	"github.com/tablebook/tablebook/internal/client/tokens"
	"github.com/tablebook/tablebook/internal/logging"
)

// Status is the session's place in the auth state machine. The transient
// LastError is orthogonal: any status may carry one.
type Status string

const (
	StatusInitializing    Status = "initializing"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// Snapshot is a point-in-time view of the session. User is non-nil exactly
// when Status is StatusAuthenticated.
type Snapshot struct {
	Status    Status
	User      *models.User
	LastError string
}

// Result is returned by user-initiated auth operations.
type Result struct {
	Success bool
	Message string
}

// authAPI is the slice of the auth service the manager depends on.
type authAPI interface {
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Register(ctx context.Context, input services.RegisterInput) (*services.LoginResult, error)
	Me(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) (string, error)
}

// tokenGateway is the gateway surface the manager touches.
type tokenGateway interface {
	SetAuthToken(token string)
	OnUnauthorized(fn func())
}

// Option customises manager construction.
type Option func(*Manager)

// WithLogger attaches a structured logger.
func WithLogger(l logging.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithRefreshWindow sets how close to expiry a stored token must be before
// Bootstrap refreshes it proactively.
func WithRefreshWindow(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.refreshWindow = d
		}
	}
}

// Manager is the session state container. One instance is created at process
// start and lives for the process lifetime.
//
// The mutex covers the status fields, the gateway token write and the store
// write of each transition, so the three can never disagree about who is
// logged in. Each state-changing operation takes a fencing sequence number;
// a completion that observes a newer sequence discards its result instead of
// resurrecting superseded state.
type Manager struct {
	auth          authAPI
	gw            tokenGateway
	store         credstore.Store
	log           logging.Logger
	refreshWindow time.Duration

	mu        sync.Mutex
	seq       uint64
	status    Status
	user      *models.User
	lastError string
}

// NewManager wires the container and registers it as the gateway's
// unauthorized listener. The session starts as Initializing; call Bootstrap
// next.
func NewManager(auth authAPI, gw tokenGateway, store credstore.Store, opts ...Option) *Manager {
	m := &Manager{
		auth:          auth,
		gw:            gw,
		store:         store,
		log:           logging.NewNop(),
		refreshWindow: time.Minute,
		status:        StatusInitializing,
	}
	for _, opt := range opts {
		opt(m)
	}
	gw.OnUnauthorized(m.handleUnauthorized)
	return m
}

// Snapshot returns the current session view.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{Status: m.status, User: m.user, LastError: m.lastError}
}

// begin starts a state-changing operation and returns its fence.
func (m *Manager) begin() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.lastError = ""
	return m.seq
}

// current reports whether the fence is still the newest operation.
// Callers must hold m.mu.
func (m *Manager) current(fence uint64) bool {
	return m.seq == fence
}

// Bootstrap restores the session from the persisted snapshot. With nothing
// stored it settles on Unauthenticated without touching the network. With a
// stored token it refreshes the token when close to expiry, then validates
// it with a live profile fetch. Failures never escape: they all collapse
// into Unauthenticated with the stale snapshot cleared.
func (m *Manager) Bootstrap(ctx context.Context) {
	fence := m.begin()

	creds, err := m.store.Load(ctx)
	if err != nil {
		m.log.Warn(ctx, "stored credentials unreadable, discarding", "err", err)
		m.settleUnauthenticated(ctx, fence)
		return
	}
	if creds == nil {
		m.settleUnauthenticated(ctx, fence)
		return
	}

	m.gw.SetAuthToken(creds.Token)

	if tokens.ExpiresWithin(creds.Token, m.refreshWindow) {
		if fresh, err := m.auth.Refresh(ctx); err == nil {
			creds.Token = fresh
			m.gw.SetAuthToken(fresh)
		} else {
			m.log.Warn(ctx, "proactive token refresh failed", "err", err)
		}
	}

	user, err := m.auth.Me(ctx)
	if err != nil || user == nil {
		m.log.Warn(ctx, "stored session rejected by server", "err", err)
		m.settleUnauthenticated(ctx, fence)
		return
	}

	m.commitAuthenticated(ctx, fence, creds.Token, user)
}

// Login authenticates with email and password. The email is trimmed and
// lower-cased before transmission. On failure the previous status is kept
// and only LastError is set.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	email = strings.ToLower(strings.TrimSpace(email))

	fence := m.begin()

	result, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return m.fail(fence, err)
	}

	m.commitAuthenticated(ctx, fence, result.Token, result.User)
	return Result{Success: true}
}

// Register creates an account and signs the user in. The password
// confirmation is checked here; the backend trusts it.
func (m *Manager) Register(ctx context.Context, input services.RegisterInput) Result {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if input.Password != input.PasswordConfirmation {
		m.mu.Lock()
		m.lastError = "passwords do not match"
		m.mu.Unlock()
		return Result{Message: "passwords do not match"}
	}

	fence := m.begin()

	result, err := m.auth.Register(ctx, input)
	if err != nil {
		return m.fail(fence, err)
	}

	m.commitAuthenticated(ctx, fence, result.Token, result.User)
	return Result{Success: true}
}

// Logout ends the session. The backend call is best effort; local state is
// cleared regardless, so from the caller's perspective Logout cannot fail
// and is idempotent.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.auth.Logout(ctx); err != nil {
		m.log.Warn(ctx, "server logout failed, clearing local session anyway", "err", err)
	}

	fence := m.begin()
	m.settleUnauthenticated(ctx, fence)
}

// RefreshProfile re-fetches the profile and overwrites the in-memory user
// without changing status. A failure keeps the stale profile: the session
// stays usable and an actually-expired token will surface as a 401 on the
// next real call.
func (m *Manager) RefreshProfile(ctx context.Context) {
	user, err := m.auth.Me(ctx)
	if err != nil || user == nil {
		m.log.Warn(ctx, "profile refresh failed, keeping cached profile", "err", err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status != StatusAuthenticated {
		return
	}
	m.user = user
}

// ClearError wipes the transient error message. Local only, no I/O.
func (m *Manager) ClearError() {
	m.mu.Lock()
	m.lastError = ""
	m.mu.Unlock()
}

// commitAuthenticated persists the snapshot, sets the gateway token and
// transitions to Authenticated as one unit, unless a newer operation has
// superseded this one.
func (m *Manager) commitAuthenticated(ctx context.Context, fence uint64, token string, user *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.current(fence) {
		m.log.Debug(ctx, "discarding superseded auth result")
		return
	}

	if err := m.store.Save(ctx, &credstore.Credentials{Token: token, User: user}); err != nil {
		// In-memory session still works; it just will not survive a restart.
		m.log.Error(ctx, "failed to persist credentials", "err", err)
	}
	m.gw.SetAuthToken(token)
	m.status = StatusAuthenticated
	m.user = user
	m.lastError = ""
}

// settleUnauthenticated clears the snapshot, the gateway token and the user
// as one unit, unless superseded.
func (m *Manager) settleUnauthenticated(ctx context.Context, fence uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.current(fence) {
		return
	}

	if err := m.store.Clear(ctx); err != nil {
		m.log.Error(ctx, "failed to clear stored credentials", "err", err)
	}
	m.gw.SetAuthToken("")
	m.status = StatusUnauthenticated
	m.user = nil
}

// fail records the normalized error for a user-initiated operation. The
// previous status is preserved.
func (m *Manager) fail(fence uint64, err error) Result {
	msg := userMessage(err)

	m.mu.Lock()
	if m.current(fence) {
		m.lastError = msg
	}
	m.mu.Unlock()

	return Result{Message: msg}
}

// handleUnauthorized reacts to a 401 observed by the gateway. The gateway
// has already wiped the snapshot and its token; this brings the in-memory
// state in line and fences out any in-flight auth operation.
func (m *Manager) handleUnauthorized() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.status = StatusUnauthenticated
	m.user = nil
}

// userMessage maps a normalized gateway error to the message shown to the
// user. Only the four canonical kinds are consulted.
func userMessage(err error) string {
	var serverErr *api.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.Message
	}
	var connErr *api.ConnectivityError
	if errors.As(err, &connErr) {
		return connErr.Message
	}
	var timeoutErr *api.TimeoutError
	if errors.As(err, &timeoutErr) {
		return timeoutErr.Message
	}
	return "something went wrong, please try again"
}
