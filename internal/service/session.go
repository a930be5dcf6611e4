package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/openshelf/gateway/internal/domain/auth"
	"github.com/openshelf/gateway/internal/ports"
)

// SessionStore is the single source of truth for one principal's session:
// who is logged in, whether an operation is in flight, and what the last
// login/register failure was. It talks to the backend through the AuthAPI
// port and never makes navigation decisions; those belong to the guards.
//
// All four operations are safe for concurrent use. When verifications
// race, the last backend response wins, which is acceptable because every
// racer converges on backend-reported truth.
type SessionStore struct {
	api    ports.AuthAPI
	cred   ports.Credential
	logger *slog.Logger

	mu      sync.Mutex
	user    *auth.User
	loading bool
	lastErr *auth.LoginError
}

// SessionStoreOptions groups dependencies for SessionStore.
type SessionStoreOptions struct {
	API ports.AuthAPI

	// Credential is the principal's ambient credential, forwarded on
	// verify/logout calls. Leave it zero when the API client carries the
	// credential itself (cookie-jar mode).
	Credential ports.Credential

	Logger *slog.Logger
}

// NewSessionStore constructs a SessionStore with no user.
func NewSessionStore(opts SessionStoreOptions) *SessionStore {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{api: opts.API, cred: opts.Credential, logger: logger}
}

// User returns the current identity, or nil when unauthenticated.
func (s *SessionStore) User() *auth.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a user is currently set.
func (s *SessionStore) IsAuthenticated() bool {
	return s.User() != nil
}

// Loading reports whether an operation is in flight.
func (s *SessionStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the classified failure of the most recent login or
// register attempt, or nil.
func (s *SessionStore) LastError() *auth.LoginError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearErrors discards any stored login/register failure.
func (s *SessionStore) ClearErrors() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

// Login authenticates against the backend. On success the returned result
// carries the backend-issued credential cookies for relay. On failure the
// store records the classified error and re-raises it so the calling form
// can chain its own feedback; the store owns state, not notification.
func (s *SessionStore) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	s.beginAttempt()

	result, err := s.api.Login(ctx, ports.LoginInput{Email: email, Password: password})
	if err != nil {
		loginErr := asLoginError(err, "Failed to login")
		s.failAttempt(loginErr)
		return nil, loginErr
	}

	s.completeAttempt(result.User)
	return result, nil
}

// Register creates an account, defaulting to the least-privileged role
// unless explicitly overridden. Same state contract as Login.
func (s *SessionStore) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if in.Role == "" {
		in.Role = auth.RoleReader
	}

	s.beginAttempt()

	result, err := s.api.Register(ctx, in)
	if err != nil {
		loginErr := asLoginError(err, "Failed to register")
		s.failAttempt(loginErr)
		return nil, loginErr
	}

	s.completeAttempt(result.User)
	return result, nil
}

// Logout best-effort notifies the backend, then clears the local user
// regardless of the network outcome. It never fails: a logout that cannot
// reach the backend still leaves the principal logged out locally.
// The returned cookies are the backend's credential expirations, when the
// call succeeded.
func (s *SessionStore) Logout(ctx context.Context) []*http.Cookie {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	cookies, err := s.api.Logout(ctx, s.cred)
	if err != nil {
		s.logger.WarnContext(ctx, "backend logout failed, clearing local session anyway", "error", err)
		cookies = nil
	}

	s.mu.Lock()
	s.user = nil
	s.loading = false
	s.mu.Unlock()
	return cookies
}

// CheckAuth re-synchronizes local belief with server truth. It returns true
// and sets the user when the backend confirms an authenticated identity,
// false and clears the user otherwise, including on network error
// (fail-closed). Safe to call repeatedly and concurrently.
//
// A canceled context discards the result without touching the store, so a
// verification that outlives its navigation cannot clobber newer state.
func (s *SessionStore) CheckAuth(ctx context.Context) bool {
	vr, err := s.api.Verify(ctx, s.cred)

	if ctx.Err() != nil {
		return false
	}

	if err != nil {
		s.logger.WarnContext(ctx, "session verification failed", "error", err)
		s.setUser(nil)
		return false
	}

	if !vr.Authenticated || vr.User == nil {
		s.setUser(nil)
		return false
	}

	s.mu.Lock()
	u := *vr.User
	s.user = &u
	s.lastErr = nil
	s.mu.Unlock()
	return true
}

func (s *SessionStore) setUser(u *auth.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

func (s *SessionStore) beginAttempt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastErr = nil
}

func (s *SessionStore) completeAttempt(u auth.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
	s.loading = false
	s.lastErr = nil
}

func (s *SessionStore) failAttempt(loginErr *auth.LoginError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.loading = false
	s.lastErr = loginErr
}

// asLoginError normalizes any failure into a classified login error.
// Transport failures get the generic fallback message, matching what the
// backend-less failure mode has always shown users.
func asLoginError(err error, fallback string) *auth.LoginError {
	var loginErr *auth.LoginError
	if errors.As(err, &loginErr) {
		return loginErr
	}
	return &auth.LoginError{Message: fallback, Kind: auth.ErrorKindGeneral}
}
