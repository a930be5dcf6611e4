package httpx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/openshelf/gateway/internal/domain/auth"
	"github.com/openshelf/gateway/internal/ports"
	"github.com/openshelf/gateway/internal/service"
)

// stubAuthAPI is a functional test double for ports.AuthAPI.
type stubAuthAPI struct {
	loginFunc      func(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error)
	registerFunc   func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	logoutFunc     func(ctx context.Context, cred ports.Credential) ([]*http.Cookie, error)
	verifyFunc     func(ctx context.Context, cred ports.Credential) (*ports.VerifyResult, error)
	verifyRoleFunc func(ctx context.Context, cred ports.Credential) (*auth.RoleCheck, error)

	verifyRoleCalls atomic.Int32
}

var _ ports.AuthAPI = (*stubAuthAPI)(nil)

func (s *stubAuthAPI) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	if s.loginFunc != nil {
		return s.loginFunc(ctx, in)
	}
	return nil, errors.New("not implemented")
}

func (s *stubAuthAPI) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if s.registerFunc != nil {
		return s.registerFunc(ctx, in)
	}
	return nil, errors.New("not implemented")
}

func (s *stubAuthAPI) Logout(ctx context.Context, cred ports.Credential) ([]*http.Cookie, error) {
	if s.logoutFunc != nil {
		return s.logoutFunc(ctx, cred)
	}
	return nil, nil
}

func (s *stubAuthAPI) Verify(ctx context.Context, cred ports.Credential) (*ports.VerifyResult, error) {
	if s.verifyFunc != nil {
		return s.verifyFunc(ctx, cred)
	}
	return &ports.VerifyResult{Authenticated: false}, nil
}

func (s *stubAuthAPI) VerifyRole(ctx context.Context, cred ports.Credential) (*auth.RoleCheck, error) {
	s.verifyRoleCalls.Add(1)
	if s.verifyRoleFunc != nil {
		return s.verifyRoleFunc(ctx, cred)
	}
	return &auth.RoleCheck{}, nil
}

func newTestSessions(api ports.AuthAPI) *service.SessionManager {
	return service.NewSessionManager(service.SessionManagerOptions{API: api, Logger: discardLogger()})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func verifiedAs(user auth.User) func(context.Context, ports.Credential) (*ports.VerifyResult, error) {
	return func(context.Context, ports.Credential) (*ports.VerifyResult, error) {
		u := user
		return &ports.VerifyResult{Authenticated: true, User: &u}, nil
	}
}
