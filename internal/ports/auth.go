// Package ports defines interfaces (hexagonal ports) for the session
// authority. Implementations live in internal/adapters; orchestration in
// internal/service.
package ports

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/openshelf/gateway/internal/domain/auth"
)

// Credential is the opaque backend-issued proof of identity, carried as
// cookies. The gateway only ever checks presence and forwards it verbatim;
// nothing in this repository branches on its contents.
type Credential struct {
	cookies []*http.Cookie
}

// CredentialFromRequest extracts the named credential cookie from an
// incoming request. A missing cookie yields an absent credential.
func CredentialFromRequest(r *http.Request, cookieName string) Credential {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return Credential{}
	}
	return Credential{cookies: []*http.Cookie{{Name: c.Name, Value: c.Value}}}
}

// CredentialFromCookies wraps backend-issued cookies as a credential.
func CredentialFromCookies(cookies []*http.Cookie) Credential {
	return Credential{cookies: cookies}
}

// Present reports whether a credential was supplied at all.
func (c Credential) Present() bool { return len(c.cookies) > 0 }

// Attach forwards the credential cookies on an outgoing backend request.
func (c Credential) Attach(req *http.Request) {
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
}

// Fingerprint returns a stable cache key for the credential. The value is
// hashed so the opaque token never appears in cache keys or logs.
func (c Credential) Fingerprint() string {
	h := sha256.New()
	for _, ck := range c.cookies {
		h.Write([]byte(ck.Name))
		h.Write([]byte{0})
		h.Write([]byte(ck.Value))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// LoginInput carries credentials for the backend login endpoint.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput carries the fields for the backend register endpoint.
type RegisterInput struct {
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Role     auth.Role `json:"role"`
}

// AuthResult is the outcome of a successful login or register call.
// SetCookies are the credential cookies the backend issued; gateway
// handlers relay them to the browser untouched.
type AuthResult struct {
	User       auth.User
	SetCookies []*http.Cookie
}

// VerifyResult is the backend's answer to a session re-check.
type VerifyResult struct {
	Authenticated bool       `json:"authenticated"`
	User          *auth.User `json:"user"`
}

// AuthAPI is the library backend's authentication surface as consumed by
// the gateway. Login and Register fail with *auth.LoginError when the
// backend rejects the attempt; Logout and Verify report transport errors
// and leave fail-closed interpretation to the caller.
type AuthAPI interface {
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)

	// Logout invalidates the credential server-side. The returned cookies
	// are the backend's expired credential cookies for relay to the browser.
	Logout(ctx context.Context, cred Credential) ([]*http.Cookie, error)

	// Verify asks the backend who the credential belongs to.
	Verify(ctx context.Context, cred Credential) (*VerifyResult, error)

	// VerifyRole is the cheap edge-layer role check.
	VerifyRole(ctx context.Context, cred Credential) (*auth.RoleCheck, error)
}

// VerifyCache stores short-lived role-check results keyed by credential
// fingerprint. Purely an optimization; misses and errors both mean
// "ask the backend".
type VerifyCache interface {
	Get(ctx context.Context, key string) (*auth.RoleCheck, bool, error)
	Set(ctx context.Context, key string, rc auth.RoleCheck, ttl time.Duration) error
}
