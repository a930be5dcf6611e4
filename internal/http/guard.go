package httpx

import (
	"log/slog"
	"net/http"

	"github.com/openshelf/gateway/internal/domain/auth"
	"github.com/openshelf/gateway/internal/domain/routes"
	"github.com/openshelf/gateway/internal/ports"
	"github.com/openshelf/gateway/internal/service"
)

// GuardState is the page guard's verification lifecycle. Every request
// starts in verifying and ends in exactly one terminal state.
type GuardState string

const (
	StateVerifying   GuardState = "verifying"
	StateGranted     GuardState = "granted"
	StateDenied      GuardState = "denied"
	StateRedirecting GuardState = "redirecting"
)

// PageGuard is the mount-time enforcement layer wrapping page handlers.
// It re-verifies the session through the principal's SessionStore, applies
// the role constraints, and either serves the page, renders an in-place
// access-denied view, or redirects. Guards verify independently; a page
// wrapped by several guards performs several idempotent verifications.
type PageGuard struct {
	// Sessions resolves the caller's principal to its session store.
	Sessions *service.SessionManager

	// RequiredRole, when set, is the only role allowed through; any other
	// authenticated role is denied in place.
	RequiredRole auth.Role

	// RestrictedRole, when set, is silently redirected to its own
	// dashboard instead of being shown this page.
	RestrictedRole auth.Role

	// CredentialCookie is the name of the backend-issued credential cookie.
	CredentialCookie string

	Logger *slog.Logger
}

func (g *PageGuard) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

func (g *PageGuard) cookieName() string {
	if g.CredentialCookie != "" {
		return g.CredentialCookie
	}
	return "access_token"
}

// Wrap guards a page handler.
func (g *PageGuard) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := StateVerifying

		cred := ports.CredentialFromRequest(r, g.cookieName())
		store := g.Sessions.For(cred)

		// CheckAuth is fail-closed: verification errors come back as
		// "no user", which the policy turns into a login redirect.
		var user *auth.User
		if store.CheckAuth(r.Context()) {
			user = store.User()
		}

		outcome := routes.DecidePage(user, g.RequiredRole, g.RestrictedRole)

		switch outcome.Action {
		case routes.ActionRedirect:
			state = StateRedirecting
			g.logTransition(r, state, outcome.Target)
			http.Redirect(w, r, outcome.Target, http.StatusFound)

		case routes.ActionDeny:
			// Denied renders in place with recovery actions; the user
			// stays logged in and is never navigated away automatically.
			state = StateDenied
			g.logTransition(r, state, "")
			renderAccessDenied(w, accessDeniedData{
				RequiredRole:  g.RequiredRole,
				DashboardPath: user.Role.DashboardPath(),
			})

		default:
			state = StateGranted
			g.logTransition(r, state, "")
			next.ServeHTTP(w, r.WithContext(SetUserInContext(r.Context(), user)))
		}
	})
}

func (g *PageGuard) logTransition(r *http.Request, state GuardState, target string) {
	attrs := []any{
		slog.String("path", r.URL.Path),
		slog.String("state", string(state)),
	}
	if target != "" {
		attrs = append(attrs, slog.String("target", target))
	}
	g.logger().InfoContext(r.Context(), "page guard", attrs...)
}
