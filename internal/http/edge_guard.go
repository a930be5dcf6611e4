package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/openshelf/gateway/internal/domain/auth"
	"github.com/openshelf/gateway/internal/domain/routes"
	"github.com/openshelf/gateway/internal/ports"
)

// EdgeGuard is the pre-render enforcement layer. It runs before any page
// handler, classifies the path, checks credential presence, and consults
// the backend's role-verification endpoint when the policy demands it.
// It holds no per-request state; the verdict is a pure function of
// (path, credential presence, backend answer).
type EdgeGuard struct {
	api        ports.AuthAPI
	cache      ports.VerifyCache
	cacheTTL   time.Duration
	cookieName string
	logger     *slog.Logger

	// group collapses concurrent role checks for the same credential into
	// one backend call; every waiter gets the shared answer.
	group singleflight.Group
}

// EdgeGuardOptions groups dependencies for EdgeGuard.
type EdgeGuardOptions struct {
	API ports.AuthAPI

	// Cache is optional; nil disables result caching entirely.
	Cache    ports.VerifyCache
	CacheTTL time.Duration

	// CredentialCookie is the name of the backend-issued credential cookie.
	CredentialCookie string

	Logger *slog.Logger
}

// NewEdgeGuard constructs an EdgeGuard.
func NewEdgeGuard(opts EdgeGuardOptions) *EdgeGuard {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cookieName := opts.CredentialCookie
	if cookieName == "" {
		cookieName = "access_token"
	}
	return &EdgeGuard{
		api:        opts.API,
		cache:      opts.Cache,
		cacheTTL:   opts.CacheTTL,
		cookieName: cookieName,
		logger:     logger,
	}
}

// Middleware applies the edge policy to every page navigation.
func (g *EdgeGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The policy governs page navigations only. Mutation endpoints
		// such as login and logout enforce their own rules; redirecting
		// a POST away from them would make logout unreachable.
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		path := r.URL.Path
		class := routes.Classify(path)
		cred := ports.CredentialFromRequest(r, g.cookieName)

		var rc *auth.RoleCheck
		if routes.NeedsRoleCheck(class, cred.Present()) {
			rc = g.checkRole(r.Context(), cred)
		}

		decision := routes.DecideEdge(routes.EdgeInput{
			Path:          path,
			Class:         class,
			HasCredential: cred.Present(),
			RoleCheck:     rc,
		})

		if decision.Action == routes.ActionRedirect {
			g.logger.InfoContext(r.Context(), "edge redirect",
				slog.String("path", path),
				slog.String("class", string(class)),
				slog.String("target", decision.Target),
			)
			http.Redirect(w, r, decision.Target, http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// checkRole asks the backend whose credential this is, going through the
// short-lived cache and collapsing concurrent identical checks. A nil
// return means verification failed; the policy falls closed on it.
func (g *EdgeGuard) checkRole(ctx context.Context, cred ports.Credential) *auth.RoleCheck {
	key := cred.Fingerprint()

	if g.cache != nil {
		if rc, ok, err := g.cache.Get(ctx, key); err == nil && ok {
			return rc
		} else if err != nil {
			g.logger.WarnContext(ctx, "verify cache read failed", "error", err)
		}
	}

	// The shared call is detached from the caller's context: one waiter
	// aborting its navigation must not fail the answer for everyone
	// collapsed onto the same check. The client's own timeout still bounds
	// the call.
	callCtx := context.WithoutCancel(ctx)
	v, err, _ := g.group.Do(key, func() (any, error) {
		return g.api.VerifyRole(callCtx, cred)
	})
	if err != nil {
		g.logger.WarnContext(ctx, "role verification failed", "error", err)
		return nil
	}

	rc := v.(*auth.RoleCheck)
	if g.cache != nil && g.cacheTTL > 0 {
		if err := g.cache.Set(ctx, key, *rc, g.cacheTTL); err != nil {
			g.logger.WarnContext(ctx, "verify cache write failed", "error", err)
		}
	}
	return rc
}
