package httpx

import (
	"log/slog"
	"net/http"

	"github.com/openshelf/gateway/internal/domain/auth"
	"github.com/openshelf/gateway/internal/domain/routes"
	"github.com/openshelf/gateway/internal/service"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Sessions *service.SessionManager
	Edge     *EdgeGuard

	CredentialCookie string
	CookieDomain     string
	Logger           *slog.Logger
}

// NewRouter creates and configures the gateway's HTTP handler: auth
// endpoints, guarded dashboard pages, and the ambient middleware chain.
// The edge guard wraps the whole mux so every navigation passes through
// the pre-render policy before any handler runs.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Sessions:         services.Sessions,
		CredentialCookie: services.CredentialCookie,
		CookieDomain:     services.CookieDomain,
		Logger:           services.Logger,
	}

	mux.HandleFunc("POST /auth/login", authHandlers.Login)
	mux.HandleFunc("POST /auth/register", authHandlers.Register)
	mux.HandleFunc("POST /auth/logout", authHandlers.Logout)
	mux.HandleFunc("GET /auth/session", authHandlers.Session)

	mux.HandleFunc("GET /auth/login", loginPageHandler)
	mux.HandleFunc("GET /auth/register", registerPageHandler)
	mux.HandleFunc("GET "+routes.UnauthorizedPath, unauthorizedPageHandler)
	mux.HandleFunc("GET /{$}", homePageHandler)

	// The admin area demands the admin role; anything else authenticated
	// sees the in-place denial. The reader area bars admins, who are
	// silently sent home instead.
	adminGuard := &PageGuard{
		Sessions:         services.Sessions,
		RequiredRole:     auth.RoleAdmin,
		CredentialCookie: services.CredentialCookie,
		Logger:           services.Logger,
	}
	readerGuard := &PageGuard{
		Sessions:         services.Sessions,
		RestrictedRole:   auth.RoleAdmin,
		CredentialCookie: services.CredentialCookie,
		Logger:           services.Logger,
	}

	mux.Handle("GET "+routes.AdminDashboardPath, adminGuard.Wrap(http.HandlerFunc(adminDashboardHandler)))
	mux.Handle("GET "+routes.AdminDashboardPath+"/", adminGuard.Wrap(http.HandlerFunc(adminDashboardHandler)))
	mux.Handle("GET "+routes.ReaderDashboardPath, readerGuard.Wrap(http.HandlerFunc(readerDashboardHandler)))
	mux.Handle("GET "+routes.ReaderDashboardPath+"/", readerGuard.Wrap(http.HandlerFunc(readerDashboardHandler)))

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	var handler http.Handler = mux
	if services.Edge != nil {
		handler = services.Edge.Middleware(handler)
	}

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	handler = Logging(logger)(handler)
	handler = RequestID()(handler)
	handler = Recover(logger)(handler)
	return handler
}
