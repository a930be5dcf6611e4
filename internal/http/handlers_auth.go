package httpx

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openshelf/gateway/internal/domain/auth"
	"github.com/openshelf/gateway/internal/domain/routes"
	"github.com/openshelf/gateway/internal/ports"
	"github.com/openshelf/gateway/internal/service"
)

// AuthHandlers provides the JSON endpoints the frontend's forms post to.
// They drive the principal's SessionStore and relay the backend-issued
// credential cookies to the browser untouched.
type AuthHandlers struct {
	Sessions         *service.SessionManager
	CredentialCookie string
	CookieDomain     string
	Logger           *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *AuthHandlers) cookieName() string {
	if h.CredentialCookie != "" {
		return h.CredentialCookie
	}
	return "access_token"
}

type loginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	ReturnURL string `json:"returnUrl"`
}

// Login handles the login endpoint.
// POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	// Login is an anonymous action; the principal gets a fresh store and
	// its outcome travels back in the response body.
	store := h.Sessions.For(ports.Credential{})

	result, err := store.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		loginErr := store.LastError()
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			Message: loginErr.Message,
			Kind:    loginErr.Kind,
		})
		return
	}

	h.relayCookies(w, result.SetCookies)

	redirectTo := safeRedirectPath(req.ReturnURL)
	if redirectTo == "/" {
		redirectTo = result.User.Role.DashboardPath()
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"user":       result.User,
		"redirectTo": redirectTo,
	})
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register handles account creation.
// POST /auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	store := h.Sessions.For(ports.Credential{})

	result, err := store.Register(r.Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     auth.Role(req.Role),
	})
	if err != nil {
		loginErr := store.LastError()
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			Message: loginErr.Message,
			Kind:    loginErr.Kind,
		})
		return
	}

	h.relayCookies(w, result.SetCookies)

	WriteJSON(w, http.StatusCreated, map[string]any{
		"user":       result.User,
		"redirectTo": result.User.Role.DashboardPath(),
	})
}

// Logout handles the logout endpoint. The credential cookie is cleared
// locally no matter what the backend said; logout never strands a user in
// a half-signed-in state.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	cred := ports.CredentialFromRequest(r, h.cookieName())
	store := h.Sessions.For(cred)

	cookies := store.Logout(r.Context())
	h.Sessions.Drop(cred)

	if len(cookies) > 0 {
		h.relayCookies(w, cookies)
	} else {
		// Backend unreachable or returned nothing; expire the credential
		// ourselves so the browser is signed out regardless.
		h.clearCookie(w, r, h.cookieName())
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":     "success",
		"redirectTo": routes.LoginPath,
	})
}

// Session reports the caller's verified session state.
// GET /auth/session.
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	cred := ports.CredentialFromRequest(r, h.cookieName())
	store := h.Sessions.For(cred)

	if !store.CheckAuth(r.Context()) {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          store.User(),
	})
}

// relayCookies forwards backend-issued Set-Cookie headers to the browser.
// The credential stays opaque; nothing is parsed or rewritten beyond the
// configured cookie domain.
func (h *AuthHandlers) relayCookies(w http.ResponseWriter, cookies []*http.Cookie) {
	for _, c := range cookies {
		if h.CookieDomain != "" {
			c.Domain = h.CookieDomain
		}
		http.SetCookie(w, c)
	}
}

// clearCookie clears a cookie by setting it to expire immediately.
// It mirrors key attributes (Secure, Path, Domain, SameSite) used when
// setting cookies to maximize compatibility across browsers during deletion.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// safeRedirectPath ensures the provided redirect is a same-origin relative
// path starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}
