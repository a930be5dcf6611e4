package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/gateway/internal/ports"
)

func newTestRouter(api ports.AuthAPI) http.Handler {
	return NewRouter(RouterServices{
		Sessions: newTestSessions(api),
		Edge:     NewEdgeGuard(EdgeGuardOptions{API: api, Logger: discardLogger()}),
		Logger:   discardLogger(),
	})
}

func TestRouter_HealthAndPublicPages(t *testing.T) {
	router := newTestRouter(&stubAuthAPI{})

	for _, path := range []string{"/healthz", "/auth/login", "/auth/register", "/unauthorized", "/"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.JSONEq(t, `{"status":"ok","service":"gateway"}`, rec.Body.String())
}

func TestRouter_AdminFlow(t *testing.T) {
	api := &stubAuthAPI{
		verifyFunc:     verifiedAs(adminUser),
		verifyRoleFunc: roleAnswer(true, true),
	}
	router := newTestRouter(api)

	// Anonymous navigation bounces off the edge before any handler runs.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/admin", nil))
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login?returnUrl=%2Fdashboard%2Fadmin", rec.Header().Get("Location"))

	// With a credential the edge admits and the page guard grants.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, edgeRequest("/dashboard/admin", true))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ada")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	// The same credential is steered away from the reader area.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, edgeRequest("/dashboard/reader", true))
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard/admin", rec.Header().Get("Location"))
}

func TestRouter_ReaderDeniedOnAdminArea(t *testing.T) {
	api := &stubAuthAPI{
		verifyFunc:     verifiedAs(readerUser),
		verifyRoleFunc: roleAnswer(true, false),
	}
	router := newTestRouter(api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, edgeRequest("/dashboard/admin", true))

	// The edge layer resolves this before the page guard gets a say.
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/unauthorized", rec.Header().Get("Location"))
}

// A signed-in user's logout must reach its handler; the auth-page redirect
// rule applies to page navigations, not to the JSON mutation endpoints.
func TestRouter_LogoutReachableWithCredential(t *testing.T) {
	var logoutCalls atomic.Int32
	api := &stubAuthAPI{
		verifyRoleFunc: roleAnswer(true, false),
		logoutFunc: func(context.Context, ports.Credential) ([]*http.Cookie, error) {
			logoutCalls.Add(1)
			return nil, nil
		},
	}
	router := newTestRouter(api)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "tok-1"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
	assert.Equal(t, int32(1), logoutCalls.Load())
	assert.Contains(t, rec.Body.String(), "/auth/login")
}

// Session state is a data read; an authenticated caller gets JSON back,
// not a redirect to their dashboard.
func TestRouter_SessionReachableWithCredential(t *testing.T) {
	api := &stubAuthAPI{
		verifyFunc:     verifiedAs(readerUser),
		verifyRoleFunc: roleAnswer(true, false),
	}
	router := newTestRouter(api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, edgeRequest("/auth/session", true))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)
	assert.Contains(t, rec.Body.String(), readerUser.Username)
}

func TestRouter_MethodConstraints(t *testing.T) {
	router := newTestRouter(&stubAuthAPI{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/logout", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
