package httpx

// Minimal server-rendered pages so the guarded routes have something to
// serve. The catalog, borrowing, and event screens live in the frontend
// application; these templates only cover the navigation surface the
// session authority owns.

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/openshelf/gateway/internal/domain/auth"
	"github.com/openshelf/gateway/internal/domain/routes"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}} | OpenShelf</title></head>
<body>
<h1>{{.Title}}</h1>
{{if .Message}}<p>{{.Message}}</p>{{end}}
{{range .Links}}<p><a href="{{.Href}}">{{.Label}}</a></p>{{end}}
</body>
</html>
`))

var accessDeniedTmpl = template.Must(template.New("denied").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Access Denied | OpenShelf</title></head>
<body>
<h1>Access Denied</h1>
<p>You need {{.RequiredRole}} permissions to access this page.</p>
<p><a href="javascript:history.back()">Go Back</a></p>
<p><a href="{{.DashboardPath}}">Go to my dashboard</a></p>
</body>
</html>
`))

type pageLink struct {
	Href  string
	Label string
}

type pageData struct {
	Title   string
	Message string
	Links   []pageLink
}

type accessDeniedData struct {
	RequiredRole  auth.Role
	DashboardPath string
}

func renderPage(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTmpl.Execute(w, data); err != nil {
		slog.Default().Warn("render page failed", "error", err)
	}
}

func renderAccessDenied(w http.ResponseWriter, data accessDeniedData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	if err := accessDeniedTmpl.Execute(w, data); err != nil {
		slog.Default().Warn("render access denied failed", "error", err)
	}
}

func loginPageHandler(w http.ResponseWriter, _ *http.Request) {
	renderPage(w, http.StatusOK, pageData{
		Title:   "Sign in",
		Message: "Sign in to your OpenShelf account.",
		Links:   []pageLink{{Href: routes.RegisterPath, Label: "Create an account"}},
	})
}

func registerPageHandler(w http.ResponseWriter, _ *http.Request) {
	renderPage(w, http.StatusOK, pageData{
		Title:   "Create account",
		Message: "New accounts start as readers.",
		Links:   []pageLink{{Href: routes.LoginPath, Label: "Sign in instead"}},
	})
}

func unauthorizedPageHandler(w http.ResponseWriter, _ *http.Request) {
	renderPage(w, http.StatusOK, pageData{
		Title:   "Unauthorized",
		Message: "This area is restricted to administrative users only.",
		Links: []pageLink{
			{Href: routes.ReaderDashboardPath, Label: "Go to my dashboard"},
			{Href: routes.LoginPath, Label: "Sign in with a different account"},
		},
	})
}

func adminDashboardHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	renderPage(w, http.StatusOK, pageData{
		Title:   "Admin dashboard",
		Message: greeting(user),
		Links:   []pageLink{{Href: routes.ReaderDashboardPath, Label: "Reader area"}},
	})
}

func readerDashboardHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	renderPage(w, http.StatusOK, pageData{
		Title:   "Reader dashboard",
		Message: greeting(user),
	})
}

func homePageHandler(w http.ResponseWriter, _ *http.Request) {
	renderPage(w, http.StatusOK, pageData{
		Title:   "OpenShelf",
		Message: "Community library catalog.",
		Links: []pageLink{
			{Href: routes.LoginPath, Label: "Sign in"},
			{Href: routes.ReaderDashboardPath, Label: "My dashboard"},
		},
	})
}

func greeting(user *auth.User) string {
	if user == nil {
		return ""
	}
	return "Signed in as " + user.Username
}
