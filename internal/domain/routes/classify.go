// Package routes holds the pure navigation policy for the gateway: path
// classification and the pass/redirect/deny rules both enforcement layers
// apply. Keeping the policy in one place is deliberate; the edge middleware
// and the page guard must never drift apart on what a path means.
package routes

import "strings"

// Class is the coarse navigation category of a request path.
type Class string

const (
	// ClassPublic covers pages anyone may see.
	ClassPublic Class = "public"
	// ClassAuthOnly covers the login/register surface; authenticated
	// users are redirected away from it.
	ClassAuthOnly Class = "auth-only"
	// ClassAdminDashboard covers the admin area.
	ClassAdminDashboard Class = "admin-dashboard"
	// ClassReaderDashboard covers the reader area.
	ClassReaderDashboard Class = "reader-dashboard"
	// ClassDashboard covers dashboard paths outside the two role areas.
	ClassDashboard Class = "dashboard"
	// ClassUnauthorized is the access-denied landing page; it is always
	// passed through to prevent redirect loops.
	ClassUnauthorized Class = "unauthorized"
	// ClassStatic covers static assets; never checked, never logged.
	ClassStatic Class = "static-asset"
	// ClassBackendAPI covers backend API paths and the gateway's own JSON
	// data endpoints; their handlers enforce auth themselves, so the
	// navigation policy stays out of the way.
	ClassBackendAPI Class = "api"
)

// Redirect targets and related constants forming the contract with the
// rest of the application.
const (
	LoginPath           = "/auth/login"
	RegisterPath        = "/auth/register"
	SessionPath         = "/auth/session"
	AdminDashboardPath  = "/dashboard/admin"
	ReaderDashboardPath = "/dashboard/reader"
	UnauthorizedPath    = "/unauthorized"

	// ReturnURLParam carries the originally requested path through a
	// login redirect so the user lands back where they were headed.
	ReturnURLParam = "returnUrl"
)

var staticPrefixes = []string{"/_next", "/favicon.ico", "/fonts", "/images", "/static"}

// Classify maps a request path to its navigation class by prefix match.
// At most one of the admin/reader classes applies to any path.
func Classify(path string) Class {
	for _, prefix := range staticPrefixes {
		if strings.HasPrefix(path, prefix) {
			return ClassStatic
		}
	}

	switch {
	case strings.HasPrefix(path, "/api"):
		return ClassBackendAPI
	case strings.HasPrefix(path, UnauthorizedPath):
		return ClassUnauthorized
	case path == SessionPath:
		// Session state is a data read, not a login page; authenticated
		// callers must reach it instead of being bounced to a dashboard.
		return ClassBackendAPI
	case strings.HasPrefix(path, "/auth"):
		return ClassAuthOnly
	case strings.HasPrefix(path, AdminDashboardPath):
		return ClassAdminDashboard
	case strings.HasPrefix(path, ReaderDashboardPath):
		return ClassReaderDashboard
	case strings.HasPrefix(path, "/dashboard"):
		return ClassDashboard
	default:
		return ClassPublic
	}
}
