package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openshelf/gateway/internal/domain/auth"
)

func TestNeedsRoleCheck(t *testing.T) {
	tests := []struct {
		name          string
		class         Class
		hasCredential bool
		want          bool
	}{
		{"admin area with credential", ClassAdminDashboard, true, true},
		{"reader area with credential", ClassReaderDashboard, true, true},
		{"auth route with credential", ClassAuthOnly, true, true},
		{"admin area without credential", ClassAdminDashboard, false, false},
		{"public page with credential", ClassPublic, true, false},
		{"static asset with credential", ClassStatic, true, false},
		{"generic dashboard with credential", ClassDashboard, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsRoleCheck(tt.class, tt.hasCredential))
		})
	}
}

func TestDecideEdge(t *testing.T) {
	adminOK := &auth.RoleCheck{Authenticated: true, IsAdmin: true}
	readerOK := &auth.RoleCheck{Authenticated: true, IsAdmin: false}
	stale := &auth.RoleCheck{Authenticated: false}

	tests := []struct {
		name string
		in   EdgeInput
		want Decision
	}{
		{
			name: "static assets always pass",
			in:   EdgeInput{Path: "/_next/app.js", Class: ClassStatic},
			want: Decision{Action: ActionPass},
		},
		{
			name: "unauthorized page passes to avoid redirect loops",
			in:   EdgeInput{Path: "/unauthorized", Class: ClassUnauthorized, HasCredential: true},
			want: Decision{Action: ActionPass},
		},
		{
			name: "backend api passes through",
			in:   EdgeInput{Path: "/api/books", Class: ClassBackendAPI},
			want: Decision{Action: ActionPass},
		},
		{
			name: "admin area, confirmed admin",
			in:   EdgeInput{Path: "/dashboard/admin", Class: ClassAdminDashboard, HasCredential: true, RoleCheck: adminOK},
			want: Decision{Action: ActionPass},
		},
		{
			name: "admin area, reader role is unauthorized",
			in:   EdgeInput{Path: "/dashboard/admin", Class: ClassAdminDashboard, HasCredential: true, RoleCheck: readerOK},
			want: Decision{Action: ActionRedirect, Target: UnauthorizedPath},
		},
		{
			name: "admin area, failed role check falls closed",
			in:   EdgeInput{Path: "/dashboard/admin", Class: ClassAdminDashboard, HasCredential: true, RoleCheck: nil},
			want: Decision{Action: ActionRedirect, Target: UnauthorizedPath},
		},
		{
			name: "reader area, reader passes",
			in:   EdgeInput{Path: "/dashboard/reader", Class: ClassReaderDashboard, HasCredential: true, RoleCheck: readerOK},
			want: Decision{Action: ActionPass},
		},
		{
			name: "reader area, admin is sent to the admin dashboard",
			in:   EdgeInput{Path: "/dashboard/reader", Class: ClassReaderDashboard, HasCredential: true, RoleCheck: adminOK},
			want: Decision{Action: ActionRedirect, Target: AdminDashboardPath},
		},
		{
			name: "reader area, stale credential goes to login",
			in:   EdgeInput{Path: "/dashboard/reader", Class: ClassReaderDashboard, HasCredential: true, RoleCheck: stale},
			want: Decision{Action: ActionRedirect, Target: LoginPath},
		},
		{
			name: "admin area without credential preserves return url",
			in:   EdgeInput{Path: "/dashboard/admin/books", Class: ClassAdminDashboard},
			want: Decision{Action: ActionRedirect, Target: "/auth/login?returnUrl=%2Fdashboard%2Fadmin%2Fbooks"},
		},
		{
			name: "reader area without credential preserves return url",
			in:   EdgeInput{Path: "/dashboard/reader", Class: ClassReaderDashboard},
			want: Decision{Action: ActionRedirect, Target: "/auth/login?returnUrl=%2Fdashboard%2Freader"},
		},
		{
			name: "generic dashboard without credential goes to login",
			in:   EdgeInput{Path: "/dashboard", Class: ClassDashboard},
			want: Decision{Action: ActionRedirect, Target: "/auth/login?returnUrl=%2Fdashboard"},
		},
		{
			name: "authenticated reader on login page goes to reader dashboard",
			in:   EdgeInput{Path: "/auth/login", Class: ClassAuthOnly, HasCredential: true, RoleCheck: readerOK},
			want: Decision{Action: ActionRedirect, Target: ReaderDashboardPath},
		},
		{
			name: "authenticated admin on login page goes to admin dashboard",
			in:   EdgeInput{Path: "/auth/login", Class: ClassAuthOnly, HasCredential: true, RoleCheck: adminOK},
			want: Decision{Action: ActionRedirect, Target: AdminDashboardPath},
		},
		{
			name: "stale credential on login page passes through",
			in:   EdgeInput{Path: "/auth/login", Class: ClassAuthOnly, HasCredential: true, RoleCheck: stale},
			want: Decision{Action: ActionPass},
		},
		{
			name: "anonymous visitor on login page passes",
			in:   EdgeInput{Path: "/auth/login", Class: ClassAuthOnly},
			want: Decision{Action: ActionPass},
		},
		{
			name: "public page passes",
			in:   EdgeInput{Path: "/books", Class: ClassPublic, HasCredential: true},
			want: Decision{Action: ActionPass},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecideEdge(tt.in))
		})
	}
}

func TestDecidePage(t *testing.T) {
	admin := &auth.User{ID: 1, Username: "root", Role: auth.RoleAdmin}
	reader := &auth.User{ID: 2, Username: "ana", Role: auth.RoleReader}

	tests := []struct {
		name       string
		user       *auth.User
		required   auth.Role
		restricted auth.Role
		want       PageOutcome
	}{
		{
			name: "no user redirects to login",
			want: PageOutcome{Action: ActionRedirect, Target: LoginPath},
		},
		{
			name:     "required role mismatch is denied in place",
			user:     reader,
			required: auth.RoleAdmin,
			want:     PageOutcome{Action: ActionDeny},
		},
		{
			name:     "required role match grants",
			user:     admin,
			required: auth.RoleAdmin,
			want:     PageOutcome{Action: ActionPass},
		},
		{
			name:       "restricted role redirects to that role's dashboard",
			user:       admin,
			restricted: auth.RoleAdmin,
			want:       PageOutcome{Action: ActionRedirect, Target: AdminDashboardPath},
		},
		{
			name:       "restricted role not matching grants",
			user:       reader,
			restricted: auth.RoleAdmin,
			want:       PageOutcome{Action: ActionPass},
		},
		{
			name: "no constraints grants any authenticated user",
			user: reader,
			want: PageOutcome{Action: ActionPass},
		},
		{
			name:       "required wins over restricted",
			user:       reader,
			required:   auth.RoleAdmin,
			restricted: auth.RoleReader,
			want:       PageOutcome{Action: ActionDeny},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecidePage(tt.user, tt.required, tt.restricted))
		})
	}
}
