// Package auth contains domain-level types for the session authority.
// It is pure and free of framework/adapter concerns.
package auth

import "strings"

// Role represents an application's authorization role.
// Keep string form for easy persistence and JSON transport.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleReader Role = "reader"
)

// Valid reports whether the role is one of the known application roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleReader
}

// DashboardPath returns the dashboard a user of this role belongs on.
// Unknown roles land on the reader dashboard, the least-privileged area.
func (r Role) DashboardPath() string {
	if r == RoleAdmin {
		return "/dashboard/admin"
	}
	return "/dashboard/reader"
}

// User is the identity record the backend reports for an authenticated
// principal. A nil *User means unauthenticated.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// RoleCheck is the backend's answer to an edge-layer role verification.
// Field names follow the backend's /auth/verify-role response.
type RoleCheck struct {
	Authenticated bool `json:"authenticated"`
	IsAdmin       bool `json:"isAdmin"`
}

// ErrorKind classifies a failed login/register attempt so the UI can
// highlight the right form field. It carries no authorization meaning.
type ErrorKind string

const (
	ErrorKindEmail    ErrorKind = "email"
	ErrorKindPassword ErrorKind = "password"
	ErrorKindAccount  ErrorKind = "account"
	ErrorKindGeneral  ErrorKind = "general"
)

// ClassifyLoginError maps a backend failure message onto an ErrorKind by
// substring match. The backend's messages are the contract here; anything
// unrecognized is general.
func ClassifyLoginError(message string) ErrorKind {
	switch {
	case strings.Contains(message, "email does not exist"):
		return ErrorKindEmail
	case strings.Contains(message, "Invalid password"):
		return ErrorKindPassword
	case strings.Contains(message, "inactive"):
		return ErrorKindAccount
	default:
		return ErrorKindGeneral
	}
}

// LoginError is the typed failure raised by login and register operations.
// Message is the backend's human-readable detail, Kind its classification.
type LoginError struct {
	Message string
	Kind    ErrorKind
}

func (e *LoginError) Error() string { return e.Message }

// NewLoginError builds a LoginError, classifying the message.
func NewLoginError(message string) *LoginError {
	return &LoginError{Message: message, Kind: ClassifyLoginError(message)}
}
