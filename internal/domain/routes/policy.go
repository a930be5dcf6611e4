package routes

import (
	"net/url"

	"github.com/openshelf/gateway/internal/domain/auth"
)

// Action is what a guard does with a navigation.
type Action string

const (
	ActionPass     Action = "pass"
	ActionRedirect Action = "redirect"
	ActionDeny     Action = "deny"
)

// Decision is the edge layer's verdict for a navigation.
type Decision struct {
	Action Action
	// Target is the redirect destination, set only for ActionRedirect.
	Target string
}

func pass() Decision { return Decision{Action: ActionPass} }

func redirectTo(target string) Decision { return Decision{Action: ActionRedirect, Target: target} }

// NeedsRoleCheck reports whether the edge layer must verify the credential
// with the backend before DecideEdge can produce a final verdict. Role
// checks only ever happen when a credential is present; absence is already
// a complete answer.
func NeedsRoleCheck(class Class, hasCredential bool) bool {
	if !hasCredential {
		return false
	}
	switch class {
	case ClassAdminDashboard, ClassReaderDashboard, ClassAuthOnly:
		return true
	default:
		return false
	}
}

// EdgeInput is everything DecideEdge consumes. RoleCheck is the backend
// verification result; leave it nil when no check ran or the check itself
// failed, and the decision falls closed.
type EdgeInput struct {
	Path          string
	Class         Class
	HasCredential bool
	RoleCheck     *auth.RoleCheck
}

// DecideEdge applies the pre-render navigation policy. It is a pure
// function of its input; the caller performs the backend role check first
// when NeedsRoleCheck says so.
func DecideEdge(in EdgeInput) Decision {
	switch in.Class {
	case ClassStatic, ClassBackendAPI, ClassUnauthorized:
		return pass()
	}

	if in.Class == ClassAdminDashboard && in.HasCredential {
		// Admin area: require a backend-confirmed admin identity.
		// A missing role answers as unauthorized, not login; the user
		// holds a credential, it just doesn't open this door.
		if rc := in.RoleCheck; rc == nil || !rc.Authenticated || !rc.IsAdmin {
			return redirectTo(UnauthorizedPath)
		}
		return pass()
	}

	if in.Class == ClassReaderDashboard && in.HasCredential {
		rc := in.RoleCheck
		if rc == nil || !rc.Authenticated {
			// Stale credential: missing-session goes to login,
			// unlike the missing-role case above.
			return redirectTo(LoginPath)
		}
		if rc.IsAdmin {
			// Admins are barred from the reader area entirely and
			// silently sent home rather than shown a denial.
			return redirectTo(AdminDashboardPath)
		}
		return pass()
	}

	if !in.HasCredential {
		switch in.Class {
		case ClassAdminDashboard, ClassReaderDashboard, ClassDashboard:
			return redirectTo(LoginRedirect(in.Path))
		}
	}

	if in.Class == ClassAuthOnly && in.HasCredential {
		// Authenticated users don't get to see login/register again.
		// Role-aware on both layers: admins go to the admin dashboard.
		if rc := in.RoleCheck; rc != nil && rc.Authenticated {
			if rc.IsAdmin {
				return redirectTo(AdminDashboardPath)
			}
			return redirectTo(ReaderDashboardPath)
		}
		// The credential didn't verify; let the user reach the login
		// page and start over.
		return pass()
	}

	return pass()
}

// LoginRedirect builds the login target preserving the originally requested
// path for post-login redirect-back.
func LoginRedirect(fromPath string) string {
	q := url.Values{}
	q.Set(ReturnURLParam, fromPath)
	return LoginPath + "?" + q.Encode()
}

// PageOutcome is the page guard's verdict once the session was re-verified.
type PageOutcome struct {
	Action Action
	// Target is the redirect destination, set only for ActionRedirect.
	Target string
}

// DecidePage applies the mount-time enforcement rules to a verified user.
// requiredRole and restrictedRole are optional; pass the zero Role to skip
// a constraint. A nil user means verification produced no session.
func DecidePage(user *auth.User, requiredRole, restrictedRole auth.Role) PageOutcome {
	if user == nil {
		return PageOutcome{Action: ActionRedirect, Target: LoginPath}
	}

	// Wrong role is a denial rendered in place, never a redirect: the
	// user stays logged in and gets explicit recovery actions.
	if requiredRole != "" && user.Role != requiredRole {
		return PageOutcome{Action: ActionDeny}
	}

	if restrictedRole != "" && user.Role == restrictedRole {
		return PageOutcome{Action: ActionRedirect, Target: user.Role.DashboardPath()}
	}

	return PageOutcome{Action: ActionPass}
}
