package routing

import (
	"github.com/Vinothdevgit/voting-client/internal/domain/auth"
)

// Decision is the outcome of resolving a requested path for a session.
type Decision struct {
	// Requested is the cleaned path that was asked for.
	Requested string
	// View is where the client ends up.
	View View
	// Redirected is true when View differs from what was requested.
	Redirected bool
}

// Home is the landing view for a session: login when absent, the admin
// default view for admins, voting otherwise.
func Home(s auth.Session) View {
	switch {
	case !s.Authenticated():
		return ViewLogin
	case s.Role == auth.RoleAdmin:
		return AdminViews[0]
	default:
		return ViewVoting
	}
}

// Reachable returns the navigable views for the session, in menu order.
func Reachable(s auth.Session) []View {
	switch {
	case !s.Authenticated():
		return []View{ViewLogin}
	case s.Role == auth.RoleAdmin:
		out := make([]View, 0, len(AdminViews)+1)
		out = append(out, AdminViews...)
		return append(out, ViewResults)
	default:
		return []View{ViewVoting, ViewResults}
	}
}

// CanReach reports whether v is in Reachable(s).
func CanReach(s auth.Session, v View) bool {
	for _, r := range Reachable(s) {
		if r == v {
			return true
		}
	}
	return false
}

// Resolve decides where a request for path lands.
//
// The waiting view is not part of the navigable set; it is entered by the
// vote workflow after an accepted ballot and is only resolvable for USER
// sessions, which are the only ones that can vote.
func Resolve(s auth.Session, path string) Decision {
	p := CleanPath(path)
	target := resolve(s, p)
	return Decision{Requested: p, View: target, Redirected: string(target) != p}
}

func resolve(s auth.Session, p string) View {
	if !s.Authenticated() {
		return ViewLogin
	}

	home := Home(s)
	switch p {
	case string(ViewVoting):
		// /vote is the voting view for users and the admin default for admins.
		return home
	case PathAdminDashboard:
		if s.Role == auth.RoleAdmin {
			return AdminViews[0]
		}
		return home
	case string(ViewWaiting):
		// Role check only; the workflow controller also requires a running countdown.
		if s.Role == auth.RoleUser {
			return ViewWaiting
		}
		return home
	}

	v := View(p)
	if CanReach(s, v) && v != ViewLogin {
		return v
	}
	return home
}

// LandingPath is the path a fresh login asks for: the legacy admin
// dashboard for admins, the voting view otherwise. Resolve turns it into
// the session's home view.
func LandingPath(s auth.Session) string {
	if s.IsAdmin() {
		return PathAdminDashboard
	}
	return string(ViewVoting)
}
