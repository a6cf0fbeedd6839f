// Package routing maps a session to the views it may reach.
//
// Everything here is a pure function of auth.Session; it is the only place
// in the client that makes role decisions.
package routing

import (
	"net/url"
	"strings"
)

// View identifies a client view by its path.
type View string

const (
	ViewLogin            View = "/login"
	ViewAddUser          View = "/admin/add-user"
	ViewAddCandidate     View = "/admin/add-candidate"
	ViewVoteSummary      View = "/admin/view-votes"
	ViewManageCandidates View = "/admin/candidates"
	ViewVoting           View = "/vote"
	ViewWaiting          View = "/waiting"
	ViewResults          View = "/results"
)

// PathAdminDashboard is the legacy admin landing path. It no longer has a
// view of its own and redirects to the first admin view.
const PathAdminDashboard = "/admin/dashboard"

// AdminViews lists the admin views in menu order. The first entry is the
// admin default view.
var AdminViews = []View{ViewAddUser, ViewAddCandidate, ViewVoteSummary, ViewManageCandidates}

var titles = map[View]string{
	ViewLogin:            "Login",
	ViewAddUser:          "Add User",
	ViewAddCandidate:     "Add Candidate",
	ViewVoteSummary:      "View Votes",
	ViewManageCandidates: "View Candidates",
	ViewVoting:           "Vote",
	ViewWaiting:          "Waiting",
	ViewResults:          "View Results",
}

// Title is the menu label for the view.
func (v View) Title() string {
	if t, ok := titles[v]; ok {
		return t
	}
	return string(v)
}

func (v View) String() string { return string(v) }

// IsAdmin reports whether v is one of the admin-only views.
func (v View) IsAdmin() bool {
	for _, a := range AdminViews {
		if a == v {
			return true
		}
	}
	return false
}

// CleanPath normalises a requested location to a bare path: it drops any
// query or fragment, ensures a leading slash and trims trailing slashes.
func CleanPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if u, err := url.Parse(raw); err == nil {
		raw = u.Path
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	if len(raw) > 1 {
		raw = strings.TrimRight(raw, "/")
		if raw == "" {
			raw = "/"
		}
	}
	return raw
}
