package auth

// Package auth contains domain-level types for the client session.
// It is pure and free of storage/transport concerns.

import "strings"

// Role represents the authorization role derived from a credential.
// The string form matches what the election server puts in its authorities
// (without the ROLE_ prefix) so it can be persisted as-is.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// RolePrefix is stripped from authority names before they are mapped to a Role.
const RolePrefix = "ROLE_"

// ParseRole maps a raw authority or stored role value to a Role.
// Anything that is not recognisably ADMIN is treated as USER.
func ParseRole(raw string) Role {
	v := strings.ToUpper(strings.TrimSpace(raw))
	v = strings.TrimPrefix(v, RolePrefix)
	if v == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

func (r Role) String() string { return string(r) }

// Session is the client-held proof of authentication plus its derived role.
// The zero value is the absent session. A Session is only ever constructed
// with both fields set (NewSession) or neither.
type Session struct {
	Credential string `json:"credential,omitempty"`
	Role       Role   `json:"role,omitempty"`
}

// NewSession builds a present session. An empty credential yields the
// absent session regardless of role.
func NewSession(credential string, role Role) Session {
	if credential == "" {
		return Session{}
	}
	if !role.Valid() {
		role = RoleUser
	}
	return Session{Credential: credential, Role: role}
}

// Authenticated reports whether a credential is held.
func (s Session) Authenticated() bool { return s.Credential != "" }

// IsAdmin returns true if the session holds the admin role.
func (s Session) IsAdmin() bool { return s.Authenticated() && s.Role == RoleAdmin }

// Consistent reports whether the role-iff-credential invariant holds.
func (s Session) Consistent() bool {
	if s.Credential == "" {
		return s.Role == ""
	}
	return s.Role.Valid()
}
