package ports

// Package ports defines interfaces (hexagonal ports) for the client.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/Vinothdevgit/voting-client/internal/domain/auth"
)

// SessionReader exposes the current session to any component.
type SessionReader interface {
	// Get returns the persisted session, or the zero Session when absent.
	Get(ctx context.Context) (domainauth.Session, error)
}

// SessionWriter mutates the session. Only the login flow and logout hold one.
type SessionWriter interface {
	// Set stores credential and role together; neither is visible without the other.
	Set(ctx context.Context, credential string, role domainauth.Role) error
	// Clear removes the session entirely.
	Clear(ctx context.Context) error
}

// SessionStore is the full read/write session surface.
type SessionStore interface {
	SessionReader
	SessionWriter
}

// CredentialDecoder derives a role from an opaque credential.
// It never fails: undecodable credentials map to the least privileged role.
type CredentialDecoder interface {
	DecodeRole(credential string) domainauth.Role
}

// KeyValueStore is the persistence primitive behind the session store.
type KeyValueStore interface {
	// Get returns the value for key; ok is false when the key is missing.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// GetMany reads keys from one snapshot. Missing keys are absent from the result.
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)
	// SetMany writes all pairs atomically.
	SetMany(ctx context.Context, pairs map[string]string) error
	// Delete removes keys atomically; missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
