package service

import (
	"context"
	"fmt"
	"log/slog"

	domainauth "github.com/Vinothdevgit/voting-client/internal/domain/auth"
	apperrors "github.com/Vinothdevgit/voting-client/internal/errors"
	"github.com/Vinothdevgit/voting-client/internal/ports"
)

// Persistence keys for the session.
const (
	KeyCredential = "jwt"
	KeyRole       = "role"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStoreOptions groups dependencies for SessionStore.
type SessionStoreOptions struct {
	KV     ports.KeyValueStore // Required
	Logger *slog.Logger
}

// SessionStore persists the credential and its role as a pair. Readers
// observe either both or neither.
type SessionStore struct {
	kv     ports.KeyValueStore
	logger *slog.Logger
}

// NewSessionStore constructs a SessionStore.
func NewSessionStore(opts SessionStoreOptions) *SessionStore {
	if opts.KV == nil {
		panic("KeyValueStore is required")
	}
	return &SessionStore{
		kv:     opts.KV,
		logger: Telemetry{Logger: opts.Logger}.logger("session"),
	}
}

// Get returns the stored session. A half-written pair reads as absent.
func (s *SessionStore) Get(ctx context.Context) (domainauth.Session, error) {
	vals, err := s.kv.GetMany(ctx, KeyCredential, KeyRole)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("read session: %w", err)
	}
	cred, okCred := vals[KeyCredential]
	role, okRole := vals[KeyRole]

	if !okCred || !okRole || cred == "" {
		if okCred != okRole {
			s.logger.Warn("partial session found, treating as signed out",
				"has_credential", okCred, "has_role", okRole)
		}
		return domainauth.Session{}, nil
	}
	return domainauth.NewSession(cred, domainauth.ParseRole(role)), nil
}

// Set stores credential and role together.
func (s *SessionStore) Set(ctx context.Context, credential string, role domainauth.Role) error {
	if credential == "" {
		return apperrors.ValidationField("credential", "credential is required")
	}
	if !role.Valid() {
		return apperrors.ValidationField("role", "invalid role "+role.String())
	}
	if err := s.kv.SetMany(ctx, map[string]string{
		KeyCredential: credential,
		KeyRole:       role.String(),
	}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes both keys.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyCredential, KeyRole); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
