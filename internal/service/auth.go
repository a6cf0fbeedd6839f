package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	domainauth "github.com/Vinothdevgit/voting-client/internal/domain/auth"
	"github.com/Vinothdevgit/voting-client/internal/domain/election"
	apperrors "github.com/Vinothdevgit/voting-client/internal/errors"
	"github.com/Vinothdevgit/voting-client/internal/observability/metrics"
	"github.com/Vinothdevgit/voting-client/internal/observability/statsd"
	"github.com/Vinothdevgit/voting-client/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	API       ports.Authenticator     // Required
	Sessions  ports.SessionWriter     // Required
	Decoder   ports.CredentialDecoder // Required
	Telemetry Telemetry
}

// AuthService is the only holder of the session writer: it signs in and out.
type AuthService struct {
	api      ports.Authenticator
	sessions ports.SessionWriter
	decoder  ports.CredentialDecoder
	logger   *slog.Logger
	metrics  statsd.Sink
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.API == nil {
		panic("Authenticator is required")
	}
	if opts.Sessions == nil {
		panic("SessionWriter is required")
	}
	if opts.Decoder == nil {
		panic("CredentialDecoder is required")
	}
	return &AuthService{
		api:      opts.API,
		sessions: opts.Sessions,
		decoder:  opts.Decoder,
		logger:   opts.Telemetry.logger("auth"),
		metrics:  opts.Telemetry.Metrics,
	}
}

// Login exchanges the credentials for a token, derives its role and
// persists both. On failure the stored session is left untouched.
func (s *AuthService) Login(ctx context.Context, in election.Credentials) (domainauth.Session, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		return domainauth.Session{}, apperrors.ValidationField("username", "username is required")
	}
	if in.Password == "" {
		return domainauth.Session{}, apperrors.ValidationField("password", "password is required")
	}

	token, err := s.api.Login(ctx, in)
	if err != nil {
		metrics.EmitLogin(s.metrics, "", err)
		s.logger.Info("login failed", "username", in.Username, "error", err)
		return domainauth.Session{}, err
	}

	role := s.decoder.DecodeRole(token)
	if err := s.sessions.Set(ctx, token, role); err != nil {
		metrics.EmitLogin(s.metrics, "", err)
		return domainauth.Session{}, fmt.Errorf("persist session: %w", err)
	}

	metrics.EmitLogin(s.metrics, role.String(), nil)
	s.logger.Info("signed in", "username", in.Username, "role", role)
	return domainauth.NewSession(token, role), nil
}

// Logout removes the stored session.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.logger.Info("signed out")
	return nil
}
