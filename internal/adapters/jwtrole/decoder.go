// Package jwtrole derives the session role from the election server's bearer
// token. The token signature is not verified here; the server does that on
// every call. The client only needs the authorities claim for routing.
package jwtrole

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jmespath "github.com/jmespath-community/go-jmespath"

	domainauth "github.com/Vinothdevgit/voting-client/internal/domain/auth"
	apperrors "github.com/Vinothdevgit/voting-client/internal/errors"
	"github.com/Vinothdevgit/voting-client/internal/ports"
)

// DefaultRoleClaim selects the first granted authority.
const DefaultRoleClaim = "authorities[0]"

var _ ports.CredentialDecoder = (*Decoder)(nil)

// Options configures a Decoder.
type Options struct {
	// RoleClaim is a JMESPath expression evaluated against the token claims.
	// Defaults to DefaultRoleClaim.
	RoleClaim string
	Logger    *slog.Logger
}

// Decoder reads roles out of unverified JWT payloads.
type Decoder struct {
	expr   string
	parser *jwt.Parser
	logger *slog.Logger
}

// Details is what the client can learn from a credential without the server.
type Details struct {
	Subject   string
	Role      domainauth.Role
	ExpiresAt time.Time
}

// New builds a Decoder, rejecting an invalid RoleClaim expression up front.
func New(opts Options) (*Decoder, error) {
	expr := strings.TrimSpace(opts.RoleClaim)
	if expr == "" {
		expr = DefaultRoleClaim
	}
	if _, err := jmespath.Compile(expr); err != nil {
		return nil, fmt.Errorf("compile role claim %q: %w", expr, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Decoder{
		expr:   expr,
		parser: jwt.NewParser(),
		logger: logger.With("component", "jwtrole"),
	}, nil
}

// DecodeRole returns the role granted by credential. A credential that cannot
// be decoded, or that grants nothing recognisable, yields USER.
func (d *Decoder) DecodeRole(credential string) domainauth.Role {
	claims, err := d.claims(credential)
	if err != nil {
		d.logger.Warn("credential payload unreadable, defaulting role", "error", err, "role", domainauth.RoleUser)
		return domainauth.RoleUser
	}
	return d.roleFrom(claims)
}

// Inspect decodes the subject, role and expiry of credential.
func (d *Decoder) Inspect(credential string) (Details, error) {
	claims, err := d.claims(credential)
	if err != nil {
		return Details{}, err
	}

	out := Details{Role: d.roleFrom(claims)}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

func (d *Decoder) claims(credential string) (jwt.MapClaims, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, apperrors.MalformedCredential(fmt.Errorf("empty credential"))
	}

	claims := jwt.MapClaims{}
	if _, _, err := d.parser.ParseUnverified(credential, claims); err != nil {
		return nil, apperrors.MalformedCredential(err)
	}
	return claims, nil
}

func (d *Decoder) roleFrom(claims jwt.MapClaims) domainauth.Role {
	v, err := jmespath.Search(d.expr, map[string]any(claims))
	if err != nil {
		d.logger.Warn("role claim evaluation failed", "error", err, "expr", d.expr)
		return domainauth.RoleUser
	}

	name := authorityName(v)
	if name == "" {
		return domainauth.RoleUser
	}
	return domainauth.ParseRole(name)
}

// authorityName accepts "ROLE_X", {"authority": "ROLE_X"} or a list whose
// first element is one of those.
func authorityName(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		if s, ok := t["authority"].(string); ok {
			return s
		}
	case []any:
		if len(t) > 0 {
			return authorityName(t[0])
		}
	}
	return ""
}
