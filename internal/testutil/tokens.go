package testutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SigningKey signs test tokens. The client never verifies signatures, so any
// key works; a fixed one keeps tokens stable across runs.
var SigningKey = []byte("ballot-test-signing-key")

// Token signs claims into a compact HS256 JWT.
func Token(t TestingTB, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(SigningKey)
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return s
}

// TokenFor builds a token for subject carrying the given authorities, in the
// shape the election server issues.
func TokenFor(t TestingTB, subject string, authorities ...any) string {
	t.Helper()
	return Token(t, jwt.MapClaims{
		"sub":         subject,
		"authorities": authorities,
		"iat":         TestTime().Unix(),
		"exp":         TestTime().Add(time.Hour).Unix(),
	})
}

// UserToken is a token granting ROLE_USER.
func UserToken(t TestingTB) string {
	t.Helper()
	return TokenFor(t, "student1", "ROLE_USER")
}

// AdminToken is a token granting ROLE_ADMIN.
func AdminToken(t TestingTB) string {
	t.Helper()
	return TokenFor(t, "admin", "ROLE_ADMIN")
}
