// Package validation checks admin form input before it is sent to the server.
package validation

import (
	"strings"
	"unicode/utf8"

	domainauth "github.com/Vinothdevgit/voting-client/internal/domain/auth"
	"github.com/Vinothdevgit/voting-client/internal/domain/election"
	apperrors "github.com/Vinothdevgit/voting-client/internal/errors"
)

const (
	maxUsernameLen    = 64
	maxFullNameLen    = 255
	maxCandidateName  = 255
	maxPromiseLen     = 500
	maxDescriptionLen = 2000
)

// NewUser normalises in and reports the first invalid field.
// An empty role defaults to USER.
func NewUser(in *election.NewUser) error {
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)

	switch {
	case in.Username == "":
		return apperrors.ValidationField("username", "username is required")
	case utf8.RuneCountInString(in.Username) > maxUsernameLen:
		return apperrors.ValidationField("username", "username cannot exceed 64 characters")
	case strings.ContainsAny(in.Username, " \t\n"):
		return apperrors.ValidationField("username", "username cannot contain spaces")
	case in.Password == "":
		return apperrors.ValidationField("password", "password is required")
	case in.FullName == "":
		return apperrors.ValidationField("fullName", "full name is required")
	case utf8.RuneCountInString(in.FullName) > maxFullNameLen:
		return apperrors.ValidationField("fullName", "full name cannot exceed 255 characters")
	}

	if strings.TrimSpace(string(in.Role)) == "" {
		in.Role = domainauth.RoleUser
	}
	in.Role = domainauth.Role(strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(string(in.Role)), domainauth.RolePrefix)))
	if !in.Role.Valid() {
		return apperrors.ValidationField("role", "role must be USER or ADMIN")
	}
	return nil
}

// CandidateInput normalises in and reports the first invalid field.
// Blank promises are dropped.
func CandidateInput(in *election.CandidateInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Symbol = strings.TrimSpace(in.Symbol)

	if in.Name == "" {
		return apperrors.ValidationField("name", "candidate name is required")
	}
	if utf8.RuneCountInString(in.Name) > maxCandidateName {
		return apperrors.ValidationField("name", "candidate name cannot exceed 255 characters")
	}
	if utf8.RuneCountInString(in.Description) > maxDescriptionLen {
		return apperrors.ValidationField("description", "description cannot exceed 2000 characters")
	}

	promises := make([]string, 0, len(in.Promises))
	for _, p := range in.Promises {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if utf8.RuneCountInString(p) > maxPromiseLen {
			return apperrors.ValidationField("promises", "each promise cannot exceed 500 characters")
		}
		promises = append(promises, p)
	}
	in.Promises = promises
	return nil
}

// CandidateID rejects an empty candidate id.
func CandidateID(id election.CandidateID) error {
	if strings.TrimSpace(id.String()) == "" {
		return apperrors.ValidationField("candidateId", "candidate id is required")
	}
	return nil
}
