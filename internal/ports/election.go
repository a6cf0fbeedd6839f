package ports

import (
	"context"

	"github.com/Vinothdevgit/voting-client/internal/domain/election"
)

// Authenticator exchanges credentials for a bearer credential.
type Authenticator interface {
	Login(ctx context.Context, in election.Credentials) (token string, err error)
}

// VoterAPI covers the calls available to any signed-in session.
// credential is sent as the bearer token.
type VoterAPI interface {
	ListCandidates(ctx context.Context, credential string) ([]election.Candidate, error)
	// SubmitVote performs exactly one request. A 409 response is reported
	// as a conflict error.
	SubmitVote(ctx context.Context, credential string, vote election.Vote) error
	FetchResults(ctx context.Context, credential string) ([]election.TallyEntry, error)
}

// AdminAPI covers the administrator-only calls.
type AdminAPI interface {
	RegisterUser(ctx context.Context, credential string, in election.NewUser) error
	AddCandidate(ctx context.Context, credential string, in election.CandidateInput) error
	UpdateCandidate(ctx context.Context, credential string, id election.CandidateID, in election.CandidateInput) error
	DeleteCandidate(ctx context.Context, credential string, id election.CandidateID) error
	AdminCandidates(ctx context.Context, credential string) ([]election.Candidate, error)
	VoteSummary(ctx context.Context, credential string) ([]election.TallyEntry, error)
}

// ElectionAPI is the complete election server surface.
type ElectionAPI interface {
	Authenticator
	VoterAPI
	AdminAPI
}
