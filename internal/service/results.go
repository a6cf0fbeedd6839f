package service

import (
	"context"
	"log/slog"

	"github.com/Vinothdevgit/voting-client/internal/domain/election"
	"github.com/Vinothdevgit/voting-client/internal/domain/tally"
	"github.com/Vinothdevgit/voting-client/internal/observability/metrics"
	"github.com/Vinothdevgit/voting-client/internal/observability/statsd"
	"github.com/Vinothdevgit/voting-client/internal/ports"
)

// BallotServiceOptions groups dependencies for BallotService.
type BallotServiceOptions struct {
	API       ports.VoterAPI      // Required
	Sessions  ports.SessionReader // Required
	Telemetry Telemetry
}

// BallotService loads the data behind the voting and results views.
// Fetch failures degrade to empty data and are only logged.
type BallotService struct {
	api      ports.VoterAPI
	sessions ports.SessionReader
	logger   *slog.Logger
	metrics  statsd.Sink
}

// NewBallotService constructs a new BallotService.
func NewBallotService(opts BallotServiceOptions) *BallotService {
	if opts.API == nil {
		panic("VoterAPI is required")
	}
	if opts.Sessions == nil {
		panic("SessionReader is required")
	}
	return &BallotService{
		api:      opts.API,
		sessions: opts.Sessions,
		logger:   opts.Telemetry.logger("ballot"),
		metrics:  opts.Telemetry.Metrics,
	}
}

// Candidates returns the ballot, or an empty list when it cannot be fetched.
func (s *BallotService) Candidates(ctx context.Context) []election.Candidate {
	cred, ok := s.credential(ctx)
	if !ok {
		return []election.Candidate{}
	}
	cs, err := s.api.ListCandidates(ctx, cred)
	if err != nil {
		s.logger.Warn("failed to load candidates", "error", err)
		return []election.Candidate{}
	}
	if cs == nil {
		cs = []election.Candidate{}
	}
	return cs
}

// Results fetches and aggregates the tally. A failed fetch yields the pending
// summary; a malformed tally is reported as a validation error.
func (s *BallotService) Results(ctx context.Context) (tally.Summary, error) {
	cred, ok := s.credential(ctx)
	if !ok {
		return tally.Summary{}, nil
	}
	entries, err := s.api.FetchResults(ctx, cred)
	if err != nil {
		s.logger.Warn("failed to load results", "error", err)
		return tally.Summary{}, nil
	}

	sum, err := tally.Aggregate(entries)
	if err != nil {
		s.logger.Warn("server returned an invalid tally", "error", err)
		return tally.Summary{}, err
	}
	metrics.EmitResultsTotal(s.metrics, sum.TotalVotes())
	return sum, nil
}

func (s *BallotService) credential(ctx context.Context) (string, bool) {
	sess, err := s.sessions.Get(ctx)
	if err != nil {
		s.logger.Warn("failed to read session", "error", err)
		return "", false
	}
	return sess.Credential, sess.Authenticated()
}
