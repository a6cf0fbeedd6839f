package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Vinothdevgit/voting-client/internal/domain/election"
	apperrors "github.com/Vinothdevgit/voting-client/internal/errors"
	"github.com/Vinothdevgit/voting-client/internal/observability/metrics"
	"github.com/Vinothdevgit/voting-client/internal/observability/statsd"
	"github.com/Vinothdevgit/voting-client/internal/ports"
	"github.com/Vinothdevgit/voting-client/internal/validation"
)

// VoteSubmitterOptions groups dependencies for VoteSubmitter.
type VoteSubmitterOptions struct {
	API       ports.VoterAPI      // Required
	Sessions  ports.SessionReader // Required
	Telemetry Telemetry
}

// VoteSubmitter casts the session's single ballot.
type VoteSubmitter struct {
	api      ports.VoterAPI
	sessions ports.SessionReader
	logger   *slog.Logger
	metrics  statsd.Sink

	// mu serialises submissions so two attempts never race on the wire.
	mu sync.Mutex
}

// NewVoteSubmitter constructs a new VoteSubmitter.
func NewVoteSubmitter(opts VoteSubmitterOptions) *VoteSubmitter {
	if opts.API == nil {
		panic("VoterAPI is required")
	}
	if opts.Sessions == nil {
		panic("SessionReader is required")
	}
	return &VoteSubmitter{
		api:      opts.API,
		sessions: opts.Sessions,
		logger:   opts.Telemetry.logger("vote"),
		metrics:  opts.Telemetry.Metrics,
	}
}

// Submit sends one vote request and classifies the result. It never retries.
// The returned error carries the detail behind a non-accepted outcome.
// Submissions without a session or candidate are rejected without a request.
func (v *VoteSubmitter) Submit(ctx context.Context, id election.CandidateID) (election.Outcome, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := validation.CandidateID(id); err != nil {
		return election.OutcomeRejected, err
	}
	sess, err := v.sessions.Get(ctx)
	if err != nil {
		return election.OutcomeRejected, err
	}
	if !sess.Authenticated() {
		return election.OutcomeRejected, apperrors.Unauthenticated("sign in to vote")
	}

	err = v.api.SubmitVote(ctx, sess.Credential, election.Vote{CandidateID: id})
	outcome := classifyVote(err)
	metrics.EmitVoteOutcome(v.metrics, outcome)

	log := v.logger.With("candidate_id", id, "outcome", outcome)
	switch outcome {
	case election.OutcomeAccepted:
		log.Info("vote accepted")
	case election.OutcomeDuplicate:
		log.Info("vote refused, already voted")
	default:
		log.Warn("vote failed", "error", err)
	}
	return outcome, err
}

func classifyVote(err error) election.Outcome {
	switch {
	case err == nil:
		return election.OutcomeAccepted
	case apperrors.IsConflict(err):
		return election.OutcomeDuplicate
	case apperrors.IsUnavailable(err), apperrors.IsTimeout(err), apperrors.IsCanceled(err):
		return election.OutcomeNetworkFailure
	default:
		return election.OutcomeRejected
	}
}
