package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Vinothdevgit/voting-client/internal/domain/election"
	"github.com/Vinothdevgit/voting-client/internal/domain/tally"
	apperrors "github.com/Vinothdevgit/voting-client/internal/errors"
	"github.com/Vinothdevgit/voting-client/internal/ports"
	"github.com/Vinothdevgit/voting-client/internal/validation"
)

// AdminServiceOptions groups dependencies for AdminService.
type AdminServiceOptions struct {
	API       ports.AdminAPI      // Required
	Sessions  ports.SessionReader // Required
	Telemetry Telemetry
}

// AdminService backs the administrator views. Access control is the
// router's job and the server's; this service only needs a credential.
type AdminService struct {
	api      ports.AdminAPI
	sessions ports.SessionReader
	logger   *slog.Logger
}

// NewAdminService constructs a new AdminService.
func NewAdminService(opts AdminServiceOptions) *AdminService {
	if opts.API == nil {
		panic("AdminAPI is required")
	}
	if opts.Sessions == nil {
		panic("SessionReader is required")
	}
	return &AdminService{
		api:      opts.API,
		sessions: opts.Sessions,
		logger:   opts.Telemetry.logger("admin"),
	}
}

// Overview is the data behind the vote summary view.
type Overview struct {
	Candidates []election.Candidate
	Votes      tally.Summary
}

// CandidateCount is the badge shown next to the summary.
func (o Overview) CandidateCount() int { return len(o.Candidates) }

// Overview fetches the candidate listing and the vote summary concurrently.
// Either fetch failing degrades to empty data.
func (s *AdminService) Overview(ctx context.Context) (Overview, error) {
	cred, err := s.credential(ctx)
	if err != nil {
		return Overview{}, err
	}

	var (
		out     = Overview{Candidates: []election.Candidate{}}
		entries []election.TallyEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cs, ferr := s.api.AdminCandidates(gctx, cred)
		if ferr != nil {
			s.logger.Warn("failed to load admin candidates", "error", ferr)
			return nil
		}
		if cs != nil {
			out.Candidates = cs
		}
		return nil
	})
	g.Go(func() error {
		es, ferr := s.api.VoteSummary(gctx, cred)
		if ferr != nil {
			s.logger.Warn("failed to load vote summary", "error", ferr)
			return nil
		}
		entries = es
		return nil
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	votes, err := tally.Aggregate(entries)
	if err != nil {
		return out, err
	}
	out.Votes = votes
	return out, nil
}

// Candidates lists candidates matching query. An empty query returns all.
func (s *AdminService) Candidates(ctx context.Context, query string) ([]election.Candidate, error) {
	cred, err := s.credential(ctx)
	if err != nil {
		return nil, err
	}
	cs, err := s.api.AdminCandidates(ctx, cred)
	if err != nil {
		s.logger.Warn("failed to load admin candidates", "error", err)
		return []election.Candidate{}, nil
	}
	return election.FilterCandidates(cs, query), nil
}

// AddUser registers an account. The role defaults to USER.
func (s *AdminService) AddUser(ctx context.Context, in election.NewUser) error {
	if err := validation.NewUser(&in); err != nil {
		return err
	}
	cred, err := s.credential(ctx)
	if err != nil {
		return err
	}
	if err := s.api.RegisterUser(ctx, cred, in); err != nil {
		return userFacing(err, "add user "+in.Username)
	}
	s.logger.Info("user registered", "username", in.Username, "role", in.Role)
	return nil
}

// AddCandidate creates a candidate.
func (s *AdminService) AddCandidate(ctx context.Context, in election.CandidateInput) error {
	if err := validation.CandidateInput(&in); err != nil {
		return err
	}
	cred, err := s.credential(ctx)
	if err != nil {
		return err
	}
	if err := s.api.AddCandidate(ctx, cred, in); err != nil {
		return userFacing(err, "add candidate "+in.Name)
	}
	s.logger.Info("candidate added", "name", in.Name, "promises", len(in.Promises))
	return nil
}

// EditCandidate replaces a candidate's details.
func (s *AdminService) EditCandidate(ctx context.Context, id election.CandidateID, in election.CandidateInput) error {
	if err := validation.CandidateID(id); err != nil {
		return err
	}
	if err := validation.CandidateInput(&in); err != nil {
		return err
	}
	cred, err := s.credential(ctx)
	if err != nil {
		return err
	}
	if err := s.api.UpdateCandidate(ctx, cred, id, in); err != nil {
		return userFacing(err, "update candidate "+id.String())
	}
	s.logger.Info("candidate updated", "candidate_id", id)
	return nil
}

// DeleteCandidate removes a candidate.
func (s *AdminService) DeleteCandidate(ctx context.Context, id election.CandidateID) error {
	if err := validation.CandidateID(id); err != nil {
		return err
	}
	cred, err := s.credential(ctx)
	if err != nil {
		return err
	}
	if err := s.api.DeleteCandidate(ctx, cred, id); err != nil {
		return userFacing(err, "delete candidate "+id.String())
	}
	s.logger.Info("candidate deleted", "candidate_id", id)
	return nil
}

func (s *AdminService) credential(ctx context.Context) (string, error) {
	sess, err := s.sessions.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("read session: %w", err)
	}
	if !sess.Authenticated() {
		return "", apperrors.Unauthenticated("not signed in")
	}
	return sess.Credential, nil
}

// userFacing prefixes the server's explanation with the failed action while
// keeping the error code.
func userFacing(err error, action string) error {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	return apperrors.Wrapf(err, code, "failed to %s", action)
}
