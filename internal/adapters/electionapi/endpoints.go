package electionapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/Vinothdevgit/voting-client/internal/domain/election"
	apperrors "github.com/Vinothdevgit/voting-client/internal/errors"
	"github.com/Vinothdevgit/voting-client/internal/ports"
)

// Server paths.
const (
	PathLogin           = "/api/auth/login"
	PathCandidates      = "/api/candidates"
	PathVote            = "/api/vote"
	PathResults         = "/api/vote/result"
	PathRegisterUser    = "/api/users/register"
	PathAddCandidate    = "/admin/candidate/add"
	PathCandidate       = "/admin/candidate/"
	PathAdminCandidates = "/admin/candidates"
	PathAdminVotes      = "/api/admin/votes"
)

var _ ports.ElectionAPI = (*Client)(nil)

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges username and password for a bearer token. Any non-success
// response is reported as an auth failure; transport errors keep their code.
func (c *Client) Login(ctx context.Context, in election.Credentials) (string, error) {
	var out loginResponse
	cl, err := c.jsonCall("login", http.MethodPost, PathLogin, in, &out)
	if err != nil {
		return "", err
	}

	if err := c.do(ctx, c.hc, cl); err != nil {
		if apperrors.GetStatus(err) != 0 {
			return "", apperrors.Wrap(err, apperrors.ErrCodeAuthFailure, "login failed")
		}
		return "", err
	}
	if strings.TrimSpace(out.Token) == "" {
		return "", apperrors.AuthFailure("login failed: server returned no token")
	}
	return out.Token, nil
}

// ListCandidates fetches the ballot.
func (c *Client) ListCandidates(ctx context.Context, credential string) ([]election.Candidate, error) {
	var out []election.Candidate
	if err := c.authedJSON(ctx, credential, "list_candidates", http.MethodGet, PathCandidates, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitVote casts the ballot with exactly one request.
func (c *Client) SubmitVote(ctx context.Context, credential string, vote election.Vote) error {
	return c.authedJSON(ctx, credential, "submit_vote", http.MethodPost, PathVote, vote, nil)
}

// FetchResults fetches the public tally.
func (c *Client) FetchResults(ctx context.Context, credential string) ([]election.TallyEntry, error) {
	var out []election.TallyEntry
	if err := c.authedJSON(ctx, credential, "fetch_results", http.MethodGet, PathResults, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterUser creates a voter or administrator account.
func (c *Client) RegisterUser(ctx context.Context, credential string, in election.NewUser) error {
	return c.authedJSON(ctx, credential, "register_user", http.MethodPost, PathRegisterUser, in, nil)
}

// AddCandidate creates a candidate. The server expects a multipart form with
// promises as a JSON array field.
func (c *Client) AddCandidate(ctx context.Context, credential string, in election.CandidateInput) error {
	hc, err := c.bearer(credential)
	if err != nil {
		return err
	}

	body, contentType, err := candidateForm(in)
	if err != nil {
		return err
	}
	return c.do(ctx, hc, call{
		op:          "add_candidate",
		method:      http.MethodPost,
		path:        PathAddCandidate,
		body:        body,
		contentType: contentType,
	})
}

// UpdateCandidate replaces a candidate's details.
func (c *Client) UpdateCandidate(ctx context.Context, credential string, id election.CandidateID, in election.CandidateInput) error {
	return c.authedJSON(ctx, credential, "update_candidate", http.MethodPut, candidatePath(id), in, nil)
}

// DeleteCandidate removes a candidate.
func (c *Client) DeleteCandidate(ctx context.Context, credential string, id election.CandidateID) error {
	return c.authedJSON(ctx, credential, "delete_candidate", http.MethodDelete, candidatePath(id), nil, nil)
}

// AdminCandidates fetches the administrator's candidate listing.
func (c *Client) AdminCandidates(ctx context.Context, credential string) ([]election.Candidate, error) {
	var out []election.Candidate
	if err := c.authedJSON(ctx, credential, "admin_candidates", http.MethodGet, PathAdminCandidates, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// VoteSummary fetches the administrator's per-candidate totals.
func (c *Client) VoteSummary(ctx context.Context, credential string) ([]election.TallyEntry, error) {
	var out []election.TallyEntry
	if err := c.authedJSON(ctx, credential, "vote_summary", http.MethodGet, PathAdminVotes, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) authedJSON(ctx context.Context, credential, op, method, path string, in, out any) error {
	hc, err := c.bearer(credential)
	if err != nil {
		return err
	}
	cl, err := c.jsonCall(op, method, path, in, out)
	if err != nil {
		return err
	}
	return c.do(ctx, hc, cl)
}

func candidatePath(id election.CandidateID) string {
	return PathCandidate + url.PathEscape(id.String())
}

func candidateForm(in election.CandidateInput) (*bytes.Buffer, string, error) {
	promises := in.Promises
	if promises == nil {
		promises = []string{}
	}
	promisesJSON, err := json.Marshal(promises)
	if err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode promises")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := []struct{ name, value string }{
		{"name", in.Name},
		{"description", in.Description},
		{"promises", string(promisesJSON)},
		{"symbol", in.Symbol},
	}
	for _, f := range fields {
		if f.name == "symbol" && f.value == "" {
			continue
		}
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", apperrors.Wrapf(err, apperrors.ErrCodeInternal, "write form field %s", f.name)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "close multipart form")
	}
	return &buf, w.FormDataContentType(), nil
}
