package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vinothdevgit/voting-client/internal/domain/election"
	apperrors "github.com/Vinothdevgit/voting-client/internal/errors"
	"github.com/Vinothdevgit/voting-client/internal/observability/statsd"
)

func TestEmitAPICall(t *testing.T) {
	var rec statsd.Recorder

	EmitAPICall(&rec, APICall{Op: "submit_vote", Status: 409, Duration: 20 * time.Millisecond, Err: apperrors.Conflict("dup")})
	EmitAPICall(&rec, APICall{Op: "list_candidates", Status: 200})

	counts := rec.Named(MetricAPIRequest)
	require.Len(t, counts, 2)
	assert.Equal(t, map[string]string{
		"op": "submit_vote", "status": "409", "result": ResultError, "error_class": "conflict",
	}, counts[0].Tags)
	assert.Equal(t, ResultSuccess, counts[1].Tags["result"])

	timings := rec.Named(MetricAPIDuration)
	require.Len(t, timings, 1, "zero durations are not timed")
	assert.InDelta(t, 20.0, timings[0].Value, 1e-9)
}

func TestEmitLoginAndVote(t *testing.T) {
	var rec statsd.Recorder

	EmitLogin(&rec, "ADMIN", nil)
	EmitLogin(&rec, "", apperrors.AuthFailure("login failed"))
	EmitVoteOutcome(&rec, election.OutcomeDuplicate)
	EmitResultsTotal(&rec, 42)

	logins := rec.Named(MetricLogin)
	require.Len(t, logins, 2)
	assert.Equal(t, "ADMIN", logins[0].Tags["role"])
	assert.Equal(t, "auth_failure", logins[1].Tags["error_class"])

	votes := rec.Named(MetricVoteOutcome)
	require.Len(t, votes, 1)
	assert.Equal(t, "duplicate", votes[0].Tags["outcome"])

	assert.Equal(t, 42.0, rec.Named(MetricResultsTotal)[0].Value)
}

func TestNilSinkIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		EmitAPICall(nil, APICall{Err: errors.New("x")})
		EmitLogin(nil, "", nil)
		EmitVoteOutcome(nil, election.OutcomeAccepted)
		EmitResultsTotal(nil, 1)
	})
}
