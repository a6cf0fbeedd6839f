package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vinothdevgit/voting-client/internal/adapters/electionapi"
	"github.com/Vinothdevgit/voting-client/internal/adapters/jwtrole"
	"github.com/Vinothdevgit/voting-client/internal/adapters/sqlite"
	domainauth "github.com/Vinothdevgit/voting-client/internal/domain/auth"
	"github.com/Vinothdevgit/voting-client/internal/domain/countdown"
	"github.com/Vinothdevgit/voting-client/internal/domain/election"
	"github.com/Vinothdevgit/voting-client/internal/domain/routing"
	"github.com/Vinothdevgit/voting-client/internal/domain/workflow"
	mockauth "github.com/Vinothdevgit/voting-client/internal/mocks/auth"
	"github.com/Vinothdevgit/voting-client/internal/observability/statsd"
	"github.com/Vinothdevgit/voting-client/internal/testutil"
	"github.com/Vinothdevgit/voting-client/internal/testutil/workflowtest"
)

type client struct {
	ctl     *Controller
	ballot  *BallotService
	nav     *mockauth.RecordingNavigator
	clock   *testutil.ManualClock
	session *SessionStore
}

func newClient(t *testing.T, baseURL, sessionPath string, rec *statsd.Recorder) *client {
	t.Helper()
	var sink statsd.Sink
	if rec != nil {
		sink = rec
	}
	api, err := electionapi.NewClient(electionapi.Config{BaseURL: baseURL, Metrics: sink})
	require.NoError(t, err)
	decoder, err := jwtrole.New(jwtrole.Options{})
	require.NoError(t, err)
	kv, err := sqlite.Open(sessionPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	tel := Telemetry{Metrics: sink}
	c := &client{
		nav:     mockauth.NewRecordingNavigator(64),
		clock:   testutil.NewManualClock(testutil.TestTime()),
		session: NewSessionStore(SessionStoreOptions{KV: kv}),
	}
	c.ballot = NewBallotService(BallotServiceOptions{API: api, Sessions: c.session, Telemetry: tel})
	c.ctl = NewController(ControllerOptions{
		Flows: WorkflowFlows{
			Auth:    NewAuthService(AuthServiceOptions{API: api, Sessions: c.session, Decoder: decoder, Telemetry: tel}),
			Votes:   NewVoteSubmitter(VoteSubmitterOptions{API: api, Sessions: c.session, Telemetry: tel}),
			Waiting: NewWaitingCoordinator(WaitingCoordinatorOptions{Clock: c.clock, Telemetry: tel}),
		},
		Sessions:  c.session,
		Navigator: c.nav,
		Telemetry: tel,
	})
	t.Cleanup(c.ctl.Close)
	return c
}

func TestEndToEnd_VoterLoginVoteWaitResults(t *testing.T) {
	srv := workflowtest.NewElectionServer(t)
	defer srv.Close()
	asha := srv.AddCandidate("Asha", "Sports secretary", "Longer library hours")
	ravi := srv.AddCandidate("Ravi", "Cultural secretary")
	srv.CastVote("someone-else", ravi)

	rec := &statsd.Recorder{}
	path := testutil.SQLitePath(t)
	c := newClient(t, srv.URL(), path, rec)
	ctx := context.Background()

	sess, err := c.ctl.Login(ctx, election.Credentials{Username: workflowtest.VoterUsername, Password: workflowtest.VoterPassword})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleUser, sess.Role)
	assert.Equal(t, routing.ViewVoting, c.nav.Last())

	cs := c.ballot.Candidates(ctx)
	require.Len(t, cs, 2)

	outcome, err := c.ctl.Vote(ctx, asha)
	require.NoError(t, err)
	assert.Equal(t, election.OutcomeAccepted, outcome)
	assert.Equal(t, routing.ViewWaiting, c.nav.Last())

	tk := c.clock.WaitTicker(t, fireTimeout)
	for i := 0; i < countdown.DefaultSeconds; i++ {
		require.True(t, tk.Fire(fireTimeout))
	}
	waitExited(t, c.ctl.Countdown())
	assert.Equal(t, routing.ViewResults, c.nav.Last())
	assert.Equal(t, workflow.VoteClosed, c.ctl.Phase())

	sum, err := c.ballot.Results(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum.TotalVotes())
	w, ok := sum.Winner()
	require.True(t, ok)
	assert.Equal(t, asha, w.CandidateID, "tie goes to the first entry in server order")

	got, ok := srv.VoteOf(workflowtest.VoterUsername)
	require.True(t, ok)
	assert.Equal(t, asha, got)
	assert.Equal(t, 1, srv.Count("POST", electionapi.PathVote))
}

func TestEndToEnd_SecondVoteAfterRestartIsDuplicate(t *testing.T) {
	srv := workflowtest.NewElectionServer(t)
	defer srv.Close()
	id := srv.AddCandidate("Asha", "")
	path := testutil.SQLitePath(t)
	ctx := context.Background()

	first := newClient(t, srv.URL(), path, nil)
	_, err := first.ctl.Login(ctx, election.Credentials{Username: workflowtest.VoterUsername, Password: workflowtest.VoterPassword})
	require.NoError(t, err)
	_, err = first.ctl.Vote(ctx, id)
	require.NoError(t, err)
	first.ctl.Close()

	second := newClient(t, srv.URL(), path, nil)
	home, err := second.ctl.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, routing.ViewVoting, home)

	outcome, err := second.ctl.Vote(ctx, id)
	assert.Equal(t, election.OutcomeDuplicate, outcome)
	require.Error(t, err)
	assert.Equal(t, workflow.VoteClosed, second.ctl.Phase())
	assert.Equal(t, routing.ViewVoting, second.nav.Last())
}

func TestEndToEnd_AdminLogin(t *testing.T) {
	srv := workflowtest.NewElectionServer(t)
	defer srv.Close()
	c := newClient(t, srv.URL(), testutil.SQLitePath(t), nil)

	sess, err := c.ctl.Login(context.Background(), election.Credentials{Username: workflowtest.AdminUsername, Password: workflowtest.AdminPassword})
	require.NoError(t, err)
	assert.True(t, sess.IsAdmin())
	assert.Equal(t, routing.ViewAddUser, c.nav.Last())

	stored, err := c.session.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sess, stored)
}
