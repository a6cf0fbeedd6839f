package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/Vinothdevgit/voting-client/internal/domain/auth"
	"github.com/Vinothdevgit/voting-client/internal/domain/countdown"
	"github.com/Vinothdevgit/voting-client/internal/domain/election"
	"github.com/Vinothdevgit/voting-client/internal/domain/routing"
	"github.com/Vinothdevgit/voting-client/internal/domain/workflow"
	apperrors "github.com/Vinothdevgit/voting-client/internal/errors"
	"github.com/Vinothdevgit/voting-client/internal/mocks"
	mockauth "github.com/Vinothdevgit/voting-client/internal/mocks/auth"
	"github.com/Vinothdevgit/voting-client/internal/testutil"
)

var (
	voterCreds = election.Credentials{Username: "student1", Password: "pass123"}
	adminCreds = election.Credentials{Username: "admin", Password: "admin123"}
)

type workflowFixture struct {
	api   *mocks.MockElectionAPI
	store *mockauth.MemorySessionStore
	nav   *mockauth.RecordingNavigator
	clock *testutil.ManualClock
	ctl   *Controller
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &workflowFixture{
		api:   mocks.NewMockElectionAPI(ctrl),
		store: mockauth.NewMemorySessionStore(),
		nav:   mockauth.NewRecordingNavigator(64),
		clock: testutil.NewManualClock(testutil.TestTime()),
	}
	decoder := mockauth.StaticDecoder{"admin-tok": domainauth.RoleAdmin, "user-tok": domainauth.RoleUser}
	f.ctl = NewController(ControllerOptions{
		Flows: WorkflowFlows{
			Auth:    NewAuthService(AuthServiceOptions{API: f.api, Sessions: f.store, Decoder: decoder}),
			Votes:   NewVoteSubmitter(VoteSubmitterOptions{API: f.api, Sessions: f.store}),
			Waiting: NewWaitingCoordinator(WaitingCoordinatorOptions{Clock: f.clock}),
		},
		Sessions:  f.store,
		Navigator: f.nav,
	})
	t.Cleanup(f.ctl.Close)
	return f
}

func (f *workflowFixture) loginVoter(t *testing.T) {
	t.Helper()
	f.api.EXPECT().Login(gomock.Any(), voterCreds).Return("user-tok", nil)
	_, err := f.ctl.Login(context.Background(), voterCreds)
	require.NoError(t, err)
}

func (f *workflowFixture) voteAccepted(t *testing.T) *testutil.ManualTicker {
	t.Helper()
	f.api.EXPECT().SubmitVote(gomock.Any(), "user-tok", election.Vote{CandidateID: "1"}).Return(nil)
	outcome, err := f.ctl.Vote(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, election.OutcomeAccepted, outcome)
	return f.clock.WaitTicker(t, fireTimeout)
}

func TestController_AdminLoginLandsOnDefaultAdminView(t *testing.T) {
	f := newWorkflowFixture(t)
	f.api.EXPECT().Login(gomock.Any(), adminCreds).Return("admin-tok", nil)

	sess, err := f.ctl.Login(context.Background(), adminCreds)
	require.NoError(t, err)
	assert.True(t, sess.IsAdmin())
	assert.Equal(t, workflow.Browsing, f.ctl.Phase())
	assert.Equal(t, []routing.View{routing.ViewAddUser}, f.nav.Views())
}

func TestController_LoginFailureChangesNothing(t *testing.T) {
	f := newWorkflowFixture(t)
	f.api.EXPECT().Login(gomock.Any(), gomock.Any()).Return("", apperrors.AuthFailure("login failed"))

	_, err := f.ctl.Login(context.Background(), voterCreds)
	assert.True(t, apperrors.IsAuthFailure(err))
	assert.Equal(t, workflow.SignedOut, f.ctl.Phase())
	assert.Empty(t, f.nav.Views())
	sets, _ := f.store.Writes()
	assert.Zero(t, sets)
}

func TestController_VoteWaitResults(t *testing.T) {
	f := newWorkflowFixture(t)
	f.loginVoter(t)
	tk := f.voteAccepted(t)

	assert.Equal(t, workflow.Waiting, f.ctl.Phase())
	assert.Equal(t, routing.ViewWaiting, f.ctl.View())

	for i := 0; i < countdown.DefaultSeconds; i++ {
		require.True(t, tk.Fire(fireTimeout))
	}
	waitExited(t, f.ctl.Countdown())

	assert.Equal(t, workflow.VoteClosed, f.ctl.Phase())
	assert.Equal(t, []routing.View{routing.ViewVoting, routing.ViewWaiting, routing.ViewResults}, f.nav.Views())

	_, err := f.ctl.Vote(context.Background(), "1")
	var invalid *workflow.ErrInvalidTransition
	assert.True(t, errors.As(err, &invalid))
}

func TestController_DuplicateClosesVotingInPlace(t *testing.T) {
	f := newWorkflowFixture(t)
	f.loginVoter(t)
	f.api.EXPECT().SubmitVote(gomock.Any(), gomock.Any(), gomock.Any()).Return(apperrors.Conflict("User has already voted"))

	outcome, err := f.ctl.Vote(context.Background(), "1")
	assert.Equal(t, election.OutcomeDuplicate, outcome)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, workflow.VoteClosed, f.ctl.Phase())
	assert.Equal(t, routing.ViewVoting, f.nav.Last())
	assert.Nil(t, f.ctl.Countdown())
	sets, clears := f.store.Writes()
	assert.Equal(t, 1, sets)
	assert.Zero(t, clears)
}

func TestController_FailedVoteCanBeRetried(t *testing.T) {
	f := newWorkflowFixture(t)
	f.loginVoter(t)
	f.api.EXPECT().SubmitVote(gomock.Any(), gomock.Any(), gomock.Any()).Return(apperrors.Rejected(500, "boom"))

	outcome, _ := f.ctl.Vote(context.Background(), "1")
	assert.Equal(t, election.OutcomeRejected, outcome)
	assert.Equal(t, workflow.Browsing, f.ctl.Phase())

	f.voteAccepted(t)
	assert.Equal(t, workflow.Waiting, f.ctl.Phase())
}

func TestController_LogoutWhileWaitingCancelsCountdown(t *testing.T) {
	f := newWorkflowFixture(t)
	f.loginVoter(t)
	tk := f.voteAccepted(t)
	for i := 0; i < 5; i++ {
		require.True(t, tk.Fire(fireTimeout))
	}

	require.NoError(t, f.ctl.Logout(context.Background()))

	assert.False(t, tk.TryFire())
	assert.Equal(t, workflow.SignedOut, f.ctl.Phase())
	assert.Equal(t, routing.ViewLogin, f.nav.Last())
	assert.Zero(t, f.nav.Count(routing.ViewResults))
	sess, err := f.store.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}

func TestController_NavigateAwayFromWaiting(t *testing.T) {
	f := newWorkflowFixture(t)
	f.loginVoter(t)
	tk := f.voteAccepted(t)

	d, err := f.ctl.Navigate(context.Background(), "/waiting")
	require.NoError(t, err)
	assert.Equal(t, routing.ViewWaiting, d.View)
	assert.Equal(t, workflow.Waiting, f.ctl.Phase())

	d, err = f.ctl.Navigate(context.Background(), "/results")
	require.NoError(t, err)
	assert.Equal(t, routing.ViewResults, d.View)
	assert.Equal(t, workflow.VoteClosed, f.ctl.Phase())
	assert.False(t, tk.TryFire())
	assert.Equal(t, 1, f.nav.Count(routing.ViewResults))
}

func TestController_WaitingNeedsRunningCountdown(t *testing.T) {
	f := newWorkflowFixture(t)
	f.loginVoter(t)

	d, err := f.ctl.Navigate(context.Background(), "/waiting")
	require.NoError(t, err)
	assert.Equal(t, routing.ViewVoting, d.View)
	assert.True(t, d.Redirected)
	assert.Equal(t, workflow.Browsing, f.ctl.Phase())
	assert.Zero(t, f.nav.Count(routing.ViewWaiting))
	assert.Empty(t, f.clock.Tickers())
}

func TestController_NavigateRedirects(t *testing.T) {
	f := newWorkflowFixture(t)

	d, err := f.ctl.Navigate(context.Background(), "/admin/add-user")
	require.NoError(t, err)
	assert.True(t, d.Redirected)
	assert.Equal(t, routing.ViewLogin, d.View)

	f.loginVoter(t)
	d, err = f.ctl.Navigate(context.Background(), "/admin/view-votes")
	require.NoError(t, err)
	assert.Equal(t, routing.ViewVoting, d.View)
}

func TestController_Restore(t *testing.T) {
	f := newWorkflowFixture(t)
	require.NoError(t, f.store.Set(context.Background(), "admin-tok", domainauth.RoleAdmin))

	home, err := f.ctl.Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, routing.ViewAddUser, home)
	assert.Equal(t, workflow.Browsing, f.ctl.Phase())
}

func TestController_VoteWhileSignedOut(t *testing.T) {
	f := newWorkflowFixture(t)
	_, err := f.ctl.Vote(context.Background(), "1")
	var invalid *workflow.ErrInvalidTransition
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, workflow.SignedOut, invalid.From)
}

func TestController_SessionClearedElsewhere(t *testing.T) {
	f := newWorkflowFixture(t)
	f.loginVoter(t)
	require.NoError(t, f.store.Clear(context.Background()))

	d, err := f.ctl.Navigate(context.Background(), "/vote")
	require.NoError(t, err)
	assert.Equal(t, routing.ViewLogin, d.View)
	assert.Equal(t, workflow.SignedOut, f.ctl.Phase())
}
