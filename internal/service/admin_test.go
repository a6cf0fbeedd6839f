package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/Vinothdevgit/voting-client/internal/domain/auth"
	"github.com/Vinothdevgit/voting-client/internal/domain/election"
	apperrors "github.com/Vinothdevgit/voting-client/internal/errors"
	"github.com/Vinothdevgit/voting-client/internal/mocks"
	mockauth "github.com/Vinothdevgit/voting-client/internal/mocks/auth"
	"github.com/Vinothdevgit/voting-client/internal/testutil"
)

func newAdminFixture(t *testing.T) (*mocks.MockElectionAPI, *AdminService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := mocks.NewMockElectionAPI(ctrl)
	svc := NewAdminService(AdminServiceOptions{
		API:      api,
		Sessions: mockauth.NewMemorySessionStoreWith("admin-tok", domainauth.RoleAdmin),
	})
	return api, svc
}

func TestAdminService_Overview(t *testing.T) {
	api, svc := newAdminFixture(t)
	cs := []election.Candidate{
		testutil.NewCandidate(1, "Asha").Build(),
		testutil.NewCandidate(2, "Ravi").Build(),
	}
	api.EXPECT().AdminCandidates(gomock.Any(), "admin-tok").Return(cs, nil)
	api.EXPECT().VoteSummary(gomock.Any(), "admin-tok").Return([]election.TallyEntry{
		testutil.Entry(1, "Asha", 4), testutil.Entry(2, "Ravi", 1),
	}, nil)

	ov, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, ov.CandidateCount())
	assert.Equal(t, int64(5), ov.Votes.TotalVotes())
}

func TestAdminService_OverviewSummaryWithoutIDs(t *testing.T) {
	api, svc := newAdminFixture(t)
	api.EXPECT().AdminCandidates(gomock.Any(), gomock.Any()).Return(nil, nil)
	api.EXPECT().VoteSummary(gomock.Any(), gomock.Any()).Return([]election.TallyEntry{
		{Name: "Asha", VoteCount: 3}, {Name: "Ravi", VoteCount: 5},
	}, nil)

	ov, err := svc.Overview(context.Background())
	require.NoError(t, err)
	w, ok := ov.Votes.Winner()
	require.True(t, ok)
	assert.Equal(t, "Ravi", w.Name)
	assert.Equal(t, int64(8), ov.Votes.TotalVotes())
}

func TestAdminService_OverviewDegrades(t *testing.T) {
	api, svc := newAdminFixture(t)
	api.EXPECT().AdminCandidates(gomock.Any(), gomock.Any()).Return(nil, apperrors.Rejected(500, "boom"))
	api.EXPECT().VoteSummary(gomock.Any(), gomock.Any()).Return(nil, apperrors.Unavailable(nil))

	ov, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Zero(t, ov.CandidateCount())
	assert.NotNil(t, ov.Candidates)
	assert.True(t, ov.Votes.Pending())
}

func TestAdminService_CandidatesSearch(t *testing.T) {
	api, svc := newAdminFixture(t)
	api.EXPECT().AdminCandidates(gomock.Any(), gomock.Any()).Return([]election.Candidate{
		testutil.NewCandidate(1, "Asha").WithPromises("Free WiFi").Build(),
		testutil.NewCandidate(2, "Ravi").WithDescription("Cultural secretary").Build(),
	}, nil).Times(2)

	got, err := svc.Candidates(context.Background(), "wifi")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Asha", got[0].Name)

	got, err = svc.Candidates(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestAdminService_AddUser(t *testing.T) {
	api, svc := newAdminFixture(t)
	api.EXPECT().RegisterUser(gomock.Any(), "admin-tok", election.NewUser{
		Username: "student2", Password: "pw", Role: domainauth.RoleUser, FullName: "Student Two",
	}).Return(nil)

	require.NoError(t, svc.AddUser(context.Background(), election.NewUser{
		Username: " student2", Password: "pw", FullName: "Student Two",
	}))
}

func TestAdminService_AddUserConflictKeepsCode(t *testing.T) {
	api, svc := newAdminFixture(t)
	api.EXPECT().RegisterUser(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(apperrors.FromResponse(409, []byte("Username already exists")))

	err := svc.AddUser(context.Background(), election.NewUser{Username: "admin", Password: "x", FullName: "A"})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "Username already exists")
	assert.Contains(t, err.Error(), "failed to add user admin")
}

func TestAdminService_InvalidInputMakesNoCall(t *testing.T) {
	_, svc := newAdminFixture(t)
	ctx := context.Background()

	assert.True(t, apperrors.IsValidation(svc.AddUser(ctx, election.NewUser{})))
	assert.True(t, apperrors.IsValidation(svc.AddCandidate(ctx, election.CandidateInput{})))
	assert.True(t, apperrors.IsValidation(svc.EditCandidate(ctx, "", election.CandidateInput{Name: "x"})))
	assert.True(t, apperrors.IsValidation(svc.DeleteCandidate(ctx, " ")))
}

func TestAdminService_CandidateLifecycle(t *testing.T) {
	api, svc := newAdminFixture(t)
	ctx := context.Background()

	api.EXPECT().AddCandidate(gomock.Any(), "admin-tok", election.CandidateInput{
		Name: "Meena", Promises: election.ParsePromises("Hot water\n\n  Late mess  \n"),
	}).Return(nil)
	api.EXPECT().UpdateCandidate(gomock.Any(), "admin-tok", election.CandidateID("3"), gomock.Any()).Return(nil)
	api.EXPECT().DeleteCandidate(gomock.Any(), "admin-tok", election.CandidateID("3")).
		Return(apperrors.FromResponse(404, []byte("Candidate not found")))

	require.NoError(t, svc.AddCandidate(ctx, election.CandidateInput{
		Name: "Meena", Promises: election.ParsePromises("Hot water\n\n  Late mess  \n"),
	}))
	require.NoError(t, svc.EditCandidate(ctx, "3", election.CandidateInput{Name: "Meena K"}))
	assert.True(t, apperrors.IsNotFound(svc.DeleteCandidate(ctx, "3")))
}

func TestAdminService_SignedOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewAdminService(AdminServiceOptions{
		API:      mocks.NewMockElectionAPI(ctrl),
		Sessions: mockauth.NewMemorySessionStore(),
	})
	_, err := svc.Overview(context.Background())
	assert.True(t, apperrors.IsUnauthenticated(err))
}
