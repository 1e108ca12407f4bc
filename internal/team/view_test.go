package team

import (
	"context"
	"errors"
	"testing"

	"github.com/anonto42/travel-match/gateway/internal/apiclient"
	"github.com/anonto42/travel-match/gateway/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	team  apiclient.Result[models.TeamDetail]
	post  apiclient.Result[models.CompanionPostDetail]
	route apiclient.Result[models.PlanResponse]

	routeID int64
}

func (f *fakeAPI) Team(context.Context, int64) apiclient.Result[models.TeamDetail] { return f.team }
func (f *fakeAPI) CompanionPost(context.Context, int64) apiclient.Result[models.CompanionPostDetail] {
	return f.post
}
func (f *fakeAPI) Route(_ context.Context, id int64) apiclient.Result[models.PlanResponse] {
	f.routeID = id
	return f.route
}

func intp(n int) *int       { return &n }
func int64p(n int64) *int64 { return &n }

func members() []models.TeamMemberItem {
	return []models.TeamMemberItem{
		{UserID: 1, Role: RoleLeader},
		{UserID: 2, Role: "member"},
	}
}

func TestLoadFallsBackToPostPlanAndCap(t *testing.T) {
	post := models.CompanionPostDetail{}
	post.ID = 7
	post.MaxPeople = intp(2)
	post.RelatedPlanID = int64p(30)
	api := &fakeAPI{
		team:  apiclient.Ok(models.TeamDetail{ID: 1, PostID: int64p(7), Members: members()}),
		post:  apiclient.Ok(post),
		route: apiclient.Ok(models.PlanResponse{ID: 30}),
	}
	v := New(api)
	require.NoError(t, v.Load(context.Background(), 1))

	assert.Equal(t, int64(30), api.routeID)
	assert.Equal(t, 2, v.MemberCount())
	assert.Equal(t, 2, v.MaxMembers())
	assert.True(t, v.IsFull())
	assert.True(t, v.IsLeader(1))
	assert.False(t, v.IsLeader(2))
	assert.True(t, v.IsMember(2))
	assert.False(t, v.IsMember(3))
	assert.False(t, v.IsMember(0))

	snap := v.Snapshot(2)
	require.NotNil(t, snap.Plan)
	assert.True(t, snap.IsMember)
	assert.False(t, snap.IsLeader)
}

func TestTeamCapWinsAndNoCapIsNeverFull(t *testing.T) {
	api := &fakeAPI{team: apiclient.Ok(models.TeamDetail{ID: 1, MaxPeople: intp(5), Members: members()})}
	v := New(api)
	require.NoError(t, v.Load(context.Background(), 1))
	assert.Equal(t, 5, v.MaxMembers())
	assert.False(t, v.IsFull())

	api.team = apiclient.Ok(models.TeamDetail{ID: 1, Members: members()})
	require.NoError(t, v.Load(context.Background(), 1))
	assert.Equal(t, 0, v.MaxMembers())
	assert.False(t, v.IsFull())
}

func TestOptionalPartsSoftFail(t *testing.T) {
	api := &fakeAPI{
		team:  apiclient.Ok(models.TeamDetail{ID: 1, PostID: int64p(7), RelatedPlanID: int64p(9)}),
		post:  apiclient.Fail[models.CompanionPostDetail](errors.New("gone")),
		route: apiclient.Fail[models.PlanResponse](errors.New("gone")),
	}
	v := New(api)
	require.NoError(t, v.Load(context.Background(), 1))
	snap := v.Snapshot(0)
	assert.NotNil(t, snap.Team)
	assert.Nil(t, snap.Post)
	assert.Nil(t, snap.Plan)
}

func TestLoadFailureKeepsPreviousAndReset(t *testing.T) {
	api := &fakeAPI{team: apiclient.Ok(models.TeamDetail{ID: 1, Members: members()})}
	v := New(api)
	require.NoError(t, v.Load(context.Background(), 1))

	api.team = apiclient.Fail[models.TeamDetail](&apiclient.APIError{Code: 404, Message: "no team"})
	require.Error(t, v.Load(context.Background(), 2))
	assert.Equal(t, 2, v.MemberCount())

	v.Reset()
	assert.Equal(t, 0, v.MemberCount())
	assert.Nil(t, v.Snapshot(1).Team)
}
