package inbox

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
	overview      apiclient.Result[models.MessageOverview]
	interactions  map[int]apiclient.Result[models.PageResult[models.InteractionMessageDTO]]
	conversations map[int]apiclient.Result[models.PageResult[models.ConversationSummaryDTO]]
	markErr       error
	markAllErr    error
	clearErr      error
	deleteErr     error

	lastCategory string
	markCalls    int
}

func (f *fakeAPI) Overview(context.Context) apiclient.Result[models.MessageOverview] {
	return f.overview
}

func (f *fakeAPI) InteractionList(_ context.Context, page, _ int, category string) apiclient.Result[models.PageResult[models.InteractionMessageDTO]] {
	f.lastCategory = category
	if r, ok := f.interactions[page]; ok {
		return r
	}
	return apiclient.Ok(models.PageResult[models.InteractionMessageDTO]{Page: page})
}

func (f *fakeAPI) ConversationList(_ context.Context, page, _ int) apiclient.Result[models.PageResult[models.ConversationSummaryDTO]] {
	if r, ok := f.conversations[page]; ok {
		return r
	}
	return apiclient.Ok(models.PageResult[models.ConversationSummaryDTO]{Page: page})
}

func (f *fakeAPI) MarkInteractionRead(context.Context, int64) apiclient.Result[apiclient.Empty] {
	f.markCalls++
	return emptyResult(f.markErr)
}

func (f *fakeAPI) MarkAllInteractionRead(context.Context) apiclient.Result[apiclient.Empty] {
	return emptyResult(f.markAllErr)
}

func (f *fakeAPI) ClearConversationUnread(context.Context, int64) apiclient.Result[apiclient.Empty] {
	return emptyResult(f.clearErr)
}

func (f *fakeAPI) DeleteConversation(context.Context, int64) apiclient.Result[apiclient.Empty] {
	return emptyResult(f.deleteErr)
}

func emptyResult(err error) apiclient.Result[apiclient.Empty] {
	if err != nil {
		return apiclient.Fail[apiclient.Empty](err)
	}
	return apiclient.Ok(apiclient.Empty{})
}

func interactionPage(total int, msgs ...models.InteractionMessageDTO) apiclient.Result[models.PageResult[models.InteractionMessageDTO]] {
	return apiclient.Ok(models.PageResult[models.InteractionMessageDTO]{List: msgs, Total: total})
}

func conversationPage(total int, convs ...models.ConversationSummaryDTO) apiclient.Result[models.PageResult[models.ConversationSummaryDTO]] {
	return apiclient.Ok(models.PageResult[models.ConversationSummaryDTO]{List: convs, Total: total})
}

func unread(id int64) models.InteractionMessageDTO {
	return models.InteractionMessageDTO{ID: id, Type: "like", TargetType: "note"}
}

func interactionIDs(p Page[models.InteractionMessageDTO]) []int64 {
	out := make([]int64, len(p.List))
	for i, m := range p.List {
		out[i] = m.ID
	}
	return out
}

func TestFetchOverviewSetsCounterOnly(t *testing.T) {
	api := &fakeAPI{overview: apiclient.Ok(models.MessageOverview{TotalUnread: 9})}
	s := New(api)

	require.NoError(t, s.FetchOverview(context.Background()))
	assert.Equal(t, 9, s.TotalUnread())
	assert.Empty(t, s.Interactions().List)
	assert.Equal(t, StateIdle, s.Interactions().State)
}

func TestFetchInteractionsNormalizesCase(t *testing.T) {
	api := &fakeAPI{interactions: map[int]apiclient.Result[models.PageResult[models.InteractionMessageDTO]]{
		1: interactionPage(2,
			models.InteractionMessageDTO{ID: 1, Type: "like", TargetType: "note"},
			models.InteractionMessageDTO{ID: 2, Type: "Comment", TargetType: "route", Read: true},
		),
	}}
	s := New(api)

	require.NoError(t, s.FetchInteractionMessages(context.Background(), "all"))
	page := s.Interactions()
	require.Len(t, page.List, 2)
	assert.Equal(t, "LIKE", page.List[0].Type)
	assert.Equal(t, "NOTE", page.List[0].TargetType)
	assert.Equal(t, "COMMENT", page.List[1].Type)
	assert.Equal(t, "ROUTE", page.List[1].TargetType)
	assert.Equal(t, StateReady, page.State)
	assert.Equal(t, "all", api.lastCategory)
	assert.Equal(t, 1, s.TotalUnread())
}

func TestPageOneReplacesLaterPagesAppend(t *testing.T) {
	api := &fakeAPI{interactions: map[int]apiclient.Result[models.PageResult[models.InteractionMessageDTO]]{
		1: interactionPage(4, unread(1), unread(2)),
		2: interactionPage(4, unread(2), unread(3), unread(4)),
	}}
	s := New(api)
	ctx := context.Background()

	require.NoError(t, s.FetchInteractionMessages(ctx, "all"))
	assert.True(t, s.HasMoreInteractions())

	require.NoError(t, s.NextInteractionPage(ctx, "all"))
	assert.Equal(t, []int64{1, 2, 3, 4}, interactionIDs(s.Interactions()))
	assert.False(t, s.HasMoreInteractions())

	api.interactions[1] = interactionPage(1, unread(9))
	s.SetInteractionPage(1, 0)
	require.NoError(t, s.FetchInteractionMessages(ctx, "all"))
	assert.Equal(t, []int64{9}, interactionIDs(s.Interactions()))
}

func TestFailedNextPageRestoresPage(t *testing.T) {
	api := &fakeAPI{interactions: map[int]apiclient.Result[models.PageResult[models.InteractionMessageDTO]]{
		1: interactionPage(4, unread(1), unread(2)),
		2: apiclient.Fail[models.PageResult[models.InteractionMessageDTO]](errors.New("timeout")),
	}}
	s := New(api)
	ctx := context.Background()

	require.NoError(t, s.FetchInteractionMessages(ctx, "all"))
	require.Error(t, s.NextInteractionPage(ctx, "all"))

	page := s.Interactions()
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, StateReady, page.State)
	assert.Equal(t, []int64{1, 2}, interactionIDs(page))
}

func TestMarkInteractionReadDecrementsOnce(t *testing.T) {
	api := &fakeAPI{interactions: map[int]apiclient.Result[models.PageResult[models.InteractionMessageDTO]]{
		1: interactionPage(2, unread(1), unread(2)),
	}}
	s := New(api)
	ctx := context.Background()
	require.NoError(t, s.FetchInteractionMessages(ctx, "all"))
	require.Equal(t, 2, s.TotalUnread())

	require.NoError(t, s.MarkInteractionRead(ctx, 1))
	assert.Equal(t, 1, s.TotalUnread())
	assert.True(t, s.Interactions().List[0].Read)
	assert.False(t, s.Interactions().List[1].Read)

	require.NoError(t, s.MarkInteractionRead(ctx, 1))
	assert.Equal(t, 1, s.TotalUnread())
	assert.Equal(t, 2, api.markCalls)
}

func TestMarkInteractionReadFailureChangesNothing(t *testing.T) {
	api := &fakeAPI{
		interactions: map[int]apiclient.Result[models.PageResult[models.InteractionMessageDTO]]{
			1: interactionPage(1, unread(1)),
		},
		markErr: &apiclient.APIError{Code: 500, Message: "nope"},
	}
	s := New(api)
	ctx := context.Background()
	require.NoError(t, s.FetchInteractionMessages(ctx, "all"))

	err := s.MarkInteractionRead(ctx, 1)
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.False(t, s.Interactions().List[0].Read)
	assert.Equal(t, 1, s.TotalUnread())
}

func TestMarkAllInteractionRead(t *testing.T) {
	api := &fakeAPI{
		interactions: map[int]apiclient.Result[models.PageResult[models.InteractionMessageDTO]]{
			1: interactionPage(3, unread(1), unread(2), unread(3)),
		},
		conversations: map[int]apiclient.Result[models.PageResult[models.ConversationSummaryDTO]]{
			1: conversationPage(2,
				models.ConversationSummaryDTO{ID: 10, UnreadCount: 2},
				models.ConversationSummaryDTO{ID: 11, UnreadCount: 1},
			),
		},
	}
	s := New(api)
	ctx := context.Background()
	require.NoError(t, s.FetchInteractionMessages(ctx, "all"))
	require.NoError(t, s.FetchConversations(ctx))
	require.Equal(t, 6, s.TotalUnread())

	require.NoError(t, s.MarkAllInteractionRead(ctx))
	for _, m := range s.Interactions().List {
		assert.True(t, m.Read)
	}
	assert.Equal(t, 3, s.TotalUnread())
	assert.Equal(t, Counts{TotalUnread: 3, InteractionUnread: 0, PrivateUnread: 3}, s.Counts())
}

func TestMarkAllFailureIsolated(t *testing.T) {
	api := &fakeAPI{
		interactions: map[int]apiclient.Result[models.PageResult[models.InteractionMessageDTO]]{
			1: interactionPage(2, unread(1), unread(2)),
		},
		markAllErr: errors.New("connection reset"),
	}
	s := New(api)
	ctx := context.Background()
	require.NoError(t, s.FetchInteractionMessages(ctx, "all"))

	require.Error(t, s.MarkAllInteractionRead(ctx))
	for _, m := range s.Interactions().List {
		assert.False(t, m.Read)
	}
	assert.Equal(t, 2, s.TotalUnread())
}

func TestClearConversationUnread(t *testing.T) {
	api := &fakeAPI{
		overview: apiclient.Ok(models.MessageOverview{TotalUnread: 5}),
		conversations: map[int]apiclient.Result[models.PageResult[models.ConversationSummaryDTO]]{
			1: conversationPage(1, models.ConversationSummaryDTO{ID: 10, PeerUserID: 3, UnreadCount: 3}),
		},
	}
	s := New(api)
	ctx := context.Background()
	require.NoError(t, s.FetchConversations(ctx))
	require.NoError(t, s.FetchOverview(ctx))
	require.Equal(t, 5, s.TotalUnread())

	require.NoError(t, s.ClearConversationUnread(ctx, 10))
	assert.Equal(t, 0, s.Conversations().List[0].UnreadCount)
	assert.Equal(t, 2, s.TotalUnread())
}

func TestClearConversationFailureChangesNothing(t *testing.T) {
	api := &fakeAPI{
		conversations: map[int]apiclient.Result[models.PageResult[models.ConversationSummaryDTO]]{
			1: conversationPage(1, models.ConversationSummaryDTO{ID: 10, UnreadCount: 3}),
		},
		clearErr: errors.New("down"),
	}
	s := New(api)
	ctx := context.Background()
	require.NoError(t, s.FetchConversations(ctx))

	require.Error(t, s.ClearConversationUnread(ctx, 10))
	assert.Equal(t, 3, s.Conversations().List[0].UnreadCount)
	assert.Equal(t, 3, s.TotalUnread())
}

func TestCounterNeverNegative(t *testing.T) {
	api := &fakeAPI{
		overview: apiclient.Ok(models.MessageOverview{TotalUnread: 1}),
		interactions: map[int]apiclient.Result[models.PageResult[models.InteractionMessageDTO]]{
			1: interactionPage(2, unread(1), unread(2)),
		},
		conversations: map[int]apiclient.Result[models.PageResult[models.ConversationSummaryDTO]]{
			1: conversationPage(1, models.ConversationSummaryDTO{ID: 10, UnreadCount: 4}),
		},
	}
	s := New(api)
	ctx := context.Background()

	require.NoError(t, s.FetchInteractionMessages(ctx, "all"))
	require.NoError(t, s.FetchConversations(ctx))
	// server says less than the lists imply
	require.NoError(t, s.FetchOverview(ctx))

	steps := []func() error{
		func() error { return s.ClearConversationUnread(ctx, 10) },
		func() error { return s.MarkInteractionRead(ctx, 1) },
		func() error { return s.MarkInteractionRead(ctx, 2) },
		func() error { return s.MarkAllInteractionRead(ctx) },
		func() error { return s.ClearConversationUnread(ctx, 10) },
	}
	for _, step := range steps {
		require.NoError(t, step())
		assert.GreaterOrEqual(t, s.TotalUnread(), 0)
	}
	assert.Equal(t, 0, s.TotalUnread())
}

func TestObserverSeesChanges(t *testing.T) {
	api := &fakeAPI{overview: apiclient.Ok(models.MessageOverview{TotalUnread: 4})}
	s := New(api)
	var seen []int
	s.OnUnreadChange(func(total int) { seen = append(seen, total) })

	ctx := context.Background()
	require.NoError(t, s.FetchOverview(ctx))
	require.NoError(t, s.FetchOverview(ctx))
	assert.Equal(t, []int{4}, seen)
}

func TestDeleteConversation(t *testing.T) {
	api := &fakeAPI{
		conversations: map[int]apiclient.Result[models.PageResult[models.ConversationSummaryDTO]]{
			1: conversationPage(2,
				models.ConversationSummaryDTO{ID: 10, PeerUserID: 3, UnreadCount: 3},
				models.ConversationSummaryDTO{ID: 11, PeerUserID: 4, UnreadCount: 1},
			),
		},
	}
	s := New(api)
	ctx := context.Background()
	require.NoError(t, s.FetchConversations(ctx))
	require.Equal(t, 4, s.TotalUnread())

	api.deleteErr = errors.New("boom")
	require.Error(t, s.DeleteConversation(ctx, 10))
	assert.Len(t, s.Conversations().List, 2)
	assert.Equal(t, 4, s.TotalUnread())

	api.deleteErr = nil
	require.NoError(t, s.DeleteConversation(ctx, 10))
	page := s.Conversations()
	require.Len(t, page.List, 1)
	assert.Equal(t, int64(11), page.List[0].ID)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 1, s.TotalUnread())
}

func TestMarkPeerReadIsLocal(t *testing.T) {
	api := &fakeAPI{
		conversations: map[int]apiclient.Result[models.PageResult[models.ConversationSummaryDTO]]{
			1: conversationPage(2,
				models.ConversationSummaryDTO{ID: 10, PeerUserID: 3, UnreadCount: 3},
				models.ConversationSummaryDTO{ID: 11, PeerUserID: 4, UnreadCount: 1},
			),
		},
	}
	s := New(api)
	var seen []int
	s.OnUnreadChange(func(total int) { seen = append(seen, total) })
	require.NoError(t, s.FetchConversations(context.Background()))
	require.Equal(t, 4, s.TotalUnread())

	s.MarkPeerRead(3)
	assert.Equal(t, 1, s.TotalUnread())
	assert.Equal(t, 0, s.Conversations().List[0].UnreadCount)

	s.MarkPeerRead(3)
	s.MarkPeerRead(99)
	assert.Equal(t, 1, s.TotalUnread())
	assert.Equal(t, []int{4, 1}, seen)
}
