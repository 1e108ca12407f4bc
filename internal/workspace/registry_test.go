package workspace

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/travel-match/gateway/internal/models"
	"github.com/anonto42/travel-match/gateway/internal/repositories"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu    sync.Mutex
	calls [][2]int64
}

func (n *recordingNotifier) UnreadChanged(_ context.Context, userID int64, total int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, [2]int64{userID, int64(total)})
	return nil
}

func (n *recordingNotifier) seen() [][2]int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([][2]int64(nil), n.calls...)
}

func newRegistry(t *testing.T, upstream string, repo *repositories.MemorySessionRepository, n *recordingNotifier) *Registry {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return NewRegistry(Deps{
		UpstreamBaseURL: upstream,
		Sessions:        repo,
		Notifier:        n,
		IDs:             node,
	}, 8, time.Minute)
}

func TestGetBuildsOnceAndRestores(t *testing.T) {
	repo := repositories.NewMemorySessionRepository()
	uid := int64(7)
	require.NoError(t, repo.Save(context.Background(), &models.SessionRecord{Key: "k1", Token: "tok", UserID: &uid}))
	r := newRegistry(t, "http://127.0.0.1:1", repo, &recordingNotifier{})

	var wg sync.WaitGroup
	got := make([]*Workspace, 10)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ws, err := r.Get(context.Background(), "k1")
			assert.NoError(t, err)
			got[i] = ws
		}(i)
	}
	wg.Wait()
	for _, ws := range got {
		assert.Same(t, got[0], ws)
	}
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, "tok", got[0].Session.Token())

	r.Drop("k1")
	assert.Equal(t, 0, r.Len())
}

func TestUnauthorizedUpstreamClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	repo := repositories.NewMemorySessionRepository()
	uid := int64(7)
	require.NoError(t, repo.Save(context.Background(), &models.SessionRecord{Key: "k2", Token: "tok", UserID: &uid}))
	r := newRegistry(t, srv.URL, repo, &recordingNotifier{})

	ws, err := r.Get(context.Background(), "k2")
	require.NoError(t, err)
	require.Error(t, ws.Inbox.FetchOverview(context.Background()))
	assert.Equal(t, "", ws.Session.Token())
	assert.Equal(t, 0, repo.Len())
	assert.Equal(t, 0, r.Len())
}

func TestSignOutReplacesWorkspace(t *testing.T) {
	repo := repositories.NewMemorySessionRepository()
	uid := int64(7)
	require.NoError(t, repo.Save(context.Background(), &models.SessionRecord{Key: "k4", Token: "tok", UserID: &uid}))
	r := newRegistry(t, "http://127.0.0.1:1", repo, &recordingNotifier{})
	ctx := context.Background()

	old, err := r.Get(ctx, "k4")
	require.NoError(t, err)
	old.Planner.AddDestination("Lhasa")
	require.NoError(t, old.Session.Logout(ctx))
	assert.Equal(t, 0, r.Len())

	fresh, err := r.Get(ctx, "k4")
	require.NoError(t, err)
	assert.NotSame(t, old, fresh)
	assert.False(t, fresh.Session.HasValidSession())
	assert.NotContains(t, fresh.Planner.Form().Destinations, "Lhasa")

	// a late sign-out of the discarded workspace leaves the new one cached
	require.NoError(t, old.Session.ClearAuth(ctx))
	again, err := r.Get(ctx, "k4")
	require.NoError(t, err)
	assert.Same(t, fresh, again)
}

func TestUnreadChangesArePushed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":0,"message":"ok","data":{"totalUnread":4}}`))
	}))
	defer srv.Close()

	repo := repositories.NewMemorySessionRepository()
	uid := int64(9)
	require.NoError(t, repo.Save(context.Background(), &models.SessionRecord{Key: "k3", Token: "tok", UserID: &uid}))
	n := &recordingNotifier{}
	r := newRegistry(t, srv.URL, repo, n)

	ws, err := r.Get(context.Background(), "k3")
	require.NoError(t, err)
	require.NoError(t, ws.Inbox.FetchOverview(context.Background()))
	assert.Eventually(t, func() bool { return len(n.seen()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, [][2]int64{{9, 4}}, n.seen())
}
