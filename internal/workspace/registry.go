// Package workspace keeps one set of stores per browser session.
package workspace

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/anonto42/travel-match/gateway/internal/apiclient"
	"github.com/anonto42/travel-match/gateway/internal/chat"
	"github.com/anonto42/travel-match/gateway/internal/feed"
	"github.com/anonto42/travel-match/gateway/internal/inbox"
	"github.com/anonto42/travel-match/gateway/internal/metrics"
	"github.com/anonto42/travel-match/gateway/internal/notify"
	"github.com/anonto42/travel-match/gateway/internal/planner"
	"github.com/anonto42/travel-match/gateway/internal/profile"
	"github.com/anonto42/travel-match/gateway/internal/session"
	"github.com/anonto42/travel-match/gateway/internal/team"
	"github.com/bwmarrin/snowflake"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Workspace is everything the UI of one browser session reads and mutates.
type Workspace struct {
	Key     string
	Session *session.Store
	Client  *apiclient.Client
	Feed    *feed.Store
	Inbox   *inbox.Store
	Chat    *chat.Store
	Mine    *profile.Mine
	Public  *profile.Public
	Team    *team.View
	Planner *planner.Store
}

// badgePushTimeout bounds one unread badge push.
const badgePushTimeout = 5 * time.Second

// Deps are shared by every workspace.
type Deps struct {
	UpstreamBaseURL string
	HTTPClient      *http.Client
	Sessions        session.Repository
	Notifier        notify.Notifier
	IDs             *snowflake.Node
}

type Registry struct {
	deps   Deps
	cache  *lru.LRU[string, *Workspace]
	builds singleflight.Group
}

// NewRegistry holds at most size workspaces; each expires ttl after it was
// built. Expiry only drops memory, the session record stays persisted.
func NewRegistry(deps Deps, size int, ttl time.Duration) *Registry {
	if deps.Notifier == nil {
		deps.Notifier = notify.Noop{}
	}
	if deps.HTTPClient == nil {
		deps.HTTPClient = apiclient.NewHTTPClient(15 * time.Second)
	}
	return &Registry{
		deps:  deps,
		cache: lru.NewLRU[string, *Workspace](size, nil, ttl),
	}
}

// Get returns the workspace for key, building and restoring it on first use.
// Concurrent first requests for one key share a single build.
func (r *Registry) Get(ctx context.Context, key string) (*Workspace, error) {
	if ws, ok := r.cache.Get(key); ok {
		return ws, nil
	}
	v, err, _ := r.builds.Do(key, func() (any, error) {
		if ws, ok := r.cache.Get(key); ok {
			return ws, nil
		}
		ws, err := r.build(ctx, key)
		if err != nil {
			return nil, err
		}
		r.cache.Add(key, ws)
		metrics.SetWorkspaces(r.cache.Len())
		return ws, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Workspace), nil
}

func (r *Registry) Drop(key string) {
	r.cache.Remove(key)
	metrics.SetWorkspaces(r.cache.Len())
}

// evict drops ws only while it is still the workspace cached under key, so a
// late sign-out never removes a newer one.
func (r *Registry) evict(key string, ws *Workspace) {
	if cur, ok := r.cache.Peek(key); ok && cur == ws {
		r.cache.Remove(key)
	}
	metrics.SetWorkspaces(r.cache.Len())
}

func (r *Registry) Len() int {
	return r.cache.Len()
}

func (r *Registry) build(ctx context.Context, key string) (*Workspace, error) {
	sess := session.New(key, r.deps.Sessions)
	if err := sess.Restore(ctx); err != nil {
		return nil, fmt.Errorf("build workspace: %w", err)
	}

	client := apiclient.New(r.deps.UpstreamBaseURL,
		apiclient.WithHTTPClient(r.deps.HTTPClient),
		apiclient.WithTokenSource(sess),
		apiclient.WithAuthFailureHandler(func() {
			if err := sess.ClearAuth(context.Background()); err != nil {
				log.Error().Err(err).Str("session", key).Msg("Failed to clear rejected session")
			}
		}),
	)

	box := inbox.New(client)
	badges := notify.NewBackground(r.deps.Notifier, badgePushTimeout)
	box.OnUnreadChange(func(total int) {
		if uid, ok := sess.UserID(); ok {
			badges.Push(uid, total)
		}
	})

	talk := chat.New(client, r.deps.IDs)
	talk.OnPeerRead(box.MarkPeerRead)

	ws := &Workspace{
		Key:     key,
		Session: sess,
		Client:  client,
		Feed:    feed.NewStore(client, sess),
		Inbox:   box,
		Chat:    talk,
		Mine:    profile.NewMine(client),
		Public:  profile.NewPublic(client, sess),
		Team:    team.New(client),
		Planner: planner.New(client),
	}
	// Signing out discards every store; the next request rebuilds from the
	// persisted session.
	sess.OnSignOut(func() { r.evict(key, ws) })
	return ws, nil
}
