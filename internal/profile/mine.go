// Package profile holds the signed-in user's own profile page and the public
// homepages of other users.
package profile

import (
	"context"
	"fmt"
	"sync"

	"github.com/anonto42/travel-match/gateway/internal/apiclient"
	"github.com/anonto42/travel-match/gateway/internal/models"
	"github.com/anonto42/travel-match/gateway/internal/session"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type MineAPI interface {
	MeDetail(ctx context.Context) apiclient.Result[models.MeDetail]
	MyRoutes(ctx context.Context) apiclient.Result[[]models.PlanResponse]
	MyCompanionPosts(ctx context.Context) apiclient.Result[[]models.CompanionPostSummary]
	Feeds(ctx context.Context) apiclient.Result[[]models.FeedItem]
	UserNotes(ctx context.Context, userID int64) apiclient.Result[[]models.NoteSummary]
	MyFavorites(ctx context.Context) apiclient.Result[[]models.FavoriteTarget]
}

var reputationThresholds = []int{0, 100, 300, 600, 1000}

// ReputationProgress is the percentage towards the next level. Level 4 and
// above is always complete.
func ReputationProgress(score, level *int) float64 {
	s, l := 0, 1
	if score != nil {
		s = *score
	}
	if level != nil {
		l = *level
	}
	if l > 4 {
		l = 4
	}
	if l < 0 {
		l = 0
	}
	if l >= 4 {
		return 100
	}
	base, next := reputationThresholds[l], reputationThresholds[l+1]
	p := float64(s-base) / float64(next-base) * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// Mine is the "my profile" page. Tab lists are loaded best effort.
type Mine struct {
	api MineAPI

	mu         sync.RWMutex
	me         *models.MeDetail
	routes     []models.PlanResponse
	companions []models.CompanionPostSummary
	feeds      []models.FeedItem
	notes      []models.NoteSummary
	favorites  []models.FavoriteItem
}

func NewMine(api MineAPI) *Mine {
	return &Mine{api: api}
}

func soft[T any](what string, r apiclient.Result[[]T]) []T {
	v, err := r.Get()
	if err != nil {
		log.Warn().Err(err).Str("list", what).Msg("Profile list unavailable")
		return []T{}
	}
	return v
}

// Load fetches the profile and then every tab concurrently. Only a failing
// profile fetch is an error.
func (m *Mine) Load(ctx context.Context) error {
	me, err := m.api.MeDetail(ctx).Get()
	if err != nil {
		return fmt.Errorf("load my profile: %w", err)
	}

	var (
		g          errgroup.Group
		routes     []models.PlanResponse
		companions []models.CompanionPostSummary
		feeds      []models.FeedItem
		notes      []models.NoteSummary
		favorites  []models.FavoriteTarget
	)
	g.Go(func() error { routes = soft("routes", m.api.MyRoutes(ctx)); return nil })
	g.Go(func() error { companions = soft("companions", m.api.MyCompanionPosts(ctx)); return nil })
	g.Go(func() error { feeds = soft("feeds", m.api.Feeds(ctx)); return nil })
	g.Go(func() error { notes = soft("notes", m.api.UserNotes(ctx, me.ID)); return nil })
	g.Go(func() error { favorites = soft("favorites", m.api.MyFavorites(ctx)); return nil })
	_ = g.Wait()

	mine := make([]models.FeedItem, 0, len(feeds))
	for _, f := range feeds {
		if f.AuthorID != nil && *f.AuthorID == me.ID {
			mine = append(mine, f)
		}
	}
	favs := make([]models.FavoriteItem, len(favorites))
	for i, f := range favorites {
		favs[i] = models.FavoriteItem{Type: f.TargetType, ID: f.TargetID}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.me = &me
	m.routes = routes
	m.companions = companions
	m.feeds = mine
	m.notes = notes
	m.favorites = favs
	return nil
}

type MineView struct {
	Me                 *models.MeDetail              `json:"me"`
	ReputationLabel    string                        `json:"reputationLabel"`
	ReputationProgress float64                       `json:"reputationProgress"`
	Routes             []models.PlanResponse         `json:"routes"`
	Companions         []models.CompanionPostSummary `json:"companions"`
	Feeds              []models.FeedItem             `json:"feeds"`
	Notes              []models.NoteSummary          `json:"notes"`
	Favorites          []models.FavoriteItem         `json:"favorites"`
}

func (m *Mine) View() MineView {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v := MineView{
		Me:         m.me,
		Routes:     append([]models.PlanResponse{}, m.routes...),
		Companions: append([]models.CompanionPostSummary{}, m.companions...),
		Feeds:      append([]models.FeedItem{}, m.feeds...),
		Notes:      append([]models.NoteSummary{}, m.notes...),
		Favorites:  append([]models.FavoriteItem{}, m.favorites...),
	}
	var score, level *int
	if m.me != nil {
		score, level = m.me.ReputationScore, m.me.ReputationLevel
	}
	v.ReputationLabel = session.ReputationLabel(level)
	v.ReputationProgress = ReputationProgress(score, level)
	return v
}

func (m *Mine) RemoveFavorite(kind string, id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.favorites[:0]
	for _, f := range m.favorites {
		if f.Type != kind || f.ID != id {
			out = append(out, f)
		}
	}
	m.favorites = out
}

func (m *Mine) RemoveFeed(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.feeds[:0]
	for _, f := range m.feeds {
		if f.ID != id {
			out = append(out, f)
		}
	}
	m.feeds = out
}

func (m *Mine) RemoveNote(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.notes[:0]
	for _, n := range m.notes {
		if n.ID != id {
			out = append(out, n)
		}
	}
	m.notes = out
}
