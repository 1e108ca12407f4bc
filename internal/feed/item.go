// Package feed merges notes, check-in posts, companion posts and routes into
// one dynamic stream and keeps the community page state.
package feed

import (
	"time"

	"github.com/anonto42/travel-match/gateway/internal/models"
	"github.com/anonto42/travel-match/gateway/internal/timeutil"
)

type Kind string

const (
	KindNote      Kind = "note"
	KindRoute     Kind = "route"
	KindCompanion Kind = "companion"
	KindFeed      Kind = "feed"
)

// Item is one entry of the unified stream. Exactly one payload matching Type
// is set; IDs are only unique within a Type.
type Item struct {
	Type            Kind   `json:"type"`
	ID              int64  `json:"id"`
	CreatedAt       string `json:"createdAt"`
	HotScore        *int   `json:"hotScore,omitempty"`
	AuthorID        *int64 `json:"authorId,omitempty"`
	AuthorName      string `json:"authorName,omitempty"`
	AuthorAvatar    string `json:"authorAvatar,omitempty"`
	ReputationLevel *int   `json:"reputationLevel,omitempty"`

	Note      *models.NoteSummary          `json:"note,omitempty"`
	Route     *models.PlanResponse         `json:"route,omitempty"`
	Companion *models.CompanionPostSummary `json:"companion,omitempty"`
	Feed      *models.FeedItem             `json:"feed,omitempty"`

	// set on locally published feed posts until the upstream answers
	LocalID string `json:"localId,omitempty"`
	Pending bool   `json:"pending,omitempty"`
	Failed  bool   `json:"failed,omitempty"`
}

func (i Item) AsNote() (*models.NoteSummary, bool) {
	if i.Type != KindNote || i.Note == nil {
		return nil, false
	}
	return i.Note, true
}

func (i Item) AsRoute() (*models.PlanResponse, bool) {
	if i.Type != KindRoute || i.Route == nil {
		return nil, false
	}
	return i.Route, true
}

func (i Item) AsCompanion() (*models.CompanionPostSummary, bool) {
	if i.Type != KindCompanion || i.Companion == nil {
		return nil, false
	}
	return i.Companion, true
}

func (i Item) AsFeed() (*models.FeedItem, bool) {
	if i.Type != KindFeed || i.Feed == nil {
		return nil, false
	}
	return i.Feed, true
}

func orNow(s string, now time.Time) string {
	if s == "" {
		return timeutil.ISO(now)
	}
	return s
}

func deref(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func noteItem(n models.NoteSummary, now time.Time) Item {
	score := 2*deref(n.LikeCount) + deref(n.CommentCount)
	return Item{
		Type:       KindNote,
		ID:         n.ID,
		CreatedAt:  orNow(n.CreatedAt, now),
		HotScore:   &score,
		AuthorID:   n.AuthorID,
		AuthorName: n.AuthorName,
		Note:       &n,
	}
}

func feedItem(f models.FeedItem) Item {
	return Item{
		Type:       KindFeed,
		ID:         f.ID,
		CreatedAt:  f.CreatedAt,
		AuthorID:   f.AuthorID,
		AuthorName: f.AuthorName,
		Feed:       &f,
	}
}

func companionItem(c models.CompanionPostSummary, now time.Time) Item {
	return Item{
		Type:            KindCompanion,
		ID:              c.ID,
		CreatedAt:       orNow(c.StartDate, now),
		AuthorID:        c.CreatorID,
		AuthorName:      c.CreatorNickname,
		AuthorAvatar:    c.CreatorAvatar,
		ReputationLevel: c.CreatorReputationLevel,
		Companion:       &c,
	}
}

func routeItem(r models.PlanResponse, authorID *int64, now time.Time) Item {
	return Item{
		Type:      KindRoute,
		ID:        r.ID,
		CreatedAt: orNow(r.StartDate, now),
		AuthorID:  authorID,
		Route:     &r,
	}
}
