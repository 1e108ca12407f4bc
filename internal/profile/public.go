package profile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/anonto42/travel-match/gateway/internal/apiclient"
	"github.com/anonto42/travel-match/gateway/internal/models"
	"github.com/anonto42/travel-match/gateway/internal/session"
)

const ReviewsPageSize = 5

type Tab string

const (
	TabNotes     Tab = "notes"
	TabRoutes    Tab = "routes"
	TabCompanion Tab = "companion"
	TabReviews   Tab = "reviews"
)

var (
	ErrNotSignedIn = errors.New("sign in required")
	ErrNoProfile   = errors.New("profile not loaded")
	ErrUnknownTab  = errors.New("unknown profile tab")
)

type PublicAPI interface {
	PublicProfile(ctx context.Context, userID int64) apiclient.Result[models.UserPublicProfile]
	UserNotes(ctx context.Context, userID int64) apiclient.Result[[]models.NoteSummary]
	UserRoutes(ctx context.Context, userID int64) apiclient.Result[[]models.PlanResponse]
	UserCompanions(ctx context.Context, userID int64) apiclient.Result[[]models.CompanionPostSummary]
	UserReviews(ctx context.Context, userID int64, page, pageSize int) apiclient.Result[models.PageResult[models.CommentItem]]
	Follow(ctx context.Context, userID int64) apiclient.Result[apiclient.Empty]
	Unfollow(ctx context.Context, userID int64) apiclient.Result[apiclient.Empty]
}

// Viewer is the signed-in user looking at the page.
type Viewer interface {
	HasValidSession() bool
	UserID() (int64, bool)
	AddFollowed(userID int64)
	RemoveFollowed(userID int64)
}

// Public is another user's homepage with its tabs.
type Public struct {
	api    PublicAPI
	viewer Viewer

	mu              sync.RWMutex
	profile         *models.UserPublicProfile
	tab             Tab
	notes           []models.NoteSummary
	routes          []models.PlanResponse
	companions      []models.CompanionPostSummary
	reviews         []models.CommentItem
	reviewsTotal    int
	reviewsPage     int
	reviewsPageSize int
}

func NewPublic(api PublicAPI, viewer Viewer) *Public {
	return &Public{
		api:             api,
		viewer:          viewer,
		tab:             TabNotes,
		reviewsPage:     1,
		reviewsPageSize: ReviewsPageSize,
	}
}

func (p *Public) FetchProfile(ctx context.Context, userID int64) error {
	prof, err := p.api.PublicProfile(ctx, userID).Get()
	if err != nil {
		return fmt.Errorf("load profile %d: %w", userID, err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.profile == nil || p.profile.ID != prof.ID {
		p.notes, p.routes, p.companions, p.reviews = nil, nil, nil, nil
		p.reviewsTotal, p.reviewsPage = 0, 1
	}
	p.profile = &prof
	return nil
}

// FetchTab loads one tab of userID's page and makes it current.
func (p *Public) FetchTab(ctx context.Context, userID int64, tab Tab) error {
	switch tab {
	case TabNotes:
		list, err := p.api.UserNotes(ctx, userID).Get()
		if err != nil {
			return fmt.Errorf("load notes of %d: %w", userID, err)
		}
		p.mu.Lock()
		p.notes = list
		p.mu.Unlock()
	case TabRoutes:
		list, err := p.api.UserRoutes(ctx, userID).Get()
		if err != nil {
			return fmt.Errorf("load routes of %d: %w", userID, err)
		}
		p.mu.Lock()
		p.routes = list
		p.mu.Unlock()
	case TabCompanion:
		list, err := p.api.UserCompanions(ctx, userID).Get()
		if err != nil {
			return fmt.Errorf("load companion posts of %d: %w", userID, err)
		}
		p.mu.Lock()
		p.companions = list
		p.mu.Unlock()
	case TabReviews:
		p.mu.RLock()
		page := p.reviewsPage
		p.mu.RUnlock()
		if err := p.ChangeReviewsPage(ctx, userID, page); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTab, tab)
	}
	p.mu.Lock()
	p.tab = tab
	p.mu.Unlock()
	return nil
}

func (p *Public) ChangeReviewsPage(ctx context.Context, userID int64, page int) error {
	if page < 1 {
		page = 1
	}
	p.mu.RLock()
	size := p.reviewsPageSize
	p.mu.RUnlock()

	res, err := p.api.UserReviews(ctx, userID, page, size).Get()
	if err != nil {
		return fmt.Errorf("load reviews of %d: %w", userID, err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reviews = res.List
	p.reviewsTotal = res.Total
	if res.Page > 0 {
		page = res.Page
	}
	p.reviewsPage = page
	if res.PageSize > 0 {
		p.reviewsPageSize = res.PageSize
	}
	return nil
}

// IsSelf reports whether the loaded page belongs to the viewer.
func (p *Public) IsSelf() bool {
	id, ok := p.viewer.UserID()
	if !ok {
		return false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.profile != nil && p.profile.ID == id
}

// ToggleFollow follows or unfollows the loaded user and adjusts the follower
// count once the upstream confirms.
func (p *Public) ToggleFollow(ctx context.Context, userID int64) (bool, error) {
	if !p.viewer.HasValidSession() {
		return false, ErrNotSignedIn
	}
	p.mu.RLock()
	if p.profile == nil || p.profile.ID != userID {
		p.mu.RUnlock()
		return false, ErrNoProfile
	}
	followed := p.profile.IsFollowed
	p.mu.RUnlock()

	if followed {
		if err := p.api.Unfollow(ctx, userID).Err(); err != nil {
			return true, fmt.Errorf("unfollow %d: %w", userID, err)
		}
		p.viewer.RemoveFollowed(userID)
	} else {
		if err := p.api.Follow(ctx, userID).Err(); err != nil {
			return false, fmt.Errorf("follow %d: %w", userID, err)
		}
		p.viewer.AddFollowed(userID)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.profile == nil || p.profile.ID != userID {
		return !followed, nil
	}
	p.profile.IsFollowed = !followed
	if n := p.profile.FollowersCount; n != nil {
		c := *n + 1
		if followed {
			c = max(0, *n-1)
		}
		p.profile.FollowersCount = &c
	}
	return !followed, nil
}

type PublicView struct {
	Profile         *models.UserPublicProfile     `json:"profile"`
	IsSelf          bool                          `json:"isSelf"`
	ReputationLabel string                        `json:"reputationLabel"`
	Tab             Tab                           `json:"tab"`
	Notes           []models.NoteSummary          `json:"notes"`
	Routes          []models.PlanResponse         `json:"routes"`
	Companions      []models.CompanionPostSummary `json:"companions"`
	Reviews         []models.CommentItem          `json:"reviews"`
	ReviewsTotal    int                           `json:"reviewsTotal"`
	ReviewsPage     int                           `json:"reviewsPage"`
	ReviewsPageSize int                           `json:"reviewsPageSize"`
}

func (p *Public) View() PublicView {
	self := p.IsSelf()
	p.mu.RLock()
	defer p.mu.RUnlock()
	v := PublicView{
		IsSelf:          self,
		Tab:             p.tab,
		Notes:           append([]models.NoteSummary{}, p.notes...),
		Routes:          append([]models.PlanResponse{}, p.routes...),
		Companions:      append([]models.CompanionPostSummary{}, p.companions...),
		Reviews:         append([]models.CommentItem{}, p.reviews...),
		ReviewsTotal:    p.reviewsTotal,
		ReviewsPage:     p.reviewsPage,
		ReviewsPageSize: p.reviewsPageSize,
	}
	var level *int
	if p.profile != nil {
		prof := *p.profile
		v.Profile = &prof
		level = prof.ReputationLevel
	}
	v.ReputationLabel = session.ReputationLabel(level)
	return v
}
