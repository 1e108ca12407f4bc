// Package team keeps the companion team page: the team, the post it was
// formed around and the shared route.
package team

import (
	"context"
	"fmt"
	"sync"

	"github.com/anonto42/travel-match/gateway/internal/apiclient"
	"github.com/anonto42/travel-match/gateway/internal/models"
	"github.com/rs/zerolog/log"
)

const RoleLeader = "leader"

type API interface {
	Team(ctx context.Context, teamID int64) apiclient.Result[models.TeamDetail]
	CompanionPost(ctx context.Context, id int64) apiclient.Result[models.CompanionPostDetail]
	Route(ctx context.Context, id int64) apiclient.Result[models.PlanResponse]
}

type View struct {
	api API

	mu   sync.RWMutex
	team *models.TeamDetail
	post *models.CompanionPostDetail
	plan *models.PlanResponse
}

func New(api API) *View {
	return &View{api: api}
}

// Load replaces the page with teamID. The post and the route are optional and
// a failure to load them leaves them empty.
func (v *View) Load(ctx context.Context, teamID int64) error {
	t, err := v.api.Team(ctx, teamID).Get()
	if err != nil {
		return fmt.Errorf("load team %d: %w", teamID, err)
	}

	var post *models.CompanionPostDetail
	if t.PostID != nil {
		p, err := v.api.CompanionPost(ctx, *t.PostID).Get()
		if err != nil {
			log.Warn().Err(err).Int64("team_id", teamID).Int64("post_id", *t.PostID).Msg("Team post unavailable")
		} else {
			post = &p
		}
	}

	planID := t.RelatedPlanID
	if planID == nil && post != nil {
		planID = post.RelatedPlanID
	}
	var plan *models.PlanResponse
	if planID != nil {
		p, err := v.api.Route(ctx, *planID).Get()
		if err != nil {
			log.Warn().Err(err).Int64("team_id", teamID).Int64("plan_id", *planID).Msg("Team route unavailable")
		} else {
			plan = &p
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.team, v.post, v.plan = &t, post, plan
	return nil
}

func (v *View) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.team, v.post, v.plan = nil, nil, nil
}

func (v *View) MemberCount() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.team == nil {
		return 0
	}
	return len(v.team.Members)
}

// MaxMembers prefers the team's own cap over the post's; 0 means no cap.
func (v *View) MaxMembers() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.maxMembersLocked()
}

func (v *View) maxMembersLocked() int {
	if v.team != nil && v.team.MaxPeople != nil {
		return *v.team.MaxPeople
	}
	if v.post != nil && v.post.MaxPeople != nil {
		return *v.post.MaxPeople
	}
	return 0
}

func (v *View) IsFull() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	limit := v.maxMembersLocked()
	if limit <= 0 || v.team == nil {
		return false
	}
	return len(v.team.Members) >= limit
}

func (v *View) IsLeader(userID int64) bool {
	return v.hasMember(userID, func(m models.TeamMemberItem) bool { return m.Role == RoleLeader })
}

func (v *View) IsMember(userID int64) bool {
	return v.hasMember(userID, func(models.TeamMemberItem) bool { return true })
}

func (v *View) hasMember(userID int64, match func(models.TeamMemberItem) bool) bool {
	if userID == 0 {
		return false
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.team == nil {
		return false
	}
	for _, m := range v.team.Members {
		if m.UserID == userID && match(m) {
			return true
		}
	}
	return false
}

type Snapshot struct {
	Team        *models.TeamDetail          `json:"team"`
	Post        *models.CompanionPostDetail `json:"post"`
	Plan        *models.PlanResponse        `json:"plan"`
	MemberCount int                         `json:"memberCount"`
	MaxMembers  int                         `json:"maxMembers"`
	IsFull      bool                        `json:"isFull"`
	IsLeader    bool                        `json:"isLeader"`
	IsMember    bool                        `json:"isMember"`
}

// Snapshot renders the page for viewer (0 when signed out).
func (v *View) Snapshot(viewer int64) Snapshot {
	s := Snapshot{
		MemberCount: v.MemberCount(),
		MaxMembers:  v.MaxMembers(),
		IsFull:      v.IsFull(),
		IsLeader:    v.IsLeader(viewer),
		IsMember:    v.IsMember(viewer),
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	s.Team, s.Post, s.Plan = v.team, v.post, v.plan
	return s
}
