package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/anonto42/travel-match/gateway/internal/models"
)

func (c *Client) Notes(ctx context.Context) Result[[]models.NoteSummary] {
	return get[[]models.NoteSummary](ctx, c, "notes", "notes", nil)
}

func (c *Client) Note(ctx context.Context, id int64) Result[models.NoteDetail] {
	return get[models.NoteDetail](ctx, c, "notes/{id}", fmt.Sprintf("notes/%d", id), nil)
}

func (c *Client) Feeds(ctx context.Context) Result[[]models.FeedItem] {
	return get[[]models.FeedItem](ctx, c, "feeds", "feeds", nil)
}

// CreateFeed publishes a check-in post and returns its id.
func (c *Client) CreateFeed(ctx context.Context, body models.CreateFeedRequest) Result[int64] {
	return post[int64](ctx, c, "feeds", "feeds", body)
}

func (c *Client) CompanionPosts(ctx context.Context, f models.CompanionFilter) Result[[]models.CompanionPostSummary] {
	q := url.Values{}
	if f.Destination != "" {
		q.Set("destination", f.Destination)
	}
	if f.StartDate != "" {
		q.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("endDate", f.EndDate)
	}
	return get[[]models.CompanionPostSummary](ctx, c, "companion/posts", "companion/posts", q)
}

func (c *Client) CompanionPost(ctx context.Context, id int64) Result[models.CompanionPostDetail] {
	return get[models.CompanionPostDetail](ctx, c, "companion/posts/{id}", fmt.Sprintf("companion/posts/%d", id), nil)
}

func (c *Client) Team(ctx context.Context, teamID int64) Result[models.TeamDetail] {
	return get[models.TeamDetail](ctx, c, "companion/teams/{id}", fmt.Sprintf("companion/teams/%d", teamID), nil)
}

// MyRoutes requires a session.
func (c *Client) MyRoutes(ctx context.Context) Result[[]models.PlanResponse] {
	return get[[]models.PlanResponse](ctx, c, "routes/my", "routes/my", nil)
}

func (c *Client) HotRoutes(ctx context.Context, limit int) Result[[]models.PlanResponse] {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	return get[[]models.PlanResponse](ctx, c, "routes/hot", "routes/hot", q)
}

func (c *Client) Route(ctx context.Context, id int64) Result[models.PlanResponse] {
	return get[models.PlanResponse](ctx, c, "routes/{id}", fmt.Sprintf("routes/%d", id), nil)
}

// GenerateRoute asks the upstream for AI route variants; nothing is saved.
func (c *Client) GenerateRoute(ctx context.Context, body models.AiGenerateRouteRequest) Result[models.AiGenerateRouteResponse] {
	return post[models.AiGenerateRouteResponse](ctx, c, "routes/ai-generate", "routes/ai-generate", body)
}

type likeTarget struct {
	TargetType string `json:"targetType"`
	TargetID   int64  `json:"targetId"`
}

func (c *Client) Like(ctx context.Context, targetType string, targetID int64) Result[Empty] {
	return post[Empty](ctx, c, "interactions/likes", "interactions/likes", likeTarget{TargetType: targetType, TargetID: targetID})
}

func (c *Client) Unlike(ctx context.Context, targetType string, targetID int64) Result[Empty] {
	q := url.Values{}
	q.Set("targetType", targetType)
	q.Set("targetId", strconv.FormatInt(targetID, 10))
	return del[Empty](ctx, c, "interactions/likes", "interactions/likes", q)
}

func (c *Client) InteractionSummary(ctx context.Context, targetType string, targetID int64) Result[models.InteractionSummary] {
	q := url.Values{}
	q.Set("targetType", targetType)
	q.Set("targetId", strconv.FormatInt(targetID, 10))
	return get[models.InteractionSummary](ctx, c, "interactions/summary", "interactions/summary", q)
}

// MyCompanionPosts lists the companion posts the caller created.
func (c *Client) MyCompanionPosts(ctx context.Context) Result[[]models.CompanionPostSummary] {
	return get[[]models.CompanionPostSummary](ctx, c, "companion/posts/my", "companion/posts/my", nil)
}

func (c *Client) MyFavorites(ctx context.Context) Result[[]models.FavoriteTarget] {
	return get[[]models.FavoriteTarget](ctx, c, "interactions/favorites", "interactions/favorites", nil)
}

func (c *Client) Unfavorite(ctx context.Context, targetType string, targetID int64) Result[Empty] {
	q := url.Values{}
	q.Set("targetType", targetType)
	q.Set("targetId", strconv.FormatInt(targetID, 10))
	return del[Empty](ctx, c, "interactions/favorites", "interactions/favorites", q)
}
