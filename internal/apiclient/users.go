package apiclient

import (
	"context"
	"fmt"

	"github.com/anonto42/travel-match/gateway/internal/models"
)

func (c *Client) Login(ctx context.Context, body models.LoginRequest) Result[models.LoginResponse] {
	return post[models.LoginResponse](ctx, c, "auth/login", "auth/login", body)
}

func (c *Client) Register(ctx context.Context, body models.RegisterRequest) Result[Empty] {
	return post[Empty](ctx, c, "auth/register", "auth/register", body)
}

func (c *Client) MeDetail(ctx context.Context) Result[models.MeDetail] {
	return get[models.MeDetail](ctx, c, "users/me/detail", "users/me/detail", nil)
}

func (c *Client) PublicProfile(ctx context.Context, userID int64) Result[models.UserPublicProfile] {
	return get[models.UserPublicProfile](ctx, c, "users/{id}/homepage", fmt.Sprintf("users/%d/homepage", userID), nil)
}

func (c *Client) Follow(ctx context.Context, userID int64) Result[Empty] {
	return post[Empty](ctx, c, "users/{id}/follow", fmt.Sprintf("users/%d/follow", userID), nil)
}

func (c *Client) Unfollow(ctx context.Context, userID int64) Result[Empty] {
	return post[Empty](ctx, c, "users/{id}/unfollow", fmt.Sprintf("users/%d/unfollow", userID), nil)
}

func (c *Client) UserNotes(ctx context.Context, userID int64) Result[[]models.NoteSummary] {
	return get[[]models.NoteSummary](ctx, c, "users/{id}/notes", fmt.Sprintf("users/%d/notes", userID), nil)
}

func (c *Client) UserRoutes(ctx context.Context, userID int64) Result[[]models.PlanResponse] {
	return get[[]models.PlanResponse](ctx, c, "users/{id}/routes", fmt.Sprintf("users/%d/routes", userID), nil)
}

func (c *Client) UserCompanions(ctx context.Context, userID int64) Result[[]models.CompanionPostSummary] {
	return get[[]models.CompanionPostSummary](ctx, c, "users/{id}/companion", fmt.Sprintf("users/%d/companion", userID), nil)
}

// UserReviews pages what other users wrote about userID.
func (c *Client) UserReviews(ctx context.Context, userID int64, page, pageSize int) Result[models.PageResult[models.CommentItem]] {
	return get[models.PageResult[models.CommentItem]](ctx, c, "users/{id}/reviews", fmt.Sprintf("users/%d/reviews", userID), pageQuery(page, pageSize))
}
