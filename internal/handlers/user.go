package handlers

import (
	"net/http"

	"github.com/anonto42/travel-match/gateway/internal/profile"
	"github.com/labstack/echo/v4"
)

// ProfileHandler serves the signed-in user's page and other users' homepages.
type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group, protected *echo.Group) {
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/:id/tabs/:tab", h.GetUserTab)
	g.POST("/users/:id/follow", h.ToggleFollow)
	protected.GET("/profile/me", h.GetMe)
	protected.DELETE("/profile/me/favorites/:type/:id", h.RemoveFavorite)
}

func (h *ProfileHandler) GetMe(c echo.Context) error {
	mine := ws(c).Mine
	if err := mine.Load(c.Request().Context()); err != nil {
		return fail(c, err, nil)
	}
	return ok(c, mine.View())
}

// RemoveFavorite unfavourites upstream first and only then drops the entry
// from the loaded page.
func (h *ProfileHandler) RemoveFavorite(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err, nil)
	}
	kind := c.Param("type")
	w := ws(c)
	if err := w.Client.Unfavorite(c.Request().Context(), kind, id).Err(); err != nil {
		return fail(c, err, nil)
	}
	w.Mine.RemoveFavorite(kind, id)
	return ok(c, w.Mine.View())
}

func (h *ProfileHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err, nil)
	}
	pub := ws(c).Public
	if err := pub.FetchProfile(c.Request().Context(), id); err != nil {
		return fail(c, err, nil)
	}
	return ok(c, pub.View())
}

// GetUserTab loads one homepage tab. The reviews tab takes ?page.
func (h *ProfileHandler) GetUserTab(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err, nil)
	}
	pub := ws(c).Public
	ctx := c.Request().Context()
	tab := profile.Tab(c.Param("tab"))
	if tab == profile.TabReviews && c.QueryParam("page") != "" {
		err = pub.ChangeReviewsPage(ctx, id, queryInt(c, "page", 1))
	} else {
		err = pub.FetchTab(ctx, id, tab)
	}
	if err != nil {
		return fail(c, err, nil)
	}
	return ok(c, pub.View())
}

func (h *ProfileHandler) ToggleFollow(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err, nil)
	}
	pub := ws(c).Public
	if pub.IsSelf() {
		return fail(c, echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself"), nil)
	}
	followed, err := pub.ToggleFollow(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, nil)
	}
	return ok(c, echo.Map{"followed": followed, "profile": pub.View().Profile})
}
