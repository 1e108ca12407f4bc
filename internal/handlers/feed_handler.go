package handlers

import (
	"github.com/anonto42/travel-match/gateway/internal/feed"
	"github.com/anonto42/travel-match/gateway/internal/models"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the unified home stream and the community page.
type FeedHandler struct{}

func NewFeedHandler() *FeedHandler {
	return &FeedHandler{}
}

func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group, protected *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/community/feeds", h.CommunityFeeds)
	g.GET("/community/notes", h.CommunityNotes)
	protected.POST("/feeds", h.CreateFeed)
}

// GetFeed aggregates every source again. It never fails: broken sources are
// simply missing from the result.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	tab := c.QueryParam("tab")
	if tab == "" {
		tab = "all"
	}
	order := c.QueryParam("sort")
	if order == "" {
		order = feed.SortOrderLatest
	}
	store := ws(c).Feed
	store.Refresh(c.Request().Context())
	return ok(c, store.Items(tab, order))
}

func (h *FeedHandler) CreateFeed(c echo.Context) error {
	var req models.CreateFeedRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err, nil)
	}
	post, err := ws(c).Feed.PublishFeed(c.Request().Context(), req)
	if err != nil {
		return fail(c, err, post)
	}
	return ok(c, post)
}

// applySearch copies the community search controls from the query string.
func applySearch(c echo.Context, s *feed.Store) {
	if c.QueryParams().Has("keyword") {
		s.SetKeyword(c.QueryParam("keyword"))
	}
	if v := c.QueryParam("sort"); v != "" {
		s.SetSortOrder(v)
	}
	if v := c.QueryParam("topic"); v != "" {
		s.SetTopic(v)
	}
}

func (h *FeedHandler) CommunityFeeds(c echo.Context) error {
	store := ws(c).Feed
	applySearch(c, store)
	if err := store.LoadFeeds(c.Request().Context()); err != nil {
		return fail(c, err, nil)
	}
	return ok(c, echo.Map{"topic": store.Topic(), "feeds": store.FilteredFeeds()})
}

func (h *FeedHandler) CommunityNotes(c echo.Context) error {
	store := ws(c).Feed
	applySearch(c, store)
	if err := store.LoadNotes(c.Request().Context()); err != nil {
		return fail(c, err, nil)
	}
	return ok(c, echo.Map{"topic": store.Topic(), "notes": store.FilteredNotes()})
}
