package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// ContentHandler passes single-item lookups and likes through to the
// upstream for the detail pages.
type ContentHandler struct{}

func NewContentHandler() *ContentHandler {
	return &ContentHandler{}
}

func (h *ContentHandler) RegisterContentRoutes(g *echo.Group, protected *echo.Group) {
	g.GET("/notes/:id", h.GetNote)
	g.GET("/routes/hot", h.HotRoutes)
	g.GET("/routes/:id", h.GetRoute)
	g.GET("/interactions/:type/:id", h.Summary)
	protected.POST("/interactions/:type/:id/like", h.Like)
	protected.DELETE("/interactions/:type/:id/like", h.Unlike)
}

func (h *ContentHandler) GetNote(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err, nil)
	}
	note, err := ws(c).Client.Note(c.Request().Context(), id).Get()
	if err != nil {
		return fail(c, err, nil)
	}
	return ok(c, note)
}

// HotRoutes takes ?limit, 4 by default.
func (h *ContentHandler) HotRoutes(c echo.Context) error {
	limit := queryInt(c, "limit", 4)
	if limit < 1 || limit > 50 {
		limit = 4
	}
	routes, err := ws(c).Client.HotRoutes(c.Request().Context(), limit).Get()
	if err != nil {
		return fail(c, err, nil)
	}
	return ok(c, routes)
}

func (h *ContentHandler) GetRoute(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err, nil)
	}
	route, err := ws(c).Client.Route(c.Request().Context(), id).Get()
	if err != nil {
		return fail(c, err, nil)
	}
	return ok(c, route)
}

// likeTarget reads the upstream targetType (NOTE, ROUTE, ...) and id.
func likeTarget(c echo.Context) (string, int64, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return "", 0, err
	}
	kind := strings.ToUpper(c.Param("type"))
	if kind == "" {
		return "", 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid type")
	}
	return kind, id, nil
}

func (h *ContentHandler) Summary(c echo.Context) error {
	kind, id, err := likeTarget(c)
	if err != nil {
		return fail(c, err, nil)
	}
	sum, err := ws(c).Client.InteractionSummary(c.Request().Context(), kind, id).Get()
	if err != nil {
		return fail(c, err, nil)
	}
	return ok(c, sum)
}

func (h *ContentHandler) Like(c echo.Context) error {
	kind, id, err := likeTarget(c)
	if err != nil {
		return fail(c, err, nil)
	}
	if err := ws(c).Client.Like(c.Request().Context(), kind, id).Err(); err != nil {
		return fail(c, err, nil)
	}
	return ok(c, echo.Map{"liked": true, "target": kind + ":" + strconv.FormatInt(id, 10)})
}

func (h *ContentHandler) Unlike(c echo.Context) error {
	kind, id, err := likeTarget(c)
	if err != nil {
		return fail(c, err, nil)
	}
	if err := ws(c).Client.Unlike(c.Request().Context(), kind, id).Err(); err != nil {
		return fail(c, err, nil)
	}
	return ok(c, echo.Map{"liked": false, "target": kind + ":" + strconv.FormatInt(id, 10)})
}
