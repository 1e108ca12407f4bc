package handlers

import (
	"github.com/labstack/echo/v4"
)

type TeamHandler struct{}

func NewTeamHandler() *TeamHandler {
	return &TeamHandler{}
}

func (h *TeamHandler) RegisterTeamRoutes(g *echo.Group) {
	g.GET("/teams/:id", h.GetTeam)
}

func (h *TeamHandler) GetTeam(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err, nil)
	}
	view := ws(c).Team
	if err := view.Load(c.Request().Context(), id); err != nil {
		view.Reset()
		return fail(c, err, nil)
	}
	return ok(c, view.Snapshot(viewerID(c)))
}
