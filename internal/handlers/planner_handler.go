package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/travel-match/gateway/internal/planner"
	"github.com/labstack/echo/v4"
)

// PlannerHandler drives the route planning page.
type PlannerHandler struct{}

func NewPlannerHandler() *PlannerHandler {
	return &PlannerHandler{}
}

func (h *PlannerHandler) RegisterPlannerRoutes(g *echo.Group, protected *echo.Group) {
	g.GET("/planner", h.GetPlanner)
	g.PUT("/planner/form", h.UpdateForm)
	g.POST("/planner/destinations", h.AddDestination)
	g.DELETE("/planner/destinations/:name", h.RemoveDestination)
	g.POST("/planner/generate", h.Generate)
	g.PUT("/planner/active/:variant", h.SetActive)
	g.POST("/planner/days/:day/reorder", h.Reorder)
	g.DELETE("/planner/days/:day/items/:item", h.RemoveItem)
	protected.POST("/planner/ai-generate", h.GenerateAI)
}

type destinationRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

type reorderRequest struct {
	From int `json:"from" validate:"min=0"`
	To   int `json:"to" validate:"min=0"`
}

func (h *PlannerHandler) GetPlanner(c echo.Context) error {
	return ok(c, ws(c).Planner.Snapshot())
}

func (h *PlannerHandler) UpdateForm(c echo.Context) error {
	var form planner.Form
	if err := bind(c, &form); err != nil {
		return fail(c, err, nil)
	}
	p := ws(c).Planner
	p.SetForm(form)
	return ok(c, p.Snapshot())
}

func (h *PlannerHandler) AddDestination(c echo.Context) error {
	var req destinationRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err, nil)
	}
	p := ws(c).Planner
	p.AddDestination(req.Name)
	return ok(c, p.Snapshot())
}

func (h *PlannerHandler) RemoveDestination(c echo.Context) error {
	p := ws(c).Planner
	p.RemoveDestination(c.Param("name"))
	return ok(c, p.Snapshot())
}

func (h *PlannerHandler) Generate(c echo.Context) error {
	p := ws(c).Planner
	p.Generate()
	return ok(c, p.Snapshot())
}

func (h *PlannerHandler) GenerateAI(c echo.Context) error {
	p := ws(c).Planner
	if _, err := p.GenerateAI(c.Request().Context()); err != nil {
		return fail(c, err, nil)
	}
	return ok(c, p.Snapshot())
}

func (h *PlannerHandler) SetActive(c echo.Context) error {
	p := ws(c).Planner
	if err := p.SetActiveVariant(c.Param("variant")); err != nil {
		return fail(c, err, nil)
	}
	return ok(c, p.Snapshot())
}

func dayParam(c echo.Context) (int, error) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid day")
	}
	return day, nil
}

func (h *PlannerHandler) Reorder(c echo.Context) error {
	day, err := dayParam(c)
	if err != nil {
		return fail(c, err, nil)
	}
	var req reorderRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err, nil)
	}
	p := ws(c).Planner
	if err := p.ReorderDayItems(day, req.From, req.To); err != nil {
		return fail(c, err, nil)
	}
	return ok(c, p.Snapshot())
}

func (h *PlannerHandler) RemoveItem(c echo.Context) error {
	day, err := dayParam(c)
	if err != nil {
		return fail(c, err, nil)
	}
	p := ws(c).Planner
	removed, err := p.RemoveDayItem(day, c.Param("item"))
	if err != nil {
		return fail(c, err, nil)
	}
	return ok(c, echo.Map{"removed": removed, "planner": p.Snapshot()})
}
