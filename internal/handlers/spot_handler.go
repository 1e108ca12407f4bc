package handlers

import (
	"net/http"

	"github.com/anonto42/travel-match/gateway/internal/models"
	"github.com/anonto42/travel-match/gateway/internal/spot"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SpotHandler reads and writes the remembered display of favourited spots.
type SpotHandler struct {
	cache *spot.Cache
}

func NewSpotHandler(cache *spot.Cache) *SpotHandler {
	return &SpotHandler{cache: cache}
}

func (h *SpotHandler) RegisterSpotRoutes(g *echo.Group) {
	g.GET("/spots/:id/display", h.GetDisplay)
	g.PUT("/spots/:id/display", h.PutDisplay)
	g.DELETE("/spots/:id/display", h.DeleteDisplay)
}

// GetDisplay answers null data when nothing is stored.
func (h *SpotHandler) GetDisplay(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err, nil)
	}
	return ok(c, h.cache.Get(c.Request().Context(), id))
}

func (h *SpotHandler) PutDisplay(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err, nil)
	}
	var display models.SpotFavoriteDisplay
	if err := bind(c, &display); err != nil {
		return fail(c, err, nil)
	}
	display.SpotID = id
	if err := h.cache.Set(c.Request().Context(), display); err != nil {
		return storageFailure(c, err)
	}
	return ok(c, h.cache.Get(c.Request().Context(), id))
}

func (h *SpotHandler) DeleteDisplay(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err, nil)
	}
	if err := h.cache.Remove(c.Request().Context(), id); err != nil {
		return storageFailure(c, err)
	}
	return ok(c, nil)
}

func storageFailure(c echo.Context, err error) error {
	log.Error().Err(err).Str("path", c.Path()).Msg("Spot display storage failed")
	return c.JSON(http.StatusServiceUnavailable, Envelope{
		Code:    http.StatusServiceUnavailable,
		Message: "storage unavailable",
	})
}
