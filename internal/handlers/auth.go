package handlers

import (
	"net/http"

	"github.com/anonto42/travel-match/gateway/internal/models"
	"github.com/labstack/echo/v4"
)

// AuthHandler signs the browser session in and out of the upstream.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/auth/login", h.Login)
	g.POST("/auth/register", h.Register)
	g.POST("/auth/logout", h.Logout)
	g.GET("/auth/session", h.Session)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err, nil)
	}
	w := ws(c)
	if _, err := w.Session.Login(c.Request().Context(), w.Client, req); err != nil {
		return fail(c, err, nil)
	}
	return ok(c, w.Session.Snapshot())
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err, nil)
	}
	if req.Email == "" && req.Phone == "" {
		return fail(c, echo.NewHTTPError(http.StatusBadRequest, "Email or phone is required"), nil)
	}
	if err := ws(c).Client.Register(c.Request().Context(), req).Err(); err != nil {
		return fail(c, err, nil)
	}
	return ok(c, nil)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	w := ws(c)
	if err := w.Session.Logout(c.Request().Context()); err != nil {
		return fail(c, err, nil)
	}
	return ok(c, w.Session.Snapshot())
}

func (h *AuthHandler) Session(c echo.Context) error {
	return ok(c, ws(c).Session.Snapshot())
}
