package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/anonto42/travel-match/gateway/internal/apiclient"
	"github.com/anonto42/travel-match/gateway/internal/middleware"
	"github.com/anonto42/travel-match/gateway/internal/planner"
	"github.com/anonto42/travel-match/gateway/internal/profile"
	"github.com/anonto42/travel-match/gateway/internal/workspace"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Envelope mirrors the upstream response shape so the UI parses one format.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, Envelope{Code: 0, Message: "ok", Data: data})
}

// fail writes err as an envelope. data is sent along, e.g. the failed echo of
// an optimistic send.
func fail(c echo.Context, err error, data any) error {
	var (
		verrs   validator.ValidationErrors
		httpErr *echo.HTTPError
		apiErr  *apiclient.APIError
	)
	switch {
	case errors.As(err, &verrs):
		return c.JSON(http.StatusBadRequest, Envelope{Code: http.StatusBadRequest, Message: verrs.Error(), Data: data})
	case errors.As(err, &httpErr):
		return c.JSON(httpErr.Code, Envelope{Code: httpErr.Code, Message: fmt.Sprint(httpErr.Message), Data: data})
	case apiclient.IsUnauthorized(err), errors.Is(err, profile.ErrNotSignedIn):
		return middleware.Unauthorized(c, "not signed in")
	case errors.As(err, &apiErr):
		return c.JSON(http.StatusUnprocessableEntity, Envelope{Code: apiErr.Code, Message: apiErr.Message, Data: data})
	case errors.Is(err, planner.ErrUnknownVariant), errors.Is(err, planner.ErrUnknownDay):
		return c.JSON(http.StatusNotFound, Envelope{Code: http.StatusNotFound, Message: err.Error(), Data: data})
	case errors.Is(err, planner.ErrOutOfRange), errors.Is(err, profile.ErrUnknownTab):
		return c.JSON(http.StatusBadRequest, Envelope{Code: http.StatusBadRequest, Message: err.Error(), Data: data})
	case errors.Is(err, profile.ErrNoProfile):
		return c.JSON(http.StatusConflict, Envelope{Code: http.StatusConflict, Message: err.Error(), Data: data})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("Upstream call failed")
	return c.JSON(http.StatusBadGateway, Envelope{Code: http.StatusBadGateway, Message: "upstream unavailable", Data: data})
}

// bind decodes and validates the request body into v.
func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(v)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}

func queryInt(c echo.Context, name string, def int) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return def
	}
	return n
}

func ws(c echo.Context) *workspace.Workspace {
	return middleware.WorkspaceFrom(c)
}

// viewerID is the signed-in user, or 0.
func viewerID(c echo.Context) int64 {
	w := ws(c)
	if w == nil || !w.Session.HasValidSession() {
		return 0
	}
	id, _ := w.Session.UserID()
	return id
}
