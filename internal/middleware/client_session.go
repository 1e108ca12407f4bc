package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/anonto42/travel-match/gateway/internal/workspace"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	SessionHeader = "X-Client-Session"
	SessionCookie = "tm_session"

	workspaceKey  = "workspace"
	sessionMaxAge = 30 * 24 * time.Hour
)

// Workspaces resolves a client session key to its workspace.
type Workspaces interface {
	Get(ctx context.Context, key string) (*workspace.Workspace, error)
}

// ClientSession attaches the browser session's workspace to the request. The
// key comes from the header, then the cookie; an absent or malformed key is
// replaced by a new one that is echoed back in both.
func ClientSession(workspaces Workspaces) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := sessionKey(c.Request())
			if key == "" {
				key = uuid.NewString()
			}
			c.Response().Header().Set(SessionHeader, key)
			c.SetCookie(&http.Cookie{
				Name:     SessionCookie,
				Value:    key,
				Path:     "/",
				MaxAge:   int(sessionMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			ws, err := workspaces.Get(c.Request().Context(), key)
			if err != nil {
				log.Error().Err(err).Str("session", key).Msg("Failed to load workspace")
				return c.JSON(http.StatusServiceUnavailable, echo.Map{
					"code":    http.StatusServiceUnavailable,
					"message": "session storage unavailable",
					"data":    nil,
				})
			}
			c.Set(workspaceKey, ws)
			return next(c)
		}
	}
}

func sessionKey(r *http.Request) string {
	key := r.Header.Get(SessionHeader)
	if key == "" {
		if ck, err := r.Cookie(SessionCookie); err == nil {
			key = ck.Value
		}
	}
	if _, err := uuid.Parse(key); err != nil {
		return ""
	}
	return key
}

// WorkspaceFrom returns the workspace ClientSession attached, or nil.
func WorkspaceFrom(c echo.Context) *workspace.Workspace {
	ws, _ := c.Get(workspaceKey).(*workspace.Workspace)
	return ws
}
