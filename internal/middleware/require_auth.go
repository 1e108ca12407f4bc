package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

// LoginRedirect is the login page that returns to target afterwards, or ""
// when target is already the login page.
func LoginRedirect(target string) string {
	if strings.HasPrefix(target, "/login") {
		return ""
	}
	return "/login?redirect=" + url.QueryEscape(target)
}

// Unauthorized writes the 401 envelope telling the UI where to send the user.
func Unauthorized(c echo.Context, message string) error {
	target := c.Request().Header.Get("X-Client-Path")
	if target == "" {
		target = c.Request().URL.RequestURI()
	}
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"code":    http.StatusUnauthorized,
		"message": message,
		"data":    echo.Map{"redirect": LoginRedirect(target)},
	})
}

// RequireAuth rejects requests whose session holds no live token. An expired
// token is cleared so the UI drops its signed-in state too.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ws := WorkspaceFrom(c)
			if ws == nil {
				return Unauthorized(c, "not signed in")
			}
			if !ws.Session.HasValidSession() {
				if ws.Session.Token() != "" {
					_ = ws.Session.ClearAuth(c.Request().Context())
				}
				return Unauthorized(c, "not signed in")
			}
			return next(c)
		}
	}
}
