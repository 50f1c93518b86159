package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kingbet/backend/session"
)

// CookieName is the admin session cookie.
const CookieName = "kingbet_session"

// Admin returns an Echo middleware that admits only requests whose session
// cookie maps to a live admin session. It runs before validation or storage.
func Admin(sessions *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			sess, ok := sessions.Get(cookie.Value)
			if !ok || !sess.IsAdmin {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			return next(c)
		}
	}
}
