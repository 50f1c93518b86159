package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	mw "github.com/kingbet/backend/middleware"
)

type loginRequest struct {
	PIN string `json:"pin"`
}

// Login compares the submitted PIN to the configured secret and establishes
// an admin session on match. Every failure, malformed body included, gets
// the same generic 401 so callers cannot tell failure modes apart.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid PIN")
	}

	if !h.pinMatches(req.PIN) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid PIN")
	}

	id := h.sessions.Create(true)
	c.SetCookie(&http.Cookie{
		Name:     mw.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) pinMatches(pin string) bool {
	if h.cfg.AdminPINHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(h.cfg.AdminPINHash), []byte(pin)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(pin), []byte(h.cfg.AdminPIN)) == 1
}

// Logout destroys the current session, if any, and clears the cookie.
func (h *Handler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(mw.CookieName); err == nil {
		h.sessions.Destroy(cookie.Value)
	}

	c.SetCookie(&http.Cookie{
		Name:     mw.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Check reports whether the current session carries the admin flag.
func (h *Handler) Check(c echo.Context) error {
	isAdmin := false
	if cookie, err := c.Cookie(mw.CookieName); err == nil {
		if sess, ok := h.sessions.Get(cookie.Value); ok {
			isAdmin = sess.IsAdmin
		}
	}
	return c.JSON(http.StatusOK, map[string]bool{"isAdmin": isAdmin})
}
