package handlers

import (
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/kingbet/backend/config"
	"github.com/kingbet/backend/session"
	"github.com/kingbet/backend/store"

	mw "github.com/kingbet/backend/middleware"
)

// Login attempts allowed per IP: small steady rate with room for typos.
const (
	loginRateLimit rate.Limit = 5
	loginRateBurst            = 10
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	store    *store.Store
	sessions *session.Store
	cfg      *config.Config
}

// New creates a Handler with the given store, session store and config.
func New(st *store.Store, sessions *session.Store, cfg *config.Config) *Handler {
	return &Handler{store: st, sessions: sessions, cfg: cfg}
}

// Register mounts all API routes on e.
func (h *Handler) Register(e *echo.Echo) {
	limiter := mw.NewIPRateLimiter(loginRateLimit, loginRateBurst)

	// Public
	e.POST("/api/admin/login", h.Login, mw.RateLimit(limiter))
	e.POST("/api/admin/logout", h.Logout)
	e.GET("/api/admin/check", h.Check)
	e.GET("/api/predictions", h.Predictions)
	e.GET("/api/messages", h.Messages)

	// Admin – require a live admin session
	admin := e.Group("/api", mw.Admin(h.sessions))
	admin.POST("/predictions", h.CreatePrediction)
	admin.PATCH("/predictions/:id", h.UpdatePrediction)
	admin.DELETE("/predictions/:id", h.DeletePrediction)
	admin.POST("/messages", h.CreateMessage)
	admin.DELETE("/messages/:id", h.DeleteMessage)
}
