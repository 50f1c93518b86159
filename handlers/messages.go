package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kingbet/backend/models"
)

type createMessageRequest struct {
	Content string  `json:"content"`
	Link    *string `json:"link"`
}

// Messages returns all announcements, newest first.
func (h *Handler) Messages(c echo.Context) error {
	msgs, err := h.store.Messages(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, msgs)
}

// CreateMessage validates the body and inserts a new announcement.
func (h *Handler) CreateMessage(c echo.Context) error {
	var req createMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if strings.TrimSpace(req.Content) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "content is required")
	}

	msg := &models.Message{
		Content: req.Content,
		Link:    req.Link,
	}

	if err := h.store.CreateMessage(c.Request().Context(), msg); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, msg)
}

// DeleteMessage removes an announcement. Always 204.
func (h *Handler) DeleteMessage(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))

	if err := h.store.DeleteMessage(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
