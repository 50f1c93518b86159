package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kingbet/backend/models"
	"github.com/kingbet/backend/store"
)

type createPredictionRequest struct {
	MatchName  string  `json:"matchName"`
	MatchTime  string  `json:"matchTime"`
	BetType    string  `json:"betType"`
	Odds       string  `json:"odds"`
	Confidence string  `json:"confidence"`
	Category   string  `json:"category"`
	Status     string  `json:"status"`
	Score      *string `json:"score"`
	Date       string  `json:"date"`
	IsLocked   bool    `json:"isLocked"`
}

type updatePredictionRequest struct {
	MatchName  *string `json:"matchName"`
	MatchTime  *string `json:"matchTime"`
	BetType    *string `json:"betType"`
	Odds       *string `json:"odds"`
	Confidence *string `json:"confidence"`
	Category   *string `json:"category"`
	Status     *string `json:"status"`
	Score      *string `json:"score"`
	Date       *string `json:"date"`
	IsLocked   *bool   `json:"isLocked"`
}

// Predictions returns all predictions, optionally filtered by exact-match
// date and/or category query parameters.
func (h *Handler) Predictions(c echo.Context) error {
	f := store.PredictionFilter{
		Date:     c.QueryParam("date"),
		Category: c.QueryParam("category"),
	}

	preds, err := h.store.Predictions(c.Request().Context(), f)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, preds)
}

// CreatePrediction validates the body and inserts a new prediction.
func (h *Handler) CreatePrediction(c echo.Context) error {
	var req createPredictionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := validateCreatePrediction(&req); err != nil {
		return err
	}

	pred := &models.Prediction{
		MatchName:  req.MatchName,
		MatchTime:  req.MatchTime,
		BetType:    req.BetType,
		Odds:       req.Odds,
		Confidence: req.Confidence,
		Category:   req.Category,
		Status:     req.Status,
		Score:      req.Score,
		Date:       req.Date,
		IsLocked:   req.IsLocked,
	}

	if err := h.store.CreatePrediction(c.Request().Context(), pred); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, pred)
}

// UpdatePrediction applies a partial update to a prediction.
func (h *Handler) UpdatePrediction(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Prediction not found")
	}

	var req updatePredictionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := validateUpdatePrediction(&req); err != nil {
		return err
	}

	updated, err := h.store.UpdatePrediction(c.Request().Context(), id, store.PredictionUpdate{
		MatchName:  req.MatchName,
		MatchTime:  req.MatchTime,
		BetType:    req.BetType,
		Odds:       req.Odds,
		Confidence: req.Confidence,
		Category:   req.Category,
		Status:     req.Status,
		Score:      req.Score,
		Date:       req.Date,
		IsLocked:   req.IsLocked,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Prediction not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, updated)
}

// DeletePrediction removes a prediction. Always 204, even when the id never
// existed.
func (h *Handler) DeletePrediction(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))

	if err := h.store.DeletePrediction(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

func validateCreatePrediction(req *createPredictionRequest) error {
	required := []struct {
		field, value string
	}{
		{"matchName", req.MatchName},
		{"matchTime", req.MatchTime},
		{"betType", req.BetType},
		{"odds", req.Odds},
		{"confidence", req.Confidence},
		{"date", req.Date},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return echo.NewHTTPError(http.StatusBadRequest, r.field+" is required")
		}
	}

	if req.Category != "" && !models.ValidCategory(req.Category) {
		return echo.NewHTTPError(http.StatusBadRequest, "category must be free or vip")
	}
	if req.Status != "" && !models.ValidStatus(req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "status must be pending, won or lost")
	}

	return nil
}

// validateUpdatePrediction checks each supplied field against the same
// constraint it has on creation. Absent fields pass.
func validateUpdatePrediction(req *updatePredictionRequest) error {
	nonEmpty := []struct {
		field string
		value *string
	}{
		{"matchName", req.MatchName},
		{"matchTime", req.MatchTime},
		{"betType", req.BetType},
		{"odds", req.Odds},
		{"confidence", req.Confidence},
		{"date", req.Date},
	}
	for _, r := range nonEmpty {
		if r.value != nil && strings.TrimSpace(*r.value) == "" {
			return echo.NewHTTPError(http.StatusBadRequest, r.field+" must not be empty")
		}
	}

	if req.Category != nil && !models.ValidCategory(*req.Category) {
		return echo.NewHTTPError(http.StatusBadRequest, "category must be free or vip")
	}
	if req.Status != nil && !models.ValidStatus(*req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "status must be pending, won or lost")
	}

	return nil
}
