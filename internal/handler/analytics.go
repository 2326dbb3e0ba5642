package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/repository"
)

// AnalyticsHandler serves the dashboard aggregates. All four endpoints
// read only, so they stay available in demo-fallback mode.
type AnalyticsHandler struct {
	Repo repository.Repository
}

func (h *AnalyticsHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/analytics")
	g.GET("/overview", h.overview)
	g.GET("/by-strategy", h.byStrategy)
	g.GET("/by-emotion", h.byEmotion)
	g.GET("/calendar", h.calendar)
}

// @Summary Trading overview stats
// @Tags analytics
// @Param account query string false "account name"
// @Param start_date query string false "entry time lower bound"
// @Param end_date query string false "entry time upper bound"
// @Success 200 {object} apiResponse
// @Router /api/v1/analytics/overview [get]
func (h *AnalyticsHandler) overview(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "repo unavailable")
		return
	}
	stats, err := h.Repo.TradeStatsOverview(c.Request.Context(), repository.StatsParams{
		Account:   strQueryPtr(c, "account"),
		StartDate: timeQueryPtr(c, "start_date"),
		EndDate:   timeQueryPtr(c, "end_date"),
	})
	if err != nil {
		StoreError(c, err)
		return
	}
	Ok(c, stats)
}

// @Summary Stats grouped by strategy
// @Tags analytics
// @Success 200 {object} apiResponse
// @Router /api/v1/analytics/by-strategy [get]
func (h *AnalyticsHandler) byStrategy(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "repo unavailable")
		return
	}
	rows, err := h.Repo.StatsByStrategy(c.Request.Context())
	if err != nil {
		StoreError(c, err)
		return
	}
	Ok(c, rows)
}

// @Summary Stats grouped by emotional state
// @Tags analytics
// @Success 200 {object} apiResponse
// @Router /api/v1/analytics/by-emotion [get]
func (h *AnalyticsHandler) byEmotion(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "repo unavailable")
		return
	}
	rows, err := h.Repo.StatsByEmotion(c.Request.Context())
	if err != nil {
		StoreError(c, err)
		return
	}
	Ok(c, rows)
}

// @Summary Daily P/L calendar rows
// @Tags analytics
// @Param since query string false "day lower bound"
// @Param until query string false "day upper bound"
// @Success 200 {object} apiResponse
// @Router /api/v1/analytics/calendar [get]
func (h *AnalyticsHandler) calendar(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "repo unavailable")
		return
	}
	rows, err := h.Repo.DailyPnL(c.Request.Context(), timeQueryPtr(c, "since"), timeQueryPtr(c, "until"))
	if err != nil {
		StoreError(c, err)
		return
	}
	Ok(c, rows)
}
