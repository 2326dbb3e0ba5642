package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

type MarketConditionHandler struct {
	Repo repository.Repository
}

func (h *MarketConditionHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/conditions")
	g.GET("", h.list)
	g.POST("", h.upsert)
}

// @Summary List market conditions
// @Tags conditions
// @Success 200 {object} apiResponse
// @Router /api/v1/conditions [get]
func (h *MarketConditionHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "repo unavailable")
		return
	}
	items, err := h.Repo.ListMarketConditions(c.Request.Context())
	if err != nil {
		StoreError(c, err)
		return
	}
	Ok(c, items)
}

type marketConditionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Bias        string `json:"bias"`
}

// @Summary Create or update market condition
// @Tags conditions
// @Param body body marketConditionRequest true "condition"
// @Success 201 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/v1/conditions [post]
func (h *MarketConditionHandler) upsert(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "repo unavailable")
		return
	}
	var req marketConditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, map[string]string{"body": "invalid JSON body"})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		ValidationError(c, map[string]string{"name": "name is required"})
		return
	}
	item := &models.MarketCondition{
		Name:        name,
		Description: req.Description,
		Bias:        strings.TrimSpace(req.Bias),
	}
	if err := h.Repo.UpsertMarketCondition(c.Request.Context(), item); err != nil {
		StoreError(c, err)
		return
	}
	Created(c, item)
}
