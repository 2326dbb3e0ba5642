package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

type StrategyHandler struct {
	Repo repository.Repository
}

func (h *StrategyHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/strategies")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

// @Summary List strategies
// @Tags strategies
// @Success 200 {object} apiResponse
// @Router /api/v1/strategies [get]
func (h *StrategyHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "repo unavailable")
		return
	}
	items, err := h.Repo.ListStrategies(c.Request.Context())
	if err != nil {
		StoreError(c, err)
		return
	}
	Ok(c, items)
}

type strategyRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Enabled     *bool    `json:"enabled"`
	EntryRules  []string `json:"entry_rules"`
	ExitRules   []string `json:"exit_rules"`
	Timeframes  []string `json:"timeframes"`
}

// @Summary Create strategy
// @Tags strategies
// @Param body body strategyRequest true "strategy"
// @Success 201 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/v1/strategies [post]
func (h *StrategyHandler) create(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "repo unavailable")
		return
	}
	var req strategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, map[string]string{"body": "invalid JSON body"})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		ValidationError(c, map[string]string{"name": "name is required"})
		return
	}
	existing, err := h.Repo.GetStrategyByName(c.Request.Context(), name)
	if err != nil {
		StoreError(c, err)
		return
	}
	if existing != nil {
		ValidationError(c, map[string]string{"name": "a strategy with this name already exists"})
		return
	}
	item := &models.Strategy{
		Name:        name,
		Description: req.Description,
		Category:    strings.TrimSpace(req.Category),
		Enabled:     req.Enabled == nil || *req.Enabled,
	}
	if len(req.EntryRules) > 0 {
		raw, _ := json.Marshal(req.EntryRules)
		item.EntryRules = raw
	}
	if len(req.ExitRules) > 0 {
		raw, _ := json.Marshal(req.ExitRules)
		item.ExitRules = raw
	}
	if len(req.Timeframes) > 0 {
		raw, _ := json.Marshal(req.Timeframes)
		item.Timeframes = raw
	}
	if err := h.Repo.InsertStrategy(c.Request.Context(), item); err != nil {
		StoreError(c, err)
		return
	}
	Created(c, item)
}

// @Summary Get strategy
// @Tags strategies
// @Param id path int true "strategy id"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/v1/strategies/{id} [get]
func (h *StrategyHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "repo unavailable")
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		ValidationError(c, map[string]string{"id": "invalid strategy id"})
		return
	}
	item, err := h.Repo.GetStrategyByID(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "NOT_FOUND", "strategy not found")
		return
	}
	Ok(c, item)
}

type strategyUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Enabled     *bool    `json:"enabled"`
	EntryRules  []string `json:"entry_rules"`
	ExitRules   []string `json:"exit_rules"`
	Timeframes  []string `json:"timeframes"`
}

// @Summary Update strategy
// @Tags strategies
// @Param id path int true "strategy id"
// @Param body body strategyUpdateRequest true "fields to update"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/v1/strategies/{id} [put]
func (h *StrategyHandler) update(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "repo unavailable")
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		ValidationError(c, map[string]string{"id": "invalid strategy id"})
		return
	}
	existing, err := h.Repo.GetStrategyByID(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	if existing == nil {
		Error(c, http.StatusNotFound, "NOT_FOUND", "strategy not found")
		return
	}
	var req strategyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, map[string]string{"body": "invalid JSON body"})
		return
	}
	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			ValidationError(c, map[string]string{"name": "name cannot be empty"})
			return
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}
	if req.EntryRules != nil {
		raw, _ := json.Marshal(req.EntryRules)
		updates["entry_rules"] = raw
	}
	if req.ExitRules != nil {
		raw, _ := json.Marshal(req.ExitRules)
		updates["exit_rules"] = raw
	}
	if req.Timeframes != nil {
		raw, _ := json.Marshal(req.Timeframes)
		updates["timeframes"] = raw
	}
	if len(updates) > 0 {
		if err := h.Repo.UpdateStrategy(c.Request.Context(), id, updates); err != nil {
			StoreError(c, err)
			return
		}
	}
	item, _ := h.Repo.GetStrategyByID(c.Request.Context(), id)
	Ok(c, item)
}

// @Summary Delete strategy
// @Tags strategies
// @Param id path int true "strategy id"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/v1/strategies/{id} [delete]
func (h *StrategyHandler) delete(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "repo unavailable")
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		ValidationError(c, map[string]string{"id": "invalid strategy id"})
		return
	}
	existing, err := h.Repo.GetStrategyByID(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	if existing == nil {
		Error(c, http.StatusNotFound, "NOT_FOUND", "strategy not found")
		return
	}
	if err := h.Repo.DeleteStrategy(c.Request.Context(), id); err != nil {
		StoreError(c, err)
		return
	}
	Ok(c, map[string]any{"id": id, "deleted": true})
}
