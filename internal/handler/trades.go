package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
	"tradejournal/internal/service"
)

type TradeHandler struct {
	Service *service.TradeService
	Repo    repository.Repository
	Logger  *zap.Logger
}

func (h *TradeHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/trades")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.GET("/:id/analytics", h.analytics)
	g.POST("/:id/analytics/recompute", h.recompute)
}

// @Summary List trades
// @Tags trades
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Param pair query string false "instrument pair"
// @Param outcome query string false "WIN|LOSS|BREAKEVEN|OPEN"
// @Param account query string false "account name"
// @Param strategy_id query int false "strategy id"
// @Param search query string false "free text over notes/mistakes/lessons"
// @Param start_date query string false "entry time lower bound"
// @Param end_date query string false "entry time upper bound"
// @Success 200 {object} apiResponse
// @Router /api/v1/trades [get]
func (h *TradeHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "repo unavailable")
		return
	}
	page, limit, offset := pageParams(c)
	params := repository.ListTradesParams{
		Limit:      limit,
		Offset:     offset,
		Pair:       strQueryPtr(c, "pair"),
		Outcome:    strQueryPtr(c, "outcome"),
		Account:    strQueryPtr(c, "account"),
		StrategyID: uint64QueryPtr(c, "strategy_id"),
		Search:     strQueryPtr(c, "search"),
		StartDate:  timeQueryPtr(c, "start_date"),
		EndDate:    timeQueryPtr(c, "end_date"),
		OrderBy:    "entry_time",
		Asc:        boolPtr(false),
	}
	items, err := h.Repo.ListTrades(c.Request.Context(), params)
	if err != nil {
		StoreError(c, err)
		return
	}
	total, err := h.Repo.CountTrades(c.Request.Context(), params)
	if err != nil {
		StoreError(c, err)
		return
	}
	OkPaged(c, items, page, limit, total)
}

type driftRequest struct {
	ConfidenceChange float64 `json:"confidence_change"`
	StressChange     float64 `json:"stress_change"`
	FocusChange      float64 `json:"focus_change"`
	EnergyChange     float64 `json:"energy_change"`
}

type tradeRequest struct {
	Pair      string `json:"pair"`
	Direction string `json:"direction"`
	Account   string `json:"account"`

	EntryPrice *decimal.Decimal `json:"entry_price"`
	ExitPrice  *decimal.Decimal `json:"exit_price"`
	EntryTime  *time.Time       `json:"entry_time"`
	ExitTime   *time.Time       `json:"exit_time"`

	Volume          *decimal.Decimal `json:"volume"`
	StopLoss        *decimal.Decimal `json:"stop_loss"`
	TakeProfit      *decimal.Decimal `json:"take_profit"`
	RiskAmount      *decimal.Decimal `json:"risk_amount"`
	RiskPercent     *decimal.Decimal `json:"risk_percent"`
	RiskRewardRatio *decimal.Decimal `json:"risk_reward_ratio"`
	ProfitLoss      *decimal.Decimal `json:"profit_loss"`

	Outcome           string  `json:"outcome"`
	StrategyID        *uint64 `json:"strategy_id"`
	MarketConditionID *uint64 `json:"market_condition_id"`

	EmotionalState     string `json:"emotional_state"`
	SetupQuality       *int   `json:"setup_quality"`
	HoldingTimeMinutes *int   `json:"holding_time_minutes"`

	Notes    string `json:"notes"`
	Mistakes string `json:"mistakes"`
	Lessons  string `json:"lessons"`

	EmotionalDrift *driftRequest `json:"emotional_drift"`
}

func (req *tradeRequest) validate() map[string]string {
	details := map[string]string{}
	if strings.TrimSpace(req.Pair) == "" {
		details["pair"] = "pair is required"
	}
	switch strings.ToUpper(strings.TrimSpace(req.Direction)) {
	case models.DirectionLong, models.DirectionShort:
	default:
		details["direction"] = "direction must be LONG or SHORT"
	}
	if req.EntryPrice == nil || !req.EntryPrice.IsPositive() {
		details["entry_price"] = "entry_price must be a positive number"
	}
	if req.EntryTime == nil || req.EntryTime.IsZero() {
		details["entry_time"] = "entry_time must be a valid timestamp"
	}
	if req.Outcome != "" {
		switch strings.ToUpper(strings.TrimSpace(req.Outcome)) {
		case models.OutcomeWin, models.OutcomeLoss, models.OutcomeBreakeven, models.OutcomeOpen:
		default:
			details["outcome"] = "outcome must be WIN, LOSS, BREAKEVEN or OPEN"
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

func (req *tradeRequest) toModel() (*models.Trade, *models.EmotionalDrift) {
	trade := &models.Trade{
		Pair:               strings.ToUpper(strings.TrimSpace(req.Pair)),
		Direction:          strings.ToUpper(strings.TrimSpace(req.Direction)),
		Account:            strings.TrimSpace(req.Account),
		EntryPrice:         *req.EntryPrice,
		ExitPrice:          req.ExitPrice,
		EntryTime:          req.EntryTime.UTC(),
		Volume:             req.Volume,
		StopLoss:           req.StopLoss,
		TakeProfit:         req.TakeProfit,
		RiskAmount:         req.RiskAmount,
		RiskPercent:        req.RiskPercent,
		RiskRewardRatio:    req.RiskRewardRatio,
		ProfitLoss:         req.ProfitLoss,
		Outcome:            strings.ToUpper(strings.TrimSpace(req.Outcome)),
		StrategyID:         req.StrategyID,
		MarketConditionID:  req.MarketConditionID,
		EmotionalState:     strings.TrimSpace(req.EmotionalState),
		SetupQuality:       req.SetupQuality,
		HoldingTimeMinutes: req.HoldingTimeMinutes,
		Notes:              req.Notes,
		Mistakes:           req.Mistakes,
		Lessons:            req.Lessons,
	}
	if req.ExitTime != nil {
		t := req.ExitTime.UTC()
		trade.ExitTime = &t
	}
	var drift *models.EmotionalDrift
	if req.EmotionalDrift != nil {
		drift = &models.EmotionalDrift{
			ConfidenceChange: req.EmotionalDrift.ConfidenceChange,
			StressChange:     req.EmotionalDrift.StressChange,
			FocusChange:      req.EmotionalDrift.FocusChange,
			EnergyChange:     req.EmotionalDrift.EnergyChange,
		}
	}
	return trade, drift
}

// @Summary Create trade
// @Tags trades
// @Param body body tradeRequest true "trade"
// @Success 201 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/v1/trades [post]
func (h *TradeHandler) create(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "service unavailable")
		return
	}
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, map[string]string{"body": "invalid JSON body"})
		return
	}
	if details := req.validate(); details != nil {
		ValidationError(c, details)
		return
	}
	trade, drift := req.toModel()
	created, err := h.Service.Create(c.Request.Context(), trade, drift)
	if err != nil {
		StoreError(c, err)
		return
	}
	Created(c, created)
}

// @Summary Get trade
// @Tags trades
// @Param id path int true "trade id"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/v1/trades/{id} [get]
func (h *TradeHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "repo unavailable")
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		ValidationError(c, map[string]string{"id": "invalid trade id"})
		return
	}
	trade, err := h.Repo.GetTradeWithRelations(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	if trade == nil {
		Error(c, http.StatusNotFound, "NOT_FOUND", "trade not found")
		return
	}
	Ok(c, trade)
}

// tradeUpdateRequest carries partial edits. Absent fields stay untouched;
// an explicit 0 on the nullable reference and risk fields clears the column,
// so a mistakenly linked strategy can be detached again.
type tradeUpdateRequest struct {
	Pair      *string `json:"pair"`
	Direction *string `json:"direction"`
	Account   *string `json:"account"`

	EntryPrice *decimal.Decimal `json:"entry_price"`
	ExitPrice  *decimal.Decimal `json:"exit_price"`
	EntryTime  *time.Time       `json:"entry_time"`
	ExitTime   *time.Time       `json:"exit_time"`

	Volume          *decimal.Decimal `json:"volume"`
	StopLoss        *decimal.Decimal `json:"stop_loss"`
	TakeProfit      *decimal.Decimal `json:"take_profit"`
	RiskAmount      *decimal.Decimal `json:"risk_amount"`
	RiskPercent     *decimal.Decimal `json:"risk_percent"`
	RiskRewardRatio *decimal.Decimal `json:"risk_reward_ratio"`
	ProfitLoss      *decimal.Decimal `json:"profit_loss"`

	Outcome           *string `json:"outcome"`
	StrategyID        *uint64 `json:"strategy_id"`
	MarketConditionID *uint64 `json:"market_condition_id"`

	EmotionalState     *string `json:"emotional_state"`
	SetupQuality       *int    `json:"setup_quality"`
	HoldingTimeMinutes *int    `json:"holding_time_minutes"`

	Notes    *string `json:"notes"`
	Mistakes *string `json:"mistakes"`
	Lessons  *string `json:"lessons"`

	EmotionalDrift *driftRequest `json:"emotional_drift"`
}

func (req *tradeUpdateRequest) updates() (map[string]any, map[string]string) {
	updates := map[string]any{}
	details := map[string]string{}
	if req.Pair != nil {
		if strings.TrimSpace(*req.Pair) == "" {
			details["pair"] = "pair cannot be empty"
		} else {
			updates["pair"] = strings.ToUpper(strings.TrimSpace(*req.Pair))
		}
	}
	if req.Direction != nil {
		switch strings.ToUpper(strings.TrimSpace(*req.Direction)) {
		case models.DirectionLong, models.DirectionShort:
			updates["direction"] = strings.ToUpper(strings.TrimSpace(*req.Direction))
		default:
			details["direction"] = "direction must be LONG or SHORT"
		}
	}
	if req.Account != nil {
		updates["account"] = strings.TrimSpace(*req.Account)
	}
	if req.EntryPrice != nil {
		if !req.EntryPrice.IsPositive() {
			details["entry_price"] = "entry_price must be a positive number"
		} else {
			updates["entry_price"] = *req.EntryPrice
		}
	}
	if req.ExitPrice != nil {
		updates["exit_price"] = *req.ExitPrice
	}
	if req.EntryTime != nil {
		updates["entry_time"] = req.EntryTime.UTC()
	}
	if req.ExitTime != nil {
		updates["exit_time"] = req.ExitTime.UTC()
	}
	if req.Volume != nil {
		updates["volume"] = *req.Volume
	}
	if req.StopLoss != nil {
		updates["stop_loss"] = nullableDecimal(*req.StopLoss)
	}
	if req.TakeProfit != nil {
		updates["take_profit"] = nullableDecimal(*req.TakeProfit)
	}
	if req.RiskAmount != nil {
		updates["risk_amount"] = nullableDecimal(*req.RiskAmount)
	}
	if req.RiskPercent != nil {
		updates["risk_percent"] = nullableDecimal(*req.RiskPercent)
	}
	if req.RiskRewardRatio != nil {
		updates["risk_reward_ratio"] = nullableDecimal(*req.RiskRewardRatio)
	}
	if req.ProfitLoss != nil {
		updates["profit_loss"] = *req.ProfitLoss
	}
	if req.Outcome != nil {
		switch strings.ToUpper(strings.TrimSpace(*req.Outcome)) {
		case models.OutcomeWin, models.OutcomeLoss, models.OutcomeBreakeven, models.OutcomeOpen:
			updates["outcome"] = strings.ToUpper(strings.TrimSpace(*req.Outcome))
		default:
			details["outcome"] = "outcome must be WIN, LOSS, BREAKEVEN or OPEN"
		}
	}
	if req.StrategyID != nil {
		updates["strategy_id"] = nullableID(*req.StrategyID)
	}
	if req.MarketConditionID != nil {
		updates["market_condition_id"] = nullableID(*req.MarketConditionID)
	}
	if req.EmotionalState != nil {
		updates["emotional_state"] = strings.TrimSpace(*req.EmotionalState)
	}
	if req.SetupQuality != nil {
		updates["setup_quality"] = *req.SetupQuality
	}
	if req.HoldingTimeMinutes != nil {
		updates["holding_time_minutes"] = *req.HoldingTimeMinutes
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Mistakes != nil {
		updates["mistakes"] = *req.Mistakes
	}
	if req.Lessons != nil {
		updates["lessons"] = *req.Lessons
	}
	if len(details) > 0 {
		return nil, details
	}
	return updates, nil
}

func nullableID(id uint64) any {
	if id == 0 {
		return nil
	}
	return id
}

func nullableDecimal(d decimal.Decimal) any {
	if d.IsZero() {
		return nil
	}
	return d
}

// @Summary Update trade
// @Tags trades
// @Param id path int true "trade id"
// @Param body body tradeUpdateRequest true "fields to update"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/v1/trades/{id} [put]
func (h *TradeHandler) update(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "service unavailable")
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		ValidationError(c, map[string]string{"id": "invalid trade id"})
		return
	}
	var req tradeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, map[string]string{"body": "invalid JSON body"})
		return
	}
	updates, details := req.updates()
	if details != nil {
		ValidationError(c, details)
		return
	}
	var drift *models.EmotionalDrift
	if req.EmotionalDrift != nil {
		drift = &models.EmotionalDrift{
			ConfidenceChange: req.EmotionalDrift.ConfidenceChange,
			StressChange:     req.EmotionalDrift.StressChange,
			FocusChange:      req.EmotionalDrift.FocusChange,
			EnergyChange:     req.EmotionalDrift.EnergyChange,
		}
	}
	trade, err := h.Service.Update(c.Request.Context(), id, updates, drift)
	if err != nil {
		StoreError(c, err)
		return
	}
	Ok(c, trade)
}

// @Summary Delete trade
// @Tags trades
// @Param id path int true "trade id"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/v1/trades/{id} [delete]
func (h *TradeHandler) delete(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "service unavailable")
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		ValidationError(c, map[string]string{"id": "invalid trade id"})
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		StoreError(c, err)
		return
	}
	Ok(c, map[string]any{"id": id, "deleted": true})
}

// @Summary Trade analytics detail
// @Tags trades
// @Param id path int true "trade id"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/v1/trades/{id}/analytics [get]
func (h *TradeHandler) analytics(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "repo unavailable")
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		ValidationError(c, map[string]string{"id": "invalid trade id"})
		return
	}
	trade, err := h.Repo.GetTradeByID(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	if trade == nil {
		Error(c, http.StatusNotFound, "NOT_FOUND", "trade not found")
		return
	}
	quality, err := h.Repo.GetDecisionQualityByTradeID(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	cost, err := h.Repo.GetEmotionalCostByTradeID(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	Ok(c, map[string]any{
		"trade_id":                id,
		"decision_quality":        quality,
		"emotional_cost":          cost,
		"decision_score":          trade.DecisionScore,
		"execution_quality_score": trade.ExecutionQualityScore,
	})
}

// @Summary Recompute trade analytics
// @Tags trades
// @Param id path int true "trade id"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/v1/trades/{id}/analytics/recompute [post]
func (h *TradeHandler) recompute(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "service unavailable")
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		ValidationError(c, map[string]string{"id": "invalid trade id"})
		return
	}
	result, err := h.Service.Rescore(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	if h.Logger != nil {
		h.Logger.Info("trade rescored", zap.Uint64("trade_id", id))
	}
	Ok(c, result)
}
