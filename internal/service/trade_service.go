package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

// EventSink receives journal events for live dashboard refresh.
type EventSink interface {
	Publish(eventType string, payload any)
}

// TradeService owns the trade lifecycle. Trade creation commits first;
// scoring is attempted afterwards best-effort and never fails the create.
type TradeService struct {
	Repo      repository.Repository
	Analytics *AnalyticsService
	Logger    *zap.Logger
	Events    EventSink
}

func (s *TradeService) Create(ctx context.Context, trade *models.Trade, drift *models.EmotionalDrift) (*models.Trade, error) {
	if s == nil || s.Repo == nil || trade == nil {
		return nil, nil
	}
	deriveClosedFields(trade)
	if err := s.Repo.InsertTrade(ctx, trade); err != nil {
		return nil, err
	}
	if drift != nil {
		drift.TradeID = trade.ID
		if err := s.Repo.UpsertEmotionalDrift(ctx, drift); err != nil {
			return nil, err
		}
		trade.EmotionalDrift = drift
	}

	s.rescoreBestEffort(ctx, trade)
	s.publish("trade.created", trade)
	return trade, nil
}

func (s *TradeService) Update(ctx context.Context, id uint64, updates map[string]any, drift *models.EmotionalDrift) (*models.Trade, error) {
	if s == nil || s.Repo == nil || id == 0 {
		return nil, nil
	}
	existing, err := s.Repo.GetTradeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, repository.ErrTradeNotFound
	}
	if len(updates) > 0 {
		if err := s.Repo.UpdateTrade(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	if drift != nil {
		drift.TradeID = id
		if err := s.Repo.UpsertEmotionalDrift(ctx, drift); err != nil {
			return nil, err
		}
	}

	trade, err := s.Repo.GetTradeWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if derived := rederiveClosedFields(trade, updates); len(derived) > 0 {
		if err := s.Repo.UpdateTrade(ctx, id, derived); err != nil {
			return nil, err
		}
	}
	s.rescoreBestEffort(ctx, trade)
	s.publish("trade.updated", trade)
	return trade, nil
}

func (s *TradeService) Delete(ctx context.Context, id uint64) error {
	if s == nil || s.Repo == nil || id == 0 {
		return nil
	}
	existing, err := s.Repo.GetTradeByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return repository.ErrTradeNotFound
	}
	if err := s.Repo.DeleteTrade(ctx, id); err != nil {
		return err
	}
	s.publish("trade.deleted", map[string]any{"id": id})
	return nil
}

// Rescore recomputes analytics on demand; unlike the create path, errors
// surface to the caller.
func (s *TradeService) Rescore(ctx context.Context, id uint64) (TradeAnalytics, error) {
	if s == nil || s.Analytics == nil {
		return TradeAnalytics{}, nil
	}
	result, err := s.Analytics.ScoreTrade(ctx, id)
	if err != nil {
		return TradeAnalytics{}, err
	}
	s.publish("trade.rescored", result)
	return result, nil
}

func (s *TradeService) rescoreBestEffort(ctx context.Context, trade *models.Trade) {
	if s.Analytics == nil || trade == nil || trade.ID == 0 {
		return
	}
	result, err := s.Analytics.ScoreTrade(ctx, trade.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("trade scoring failed (trade kept)",
				zap.Uint64("trade_id", trade.ID), zap.Error(err))
		}
		return
	}
	dq := result.DecisionQuality.Score
	eq := result.ExecutionQuality.Score
	ds := result.DecisionScore
	ecs := result.EmotionalCost.CostScore
	trade.DecisionQualityScore = &dq
	trade.ExecutionQualityScore = &eq
	trade.DecisionScore = &ds
	trade.EmotionalCostScore = &ecs
}

func (s *TradeService) publish(eventType string, payload any) {
	if s.Events == nil {
		return
	}
	s.Events.Publish(eventType, payload)
}

// rederiveClosedFields recomputes outcome, profit/loss and holding time
// after an edit touched the fields they derive from. Values the caller
// set explicitly in the same edit win over the derivation.
func rederiveClosedFields(trade *models.Trade, edited map[string]any) map[string]any {
	if trade == nil {
		return nil
	}
	touched := false
	for _, key := range []string{"exit_price", "exit_time", "entry_price", "entry_time", "direction", "volume"} {
		if _, ok := edited[key]; ok {
			touched = true
			break
		}
	}
	if !touched {
		return nil
	}
	if _, ok := edited["outcome"]; !ok {
		trade.Outcome = models.OutcomeOpen
	}
	if _, ok := edited["profit_loss"]; !ok {
		trade.ProfitLoss = nil
	}
	if _, ok := edited["holding_time_minutes"]; !ok {
		trade.HoldingTimeMinutes = nil
	}
	deriveClosedFields(trade)
	return map[string]any{
		"outcome":              trade.Outcome,
		"profit_loss":          trade.ProfitLoss,
		"holding_time_minutes": trade.HoldingTimeMinutes,
	}
}

// deriveClosedFields fills outcome, profit/loss and holding time for
// trades submitted with an exit, leaving caller-provided values alone.
func deriveClosedFields(trade *models.Trade) {
	if trade.Outcome == "" {
		trade.Outcome = models.OutcomeOpen
	}
	if trade.ExitTime != nil && trade.HoldingTimeMinutes == nil && !trade.ExitTime.Before(trade.EntryTime) {
		mins := int(trade.ExitTime.Sub(trade.EntryTime).Minutes())
		trade.HoldingTimeMinutes = &mins
	}
	if trade.ExitPrice == nil {
		return
	}
	if trade.ProfitLoss == nil && trade.Volume != nil {
		diff := trade.ExitPrice.Sub(trade.EntryPrice)
		if trade.Direction == models.DirectionShort {
			diff = diff.Neg()
		}
		pl := diff.Mul(*trade.Volume)
		trade.ProfitLoss = &pl
	}
	if trade.Outcome == models.OutcomeOpen && trade.ProfitLoss != nil {
		switch trade.ProfitLoss.Cmp(decimal.Zero) {
		case 1:
			trade.Outcome = models.OutcomeWin
		case -1:
			trade.Outcome = models.OutcomeLoss
		default:
			trade.Outcome = models.OutcomeBreakeven
		}
	}
}
