package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
	"tradejournal/internal/scoring"
)

// AnalyticsService runs the scoring pipeline for one trade and persists
// the results. The three writes (trade fields, decision-quality row,
// emotional-cost row) happen in a single transaction so a trade never
// ends up with partial analytics.
type AnalyticsService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

// TradeAnalytics is the full computed result for one trade.
type TradeAnalytics struct {
	TradeID          uint64                         `json:"trade_id"`
	DecisionQuality  scoring.DecisionQualityResult  `json:"decision_quality"`
	ExecutionQuality scoring.ExecutionQualityResult `json:"execution_quality"`
	EmotionalCost    scoring.EmotionalCostResult    `json:"emotional_cost"`
	DecisionScore    int                            `json:"decision_score"`
}

// Compute runs the pure pipeline without persisting anything.
func (s *AnalyticsService) Compute(trade *models.Trade) TradeAnalytics {
	in := scoring.FromTrade(trade)
	dq := scoring.ComputeDecisionQuality(in)
	eq := scoring.ComputeExecutionQuality(in)
	ec := scoring.ComputeEmotionalCost(in)
	out := TradeAnalytics{
		DecisionQuality:  dq,
		ExecutionQuality: eq,
		EmotionalCost:    ec,
		DecisionScore:    scoring.CombineDecisionScore(dq.Score, eq.Score),
	}
	if trade != nil {
		out.TradeID = trade.ID
	}
	return out
}

// ScoreTrade fetches the trade with its relations, computes all derived
// scores and upserts them. Returns repository.ErrTradeNotFound before any
// write when the trade does not exist. Idempotent per trade id.
func (s *AnalyticsService) ScoreTrade(ctx context.Context, tradeID uint64) (TradeAnalytics, error) {
	if s == nil || s.Repo == nil {
		return TradeAnalytics{}, nil
	}
	trade, err := s.Repo.GetTradeWithRelations(ctx, tradeID)
	if err != nil {
		return TradeAnalytics{}, err
	}
	if trade == nil {
		return TradeAnalytics{}, repository.ErrTradeNotFound
	}

	result := s.Compute(trade)

	mistakes, _ := json.Marshal(result.DecisionQuality.Mistakes)
	strengths, _ := json.Marshal(result.DecisionQuality.Strengths)
	learning, _ := json.Marshal(result.DecisionQuality.LearningPoints)
	recommendations, _ := json.Marshal(result.DecisionQuality.Recommendations)

	now := time.Now().UTC()
	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.UpdateTradeAnalyticsTx(ctx, tx, tradeID, map[string]any{
			"decision_quality_score":  result.DecisionQuality.Score,
			"execution_quality_score": result.ExecutionQuality.Score,
			"decision_score":          result.DecisionScore,
			"emotional_cost_score":    result.EmotionalCost.CostScore,
		}); err != nil {
			return err
		}
		if err := s.Repo.UpsertDecisionQualityTx(ctx, tx, &models.DecisionQuality{
			TradeID:              tradeID,
			Score:                result.DecisionQuality.Score,
			SetupQuality:         result.DecisionQuality.Factors.SetupQuality,
			TimingQuality:        result.DecisionQuality.Factors.TimingQuality,
			RiskManagement:       result.DecisionQuality.Factors.RiskManagement,
			StrategyAlignment:    result.DecisionQuality.Factors.StrategyAlignment,
			MarketConditionMatch: result.DecisionQuality.Factors.MarketConditionMatch,
			Mistakes:             datatypes.JSON(mistakes),
			Strengths:            datatypes.JSON(strengths),
			LearningPoints:       datatypes.JSON(learning),
			Recommendations:      datatypes.JSON(recommendations),
			CreatedAt:            now,
			UpdatedAt:            now,
		}); err != nil {
			return err
		}
		return s.Repo.UpsertEmotionalCostTx(ctx, tx, &models.EmotionalCost{
			TradeID:                 tradeID,
			CostScore:               result.EmotionalCost.CostScore,
			StressAccumulation:      result.EmotionalCost.StressAccumulation,
			DecisionQualityImpact:   result.EmotionalCost.DecisionQualityImpact,
			FuturePerformanceImpact: result.EmotionalCost.FuturePerformanceImpact,
			RecoveryTimeMinutes:     result.EmotionalCost.RecoveryTimeMinutes,
			CreatedAt:               now,
			UpdatedAt:               now,
		})
	})
	if err != nil {
		return TradeAnalytics{}, err
	}
	return result, nil
}

// Backfill rescores trades that were created while scoring failed.
func (s *AnalyticsService) Backfill(ctx context.Context, batchSize int) (int, error) {
	if s == nil || s.Repo == nil {
		return 0, nil
	}
	ids, err := s.Repo.ListTradeIDsMissingAnalytics(ctx, batchSize)
	if err != nil {
		return 0, err
	}
	scored := 0
	for _, id := range ids {
		if _, err := s.ScoreTrade(ctx, id); err != nil {
			if s.Logger != nil {
				s.Logger.Warn("backfill rescore failed",
					zap.Uint64("trade_id", id), zap.Error(err))
			}
			continue
		}
		scored++
	}
	return scored, nil
}
