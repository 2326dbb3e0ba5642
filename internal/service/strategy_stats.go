package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"tradejournal/internal/repository"
)

// StrategyStatsService rebuilds the per-strategy stats blob from the
// trades that reference each strategy.
type StrategyStatsService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

type strategyStats struct {
	Trades           int64   `json:"trades"`
	Wins             int64   `json:"wins"`
	Losses           int64   `json:"losses"`
	WinRate          float64 `json:"win_rate"`
	NetPnL           float64 `json:"net_pnl"`
	AvgDecisionScore float64 `json:"avg_decision_score"`
	UpdatedAt        string  `json:"updated_at"`
}

// RunOnce is scheduled by the cron runner.
func (s *StrategyStatsService) RunOnce(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	rows, err := s.Repo.StatsByStrategy(ctx)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for _, row := range rows {
		raw, err := json.Marshal(strategyStats{
			Trades:           row.Trades,
			Wins:             row.Wins,
			Losses:           row.Losses,
			WinRate:          row.WinRate,
			NetPnL:           row.NetPnL,
			AvgDecisionScore: row.AvgDecision,
			UpdatedAt:        now,
		})
		if err != nil {
			return err
		}
		if err := s.Repo.UpdateStrategyStats(ctx, row.StrategyID, raw); err != nil {
			return err
		}
	}
	return nil
}
