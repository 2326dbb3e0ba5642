package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

func seedTrade(repo *stubRepo) *models.Trade {
	sl := decimal.NewFromFloat(1.09)
	tp := decimal.NewFromFloat(1.12)
	trade := &models.Trade{
		Pair:       "EURUSD",
		Direction:  models.DirectionLong,
		EntryPrice: decimal.NewFromFloat(1.10),
		EntryTime:  time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		StopLoss:   &sl,
		TakeProfit: &tp,
		Outcome:    models.OutcomeOpen,
	}
	_ = repo.InsertTrade(context.Background(), trade)
	return trade
}

func TestScoreTrade_NotFoundBeforeAnyWrite(t *testing.T) {
	repo := newStubRepo()
	svc := &AnalyticsService{Repo: repo}

	_, err := svc.ScoreTrade(context.Background(), 99)
	if !errors.Is(err, repository.ErrTradeNotFound) {
		t.Fatalf("err=%v want ErrTradeNotFound", err)
	}
	if repo.txCalls != 0 || repo.dqUpserts != 0 || repo.ecUpserts != 0 || repo.tradeWrites != 0 {
		t.Fatalf("writes happened for missing trade: tx=%d dq=%d ec=%d trade=%d",
			repo.txCalls, repo.dqUpserts, repo.ecUpserts, repo.tradeWrites)
	}
}

func TestScoreTrade_IdempotentPerTrade(t *testing.T) {
	repo := newStubRepo()
	svc := &AnalyticsService{Repo: repo}
	trade := seedTrade(repo)

	first, err := svc.ScoreTrade(context.Background(), trade.ID)
	if err != nil {
		t.Fatalf("first score: %v", err)
	}
	second, err := svc.ScoreTrade(context.Background(), trade.ID)
	if err != nil {
		t.Fatalf("second score: %v", err)
	}

	if first.DecisionScore != second.DecisionScore {
		t.Fatalf("scores diverged: %d vs %d", first.DecisionScore, second.DecisionScore)
	}
	if len(repo.decisionQualities) != 1 {
		t.Fatalf("decision quality rows=%d want 1", len(repo.decisionQualities))
	}
	if len(repo.emotionalCosts) != 1 {
		t.Fatalf("emotional cost rows=%d want 1", len(repo.emotionalCosts))
	}
	if repo.txCalls != 2 {
		t.Fatalf("txCalls=%d want 2 (one transaction per run)", repo.txCalls)
	}
}

func TestScoreTrade_WritesAllThreeInOneTx(t *testing.T) {
	repo := newStubRepo()
	svc := &AnalyticsService{Repo: repo}
	trade := seedTrade(repo)

	result, err := svc.ScoreTrade(context.Background(), trade.ID)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if repo.txCalls != 1 || repo.tradeWrites != 1 || repo.dqUpserts != 1 || repo.ecUpserts != 1 {
		t.Fatalf("tx=%d trade=%d dq=%d ec=%d, want 1 each",
			repo.txCalls, repo.tradeWrites, repo.dqUpserts, repo.ecUpserts)
	}
	updates := repo.tradeUpdates[trade.ID]
	if updates["decision_score"] != result.DecisionScore {
		t.Fatalf("decision_score update=%v want %d", updates["decision_score"], result.DecisionScore)
	}
	dq := repo.decisionQualities[trade.ID]
	if dq == nil || dq.Score != result.DecisionQuality.Score {
		t.Fatalf("stored dq=%+v want score %d", dq, result.DecisionQuality.Score)
	}
}

func TestTradeCreate_ScoringFailureKeepsTrade(t *testing.T) {
	repo := newStubRepo()
	repo.fetchErr = errors.New("relations query failed")
	svc := &TradeService{
		Repo:      repo,
		Analytics: &AnalyticsService{Repo: repo},
	}

	vol := decimal.NewFromInt(1)
	trade := &models.Trade{
		Pair:       "GBPUSD",
		Direction:  models.DirectionShort,
		EntryPrice: decimal.NewFromFloat(1.27),
		EntryTime:  time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC),
		Volume:     &vol,
	}
	created, err := svc.Create(context.Background(), trade, nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created == nil || created.ID == 0 {
		t.Fatalf("trade was not persisted: %+v", created)
	}
	if len(repo.decisionQualities) != 0 {
		t.Fatalf("analytics written despite scoring failure")
	}
}

func TestTradeCreate_DerivesClosedFields(t *testing.T) {
	repo := newStubRepo()
	svc := &TradeService{Repo: repo, Analytics: &AnalyticsService{Repo: repo}}

	vol := decimal.NewFromInt(2)
	exit := decimal.NewFromFloat(1.25)
	entryTime := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	exitTime := entryTime.Add(90 * time.Minute)
	trade := &models.Trade{
		Pair:       "GBPUSD",
		Direction:  models.DirectionShort,
		EntryPrice: decimal.NewFromFloat(1.27),
		ExitPrice:  &exit,
		EntryTime:  entryTime,
		ExitTime:   &exitTime,
		Volume:     &vol,
	}
	created, err := svc.Create(context.Background(), trade, nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Outcome != models.OutcomeWin {
		t.Fatalf("outcome=%q want WIN (short, exit below entry)", created.Outcome)
	}
	// (1.27-1.25)*2 for a short
	if created.ProfitLoss == nil || !created.ProfitLoss.Equal(decimal.NewFromFloat(0.04)) {
		t.Fatalf("profit_loss=%v want 0.04", created.ProfitLoss)
	}
	if created.HoldingTimeMinutes == nil || *created.HoldingTimeMinutes != 90 {
		t.Fatalf("holding=%v want 90", created.HoldingTimeMinutes)
	}
}

func TestTradeUpdate_RederivesClosedFields(t *testing.T) {
	repo := newStubRepo()
	svc := &TradeService{Repo: repo, Analytics: &AnalyticsService{Repo: repo}}

	entryTime := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	vol := decimal.NewFromInt(2)
	trade := &models.Trade{
		Pair:       "GBPUSD",
		Direction:  models.DirectionShort,
		EntryPrice: decimal.NewFromFloat(1.27),
		EntryTime:  entryTime,
		Volume:     &vol,
	}
	created, err := svc.Create(context.Background(), trade, nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Outcome != models.OutcomeOpen {
		t.Fatalf("outcome=%q want OPEN before exit", created.Outcome)
	}

	// Close the trade via the update path only.
	updated, err := svc.Update(context.Background(), created.ID, map[string]any{
		"exit_price": decimal.NewFromFloat(1.25),
		"exit_time":  entryTime.Add(90 * time.Minute),
	}, nil)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Outcome != models.OutcomeWin {
		t.Fatalf("outcome=%q want WIN (short, exit below entry)", updated.Outcome)
	}
	if updated.ProfitLoss == nil || !updated.ProfitLoss.Equal(decimal.NewFromFloat(0.04)) {
		t.Fatalf("profit_loss=%v want 0.04", updated.ProfitLoss)
	}
	if updated.HoldingTimeMinutes == nil || *updated.HoldingTimeMinutes != 90 {
		t.Fatalf("holding=%v want 90", updated.HoldingTimeMinutes)
	}
	if got := repo.tradeUpdates[created.ID]["outcome"]; got != models.OutcomeWin {
		t.Fatalf("persisted outcome=%v want WIN", got)
	}
}

func TestTradeUpdate_ExplicitFieldsWinOverDerivation(t *testing.T) {
	repo := newStubRepo()
	svc := &TradeService{Repo: repo}

	entryTime := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	vol := decimal.NewFromInt(2)
	trade := &models.Trade{
		Pair:       "GBPUSD",
		Direction:  models.DirectionShort,
		EntryPrice: decimal.NewFromFloat(1.27),
		EntryTime:  entryTime,
		Volume:     &vol,
	}
	if _, err := svc.Create(context.Background(), trade, nil); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), trade.ID, map[string]any{
		"exit_price": decimal.NewFromFloat(1.25),
		"exit_time":  entryTime.Add(90 * time.Minute),
		"outcome":    models.OutcomeBreakeven,
	}, nil)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Outcome != models.OutcomeBreakeven {
		t.Fatalf("outcome=%q want caller-provided BREAKEVEN", updated.Outcome)
	}
	if updated.ProfitLoss == nil || !updated.ProfitLoss.Equal(decimal.NewFromFloat(0.04)) {
		t.Fatalf("profit_loss=%v want derived 0.04", updated.ProfitLoss)
	}
}

func TestTradeDelete_NotFound(t *testing.T) {
	repo := newStubRepo()
	svc := &TradeService{Repo: repo}
	if err := svc.Delete(context.Background(), 7); !errors.Is(err, repository.ErrTradeNotFound) {
		t.Fatalf("err=%v want ErrTradeNotFound", err)
	}
}

func TestBackfill_ScoresMissingOnly(t *testing.T) {
	repo := newStubRepo()
	svc := &AnalyticsService{Repo: repo}
	first := seedTrade(repo)
	second := seedTrade(repo)

	if _, err := svc.ScoreTrade(context.Background(), first.ID); err != nil {
		t.Fatalf("pre-score: %v", err)
	}
	scored, err := svc.Backfill(context.Background(), 100)
	if err != nil {
		t.Fatalf("backfill: %v", err)
	}
	if scored != 1 {
		t.Fatalf("scored=%d want 1 (only the unscored trade)", scored)
	}
	if repo.decisionQualities[second.ID] == nil {
		t.Fatalf("second trade not scored by backfill")
	}
}
