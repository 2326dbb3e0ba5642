package demo

import (
	"context"
	"errors"
	"testing"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

func TestNew_LoadsEmbeddedDataset(t *testing.T) {
	store, err := New()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	trades, err := store.ListTrades(context.Background(), repository.ListTradesParams{Limit: 50})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(trades) == 0 {
		t.Fatalf("demo dataset has no trades")
	}
	total, _ := store.CountTrades(context.Background(), repository.ListTradesParams{})
	if total != int64(len(trades)) {
		t.Fatalf("count=%d list=%d", total, len(trades))
	}
}

func TestWrites_ReturnReadOnly(t *testing.T) {
	store, err := New()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ctx := context.Background()
	writeErrs := []error{
		store.InsertTrade(ctx, &models.Trade{}),
		store.UpdateTrade(ctx, 1, map[string]any{"notes": "x"}),
		store.DeleteTrade(ctx, 1),
		store.InsertJournalEntry(ctx, &models.JournalEntry{}),
		store.InsertStrategy(ctx, &models.Strategy{}),
		store.UpsertMarketCondition(ctx, &models.MarketCondition{}),
		store.UpsertEmotionalDrift(ctx, &models.EmotionalDrift{}),
		store.InTx(ctx, nil),
	}
	for i, err := range writeErrs {
		if !errors.Is(err, repository.ErrStoreReadOnly) {
			t.Fatalf("write %d: err=%v want ErrStoreReadOnly", i, err)
		}
	}
}

func TestListTrades_FilterAndPage(t *testing.T) {
	store, err := New()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ctx := context.Background()

	pair := "EURUSD"
	filtered, err := store.ListTrades(ctx, repository.ListTradesParams{Limit: 50, Pair: &pair})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, trade := range filtered {
		if trade.Pair != pair {
			t.Fatalf("filter leaked pair %q", trade.Pair)
		}
	}

	one, err := store.ListTrades(ctx, repository.ListTradesParams{Limit: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(one) != 1 {
		t.Fatalf("limit 1 returned %d rows", len(one))
	}
	rest, err := store.ListTrades(ctx, repository.ListTradesParams{Limit: 50, Offset: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rest) != 0 && rest[0].ID == one[0].ID {
		t.Fatalf("offset did not advance past first row")
	}
}

func TestGetTradeWithRelations_JoinsDemoRows(t *testing.T) {
	store, err := New()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	trade, err := store.GetTradeWithRelations(context.Background(), 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if trade == nil {
		t.Fatalf("trade 1 missing from demo dataset")
	}
	if trade.StrategyID != nil && trade.Strategy == nil {
		t.Fatalf("strategy relation not joined")
	}
	missing, err := store.GetTradeWithRelations(context.Background(), 9999)
	if err != nil || missing != nil {
		t.Fatalf("missing trade: got (%v, %v), want (nil, nil)", missing, err)
	}
}

func TestTradeStatsOverview_Consistent(t *testing.T) {
	store, err := New()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	stats, err := store.TradeStatsOverview(context.Background(), repository.StatsParams{})
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if stats.TotalTrades != stats.OpenTrades+stats.Wins+stats.Losses+stats.Breakevens {
		t.Fatalf("outcome counts do not sum to total: %+v", stats)
	}
	if stats.WinRate < 0 || stats.WinRate > 1 {
		t.Fatalf("win rate out of range: %v", stats.WinRate)
	}
}
