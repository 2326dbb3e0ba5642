package handler

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTradeUpdateRequest_ZeroClearsNullableColumns(t *testing.T) {
	zeroID := uint64(0)
	zero := decimal.Zero
	req := tradeUpdateRequest{
		StrategyID:        &zeroID,
		MarketConditionID: &zeroID,
		StopLoss:          &zero,
		TakeProfit:        &zero,
	}
	updates, details := req.updates()
	if details != nil {
		t.Fatalf("unexpected validation details: %v", details)
	}
	for _, col := range []string{"strategy_id", "market_condition_id", "stop_loss", "take_profit"} {
		v, ok := updates[col]
		if !ok {
			t.Fatalf("column %s missing from updates", col)
		}
		if v != nil {
			t.Fatalf("column %s=%v want nil (clear)", col, v)
		}
	}
}

func TestTradeUpdateRequest_NonZeroValuesKept(t *testing.T) {
	sid := uint64(3)
	sl := decimal.NewFromFloat(1.09)
	req := tradeUpdateRequest{
		StrategyID: &sid,
		StopLoss:   &sl,
	}
	updates, details := req.updates()
	if details != nil {
		t.Fatalf("unexpected validation details: %v", details)
	}
	if got := updates["strategy_id"]; got != uint64(3) {
		t.Fatalf("strategy_id=%v want 3", got)
	}
	got, ok := updates["stop_loss"].(decimal.Decimal)
	if !ok || !got.Equal(sl) {
		t.Fatalf("stop_loss=%v want 1.09", updates["stop_loss"])
	}
}
