// Package scoring derives decision-quality, execution-quality and
// emotional-cost scores for a single trade. Everything in here is pure:
// same input, same output, no store access.
package scoring

import (
	"github.com/shopspring/decimal"

	"tradejournal/internal/models"
)

// Drift mirrors the per-trade emotional drift deltas.
type Drift struct {
	ConfidenceChange float64
	StressChange     float64
	FocusChange      float64
	EnergyChange     float64
}

// Input is the defaulted view of a trade that the rule sets evaluate.
// Optional trade attributes stay nil here; rules treat nil as "skip".
type Input struct {
	EntryPrice         float64
	ExitPrice          *float64
	StopLoss           *float64
	TakeProfit         *float64
	RiskRewardRatio    *float64
	Volume             *float64
	ProfitLoss         *float64
	SetupQuality       *int
	HoldingTimeMinutes *int
	HasStrategy        bool
	HasMarketCondition bool
	Drift              *Drift
}

// FromTrade is the single defaulting pass: it resolves the ORM record
// (decimals, relations, timestamps) into the flat Input the rules consume.
func FromTrade(t *models.Trade) Input {
	if t == nil {
		return Input{}
	}
	in := Input{
		EntryPrice:         t.EntryPrice.InexactFloat64(),
		ExitPrice:          decimalPtr(t.ExitPrice),
		StopLoss:           decimalPtr(t.StopLoss),
		TakeProfit:         decimalPtr(t.TakeProfit),
		RiskRewardRatio:    decimalPtr(t.RiskRewardRatio),
		Volume:             decimalPtr(t.Volume),
		ProfitLoss:         decimalPtr(t.ProfitLoss),
		SetupQuality:       t.SetupQuality,
		HoldingTimeMinutes: t.HoldingTimeMinutes,
		HasStrategy:        t.StrategyID != nil,
		HasMarketCondition: t.MarketConditionID != nil,
	}
	if in.HoldingTimeMinutes == nil && t.ExitTime != nil && !t.ExitTime.Before(t.EntryTime) {
		mins := int(t.ExitTime.Sub(t.EntryTime).Minutes())
		in.HoldingTimeMinutes = &mins
	}
	if t.EmotionalDrift != nil {
		in.Drift = &Drift{
			ConfidenceChange: t.EmotionalDrift.ConfidenceChange,
			StressChange:     t.EmotionalDrift.StressChange,
			FocusChange:      t.EmotionalDrift.FocusChange,
			EnergyChange:     t.EmotionalDrift.EnergyChange,
		}
	}
	return in
}

func decimalPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	v := d.InexactFloat64()
	return &v
}
