package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade direction and outcome values accepted by the API.
const (
	DirectionLong  = "LONG"
	DirectionShort = "SHORT"

	OutcomeWin       = "WIN"
	OutcomeLoss      = "LOSS"
	OutcomeBreakeven = "BREAKEVEN"
	OutcomeOpen      = "OPEN"
)

// Trade is one executed or open position. Derived analytics fields are
// written back by the scoring pipeline, never by the API caller directly.
type Trade struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Pair      string `gorm:"type:varchar(20);not null;index" json:"pair"`
	Direction string `gorm:"type:varchar(10);not null" json:"direction"`
	Account   string `gorm:"type:varchar(50);index" json:"account,omitempty"`

	EntryPrice decimal.Decimal  `gorm:"type:numeric(30,10);not null" json:"entry_price"`
	ExitPrice  *decimal.Decimal `gorm:"type:numeric(30,10)" json:"exit_price,omitempty"`
	EntryTime  time.Time        `gorm:"type:timestamptz;not null;index" json:"entry_time"`
	ExitTime   *time.Time       `gorm:"type:timestamptz" json:"exit_time,omitempty"`

	Volume          *decimal.Decimal `gorm:"type:numeric(30,10)" json:"volume,omitempty"`
	StopLoss        *decimal.Decimal `gorm:"type:numeric(30,10)" json:"stop_loss,omitempty"`
	TakeProfit      *decimal.Decimal `gorm:"type:numeric(30,10)" json:"take_profit,omitempty"`
	RiskAmount      *decimal.Decimal `gorm:"type:numeric(30,10)" json:"risk_amount,omitempty"`
	RiskPercent     *decimal.Decimal `gorm:"type:numeric(20,10)" json:"risk_percent,omitempty"`
	RiskRewardRatio *decimal.Decimal `gorm:"type:numeric(20,10)" json:"risk_reward_ratio,omitempty"`
	ProfitLoss      *decimal.Decimal `gorm:"type:numeric(30,10)" json:"profit_loss,omitempty"`

	Outcome string `gorm:"type:varchar(20);not null;default:'OPEN';index" json:"outcome"`

	StrategyID        *uint64 `gorm:"index" json:"strategy_id,omitempty"`
	MarketConditionID *uint64 `gorm:"index" json:"market_condition_id,omitempty"`

	EmotionalState     string `gorm:"type:varchar(50);index" json:"emotional_state,omitempty"`
	SetupQuality       *int   `gorm:"" json:"setup_quality,omitempty"`
	HoldingTimeMinutes *int   `gorm:"" json:"holding_time_minutes,omitempty"`

	Notes    string `gorm:"type:text" json:"notes,omitempty"`
	Mistakes string `gorm:"type:text" json:"mistakes,omitempty"`
	Lessons  string `gorm:"type:text" json:"lessons,omitempty"`

	// Derived by the scoring pipeline.
	DecisionQualityScore  *int     `gorm:"" json:"decision_quality_score,omitempty"`
	ExecutionQualityScore *int     `gorm:"" json:"execution_quality_score,omitempty"`
	DecisionScore         *int     `gorm:"" json:"decision_score,omitempty"`
	EmotionalCostScore    *float64 `gorm:"" json:"emotional_cost_score,omitempty"`

	Strategy        *Strategy        `gorm:"foreignKey:StrategyID" json:"strategy,omitempty"`
	MarketCondition *MarketCondition `gorm:"foreignKey:MarketConditionID" json:"market_condition,omitempty"`
	EmotionalDrift  *EmotionalDrift  `gorm:"foreignKey:TradeID" json:"emotional_drift,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Trade) TableName() string {
	return "trades"
}
