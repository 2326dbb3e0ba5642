package models

import (
	"time"

	"gorm.io/datatypes"
)

// DecisionQuality holds the detailed decision-quality breakdown for one trade.
// Replaced wholesale each time the trade is rescored.
type DecisionQuality struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	TradeID uint64 `gorm:"not null;uniqueIndex" json:"trade_id"`

	Score int `gorm:"not null" json:"score"`

	SetupQuality         float64 `gorm:"not null" json:"setup_quality"`
	TimingQuality        float64 `gorm:"not null" json:"timing_quality"`
	RiskManagement       float64 `gorm:"not null" json:"risk_management"`
	StrategyAlignment    float64 `gorm:"not null" json:"strategy_alignment"`
	MarketConditionMatch float64 `gorm:"not null" json:"market_condition_match"`

	Mistakes        datatypes.JSON `gorm:"type:jsonb" json:"mistakes"`
	Strengths       datatypes.JSON `gorm:"type:jsonb" json:"strengths"`
	LearningPoints  datatypes.JSON `gorm:"type:jsonb" json:"learning_points"`
	Recommendations datatypes.JSON `gorm:"type:jsonb" json:"recommendations"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (DecisionQuality) TableName() string {
	return "decision_qualities"
}
