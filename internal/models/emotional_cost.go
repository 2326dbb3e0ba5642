package models

import "time"

// EmotionalCost estimates what a trade cost the trader emotionally.
// Upserted by the scoring pipeline alongside DecisionQuality.
type EmotionalCost struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	TradeID uint64 `gorm:"not null;uniqueIndex" json:"trade_id"`

	CostScore               float64 `gorm:"not null" json:"cost_score"`
	StressAccumulation      float64 `gorm:"not null" json:"stress_accumulation"`
	DecisionQualityImpact   float64 `gorm:"not null" json:"decision_quality_impact"`
	FuturePerformanceImpact float64 `gorm:"not null" json:"future_performance_impact"`
	RecoveryTimeMinutes     int     `gorm:"not null" json:"recovery_time_minutes"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (EmotionalCost) TableName() string {
	return "emotional_costs"
}
