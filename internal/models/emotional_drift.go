package models

import "time"

// EmotionalDrift records how the trader's state shifted across one trade,
// as deltas reported with the trade. Input to the scoring pipeline.
type EmotionalDrift struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	TradeID uint64 `gorm:"not null;uniqueIndex" json:"trade_id"`

	ConfidenceChange float64 `gorm:"not null;default:0" json:"confidence_change"`
	StressChange     float64 `gorm:"not null;default:0" json:"stress_change"`
	FocusChange      float64 `gorm:"not null;default:0" json:"focus_change"`
	EnergyChange     float64 `gorm:"not null;default:0" json:"energy_change"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (EmotionalDrift) TableName() string {
	return "emotional_drifts"
}
