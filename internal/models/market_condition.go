package models

import "time"

// MarketCondition is reference data describing the market regime a trade
// was taken in (trending, ranging, high-volatility, news-driven, ...).
type MarketCondition struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Bias        string `gorm:"type:varchar(20)" json:"bias,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (MarketCondition) TableName() string {
	return "market_conditions"
}
