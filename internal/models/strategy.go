package models

import (
	"time"

	"gorm.io/datatypes"
)

// Strategy is a user-defined trading strategy. Stats is rebuilt
// periodically from the trades that reference the strategy.
type Strategy struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Category    string `gorm:"type:varchar(30);index" json:"category,omitempty"`

	Enabled bool `gorm:"default:true;index" json:"enabled"`

	EntryRules datatypes.JSON `gorm:"type:jsonb" json:"entry_rules,omitempty"`
	ExitRules  datatypes.JSON `gorm:"type:jsonb" json:"exit_rules,omitempty"`
	Timeframes datatypes.JSON `gorm:"type:jsonb" json:"timeframes,omitempty"`
	Stats      datatypes.JSON `gorm:"type:jsonb" json:"stats,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Strategy) TableName() string {
	return "strategies"
}
