package models

import (
	"time"

	"gorm.io/datatypes"
)

// JournalEntry is a per-day free-form record of the trader's state.
// Independent of trades; consumed by the UI for correlation display.
type JournalEntry struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	EntryDate   time.Time      `gorm:"type:date;not null;uniqueIndex" json:"entry_date"`
	MentalState string         `gorm:"type:text" json:"mental_state,omitempty"`
	FocusLevel  *int           `gorm:"" json:"focus_level,omitempty"`
	Confidence  *int           `gorm:"" json:"confidence,omitempty"`
	Stressors   datatypes.JSON `gorm:"type:jsonb" json:"stressors,omitempty"`
	Phase       string         `gorm:"type:varchar(30);index" json:"phase,omitempty"`
	Notes       string         `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}
