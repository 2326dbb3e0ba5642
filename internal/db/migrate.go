package db

import (
	"tradejournal/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Strategy{},
		&models.MarketCondition{},
		&models.Trade{},
		&models.EmotionalDrift{},
		&models.DecisionQuality{},
		&models.EmotionalCost{},
		&models.JournalEntry{},
	)
}
