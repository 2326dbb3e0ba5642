package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"tradejournal/internal/models"
)

var (
	// ErrTradeNotFound is returned when a trade id does not exist.
	ErrTradeNotFound = errors.New("trade not found")
	// ErrStoreReadOnly is returned by write operations on the demo store.
	ErrStoreReadOnly = errors.New("store is read-only")
)

// Repository is the persistence surface of the journal. The gorm
// implementation backs normal operation; the demo implementation serves
// the embedded read-only dataset when the DB is unavailable.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Trades
	InsertTrade(ctx context.Context, item *models.Trade) error
	GetTradeByID(ctx context.Context, id uint64) (*models.Trade, error)
	GetTradeWithRelations(ctx context.Context, id uint64) (*models.Trade, error)
	ListTrades(ctx context.Context, params ListTradesParams) ([]models.Trade, error)
	CountTrades(ctx context.Context, params ListTradesParams) (int64, error)
	UpdateTrade(ctx context.Context, id uint64, updates map[string]any) error
	DeleteTrade(ctx context.Context, id uint64) error
	ListTradeIDsMissingAnalytics(ctx context.Context, limit int) ([]uint64, error)

	// Derived analytics (written inside one transaction per trade)
	UpdateTradeAnalyticsTx(ctx context.Context, tx *gorm.DB, id uint64, updates map[string]any) error
	UpsertDecisionQualityTx(ctx context.Context, tx *gorm.DB, item *models.DecisionQuality) error
	UpsertEmotionalCostTx(ctx context.Context, tx *gorm.DB, item *models.EmotionalCost) error
	GetDecisionQualityByTradeID(ctx context.Context, tradeID uint64) (*models.DecisionQuality, error)
	GetEmotionalCostByTradeID(ctx context.Context, tradeID uint64) (*models.EmotionalCost, error)

	// Emotional drift (recorded with the trade, input to scoring)
	UpsertEmotionalDrift(ctx context.Context, item *models.EmotionalDrift) error
	GetEmotionalDriftByTradeID(ctx context.Context, tradeID uint64) (*models.EmotionalDrift, error)

	// Journal entries
	InsertJournalEntry(ctx context.Context, item *models.JournalEntry) error
	GetJournalEntryByID(ctx context.Context, id uint64) (*models.JournalEntry, error)
	GetJournalEntryByDate(ctx context.Context, date time.Time) (*models.JournalEntry, error)
	ListJournalEntries(ctx context.Context, params ListJournalEntriesParams) ([]models.JournalEntry, error)
	CountJournalEntries(ctx context.Context, params ListJournalEntriesParams) (int64, error)
	UpdateJournalEntry(ctx context.Context, id uint64, updates map[string]any) error
	DeleteJournalEntry(ctx context.Context, id uint64) error

	// Strategies
	InsertStrategy(ctx context.Context, item *models.Strategy) error
	GetStrategyByID(ctx context.Context, id uint64) (*models.Strategy, error)
	GetStrategyByName(ctx context.Context, name string) (*models.Strategy, error)
	ListStrategies(ctx context.Context) ([]models.Strategy, error)
	UpdateStrategy(ctx context.Context, id uint64, updates map[string]any) error
	UpdateStrategyStats(ctx context.Context, id uint64, stats []byte) error
	DeleteStrategy(ctx context.Context, id uint64) error

	// Market conditions
	UpsertMarketCondition(ctx context.Context, item *models.MarketCondition) error
	GetMarketConditionByID(ctx context.Context, id uint64) (*models.MarketCondition, error)
	ListMarketConditions(ctx context.Context) ([]models.MarketCondition, error)

	// Dashboard aggregates
	TradeStatsOverview(ctx context.Context, params StatsParams) (TradeStatsOverview, error)
	StatsByStrategy(ctx context.Context) ([]StrategyStatsRow, error)
	StatsByEmotion(ctx context.Context) ([]EmotionStatsRow, error)
	DailyPnL(ctx context.Context, since, until *time.Time) ([]DailyPnLRow, error)
}

type ListTradesParams struct {
	Limit      int
	Offset     int
	Pair       *string
	Outcome    *string
	Account    *string
	StrategyID *uint64
	Search     *string
	StartDate  *time.Time
	EndDate    *time.Time
	OrderBy    string
	Asc        *bool
}

type ListJournalEntriesParams struct {
	Limit   int
	Offset  int
	Phase   *string
	Since   *time.Time
	Until   *time.Time
	OrderBy string
	Asc     *bool
}

type StatsParams struct {
	Account   *string
	StartDate *time.Time
	EndDate   *time.Time
}

type TradeStatsOverview struct {
	TotalTrades       int64   `json:"total_trades"`
	OpenTrades        int64   `json:"open_trades"`
	Wins              int64   `json:"wins"`
	Losses            int64   `json:"losses"`
	Breakevens        int64   `json:"breakevens"`
	WinRate           float64 `json:"win_rate"`
	NetPnL            float64 `json:"net_pnl"`
	AvgDecisionScore  float64 `json:"avg_decision_score"`
	AvgEmotionalCost  float64 `json:"avg_emotional_cost"`
	AvgHoldingMinutes float64 `json:"avg_holding_minutes"`
}

type StrategyStatsRow struct {
	StrategyID   uint64  `json:"strategy_id"`
	StrategyName string  `json:"strategy_name"`
	Trades       int64   `json:"trades"`
	Wins         int64   `json:"wins"`
	Losses       int64   `json:"losses"`
	WinRate      float64 `json:"win_rate"`
	NetPnL       float64 `json:"net_pnl"`
	AvgDecision  float64 `json:"avg_decision_score"`
}

type EmotionStatsRow struct {
	EmotionalState   string  `json:"emotional_state"`
	Trades           int64   `json:"trades"`
	Wins             int64   `json:"wins"`
	WinRate          float64 `json:"win_rate"`
	NetPnL           float64 `json:"net_pnl"`
	AvgDecision      float64 `json:"avg_decision_score"`
	AvgEmotionalCost float64 `json:"avg_emotional_cost"`
}

type DailyPnLRow struct {
	Day    time.Time `json:"day"`
	Trades int64     `json:"trades"`
	Wins   int64     `json:"wins"`
	NetPnL float64   `json:"net_pnl"`
}
