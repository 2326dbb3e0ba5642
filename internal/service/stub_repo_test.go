package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

// stubRepo is an in-memory Repository for service tests. Upserts are
// keyed by trade id so idempotence is observable.
type stubRepo struct {
	trades map[uint64]*models.Trade
	nextID uint64

	decisionQualities map[uint64]*models.DecisionQuality
	emotionalCosts    map[uint64]*models.EmotionalCost
	drifts            map[uint64]*models.EmotionalDrift
	tradeUpdates      map[uint64]map[string]any

	fetchErr error

	txCalls     int
	dqUpserts   int
	ecUpserts   int
	tradeWrites int
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		trades:            map[uint64]*models.Trade{},
		nextID:            1,
		decisionQualities: map[uint64]*models.DecisionQuality{},
		emotionalCosts:    map[uint64]*models.EmotionalCost{},
		drifts:            map[uint64]*models.EmotionalDrift{},
		tradeUpdates:      map[uint64]map[string]any{},
	}
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.txCalls++
	return fn(nil)
}

func (s *stubRepo) InsertTrade(ctx context.Context, item *models.Trade) error {
	item.ID = s.nextID
	s.nextID++
	s.trades[item.ID] = item
	return nil
}

func (s *stubRepo) GetTradeByID(ctx context.Context, id uint64) (*models.Trade, error) {
	return s.trades[id], nil
}

func (s *stubRepo) GetTradeWithRelations(ctx context.Context, id uint64) (*models.Trade, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.trades[id], nil
}

func (s *stubRepo) ListTrades(ctx context.Context, params repository.ListTradesParams) ([]models.Trade, error) {
	out := make([]models.Trade, 0, len(s.trades))
	for _, t := range s.trades {
		out = append(out, *t)
	}
	return out, nil
}

func (s *stubRepo) CountTrades(ctx context.Context, params repository.ListTradesParams) (int64, error) {
	return int64(len(s.trades)), nil
}

func (s *stubRepo) UpdateTrade(ctx context.Context, id uint64, updates map[string]any) error {
	if s.tradeUpdates[id] == nil {
		s.tradeUpdates[id] = map[string]any{}
	}
	for k, v := range updates {
		s.tradeUpdates[id][k] = v
	}
	if t := s.trades[id]; t != nil {
		applyTradeColumns(t, updates)
	}
	return nil
}

// applyTradeColumns mirrors the gorm store for the columns the service
// layer reads back after an update.
func applyTradeColumns(t *models.Trade, updates map[string]any) {
	for col, val := range updates {
		switch col {
		case "exit_price":
			if v, ok := val.(decimal.Decimal); ok {
				t.ExitPrice = &v
			}
		case "exit_time":
			if v, ok := val.(time.Time); ok {
				t.ExitTime = &v
			}
		case "outcome":
			if v, ok := val.(string); ok {
				t.Outcome = v
			}
		case "volume":
			if v, ok := val.(decimal.Decimal); ok {
				t.Volume = &v
			}
		case "profit_loss":
			switch v := val.(type) {
			case decimal.Decimal:
				t.ProfitLoss = &v
			case *decimal.Decimal:
				t.ProfitLoss = v
			}
		case "holding_time_minutes":
			switch v := val.(type) {
			case int:
				t.HoldingTimeMinutes = &v
			case *int:
				t.HoldingTimeMinutes = v
			}
		}
	}
}

func (s *stubRepo) DeleteTrade(ctx context.Context, id uint64) error {
	delete(s.trades, id)
	return nil
}

func (s *stubRepo) ListTradeIDsMissingAnalytics(ctx context.Context, limit int) ([]uint64, error) {
	var ids []uint64
	for id, t := range s.trades {
		if t.DecisionScore == nil {
			if _, scored := s.decisionQualities[id]; !scored {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

func (s *stubRepo) UpdateTradeAnalyticsTx(ctx context.Context, tx *gorm.DB, id uint64, updates map[string]any) error {
	s.tradeWrites++
	if s.tradeUpdates[id] == nil {
		s.tradeUpdates[id] = map[string]any{}
	}
	for k, v := range updates {
		s.tradeUpdates[id][k] = v
	}
	return nil
}

func (s *stubRepo) UpsertDecisionQualityTx(ctx context.Context, tx *gorm.DB, item *models.DecisionQuality) error {
	s.dqUpserts++
	s.decisionQualities[item.TradeID] = item
	return nil
}

func (s *stubRepo) UpsertEmotionalCostTx(ctx context.Context, tx *gorm.DB, item *models.EmotionalCost) error {
	s.ecUpserts++
	s.emotionalCosts[item.TradeID] = item
	return nil
}

func (s *stubRepo) GetDecisionQualityByTradeID(ctx context.Context, tradeID uint64) (*models.DecisionQuality, error) {
	return s.decisionQualities[tradeID], nil
}

func (s *stubRepo) GetEmotionalCostByTradeID(ctx context.Context, tradeID uint64) (*models.EmotionalCost, error) {
	return s.emotionalCosts[tradeID], nil
}

func (s *stubRepo) UpsertEmotionalDrift(ctx context.Context, item *models.EmotionalDrift) error {
	s.drifts[item.TradeID] = item
	return nil
}

func (s *stubRepo) GetEmotionalDriftByTradeID(ctx context.Context, tradeID uint64) (*models.EmotionalDrift, error) {
	return s.drifts[tradeID], nil
}

func (s *stubRepo) InsertJournalEntry(ctx context.Context, item *models.JournalEntry) error {
	return errors.New("not implemented")
}

func (s *stubRepo) GetJournalEntryByID(ctx context.Context, id uint64) (*models.JournalEntry, error) {
	return nil, nil
}

func (s *stubRepo) GetJournalEntryByDate(ctx context.Context, date time.Time) (*models.JournalEntry, error) {
	return nil, nil
}

func (s *stubRepo) ListJournalEntries(ctx context.Context, params repository.ListJournalEntriesParams) ([]models.JournalEntry, error) {
	return nil, nil
}

func (s *stubRepo) CountJournalEntries(ctx context.Context, params repository.ListJournalEntriesParams) (int64, error) {
	return 0, nil
}

func (s *stubRepo) UpdateJournalEntry(ctx context.Context, id uint64, updates map[string]any) error {
	return errors.New("not implemented")
}

func (s *stubRepo) DeleteJournalEntry(ctx context.Context, id uint64) error {
	return errors.New("not implemented")
}

func (s *stubRepo) InsertStrategy(ctx context.Context, item *models.Strategy) error {
	return errors.New("not implemented")
}

func (s *stubRepo) GetStrategyByID(ctx context.Context, id uint64) (*models.Strategy, error) {
	return nil, nil
}

func (s *stubRepo) GetStrategyByName(ctx context.Context, name string) (*models.Strategy, error) {
	return nil, nil
}

func (s *stubRepo) ListStrategies(ctx context.Context) ([]models.Strategy, error) {
	return nil, nil
}

func (s *stubRepo) UpdateStrategy(ctx context.Context, id uint64, updates map[string]any) error {
	return errors.New("not implemented")
}

func (s *stubRepo) UpdateStrategyStats(ctx context.Context, id uint64, stats []byte) error {
	return errors.New("not implemented")
}

func (s *stubRepo) DeleteStrategy(ctx context.Context, id uint64) error {
	return errors.New("not implemented")
}

func (s *stubRepo) UpsertMarketCondition(ctx context.Context, item *models.MarketCondition) error {
	return errors.New("not implemented")
}

func (s *stubRepo) GetMarketConditionByID(ctx context.Context, id uint64) (*models.MarketCondition, error) {
	return nil, nil
}

func (s *stubRepo) ListMarketConditions(ctx context.Context) ([]models.MarketCondition, error) {
	return nil, nil
}

func (s *stubRepo) TradeStatsOverview(ctx context.Context, params repository.StatsParams) (repository.TradeStatsOverview, error) {
	return repository.TradeStatsOverview{}, nil
}

func (s *stubRepo) StatsByStrategy(ctx context.Context) ([]repository.StrategyStatsRow, error) {
	return nil, nil
}

func (s *stubRepo) StatsByEmotion(ctx context.Context) ([]repository.EmotionStatsRow, error) {
	return nil, nil
}

func (s *stubRepo) DailyPnL(ctx context.Context, since, until *time.Time) ([]repository.DailyPnLRow, error) {
	return nil, nil
}
