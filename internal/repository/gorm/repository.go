package gormrepository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- Trades -----------------------------------------------------------------

func (s *Store) InsertTrade(ctx context.Context, item *models.Trade) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetTradeByID(ctx context.Context, id uint64) (*models.Trade, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.Trade
	err := s.db.WithContext(ctx).Model(&models.Trade{}).Where("id = ?", id).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetTradeWithRelations(ctx context.Context, id uint64) (*models.Trade, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.Trade
	err := s.db.WithContext(ctx).
		Preload("Strategy").
		Preload("MarketCondition").
		Preload("EmotionalDrift").
		Where("id = ?", id).
		First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListTrades(ctx context.Context, params repository.ListTradesParams) ([]models.Trade, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyTradeFilters(s.db.WithContext(ctx).Model(&models.Trade{}), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "entry_time")
	limit := normalizeLimit(params.Limit, 50)
	offset := normalizeOffset(params.Offset)
	var items []models.Trade
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountTrades(ctx context.Context, params repository.ListTradesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	query := applyTradeFilters(s.db.WithContext(ctx).Model(&models.Trade{}), params)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func applyTradeFilters(query *gorm.DB, params repository.ListTradesParams) *gorm.DB {
	if params.Pair != nil && strings.TrimSpace(*params.Pair) != "" {
		query = query.Where("pair = ?", strings.ToUpper(strings.TrimSpace(*params.Pair)))
	}
	if params.Outcome != nil && strings.TrimSpace(*params.Outcome) != "" {
		query = query.Where("outcome = ?", strings.ToUpper(strings.TrimSpace(*params.Outcome)))
	}
	if params.Account != nil && strings.TrimSpace(*params.Account) != "" {
		query = query.Where("account = ?", strings.TrimSpace(*params.Account))
	}
	if params.StrategyID != nil && *params.StrategyID > 0 {
		query = query.Where("strategy_id = ?", *params.StrategyID)
	}
	if params.Search != nil && strings.TrimSpace(*params.Search) != "" {
		like := "%" + strings.TrimSpace(*params.Search) + "%"
		query = query.Where("notes LIKE ? OR mistakes LIKE ? OR lessons LIKE ?", like, like, like)
	}
	if params.StartDate != nil && !params.StartDate.IsZero() {
		query = query.Where("entry_time >= ?", *params.StartDate)
	}
	if params.EndDate != nil && !params.EndDate.IsZero() {
		query = query.Where("entry_time <= ?", *params.EndDate)
	}
	return query
}

func (s *Store) UpdateTrade(ctx context.Context, id uint64, updates map[string]any) error {
	if s == nil || s.db == nil || id == 0 || len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()
	return s.db.WithContext(ctx).
		Model(&models.Trade{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

func (s *Store) DeleteTrade(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil || id == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trade_id = ?", id).Delete(&models.DecisionQuality{}).Error; err != nil {
			return err
		}
		if err := tx.Where("trade_id = ?", id).Delete(&models.EmotionalCost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("trade_id = ?", id).Delete(&models.EmotionalDrift{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Trade{}).Error
	})
}

func (s *Store) ListTradeIDsMissingAnalytics(ctx context.Context, limit int) ([]uint64, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	limit = normalizeLimit(limit, 100)
	var ids []uint64
	err := s.db.WithContext(ctx).
		Model(&models.Trade{}).
		Where("decision_score IS NULL").
		Order("id asc").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// --- Derived analytics ------------------------------------------------------

func (s *Store) UpdateTradeAnalyticsTx(ctx context.Context, tx *gorm.DB, id uint64, updates map[string]any) error {
	if tx == nil || id == 0 || len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()
	return tx.WithContext(ctx).
		Model(&models.Trade{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

func (s *Store) UpsertDecisionQualityTx(ctx context.Context, tx *gorm.DB, item *models.DecisionQuality) error {
	if tx == nil || item == nil || item.TradeID == 0 {
		return nil
	}
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "trade_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"score",
			"setup_quality",
			"timing_quality",
			"risk_management",
			"strategy_alignment",
			"market_condition_match",
			"mistakes",
			"strengths",
			"learning_points",
			"recommendations",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) UpsertEmotionalCostTx(ctx context.Context, tx *gorm.DB, item *models.EmotionalCost) error {
	if tx == nil || item == nil || item.TradeID == 0 {
		return nil
	}
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "trade_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"cost_score",
			"stress_accumulation",
			"decision_quality_impact",
			"future_performance_impact",
			"recovery_time_minutes",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) GetDecisionQualityByTradeID(ctx context.Context, tradeID uint64) (*models.DecisionQuality, error) {
	if s == nil || s.db == nil || tradeID == 0 {
		return nil, nil
	}
	var item models.DecisionQuality
	err := s.db.WithContext(ctx).Where("trade_id = ?", tradeID).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetEmotionalCostByTradeID(ctx context.Context, tradeID uint64) (*models.EmotionalCost, error) {
	if s == nil || s.db == nil || tradeID == 0 {
		return nil, nil
	}
	var item models.EmotionalCost
	err := s.db.WithContext(ctx).Where("trade_id = ?", tradeID).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// --- Emotional drift --------------------------------------------------------

func (s *Store) UpsertEmotionalDrift(ctx context.Context, item *models.EmotionalDrift) error {
	if s == nil || s.db == nil || item == nil || item.TradeID == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "trade_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"confidence_change",
			"stress_change",
			"focus_change",
			"energy_change",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) GetEmotionalDriftByTradeID(ctx context.Context, tradeID uint64) (*models.EmotionalDrift, error) {
	if s == nil || s.db == nil || tradeID == 0 {
		return nil, nil
	}
	var item models.EmotionalDrift
	err := s.db.WithContext(ctx).Where("trade_id = ?", tradeID).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// --- Journal entries --------------------------------------------------------

func (s *Store) InsertJournalEntry(ctx context.Context, item *models.JournalEntry) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetJournalEntryByID(ctx context.Context, id uint64) (*models.JournalEntry, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.JournalEntry
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetJournalEntryByDate(ctx context.Context, date time.Time) (*models.JournalEntry, error) {
	if s == nil || s.db == nil || date.IsZero() {
		return nil, nil
	}
	var item models.JournalEntry
	err := s.db.WithContext(ctx).
		Where("entry_date = ?", date.UTC().Truncate(24*time.Hour)).
		First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListJournalEntries(ctx context.Context, params repository.ListJournalEntriesParams) ([]models.JournalEntry, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyJournalFilters(s.db.WithContext(ctx).Model(&models.JournalEntry{}), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "entry_date")
	limit := normalizeLimit(params.Limit, 50)
	offset := normalizeOffset(params.Offset)
	var items []models.JournalEntry
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountJournalEntries(ctx context.Context, params repository.ListJournalEntriesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	query := applyJournalFilters(s.db.WithContext(ctx).Model(&models.JournalEntry{}), params)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func applyJournalFilters(query *gorm.DB, params repository.ListJournalEntriesParams) *gorm.DB {
	if params.Phase != nil && strings.TrimSpace(*params.Phase) != "" {
		query = query.Where("phase = ?", strings.TrimSpace(*params.Phase))
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("entry_date >= ?", *params.Since)
	}
	if params.Until != nil && !params.Until.IsZero() {
		query = query.Where("entry_date <= ?", *params.Until)
	}
	return query
}

func (s *Store) UpdateJournalEntry(ctx context.Context, id uint64, updates map[string]any) error {
	if s == nil || s.db == nil || id == 0 || len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()
	return s.db.WithContext(ctx).
		Model(&models.JournalEntry{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

func (s *Store) DeleteJournalEntry(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil || id == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.JournalEntry{}).Error
}

// --- Strategies -------------------------------------------------------------

func (s *Store) InsertStrategy(ctx context.Context, item *models.Strategy) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.Name) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetStrategyByID(ctx context.Context, id uint64) (*models.Strategy, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.Strategy
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetStrategyByName(ctx context.Context, name string) (*models.Strategy, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	var item models.Strategy
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListStrategies(ctx context.Context) ([]models.Strategy, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Strategy
	if err := s.db.WithContext(ctx).
		Model(&models.Strategy{}).
		Order("name asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpdateStrategy(ctx context.Context, id uint64, updates map[string]any) error {
	if s == nil || s.db == nil || id == 0 || len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()
	return s.db.WithContext(ctx).
		Model(&models.Strategy{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

func (s *Store) UpdateStrategyStats(ctx context.Context, id uint64, stats []byte) error {
	if s == nil || s.db == nil || id == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Strategy{}).
		Where("id = ?", id).
		Updates(map[string]any{"stats": stats, "updated_at": time.Now().UTC()}).
		Error
}

func (s *Store) DeleteStrategy(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil || id == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Trade{}).
			Where("strategy_id = ?", id).
			Update("strategy_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Strategy{}).Error
	})
}

// --- Market conditions ------------------------------------------------------

func (s *Store) UpsertMarketCondition(ctx context.Context, item *models.MarketCondition) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.Name) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"description",
			"bias",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) GetMarketConditionByID(ctx context.Context, id uint64) (*models.MarketCondition, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.MarketCondition
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListMarketConditions(ctx context.Context) ([]models.MarketCondition, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.MarketCondition
	if err := s.db.WithContext(ctx).
		Model(&models.MarketCondition{}).
		Order("name asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Dashboard aggregates ---------------------------------------------------

func (s *Store) TradeStatsOverview(ctx context.Context, params repository.StatsParams) (repository.TradeStatsOverview, error) {
	var out repository.TradeStatsOverview
	if s == nil || s.db == nil {
		return out, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Trade{})
	if params.Account != nil && strings.TrimSpace(*params.Account) != "" {
		query = query.Where("account = ?", strings.TrimSpace(*params.Account))
	}
	if params.StartDate != nil && !params.StartDate.IsZero() {
		query = query.Where("entry_time >= ?", *params.StartDate)
	}
	if params.EndDate != nil && !params.EndDate.IsZero() {
		query = query.Where("entry_time <= ?", *params.EndDate)
	}
	row := struct {
		TotalTrades       int64
		OpenTrades        int64
		Wins              int64
		Losses            int64
		Breakevens        int64
		NetPnL            float64
		AvgDecisionScore  float64
		AvgEmotionalCost  float64
		AvgHoldingMinutes float64
	}{}
	err := query.Select(`
		COUNT(*) AS total_trades,
		COUNT(*) FILTER (WHERE outcome = 'OPEN') AS open_trades,
		COUNT(*) FILTER (WHERE outcome = 'WIN') AS wins,
		COUNT(*) FILTER (WHERE outcome = 'LOSS') AS losses,
		COUNT(*) FILTER (WHERE outcome = 'BREAKEVEN') AS breakevens,
		COALESCE(SUM(profit_loss), 0) AS net_pn_l,
		COALESCE(AVG(decision_score), 0) AS avg_decision_score,
		COALESCE(AVG(emotional_cost_score), 0) AS avg_emotional_cost,
		COALESCE(AVG(holding_time_minutes), 0) AS avg_holding_minutes
	`).Scan(&row).Error
	if err != nil {
		return out, err
	}
	out.TotalTrades = row.TotalTrades
	out.OpenTrades = row.OpenTrades
	out.Wins = row.Wins
	out.Losses = row.Losses
	out.Breakevens = row.Breakevens
	out.NetPnL = row.NetPnL
	out.AvgDecisionScore = row.AvgDecisionScore
	out.AvgEmotionalCost = row.AvgEmotionalCost
	out.AvgHoldingMinutes = row.AvgHoldingMinutes
	if closed := row.Wins + row.Losses + row.Breakevens; closed > 0 {
		out.WinRate = float64(row.Wins) / float64(closed)
	}
	return out, nil
}

func (s *Store) StatsByStrategy(ctx context.Context) ([]repository.StrategyStatsRow, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var rows []repository.StrategyStatsRow
	err := s.db.WithContext(ctx).
		Table("trades AS t").
		Select(`
			s.id AS strategy_id,
			s.name AS strategy_name,
			COUNT(t.id) AS trades,
			COUNT(*) FILTER (WHERE t.outcome = 'WIN') AS wins,
			COUNT(*) FILTER (WHERE t.outcome = 'LOSS') AS losses,
			COALESCE(SUM(t.profit_loss), 0) AS net_pn_l,
			COALESCE(AVG(t.decision_score), 0) AS avg_decision
		`).
		Joins("JOIN strategies AS s ON s.id = t.strategy_id").
		Group("s.id, s.name").
		Order("net_pn_l desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if closed := rows[i].Wins + rows[i].Losses; closed > 0 {
			rows[i].WinRate = float64(rows[i].Wins) / float64(closed)
		}
	}
	return rows, nil
}

func (s *Store) StatsByEmotion(ctx context.Context) ([]repository.EmotionStatsRow, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var rows []repository.EmotionStatsRow
	err := s.db.WithContext(ctx).
		Table("trades").
		Select(`
			emotional_state,
			COUNT(*) AS trades,
			COUNT(*) FILTER (WHERE outcome = 'WIN') AS wins,
			COALESCE(SUM(profit_loss), 0) AS net_pn_l,
			COALESCE(AVG(decision_score), 0) AS avg_decision,
			COALESCE(AVG(emotional_cost_score), 0) AS avg_emotional_cost
		`).
		Where("emotional_state <> ''").
		Group("emotional_state").
		Order("trades desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].Trades > 0 {
			rows[i].WinRate = float64(rows[i].Wins) / float64(rows[i].Trades)
		}
	}
	return rows, nil
}

func (s *Store) DailyPnL(ctx context.Context, since, until *time.Time) ([]repository.DailyPnLRow, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).
		Table("trades").
		Select(`
			DATE(entry_time) AS day,
			COUNT(*) AS trades,
			COUNT(*) FILTER (WHERE outcome = 'WIN') AS wins,
			COALESCE(SUM(profit_loss), 0) AS net_pn_l
		`).
		Group("DATE(entry_time)").
		Order("day asc")
	if since != nil && !since.IsZero() {
		query = query.Where("entry_time >= ?", *since)
	}
	if until != nil && !until.IsZero() {
		query = query.Where("entry_time <= ?", *until)
	}
	var rows []repository.DailyPnLRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// --- helpers ----------------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
