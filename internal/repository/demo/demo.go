// Package demo is the read-only fallback store: when the database cannot
// be opened the API serves this embedded dataset instead of erroring.
// Every write returns repository.ErrStoreReadOnly.
package demo

import (
	"context"
	_ "embed"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

//go:embed demo_data.json
var demoData []byte

type dataset struct {
	Trades            []models.Trade           `json:"trades"`
	DecisionQualities []models.DecisionQuality `json:"decision_qualities"`
	EmotionalCosts    []models.EmotionalCost   `json:"emotional_costs"`
	EmotionalDrifts   []models.EmotionalDrift  `json:"emotional_drifts"`
	JournalEntries    []models.JournalEntry    `json:"journal_entries"`
	Strategies        []models.Strategy        `json:"strategies"`
	MarketConditions  []models.MarketCondition `json:"market_conditions"`
}

type Store struct {
	data dataset
}

func New() (*Store, error) {
	var d dataset
	if err := json.Unmarshal(demoData, &d); err != nil {
		return nil, err
	}
	return &Store{data: d}, nil
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return repository.ErrStoreReadOnly
}

// --- Trades -----------------------------------------------------------------

func (s *Store) InsertTrade(ctx context.Context, item *models.Trade) error {
	return repository.ErrStoreReadOnly
}

func (s *Store) GetTradeByID(ctx context.Context, id uint64) (*models.Trade, error) {
	for i := range s.data.Trades {
		if s.data.Trades[i].ID == id {
			t := s.data.Trades[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (s *Store) GetTradeWithRelations(ctx context.Context, id uint64) (*models.Trade, error) {
	trade, err := s.GetTradeByID(ctx, id)
	if err != nil || trade == nil {
		return trade, err
	}
	if trade.StrategyID != nil {
		trade.Strategy, _ = s.GetStrategyByID(ctx, *trade.StrategyID)
	}
	if trade.MarketConditionID != nil {
		trade.MarketCondition, _ = s.GetMarketConditionByID(ctx, *trade.MarketConditionID)
	}
	trade.EmotionalDrift, _ = s.GetEmotionalDriftByTradeID(ctx, id)
	return trade, nil
}

func (s *Store) ListTrades(ctx context.Context, params repository.ListTradesParams) ([]models.Trade, error) {
	matched := make([]models.Trade, 0, len(s.data.Trades))
	for _, t := range s.data.Trades {
		if tradeMatches(t, params) {
			matched = append(matched, t)
		}
	}
	asc := params.Asc != nil && *params.Asc
	sort.Slice(matched, func(i, j int) bool {
		if asc {
			return matched[i].EntryTime.Before(matched[j].EntryTime)
		}
		return matched[i].EntryTime.After(matched[j].EntryTime)
	})
	return page(matched, params.Limit, params.Offset), nil
}

func (s *Store) CountTrades(ctx context.Context, params repository.ListTradesParams) (int64, error) {
	var total int64
	for _, t := range s.data.Trades {
		if tradeMatches(t, params) {
			total++
		}
	}
	return total, nil
}

func tradeMatches(t models.Trade, params repository.ListTradesParams) bool {
	if params.Pair != nil && !strings.EqualFold(t.Pair, strings.TrimSpace(*params.Pair)) {
		return false
	}
	if params.Outcome != nil && !strings.EqualFold(t.Outcome, strings.TrimSpace(*params.Outcome)) {
		return false
	}
	if params.Account != nil && t.Account != strings.TrimSpace(*params.Account) {
		return false
	}
	if params.StrategyID != nil && (t.StrategyID == nil || *t.StrategyID != *params.StrategyID) {
		return false
	}
	if params.Search != nil {
		needle := strings.ToLower(strings.TrimSpace(*params.Search))
		haystack := strings.ToLower(t.Notes + " " + t.Mistakes + " " + t.Lessons)
		if needle != "" && !strings.Contains(haystack, needle) {
			return false
		}
	}
	if params.StartDate != nil && t.EntryTime.Before(*params.StartDate) {
		return false
	}
	if params.EndDate != nil && t.EntryTime.After(*params.EndDate) {
		return false
	}
	return true
}

func (s *Store) UpdateTrade(ctx context.Context, id uint64, updates map[string]any) error {
	return repository.ErrStoreReadOnly
}

func (s *Store) DeleteTrade(ctx context.Context, id uint64) error {
	return repository.ErrStoreReadOnly
}

func (s *Store) ListTradeIDsMissingAnalytics(ctx context.Context, limit int) ([]uint64, error) {
	return nil, nil
}

// --- Derived analytics ------------------------------------------------------

func (s *Store) UpdateTradeAnalyticsTx(ctx context.Context, tx *gorm.DB, id uint64, updates map[string]any) error {
	return repository.ErrStoreReadOnly
}

func (s *Store) UpsertDecisionQualityTx(ctx context.Context, tx *gorm.DB, item *models.DecisionQuality) error {
	return repository.ErrStoreReadOnly
}

func (s *Store) UpsertEmotionalCostTx(ctx context.Context, tx *gorm.DB, item *models.EmotionalCost) error {
	return repository.ErrStoreReadOnly
}

func (s *Store) GetDecisionQualityByTradeID(ctx context.Context, tradeID uint64) (*models.DecisionQuality, error) {
	for i := range s.data.DecisionQualities {
		if s.data.DecisionQualities[i].TradeID == tradeID {
			item := s.data.DecisionQualities[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (s *Store) GetEmotionalCostByTradeID(ctx context.Context, tradeID uint64) (*models.EmotionalCost, error) {
	for i := range s.data.EmotionalCosts {
		if s.data.EmotionalCosts[i].TradeID == tradeID {
			item := s.data.EmotionalCosts[i]
			return &item, nil
		}
	}
	return nil, nil
}

// --- Emotional drift --------------------------------------------------------

func (s *Store) UpsertEmotionalDrift(ctx context.Context, item *models.EmotionalDrift) error {
	return repository.ErrStoreReadOnly
}

func (s *Store) GetEmotionalDriftByTradeID(ctx context.Context, tradeID uint64) (*models.EmotionalDrift, error) {
	for i := range s.data.EmotionalDrifts {
		if s.data.EmotionalDrifts[i].TradeID == tradeID {
			item := s.data.EmotionalDrifts[i]
			return &item, nil
		}
	}
	return nil, nil
}

// --- Journal entries --------------------------------------------------------

func (s *Store) InsertJournalEntry(ctx context.Context, item *models.JournalEntry) error {
	return repository.ErrStoreReadOnly
}

func (s *Store) GetJournalEntryByID(ctx context.Context, id uint64) (*models.JournalEntry, error) {
	for i := range s.data.JournalEntries {
		if s.data.JournalEntries[i].ID == id {
			item := s.data.JournalEntries[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (s *Store) GetJournalEntryByDate(ctx context.Context, date time.Time) (*models.JournalEntry, error) {
	day := date.UTC().Truncate(24 * time.Hour)
	for i := range s.data.JournalEntries {
		if s.data.JournalEntries[i].EntryDate.UTC().Truncate(24 * time.Hour).Equal(day) {
			item := s.data.JournalEntries[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (s *Store) ListJournalEntries(ctx context.Context, params repository.ListJournalEntriesParams) ([]models.JournalEntry, error) {
	matched := make([]models.JournalEntry, 0, len(s.data.JournalEntries))
	for _, e := range s.data.JournalEntries {
		if journalMatches(e, params) {
			matched = append(matched, e)
		}
	}
	asc := params.Asc != nil && *params.Asc
	sort.Slice(matched, func(i, j int) bool {
		if asc {
			return matched[i].EntryDate.Before(matched[j].EntryDate)
		}
		return matched[i].EntryDate.After(matched[j].EntryDate)
	})
	return page(matched, params.Limit, params.Offset), nil
}

func (s *Store) CountJournalEntries(ctx context.Context, params repository.ListJournalEntriesParams) (int64, error) {
	var total int64
	for _, e := range s.data.JournalEntries {
		if journalMatches(e, params) {
			total++
		}
	}
	return total, nil
}

func journalMatches(e models.JournalEntry, params repository.ListJournalEntriesParams) bool {
	if params.Phase != nil && !strings.EqualFold(e.Phase, strings.TrimSpace(*params.Phase)) {
		return false
	}
	if params.Since != nil && e.EntryDate.Before(*params.Since) {
		return false
	}
	if params.Until != nil && e.EntryDate.After(*params.Until) {
		return false
	}
	return true
}

func (s *Store) UpdateJournalEntry(ctx context.Context, id uint64, updates map[string]any) error {
	return repository.ErrStoreReadOnly
}

func (s *Store) DeleteJournalEntry(ctx context.Context, id uint64) error {
	return repository.ErrStoreReadOnly
}

// --- Strategies -------------------------------------------------------------

func (s *Store) InsertStrategy(ctx context.Context, item *models.Strategy) error {
	return repository.ErrStoreReadOnly
}

func (s *Store) GetStrategyByID(ctx context.Context, id uint64) (*models.Strategy, error) {
	for i := range s.data.Strategies {
		if s.data.Strategies[i].ID == id {
			item := s.data.Strategies[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (s *Store) GetStrategyByName(ctx context.Context, name string) (*models.Strategy, error) {
	for i := range s.data.Strategies {
		if strings.EqualFold(s.data.Strategies[i].Name, strings.TrimSpace(name)) {
			item := s.data.Strategies[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (s *Store) ListStrategies(ctx context.Context) ([]models.Strategy, error) {
	items := append([]models.Strategy(nil), s.data.Strategies...)
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *Store) UpdateStrategy(ctx context.Context, id uint64, updates map[string]any) error {
	return repository.ErrStoreReadOnly
}

func (s *Store) UpdateStrategyStats(ctx context.Context, id uint64, stats []byte) error {
	return repository.ErrStoreReadOnly
}

func (s *Store) DeleteStrategy(ctx context.Context, id uint64) error {
	return repository.ErrStoreReadOnly
}

// --- Market conditions ------------------------------------------------------

func (s *Store) UpsertMarketCondition(ctx context.Context, item *models.MarketCondition) error {
	return repository.ErrStoreReadOnly
}

func (s *Store) GetMarketConditionByID(ctx context.Context, id uint64) (*models.MarketCondition, error) {
	for i := range s.data.MarketConditions {
		if s.data.MarketConditions[i].ID == id {
			item := s.data.MarketConditions[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (s *Store) ListMarketConditions(ctx context.Context) ([]models.MarketCondition, error) {
	items := append([]models.MarketCondition(nil), s.data.MarketConditions...)
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// --- Dashboard aggregates ---------------------------------------------------

func (s *Store) TradeStatsOverview(ctx context.Context, params repository.StatsParams) (repository.TradeStatsOverview, error) {
	var out repository.TradeStatsOverview
	var decisionSum, costSum, holdSum float64
	var decisionN, costN, holdN int64
	for _, t := range s.data.Trades {
		if params.Account != nil && t.Account != strings.TrimSpace(*params.Account) {
			continue
		}
		if params.StartDate != nil && t.EntryTime.Before(*params.StartDate) {
			continue
		}
		if params.EndDate != nil && t.EntryTime.After(*params.EndDate) {
			continue
		}
		out.TotalTrades++
		switch t.Outcome {
		case models.OutcomeOpen:
			out.OpenTrades++
		case models.OutcomeWin:
			out.Wins++
		case models.OutcomeLoss:
			out.Losses++
		case models.OutcomeBreakeven:
			out.Breakevens++
		}
		if t.ProfitLoss != nil {
			out.NetPnL += t.ProfitLoss.InexactFloat64()
		}
		if t.DecisionScore != nil {
			decisionSum += float64(*t.DecisionScore)
			decisionN++
		}
		if t.EmotionalCostScore != nil {
			costSum += *t.EmotionalCostScore
			costN++
		}
		if t.HoldingTimeMinutes != nil {
			holdSum += float64(*t.HoldingTimeMinutes)
			holdN++
		}
	}
	if closed := out.Wins + out.Losses + out.Breakevens; closed > 0 {
		out.WinRate = float64(out.Wins) / float64(closed)
	}
	if decisionN > 0 {
		out.AvgDecisionScore = decisionSum / float64(decisionN)
	}
	if costN > 0 {
		out.AvgEmotionalCost = costSum / float64(costN)
	}
	if holdN > 0 {
		out.AvgHoldingMinutes = holdSum / float64(holdN)
	}
	return out, nil
}

func (s *Store) StatsByStrategy(ctx context.Context) ([]repository.StrategyStatsRow, error) {
	byID := map[uint64]*repository.StrategyStatsRow{}
	decisionSums := map[uint64]float64{}
	decisionCounts := map[uint64]int64{}
	for _, t := range s.data.Trades {
		if t.StrategyID == nil {
			continue
		}
		row, ok := byID[*t.StrategyID]
		if !ok {
			row = &repository.StrategyStatsRow{StrategyID: *t.StrategyID}
			if st, _ := s.GetStrategyByID(ctx, *t.StrategyID); st != nil {
				row.StrategyName = st.Name
			}
			byID[*t.StrategyID] = row
		}
		row.Trades++
		switch t.Outcome {
		case models.OutcomeWin:
			row.Wins++
		case models.OutcomeLoss:
			row.Losses++
		}
		if t.ProfitLoss != nil {
			row.NetPnL += t.ProfitLoss.InexactFloat64()
		}
		if t.DecisionScore != nil {
			decisionSums[*t.StrategyID] += float64(*t.DecisionScore)
			decisionCounts[*t.StrategyID]++
		}
	}
	rows := make([]repository.StrategyStatsRow, 0, len(byID))
	for id, row := range byID {
		if n := decisionCounts[id]; n > 0 {
			row.AvgDecision = decisionSums[id] / float64(n)
		}
		if closed := row.Wins + row.Losses; closed > 0 {
			row.WinRate = float64(row.Wins) / float64(closed)
		}
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].NetPnL > rows[j].NetPnL })
	return rows, nil
}

func (s *Store) StatsByEmotion(ctx context.Context) ([]repository.EmotionStatsRow, error) {
	byState := map[string]*repository.EmotionStatsRow{}
	decisionSums := map[string]float64{}
	decisionCounts := map[string]int64{}
	costSums := map[string]float64{}
	costCounts := map[string]int64{}
	for _, t := range s.data.Trades {
		state := strings.TrimSpace(t.EmotionalState)
		if state == "" {
			continue
		}
		row, ok := byState[state]
		if !ok {
			row = &repository.EmotionStatsRow{EmotionalState: state}
			byState[state] = row
		}
		row.Trades++
		if t.Outcome == models.OutcomeWin {
			row.Wins++
		}
		if t.ProfitLoss != nil {
			row.NetPnL += t.ProfitLoss.InexactFloat64()
		}
		if t.DecisionScore != nil {
			decisionSums[state] += float64(*t.DecisionScore)
			decisionCounts[state]++
		}
		if t.EmotionalCostScore != nil {
			costSums[state] += *t.EmotionalCostScore
			costCounts[state]++
		}
	}
	rows := make([]repository.EmotionStatsRow, 0, len(byState))
	for state, row := range byState {
		if n := decisionCounts[state]; n > 0 {
			row.AvgDecision = decisionSums[state] / float64(n)
		}
		if n := costCounts[state]; n > 0 {
			row.AvgEmotionalCost = costSums[state] / float64(n)
		}
		if row.Trades > 0 {
			row.WinRate = float64(row.Wins) / float64(row.Trades)
		}
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Trades > rows[j].Trades })
	return rows, nil
}

func (s *Store) DailyPnL(ctx context.Context, since, until *time.Time) ([]repository.DailyPnLRow, error) {
	byDay := map[time.Time]*repository.DailyPnLRow{}
	for _, t := range s.data.Trades {
		if since != nil && t.EntryTime.Before(*since) {
			continue
		}
		if until != nil && t.EntryTime.After(*until) {
			continue
		}
		day := t.EntryTime.UTC().Truncate(24 * time.Hour)
		row, ok := byDay[day]
		if !ok {
			row = &repository.DailyPnLRow{Day: day}
			byDay[day] = row
		}
		row.Trades++
		if t.Outcome == models.OutcomeWin {
			row.Wins++
		}
		if t.ProfitLoss != nil {
			row.NetPnL += t.ProfitLoss.InexactFloat64()
		}
	}
	rows := make([]repository.DailyPnLRow, 0, len(byDay))
	for _, row := range byDay {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Day.Before(rows[j].Day) })
	return rows, nil
}

// --- helpers ----------------------------------------------------------------

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
