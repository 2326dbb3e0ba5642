package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

type JournalHandler struct {
	Repo repository.Repository
}

func (h *JournalHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/journal")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

// @Summary List journal entries
// @Tags journal
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Param phase query string false "market phase filter"
// @Param since query string false "entry date lower bound"
// @Param until query string false "entry date upper bound"
// @Success 200 {object} apiResponse
// @Router /api/v1/journal [get]
func (h *JournalHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "repo unavailable")
		return
	}
	page, limit, offset := pageParams(c)
	params := repository.ListJournalEntriesParams{
		Limit:   limit,
		Offset:  offset,
		Phase:   strQueryPtr(c, "phase"),
		Since:   timeQueryPtr(c, "since"),
		Until:   timeQueryPtr(c, "until"),
		OrderBy: "entry_date",
		Asc:     boolPtr(false),
	}
	items, err := h.Repo.ListJournalEntries(c.Request.Context(), params)
	if err != nil {
		StoreError(c, err)
		return
	}
	total, err := h.Repo.CountJournalEntries(c.Request.Context(), params)
	if err != nil {
		StoreError(c, err)
		return
	}
	OkPaged(c, items, page, limit, total)
}

type journalEntryRequest struct {
	EntryDate   string   `json:"entry_date"`
	MentalState string   `json:"mental_state"`
	FocusLevel  *int     `json:"focus_level"`
	Confidence  *int     `json:"confidence"`
	Stressors   []string `json:"stressors"`
	Phase       string   `json:"phase"`
	Notes       string   `json:"notes"`
}

func parseEntryDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if d, err := time.Parse("2006-01-02", raw); err == nil {
		return d.UTC(), true
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts.UTC().Truncate(24 * time.Hour), true
	}
	return time.Time{}, false
}

// @Summary Create journal entry
// @Tags journal
// @Param body body journalEntryRequest true "entry"
// @Success 201 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/v1/journal [post]
func (h *JournalHandler) create(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "repo unavailable")
		return
	}
	var req journalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, map[string]string{"body": "invalid JSON body"})
		return
	}
	entryDate, ok := parseEntryDate(req.EntryDate)
	if !ok {
		ValidationError(c, map[string]string{"entry_date": "entry_date must be a valid date"})
		return
	}
	existing, err := h.Repo.GetJournalEntryByDate(c.Request.Context(), entryDate)
	if err != nil {
		StoreError(c, err)
		return
	}
	if existing != nil {
		ValidationError(c, map[string]string{"entry_date": "an entry for this date already exists"})
		return
	}
	item := &models.JournalEntry{
		EntryDate:   entryDate,
		MentalState: req.MentalState,
		FocusLevel:  req.FocusLevel,
		Confidence:  req.Confidence,
		Phase:       strings.TrimSpace(req.Phase),
		Notes:       req.Notes,
	}
	if len(req.Stressors) > 0 {
		raw, _ := json.Marshal(req.Stressors)
		item.Stressors = raw
	}
	if err := h.Repo.InsertJournalEntry(c.Request.Context(), item); err != nil {
		StoreError(c, err)
		return
	}
	Created(c, item)
}

// @Summary Get journal entry
// @Tags journal
// @Param id path int true "entry id"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/v1/journal/{id} [get]
func (h *JournalHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "repo unavailable")
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		ValidationError(c, map[string]string{"id": "invalid entry id"})
		return
	}
	item, err := h.Repo.GetJournalEntryByID(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "NOT_FOUND", "journal entry not found")
		return
	}
	Ok(c, item)
}

type journalEntryUpdateRequest struct {
	MentalState *string  `json:"mental_state"`
	FocusLevel  *int     `json:"focus_level"`
	Confidence  *int     `json:"confidence"`
	Stressors   []string `json:"stressors"`
	Phase       *string  `json:"phase"`
	Notes       *string  `json:"notes"`
}

// @Summary Update journal entry
// @Tags journal
// @Param id path int true "entry id"
// @Param body body journalEntryUpdateRequest true "fields to update"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/v1/journal/{id} [put]
func (h *JournalHandler) update(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "repo unavailable")
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		ValidationError(c, map[string]string{"id": "invalid entry id"})
		return
	}
	existing, err := h.Repo.GetJournalEntryByID(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	if existing == nil {
		Error(c, http.StatusNotFound, "NOT_FOUND", "journal entry not found")
		return
	}
	var req journalEntryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, map[string]string{"body": "invalid JSON body"})
		return
	}
	updates := map[string]any{}
	if req.MentalState != nil {
		updates["mental_state"] = *req.MentalState
	}
	if req.FocusLevel != nil {
		updates["focus_level"] = *req.FocusLevel
	}
	if req.Confidence != nil {
		updates["confidence"] = *req.Confidence
	}
	if req.Stressors != nil {
		raw, _ := json.Marshal(req.Stressors)
		updates["stressors"] = raw
	}
	if req.Phase != nil {
		updates["phase"] = strings.TrimSpace(*req.Phase)
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) > 0 {
		if err := h.Repo.UpdateJournalEntry(c.Request.Context(), id, updates); err != nil {
			StoreError(c, err)
			return
		}
	}
	item, _ := h.Repo.GetJournalEntryByID(c.Request.Context(), id)
	Ok(c, item)
}

// @Summary Delete journal entry
// @Tags journal
// @Param id path int true "entry id"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/v1/journal/{id} [delete]
func (h *JournalHandler) delete(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "repo unavailable")
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		ValidationError(c, map[string]string{"id": "invalid entry id"})
		return
	}
	existing, err := h.Repo.GetJournalEntryByID(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	if existing == nil {
		Error(c, http.StatusNotFound, "NOT_FOUND", "journal entry not found")
		return
	}
	if err := h.Repo.DeleteJournalEntry(c.Request.Context(), id); err != nil {
		StoreError(c, err)
		return
	}
	Ok(c, map[string]any{"id": id, "deleted": true})
}
