package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/repository"
)

// Every endpoint answers with the same envelope: {success:true,data,pagination?}
// on success, {success:false,error:{code,message,details?}} on failure.
type apiResponse struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Pagination *pagination `json:"pagination,omitempty"`
	Error      *apiError   `json:"error,omitempty"`
}

type pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

type apiError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func Ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, apiResponse{Success: true, Data: data})
}

func OkPaged(c *gin.Context, data any, page, limit int, total int64) {
	c.JSON(http.StatusOK, apiResponse{
		Success:    true,
		Data:       data,
		Pagination: newPagination(page, limit, total),
	})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, apiResponse{Success: true, Data: data})
}

func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, apiResponse{
		Success: false,
		Error:   &apiError{Code: code, Message: message},
	})
}

// ValidationError reports field-level problems as 400 with details.
func ValidationError(c *gin.Context, details map[string]string) {
	c.JSON(http.StatusBadRequest, apiResponse{
		Success: false,
		Error: &apiError{
			Code:    "VALIDATION_ERROR",
			Message: "request validation failed",
			Details: details,
		},
	})
}

// StoreError maps repository errors to envelope codes. The read-only
// demo store turns every write into a 503.
func StoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrStoreReadOnly):
		Error(c, http.StatusServiceUnavailable, "STORE_READ_ONLY", "database unavailable, demo data is read-only")
	case errors.Is(err, repository.ErrTradeNotFound):
		Error(c, http.StatusNotFound, "NOT_FOUND", "trade not found")
	default:
		Error(c, http.StatusInternalServerError, "INTERNAL", err.Error())
	}
}

func newPagination(page, limit int, total int64) *pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return &pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}
