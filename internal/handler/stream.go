package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/stream"
)

type StreamHandler struct {
	Hub *stream.Hub
}

func (h *StreamHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/stream", h.stream)
}

// @Summary Live journal event stream (websocket)
// @Tags stream
// @Router /api/v1/stream [get]
func (h *StreamHandler) stream(c *gin.Context) {
	if h.Hub == nil {
		Error(c, http.StatusInternalServerError, "INTERNAL", "stream unavailable")
		return
	}
	h.Hub.Serve(c.Writer, c.Request)
}
