package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func serveReady(h *HealthHandler) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h.Register(engine)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestReadyzDemoMode(t *testing.T) {
	w := serveReady(&HealthHandler{DemoMode: true})
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"mode":"demo"`) {
		t.Fatalf("body=%s want demo mode", w.Body.String())
	}
}

func TestReadyzWithoutDB(t *testing.T) {
	w := serveReady(&HealthHandler{})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d want 503", w.Code)
	}
	if !strings.Contains(w.Body.String(), "db_missing") {
		t.Fatalf("body=%s want db_missing", w.Body.String())
	}
}
