package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/itemwatch/itemwatch/internal/domain/models"
	"github.com/itemwatch/itemwatch/internal/service"
)

var (
	_ service.PriceService   = (*stubPrices)(nil)
	_ service.ListingService = (*stubListings)(nil)
	_ service.ChartService   = (*stubCharts)(nil)
)

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)

	charts := &stubCharts{
		leagues: []models.League{{ID: 1, Name: "Standard", Display: "Standard", Active: true, Special: true}},
	}
	h := NewHandler(&stubPrices{}, &stubListings{}, charts)
	r := NewRouter(h)

	w := performRequest(r, "/api/v1/leagues")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// RequestID middleware injects the tracing header.
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}

	var out []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if len(out) != 1 || out[0]["name"] != "Standard" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestNewRouter_UnknownRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewHandler(&stubPrices{}, &stubListings{}, &stubCharts{})
	r := NewRouter(h)

	if w := performRequest(r, "/api/v1/nope"); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
