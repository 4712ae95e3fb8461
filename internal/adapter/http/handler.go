// Package http exposes the read-only dashboard API over echo. It serves
// the deals log and the price history as structured JSON; rendering into
// human-readable form is a client concern.
package http

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/flight-deals/flight-deal-radar/internal/adapter/http/response"
	"github.com/flight-deals/flight-deal-radar/internal/domain"
	"github.com/flight-deals/flight-deal-radar/internal/history"
)

// DealsReader provides read access to the per-date deals log.
type DealsReader interface {
	// Dates returns every recorded date, most recent first.
	Dates() ([]string, error)

	// Get returns the scan results recorded for a date.
	Get(date string) ([]domain.ScanResult, error)
}

// HistoryReader provides read access to the price-history windows.
type HistoryReader interface {
	// Keys returns every tracked route/date key.
	Keys(ctx context.Context) []string

	// Window returns a key's current observation window.
	Window(ctx context.Context, key string) []history.Observation
}

// DashboardHandler serves the dashboard endpoints.
type DashboardHandler struct {
	deals   DealsReader
	history HistoryReader
}

// NewDashboardHandler creates a handler over the given readers.
func NewDashboardHandler(deals DealsReader, hist HistoryReader) *DashboardHandler {
	return &DashboardHandler{deals: deals, history: hist}
}

// ListDeals handles GET /api/v1/deals: the recorded scan dates.
func (h *DashboardHandler) ListDeals(c echo.Context) error {
	dates, err := h.deals.Dates()
	if err != nil {
		return response.StoreUnavailable(c, "deals log is unreadable")
	}
	return response.OK(c, map[string]interface{}{"dates": dates})
}

// GetDeals handles GET /api/v1/deals/:date: every scan result recorded
// for that date.
func (h *DashboardHandler) GetDeals(c echo.Context) error {
	date := c.Param("date")

	results, err := h.deals.Get(date)
	if err != nil {
		return response.StoreUnavailable(c, "deals log is unreadable")
	}
	if len(results) == 0 {
		return response.NotFound(c, "no deals recorded for "+date)
	}
	return response.OK(c, map[string]interface{}{
		"date":  date,
		"scans": results,
	})
}

// ListHistory handles GET /api/v1/history: every tracked route/date key.
func (h *DashboardHandler) ListHistory(c echo.Context) error {
	return response.OK(c, map[string]interface{}{
		"keys": h.history.Keys(c.Request().Context()),
	})
}

// GetHistory handles GET /api/v1/history/:key: the observation window for
// one route/date key.
func (h *DashboardHandler) GetHistory(c echo.Context) error {
	key := c.Param("key")

	window := h.history.Window(c.Request().Context(), key)
	if len(window) == 0 {
		return response.NotFound(c, "no observations for "+key)
	}
	return response.OK(c, map[string]interface{}{
		"key":          key,
		"observations": window,
	})
}
