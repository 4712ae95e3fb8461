package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes wires the dashboard endpoints onto the Echo instance.
// The health check sits at root level for load balancers.
func RegisterRoutes(e *echo.Echo, h *DashboardHandler) {
	e.GET("/health", healthCheck)

	api := e.Group("/api/v1")
	api.GET("/deals", h.ListDeals)
	api.GET("/deals/:date", h.GetDeals)
	api.GET("/history", h.ListHistory)
	api.GET("/history/:key", h.GetHistory)
}

// healthCheck reports service liveness.
func healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
