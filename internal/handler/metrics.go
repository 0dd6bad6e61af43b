package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-analytics/internal/analytics"
	"retail-analytics/internal/model"
	"retail-analytics/internal/service"
)

// MetricsHandler serves the dashboard KPI endpoints.
type MetricsHandler struct {
	analytics service.AnalyticsService
}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler(analyticsService service.AnalyticsService) *MetricsHandler {
	return &MetricsHandler{analytics: analyticsService}
}

// Summary returns total revenue, average order value, and order count for the
// orders matching the filter.
func (h *MetricsHandler) Summary(c *gin.Context) {
	filter, err := orderFilterFromQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	summary, err := h.analytics.Summary(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// TopCustomers returns customers ranked by revenue. The limit query parameter
// defaults to the standard ranking size when absent.
func (h *MetricsHandler) TopCustomers(c *gin.Context) {
	filter, err := orderFilterFromQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	limit, err := intQuery(c, "limit", analytics.DefaultTopCustomersLimit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	top, err := h.analytics.TopCustomers(c.Request.Context(), filter, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, model.TopCustomersResponse{TopCustomers: top, Limit: limit})
}

// RevenueByCategory returns revenue grouped by product category.
func (h *MetricsHandler) RevenueByCategory(c *gin.Context) {
	filter, err := orderFilterFromQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	rows, err := h.analytics.RevenueByCategory(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, model.CategoryRevenueResponse{Categories: rows})
}
