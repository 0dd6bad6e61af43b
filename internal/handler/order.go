package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-analytics/internal/apperror"
	"retail-analytics/internal/model"
	"retail-analytics/internal/service"
)

// OrderHandler serves order CRUD endpoints.
type OrderHandler struct {
	orders service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orderService}
}

// Create records a new order with server-computed totals.
func (h *OrderHandler) Create(c *gin.Context) {
	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.Validationf("invalid request body: %v", err))
		return
	}

	order, err := h.orders.Create(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// Get returns one order with its items, products, and customer.
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// List returns a page of orders matching the filter, newest first.
func (h *OrderHandler) List(c *gin.Context) {
	filter, err := orderFilterFromQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	page, err := pageFromQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	paged, err := h.orders.List(c.Request.Context(), filter, page)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, paged)
}

// UpdateItems replaces the order's line items and recomputes its totals.
func (h *OrderHandler) UpdateItems(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req model.UpdateOrderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.Validationf("invalid request body: %v", err))
		return
	}

	order, err := h.orders.UpdateItems(c.Request.Context(), id, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateStatus moves the order to a new lifecycle status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req model.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.Validationf("invalid request body: %v", err))
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// Delete removes an order and its items.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
