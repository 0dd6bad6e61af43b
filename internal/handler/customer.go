package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-analytics/internal/service"
)

// CustomerHandler serves customer read endpoints.
type CustomerHandler struct {
	customers service.CustomerService
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customerService}
}

// Get returns one customer with their order count.
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	customer, err := h.customers.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// List returns a page of customers ordered by name.
func (h *CustomerHandler) List(c *gin.Context) {
	page, err := pageFromQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	paged, err := h.customers.List(c.Request.Context(), page)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, paged)
}
