package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-analytics/internal/repository"
	"retail-analytics/internal/service"
)

// ProductHandler serves catalog read endpoints.
type ProductHandler struct {
	products service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{products: productService}
}

// Get returns one product with its margin and reorder flags.
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// List returns a page of products. Supports category_id, active, and
// low_stock query filters.
func (h *ProductHandler) List(c *gin.Context) {
	categoryID, err := uintQuery(c, "category_id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	filter := repository.ProductFilter{
		CategoryID: categoryID,
		ActiveOnly: boolQuery(c, "active"),
		LowStock:   boolQuery(c, "low_stock"),
	}

	page, err := pageFromQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	paged, err := h.products.List(c.Request.Context(), filter, page)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, paged)
}
