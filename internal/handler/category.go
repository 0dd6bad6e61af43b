package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-analytics/internal/service"
)

// CategoryHandler serves category read endpoints.
type CategoryHandler struct {
	categories service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categoryService}
}

// List returns all categories ordered by name.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Get returns one category with its subcategories.
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	category, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, category)
}
