package service

import (
	"context"

	"retail-analytics/internal/model"
	"retail-analytics/internal/repository"
)

// CategoryService serves the category listing.
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	Get(ctx context.Context, id uint) (*model.Category, error)
}

type categoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

func (s *categoryService) Get(ctx context.Context, id uint) (*model.Category, error) {
	return s.categories.GetByID(ctx, id)
}
