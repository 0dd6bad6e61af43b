package service

import (
	"context"

	"retail-analytics/internal/model"
	"retail-analytics/internal/repository"
)

// ProductService serves the read-side product views.
type ProductService interface {
	Get(ctx context.Context, id uint) (*model.ProductDetail, error)
	List(ctx context.Context, filter repository.ProductFilter, page repository.Page) (*model.PagedProducts, error)
}

type productService struct {
	products repository.ProductRepository
}

// NewProductService creates a ProductService.
func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

func (s *productService) Get(ctx context.Context, id uint) (*model.ProductDetail, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := toProductDetail(product)
	return &detail, nil
}

func (s *productService) List(ctx context.Context, filter repository.ProductFilter, page repository.Page) (*model.PagedProducts, error) {
	page = page.Normalize()
	products, total, err := s.products.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	details := make([]model.ProductDetail, 0, len(products))
	for i := range products {
		details = append(details, toProductDetail(&products[i]))
	}
	return &model.PagedProducts{
		Products:   details,
		Total:      total,
		Page:       page.Number,
		Limit:      page.Size,
		TotalPages: repository.TotalPages(total, page.Size),
	}, nil
}

func toProductDetail(p *model.Product) model.ProductDetail {
	detail := model.ProductDetail{
		Product:      *p,
		ProfitMargin: p.ProfitMargin(),
		NeedsReorder: p.NeedsReorder(),
	}
	if p.Category != nil {
		detail.CategoryName = p.Category.Name
	}
	return detail
}
