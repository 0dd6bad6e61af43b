package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"retail-analytics/internal/apperror"
	"retail-analytics/internal/model"
)

// ProductRepository provides product lookups for order building and the
// read-side listings.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter, page Page) ([]model.Product, int64, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a GORM-backed ProductRepository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return dbErr("failed to create product", err)
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("product", id)
	}
	if err != nil {
		return nil, dbErr("failed to load product", err)
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter, page Page) ([]model.Product, int64, error) {
	page = page.Normalize()
	query := r.db.WithContext(ctx).Model(&model.Product{})
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.LowStock {
		query = query.Where("stock_quantity <= reorder_level")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, dbErr("failed to count products", err)
	}

	var products []model.Product
	err := query.
		Preload("Category").
		Order("sku").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&products).Error
	if err != nil {
		return nil, 0, dbErr("failed to list products", err)
	}
	return products, total, nil
}
