package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"retail-analytics/internal/apperror"
	"retail-analytics/internal/model"
)

// CustomerRepository provides customer lookups for the read side and for
// enriching analytics results with names.
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	GetByID(ctx context.Context, id uint) (*model.Customer, error)
	List(ctx context.Context, page Page) ([]model.Customer, int64, error)
	NamesByID(ctx context.Context, ids []uint) (map[uint]string, error)
	OrderCount(ctx context.Context, id uint) (int64, error)
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a GORM-backed CustomerRepository.
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return dbErr("failed to create customer", err)
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id uint) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).First(&customer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("customer", id)
	}
	if err != nil {
		return nil, dbErr("failed to load customer", err)
	}
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, page Page) ([]model.Customer, int64, error) {
	page = page.Normalize()
	query := r.db.WithContext(ctx).Model(&model.Customer{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, dbErr("failed to count customers", err)
	}

	var customers []model.Customer
	err := query.
		Order("last_name, first_name").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&customers).Error
	if err != nil {
		return nil, 0, dbErr("failed to list customers", err)
	}
	return customers, total, nil
}

func (r *customerRepository) NamesByID(ctx context.Context, ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var customers []model.Customer
	err := r.db.WithContext(ctx).
		Select("id", "first_name", "last_name").
		Where("id IN ?", ids).
		Find(&customers).Error
	if err != nil {
		return nil, dbErr("failed to load customer names", err)
	}
	for i := range customers {
		names[customers[i].ID] = customers[i].FullName()
	}
	return names, nil
}

func (r *customerRepository) OrderCount(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("customer_id = ?", id).
		Count(&count).Error
	if err != nil {
		return 0, dbErr("failed to count customer orders", err)
	}
	return count, nil
}
