package service

import (
	"context"

	"retail-analytics/internal/model"
	"retail-analytics/internal/repository"
)

// CustomerService serves the read-side customer views.
type CustomerService interface {
	Get(ctx context.Context, id uint) (*model.CustomerDetail, error)
	List(ctx context.Context, page repository.Page) (*model.PagedCustomers, error)
}

type customerService struct {
	customers repository.CustomerRepository
}

// NewCustomerService creates a CustomerService.
func NewCustomerService(customers repository.CustomerRepository) CustomerService {
	return &customerService{customers: customers}
}

func (s *customerService) Get(ctx context.Context, id uint) (*model.CustomerDetail, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	orderCount, err := s.customers.OrderCount(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.CustomerDetail{
		Customer:   *customer,
		FullName:   customer.FullName(),
		OrderCount: orderCount,
	}, nil
}

func (s *customerService) List(ctx context.Context, page repository.Page) (*model.PagedCustomers, error) {
	page = page.Normalize()
	customers, total, err := s.customers.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return &model.PagedCustomers{
		Customers:  customers,
		Total:      total,
		Page:       page.Number,
		Limit:      page.Size,
		TotalPages: repository.TotalPages(total, page.Size),
	}, nil
}
