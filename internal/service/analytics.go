// Package service wires the analytics core to storage and owns the
// application use cases the handlers call.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"retail-analytics/internal/analytics"
	"retail-analytics/internal/apperror"
	"retail-analytics/internal/model"
	"retail-analytics/internal/repository"
)

// AnalyticsService computes dashboard KPIs from stored orders.
type AnalyticsService interface {
	Summary(ctx context.Context, filter repository.OrderFilter) (*model.MetricsSummary, error)
	TopCustomers(ctx context.Context, filter repository.OrderFilter, limit int) ([]model.TopCustomer, error)
	RevenueByCategory(ctx context.Context, filter repository.OrderFilter) ([]model.CategoryRevenue, error)
}

type analyticsService struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	logger    *zap.Logger
}

// NewAnalyticsService creates an AnalyticsService.
func NewAnalyticsService(orders repository.OrderRepository, customers repository.CustomerRepository, logger *zap.Logger) AnalyticsService {
	return &analyticsService{orders: orders, customers: customers, logger: logger}
}

// Summary returns the headline KPIs. When no orders match, the average
// order value is undefined; the summary reports it as nil instead of
// failing, which clients render as N/A.
func (s *analyticsService) Summary(ctx context.Context, filter repository.OrderFilter) (*model.MetricsSummary, error) {
	rows, err := s.orders.RevenueRows(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load revenue rows: %w", err)
	}

	summary := &model.MetricsSummary{
		TotalRevenue: analytics.TotalRevenue(rows).Round(2),
		OrderCount:   int64(len(rows)),
	}
	avg, err := analytics.AverageOrderValue(rows)
	switch {
	case err == nil:
		rounded := avg.Round(2)
		summary.AverageOrderValue = &rounded
	case apperror.IsKind(err, apperror.KindDataProcessing):
		// Undefined over an empty set; leave the KPI nil.
	default:
		return nil, err
	}
	return summary, nil
}

func (s *analyticsService) TopCustomers(ctx context.Context, filter repository.OrderFilter, limit int) ([]model.TopCustomer, error) {
	rows, err := s.orders.RevenueRows(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load revenue rows: %w", err)
	}
	ranked, err := analytics.TopCustomers(rows, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(ranked))
	for _, row := range ranked {
		ids = append(ids, row.CustomerID)
	}
	names, err := s.customers.NamesByID(ctx, ids)
	if err != nil {
		// The ranking is still valid without names.
		s.logger.Warn("failed to resolve customer names", zap.Error(err))
		names = map[uint]string{}
	}

	out := make([]model.TopCustomer, 0, len(ranked))
	for _, row := range ranked {
		out = append(out, model.TopCustomer{
			CustomerID: row.CustomerID,
			Name:       names[row.CustomerID],
			Revenue:    row.Revenue.Round(2),
		})
	}
	return out, nil
}

func (s *analyticsService) RevenueByCategory(ctx context.Context, filter repository.OrderFilter) ([]model.CategoryRevenue, error) {
	lines, err := s.orders.CategoryRows(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load category rows: %w", err)
	}
	rows := analytics.RevenueByCategory(lines)
	out := make([]model.CategoryRevenue, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.CategoryRevenue{
			Category: row.Category,
			Revenue:  row.Revenue.Round(2),
		})
	}
	return out, nil
}
