package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"retail-analytics/internal/analytics"
	"retail-analytics/internal/apperror"
	"retail-analytics/internal/model"
)

// OrderRepository persists orders and extracts the plain rows the metrics
// aggregator consumes.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id uint) (*model.Order, error)
	List(ctx context.Context, filter OrderFilter, page Page) ([]model.Order, int64, error)
	// UpdateItems atomically replaces an order's items and writes the new
	// totals carried on order, so stored totals can never go stale.
	UpdateItems(ctx context.Context, order *model.Order, items []model.OrderItem) error
	UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) error
	Delete(ctx context.Context, id uint) error
	RevenueRows(ctx context.Context, filter OrderFilter) ([]analytics.OrderRevenue, error)
	CategoryRows(ctx context.Context, filter OrderFilter) ([]analytics.CategoryLine, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a GORM-backed OrderRepository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return dbErr("failed to create order", err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Customer").
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("order", id)
	}
	if err != nil {
		return nil, dbErr("failed to load order", err)
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter, page Page) ([]model.Order, int64, error) {
	page = page.Normalize()
	query := applyOrderFilter(r.db.WithContext(ctx).Model(&model.Order{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, dbErr("failed to count orders", err)
	}

	var orders []model.Order
	err := query.
		Preload("Items").
		Order("order_date DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&orders).Error
	if err != nil {
		return nil, 0, dbErr("failed to list orders", err)
	}
	return orders, total, nil
}

func (r *orderRepository) UpdateItems(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return tx.Model(&model.Order{}).Where("id = ?", order.ID).Updates(map[string]any{
			"subtotal":      order.Subtotal,
			"tax_amount":    order.TaxAmount,
			"shipping_cost": order.ShippingCost,
			"total_amount":  order.TotalAmount,
			"updated_at":    time.Now().UTC(),
		}).Error
	})
	if err != nil {
		return dbErr("failed to update order items", err)
	}
	order.Items = items
	return nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return dbErr("failed to update order status", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("order", id)
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Deleting items explicitly keeps sqlite honest; postgres would
		// also cascade through the FK constraint.
		if err := tx.Where("order_id = ?", id).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Order{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NotFound("order", id)
		}
		return nil
	})
	if err != nil {
		return dbErr("failed to delete order", err)
	}
	return nil
}

func (r *orderRepository) RevenueRows(ctx context.Context, filter OrderFilter) ([]analytics.OrderRevenue, error) {
	var rows []analytics.OrderRevenue
	err := applyOrderFilter(r.db.WithContext(ctx).Model(&model.Order{}), filter).
		Select("orders.customer_id AS customer_id, orders.total_amount AS total").
		Scan(&rows).Error
	if err != nil {
		return nil, dbErr("failed to load revenue rows", err)
	}
	return rows, nil
}

func (r *orderRepository) CategoryRows(ctx context.Context, filter OrderFilter) ([]analytics.CategoryLine, error) {
	var rows []analytics.CategoryLine
	err := applyOrderFilter(
		r.db.WithContext(ctx).
			Table("order_items").
			Joins("JOIN orders ON orders.id = order_items.order_id").
			Joins("JOIN products ON products.id = order_items.product_id").
			Joins("JOIN categories ON categories.id = products.category_id"),
		filter).
		Select("categories.name AS category, order_items.line_total AS line_total").
		Scan(&rows).Error
	if err != nil {
		return nil, dbErr("failed to load category rows", err)
	}
	return rows, nil
}

// applyOrderFilter works for any query that has the orders table in scope.
func applyOrderFilter(query *gorm.DB, filter OrderFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("orders.status = ?", filter.Status)
	}
	if filter.CustomerID != 0 {
		query = query.Where("orders.customer_id = ?", filter.CustomerID)
	}
	if !filter.From.IsZero() {
		query = query.Where("orders.order_date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("orders.order_date < ?", filter.To)
	}
	return query
}
