package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"retail-analytics/internal/analytics"
	"retail-analytics/internal/apperror"
	"retail-analytics/internal/model"
	"retail-analytics/internal/repository"
)

// OrderService owns the order write path. Totals are always derived from
// the line items through the calculator before anything is stored; there is
// no code path that writes an order total directly.
type OrderService interface {
	Create(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error)
	Get(ctx context.Context, id uint) (*model.Order, error)
	List(ctx context.Context, filter repository.OrderFilter, page repository.Page) (*model.PagedOrders, error)
	UpdateItems(ctx context.Context, id uint, req *model.UpdateOrderItemsRequest) (*model.Order, error)
	UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) (*model.Order, error)
	Delete(ctx context.Context, id uint) error
}

type orderService struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	customers repository.CustomerRepository
	logger    *zap.Logger
}

// NewOrderService creates an OrderService.
func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, customers repository.CustomerRepository, logger *zap.Logger) OrderService {
	return &orderService{orders: orders, products: products, customers: customers, logger: logger}
}

func (s *orderService) Create(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
	if _, err := s.customers.GetByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	items, lineItems, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	totals, err := analytics.ComputeOrderTotals(lineItems, req.TaxAmount, req.ShippingCost)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		OrderNumber:     newOrderNumber(),
		CustomerID:      req.CustomerID,
		OrderDate:       time.Now().UTC(),
		Status:          model.OrderStatusPending,
		Subtotal:        totals.Subtotal.Round(2),
		TaxAmount:       req.TaxAmount.Round(2),
		ShippingCost:    req.ShippingCost.Round(2),
		TotalAmount:     totals.Total.Round(2),
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
		Items:           items,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	s.logger.Info("order created",
		zap.String("order_number", order.OrderNumber),
		zap.Uint("customer_id", order.CustomerID),
		zap.String("total", order.TotalAmount.StringFixed(2)))
	return order, nil
}

func (s *orderService) Get(ctx context.Context, id uint) (*model.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *orderService) List(ctx context.Context, filter repository.OrderFilter, page repository.Page) (*model.PagedOrders, error) {
	page = page.Normalize()
	orders, total, err := s.orders.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	return &model.PagedOrders{
		Orders:     orders,
		Total:      total,
		Page:       page.Number,
		Limit:      page.Size,
		TotalPages: repository.TotalPages(total, page.Size),
	}, nil
}

// UpdateItems replaces the order's line items and recomputes the stored
// totals in the same transaction.
func (s *orderService) UpdateItems(ctx context.Context, id uint, req *model.UpdateOrderItemsRequest) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, lineItems, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	totals, err := analytics.ComputeOrderTotals(lineItems, order.TaxAmount, order.ShippingCost)
	if err != nil {
		return nil, err
	}

	order.Subtotal = totals.Subtotal.Round(2)
	order.TotalAmount = totals.Total.Round(2)
	if err := s.orders.UpdateItems(ctx, order, items); err != nil {
		return nil, err
	}
	s.logger.Info("order items updated",
		zap.String("order_number", order.OrderNumber),
		zap.Int("items", len(items)),
		zap.String("total", order.TotalAmount.StringFixed(2)))
	return s.orders.GetByID(ctx, id)
}

func (s *orderService) UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, apperror.Validationf("invalid order status %q", status)
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, id)
}

func (s *orderService) Delete(ctx context.Context, id uint) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("order deleted", zap.Uint("order_id", id))
	return nil
}

// buildItems resolves each requested line against the product catalog,
// snapshots unit prices, and computes line totals. The parallel slice of
// calculator inputs feeds ComputeOrderTotals.
func (s *orderService) buildItems(ctx context.Context, reqs []model.OrderItemRequest) ([]model.OrderItem, []analytics.LineItem, error) {
	items := make([]model.OrderItem, 0, len(reqs))
	lineItems := make([]analytics.LineItem, 0, len(reqs))
	for _, req := range reqs {
		product, err := s.products.GetByID(ctx, req.ProductID)
		if err != nil {
			return nil, nil, err
		}
		unitPrice := product.Price
		if req.UnitPrice != nil {
			unitPrice = *req.UnitPrice
		}
		lineTotal, err := analytics.ComputeLineTotal(req.Quantity, unitPrice, req.DiscountAmount)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, model.OrderItem{
			ProductID:      product.ID,
			Quantity:       req.Quantity,
			UnitPrice:      unitPrice.Round(2),
			DiscountAmount: req.DiscountAmount.Round(2),
			LineTotal:      lineTotal.Round(2),
		})
		lineItems = append(lineItems, analytics.LineItem{
			Quantity:  req.Quantity,
			UnitPrice: unitPrice,
			Discount:  req.DiscountAmount,
		})
	}
	return items, lineItems, nil
}

// newOrderNumber generates a unique human-scannable order number.
func newOrderNumber() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(id[:12])
}
