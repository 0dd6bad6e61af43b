package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus enumerates the order lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// Valid reports whether s is a known lifecycle status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// Order is a customer purchase with its stored monetary totals. The totals
// are computed from the line items before the row is written and are
// recomputed whenever the items change.
type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	OrderNumber     string          `json:"order_number" gorm:"size:50;uniqueIndex;not null"`
	CustomerID      uint            `json:"customer_id" gorm:"not null;index"`
	Customer        *Customer       `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	OrderDate       time.Time       `json:"order_date" gorm:"not null;index"`
	Status          OrderStatus     `json:"status" gorm:"size:20;not null;default:pending;index"`
	Subtotal        decimal.Decimal `json:"subtotal" gorm:"type:numeric(12,2);not null;default:0"`
	TaxAmount       decimal.Decimal `json:"tax_amount" gorm:"type:numeric(12,2);not null;default:0"`
	ShippingCost    decimal.Decimal `json:"shipping_cost" gorm:"type:numeric(12,2);not null;default:0"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2);not null;default:0"`
	PaymentMethod   string          `json:"payment_method" gorm:"size:50"`
	ShippingAddress string          `json:"shipping_address" gorm:"size:200"`
	Notes           string          `json:"notes" gorm:"size:500"`
	Items           []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ItemCount returns the number of loaded line items.
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// OrderItem is one product line inside an order. UnitPrice is a snapshot of
// the product price at order time, so later price changes never rewrite
// history.
type OrderItem struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	OrderID        uint            `json:"order_id" gorm:"not null;index"`
	ProductID      uint            `json:"product_id" gorm:"not null;index"`
	Product        *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity       int             `json:"quantity" gorm:"not null;check:quantity > 0"`
	UnitPrice      decimal.Decimal `json:"unit_price" gorm:"type:numeric(10,2);not null"`
	DiscountAmount decimal.Decimal `json:"discount_amount" gorm:"type:numeric(10,2);not null;default:0;check:discount_amount >= 0"`
	LineTotal      decimal.Decimal `json:"line_total" gorm:"type:numeric(12,2);not null"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// OrderItemRequest is one requested line when creating an order or
// replacing its items. A nil unit price means "use the product's current
// price".
type OrderItemRequest struct {
	ProductID      uint             `json:"product_id" binding:"required"`
	Quantity       int              `json:"quantity" binding:"required"`
	UnitPrice      *decimal.Decimal `json:"unit_price"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
}

// CreateOrderRequest is the payload for creating an order.
type CreateOrderRequest struct {
	CustomerID      uint               `json:"customer_id" binding:"required"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	TaxAmount       decimal.Decimal    `json:"tax_amount"`
	ShippingCost    decimal.Decimal    `json:"shipping_cost"`
	PaymentMethod   string             `json:"payment_method"`
	ShippingAddress string             `json:"shipping_address"`
	Notes           string             `json:"notes"`
}

// UpdateOrderItemsRequest replaces the full item set of an order.
type UpdateOrderItemsRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderStatusRequest moves an order to a new lifecycle status.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}

// PagedOrders is one page of orders plus pagination metadata.
type PagedOrders struct {
	Orders     []Order `json:"orders"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"total_pages"`
}
