package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item carrying its pricing and stock position.
type Product struct {
	ID            uint                `json:"id" gorm:"primaryKey"`
	SKU           string              `json:"sku" gorm:"size:50;uniqueIndex;not null"`
	Name          string              `json:"name" gorm:"size:200;not null;index"`
	Description   string              `json:"description" gorm:"size:1000"`
	CategoryID    uint                `json:"category_id" gorm:"not null;index"`
	Category      *Category           `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Price         decimal.Decimal     `json:"price" gorm:"type:numeric(10,2);not null;check:price >= 0"`
	Cost          decimal.NullDecimal `json:"cost" gorm:"type:numeric(10,2)"`
	StockQuantity int                 `json:"stock_quantity" gorm:"not null;default:0;check:stock_quantity >= 0"`
	ReorderLevel  int                 `json:"reorder_level" gorm:"not null;default:10"`
	IsActive      bool                `json:"is_active" gorm:"not null;default:true;index"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// ProfitMargin returns the margin percentage rounded to two decimal places,
// or nil when the cost is unknown or the price is zero.
func (p *Product) ProfitMargin() *decimal.Decimal {
	if !p.Cost.Valid || p.Price.IsZero() {
		return nil
	}
	margin := p.Price.Sub(p.Cost.Decimal).
		Div(p.Price).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	return &margin
}

// NeedsReorder reports whether stock has fallen to the reorder level.
func (p *Product) NeedsReorder() bool {
	return p.StockQuantity <= p.ReorderLevel
}

// ProductDetail decorates a product with its derived fields for responses.
type ProductDetail struct {
	Product
	CategoryName string           `json:"category_name,omitempty"`
	ProfitMargin *decimal.Decimal `json:"profit_margin"`
	NeedsReorder bool             `json:"needs_reorder"`
}

// PagedProducts is one page of products plus pagination metadata.
type PagedProducts struct {
	Products   []ProductDetail `json:"products"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
