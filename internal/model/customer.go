package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Customer segments used by the analytics views.
const (
	SegmentVIP     = "VIP"
	SegmentRegular = "Regular"
	SegmentNew     = "New"
)

// Customer is a buyer known to the dashboard.
type Customer struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Email         string          `json:"email" gorm:"size:120;uniqueIndex;not null"`
	FirstName     string          `json:"first_name" gorm:"size:50;not null"`
	LastName      string          `json:"last_name" gorm:"size:50;not null"`
	Phone         string          `json:"phone" gorm:"size:20"`
	Address       string          `json:"address" gorm:"size:200"`
	City          string          `json:"city" gorm:"size:50"`
	State         string          `json:"state" gorm:"size:50"`
	ZipCode       string          `json:"zip_code" gorm:"size:10"`
	Country       string          `json:"country" gorm:"size:50;default:USA"`
	Segment       string          `json:"segment" gorm:"size:20;index"`
	LifetimeValue decimal.Decimal `json:"lifetime_value" gorm:"type:numeric(12,2);default:0"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Orders []Order `json:"-" gorm:"foreignKey:CustomerID"`
}

// FullName joins the customer's name parts for display.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// CustomerDetail is the single-customer response shape, adding the fields
// derived at read time.
type CustomerDetail struct {
	Customer
	FullName   string `json:"full_name"`
	OrderCount int64  `json:"order_count"`
}

// PagedCustomers is one page of customers plus pagination metadata.
type PagedCustomers struct {
	Customers  []Customer `json:"customers"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
}
