package model

import "github.com/shopspring/decimal"

// MetricsSummary is the headline KPI set for the dashboard. The average
// order value is nil when no orders match, because the KPI is undefined for
// an empty set; clients render it as N/A.
type MetricsSummary struct {
	TotalRevenue      decimal.Decimal  `json:"total_revenue"`
	AverageOrderValue *decimal.Decimal `json:"average_order_value"`
	OrderCount        int64            `json:"order_count"`
}

// TopCustomer is one row of the customer revenue ranking.
type TopCustomer struct {
	CustomerID uint            `json:"customer_id"`
	Name       string          `json:"name,omitempty"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// TopCustomersResponse wraps the ranking rows for the API.
type TopCustomersResponse struct {
	TopCustomers []TopCustomer `json:"top_customers"`
	Limit        int           `json:"limit"`
}

// CategoryRevenue is one row of the per-category revenue breakdown.
type CategoryRevenue struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// CategoryRevenueResponse wraps the per-category breakdown for the API.
type CategoryRevenueResponse struct {
	Categories []CategoryRevenue `json:"categories"`
}
