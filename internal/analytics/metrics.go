package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"retail-analytics/internal/apperror"
)

// DefaultTopCustomersLimit bounds TopCustomers when the caller does not
// supply an explicit limit.
const DefaultTopCustomersLimit = 10

// OrderRevenue is one order's contribution to the revenue metrics.
type OrderRevenue struct {
	CustomerID uint
	Total      decimal.Decimal
}

// CategoryLine is one line item's contribution to a product category.
type CategoryLine struct {
	Category  string
	LineTotal decimal.Decimal
}

// CustomerRevenue is an aggregated per-customer revenue row.
type CustomerRevenue struct {
	CustomerID uint
	Revenue    decimal.Decimal
}

// CategoryRevenue is an aggregated per-category revenue row.
type CategoryRevenue struct {
	Category string
	Revenue  decimal.Decimal
}

// TotalRevenue sums the order totals. An empty input yields zero.
func TotalRevenue(orders []OrderRevenue) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
	}
	return total
}

// AverageOrderValue returns the mean order total. The KPI is undefined for
// an empty order set and fails with a data-processing error; callers choose
// how to present the absence (the HTTP API and the explorer render it as
// N/A rather than a failure).
func AverageOrderValue(orders []OrderRevenue) (decimal.Decimal, error) {
	if len(orders) == 0 {
		return decimal.Zero, apperror.DataProcessing("average order value is undefined for an empty order set")
	}
	return TotalRevenue(orders).Div(decimal.NewFromInt(int64(len(orders)))), nil
}

// TopCustomers groups orders by customer, sums each customer's revenue, and
// returns the top rows by revenue descending. Revenue ties are broken by
// ascending customer ID so the ranking is deterministic. The limit must be
// positive; callers without a preference pass DefaultTopCustomersLimit.
func TopCustomers(orders []OrderRevenue, limit int) ([]CustomerRevenue, error) {
	if limit <= 0 {
		return nil, apperror.Validationf("limit must be positive, got %d", limit)
	}
	byCustomer := make(map[uint]decimal.Decimal, len(orders))
	for _, o := range orders {
		byCustomer[o.CustomerID] = byCustomer[o.CustomerID].Add(o.Total)
	}
	ranked := make([]CustomerRevenue, 0, len(byCustomer))
	for id, revenue := range byCustomer {
		ranked = append(ranked, CustomerRevenue{CustomerID: id, Revenue: revenue})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].Revenue.Equal(ranked[j].Revenue) {
			return ranked[i].Revenue.GreaterThan(ranked[j].Revenue)
		}
		return ranked[i].CustomerID < ranked[j].CustomerID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// RevenueByCategory groups line totals by category name, sorted by category
// ascending. An empty input yields an empty result.
func RevenueByCategory(lines []CategoryLine) []CategoryRevenue {
	byCategory := make(map[string]decimal.Decimal, len(lines))
	for _, l := range lines {
		byCategory[l.Category] = byCategory[l.Category].Add(l.LineTotal)
	}
	rows := make([]CategoryRevenue, 0, len(byCategory))
	for category, revenue := range byCategory {
		rows = append(rows, CategoryRevenue{Category: category, Revenue: revenue})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows
}
