// Command explore renders the retail KPIs for a CSV order export in the
// terminal, with a category revenue chart and the top-customer ranking.
package main

import (
	"flag"
	"fmt"
	"os"

	"retail-analytics/internal/analytics"
	"retail-analytics/internal/dashboard"
	"retail-analytics/internal/dataset"
	"retail-analytics/internal/model"
)

func main() {
	csvPath := flag.String("csv", "data/sample_orders.csv", "path to the orders CSV export")
	top := flag.Int("top", analytics.DefaultTopCustomersLimit, "number of customers in the ranking")
	flag.Parse()

	if err := run(*csvPath, *top); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(csvPath string, top int) error {
	data, err := dataset.Load(csvPath)
	if err != nil {
		return err
	}

	summary := dashboard.Summary{
		TotalRevenue: analytics.TotalRevenue(data.Orders),
		OrderCount:   len(data.Orders),
	}
	if aov, err := analytics.AverageOrderValue(data.Orders); err == nil {
		summary.AverageOrderValue = &aov
	}

	ranked, err := analytics.TopCustomers(data.Orders, top)
	if err != nil {
		return err
	}
	topRows := make([]model.TopCustomer, len(ranked))
	for i, row := range ranked {
		topRows[i] = model.TopCustomer{
			CustomerID: row.CustomerID,
			Name:       data.CustomerNames[row.CustomerID],
			Revenue:    row.Revenue,
		}
	}

	grouped := analytics.RevenueByCategory(data.Lines)
	categoryRows := make([]model.CategoryRevenue, len(grouped))
	for i, row := range grouped {
		categoryRows[i] = model.CategoryRevenue{Category: row.Category, Revenue: row.Revenue}
	}

	fmt.Println(dashboard.RenderTitle("Retail Analytics KPI Explorer"))
	fmt.Println(dashboard.RenderSummary(summary))
	fmt.Println(dashboard.RenderCategoryChart(categoryRows))
	fmt.Println(dashboard.RenderTopCustomers(topRows))
	return nil
}
