// Package dashboard renders the KPI explorer's terminal output.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"retail-analytics/internal/model"
)

const maxBarWidth = 40

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A8CC8C"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF9E64"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5B8DEF"))
)

// Summary carries the aggregated KPIs the explorer renders. A nil average
// order value means the KPI was undefined and is shown as N/A.
type Summary struct {
	TotalRevenue      decimal.Decimal
	AverageOrderValue *decimal.Decimal
	OrderCount        int
}

// RenderTitle renders the banner line.
func RenderTitle(title string) string {
	return titleStyle.Render(title)
}

// RenderSummary renders the KPI panels side by side.
func RenderSummary(s Summary) string {
	aov := "N/A"
	if s.AverageOrderValue != nil {
		aov = "$" + s.AverageOrderValue.StringFixed(2)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		kpiPanel("Total Revenue", "$"+s.TotalRevenue.StringFixed(2)),
		kpiPanel("Avg Order Value", aov),
		kpiPanel("Orders", fmt.Sprintf("%d", s.OrderCount)),
	)
}

func kpiPanel(label, value string) string {
	return panelStyle.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
}

// RenderCategoryChart renders a horizontal bar chart of revenue per category.
// Bars are scaled to the largest revenue; a row without positive revenue
// gets an empty bar.
func RenderCategoryChart(rows []model.CategoryRevenue) string {
	if len(rows) == 0 {
		return labelStyle.Render("no category revenue to display")
	}

	maxRevenue := decimal.Zero
	nameWidth := 0
	for _, row := range rows {
		if row.Revenue.GreaterThan(maxRevenue) {
			maxRevenue = row.Revenue
		}
		if len(row.Category) > nameWidth {
			nameWidth = len(row.Category)
		}
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Revenue by Category"))
	b.WriteString("\n")
	for _, row := range rows {
		width := 0
		if row.Revenue.IsPositive() && maxRevenue.IsPositive() {
			width = int(row.Revenue.Div(maxRevenue).Mul(decimal.NewFromInt(maxBarWidth)).IntPart())
			if width < 1 {
				width = 1
			}
		}
		bar := barStyle.Render(strings.Repeat("█", width))
		b.WriteString(fmt.Sprintf("%-*s %s $%s\n", nameWidth, row.Category, bar, row.Revenue.StringFixed(2)))
	}
	return b.String()
}

// RenderTopCustomers renders the revenue ranking table.
func RenderTopCustomers(rows []model.TopCustomer) string {
	if len(rows) == 0 {
		return labelStyle.Render("no customer revenue to display")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Top Customers"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%4s  %-24s %12s\n", "#", "Customer", "Revenue"))
	for i, row := range rows {
		name := row.Name
		if name == "" {
			name = fmt.Sprintf("customer %d", row.CustomerID)
		}
		b.WriteString(fmt.Sprintf("%4d  %-24s %12s\n", i+1, name, "$"+row.Revenue.StringFixed(2)))
	}
	return b.String()
}
