// Package dataset loads order exports for the KPI explorer. The expected
// input is a CSV file with customer_id, category, and order_total columns;
// header matching is case-insensitive and extra columns are ignored.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"retail-analytics/internal/analytics"
	"retail-analytics/internal/apperror"
)

const (
	columnCustomerID = "customer_id"
	columnCategory   = "category"
	columnOrderTotal = "order_total"
)

// Data is one parsed export, shaped for the aggregator. CustomerNames maps
// the dense numeric IDs back to the identifiers used in the file.
type Data struct {
	Orders        []analytics.OrderRevenue
	Lines         []analytics.CategoryLine
	CustomerNames map[uint]string
}

// Load reads and parses the CSV file at path.
func Load(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindDataProcessing, "failed to open "+path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads CSV rows from r. Every row must carry a customer identifier, a
// category, and a non-negative decimal order total; the first bad row fails
// the whole parse with its row number.
func Parse(r io.Reader) (*Data, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperror.DataProcessing("csv input is empty")
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.KindDataProcessing, "failed to read csv header", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{columnCustomerID, columnCategory, columnOrderTotal} {
		if _, ok := cols[required]; !ok {
			return nil, apperror.DataProcessingf("csv is missing required column %q", required)
		}
	}

	type rawRow struct {
		customer string
		category string
		total    decimal.Decimal
	}
	var rows []rawRow

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperror.Wrap(apperror.KindDataProcessing, "failed to read csv", err)
		}

		customer := strings.TrimSpace(record[cols[columnCustomerID]])
		if customer == "" {
			return nil, apperror.DataProcessingf("row %d: customer_id is empty", line)
		}
		category := strings.TrimSpace(record[cols[columnCategory]])
		if category == "" {
			return nil, apperror.DataProcessingf("row %d: category is empty", line)
		}
		rawTotal := strings.TrimSpace(record[cols[columnOrderTotal]])
		total, err := decimal.NewFromString(rawTotal)
		if err != nil {
			return nil, apperror.DataProcessingf("row %d: invalid order_total %q", line, rawTotal)
		}
		if total.IsNegative() {
			return nil, apperror.DataProcessingf("row %d: negative order_total %q", line, rawTotal)
		}

		rows = append(rows, rawRow{customer: customer, category: category, total: total})
	}

	// Dense numeric IDs assigned in lexicographic order keep the ranking's
	// tie-breaking aligned with the file's customer identifiers.
	distinct := make([]string, 0)
	seen := make(map[string]bool)
	for _, row := range rows {
		if !seen[row.customer] {
			seen[row.customer] = true
			distinct = append(distinct, row.customer)
		}
	}
	sort.Strings(distinct)

	idOf := make(map[string]uint, len(distinct))
	names := make(map[uint]string, len(distinct))
	for i, customer := range distinct {
		id := uint(i + 1)
		idOf[customer] = id
		names[id] = customer
	}

	data := &Data{CustomerNames: names}
	for _, row := range rows {
		data.Orders = append(data.Orders, analytics.OrderRevenue{
			CustomerID: idOf[row.customer],
			Total:      row.total,
		})
		data.Lines = append(data.Lines, analytics.CategoryLine{
			Category:  row.category,
			LineTotal: row.total,
		})
	}
	return data, nil
}
