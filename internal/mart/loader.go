// Package mart loads and filters the denormalized dashboard mart: one row
// per order line item, joined across orders, items, products, customers,
// reviews and geolocation.
package mart

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"analytics-service/internal/models"
	"analytics-service/internal/util"

	"go.uber.org/zap"
)

// Loader produces the full mart table from a backing source.
type Loader interface {
	Load(ctx context.Context) ([]models.Transaction, error)
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// CSVLoader reads the mart from a local dashboard_mart.csv, the fallback
// source when no database is configured.
type CSVLoader struct {
	Path   string
	logger *zap.Logger
}

// NewCSVLoader creates a CSV-backed mart loader.
func NewCSVLoader(path string) *CSVLoader {
	return &CSVLoader{Path: path, logger: util.GetLogger()}
}

// Load reads and type-normalizes the whole mart file. Unparseable dates and
// numerics become nulls rather than failing the load, matching the tolerant
// ingestion of the spreadsheet source.
func (l *CSVLoader) Load(ctx context.Context) ([]models.Transaction, error) {
	start := time.Now()

	f, err := os.Open(l.Path)
	if err != nil {
		util.DatasetLoadErrorsTotal.WithLabelValues("csv").Inc()
		return nil, fmt.Errorf("failed to open mart file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		util.DatasetLoadErrorsTotal.WithLabelValues("csv").Inc()
		return nil, fmt.Errorf("failed to read mart header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"order_id", "y_mth", "customer_unique_id", "customer_state", "product_id", "payment_value"} {
		if _, ok := col[required]; !ok {
			util.DatasetLoadErrorsTotal.WithLabelValues("csv").Inc()
			return nil, fmt.Errorf("mart file missing column %q", required)
		}
	}

	var rows []models.Transaction
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			util.DatasetLoadErrorsTotal.WithLabelValues("csv").Inc()
			return nil, fmt.Errorf("failed to read mart row: %w", err)
		}

		field := func(name string) string {
			idx, ok := col[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return record[idx]
		}

		payment, _ := strconv.ParseFloat(field("payment_value"), 64)

		rows = append(rows, models.Transaction{
			OrderID:             field("order_id"),
			OrderDate:           parseTimestamp(field("order_date")),
			YearMonth:           field("y_mth"),
			DeliveredDate:       parseTimestamp(field("order_delivered_customer_date")),
			EstimatedDate:       parseTimestamp(field("order_estimated_delivery_date")),
			CustomerUniqueID:    field("customer_unique_id"),
			CustomerState:       field("customer_state"),
			CustomerLat:         parseFloat(field("customer_lat")),
			CustomerLng:         parseFloat(field("customer_lng")),
			ProductID:           field("product_id"),
			ProductCategoryName: field("product_category_name"),
			PaymentValue:        payment,
			ReviewScore:         parseFloat(field("review_score")),
		})
	}

	util.DatasetLoadsTotal.WithLabelValues("csv").Inc()
	util.DatasetLoadDuration.Observe(time.Since(start).Seconds())
	l.logger.Info("Mart loaded from CSV",
		zap.String("path", l.Path),
		zap.Int("rows", len(rows)),
		zap.Duration("elapsed", time.Since(start)))
	return rows, nil
}

func parseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Months returns the sorted distinct y_mth tokens of the table, the options
// for the month filter.
func Months(rows []models.Transaction) []string {
	seen := make(map[string]struct{})
	var months []string
	for i := range rows {
		if _, ok := seen[rows[i].YearMonth]; ok {
			continue
		}
		seen[rows[i].YearMonth] = struct{}{}
		months = append(months, rows[i].YearMonth)
	}
	sort.Strings(months)
	return months
}

// RegionLookup derives the region lookup table: each state with its mean
// coordinate over the state's rows. The coordinate is an approximation used
// purely for map placement.
func RegionLookup(rows []models.Transaction) []models.RegionLocation {
	type acc struct {
		latSum, lngSum float64
		n              int
	}
	accs := make(map[string]*acc)
	for i := range rows {
		a, ok := accs[rows[i].CustomerState]
		if !ok {
			a = &acc{}
			accs[rows[i].CustomerState] = a
		}
		if rows[i].CustomerLat != nil && rows[i].CustomerLng != nil {
			a.latSum += *rows[i].CustomerLat
			a.lngSum += *rows[i].CustomerLng
			a.n++
		}
	}

	states := make([]string, 0, len(accs))
	for state := range accs {
		states = append(states, state)
	}
	sort.Strings(states)

	lookup := make([]models.RegionLocation, 0, len(states))
	for _, state := range states {
		a := accs[state]
		loc := models.RegionLocation{State: state}
		if a.n > 0 {
			loc.Lat = a.latSum / float64(a.n)
			loc.Lng = a.lngSum / float64(a.n)
		}
		lookup = append(lookup, loc)
	}
	return lookup
}
