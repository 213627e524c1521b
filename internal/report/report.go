// Package report renders the downloadable dashboard report as an XLSX
// workbook: the Go counterpart of the PDF export, with the same KPI,
// operational and regional tables.
package report

import (
	"fmt"
	"time"

	"analytics-service/internal/analytics"
	"analytics-service/internal/models"

	"github.com/xuri/excelize/v2"
)

// Input carries everything the report renders. It is a plain snapshot so
// the builder stays independent of the service layer.
type Input struct {
	Month       string
	States      []string
	GeneratedAt time.Time
	Current     models.Metrics
	Previous    *models.Metrics
	Comparable  bool
	Deltas      *models.MetricsDeltas
	Regions     []models.RegionPerformance
}

const (
	summarySheet = "Summary"
	regionsSheet = "Regions"
)

// Build renders the workbook and returns its bytes.
func Build(in Input) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to set up summary sheet: %w", err)
	}
	if _, err := f.NewSheet(regionsSheet); err != nil {
		return nil, fmt.Errorf("failed to set up regions sheet: %w", err)
	}

	if err := writeSummary(f, in); err != nil {
		return nil, err
	}
	if err := writeRegions(f, in.Regions); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename builds the download name for the report, mirroring the
// dashboard_report_{month}_{states}_{timestamp} convention.
func Filename(month string, states []string, generatedAt time.Time) string {
	monthPart := "all"
	if month != models.MonthAll && month != "" {
		monthPart = month
	}
	statePart := "all"
	if len(states) > 0 {
		statePart = states[0]
		if len(states) > 1 {
			statePart += "_" + states[1]
		}
	}
	return fmt.Sprintf("dashboard_report_%s_%s_%s.xlsx", monthPart, statePart, generatedAt.Format("20060102_1504"))
}

func writeSummary(f *excelize.File, in Input) error {
	period := in.Month
	if period == models.MonthAll || period == "" {
		period = "All months"
	}
	regions := "All regions"
	if len(in.States) > 0 {
		regions = fmt.Sprint(in.States)
	}

	header := [][]interface{}{
		{"E-Commerce Dashboard Report"},
		{"Generated at", in.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Period", period},
		{"Regions", regions},
		{},
		{"Key Performance Indicators"},
		{"Metric", "Current", "MoM Change"},
	}

	rows := [][]interface{}{
		{"Total Amount", fmt.Sprintf("%s BRL", analytics.FormatMagnitude(in.Current.TotalAmount)), deltaCell(in, func(d *models.MetricsDeltas) *float64 { return d.TotalAmount })},
		{"Total Orders", in.Current.TotalOrders, deltaCell(in, func(d *models.MetricsDeltas) *float64 { return d.TotalOrders })},
		{"Total Customers", in.Current.TotalCustomers, deltaCell(in, func(d *models.MetricsDeltas) *float64 { return d.TotalCustomers })},
		{"Avg Order Value", fmt.Sprintf("%.0f BRL", in.Current.AvgOrderValue), deltaCell(in, func(d *models.MetricsDeltas) *float64 { return d.AvgOrderValue })},
		{"Total Products", in.Current.TotalProducts, deltaCell(in, func(d *models.MetricsDeltas) *float64 { return d.TotalProducts })},
		{},
		{"Operational Indicators"},
		{"Metric", "Current", "Target"},
		{"On-time Delivery Rate", fmt.Sprintf("%.1f%%", in.Current.OnTimeDeliveryRate), "95% or higher"},
		{"Average Shipping Time", fmt.Sprintf("%.1f days", in.Current.AvgShippingTime), "Within 7 days"},
		{"Repeat Purchase Rate", fmt.Sprintf("%.2f%%", in.Current.RepeatPurchaseRate), "Over 30%"},
		{"Average Review Score", fmt.Sprintf("%.2f/5", in.Current.AvgReviewScore), "At least 4.0"},
	}

	line := 1
	for _, row := range append(header, rows...) {
		if len(row) > 0 {
			cell, err := excelize.CoordinatesToCellName(1, line)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
				return fmt.Errorf("failed to write summary row: %w", err)
			}
		}
		line++
	}
	return nil
}

func deltaCell(in Input, pick func(*models.MetricsDeltas) *float64) string {
	if !in.Comparable || in.Deltas == nil {
		return "N/A"
	}
	d := pick(in.Deltas)
	if d == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", *d)
}

func writeRegions(f *excelize.File, regions []models.RegionPerformance) error {
	head := []interface{}{"State", "Total Sales", "Avg Order Value", "Orders", "Customers", "Avg Rating", "Performance Score"}
	if err := f.SetSheetRow(regionsSheet, "A1", &head); err != nil {
		return fmt.Errorf("failed to write regions header: %w", err)
	}

	for i, r := range regions {
		row := []interface{}{
			r.State,
			r.TotalSales,
			r.AvgOrderValue,
			r.TotalOrders,
			r.TotalCustomers,
			r.AvgRating,
			r.PerformanceScore,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(regionsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write region row: %w", err)
		}
	}
	return nil
}
