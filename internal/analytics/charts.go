package analytics

import (
	"sort"

	"analytics-service/internal/models"
)

// MonthlySales sums payment value per calendar month over the full table,
// sorted by month. Month keys are YYYY-MM, so a lexical sort is
// chronological.
func MonthlySales(rows []models.Transaction) []models.MonthlyPoint {
	sums := make(map[string]float64)
	for i := range rows {
		sums[rows[i].YearMonth] += rows[i].PaymentValue
	}

	points := make([]models.MonthlyPoint, 0, len(sums))
	for month, amount := range sums {
		points = append(points, models.MonthlyPoint{Month: month, Amount: amount})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Month < points[j].Month })
	return points
}

// TopCategories returns the n product categories with the highest payment
// sums in the subset, descending.
func TopCategories(rows []models.Transaction, n int) []models.CategorySales {
	if len(rows) == 0 || n <= 0 {
		return nil
	}

	sums := make(map[string]float64)
	var order []string
	for i := range rows {
		cat := rows[i].ProductCategoryName
		if _, ok := sums[cat]; !ok {
			order = append(order, cat)
		}
		sums[cat] += rows[i].PaymentValue
	}

	out := make([]models.CategorySales, 0, len(order))
	for _, cat := range order {
		out = append(out, models.CategorySales{Category: cat, Amount: sums[cat]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })

	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}

// TopStatesTrend builds the monthly sales series for the n states with the
// highest total sales across the full table.
func TopStatesTrend(rows []models.Transaction, n int) []models.StateTrend {
	if len(rows) == 0 || n <= 0 {
		return nil
	}

	totals := make(map[string]float64)
	var order []string
	for i := range rows {
		state := rows[i].CustomerState
		if _, ok := totals[state]; !ok {
			order = append(order, state)
		}
		totals[state] += rows[i].PaymentValue
	}

	sort.SliceStable(order, func(i, j int) bool { return totals[order[i]] > totals[order[j]] })
	if n > len(order) {
		n = len(order)
	}
	top := order[:n]

	topSet := make(map[string]bool, len(top))
	for _, state := range top {
		topSet[state] = true
	}

	monthly := make(map[string]map[string]float64, len(top))
	for i := range rows {
		if !topSet[rows[i].CustomerState] {
			continue
		}
		byMonth, ok := monthly[rows[i].CustomerState]
		if !ok {
			byMonth = make(map[string]float64)
			monthly[rows[i].CustomerState] = byMonth
		}
		byMonth[rows[i].YearMonth] += rows[i].PaymentValue
	}

	trends := make([]models.StateTrend, 0, len(top))
	for _, state := range top {
		byMonth := monthly[state]
		points := make([]models.MonthlyPoint, 0, len(byMonth))
		for month, amount := range byMonth {
			points = append(points, models.MonthlyPoint{Month: month, Amount: amount})
		}
		sort.Slice(points, func(i, j int) bool { return points[i].Month < points[j].Month })
		trends = append(trends, models.StateTrend{State: state, Points: points})
	}
	return trends
}

// SatisfactionVsSales produces per-state scatter points pairing the mean
// review score with total sales and distinct order counts, sorted by state.
func SatisfactionVsSales(rows []models.Transaction) []models.StatePoint {
	if len(rows) == 0 {
		return nil
	}

	type acc struct {
		sales     float64
		ratingSum float64
		ratingN   int
		orders    map[string]struct{}
	}
	accs := make(map[string]*acc)
	for i := range rows {
		a, ok := accs[rows[i].CustomerState]
		if !ok {
			a = &acc{orders: make(map[string]struct{})}
			accs[rows[i].CustomerState] = a
		}
		a.sales += rows[i].PaymentValue
		a.orders[rows[i].OrderID] = struct{}{}
		if rows[i].ReviewScore != nil {
			a.ratingSum += *rows[i].ReviewScore
			a.ratingN++
		}
	}

	states := make([]string, 0, len(accs))
	for state := range accs {
		states = append(states, state)
	}
	sort.Strings(states)

	points := make([]models.StatePoint, 0, len(states))
	for _, state := range states {
		a := accs[state]
		p := models.StatePoint{
			State:      state,
			TotalSales: a.sales,
			Orders:     len(a.orders),
		}
		if a.ratingN > 0 {
			p.AvgRating = a.ratingSum / float64(a.ratingN)
		}
		points = append(points, p)
	}
	return points
}
