package analytics

import (
	"sort"

	"analytics-service/internal/models"
)

// KeyMetricsSummary computes the compact indicator block shown beside the
// regional map: totals, mean rating, participating states and repeat rate.
func KeyMetricsSummary(rows []models.Transaction) models.KeyMetrics {
	var s models.KeyMetrics
	if len(rows) == 0 {
		return s
	}

	orders := make(map[string]struct{})
	customers := make(map[string]struct{})
	states := make(map[string]struct{})
	customerOrders := make(map[string]map[string]struct{})
	var ratingSum float64
	var ratingN int

	for i := range rows {
		r := &rows[i]
		s.TotalSales += r.PaymentValue
		orders[r.OrderID] = struct{}{}
		customers[r.CustomerUniqueID] = struct{}{}
		states[r.CustomerState] = struct{}{}

		set, ok := customerOrders[r.CustomerUniqueID]
		if !ok {
			set = make(map[string]struct{})
			customerOrders[r.CustomerUniqueID] = set
		}
		set[r.OrderID] = struct{}{}

		if r.ReviewScore != nil {
			ratingSum += *r.ReviewScore
			ratingN++
		}
	}

	s.TotalOrders = len(orders)
	s.TotalCustomers = len(customers)
	s.TotalStates = len(states)
	if ratingN > 0 {
		s.AvgRating = ratingSum / float64(ratingN)
	}
	if len(customerOrders) > 0 {
		repeat := 0
		for _, set := range customerOrders {
			if len(set) >= 2 {
				repeat++
			}
		}
		s.RepeatRate = float64(repeat) / float64(len(customerOrders)) * 100
	}
	return s
}

// ComputeInsights derives the highlight block: best-selling and best-rated
// states, the most active state by distinct orders, and the sales share of
// the top three states. States are scanned in sorted order so ties resolve
// deterministically.
func ComputeInsights(rows []models.Transaction) models.Insights {
	var ins models.Insights
	if len(rows) == 0 {
		return ins
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

	var totalSales float64
	salesByState := make([]float64, 0, len(states))
	for _, state := range states {
		a := accs[state]
		var rating float64
		if a.ratingN > 0 {
			rating = a.ratingSum / float64(a.ratingN)
		}

		if a.sales > ins.BestSalesAmount {
			ins.BestSalesAmount = a.sales
			ins.BestSalesState = state
		}
		if rating > ins.BestRatingScore {
			ins.BestRatingScore = rating
			ins.BestRatingState = state
		}
		if len(a.orders) > ins.MostActiveOrders {
			ins.MostActiveOrders = len(a.orders)
			ins.MostActiveState = state
		}

		totalSales += a.sales
		salesByState = append(salesByState, a.sales)
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(salesByState)))
	var top3 float64
	for i := 0; i < len(salesByState) && i < 3; i++ {
		top3 += salesByState[i]
	}
	if totalSales > 0 {
		ins.Top3Concentration = top3 / totalSales * 100
	}
	return ins
}
