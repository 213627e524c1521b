package analytics

import (
	"sort"

	"analytics-service/config"
	"analytics-service/internal/models"
)

// DefaultScoring returns the stock performance score configuration:
// 40% sales share, 30% rating, 30% order share on a 5-point rating scale.
func DefaultScoring() config.ScoringConfig {
	return config.ScoringConfig{
		WeightSales:  0.4,
		WeightRating: 0.3,
		WeightOrders: 0.3,
		RatingScale:  5,
	}
}

// AggregateRegions groups the subset by customer state and computes the
// per-region performance record, including the composite 0-100 score.
// Regions keep their first-seen order so that later rankings break ties
// stably. The score's max terms come from the regions present in this
// subset, recomputed per call.
//
// AvgOrderValue here is deliberately a row mean of payment_value, not
// amount/distinct-orders. It only feeds relative comparison on the map and
// must stay consistent with historical reports.
func AggregateRegions(rows []models.Transaction, scoring config.ScoringConfig) []models.RegionPerformance {
	if len(rows) == 0 {
		return nil
	}

	type regionAcc struct {
		sales     float64
		rowCount  int
		orders    map[string]struct{}
		customers map[string]struct{}
		ratingSum float64
		ratingN   int
		latSum    float64
		lngSum    float64
		coordN    int
	}

	accs := make(map[string]*regionAcc)
	var order []string

	for i := range rows {
		r := &rows[i]
		acc, ok := accs[r.CustomerState]
		if !ok {
			acc = &regionAcc{
				orders:    make(map[string]struct{}),
				customers: make(map[string]struct{}),
			}
			accs[r.CustomerState] = acc
			order = append(order, r.CustomerState)
		}

		acc.sales += r.PaymentValue
		acc.rowCount++
		acc.orders[r.OrderID] = struct{}{}
		acc.customers[r.CustomerUniqueID] = struct{}{}
		if r.ReviewScore != nil {
			acc.ratingSum += *r.ReviewScore
			acc.ratingN++
		}
		if r.CustomerLat != nil && r.CustomerLng != nil {
			acc.latSum += *r.CustomerLat
			acc.lngSum += *r.CustomerLng
			acc.coordN++
		}
	}

	regions := make([]models.RegionPerformance, 0, len(order))
	var maxSales, maxOrders float64
	for _, state := range order {
		acc := accs[state]
		rp := models.RegionPerformance{
			State:          state,
			TotalSales:     acc.sales,
			AvgOrderValue:  acc.sales / float64(acc.rowCount),
			TotalOrders:    len(acc.orders),
			TotalCustomers: len(acc.customers),
		}
		if acc.ratingN > 0 {
			rp.AvgRating = acc.ratingSum / float64(acc.ratingN)
		}
		if acc.coordN > 0 {
			rp.Lat = acc.latSum / float64(acc.coordN)
			rp.Lng = acc.lngSum / float64(acc.coordN)
		}
		if rp.TotalSales > maxSales {
			maxSales = rp.TotalSales
		}
		if float64(rp.TotalOrders) > maxOrders {
			maxOrders = float64(rp.TotalOrders)
		}
		regions = append(regions, rp)
	}

	// Floor the normalization terms at 1 so an all-zero subset cannot
	// divide by zero.
	if maxSales < 1 {
		maxSales = 1
	}
	if maxOrders < 1 {
		maxOrders = 1
	}

	ratingScale := scoring.RatingScale
	if ratingScale <= 0 {
		ratingScale = 5
	}

	for i := range regions {
		regions[i].PerformanceScore = 100 * (scoring.WeightSales*regions[i].TotalSales/maxSales +
			scoring.WeightRating*regions[i].AvgRating/ratingScale +
			scoring.WeightOrders*float64(regions[i].TotalOrders)/maxOrders)
	}

	return regions
}

// RankRegions returns the topN regions by total sales descending and the
// bottomN ascending. Sorting is stable, so ties keep the aggregation's
// first-seen region order.
func RankRegions(regions []models.RegionPerformance, topN, bottomN int) (top, bottom []models.RegionPerformance) {
	if len(regions) == 0 {
		return nil, nil
	}

	desc := make([]models.RegionPerformance, len(regions))
	copy(desc, regions)
	sort.SliceStable(desc, func(i, j int) bool {
		return desc[i].TotalSales > desc[j].TotalSales
	})

	asc := make([]models.RegionPerformance, len(regions))
	copy(asc, regions)
	sort.SliceStable(asc, func(i, j int) bool {
		return asc[i].TotalSales < asc[j].TotalSales
	})

	if topN > len(desc) {
		topN = len(desc)
	}
	if bottomN > len(asc) {
		bottomN = len(asc)
	}
	if topN < 0 {
		topN = 0
	}
	if bottomN < 0 {
		bottomN = 0
	}

	return desc[:topN], asc[:bottomN]
}
