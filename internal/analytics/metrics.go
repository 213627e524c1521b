// Package analytics contains the metrics engine: pure aggregation functions
// that turn the flat mart table into period-comparable KPIs. Every function
// depends only on its explicit inputs and degrades to zero values on empty
// or partial input instead of returning errors.
package analytics

import (
	"analytics-service/internal/models"
)

// ComputePeriodMetrics computes the fixed KPI set for one row subset.
// Order, customer and product totals are distinct counts; a multi-item order
// contributes once. An empty subset yields an all-zero record.
func ComputePeriodMetrics(rows []models.Transaction) models.Metrics {
	var m models.Metrics
	if len(rows) == 0 {
		return m
	}

	orders := make(map[string]struct{})
	customers := make(map[string]struct{})
	products := make(map[string]struct{})
	customerOrders := make(map[string]map[string]struct{})

	// Per-order review accumulator for the two-level mean: line-item scores
	// are averaged within an order first so that multi-item orders do not
	// weigh more than single-item ones.
	type reviewAcc struct {
		sum float64
		n   int
	}
	reviews := make(map[string]*reviewAcc)

	var (
		onTimeChecked int
		onTimeHits    int
		shipDaysSum   float64
		shipChecked   int
	)

	for i := range rows {
		r := &rows[i]

		m.TotalAmount += r.PaymentValue
		orders[r.OrderID] = struct{}{}
		customers[r.CustomerUniqueID] = struct{}{}
		products[r.ProductID] = struct{}{}

		set, ok := customerOrders[r.CustomerUniqueID]
		if !ok {
			set = make(map[string]struct{})
			customerOrders[r.CustomerUniqueID] = set
		}
		set[r.OrderID] = struct{}{}

		// Rows missing either date drop out of the on-time denominator,
		// matching a null-propagating comparison.
		if r.DeliveredDate != nil && r.EstimatedDate != nil {
			onTimeChecked++
			if !r.DeliveredDate.After(*r.EstimatedDate) {
				onTimeHits++
			}
		}

		if r.DeliveredDate != nil && r.OrderDate != nil {
			days := int(r.DeliveredDate.Sub(*r.OrderDate).Hours() / 24)
			shipDaysSum += float64(days)
			shipChecked++
		}

		if r.ReviewScore != nil {
			acc, ok := reviews[r.OrderID]
			if !ok {
				acc = &reviewAcc{}
				reviews[r.OrderID] = acc
			}
			acc.sum += *r.ReviewScore
			acc.n++
		}
	}

	m.TotalOrders = len(orders)
	m.TotalCustomers = len(customers)
	m.TotalProducts = len(products)

	if m.TotalOrders > 0 {
		m.AvgOrderValue = m.TotalAmount / float64(m.TotalOrders)
	}

	if onTimeChecked > 0 {
		m.OnTimeDeliveryRate = float64(onTimeHits) / float64(onTimeChecked) * 100
	}

	if shipChecked > 0 {
		m.AvgShippingTime = shipDaysSum / float64(shipChecked)
	}

	if len(customerOrders) > 0 {
		repeat := 0
		for _, orderSet := range customerOrders {
			if len(orderSet) >= 2 {
				repeat++
			}
		}
		m.RepeatPurchaseRate = float64(repeat) / float64(len(customerOrders)) * 100
	}

	if len(reviews) > 0 {
		var total float64
		for _, acc := range reviews {
			total += acc.sum / float64(acc.n)
		}
		m.AvgReviewScore = total / float64(len(reviews))
	}

	return m
}

// CalculateDelta returns the percentage change from previous to current, or
// nil when previous is zero and the change is undefined.
func CalculateDelta(current, previous float64) *float64 {
	if previous == 0 {
		return nil
	}
	d := (current - previous) / previous * 100
	return &d
}

// ComputeDeltas derives the per-field month-over-month changes between two
// metric records.
func ComputeDeltas(current, previous models.Metrics) *models.MetricsDeltas {
	return &models.MetricsDeltas{
		TotalAmount:        CalculateDelta(current.TotalAmount, previous.TotalAmount),
		TotalOrders:        CalculateDelta(float64(current.TotalOrders), float64(previous.TotalOrders)),
		TotalCustomers:     CalculateDelta(float64(current.TotalCustomers), float64(previous.TotalCustomers)),
		AvgOrderValue:      CalculateDelta(current.AvgOrderValue, previous.AvgOrderValue),
		TotalProducts:      CalculateDelta(float64(current.TotalProducts), float64(previous.TotalProducts)),
		OnTimeDeliveryRate: CalculateDelta(current.OnTimeDeliveryRate, previous.OnTimeDeliveryRate),
		AvgShippingTime:    CalculateDelta(current.AvgShippingTime, previous.AvgShippingTime),
		RepeatPurchaseRate: CalculateDelta(current.RepeatPurchaseRate, previous.RepeatPurchaseRate),
		AvgReviewScore:     CalculateDelta(current.AvgReviewScore, previous.AvgReviewScore),
	}
}
