package analytics

import (
	"analytics-service/internal/models"
)

// ComputeFilterRatios reports which share of the full table's sales, orders
// and customers the filtered subset covers, as percentages. Each ratio is
// guarded independently: a zero denominator yields 0, never an error.
func ComputeFilterRatios(full, subset []models.Transaction) models.FilterRatios {
	allSales, allOrders, allCustomers := subsetTotals(full)
	subSales, subOrders, subCustomers := subsetTotals(subset)

	r := models.FilterRatios{
		TotalAllSales:      allSales,
		TotalFilteredSales: subSales,
	}
	if allSales > 0 {
		r.SalesRatio = subSales / allSales * 100
	}
	if allOrders > 0 {
		r.OrdersRatio = float64(subOrders) / float64(allOrders) * 100
	}
	if allCustomers > 0 {
		r.CustomersRatio = float64(subCustomers) / float64(allCustomers) * 100
	}
	return r
}

func subsetTotals(rows []models.Transaction) (sales float64, orders, customers int) {
	orderSet := make(map[string]struct{})
	customerSet := make(map[string]struct{})
	for i := range rows {
		sales += rows[i].PaymentValue
		orderSet[rows[i].OrderID] = struct{}{}
		customerSet[rows[i].CustomerUniqueID] = struct{}{}
	}
	return sales, len(orderSet), len(customerSet)
}
