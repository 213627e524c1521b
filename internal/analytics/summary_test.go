package analytics

import (
	"testing"

	"analytics-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestKeyMetricsSummary(t *testing.T) {
	score := 4.0
	rows := []models.Transaction{
		{OrderID: "O1", CustomerUniqueID: "C1", ProductID: "P1", CustomerState: "SP", PaymentValue: 100, ReviewScore: &score},
		{OrderID: "O2", CustomerUniqueID: "C1", ProductID: "P2", CustomerState: "SP", PaymentValue: 200, ReviewScore: &score},
		{OrderID: "O3", CustomerUniqueID: "C2", ProductID: "P3", CustomerState: "RJ", PaymentValue: 50},
	}

	s := KeyMetricsSummary(rows)

	assert.InDelta(t, 350, s.TotalSales, 1e-9)
	assert.Equal(t, 3, s.TotalOrders)
	assert.Equal(t, 2, s.TotalCustomers)
	assert.Equal(t, 2, s.TotalStates)
	assert.InDelta(t, 4, s.AvgRating, 1e-9)
	assert.InDelta(t, 50, s.RepeatRate, 1e-9)
}

func TestKeyMetricsSummaryEmpty(t *testing.T) {
	assert.Equal(t, models.KeyMetrics{}, KeyMetricsSummary(nil))
}

func TestComputeInsights(t *testing.T) {
	high, low := 5.0, 2.0
	rows := []models.Transaction{
		{OrderID: "O1", CustomerUniqueID: "C1", ProductID: "P1", CustomerState: "SP", PaymentValue: 600, ReviewScore: &low},
		{OrderID: "O2", CustomerUniqueID: "C2", ProductID: "P2", CustomerState: "RJ", PaymentValue: 300, ReviewScore: &high},
		{OrderID: "O3", CustomerUniqueID: "C3", ProductID: "P3", CustomerState: "RJ", PaymentValue: 10},
		{OrderID: "O4", CustomerUniqueID: "C4", ProductID: "P4", CustomerState: "MG", PaymentValue: 100},
	}

	ins := ComputeInsights(rows)

	assert.Equal(t, "SP", ins.BestSalesState)
	assert.InDelta(t, 600, ins.BestSalesAmount, 1e-9)
	assert.Equal(t, "RJ", ins.BestRatingState)
	assert.InDelta(t, 5, ins.BestRatingScore, 1e-9)
	assert.Equal(t, "RJ", ins.MostActiveState)
	assert.Equal(t, 2, ins.MostActiveOrders)
	// Three of three states contribute, so the top-3 share is total.
	assert.InDelta(t, 100, ins.Top3Concentration, 1e-9)
}

func TestComputeInsightsConcentration(t *testing.T) {
	rows := []models.Transaction{
		{OrderID: "O1", CustomerUniqueID: "C1", ProductID: "P1", CustomerState: "A", PaymentValue: 400},
		{OrderID: "O2", CustomerUniqueID: "C2", ProductID: "P2", CustomerState: "B", PaymentValue: 300},
		{OrderID: "O3", CustomerUniqueID: "C3", ProductID: "P3", CustomerState: "C", PaymentValue: 200},
		{OrderID: "O4", CustomerUniqueID: "C4", ProductID: "P4", CustomerState: "D", PaymentValue: 100},
	}

	ins := ComputeInsights(rows)

	assert.InDelta(t, 90, ins.Top3Concentration, 1e-9)
}

func TestComputeInsightsEmpty(t *testing.T) {
	assert.Equal(t, models.Insights{}, ComputeInsights(nil))
}
