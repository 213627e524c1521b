package analytics

import (
	"testing"

	"analytics-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeFilterRatiosFullCoverage(t *testing.T) {
	full := []models.Transaction{
		row("O1", "C1", "P1", 100),
		row("O2", "C2", "P2", 200),
	}

	r := ComputeFilterRatios(full, full)

	assert.InDelta(t, 100, r.SalesRatio, 1e-9)
	assert.InDelta(t, 100, r.OrdersRatio, 1e-9)
	assert.InDelta(t, 100, r.CustomersRatio, 1e-9)
	assert.InDelta(t, 300, r.TotalAllSales, 1e-9)
	assert.InDelta(t, 300, r.TotalFilteredSales, 1e-9)
}

func TestComputeFilterRatiosPartialSubset(t *testing.T) {
	full := []models.Transaction{
		row("O1", "C1", "P1", 100),
		row("O2", "C2", "P2", 300),
	}
	subset := full[:1]

	r := ComputeFilterRatios(full, subset)

	assert.InDelta(t, 25, r.SalesRatio, 1e-9)
	assert.InDelta(t, 50, r.OrdersRatio, 1e-9)
	assert.InDelta(t, 50, r.CustomersRatio, 1e-9)
	assert.GreaterOrEqual(t, r.SalesRatio, 0.0)
	assert.LessOrEqual(t, r.SalesRatio, 100.0)
}

func TestComputeFilterRatiosEmptySubset(t *testing.T) {
	full := []models.Transaction{row("O1", "C1", "P1", 100)}

	r := ComputeFilterRatios(full, nil)

	assert.Zero(t, r.SalesRatio)
	assert.Zero(t, r.OrdersRatio)
	assert.Zero(t, r.CustomersRatio)
}

func TestComputeFilterRatiosEmptyFullTable(t *testing.T) {
	r := ComputeFilterRatios(nil, nil)

	assert.Zero(t, r.SalesRatio)
	assert.Zero(t, r.OrdersRatio)
	assert.Zero(t, r.CustomersRatio)
}
