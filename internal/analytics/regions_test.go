package analytics

import (
	"fmt"
	"testing"

	"analytics-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stateRows(state string, orders int, paymentPerOrder, rating float64) []models.Transaction {
	rows := make([]models.Transaction, 0, orders)
	for i := 0; i < orders; i++ {
		score := rating
		rows = append(rows, models.Transaction{
			OrderID:          fmt.Sprintf("%s-O%d", state, i),
			CustomerUniqueID: fmt.Sprintf("%s-C%d", state, i),
			ProductID:        fmt.Sprintf("%s-P%d", state, i),
			CustomerState:    state,
			YearMonth:        "2018-01",
			PaymentValue:     paymentPerOrder,
			ReviewScore:      &score,
		})
	}
	return rows
}

func TestAggregateRegionsScoreScenario(t *testing.T) {
	// A: sales 1000, rating 5, orders 10. B: sales 500, rating 3, orders 5.
	rows := append(stateRows("A", 10, 100, 5), stateRows("B", 5, 100, 3)...)

	regions := AggregateRegions(rows, DefaultScoring())
	require.Len(t, regions, 2)

	byState := map[string]models.RegionPerformance{}
	for _, r := range regions {
		byState[r.State] = r
	}

	// A holds every max, so its score is 100*(0.4 + 0.3 + 0.3).
	assert.InDelta(t, 100, byState["A"].PerformanceScore, 1e-9)
	// B: 100*(0.4*0.5 + 0.3*0.6 + 0.3*0.5) = 53.
	assert.InDelta(t, 53, byState["B"].PerformanceScore, 1e-9)
}

func TestAggregateRegionsSingleRegionScore(t *testing.T) {
	rows := stateRows("SP", 3, 50, 4)

	regions := AggregateRegions(rows, DefaultScoring())
	require.Len(t, regions, 1)

	// Its own values are the denominators, so both share terms are 1.
	expected := 100 * (0.4 + 0.3*4/5 + 0.3)
	assert.InDelta(t, expected, regions[0].PerformanceScore, 1e-9)
}

func TestAggregateRegionsRowMeanAOV(t *testing.T) {
	// One order, two line items: the regional AOV is the row mean, not
	// amount per distinct order.
	score := 4.0
	rows := []models.Transaction{
		{OrderID: "O1", CustomerUniqueID: "C1", ProductID: "P1", CustomerState: "SP", PaymentValue: 100, ReviewScore: &score},
		{OrderID: "O1", CustomerUniqueID: "C1", ProductID: "P2", CustomerState: "SP", PaymentValue: 50, ReviewScore: &score},
	}

	regions := AggregateRegions(rows, DefaultScoring())
	require.Len(t, regions, 1)

	assert.Equal(t, 1, regions[0].TotalOrders)
	assert.InDelta(t, 150, regions[0].TotalSales, 1e-9)
	assert.InDelta(t, 75, regions[0].AvgOrderValue, 1e-9)
}

func TestAggregateRegionsMeanCoordinates(t *testing.T) {
	lat1, lng1 := -23.5, -46.6
	lat2, lng2 := -22.5, -43.2
	rows := []models.Transaction{
		{OrderID: "O1", CustomerUniqueID: "C1", ProductID: "P1", CustomerState: "SP", PaymentValue: 10, CustomerLat: &lat1, CustomerLng: &lng1},
		{OrderID: "O2", CustomerUniqueID: "C2", ProductID: "P2", CustomerState: "SP", PaymentValue: 10, CustomerLat: &lat2, CustomerLng: &lng2},
	}

	regions := AggregateRegions(rows, DefaultScoring())
	require.Len(t, regions, 1)

	assert.InDelta(t, -23.0, regions[0].Lat, 1e-9)
	assert.InDelta(t, -44.9, regions[0].Lng, 1e-9)
}

func TestAggregateRegionsEmpty(t *testing.T) {
	assert.Nil(t, AggregateRegions(nil, DefaultScoring()))
}

func TestRankRegionsTopBottom(t *testing.T) {
	rows := append(stateRows("A", 10, 100, 5), stateRows("B", 5, 100, 3)...)
	rows = append(rows, stateRows("C", 2, 100, 4)...)

	regions := AggregateRegions(rows, DefaultScoring())
	top, bottom := RankRegions(regions, 1, 2)

	require.Len(t, top, 1)
	assert.Equal(t, "A", top[0].State)

	require.Len(t, bottom, 2)
	assert.Equal(t, "C", bottom[0].State)
	assert.Equal(t, "B", bottom[1].State)
}

func TestRankRegionsStableTies(t *testing.T) {
	// Equal sales: first-seen aggregation order wins.
	regions := []models.RegionPerformance{
		{State: "X", TotalSales: 100},
		{State: "Y", TotalSales: 100},
		{State: "Z", TotalSales: 100},
	}

	top, bottom := RankRegions(regions, 3, 3)

	assert.Equal(t, "X", top[0].State)
	assert.Equal(t, "Y", top[1].State)
	assert.Equal(t, "X", bottom[0].State)
}

func TestRankRegionsBoundsClamped(t *testing.T) {
	regions := []models.RegionPerformance{{State: "X", TotalSales: 100}}

	top, bottom := RankRegions(regions, 10, -1)

	assert.Len(t, top, 1)
	assert.Len(t, bottom, 0)
}
