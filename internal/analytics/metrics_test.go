package analytics

import (
	"testing"
	"time"

	"analytics-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func ts(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &t
}

func f(v float64) *float64 { return &v }

func row(order, customer, product string, payment float64) models.Transaction {
	return models.Transaction{
		OrderID:          order,
		CustomerUniqueID: customer,
		ProductID:        product,
		CustomerState:    "SP",
		YearMonth:        "2018-01",
		PaymentValue:     payment,
	}
}

func TestComputePeriodMetricsDistinctCounts(t *testing.T) {
	// O1 has two line items: it must count once everywhere.
	rows := []models.Transaction{
		row("O1", "C1", "P1", 100),
		row("O1", "C1", "P2", 50),
		row("O2", "C2", "P1", 200),
	}

	m := ComputePeriodMetrics(rows)

	assert.Equal(t, 2, m.TotalOrders)
	assert.Equal(t, 2, m.TotalCustomers)
	assert.Equal(t, 2, m.TotalProducts)
	assert.InDelta(t, 350, m.TotalAmount, 1e-9)
	assert.InDelta(t, 175, m.AvgOrderValue, 1e-9)
}

func TestComputePeriodMetricsAOVIdentity(t *testing.T) {
	rows := []models.Transaction{
		row("O1", "C1", "P1", 33.33),
		row("O2", "C2", "P2", 66.67),
		row("O3", "C3", "P3", 10.01),
	}

	m := ComputePeriodMetrics(rows)

	assert.InDelta(t, m.TotalAmount, m.AvgOrderValue*float64(m.TotalOrders), 1e-9)
}

func TestComputePeriodMetricsEmptySubset(t *testing.T) {
	m := ComputePeriodMetrics(nil)

	assert.Equal(t, models.Metrics{}, m)
}

func TestComputePeriodMetricsOnTimeRateExcludesNulls(t *testing.T) {
	onTime := row("O1", "C1", "P1", 100)
	onTime.DeliveredDate = ts("2018-01-10")
	onTime.EstimatedDate = ts("2018-01-15")

	late := row("O2", "C2", "P2", 100)
	late.DeliveredDate = ts("2018-01-20")
	late.EstimatedDate = ts("2018-01-15")

	// Missing estimate: excluded from the denominator entirely.
	unknown := row("O3", "C3", "P3", 100)
	unknown.DeliveredDate = ts("2018-01-12")

	m := ComputePeriodMetrics([]models.Transaction{onTime, late, unknown})

	assert.InDelta(t, 50, m.OnTimeDeliveryRate, 1e-9)
}

func TestComputePeriodMetricsShippingDays(t *testing.T) {
	fast := row("O1", "C1", "P1", 100)
	fast.OrderDate = ts("2018-01-01")
	fast.DeliveredDate = ts("2018-01-04")

	slow := row("O2", "C2", "P2", 100)
	slow.OrderDate = ts("2018-01-01")
	slow.DeliveredDate = ts("2018-01-06")

	undelivered := row("O3", "C3", "P3", 100)
	undelivered.OrderDate = ts("2018-01-01")

	m := ComputePeriodMetrics([]models.Transaction{fast, slow, undelivered})

	assert.InDelta(t, 4, m.AvgShippingTime, 1e-9)
}

func TestComputePeriodMetricsRepeatRate(t *testing.T) {
	rows := []models.Transaction{
		row("O1", "C1", "P1", 100),
		row("O2", "C1", "P2", 100),
		row("O3", "C2", "P3", 100),
	}

	m := ComputePeriodMetrics(rows)

	assert.InDelta(t, 50, m.RepeatPurchaseRate, 1e-9)
}

func TestComputePeriodMetricsReviewScoreTwoLevelMean(t *testing.T) {
	// O1 carries two line-item scores averaging 3; O2 one score of 5. The
	// order-level mean is (3+5)/2 = 4, not the row mean 11/3.
	r1 := row("O1", "C1", "P1", 100)
	r1.ReviewScore = f(5)
	r2 := row("O1", "C1", "P2", 100)
	r2.ReviewScore = f(1)
	r3 := row("O2", "C2", "P3", 100)
	r3.ReviewScore = f(5)

	m := ComputePeriodMetrics([]models.Transaction{r1, r2, r3})

	assert.InDelta(t, 4, m.AvgReviewScore, 1e-9)
}

func TestComputePeriodMetricsIdempotent(t *testing.T) {
	rows := []models.Transaction{
		row("O1", "C1", "P1", 100),
		row("O2", "C1", "P2", 250),
	}

	first := ComputePeriodMetrics(rows)
	second := ComputePeriodMetrics(rows)

	assert.Equal(t, first, second)
}

func TestCalculateDelta(t *testing.T) {
	d := CalculateDelta(150, 100)
	assert.NotNil(t, d)
	assert.InDelta(t, 50, *d, 1e-9)

	assert.Nil(t, CalculateDelta(150, 0))
}
