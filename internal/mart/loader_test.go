package mart

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"analytics-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMartFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashboard_mart.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const martHeader = "order_id,order_date,y_mth,order_delivered_customer_date,order_estimated_delivery_date,customer_unique_id,customer_state,customer_lat,customer_lng,product_id,product_category_name,payment_value,review_score\n"

func TestCSVLoaderLoad(t *testing.T) {
	path := writeMartFile(t, martHeader+
		"O1,2018-01-10 08:30:00,2018-01,2018-01-14 10:00:00,2018-01-20 00:00:00,C1,SP,-23.5,-46.6,P1,toys,120.50,4\n"+
		"O2,2018-02-01 12:00:00,2018-02,,,C2,RJ,,,P2,books,80.00,\n")

	rows, err := NewCSVLoader(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "O1", first.OrderID)
	assert.Equal(t, "2018-01", first.YearMonth)
	assert.Equal(t, "SP", first.CustomerState)
	require.NotNil(t, first.OrderDate)
	require.NotNil(t, first.DeliveredDate)
	require.NotNil(t, first.EstimatedDate)
	require.NotNil(t, first.CustomerLat)
	assert.InDelta(t, -23.5, *first.CustomerLat, 1e-9)
	assert.InDelta(t, 120.50, first.PaymentValue, 1e-9)
	require.NotNil(t, first.ReviewScore)
	assert.InDelta(t, 4, *first.ReviewScore, 1e-9)

	second := rows[1]
	assert.Nil(t, second.DeliveredDate)
	assert.Nil(t, second.EstimatedDate)
	assert.Nil(t, second.CustomerLat)
	assert.Nil(t, second.ReviewScore)
}

func TestCSVLoaderMalformedValuesBecomeNulls(t *testing.T) {
	path := writeMartFile(t, martHeader+
		"O1,not-a-date,2018-01,also-bad,,C1,SP,abc,xyz,P1,toys,50.00,bad\n")

	rows, err := NewCSVLoader(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Nil(t, row.OrderDate)
	assert.Nil(t, row.DeliveredDate)
	assert.Nil(t, row.CustomerLat)
	assert.Nil(t, row.CustomerLng)
	assert.Nil(t, row.ReviewScore)
	assert.InDelta(t, 50, row.PaymentValue, 1e-9)
}

func TestCSVLoaderMissingColumn(t *testing.T) {
	path := writeMartFile(t, "order_id,y_mth\nO1,2018-01\n")

	_, err := NewCSVLoader(path).Load(context.Background())
	assert.Error(t, err)
}

func TestCSVLoaderMissingFile(t *testing.T) {
	_, err := NewCSVLoader(filepath.Join(t.TempDir(), "absent.csv")).Load(context.Background())
	assert.Error(t, err)
}

func TestMonths(t *testing.T) {
	rows := []models.Transaction{
		filterRow("O1", "SP", "2018-02"),
		filterRow("O2", "SP", "2017-12"),
		filterRow("O3", "RJ", "2018-02"),
	}

	assert.Equal(t, []string{"2017-12", "2018-02"}, Months(rows))
}

func TestRegionLookup(t *testing.T) {
	lat1, lng1 := -23.0, -46.0
	lat2, lng2 := -21.0, -44.0
	rows := []models.Transaction{
		{OrderID: "O1", CustomerState: "SP", CustomerLat: &lat1, CustomerLng: &lng1},
		{OrderID: "O2", CustomerState: "SP", CustomerLat: &lat2, CustomerLng: &lng2},
		{OrderID: "O3", CustomerState: "RJ"},
	}

	lookup := RegionLookup(rows)

	require.Len(t, lookup, 2)
	assert.Equal(t, "RJ", lookup[0].State)
	assert.Zero(t, lookup[0].Lat)
	assert.Equal(t, "SP", lookup[1].State)
	assert.InDelta(t, -22, lookup[1].Lat, 1e-9)
	assert.InDelta(t, -45, lookup[1].Lng, 1e-9)
}
