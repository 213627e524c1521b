package models

import "time"

// MonthAll is the month token meaning "no specific month selected".
const MonthAll = "All"

// Transaction is one line item of the denormalized dashboard mart. An order
// with several items appears as several rows, so order/customer/product
// counts must always be distinct counts, never row counts.
type Transaction struct {
	OrderID             string     `db:"order_id" json:"order_id"`
	OrderDate           *time.Time `db:"order_date" json:"order_date,omitempty"`
	YearMonth           string     `db:"y_mth" json:"y_mth"`
	DeliveredDate       *time.Time `db:"order_delivered_customer_date" json:"order_delivered_customer_date,omitempty"`
	EstimatedDate       *time.Time `db:"order_estimated_delivery_date" json:"order_estimated_delivery_date,omitempty"`
	CustomerUniqueID    string     `db:"customer_unique_id" json:"customer_unique_id"`
	CustomerState       string     `db:"customer_state" json:"customer_state"`
	CustomerLat         *float64   `db:"customer_lat" json:"customer_lat,omitempty"`
	CustomerLng         *float64   `db:"customer_lng" json:"customer_lng,omitempty"`
	ProductID           string     `db:"product_id" json:"product_id"`
	ProductCategoryName string     `db:"product_category_name" json:"product_category_name"`
	PaymentValue        float64    `db:"payment_value" json:"payment_value"`
	ReviewScore         *float64   `db:"review_score" json:"review_score,omitempty"`
}

// Metrics is the fixed KPI set for one row subset. Constructed fresh per
// query and never mutated.
type Metrics struct {
	TotalAmount        float64 `json:"total_amount"`
	TotalOrders        int     `json:"total_orders"`
	TotalCustomers     int     `json:"total_customers"`
	AvgOrderValue      float64 `json:"avg_order_value"`
	TotalProducts      int     `json:"total_products"`
	OnTimeDeliveryRate float64 `json:"on_time_delivery_rate"`
	AvgShippingTime    float64 `json:"avg_shipping_time"`
	RepeatPurchaseRate float64 `json:"repeat_purchase_rate"`
	AvgReviewScore     float64 `json:"avg_review_score"`
}

// MetricsDeltas holds month-over-month percentage changes per KPI. A nil
// field means the previous value was zero and the delta is undefined.
type MetricsDeltas struct {
	TotalAmount        *float64 `json:"total_amount,omitempty"`
	TotalOrders        *float64 `json:"total_orders,omitempty"`
	TotalCustomers     *float64 `json:"total_customers,omitempty"`
	AvgOrderValue      *float64 `json:"avg_order_value,omitempty"`
	TotalProducts      *float64 `json:"total_products,omitempty"`
	OnTimeDeliveryRate *float64 `json:"on_time_delivery_rate,omitempty"`
	AvgShippingTime    *float64 `json:"avg_shipping_time,omitempty"`
	RepeatPurchaseRate *float64 `json:"repeat_purchase_rate,omitempty"`
	AvgReviewScore     *float64 `json:"avg_review_score,omitempty"`
}

// Comparison is the result of aligning a filtered subset against its
// previous calendar month. Previous and Deltas are nil when Comparable is
// false.
type Comparison struct {
	Current    Metrics        `json:"current"`
	Previous   *Metrics       `json:"previous,omitempty"`
	Comparable bool           `json:"comparable"`
	Deltas     *MetricsDeltas `json:"deltas,omitempty"`
}

// RegionPerformance is the per-state aggregate used for the map and the
// rankings. Lat/Lng is the mean over the state's rows, a representative
// placement rather than an exact location.
type RegionPerformance struct {
	State            string  `json:"state"`
	TotalSales       float64 `json:"total_sales"`
	AvgOrderValue    float64 `json:"avg_order_value"`
	TotalOrders      int     `json:"total_orders"`
	TotalCustomers   int     `json:"total_customers"`
	AvgRating        float64 `json:"avg_rating"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	PerformanceScore float64 `json:"performance_score"`
}

// FilterRatios reports how much of the full table the filtered subset
// covers.
type FilterRatios struct {
	SalesRatio         float64 `json:"sales_ratio"`
	OrdersRatio        float64 `json:"orders_ratio"`
	CustomersRatio     float64 `json:"customers_ratio"`
	TotalAllSales      float64 `json:"total_all_sales"`
	TotalFilteredSales float64 `json:"total_filtered_sales"`
}

// RegionLocation is one entry of the region lookup table.
type RegionLocation struct {
	State string  `json:"state"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// MonthlyPoint is one month of a sales series.
type MonthlyPoint struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// CategorySales is one entry of the top-categories ranking.
type CategorySales struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// StateTrend is the monthly sales series for one state.
type StateTrend struct {
	State  string         `json:"state"`
	Points []MonthlyPoint `json:"points"`
}

// StatePoint is one state of the satisfaction-vs-sales scatter.
type StatePoint struct {
	State      string  `json:"state"`
	AvgRating  float64 `json:"avg_rating"`
	TotalSales float64 `json:"total_sales"`
	Orders     int     `json:"orders"`
}

// KeyMetrics is the compact summary shown next to the performance map.
type KeyMetrics struct {
	TotalSales     float64 `json:"total_sales"`
	TotalOrders    int     `json:"total_orders"`
	TotalCustomers int     `json:"total_customers"`
	AvgRating      float64 `json:"avg_rating"`
	TotalStates    int     `json:"total_states"`
	RepeatRate     float64 `json:"repeat_rate"`
}

// Insights holds the automatically derived highlights for the filtered
// subset.
type Insights struct {
	BestSalesState    string  `json:"best_sales_state"`
	BestSalesAmount   float64 `json:"best_sales_amount"`
	BestRatingState   string  `json:"best_rating_state"`
	BestRatingScore   float64 `json:"best_rating_score"`
	MostActiveState   string  `json:"most_active_state"`
	MostActiveOrders  int     `json:"most_active_orders"`
	Top3Concentration float64 `json:"top3_concentration"`
}
