package mart

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"analytics-service/internal/util"

	"go.uber.org/zap"
)

// BuildOptions controls the mart build.
type BuildOptions struct {
	DataDir    string
	OutputPath string
	// Window bounds on y_mth, inclusive. Zero values keep everything.
	FromMonth string
	ToMonth   string
}

// DefaultBuildOptions reproduces the stock build: the cleaned Olist exports
// in dataDir, windowed to 2017-01 through 2018-08.
func DefaultBuildOptions(dataDir, outputPath string) BuildOptions {
	return BuildOptions{
		DataDir:    dataDir,
		OutputPath: outputPath,
		FromMonth:  "2017-01",
		ToMonth:    "2018-08",
	}
}

var martColumns = []string{
	"order_id",
	"order_date",
	"y_mth",
	"order_delivered_customer_date",
	"order_estimated_delivery_date",
	"customer_unique_id",
	"customer_state",
	"customer_lat",
	"customer_lng",
	"product_id",
	"product_category_name",
	"payment_value",
	"review_score",
}

// BuildMart joins the raw source exports into the denormalized mart file:
// one row per order line item with customer, product, review and geolocation
// attributes attached, payment_value = price + freight.
func BuildMart(opts BuildOptions) (int, error) {
	logger := util.GetLogger()
	start := time.Now()

	orders, err := readCSVTable(filepath.Join(opts.DataDir, "orders.csv"))
	if err != nil {
		return 0, err
	}
	items, err := readCSVTable(filepath.Join(opts.DataDir, "order_items.csv"))
	if err != nil {
		return 0, err
	}
	products, err := readCSVTable(filepath.Join(opts.DataDir, "products.csv"))
	if err != nil {
		return 0, err
	}
	reviews, err := readCSVTable(filepath.Join(opts.DataDir, "order_reviews.csv"))
	if err != nil {
		return 0, err
	}
	customers, err := readCSVTable(filepath.Join(opts.DataDir, "customers.csv"))
	if err != nil {
		return 0, err
	}
	geo, err := readCSVTable(filepath.Join(opts.DataDir, "geolocation.csv"))
	if err != nil {
		return 0, err
	}
	catTrans, err := readCSVTable(filepath.Join(opts.DataDir, "product_category_name_translation.csv"))
	if err != nil {
		return 0, err
	}

	ordersByID := indexBy(orders, "order_id")
	customersByID := indexBy(customers, "customer_id")

	// English category names keyed by the original Portuguese name; unmapped
	// categories fall back to "Others".
	categoryEnglish := make(map[string]string, len(catTrans))
	for _, row := range catTrans {
		categoryEnglish[row["product_category_name"]] = row["product_category_name_english"]
	}

	productCategory := make(map[string]string, len(products))
	for _, row := range products {
		category := categoryEnglish[row["product_category_name"]]
		if category == "" {
			category = "Others"
		}
		productCategory[row["product_id"]] = category
	}

	// Mean review score per order; an order can carry several reviews.
	type reviewAcc struct {
		sum float64
		n   int
	}
	reviewByOrder := make(map[string]*reviewAcc)
	for _, row := range reviews {
		score, err := strconv.ParseFloat(row["review_score"], 64)
		if err != nil {
			continue
		}
		acc, ok := reviewByOrder[row["order_id"]]
		if !ok {
			acc = &reviewAcc{}
			reviewByOrder[row["order_id"]] = acc
		}
		acc.sum += score
		acc.n++
	}

	// First coordinate per zip code prefix.
	geoByZip := make(map[string][2]string, len(geo))
	for _, row := range geo {
		zip := row["geolocation_zip_code_prefix"]
		if _, ok := geoByZip[zip]; ok {
			continue
		}
		geoByZip[zip] = [2]string{row["geolocation_lat"], row["geolocation_lng"]}
	}

	out, err := os.Create(opts.OutputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create mart file: %w", err)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	if err := writer.Write(martColumns); err != nil {
		return 0, fmt.Errorf("failed to write mart header: %w", err)
	}

	written := 0
	for _, item := range items {
		order, ok := ordersByID[item["order_id"]]
		if !ok {
			continue
		}

		orderDate := order["order_purchase_timestamp"]
		yMth := yearMonth(orderDate)
		if yMth == "" {
			continue
		}
		if opts.FromMonth != "" && yMth < opts.FromMonth {
			continue
		}
		if opts.ToMonth != "" && yMth > opts.ToMonth {
			continue
		}

		price, _ := strconv.ParseFloat(item["price"], 64)
		freight, _ := strconv.ParseFloat(item["freight_value"], 64)

		customer := customersByID[order["customer_id"]]
		coord := geoByZip[customer["customer_zip_code_prefix"]]

		reviewScore := ""
		if acc, ok := reviewByOrder[item["order_id"]]; ok && acc.n > 0 {
			reviewScore = strconv.FormatFloat(acc.sum/float64(acc.n), 'f', -1, 64)
		}

		category := productCategory[item["product_id"]]
		if category == "" {
			category = "Others"
		}

		record := []string{
			item["order_id"],
			orderDate,
			yMth,
			order["order_delivered_customer_date"],
			order["order_estimated_delivery_date"],
			customer["customer_unique_id"],
			customer["customer_state"],
			coord[0],
			coord[1],
			item["product_id"],
			category,
			strconv.FormatFloat(price+freight, 'f', 2, 64),
			reviewScore,
		}
		if err := writer.Write(record); err != nil {
			return written, fmt.Errorf("failed to write mart row: %w", err)
		}
		written++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return written, fmt.Errorf("failed to flush mart file: %w", err)
	}

	logger.Info("Mart built",
		zap.String("output", opts.OutputPath),
		zap.Int("rows", written),
		zap.Duration("elapsed", time.Since(start)))
	return written, nil
}

func readCSVTable(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func indexBy(rows []map[string]string, key string) map[string]map[string]string {
	index := make(map[string]map[string]string, len(rows))
	for _, row := range rows {
		index[row[key]] = row
	}
	return index
}

func yearMonth(timestamp string) string {
	t := parseTimestamp(timestamp)
	if t == nil {
		return ""
	}
	return t.Format("2006-01")
}
