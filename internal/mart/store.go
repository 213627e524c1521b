package mart

import (
	"context"
	"fmt"
	"time"

	"analytics-service/internal/models"
	"analytics-service/internal/util"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const martQuery = `
	SELECT order_id, order_date, y_mth,
	       order_delivered_customer_date, order_estimated_delivery_date,
	       customer_unique_id, customer_state, customer_lat, customer_lng,
	       product_id, product_category_name, payment_value, review_score
	FROM dashboard_mart
	ORDER BY y_mth, order_id`

// StoreLoader reads the mart table from Postgres.
type StoreLoader struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewStoreLoader connects to the database holding the mart table.
func NewStoreLoader(databaseURL string) (*StoreLoader, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &StoreLoader{db: db, logger: util.GetLogger()}, nil
}

// Close closes the database connection
func (s *StoreLoader) Close() error {
	return s.db.Close()
}

// Load selects the full mart table.
func (s *StoreLoader) Load(ctx context.Context) ([]models.Transaction, error) {
	start := time.Now()

	var rows []models.Transaction
	if err := s.db.SelectContext(ctx, &rows, martQuery); err != nil {
		util.DatasetLoadErrorsTotal.WithLabelValues("postgres").Inc()
		return nil, fmt.Errorf("failed to load mart table: %w", err)
	}

	util.DatasetLoadsTotal.WithLabelValues("postgres").Inc()
	util.DatasetLoadDuration.Observe(time.Since(start).Seconds())
	s.logger.Info("Mart loaded from database",
		zap.Int("rows", len(rows)),
		zap.Duration("elapsed", time.Since(start)))
	return rows, nil
}
