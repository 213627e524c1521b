package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"analytics-service/config"
	"analytics-service/internal/analytics"
	"analytics-service/internal/mart"
	"analytics-service/internal/models"
	"analytics-service/internal/redisclient"
	"analytics-service/internal/util"

	"go.uber.org/zap"
)

// DashboardService assembles the full dashboard payload from the cached
// mart table. All aggregation happens in the analytics package; this layer
// handles loading, filtering, response caching and tracing.
type DashboardService struct {
	cache   *mart.Cache
	redis   *redisclient.Client
	scoring config.ScoringConfig
	ranking config.RankingConfig
	ttl     time.Duration
	logger  *zap.Logger
}

// NewDashboardService creates a new dashboard service. redis may be nil, in
// which case every query is computed from the mart cache.
func NewDashboardService(
	cache *mart.Cache,
	redis *redisclient.Client,
	scoring config.ScoringConfig,
	ranking config.RankingConfig,
	responseTTL time.Duration,
) *DashboardService {
	return &DashboardService{
		cache:   cache,
		redis:   redis,
		scoring: scoring,
		ranking: ranking,
		ttl:     responseTTL,
		logger:  util.GetLogger(),
	}
}

// DashboardRequest selects the month and regions to analyze. An empty month
// means all months; an empty state list means all regions.
type DashboardRequest struct {
	Month  string   `json:"month"`
	States []string `json:"states"`
}

// Normalize fills the all-months sentinel and sorts the region filter so
// equivalent requests share one cache key.
func (r *DashboardRequest) Normalize() {
	if r.Month == "" {
		r.Month = models.MonthAll
	}
	sort.Strings(r.States)
}

// CacheKey returns the response cache key for the normalized request.
func (r *DashboardRequest) CacheKey() string {
	return r.Month + "|" + strings.Join(r.States, ",")
}

// DisplayMetrics carries the headline KPI strings the way the dashboard
// renders them, built with the magnitude formatter.
type DisplayMetrics struct {
	TotalAmount    string `json:"total_amount"`
	TotalOrders    string `json:"total_orders"`
	TotalCustomers string `json:"total_customers"`
	AvgOrderValue  string `json:"avg_order_value"`
	TotalProducts  string `json:"total_products"`
}

// DashboardResponse is the full payload for one filter selection.
type DashboardResponse struct {
	Month       string    `json:"month"`
	States      []string  `json:"states,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`

	Comparison models.Comparison   `json:"comparison"`
	Display    DisplayMetrics      `json:"display"`
	Ratios     models.FilterRatios `json:"ratios"`
	Summary    models.KeyMetrics   `json:"summary"`
	Insights   models.Insights     `json:"insights"`

	Regions       []models.RegionPerformance `json:"regions"`
	TopRegions    []models.RegionPerformance `json:"top_regions"`
	BottomRegions []models.RegionPerformance `json:"bottom_regions"`

	MonthlySales        []models.MonthlyPoint  `json:"monthly_sales"`
	TopCategories       []models.CategorySales `json:"top_categories"`
	TopStatesTrend      []models.StateTrend    `json:"top_states_trend"`
	SatisfactionVsSales []models.StatePoint    `json:"satisfaction_vs_sales"`
}

// Months returns the selectable month tokens, the all-months sentinel first.
func (s *DashboardService) Months(ctx context.Context) ([]string, error) {
	ctx, span := util.StartSpan(ctx, "DashboardService.Months")
	defer span.End()

	table, err := s.cache.Table(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load mart: %w", err)
	}
	return append([]string{models.MonthAll}, mart.Months(table)...), nil
}

// Regions returns the region lookup table for the filter UI and the map.
func (s *DashboardService) Regions(ctx context.Context) ([]models.RegionLocation, error) {
	ctx, span := util.StartSpan(ctx, "DashboardService.Regions")
	defer span.End()

	table, err := s.cache.Table(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load mart: %w", err)
	}
	return mart.RegionLookup(table), nil
}

// Dashboard computes the full dashboard payload for the request, serving
// from the Redis response cache when possible.
func (s *DashboardService) Dashboard(ctx context.Context, req DashboardRequest) (*DashboardResponse, error) {
	ctx, span := util.StartSpan(ctx, "DashboardService.Dashboard")
	defer span.End()

	req.Normalize()

	if s.redis != nil {
		var cached DashboardResponse
		hit, err := s.redis.GetResponse(ctx, req.CacheKey(), &cached)
		if err != nil {
			s.logger.Warn("Response cache read failed", zap.Error(err))
		} else if hit {
			util.ResponseCacheHitsTotal.Inc()
			return &cached, nil
		}
		util.ResponseCacheMissesTotal.Inc()
	}

	table, err := s.cache.Table(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load mart: %w", err)
	}

	resp := s.compute(table, req)

	util.DashboardQueriesTotal.WithLabelValues(strconv.FormatBool(resp.Comparison.Comparable)).Inc()

	if s.redis != nil {
		if err := s.redis.SetResponse(ctx, req.CacheKey(), resp, s.ttl); err != nil {
			s.logger.Warn("Response cache write failed", zap.Error(err))
		}
	}

	s.logger.Info("Dashboard computed",
		zap.String("month", req.Month),
		zap.Strings("states", req.States),
		zap.Bool("comparable", resp.Comparison.Comparable))
	return resp, nil
}

func (s *DashboardService) compute(table []models.Transaction, req DashboardRequest) *DashboardResponse {
	subset := mart.ApplyFilters(table, req.Month, req.States)

	comparison := analytics.ComputeComparison(subset, req.Month, table, req.States)
	regions := analytics.AggregateRegions(subset, s.scoring)
	top, bottom := analytics.RankRegions(regions, s.ranking.TopN, s.ranking.BottomN)

	return &DashboardResponse{
		Month:       req.Month,
		States:      req.States,
		GeneratedAt: time.Now().UTC(),
		Comparison:  comparison,
		Display: DisplayMetrics{
			TotalAmount:    analytics.FormatMagnitude(comparison.Current.TotalAmount),
			TotalOrders:    analytics.FormatMagnitude(float64(comparison.Current.TotalOrders)),
			TotalCustomers: analytics.FormatMagnitude(float64(comparison.Current.TotalCustomers)),
			AvgOrderValue:  analytics.FormatMagnitude(comparison.Current.AvgOrderValue),
			TotalProducts:  analytics.FormatMagnitude(float64(comparison.Current.TotalProducts)),
		},
		Ratios:              analytics.ComputeFilterRatios(table, subset),
		Summary:             analytics.KeyMetricsSummary(subset),
		Insights:            analytics.ComputeInsights(subset),
		Regions:             regions,
		TopRegions:          top,
		BottomRegions:       bottom,
		MonthlySales:        analytics.MonthlySales(table),
		TopCategories:       analytics.TopCategories(subset, s.ranking.TrendTop),
		TopStatesTrend:      analytics.TopStatesTrend(table, s.ranking.TrendTop),
		SatisfactionVsSales: analytics.SatisfactionVsSales(table),
	}
}
