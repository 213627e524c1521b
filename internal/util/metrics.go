package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DatasetLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dataset_loads_total",
		Help: "Total number of mart dataset loads from the backing source",
	}, []string{"source"})

	DatasetLoadErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dataset_load_errors_total",
		Help: "Total number of failed mart dataset loads",
	}, []string{"source"})

	DatasetLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dataset_load_duration_seconds",
		Help:    "Latency of mart dataset loads",
		Buckets: prometheus.DefBuckets,
	})

	DatasetCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dataset_cache_hits_total",
		Help: "Total number of dataset reads served from the in-memory cache",
	})

	DatasetCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dataset_cache_misses_total",
		Help: "Total number of dataset reads that required a reload",
	})

	DatasetCacheInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dataset_cache_invalidations_total",
		Help: "Total number of explicit dataset cache invalidations",
	})

	ResponseCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "response_cache_hits_total",
		Help: "Total number of dashboard responses served from Redis",
	})

	ResponseCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "response_cache_misses_total",
		Help: "Total number of dashboard responses computed from scratch",
	})

	DashboardQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_queries_total",
		Help: "Total number of dashboard queries",
	}, []string{"comparable"})

	ReportsGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reports_generated_total",
		Help: "Total number of generated report downloads",
	})

	ReportsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reports_failed_total",
		Help: "Total number of failed report generations",
	}, []string{"reason"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
