package api

import (
	"net/http"
	"strconv"
	"time"

	"analytics-service/internal/service"
	"analytics-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	dashboardService *service.DashboardService
	reportService    *service.ReportService
}

// NewHandler creates a new HTTP handler
func NewHandler(dashboardService *service.DashboardService, reportService *service.ReportService) *Handler {
	return &Handler{
		dashboardService: dashboardService,
		reportService:    reportService,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/months", h.getMonths)
		v1.GET("/regions", h.getRegions)
		v1.POST("/dashboard", h.getDashboard)
		v1.POST("/report", h.getReport)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// getMonths returns the selectable month tokens
func (h *Handler) getMonths(c *gin.Context) {
	months, err := h.dashboardService.Months(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load months",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"months": months})
}

// getRegions returns the region lookup table
func (h *Handler) getRegions(c *gin.Context) {
	regions, err := h.dashboardService.Regions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load regions",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"regions": regions})
}

// getDashboard computes the full dashboard payload for a filter selection
func (h *Handler) getDashboard(c *gin.Context) {
	var req service.DashboardRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.dashboardService.Dashboard(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to compute dashboard",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getReport renders the XLSX report for a filter selection
func (h *Handler) getReport(c *gin.Context) {
	var req service.DashboardRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	filename, data, err := h.reportService.GenerateReport(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate report",
			"details": err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
