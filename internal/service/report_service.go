package service

import (
	"context"
	"fmt"
	"time"

	"analytics-service/internal/broker"
	"analytics-service/internal/models"
	"analytics-service/internal/report"
	"analytics-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportService builds downloadable report workbooks from dashboard data.
type ReportService struct {
	dashboard *DashboardService
	publisher *broker.EventPublisher
	logger    *zap.Logger
}

// NewReportService creates a new report service. publisher may be nil when
// no broker is configured.
func NewReportService(dashboard *DashboardService, publisher *broker.EventPublisher) *ReportService {
	return &ReportService{
		dashboard: dashboard,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// GenerateReport computes the dashboard for the request and renders it as
// an XLSX workbook, returning the download filename and the file bytes.
func (s *ReportService) GenerateReport(ctx context.Context, req DashboardRequest) (string, []byte, error) {
	ctx, span := util.StartSpan(ctx, "ReportService.GenerateReport")
	defer span.End()

	req.Normalize()

	resp, err := s.dashboard.Dashboard(ctx, req)
	if err != nil {
		util.ReportsFailedTotal.WithLabelValues("dashboard").Inc()
		return "", nil, fmt.Errorf("failed to compute report data: %w", err)
	}

	generatedAt := time.Now()
	data, err := report.Build(report.Input{
		Month:       req.Month,
		States:      req.States,
		GeneratedAt: generatedAt,
		Current:     resp.Comparison.Current,
		Previous:    resp.Comparison.Previous,
		Comparable:  resp.Comparison.Comparable,
		Deltas:      resp.Comparison.Deltas,
		Regions:     resp.Regions,
	})
	if err != nil {
		util.ReportsFailedTotal.WithLabelValues("render").Inc()
		return "", nil, fmt.Errorf("failed to render report: %w", err)
	}

	filename := report.Filename(req.Month, req.States, generatedAt)
	reportID := uuid.New().String()
	util.ReportsGeneratedTotal.Inc()

	if s.publisher != nil {
		event := &models.ReportGeneratedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeReportGenerated,
				Timestamp: generatedAt,
			},
			ReportID: reportID,
			Month:    req.Month,
			States:   req.States,
			Filename: filename,
		}
		if err := s.publisher.PublishReportGenerated(ctx, event); err != nil {
			// Publishing is best effort; the download already succeeded.
			s.logger.Warn("Failed to publish report event", zap.Error(err))
		}
	}

	s.logger.Info("Report generated",
		zap.String("report_id", reportID),
		zap.String("filename", filename),
		zap.Int("bytes", len(data)))
	return filename, data, nil
}
