package service

import (
	"context"
	"strings"
	"testing"

	"analytics-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReport(t *testing.T) {
	dashboard := newTestService([]models.Transaction{
		martRow("O1", "C1", "P1", "SP", "2018-01", 100),
		martRow("O2", "C2", "P2", "SP", "2018-02", 300),
	})
	svc := NewReportService(dashboard, nil)

	filename, data, err := svc.GenerateReport(context.Background(), DashboardRequest{Month: "2018-02"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filename, "dashboard_report_2018-02_all_"))
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))
	assert.NotEmpty(t, data)
}

func TestGenerateReportAllMonths(t *testing.T) {
	dashboard := newTestService([]models.Transaction{
		martRow("O1", "C1", "P1", "SP", "2018-01", 100),
	})
	svc := NewReportService(dashboard, nil)

	filename, data, err := svc.GenerateReport(context.Background(), DashboardRequest{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filename, "dashboard_report_all_all_"))
	assert.NotEmpty(t, data)
}
