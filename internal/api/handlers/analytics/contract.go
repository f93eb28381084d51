package analytics

import (
	"context"

	"github.com/m04kA/SMC-FieldScheduler/internal/service/analytics/models"
)

type AnalyticsService interface {
	Report(ctx context.Context, req *models.ReportRequest) (*models.Report, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
