package update_execution

import (
	"context"

	"github.com/m04kA/SMC-FieldScheduler/internal/service/bookings/models"
)

type BookingService interface {
	UpdateExecution(ctx context.Context, req *models.UpdateExecutionRequest, actor string) (*models.BookingResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
