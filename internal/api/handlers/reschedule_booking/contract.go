package reschedule_booking

import (
	"context"

	"github.com/m04kA/SMC-FieldScheduler/internal/service/bookings/models"
)

type BookingService interface {
	Reschedule(ctx context.Context, req *models.RescheduleRequest, actor string) (*models.BookingResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
