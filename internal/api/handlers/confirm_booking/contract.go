package confirm_booking

import (
	"context"

	"github.com/m04kA/SMC-FieldScheduler/internal/service/bookings/models"
)

type BookingService interface {
	Confirm(ctx context.Context, id, actor string) (*models.BookingResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
