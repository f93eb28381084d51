package remove_booking

import (
	"context"

	"github.com/m04kA/SMC-FieldScheduler/internal/service/bookings/models"
)

type BookingService interface {
	Remove(ctx context.Context, id, actor string) (*models.MutationResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
