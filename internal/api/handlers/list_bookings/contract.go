package list_bookings

import (
	"context"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/bookings/models"
)

type BookingService interface {
	List(ctx context.Context, req *models.ListRequest) ([]domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
