package get_confirmation_message

import (
	"context"

	"github.com/m04kA/SMC-FieldScheduler/internal/service/bookings/models"
)

type BookingService interface {
	ConfirmationMessage(ctx context.Context, id string) (*models.ConfirmationMessage, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
