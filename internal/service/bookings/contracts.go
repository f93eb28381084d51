package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/integrations/notifier"
)

// StateService источник снапшота и точка сохранения
type StateService interface {
	Current(ctx context.Context) (*domain.Snapshot, error)
	Commit(ctx context.Context, snap *domain.Snapshot) error
	Notify(ctx context.Context, eventType notifier.EventType, b domain.Booking)
	Now() time.Time
}

// TextGenerator генерация текста подтверждения для клиента
type TextGenerator interface {
	Generate(ctx context.Context, booking domain.Booking) string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
