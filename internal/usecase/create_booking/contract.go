package create_booking

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
}

// Recorder метрики
type Recorder interface {
	BookingCreated(kind, period string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
