package admin

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
)

// StateService источник снапшота и точка сохранения
type StateService interface {
	Current(ctx context.Context) (*domain.Snapshot, error)
	Commit(ctx context.Context, snap *domain.Snapshot) error
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
