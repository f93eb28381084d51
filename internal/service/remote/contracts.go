package remote

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

// RemoteClient клиент удаленного хранилища
type RemoteClient interface {
	Push(ctx context.Context, endpoint, token string, snap *domain.Snapshot) error
	Pull(ctx context.Context, endpoint, token string) (*domain.Snapshot, error)
}

// Recorder метрики синхронизации
type Recorder interface {
	SyncOperation(direction, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
