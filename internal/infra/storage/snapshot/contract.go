package snapshot

import (
	"context"
	"database/sql"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
)

// Repository единица хранения: снапшот загружается и сохраняется целиком
type Repository interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, snap *domain.Snapshot) error
}

// DBExecutor интерфейс для выполнения запросов
// Поддерживает *sql.DB и *sql.Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// FailureCounter счётчик неудачных сохранений
type FailureCounter interface {
	Inc()
}
