package sync

import (
	"context"

	"github.com/m04kA/SMC-FieldScheduler/internal/service/remote"
)

type SyncService interface {
	Push(ctx context.Context) (*remote.Result, error)
	Pull(ctx context.Context, actor string) (*remote.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
