package get_open_periods

import (
	"context"

	getOpenPeriods "github.com/m04kA/SMC-FieldScheduler/internal/usecase/get_open_periods"
)

type GetOpenPeriodsUseCase interface {
	Execute(ctx context.Context, req *getOpenPeriods.Request) (*getOpenPeriods.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
