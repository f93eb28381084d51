package catalog

import (
	"context"

	"github.com/m04kA/SMC-FieldScheduler/internal/service/admin"
)

type AdminService interface {
	ListCities(ctx context.Context) ([]string, error)
	AddCity(ctx context.Context, city, actor string) (*admin.Result, error)
	RemoveCity(ctx context.Context, city, actor string) (*admin.Result, error)

	ListActivities(ctx context.Context) ([]string, error)
	AddActivity(ctx context.Context, activity, actor string) (*admin.Result, error)
	RemoveActivity(ctx context.Context, activity, actor string) (*admin.Result, error)

	ListHolidays(ctx context.Context) ([]string, error)
	AddHoliday(ctx context.Context, date, actor string) (*admin.Result, error)
	RemoveHoliday(ctx context.Context, date, actor string) (*admin.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
