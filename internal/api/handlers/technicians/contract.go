package technicians

import (
	"context"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/admin"
)

type AdminService interface {
	ListTechnicians(ctx context.Context) ([]domain.Technician, error)
	UpsertTechnician(ctx context.Context, req *admin.TechnicianRequest, actor string) (*domain.Technician, *admin.Result, error)
	DeleteTechnician(ctx context.Context, id, actor string) (*admin.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
