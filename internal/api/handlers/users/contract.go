package users

import (
	"context"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/admin"
)

type AdminService interface {
	ListUsers(ctx context.Context) ([]admin.UserView, error)
	CreateUser(ctx context.Context, req *admin.CreateUserRequest, actor string) (*admin.UserView, *admin.Result, error)
	UpdateUser(ctx context.Context, req *admin.UpdateUserRequest, actor string) (*admin.UserView, *admin.Result, error)
	DeleteUser(ctx context.Context, username, actor string) (*admin.Result, error)
	SetAPIToken(ctx context.Context, token, actor string) (*admin.Result, error)
	AuditLog(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
