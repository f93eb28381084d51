package middleware

import (
	"context"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
)

type contextKey string

const userContextKey contextKey = "user"

// User аутентифицированный пользователь запроса
type User struct {
	Username    string
	Permissions domain.Permissions
}

// WithUser возвращает контекст с пользователем
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUser извлекает пользователя из контекста
func GetUser(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userContextKey).(User)
	return user, ok
}

// Actor имя пользователя для журнала аудита
func Actor(ctx context.Context) string {
	if user, ok := GetUser(ctx); ok && user.Username != "" {
		return user.Username
	}
	return "anonymous"
}
