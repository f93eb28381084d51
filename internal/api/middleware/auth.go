package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-FieldScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/admin"
)

const (
	msgAuthRequired       = "требуется аутентификация"
	msgInvalidCredentials = "неверное имя пользователя или пароль"
	msgForbidden          = "недостаточно прав"
)

// Authenticator проверка учетных данных
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*admin.UserView, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// BasicAuth проверяет заголовок Authorization: Basic и кладет пользователя в контекст
func BasicAuth(auth Authenticator, realm string, logger Logger) func(http.Handler) http.Handler {
	challenge := fmt.Sprintf("Basic realm=%q, charset=\"UTF-8\"", realm)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok || username == "" {
				w.Header().Set("WWW-Authenticate", challenge)
				handlers.RespondUnauthorized(w, msgAuthRequired)
				return
			}

			user, err := auth.Authenticate(r.Context(), username, password)
			if err != nil {
				if errors.Is(err, admin.ErrInvalidCredentials) {
					logger.Warn("%s %s - invalid credentials for user %q", r.Method, r.URL.Path, username)
					w.Header().Set("WWW-Authenticate", challenge)
					handlers.RespondUnauthorized(w, msgInvalidCredentials)
					return
				}
				logger.Error("%s %s - authentication failed: %v", r.Method, r.URL.Path, err)
				handlers.RespondInternalError(w)
				return
			}

			ctx := WithUser(r.Context(), User{Username: user.Username, Permissions: user.Permissions})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NoAuth используется при выключенной аутентификации: все запросы выполняются
// от имени actor со всеми правами
func NoAuth(actor string) func(http.Handler) http.Handler {
	user := User{
		Username: actor,
		Permissions: domain.Permissions{
			ManageBookings: true,
			ManageCapacity: true,
			ViewAnalytics:  true,
			ManageUsers:    true,
		},
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequirePermission пропускает запрос, только если у пользователя есть право perm
func RequirePermission(perm domain.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgAuthRequired)
				return
			}
			if !user.Permissions.Has(perm) {
				handlers.RespondForbidden(w, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
