package users

import (
	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/admin"
)

// UserRequest HTTP request model создания и изменения пользователя
type UserRequest struct {
	Username    string             `json:"username"`
	DisplayName string             `json:"displayName"`
	Password    string             `json:"password,omitempty"`
	Permissions domain.Permissions `json:"permissions"`
}

// UserResponse пользователь без хеша пароля
type UserResponse struct {
	Username    string             `json:"username"`
	DisplayName string             `json:"displayName"`
	Permissions domain.Permissions `json:"permissions"`
	Warning     string             `json:"warning,omitempty"`
}

// TokenRequest HTTP request model токена синхронизации
type TokenRequest struct {
	Token string `json:"token"`
}

func fromUserView(u admin.UserView, warning string) UserResponse {
	return UserResponse{
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Permissions: u.Permissions,
		Warning:     warning,
	}
}
