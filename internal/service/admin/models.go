package admin

import "github.com/m04kA/SMC-FieldScheduler/internal/domain"

// Audit action labels of administrative changes
const (
	ActionTechnicianUpsert = "technician.upsert"
	ActionTechnicianDelete = "technician.delete"
	ActionCityAdd          = "city.add"
	ActionCityRemove       = "city.remove"
	ActionActivityAdd      = "activity.add"
	ActionActivityRemove   = "activity.remove"
	ActionHolidayAdd       = "holiday.add"
	ActionHolidayRemove    = "holiday.remove"
	ActionUserCreate       = "user.create"
	ActionUserUpdate       = "user.update"
	ActionUserDelete       = "user.delete"
	ActionAPITokenUpdate   = "settings.api_token"
)

// TechnicianRequest создание или изменение техника
type TechnicianRequest struct {
	ID       string
	Name     string
	Cities   []string
	Capacity domain.Capacity
}

// CreateUserRequest создание пользователя
type CreateUserRequest struct {
	Username    string
	DisplayName string
	Password    string
	Permissions domain.Permissions
}

// UpdateUserRequest изменение пользователя. Пустой пароль не меняется.
type UpdateUserRequest struct {
	Username    string
	DisplayName string
	Password    string
	Permissions domain.Permissions
}

// UserView пользователь без хеша пароля
type UserView struct {
	Username    string
	DisplayName string
	Permissions domain.Permissions
}

// Result результат изменения
type Result struct {
	Warning string // непустое, если состояние не удалось сохранить в хранилище
}

func toUserView(u domain.User) UserView {
	return UserView{Username: u.Username, DisplayName: u.DisplayName, Permissions: u.Permissions}
}
