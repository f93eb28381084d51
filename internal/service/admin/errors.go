package admin

import "errors"

var (
	// ErrTechnicianNotFound возвращается, когда техник не найден
	ErrTechnicianNotFound = errors.New("admin: technician not found")

	// ErrTechnicianHasBookings возвращается при удалении техника с будущими бронированиями
	ErrTechnicianHasBookings = errors.New("admin: technician has upcoming bookings")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("admin: user not found")

	// ErrUserExists возвращается при создании пользователя с занятым именем
	ErrUserExists = errors.New("admin: user already exists")

	// ErrLastAdmin возвращается при попытке удалить последнего администратора пользователей
	ErrLastAdmin = errors.New("admin: cannot remove the last user manager")

	// ErrInvalidCredentials возвращается при неверном имени пользователя или пароле
	ErrInvalidCredentials = errors.New("admin: invalid credentials")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("admin: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("admin: internal error")
)
