package remotesync

import "errors"

var (
	// ErrNotConfigured возвращается, когда адрес удалённого хранилища не задан
	ErrNotConfigured = errors.New("remotesync client: endpoint is not configured")

	// ErrUnauthorized возвращается на 401/403: токен отсутствует, истёк или не имеет прав
	ErrUnauthorized = errors.New("remotesync client: unauthorized")

	// ErrUnavailable возвращается при сетевых ошибках и неожиданных статусах
	ErrUnavailable = errors.New("remotesync client: remote store unavailable")

	// ErrInvalidResponse возвращается, когда тело ответа не удаётся разобрать
	ErrInvalidResponse = errors.New("remotesync client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("remotesync client: internal error")
)
