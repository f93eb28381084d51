package remote

import "errors"

var (
	// ErrNotConfigured возвращается, когда адрес удаленного хранилища не задан
	ErrNotConfigured = errors.New("remote sync: remote endpoint is not configured")

	// ErrUnauthorized возвращается, когда удаленное хранилище отклонило токен
	ErrUnauthorized = errors.New("remote sync: remote store rejected the token")

	// ErrRemote возвращается при сетевых ошибках и ошибках удаленной стороны
	ErrRemote = errors.New("remote sync: remote store failure")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("remote sync: internal error")
)
