package snapshot

import "errors"

var (
	// ErrDecode возвращается, когда данные снапшота не удаётся разобрать
	ErrDecode = errors.New("snapshot.repository: failed to decode snapshot")

	// ErrEncode возвращается при ошибке сериализации снапшота
	ErrEncode = errors.New("snapshot.repository: failed to encode snapshot")

	// ErrRead возвращается при ошибке чтения файла
	ErrRead = errors.New("snapshot.repository: failed to read snapshot")

	// ErrWrite возвращается при ошибке записи файла
	ErrWrite = errors.New("snapshot.repository: failed to write snapshot")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("snapshot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("snapshot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("snapshot.repository: failed to scan row")

	// ErrMigrate возвращается при ошибке применения миграций
	ErrMigrate = errors.New("snapshot.repository: failed to apply migrations")

	// ErrPersistFailed возвращается кэширующим репозиторием: состояние в памяти
	// обновлено, но запись в хранилище не удалась
	ErrPersistFailed = errors.New("snapshot.repository: persist failed, state kept in memory")
)
