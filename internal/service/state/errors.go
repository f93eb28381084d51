package state

import (
	"errors"

	"github.com/m04kA/SMC-FieldScheduler/internal/infra/storage/snapshot"
)

var (
	// ErrLoad возвращается, когда снапшот не удалось загрузить
	ErrLoad = errors.New("state: failed to load snapshot")

	// ErrSave возвращается, когда снапшот не удалось сохранить и в памяти его нет
	ErrSave = errors.New("state: failed to save snapshot")

	// ErrPersistFailed состояние принято в памяти, но не записано в хранилище.
	// Вызывающий возвращает результат с предупреждением.
	ErrPersistFailed = snapshot.ErrPersistFailed
)

// PersistWarning текст предупреждения для ответа клиенту
const PersistWarning = "changes are kept in memory but could not be saved to storage"
