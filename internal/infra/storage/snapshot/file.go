package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
)

// FileRepository хранит снапшот в JSON файле
type FileRepository struct {
	path string
	log  Logger
}

// NewFileRepository создает репозиторий поверх файла path
func NewFileRepository(path string, log Logger) *FileRepository {
	return &FileRepository{path: path, log: log}
}

// Load читает файл; отсутствующий файл даёт встроенный набор данных
func (r *FileRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		r.log.Info("Snapshot file %s not found, using embedded seed", r.path)
		return Seed(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Load - read %s: %v", ErrRead, r.path, err)
	}

	return decodeOrSeed(data, r.path, r.log)
}

// Save пишет снапшот во временный файл и атомарно переименовывает его
func (r *FileRepository) Save(ctx context.Context, snap *domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(snap)
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: Save - create dir %s: %v", ErrWrite, dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("%w: Save - create temp file: %v", ErrWrite, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: Save - write temp file: %v", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: Save - close temp file: %v", ErrWrite, err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: Save - rename %s: %v", ErrWrite, r.path, err)
	}
	return nil
}
