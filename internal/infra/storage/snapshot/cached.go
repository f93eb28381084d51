package snapshot

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
)

// CachedRepository держит текущий снапшот в памяти и пишет сквозь в хранилище.
// Мьютекс защищает только указатель: конкурирующие load → compute → save
// не сериализуются.
type CachedRepository struct {
	backend  Repository
	log      Logger
	failures FailureCounter

	mu      sync.RWMutex
	current *domain.Snapshot
}

// NewCachedRepository создает кэш поверх backend. failures может быть nil.
func NewCachedRepository(backend Repository, log Logger, failures FailureCounter) *CachedRepository {
	return &CachedRepository{backend: backend, log: log, failures: failures}
}

// Load возвращает снапшот из памяти, при первом обращении читает хранилище
func (r *CachedRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	r.mu.RLock()
	current := r.current
	r.mu.RUnlock()
	if current != nil {
		return current, nil
	}

	snap, err := r.backend.Load(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if r.current == nil {
		r.current = snap
	}
	current = r.current
	r.mu.Unlock()
	return current, nil
}

// Save заменяет снапшот в памяти и сохраняет его. При ошибке хранилища
// состояние в памяти остаётся новым, возвращается ErrPersistFailed.
func (r *CachedRepository) Save(ctx context.Context, snap *domain.Snapshot) error {
	r.mu.Lock()
	r.current = snap
	r.mu.Unlock()

	if err := r.backend.Save(ctx, snap); err != nil {
		if r.failures != nil {
			r.failures.Inc()
		}
		r.log.Error("Failed to persist snapshot: %v", err)
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return nil
}
