package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/pkg/psqlbuilder"
)

const (
	snapshotsTable = "snapshots"
	// снапшот один, хранится в строке с фиксированным id
	snapshotRowID = 1
)

// PostgresRepository хранит снапшот одной JSONB строкой
type PostgresRepository struct {
	db  DBExecutor
	log Logger
	now func() time.Time
}

// NewPostgresRepository создает новый экземпляр репозитория
func NewPostgresRepository(db DBExecutor, log Logger) *PostgresRepository {
	return &PostgresRepository{db: db, log: log, now: time.Now}
}

// Load читает снапшот; пустая таблица даёт встроенный набор данных
func (r *PostgresRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	query, args, err := psqlbuilder.Select("payload").
		From(snapshotsTable).
		Where(squirrel.Eq{"id": snapshotRowID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Load - build select query: %v", ErrBuildQuery, err)
	}

	var payload []byte
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		r.log.Info("Snapshot row not found, using embedded seed")
		return Seed(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Load - scan payload: %v", ErrScanRow, err)
	}

	return decodeOrSeed(payload, "row", r.log)
}

// Save перезаписывает строку снапшота (upsert)
func (r *PostgresRepository) Save(ctx context.Context, snap *domain.Snapshot) error {
	payload, err := Encode(snap)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Insert(snapshotsTable).
		Columns("id", "version", "payload", "updated_at").
		Values(snapshotRowID, snap.Version, string(payload), r.now().UTC()).
		Suffix("ON CONFLICT (id) DO UPDATE SET version = EXCLUDED.version, payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}
