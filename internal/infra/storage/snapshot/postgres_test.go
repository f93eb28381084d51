package snapshot

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/pkg/logger"
)

// Requires a disposable database, e.g.
// FS_TEST_POSTGRES_DSN="host=localhost user=postgres password=postgres dbname=fs_test sslmode=disable"
func TestPostgresRepository_RoundTrip(t *testing.T) {
	dsn := os.Getenv("FS_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("FS_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db, logger.Nop()))
	_, err = db.ExecContext(ctx, "DELETE FROM snapshots")
	require.NoError(t, err)

	repo := NewPostgresRepository(db, logger.Nop())

	seeded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Seed(), seeded)

	snap := domain.NewSnapshot()
	snap.Cities = []string{"Campinas"}
	require.NoError(t, repo.Save(ctx, snap))

	snap.Activities = []string{"Repair"}
	require.NoError(t, repo.Save(ctx, snap))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
}
