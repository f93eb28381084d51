package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/scheduling"
	"github.com/m04kA/SMC-FieldScheduler/pkg/logger"
)

func TestFileRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "snapshot.json")
	repo := NewFileRepository(path, logger.Nop())

	snap := domain.NewSnapshot()
	snap.Technicians = []domain.Technician{{
		ID: "t1", Name: "Bob", Cities: []string{"Campinas"},
		Capacity: domain.Capacity{Morning: 2, Saturday: 3},
	}}
	snap.Bookings = []domain.Booking{{
		ID: "b1", ClientName: "Jane", City: "Campinas", Date: "2025-03-10",
		Period: domain.PeriodMorning, TechnicianID: "t1", Status: domain.StatusConfirmed,
		ExecutionStatus: domain.ExecutionPending, Kind: domain.KindProvisional,
		CreatedAt: "2025-03-10T09:00:00Z",
	}}
	snap.Holidays = []string{"2025-12-25"}
	snap.APIToken = "token"

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < domain.MaxAuditEntries; i++ {
		snap.Logs = scheduling.AppendAudit(snap.Logs,
			scheduling.NewAuditEntry("admin", fmt.Sprintf("action-%d", i), "", now.Add(time.Duration(i)*time.Second)))
	}

	require.NoError(t, repo.Save(ctx, snap))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
	require.Len(t, loaded.Logs, domain.MaxAuditEntries)
	assert.Equal(t, fmt.Sprintf("action-%d", domain.MaxAuditEntries-1), loaded.Logs[0].Action)
	assert.Equal(t, "action-0", loaded.Logs[len(loaded.Logs)-1].Action)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileRepository_MissingFileUsesSeed(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "absent.json"), logger.Nop())

	snap, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Seed(), snap)
}

func TestFileRepository_CorruptFileUsesSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0o644))
	repo := NewFileRepository(path, logger.Nop())

	snap, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Seed(), snap)
}

func TestFileRepository_CancelledContext(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "s.json"), logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.Save(ctx, domain.NewSnapshot()), context.Canceled)
}
