package state

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/integrations/notifier"
	"github.com/m04kA/SMC-FieldScheduler/pkg/logger"
)

type memRepo struct {
	snap    *domain.Snapshot
	saves   int
	loadErr error
	saveErr error
}

func (r *memRepo) Load(context.Context) (*domain.Snapshot, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.snap, nil
}

func (r *memRepo) Save(_ context.Context, snap *domain.Snapshot) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.snap = snap
	return nil
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type fakeNotifier struct{ events []notifier.BookingEvent }

func (n *fakeNotifier) BookingChanged(_ context.Context, e notifier.BookingEvent) error {
	n.events = append(n.events, e)
	return nil
}

type fakeRecorder struct{ expired int }

func (r *fakeRecorder) ProvisionalExpired(n int) { r.expired += n }

var base = time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

func provisional(id string, created time.Time) domain.Booking {
	return domain.Booking{
		ID: id, ClientName: "c" + id, City: "X", Date: "2025-03-11",
		Period: domain.PeriodMorning, TechnicianID: "A",
		Status: domain.StatusConfirmed, ExecutionStatus: domain.ExecutionPending,
		Kind: domain.KindProvisional, CreatedAt: created.Format(domain.TimestampFormat),
	}
}

func newService(repo *memRepo, now time.Time) (*Service, *fakeNotifier, *fakeRecorder) {
	n := &fakeNotifier{}
	rec := &fakeRecorder{}
	svc := NewService(repo, n, rec, "system", logger.Nop()).WithTimeProvider(&fakeClock{now: now})
	return svc, n, rec
}

func TestCurrent_NoChanges(t *testing.T) {
	snap := domain.NewSnapshot()
	snap.Bookings = []domain.Booking{provisional("1", base)}
	repo := &memRepo{snap: snap}
	svc, n, _ := newService(repo, base.Add(29*time.Minute))

	got, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Same(t, snap, got)
	assert.Equal(t, 0, repo.saves)
	assert.Empty(t, n.events)
}

func TestCurrent_ExpiresAndPersists(t *testing.T) {
	snap := domain.NewSnapshot()
	snap.Bookings = []domain.Booking{provisional("1", base), provisional("2", base.Add(10*time.Minute))}
	repo := &memRepo{snap: snap}
	svc, n, rec := newService(repo, base.Add(31*time.Minute))

	got, err := svc.Current(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Bookings, 1)
	assert.Equal(t, "2", got.Bookings[0].ID)
	assert.Equal(t, 1, repo.saves)
	assert.Same(t, got, repo.snap)

	require.Len(t, n.events, 1)
	assert.Equal(t, notifier.EventExpired, n.events[0].Type)
	assert.Equal(t, "1", n.events[0].BookingID)
	assert.Equal(t, 1, rec.expired)

	require.Len(t, got.Logs, 1)
	assert.Equal(t, "system", got.Logs[0].User)
}

func TestCurrent_SaveFailureStillServesResult(t *testing.T) {
	snap := domain.NewSnapshot()
	snap.Bookings = []domain.Booking{provisional("1", base)}
	repo := &memRepo{snap: snap, saveErr: errors.New("disk full")}
	svc, _, _ := newService(repo, base.Add(time.Hour))

	got, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Bookings)
}

func TestCurrent_LoadError(t *testing.T) {
	repo := &memRepo{loadErr: errors.New("boom")}
	svc, _, _ := newService(repo, base)

	_, err := svc.Current(context.Background())
	assert.ErrorIs(t, err, ErrLoad)
}

func TestExpireNow(t *testing.T) {
	snap := domain.NewSnapshot()
	for i := 0; i < 3; i++ {
		snap.Bookings = append(snap.Bookings, provisional(fmt.Sprint(i), base))
	}
	repo := &memRepo{snap: snap}
	svc, _, _ := newService(repo, base.Add(31*time.Minute))

	n, err := svc.ExpireNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = svc.ExpireNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCommit(t *testing.T) {
	repo := &memRepo{snap: domain.NewSnapshot()}
	svc, _, _ := newService(repo, base)

	require.NoError(t, svc.Commit(context.Background(), domain.NewSnapshot()))

	repo.saveErr = fmt.Errorf("%w: disk full", ErrPersistFailed)
	assert.ErrorIs(t, svc.Commit(context.Background(), domain.NewSnapshot()), ErrPersistFailed)

	repo.saveErr = errors.New("no cache")
	err := svc.Commit(context.Background(), domain.NewSnapshot())
	assert.ErrorIs(t, err, ErrSave)
	assert.NotErrorIs(t, err, ErrPersistFailed)
}
