package get_available_technicians

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/pkg/logger"
)

type fakeState struct {
	snap *domain.Snapshot
	err  error
}

func (f *fakeState) Current(context.Context) (*domain.Snapshot, error) { return f.snap, f.err }

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

// 2025-03-10 is a Monday
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

func testSnapshot() *domain.Snapshot {
	snap := domain.NewSnapshot()
	snap.Technicians = []domain.Technician{
		{ID: "b", Name: "Bea", Cities: []string{"Campinas"}, Capacity: domain.Capacity{Morning: 1, Saturday: 2}},
		{ID: "a", Name: "Al", Cities: []string{"Campinas"}, Capacity: domain.Capacity{Morning: 2}},
	}
	snap.Bookings = []domain.Booking{{
		ID: "1", ClientName: "x", City: "Campinas", Date: "2025-03-10", Period: domain.PeriodMorning,
		TechnicianID: "b", Status: domain.StatusConfirmed, Kind: domain.KindStandard,
	}}
	return snap
}

func newUseCase(state StateService, now time.Time) *UseCase {
	return NewUseCase(state, logger.Nop()).WithTimeProvider(&fakeClock{now: now})
}

func TestExecute(t *testing.T) {
	uc := newUseCase(&fakeState{snap: testSnapshot()}, monday.Add(8*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{City: " campinas ", Date: monday, Period: domain.PeriodMorning})
	require.NoError(t, err)

	require.Len(t, resp.Technicians, 1)
	assert.Equal(t, "a", resp.Technicians[0].ID)
	assert.Equal(t, 2, resp.Technicians[0].Remaining)
	assert.Equal(t, domain.DayWeekday, resp.DayType)
	assert.True(t, resp.Bookable)
}

func TestExecute_NotBookableAfterCutoff(t *testing.T) {
	uc := newUseCase(&fakeState{snap: testSnapshot()}, monday.Add(11*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{City: "Campinas", Date: monday, Period: domain.PeriodMorning})
	require.NoError(t, err)
	assert.False(t, resp.Bookable)
	// availability itself ignores the cutoff
	assert.Len(t, resp.Technicians, 1)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newUseCase(&fakeState{snap: testSnapshot()}, monday.AddDate(0, 0, 2))

	resp, err := uc.Execute(context.Background(), &Request{City: "Campinas", Date: monday, Period: domain.PeriodAfternoon})
	require.NoError(t, err)
	assert.False(t, resp.Bookable)
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(&fakeState{snap: testSnapshot()}, monday)

	tests := []*Request{
		{City: "", Date: monday, Period: domain.PeriodMorning},
		{City: "Campinas", Period: domain.PeriodMorning},
		{City: "Campinas", Date: monday, Period: "night"},
	}
	for _, req := range tests {
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestExecute_StateError(t *testing.T) {
	uc := newUseCase(&fakeState{err: errors.New("boom")}, monday)

	_, err := uc.Execute(context.Background(), &Request{City: "Campinas", Date: monday, Period: domain.PeriodMorning})
	assert.ErrorIs(t, err, ErrInternal)
}
