package scheduling

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
)

func lifecycleSnapshot() *domain.Snapshot {
	return newTestSnapshot(
		domain.Technician{ID: "A", Name: "Alice", Cities: []string{"Springfield"}, Capacity: domain.Capacity{Morning: 2, Afternoon: 1, Evening: 1, Saturday: 3}},
		domain.Technician{ID: "B", Name: "Bob", Cities: []string{"Springfield"}, Capacity: domain.Capacity{Morning: 1}},
	)
}

func createReq(client string, period domain.Period) CreateRequest {
	return CreateRequest{
		ClientName:   client,
		ClientPhone:  "555-0100",
		City:         "Springfield",
		Date:         monday,
		Period:       period,
		TechnicianID: "A",
		Activity:     "Installation",
		CreatedBy:    "admin",
	}
}

func TestCreateBooking(t *testing.T) {
	snap := lifecycleSnapshot()
	now := clockAt(monday, 9)

	next, b, err := CreateBooking(snap, createReq("Jane Doe", domain.PeriodMorning), now)
	require.NoError(t, err)
	require.NotNil(t, b)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "Alice", b.TechnicianName)
	assert.Equal(t, "2025-03-10", b.Date)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Equal(t, domain.ExecutionPending, b.ExecutionStatus)
	assert.Equal(t, domain.KindStandard, b.Kind)
	assert.Equal(t, now.Format(domain.TimestampFormat), b.CreatedAt)

	assert.Len(t, next.Bookings, 1)
	assert.Empty(t, snap.Bookings, "input snapshot must stay untouched")
	require.Len(t, next.Logs, 1)
	assert.Equal(t, ActionBookingCreate, next.Logs[0].Action)
	assert.Equal(t, "admin", next.Logs[0].User)
}

func TestCreateBooking_EveningIsClosed(t *testing.T) {
	next, b, err := CreateBooking(lifecycleSnapshot(), createReq("Jane", domain.PeriodEvening), clockAt(monday, 9))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClosed, b.Status)
	assert.Equal(t, domain.ExecutionPending, b.ExecutionStatus)

	// closed evening bookings leave the evening pool untouched
	assert.Len(t, AvailableTechnicians(next, "Springfield", monday, domain.PeriodEvening), 1)
}

func TestCreateBooking_Validation(t *testing.T) {
	snap := lifecycleSnapshot()
	now := clockAt(monday, 9)

	tests := []struct {
		name   string
		mutate func(r *CreateRequest)
		want   error
	}{
		{"no technician", func(r *CreateRequest) { r.TechnicianID = "  " }, ErrTechnicianRequired},
		{"unknown technician", func(r *CreateRequest) { r.TechnicianID = "Z" }, ErrTechnicianNotFound},
		{"no date", func(r *CreateRequest) { r.Date = time.Time{} }, ErrInvalidDate},
		{"bad period", func(r *CreateRequest) { r.Period = "night" }, ErrInvalidPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createReq("Jane", domain.PeriodMorning)
			tt.mutate(&req)
			next, b, err := CreateBooking(snap, req, now)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, b)
			assert.Same(t, snap, next)
		})
	}
}

func TestCreateBooking_Duplicate(t *testing.T) {
	now := clockAt(monday, 9)
	snap, _, err := CreateBooking(lifecycleSnapshot(), createReq("Jane Doe", domain.PeriodMorning), now)
	require.NoError(t, err)

	req := createReq("  jane doe ", domain.PeriodAfternoon)
	req.TechnicianID = "B"
	next, b, err := CreateBooking(snap, req, now)
	assert.ErrorIs(t, err, ErrDuplicateBooking)
	assert.Nil(t, b)
	assert.Len(t, next.Bookings, 1)
}

// CreateBooking trusts the caller's availability check. Two requests that
// resolved availability against the same snapshot can both commit and
// oversell the last slot; nothing here serialises them.
func TestCreateBooking_StaleSnapshotOversells(t *testing.T) {
	snap := lifecycleSnapshot()
	now := clockAt(monday, 9)

	req1 := createReq("Client One", domain.PeriodAfternoon)
	req2 := createReq("Client Two", domain.PeriodAfternoon)

	// both callers see one remaining afternoon slot for A
	require.Len(t, AvailableTechnicians(snap, "Springfield", monday, domain.PeriodAfternoon), 1)

	first, _, err := CreateBooking(snap, req1, now)
	require.NoError(t, err)

	// second caller commits on top of the first result without re-checking
	second, _, err := CreateBooking(first, req2, now)
	require.NoError(t, err)

	slots, ok := TechnicianAvailability(second, "A", monday, domain.PeriodAfternoon)
	require.True(t, ok)
	assert.Equal(t, 1, slots.Capacity)
	assert.Equal(t, 2, slots.Used)
	assert.Equal(t, 0, slots.Remaining)
}

func TestCreateBooking_SaturdayFourthRequestFindsNoSlot(t *testing.T) {
	snap := lifecycleSnapshot()
	now := clockAt(monday, 9)

	periods := []domain.Period{domain.PeriodMorning, domain.PeriodAfternoon, domain.PeriodMorning}
	for i, p := range periods {
		req := createReq(fmt.Sprintf("client %d", i), p)
		req.Date = saturday
		var err error
		snap, _, err = CreateBooking(snap, req, now)
		require.NoError(t, err)
	}

	for _, p := range domain.AllPeriods {
		for _, slots := range AvailableTechnicians(snap, "Springfield", saturday, p) {
			assert.NotEqual(t, "A", slots.Technician.ID)
		}
	}
	slots, _ := TechnicianAvailability(snap, "A", saturday, domain.PeriodAfternoon)
	assert.Equal(t, 0, slots.Remaining)
}

func TestCheckDuplicate_Lifecycle(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	snap := lifecycleSnapshot()
	now := clockAt(monday, 9)

	assert.False(t, CheckDuplicate(snap, "Jane Doe", "Springfield", date))

	req := createReq(" JANE DOE", domain.PeriodMorning)
	req.City = "springfield "
	snap, b, err := CreateBooking(snap, req, now)
	require.NoError(t, err)

	assert.True(t, CheckDuplicate(snap, "Jane Doe", "Springfield", date))
	assert.False(t, CheckDuplicate(snap, "Jane Doe", "Springfield", date.AddDate(0, 0, 1)))
	assert.False(t, CheckDuplicate(snap, "Jane Doe", "Shelbyville", date))

	snap, ok := RemoveBooking(snap, b.ID, "admin", now)
	require.True(t, ok)
	assert.False(t, CheckDuplicate(snap, "Jane Doe", "Springfield", date))
}

func TestConfirmProvisional_Idempotent(t *testing.T) {
	now := clockAt(monday, 9)
	req := createReq("Jane", domain.PeriodMorning)
	req.Kind = domain.KindProvisional
	snap, b, err := CreateBooking(lifecycleSnapshot(), req, now)
	require.NoError(t, err)
	require.Equal(t, domain.KindProvisional, b.Kind)

	first, ok := ConfirmProvisional(snap, b.ID, "admin", now)
	require.True(t, ok)
	idx := first.FindBooking(b.ID)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, domain.KindStandard, first.Bookings[idx].Kind)
	assert.Equal(t, b.Date, first.Bookings[idx].Date)
	assert.Equal(t, b.Period, first.Bookings[idx].Period)
	assert.Equal(t, b.TechnicianID, first.Bookings[idx].TechnicianID)

	second, ok := ConfirmProvisional(first, b.ID, "admin", now)
	require.True(t, ok)
	assert.Equal(t, domain.KindStandard, second.Bookings[idx].Kind)
	assert.Len(t, second.Logs, len(first.Logs), "repeated confirm adds no audit entry")

	_, ok = ConfirmProvisional(second, "missing", "admin", now)
	assert.False(t, ok)
}

func TestExpireProvisionals(t *testing.T) {
	created := clockAt(monday, 9)
	req := createReq("Jane", domain.PeriodMorning)
	req.Kind = domain.KindProvisional
	snap, b, err := CreateBooking(lifecycleSnapshot(), req, created)
	require.NoError(t, err)

	standardReq := createReq("John", domain.PeriodAfternoon)
	snap, _, err = CreateBooking(snap, standardReq, created)
	require.NoError(t, err)

	fresh := ExpireProvisionals(snap, "system", created.Add(29*time.Minute))
	assert.Empty(t, fresh.Expired)
	assert.False(t, fresh.Changed())
	assert.GreaterOrEqual(t, fresh.Snapshot.FindBooking(b.ID), 0)

	stale := ExpireProvisionals(snap, "system", created.Add(31*time.Minute))
	require.Len(t, stale.Expired, 1)
	assert.Equal(t, b.ID, stale.Expired[0].ID)
	assert.Equal(t, -1, stale.Snapshot.FindBooking(b.ID))
	assert.Len(t, stale.Snapshot.Bookings, 1, "standard bookings never expire")
	assert.Equal(t, ActionBookingExpire, stale.Snapshot.Logs[0].Action)
	assert.Contains(t, stale.Snapshot.Logs[0].Details, "1")
	assert.Len(t, snap.Bookings, 2, "input snapshot must stay untouched")
}

func TestExpireProvisionals_RepairsMissingTimestamp(t *testing.T) {
	now := clockAt(monday, 12)
	snap := lifecycleSnapshot()
	b1 := booking("1", "A", monday, domain.PeriodMorning, domain.StatusConfirmed)
	b1.Kind = domain.KindProvisional
	b1.CreatedAt = ""
	b2 := booking("2", "A", monday, domain.PeriodMorning, domain.StatusConfirmed)
	b2.Kind = domain.KindProvisional
	b2.CreatedAt = "not a timestamp"
	snap.Bookings = []domain.Booking{b1, b2}

	res := ExpireProvisionals(snap, "system", now)
	assert.Empty(t, res.Expired)
	assert.Equal(t, 2, res.Repaired)
	assert.True(t, res.Changed())
	for _, b := range res.Snapshot.Bookings {
		assert.Equal(t, now.Format(domain.TimestampFormat), b.CreatedAt)
	}
	assert.Empty(t, res.Snapshot.Logs)

	// repaired bookings expire 30 minutes after the repair
	later := ExpireProvisionals(res.Snapshot, "system", now.Add(31*time.Minute))
	assert.Len(t, later.Expired, 2)
}

func TestReschedule(t *testing.T) {
	now := clockAt(monday, 9)
	snap, b, err := CreateBooking(lifecycleSnapshot(), createReq("Jane", domain.PeriodMorning), now)
	require.NoError(t, err)

	snap, _, err = UpdateExecution(snap, b.ID, domain.ExecutionUnfinished, "client absent", "tech", now)
	require.NoError(t, err)

	tuesday := monday.AddDate(0, 0, 1)
	next, moved, err := Reschedule(snap, RescheduleRequest{
		BookingID:    b.ID,
		Date:         tuesday,
		Period:       domain.PeriodMorning,
		TechnicianID: "B",
		Reason:       "client request",
	}, "admin", now)
	require.NoError(t, err)

	assert.Equal(t, b.ID, moved.ID)
	assert.Equal(t, "2025-03-11", moved.Date)
	assert.Equal(t, "B", moved.TechnicianID)
	assert.Equal(t, "Bob", moved.TechnicianName)
	assert.Equal(t, domain.ExecutionPending, moved.ExecutionStatus)
	assert.Empty(t, moved.NonConclusionReason)
	assert.Contains(t, moved.Notes, "client request")
	assert.Contains(t, moved.Notes, "2025-03-10 morning (Alice) -> 2025-03-11 morning (Bob)")

	// old slot is free again, new one is taken
	old, _ := TechnicianAvailability(next, "A", monday, domain.PeriodMorning)
	assert.Equal(t, 2, old.Remaining)
	avail := AvailableTechnicians(next, "Springfield", tuesday, domain.PeriodMorning)
	require.Len(t, avail, 1)
	assert.Equal(t, "A", avail[0].Technician.ID)
	newSlot, _ := TechnicianAvailability(next, "B", tuesday, domain.PeriodMorning)
	assert.Equal(t, 0, newSlot.Remaining)
}

func TestReschedule_StatusFollowsTargetPeriod(t *testing.T) {
	now := clockAt(monday, 9)
	snap, b, err := CreateBooking(lifecycleSnapshot(), createReq("Jane", domain.PeriodEvening), now)
	require.NoError(t, err)
	require.Equal(t, domain.StatusClosed, b.Status)

	toMorning, moved, err := Reschedule(snap, RescheduleRequest{
		BookingID: b.ID, Date: monday, Period: domain.PeriodMorning, TechnicianID: "A", Reason: "earlier",
	}, "admin", now)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, moved.Status)

	morning, _ := TechnicianAvailability(toMorning, "A", monday, domain.PeriodMorning)
	assert.Equal(t, 1, morning.Used)
	assert.Equal(t, 1, morning.Remaining)

	// B has a single morning slot: moving there fills it
	toBob, _, err := Reschedule(snap, RescheduleRequest{
		BookingID: b.ID, Date: monday, Period: domain.PeriodMorning, TechnicianID: "B", Reason: "swap",
	}, "admin", now)
	require.NoError(t, err)
	avail := AvailableTechnicians(toBob, "Springfield", monday, domain.PeriodMorning)
	require.Len(t, avail, 1)
	assert.Equal(t, "A", avail[0].Technician.ID)

	toEvening, back, err := Reschedule(toMorning, RescheduleRequest{
		BookingID: b.ID, Date: monday, Period: domain.PeriodEvening, TechnicianID: "A", Reason: "later",
	}, "admin", now)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClosed, back.Status)

	morning, _ = TechnicianAvailability(toEvening, "A", monday, domain.PeriodMorning)
	assert.Equal(t, 2, morning.Remaining)
	evening, _ := TechnicianAvailability(toEvening, "A", monday, domain.PeriodEvening)
	assert.Equal(t, 0, evening.Used)
	assert.Equal(t, 1, evening.Remaining)
}

func TestReschedule_KeepsPendingStatus(t *testing.T) {
	now := clockAt(monday, 9)
	snap, b, err := CreateBooking(lifecycleSnapshot(), createReq("Jane", domain.PeriodMorning), now)
	require.NoError(t, err)
	snap.Bookings[snap.FindBooking(b.ID)].Status = domain.StatusPending

	_, moved, err := Reschedule(snap, RescheduleRequest{
		BookingID: b.ID, Date: monday, Period: domain.PeriodEvening, TechnicianID: "A", Reason: "later",
	}, "admin", now)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, moved.Status)
}

func TestReschedule_Validation(t *testing.T) {
	now := clockAt(monday, 9)
	snap, b, err := CreateBooking(lifecycleSnapshot(), createReq("Jane", domain.PeriodMorning), now)
	require.NoError(t, err)

	base := RescheduleRequest{BookingID: b.ID, Date: monday, Period: domain.PeriodAfternoon, TechnicianID: "A", Reason: "why"}

	tests := []struct {
		name   string
		mutate func(r *RescheduleRequest)
		want   error
	}{
		{"no technician", func(r *RescheduleRequest) { r.TechnicianID = "" }, ErrTechnicianRequired},
		{"no reason", func(r *RescheduleRequest) { r.Reason = "   " }, ErrReasonRequired},
		{"unknown booking", func(r *RescheduleRequest) { r.BookingID = "nope" }, ErrBookingNotFound},
		{"unknown technician", func(r *RescheduleRequest) { r.TechnicianID = "Z" }, ErrTechnicianNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			next, _, err := Reschedule(snap, req, "admin", now)
			assert.ErrorIs(t, err, tt.want)
			assert.Same(t, snap, next)
		})
	}
}

func TestRemoveBooking(t *testing.T) {
	now := clockAt(monday, 9)
	snap, b, err := CreateBooking(lifecycleSnapshot(), createReq("Jane", domain.PeriodMorning), now)
	require.NoError(t, err)

	next, ok := RemoveBooking(snap, b.ID, "admin", now)
	require.True(t, ok)
	assert.Empty(t, next.Bookings)
	assert.Equal(t, ActionBookingRemove, next.Logs[0].Action)

	_, ok = RemoveBooking(next, b.ID, "admin", now)
	assert.False(t, ok)
}

func TestUpdateExecution(t *testing.T) {
	now := clockAt(monday, 9)
	snap, b, err := CreateBooking(lifecycleSnapshot(), createReq("Jane", domain.PeriodMorning), now)
	require.NoError(t, err)

	_, _, err = UpdateExecution(snap, b.ID, domain.ExecutionUnfinished, " ", "tech", now)
	assert.ErrorIs(t, err, ErrReasonRequired)

	_, _, err = UpdateExecution(snap, b.ID, "bogus", "", "tech", now)
	assert.ErrorIs(t, err, ErrInvalidExecutionStatus)

	next, updated, err := UpdateExecution(snap, b.ID, domain.ExecutionUnfinished, "no parts", "tech", now)
	require.NoError(t, err)
	assert.Equal(t, "no parts", updated.NonConclusionReason)

	next, updated, err = UpdateExecution(next, b.ID, domain.ExecutionCompleted, "ignored", "tech", now)
	require.NoError(t, err)
	assert.Equal(t, domain.ExecutionCompleted, updated.ExecutionStatus)
	assert.Empty(t, updated.NonConclusionReason)

	_, _, err = UpdateExecution(next, "missing", domain.ExecutionCompleted, "", "tech", now)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
