package analytics

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/analytics/models"
	"github.com/m04kA/SMC-FieldScheduler/pkg/logger"
	"github.com/m04kA/SMC-FieldScheduler/pkg/ptr"
)

type fakeState struct {
	snap *domain.Snapshot
	now  time.Time
}

func (f *fakeState) Current(context.Context) (*domain.Snapshot, error) { return f.snap, nil }
func (f *fakeState) Now() time.Time                                     { return f.now }

func day(s string) time.Time {
	t, _ := domain.ParseDate(s)
	return t
}

func booking(id, tech, city, date string, period domain.Period, status domain.BookingStatus, exec domain.ExecutionStatus) domain.Booking {
	return domain.Booking{
		ID: id, TechnicianID: tech, City: city, Date: date, Period: period,
		Status: status, ExecutionStatus: exec, Kind: domain.KindStandard,
	}
}

func newService() *Service {
	snap := domain.NewSnapshot()
	snap.Technicians = []domain.Technician{
		{ID: "A", Name: "Alice", Cities: []string{"Campinas"}, Capacity: domain.Capacity{Morning: 1, Afternoon: 1, Saturday: 2}},
		{ID: "B", Name: "Bruno", Cities: []string{"Campinas", "Sumare"}, Capacity: domain.Capacity{Morning: 2}},
		{ID: "C", Name: "Caio", Cities: []string{"Sumare"}, Capacity: domain.Capacity{Morning: 1}},
	}
	// 2025-03-10 segunda, 2025-03-15 sabado
	snap.Bookings = []domain.Booking{
		booking("1", "A", "Campinas", "2025-03-10", domain.PeriodMorning, domain.StatusConfirmed, domain.ExecutionCompleted),
		booking("2", "A", "Campinas", "2025-03-15", domain.PeriodAfternoon, domain.StatusConfirmed, domain.ExecutionUnfinished),
		booking("3", "A", "Campinas", "2025-03-11", domain.PeriodEvening, domain.StatusClosed, domain.ExecutionPending),
		booking("4", "C", "Sumare", "2025-03-12", domain.PeriodMorning, domain.StatusPending, domain.ExecutionCompleted),
		booking("5", "B", "Campinas", "2025-04-20", domain.PeriodMorning, domain.StatusConfirmed, domain.ExecutionPending),
	}
	st := &fakeState{snap: snap, now: day("2025-03-20").Add(10 * time.Hour)}
	return NewService(st, logger.Nop())
}

func TestReport_Counts(t *testing.T) {
	svc := newService()

	report, err := svc.Report(context.Background(), &models.ReportRequest{
		From: ptr.Ptr(day("2025-03-10")),
		To:   ptr.Ptr(day("2025-03-16")),
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", report.From)
	assert.Equal(t, "2025-03-16", report.To)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.ByStatus[string(domain.StatusConfirmed)])
	assert.Equal(t, 1, report.ByStatus[string(domain.StatusClosed)])
	assert.Equal(t, 2, report.ByExecution[string(domain.ExecutionCompleted)])
	assert.Equal(t, 3, report.ByCity["Campinas"])
	assert.Equal(t, 1, report.ByPeriod[string(domain.PeriodEvening)])
	assert.Equal(t, 4, report.ByKind[string(domain.KindStandard)])
}

func TestReport_TechnicianLoad(t *testing.T) {
	svc := newService()

	report, err := svc.Report(context.Background(), &models.ReportRequest{
		From: ptr.Ptr(day("2025-03-10")),
		To:   ptr.Ptr(day("2025-03-16")),
	})
	require.NoError(t, err)
	require.Len(t, report.Technicians, 3)

	a := report.Technicians[0]
	assert.Equal(t, "A", a.TechnicianID)
	// закрытое бронирование слот не занимает
	assert.Equal(t, 2, a.Bookings)
	assert.Equal(t, 1, a.Completed)
	assert.Equal(t, 1, a.Unfinished)
	assert.InDelta(t, 0.5, a.CompletionRate, 1e-9)
	// 5 будних дней по 2 слота и суббота с пулом 2
	assert.Equal(t, 12, a.Capacity)
	assert.InDelta(t, 2.0/12.0, a.Utilisation, 1e-9)

	b := report.Technicians[1]
	assert.Equal(t, 0, b.Bookings)
	assert.Zero(t, b.CompletionRate)
	assert.Equal(t, 10, b.Capacity)

	// нагрузка 2, 0, 1
	assert.InDelta(t, 1.0, report.Load.Mean, 1e-9)
	assert.InDelta(t, 1.0, report.Load.StdDev, 1e-9)
	assert.Equal(t, 0, report.Load.Min)
	assert.Equal(t, 2, report.Load.Max)
}

func TestReport_CityFilter(t *testing.T) {
	svc := newService()

	report, err := svc.Report(context.Background(), &models.ReportRequest{
		From: ptr.Ptr(day("2025-03-01")),
		To:   ptr.Ptr(day("2025-03-31")),
		City: "sumare",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Total)
	require.Len(t, report.Technicians, 2)
	assert.Equal(t, "B", report.Technicians[0].TechnicianID)
	assert.Equal(t, "C", report.Technicians[1].TechnicianID)
}

func TestReport_DefaultRange(t *testing.T) {
	svc := newService()

	report, err := svc.Report(context.Background(), &models.ReportRequest{})
	require.NoError(t, err)

	assert.Equal(t, "2025-02-18", report.From)
	assert.Equal(t, "2025-03-20", report.To)
	assert.Equal(t, 4, report.Total)
}

func TestReport_NoTechnicians(t *testing.T) {
	svc := newService()

	report, err := svc.Report(context.Background(), &models.ReportRequest{City: "nowhere"})
	require.NoError(t, err)
	assert.Empty(t, report.Technicians)
	assert.False(t, math.IsNaN(report.Load.StdDev))
}

func TestReport_InvalidRange(t *testing.T) {
	svc := newService()

	_, err := svc.Report(context.Background(), &models.ReportRequest{
		From: ptr.Ptr(day("2025-03-10")),
		To:   ptr.Ptr(day("2025-03-01")),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.Report(context.Background(), &models.ReportRequest{
		From: ptr.Ptr(day("2024-01-01")),
		To:   ptr.Ptr(day("2025-03-01")),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestLoadStats_Single(t *testing.T) {
	stats := loadStats([]models.TechnicianLoad{{Bookings: 3}})
	assert.Equal(t, 3.0, stats.Mean)
	assert.Zero(t, stats.StdDev)
	assert.Equal(t, 3, stats.Min)
	assert.Equal(t, 3, stats.Max)
}
