package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/analytics/models"
)

// Service сервис отчетов по бронированиям
type Service struct {
	state  StateService
	logger Logger
}

// NewService создает новый экземпляр сервиса аналитики
func NewService(state StateService, logger Logger) *Service {
	return &Service{
		state:  state,
		logger: logger,
	}
}

// Report строит отчет за диапазон дат включительно
func (s *Service) Report(ctx context.Context, req *models.ReportRequest) (*models.Report, error) {
	from, to, err := s.resolveRange(req)
	if err != nil {
		s.logger.Warn("Report: %v", err)
		return nil, err
	}

	snap, err := s.state.Current(ctx)
	if err != nil {
		s.logger.Error("Report: failed to load state: %v", err)
		return nil, fmt.Errorf("%w: Report - load state: %v", ErrInternal, err)
	}

	filter := domain.BookingsFilter{City: req.City, From: &from, To: &to}
	report := &models.Report{
		From:        domain.FormatDate(from),
		To:          domain.FormatDate(to),
		City:        req.City,
		ByStatus:    map[string]int{},
		ByExecution: map[string]int{},
		ByKind:      map[string]int{},
		ByCity:      map[string]int{},
		ByPeriod:    map[string]int{},
		Technicians: []models.TechnicianLoad{},
	}

	loads := make(map[string]*models.TechnicianLoad, len(snap.Technicians))
	for i := range snap.Technicians {
		tech := &snap.Technicians[i]
		if req.City != "" && !tech.ServesCity(req.City) {
			continue
		}
		loads[tech.ID] = &models.TechnicianLoad{
			TechnicianID:   tech.ID,
			TechnicianName: tech.Name,
			Capacity:       rangeCapacity(tech, from, to, snap.HolidaySet()),
		}
	}

	for i := range snap.Bookings {
		b := &snap.Bookings[i]
		if !filter.Matches(b) {
			continue
		}
		report.Total++
		report.ByStatus[string(b.Status)]++
		report.ByExecution[string(b.ExecutionStatus)]++
		report.ByKind[string(b.Kind)]++
		report.ByCity[b.City]++
		report.ByPeriod[string(b.Period)]++

		load, ok := loads[b.TechnicianID]
		if !ok || !b.ConsumesSlot() {
			continue
		}
		load.Bookings++
		switch b.ExecutionStatus {
		case domain.ExecutionCompleted:
			load.Completed++
		case domain.ExecutionUnfinished:
			load.Unfinished++
		}
	}

	for _, load := range loads {
		if load.Bookings > 0 {
			load.CompletionRate = float64(load.Completed) / float64(load.Bookings)
		}
		if load.Capacity > 0 {
			load.Utilisation = float64(load.Bookings) / float64(load.Capacity)
		}
		report.Technicians = append(report.Technicians, *load)
	}
	sort.SliceStable(report.Technicians, func(i, j int) bool {
		return report.Technicians[i].TechnicianID < report.Technicians[j].TechnicianID
	})
	report.Load = loadStats(report.Technicians)

	s.logger.Info("Report: %s..%s city=%q total=%d technicians=%d",
		report.From, report.To, req.City, report.Total, len(report.Technicians))
	return report, nil
}

func (s *Service) resolveRange(req *models.ReportRequest) (time.Time, time.Time, error) {
	to := dayOf(s.state.Now())
	if req.To != nil {
		to = dayOf(*req.To)
	}
	from := to.AddDate(0, 0, -models.DefaultRangeDays)
	if req.From != nil {
		from = dayOf(*req.From)
	}

	if to.Before(from) {
		return from, to, fmt.Errorf("%w: from %s is after to %s", ErrInvalidRange, domain.FormatDate(from), domain.FormatDate(to))
	}
	if to.After(from.AddDate(0, 0, models.MaxRangeDays-1)) {
		return from, to, fmt.Errorf("%w: range exceeds %d days", ErrInvalidRange, models.MaxRangeDays)
	}
	return from, to, nil
}

// rangeCapacity суммирует слоты техника за каждый день диапазона.
// В особые дни емкость общая на все периоды и учитывается один раз.
func rangeCapacity(tech *domain.Technician, from, to time.Time, holidays domain.HolidaySet) int {
	total := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		dayType := domain.ClassifyDay(day, holidays)
		if dayType.IsSpecial() {
			total += tech.DailyCapacity(dayType, domain.PeriodMorning)
			continue
		}
		for _, p := range domain.AllPeriods {
			total += tech.DailyCapacity(dayType, p)
		}
	}
	return total
}

func loadStats(loads []models.TechnicianLoad) models.LoadStats {
	if len(loads) == 0 {
		return models.LoadStats{}
	}

	values := make([]float64, len(loads))
	for i, l := range loads {
		values[i] = float64(l.Bookings)
	}

	result := models.LoadStats{
		Min: int(floats.Min(values)),
		Max: int(floats.Max(values)),
	}
	if len(values) == 1 {
		result.Mean = values[0]
		return result
	}
	result.Mean, result.StdDev = stat.MeanStdDev(values, nil)
	return result
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
