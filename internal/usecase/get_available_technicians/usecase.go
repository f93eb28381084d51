package get_available_technicians

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/scheduling"
)

// UseCase use case для получения техников со свободными слотами
type UseCase struct {
	state        StateService
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(state StateService, logger Logger) *UseCase {
	return &UseCase{
		state:        state,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableTechnicians: city=%s, date=%s, period=%s",
		req.City, req.Date.Format(domain.DateFormat), req.Period)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableTechnicians: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Актуальный снапшот (с очисткой просроченных предварительных бронирований)
	snap, err := uc.state.Current(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableTechnicians: failed to load state: %v", err)
		return nil, fmt.Errorf("%w: failed to load state: %v", ErrInternal, err)
	}

	// 3. Расчёт свободных слотов
	slots := scheduling.AvailableTechnicians(snap, req.City, req.Date, req.Period)

	technicians := make([]Technician, 0, len(slots))
	for _, s := range slots {
		technicians = append(technicians, Technician{
			ID:        s.Technician.ID,
			Name:      s.Technician.Name,
			Capacity:  s.Capacity,
			Used:      s.Used,
			Remaining: s.Remaining,
			Occupancy: s.OccupancyRate(),
		})
	}

	uc.logger.Info("GetAvailableTechnicians: %d technician(s) available", len(technicians))

	return &Response{
		City:        req.City,
		Date:        req.Date,
		Period:      req.Period,
		DayType:     domain.ClassifyDay(req.Date, snap.HolidaySet()),
		Bookable:    isBookable(req.Date, req.Period, now),
		Technicians: technicians,
	}, nil
}

func isBookable(date time.Time, period domain.Period, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return false
	}
	return slices.Contains(domain.BookablePeriods(date, now), period)
}
