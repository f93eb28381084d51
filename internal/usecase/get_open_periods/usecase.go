package get_open_periods

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/scheduling"
)

// UseCase use case для получения периодов, доступных для бронирования
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

// Execute выполняет use case.
// Прошедшие даты не имеют открытых периодов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetOpenPeriods: city=%s, date=%s", req.City, req.Date.Format(domain.DateFormat))

	if strings.TrimSpace(req.City) == "" {
		return nil, fmt.Errorf("%w: city is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	snap, err := uc.state.Current(ctx)
	if err != nil {
		uc.logger.Error("GetOpenPeriods: failed to load state: %v", err)
		return nil, fmt.Errorf("%w: failed to load state: %v", ErrInternal, err)
	}

	periods := []domain.Period{}
	if !isPast(req.Date, now) {
		periods = scheduling.OpenPeriods(snap, req.City, req.Date, now)
	}

	uc.logger.Info("GetOpenPeriods: %d open period(s)", len(periods))

	return &Response{
		City:    req.City,
		Date:    req.Date,
		DayType: domain.ClassifyDay(req.Date, snap.HolidaySet()),
		Periods: periods,
	}, nil
}

func isPast(date, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return date.Before(today)
}
