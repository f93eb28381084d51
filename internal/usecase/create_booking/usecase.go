package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/integrations/notifier"
	"github.com/m04kA/SMC-FieldScheduler/internal/scheduling"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/state"
)

// UseCase use case для создания бронирования
type UseCase struct {
	state        StateService
	recorder     Recorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(state StateService, recorder Recorder, logger Logger) *UseCase {
	return &UseCase{
		state:        state,
		recorder:     recorder,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
// Загрузка, проверка и сохранение не атомарны: два запроса на последний
// слот могут пройти оба.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%q, city=%s, date=%s, period=%s, technician=%s, provisional=%t",
		req.ClientName, req.City, req.Date.Format(domain.DateFormat), req.Period, req.TechnicianID, req.Provisional)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем дату и окно бронирования
	if err := validateDate(req.Date, req.Period, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Актуальный снапшот
	snap, err := uc.state.Current(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to load state: %v", err)
		return nil, fmt.Errorf("%w: failed to load state: %v", ErrInternal, err)
	}

	// 5. Проверяем техника и свободные слоты
	tech := snap.FindTechnician(req.TechnicianID)
	if tech == nil {
		uc.logger.Warn("CreateBooking: technician id=%s not found", req.TechnicianID)
		return nil, ErrTechnicianNotFound
	}
	if !tech.ServesCity(req.City) {
		uc.logger.Warn("CreateBooking: technician id=%s does not serve city=%s", req.TechnicianID, req.City)
		return nil, ErrTechnicianNotInCity
	}

	slots, _ := scheduling.TechnicianAvailability(snap, tech.ID, req.Date, req.Period)
	if slots.IsFull() {
		uc.logger.Warn("CreateBooking: slot not available, %d/%d taken (%s)", slots.Used, slots.Capacity, slots.DayType)
		return nil, ErrSlotNotAvailable
	}
	uc.logger.Info("CreateBooking: slot available, %d/%d taken (%s)", slots.Used, slots.Capacity, slots.DayType)

	// 6. Создаём бронирование
	kind := domain.KindStandard
	if req.Provisional {
		kind = domain.KindProvisional
	}

	next, booking, err := scheduling.CreateBooking(snap, scheduling.CreateRequest{
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		City:         req.City,
		Date:         req.Date,
		Period:       req.Period,
		TechnicianID: tech.ID,
		Activity:     req.Activity,
		Notes:        req.Notes,
		Kind:         kind,
		CreatedBy:    req.Actor,
	}, now)
	if err != nil {
		return nil, uc.mapCreateError(err)
	}

	// 7. Сохраняем снапшот
	resp := &Response{Booking: *booking}
	if err := uc.state.Commit(ctx, next); err != nil {
		if !errors.Is(err, state.ErrPersistFailed) {
			uc.logger.Error("CreateBooking: failed to save state: %v", err)
			return nil, fmt.Errorf("%w: failed to save state: %v", ErrInternal, err)
		}
		resp.Warning = state.PersistWarning
	}

	if uc.recorder != nil {
		uc.recorder.BookingCreated(string(booking.Kind), string(booking.Period))
	}
	uc.state.Notify(ctx, notifier.EventCreated, *booking)

	uc.logger.Info("CreateBooking: successfully created booking id=%s (status=%s, kind=%s)",
		booking.ID, booking.Status, booking.Kind)
	return resp, nil
}

func (uc *UseCase) mapCreateError(err error) error {
	switch {
	case errors.Is(err, scheduling.ErrDuplicateBooking):
		uc.logger.Warn("CreateBooking: duplicate booking rejected")
		return ErrDuplicateBooking
	case errors.Is(err, scheduling.ErrTechnicianNotFound):
		return ErrTechnicianNotFound
	case errors.Is(err, scheduling.ErrTechnicianRequired),
		errors.Is(err, scheduling.ErrInvalidDate),
		errors.Is(err, scheduling.ErrInvalidPeriod):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}
}
