package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/integrations/notifier"
	"github.com/m04kA/SMC-FieldScheduler/internal/scheduling"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/bookings/models"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/state"
)

// Service сервис для работы с бронированиями
type Service struct {
	state   StateService
	textgen TextGenerator
	logger  Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(state StateService, textgen TextGenerator, logger Logger) *Service {
	return &Service{
		state:   state,
		textgen: textgen,
		logger:  logger,
	}
}

// List возвращает бронирования по фильтру, отсортированные по дате и периоду
func (s *Service) List(ctx context.Context, req *models.ListRequest) ([]domain.Booking, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	snap, err := s.state.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: List - load state: %v", ErrInternal, err)
	}

	result := make([]domain.Booking, 0)
	for i := range snap.Bookings {
		if filter.Matches(&snap.Bookings[i]) {
			result = append(result, snap.Bookings[i])
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return periodOrder(result[i].Period) < periodOrder(result[j].Period)
	})

	s.logger.Info("List: %d booking(s) matched", len(result))
	return result, nil
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	snap, err := s.state.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - load state: %v", ErrInternal, err)
	}

	idx := snap.FindBooking(id)
	if idx < 0 {
		s.logger.Warn("GetByID: booking id=%s not found", id)
		return nil, ErrBookingNotFound
	}
	b := snap.Bookings[idx]
	return &b, nil
}

// Confirm переводит предварительное бронирование в обычное.
// Повторное подтверждение не является ошибкой.
func (s *Service) Confirm(ctx context.Context, id, actor string) (*models.BookingResult, error) {
	s.logger.Info("Confirm: booking id=%s by %s", id, actor)

	snap, err := s.state.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Confirm - load state: %v", ErrInternal, err)
	}

	next, ok := scheduling.ConfirmProvisional(snap, id, actor, s.state.Now())
	if !ok {
		// могло истечь при загрузке
		s.logger.Warn("Confirm: booking id=%s not found", id)
		return nil, ErrBookingNotFound
	}

	result := &models.BookingResult{Booking: next.Bookings[next.FindBooking(id)]}
	if next == snap {
		return result, nil
	}

	if result.Warning, err = s.commit(ctx, "Confirm", next); err != nil {
		return nil, err
	}
	s.state.Notify(ctx, notifier.EventConfirmed, result.Booking)
	return result, nil
}

// Reschedule переносит бронирование на другую дату, период или техника
func (s *Service) Reschedule(ctx context.Context, req *models.RescheduleRequest, actor string) (*models.BookingResult, error) {
	s.logger.Info("Reschedule: booking id=%s to %s %s technician=%s by %s",
		req.BookingID, req.Date.Format(domain.DateFormat), req.Period, req.TechnicianID, actor)

	snap, err := s.state.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Reschedule - load state: %v", ErrInternal, err)
	}
	now := s.state.Now()

	idx := snap.FindBooking(req.BookingID)
	if idx < 0 {
		return nil, ErrBookingNotFound
	}
	current := snap.Bookings[idx]

	if strings.TrimSpace(req.Reason) == "" {
		return nil, s.mapCoreError("Reschedule", scheduling.ErrReasonRequired)
	}
	if !req.Date.IsZero() && isPast(req.Date, now) {
		return nil, ErrInvalidBookingDate
	}
	if !req.Date.IsZero() && req.Period.IsValid() && !isBookable(req.Date, req.Period, now) {
		s.logger.Warn("Reschedule: period %s of %s is already closed", req.Period, req.Date.Format(domain.DateFormat))
		return nil, ErrPeriodClosed
	}

	if tech := snap.FindTechnician(req.TechnicianID); tech != nil {
		if !tech.ServesCity(current.City) {
			return nil, ErrTechnicianNotInCity
		}
		// свободные места считаем без самого переносимого бронирования
		slots, _ := scheduling.TechnicianAvailabilityExcluding(snap, tech.ID, req.Date, req.Period, current.ID)
		if req.Period.IsValid() && !req.Date.IsZero() && slots.Remaining <= 0 {
			s.logger.Warn("Reschedule: target slot full, %d/%d taken", slots.Used, slots.Capacity)
			return nil, ErrSlotNotAvailable
		}
	}

	next, booking, err := scheduling.Reschedule(snap, scheduling.RescheduleRequest{
		BookingID:    req.BookingID,
		Date:         req.Date,
		Period:       req.Period,
		TechnicianID: req.TechnicianID,
		Reason:       req.Reason,
	}, actor, now)
	if err != nil {
		return nil, s.mapCoreError("Reschedule", err)
	}

	result := &models.BookingResult{Booking: *booking}
	if result.Warning, err = s.commit(ctx, "Reschedule", next); err != nil {
		return nil, err
	}
	s.state.Notify(ctx, notifier.EventRescheduled, result.Booking)
	if current.TechnicianID != booking.TechnicianID {
		// прежний техник тоже должен узнать об изменении
		s.state.Notify(ctx, notifier.EventRemoved, current)
	}
	return result, nil
}

// Remove удаляет бронирование
func (s *Service) Remove(ctx context.Context, id, actor string) (*models.MutationResult, error) {
	s.logger.Info("Remove: booking id=%s by %s", id, actor)

	snap, err := s.state.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Remove - load state: %v", ErrInternal, err)
	}

	idx := snap.FindBooking(id)
	if idx < 0 {
		return nil, ErrBookingNotFound
	}
	removed := snap.Bookings[idx]

	next, _ := scheduling.RemoveBooking(snap, id, actor, s.state.Now())

	result := &models.MutationResult{}
	if result.Warning, err = s.commit(ctx, "Remove", next); err != nil {
		return nil, err
	}
	s.state.Notify(ctx, notifier.EventRemoved, removed)
	return result, nil
}

// UpdateExecution меняет статус выполнения
func (s *Service) UpdateExecution(ctx context.Context, req *models.UpdateExecutionRequest, actor string) (*models.BookingResult, error) {
	s.logger.Info("UpdateExecution: booking id=%s status=%s by %s", req.BookingID, req.Status, actor)

	status, err := models.ToDomainExecutionStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	snap, err := s.state.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateExecution - load state: %v", ErrInternal, err)
	}

	next, booking, err := scheduling.UpdateExecution(snap, req.BookingID, status, req.Reason, actor, s.state.Now())
	if err != nil {
		return nil, s.mapCoreError("UpdateExecution", err)
	}

	result := &models.BookingResult{Booking: *booking}
	if result.Warning, err = s.commit(ctx, "UpdateExecution", next); err != nil {
		return nil, err
	}
	s.state.Notify(ctx, notifier.EventExecution, result.Booking)
	return result, nil
}

// ConfirmationMessage генерирует текст подтверждения для клиента
func (s *Service) ConfirmationMessage(ctx context.Context, id string) (*models.ConfirmationMessage, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.ConfirmationMessage{
		BookingID: id,
		Message:   s.textgen.Generate(ctx, *booking),
	}, nil
}

// commit сохраняет снапшот; ошибка записи при сохранённом в памяти
// состоянии превращается в предупреждение
func (s *Service) commit(ctx context.Context, op string, next *domain.Snapshot) (string, error) {
	if err := s.state.Commit(ctx, next); err != nil {
		if errors.Is(err, state.ErrPersistFailed) {
			s.logger.Warn("%s: %v", op, err)
			return state.PersistWarning, nil
		}
		s.logger.Error("%s: failed to save state: %v", op, err)
		return "", fmt.Errorf("%w: %s - save state: %v", ErrInternal, op, err)
	}
	return "", nil
}

func (s *Service) mapCoreError(op string, err error) error {
	switch {
	case errors.Is(err, scheduling.ErrBookingNotFound):
		return ErrBookingNotFound
	case errors.Is(err, scheduling.ErrTechnicianNotFound):
		return ErrTechnicianNotFound
	case errors.Is(err, scheduling.ErrTechnicianRequired),
		errors.Is(err, scheduling.ErrReasonRequired),
		errors.Is(err, scheduling.ErrInvalidDate),
		errors.Is(err, scheduling.ErrInvalidPeriod),
		errors.Is(err, scheduling.ErrInvalidExecutionStatus):
		s.logger.Warn("%s: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		s.logger.Error("%s: %v", op, err)
		return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
	}
}

func periodOrder(p domain.Period) int {
	for i, known := range domain.AllPeriods {
		if p == known {
			return i
		}
	}
	return len(domain.AllPeriods)
}

func isPast(date, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return date.Before(today)
}

// isBookable проверяет часовые отсечки текущего дня, как при создании
func isBookable(date time.Time, period domain.Period, now time.Time) bool {
	for _, p := range domain.BookablePeriods(date, now) {
		if p == period {
			return true
		}
	}
	return false
}
