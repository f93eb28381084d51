package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/integrations/notifier"
	"github.com/m04kA/SMC-FieldScheduler/internal/scheduling"
)

// Service выдаёт актуальный снапшот и сохраняет новые версии.
// Просроченные предварительные бронирования удаляются лениво при чтении.
type Service struct {
	repo         SnapshotRepository
	notifier     Notifier
	recorder     Recorder
	actor        string
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса. actor записывается в журнал
// аудита при автоматическом удалении бронирований.
func NewService(repo SnapshotRepository, notifier Notifier, recorder Recorder, actor string, logger Logger) *Service {
	return &Service{
		repo:         repo,
		notifier:     notifier,
		recorder:     recorder,
		actor:        actor,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Now текущее время сервиса
func (s *Service) Now() time.Time {
	return s.timeProvider.Now()
}

// Current загружает снапшот и удаляет просроченные предварительные бронирования
func (s *Service) Current(ctx context.Context) (*domain.Snapshot, error) {
	snap, _, err := s.expire(ctx)
	return snap, err
}

// ExpireNow удаляет просроченные бронирования и возвращает их количество
func (s *Service) ExpireNow(ctx context.Context) (int, error) {
	_, expired, err := s.expire(ctx)
	return expired, err
}

// Commit сохраняет новую версию снапшота. ErrPersistFailed означает, что
// состояние принято в памяти.
func (s *Service) Commit(ctx context.Context, snap *domain.Snapshot) error {
	if err := s.repo.Save(ctx, snap); err != nil {
		if errors.Is(err, ErrPersistFailed) {
			s.logger.Warn("Commit: %v", err)
			return err
		}
		s.logger.Error("Commit: failed to save snapshot: %v", err)
		return fmt.Errorf("%w: %v", ErrSave, err)
	}
	return nil
}

// Notify публикует событие; ошибки только логируются
func (s *Service) Notify(ctx context.Context, eventType notifier.EventType, b domain.Booking) {
	if s.notifier == nil {
		return
	}
	event := notifier.NewBookingEvent(eventType, b, s.timeProvider.Now())
	if err := s.notifier.BookingChanged(ctx, event); err != nil {
		s.logger.Warn("Notify: %s event for booking=%s not delivered: %v", eventType, b.ID, err)
	}
}

func (s *Service) expire(ctx context.Context) (*domain.Snapshot, int, error) {
	snap, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Error("Current: failed to load snapshot: %v", err)
		return nil, 0, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	result := scheduling.ExpireProvisionals(snap, s.actor, s.timeProvider.Now())
	if !result.Changed() {
		return snap, 0, nil
	}

	if result.Repaired > 0 {
		s.logger.Warn("Current: repaired creation time of %d provisional booking(s)", result.Repaired)
	}
	if n := len(result.Expired); n > 0 {
		s.logger.Info("Current: expired %d provisional booking(s)", n)
		if s.recorder != nil {
			s.recorder.ProvisionalExpired(n)
		}
	}

	// Ошибка сохранения не мешает чтению: следующая загрузка повторит очистку
	if err := s.Commit(ctx, result.Snapshot); err != nil && !errors.Is(err, ErrPersistFailed) {
		s.logger.Warn("Current: continuing with unsaved expiry result")
	}

	for _, b := range result.Expired {
		s.Notify(ctx, notifier.EventExpired, b)
	}

	return result.Snapshot, len(result.Expired), nil
}
