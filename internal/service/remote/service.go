// Package remote отправляет снапшот в удаленное хранилище и загружает его обратно.
package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/integrations/remotesync"
	"github.com/m04kA/SMC-FieldScheduler/internal/scheduling"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/state"
)

// Service сервис удаленной синхронизации
type Service struct {
	state    StateService
	client   RemoteClient
	recorder Recorder
	endpoint string
	token    string // используется, если в снапшоте токен не задан
	logger   Logger
}

// NewService создает новый экземпляр сервиса синхронизации
func NewService(state StateService, client RemoteClient, recorder Recorder, endpoint, token string, logger Logger) *Service {
	return &Service{
		state:    state,
		client:   client,
		recorder: recorder,
		endpoint: strings.TrimSpace(endpoint),
		token:    token,
		logger:   logger,
	}
}

// Push отправляет текущий снапшот в удаленное хранилище
func (s *Service) Push(ctx context.Context) (*Result, error) {
	if s.endpoint == "" {
		return nil, ErrNotConfigured
	}

	snap, err := s.state.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Push - load state: %v", ErrInternal, err)
	}

	if err := s.client.Push(ctx, s.endpoint, s.tokenFor(snap), snap); err != nil {
		return nil, s.mapRemoteError(DirectionPush, err)
	}
	s.record(DirectionPush, ResultOK)

	s.logger.Info("Push: snapshot sent (technicians=%d, bookings=%d)", len(snap.Technicians), len(snap.Bookings))
	return &Result{
		Direction:   DirectionPush,
		Technicians: len(snap.Technicians),
		Bookings:    len(snap.Bookings),
	}, nil
}

// Pull заменяет локальное состояние удаленным снапшотом.
// Пользователи и токен остаются локальными, если в удаленном снапшоте их нет.
func (s *Service) Pull(ctx context.Context, actor string) (*Result, error) {
	if s.endpoint == "" {
		return nil, ErrNotConfigured
	}

	local, err := s.state.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Pull - load state: %v", ErrInternal, err)
	}

	remote, err := s.client.Pull(ctx, s.endpoint, s.tokenFor(local))
	if err != nil {
		return nil, s.mapRemoteError(DirectionPull, err)
	}

	next := remote.Clone()
	if len(next.Users) == 0 {
		next.Users = append(next.Users, local.Users...)
	}
	if strings.TrimSpace(next.APIToken) == "" {
		next.APIToken = local.APIToken
	}
	scheduling.Record(next, actor, ActionSyncPull, s.state.Now(),
		"technicians=%d bookings=%d", len(next.Technicians), len(next.Bookings))

	result := &Result{
		Direction:   DirectionPull,
		Technicians: len(next.Technicians),
		Bookings:    len(next.Bookings),
	}
	if err := s.state.Commit(ctx, next); err != nil {
		if !errors.Is(err, state.ErrPersistFailed) {
			s.record(DirectionPull, ResultError)
			return nil, fmt.Errorf("%w: Pull - save state: %v", ErrInternal, err)
		}
		s.logger.Warn("Pull: %v", err)
		result.Warning = state.PersistWarning
	}
	s.record(DirectionPull, ResultOK)

	s.logger.Info("Pull: state replaced (technicians=%d, bookings=%d)", result.Technicians, result.Bookings)
	return result, nil
}

func (s *Service) tokenFor(snap *domain.Snapshot) string {
	if token := strings.TrimSpace(snap.APIToken); token != "" {
		return token
	}
	return s.token
}

func (s *Service) mapRemoteError(direction string, err error) error {
	switch {
	case errors.Is(err, remotesync.ErrUnauthorized):
		s.record(direction, ResultUnauthorized)
		s.logger.Warn("%s: %v", direction, err)
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case errors.Is(err, remotesync.ErrNotConfigured):
		return ErrNotConfigured
	default:
		s.record(direction, ResultError)
		s.logger.Error("%s: %v", direction, err)
		return fmt.Errorf("%w: %v", ErrRemote, err)
	}
}

func (s *Service) record(direction, result string) {
	if s.recorder != nil {
		s.recorder.SyncOperation(direction, result)
	}
}
