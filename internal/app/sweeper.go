package app

import (
	"context"
	"sync"
	"time"
)

// Expirer удаляет просроченные предварительные бронирования
type Expirer interface {
	ExpireNow(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ExpirySweeper периодически очищает просроченные бронирования, даже если
// состояние никто не читает
type ExpirySweeper struct {
	expirer  Expirer
	interval time.Duration
	logger   Logger

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewExpirySweeper создаёт новый планировщик очистки
func NewExpirySweeper(expirer Expirer, interval time.Duration, logger Logger) *ExpirySweeper {
	return &ExpirySweeper{
		expirer:  expirer,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновую задачу. Интервал <= 0 отключает очистку.
func (s *ExpirySweeper) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("Expiry sweeper disabled")
		return
	}
	s.logger.Info("Starting expiry sweeper, interval=%s", s.interval)

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop останавливает задачу и ждет завершения текущего прохода
func (s *ExpirySweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
	s.logger.Info("Expiry sweeper stopped")
}

func (s *ExpirySweeper) run(ctx context.Context) {
	defer s.wg.Done()

	// Первый проход сразу при старте
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *ExpirySweeper) sweep(ctx context.Context) {
	expired, err := s.expirer.ExpireNow(ctx)
	if err != nil {
		s.logger.Error("Expiry sweep failed: %v", err)
		return
	}
	if expired > 0 {
		s.logger.Info("Expiry sweep removed %d provisional booking(s)", expired)
	}
}
