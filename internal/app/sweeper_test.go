package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-FieldScheduler/pkg/logger"
)

type countingExpirer struct {
	calls atomic.Int32
	err   error
}

func (e *countingExpirer) ExpireNow(context.Context) (int, error) {
	e.calls.Add(1)
	return 1, e.err
}

func TestExpirySweeper_RunsUntilStopped(t *testing.T) {
	exp := &countingExpirer{}
	sweeper := NewExpirySweeper(exp, 10*time.Millisecond, logger.Nop())

	sweeper.Start(context.Background())
	assert.Eventually(t, func() bool { return exp.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	sweeper.Stop()
	stopped := exp.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, exp.calls.Load())

	// повторная остановка безопасна
	sweeper.Stop()
}

func TestExpirySweeper_ContextCancel(t *testing.T) {
	exp := &countingExpirer{err: errors.New("storage down")}
	sweeper := NewExpirySweeper(exp, 10*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	sweeper.Start(ctx)
	assert.Eventually(t, func() bool { return exp.calls.Load() >= 1 }, time.Second, 5*time.Millisecond)

	cancel()
	sweeper.Stop()
}

func TestExpirySweeper_Disabled(t *testing.T) {
	exp := &countingExpirer{}
	sweeper := NewExpirySweeper(exp, 0, logger.Nop())

	sweeper.Start(context.Background())
	sweeper.Stop()
	assert.Zero(t, exp.calls.Load())
}
