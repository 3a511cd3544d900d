// Package shutdown реализует корректное завершение процесса по SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"bloghub/pkg/logger"
)

const (
	logShutdownStarted  = "shutdown started"
	logShutdownFinished = "shutdown finished"
	logShutdownTimedOut = "shutdown timed out"
	logHookFailed       = "shutdown hook failed"
)

// ErrTimeout возвращается, если хуки не уложились в отведенное время.
var ErrTimeout = errors.New("shutdown timed out")

// Hook освобождает ресурс при завершении.
type Hook func(ctx context.Context) error

// Wait блокируется до SIGINT или SIGTERM, затем выполняет хуки.
func Wait(timeout time.Duration, hooks ...Hook) error {
	return WaitContext(context.Background(), timeout, hooks...)
}

// WaitContext блокируется до сигнала или отмены ctx, затем параллельно
// выполняет хуки в пределах timeout. Возвращает объединенные ошибки хуков.
func WaitContext(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	<-sigCtx.Done()
	stop()

	log := logger.Log(ctx)
	log.Info(ctx, logShutdownStarted, zap.Int("hooks", len(hooks)), zap.Duration("timeout", timeout))

	hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i, hook := range hooks {
		wg.Add(1)
		go func(idx int, fn Hook) {
			defer wg.Done()
			if err := fn(hookCtx); err != nil {
				log.Error(ctx, logHookFailed, zap.Int("hook", idx), zap.Error(err))
				mu.Lock()
				errs = append(errs, fmt.Errorf("hook %d: %w", idx, err))
				mu.Unlock()
			}
		}(i, hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(ctx, logShutdownFinished)
	case <-hookCtx.Done():
		log.Warn(ctx, logShutdownTimedOut)
		mu.Lock()
		defer mu.Unlock()
		return errors.Join(append(errs, ErrTimeout)...)
	}

	mu.Lock()
	defer mu.Unlock()
	return errors.Join(errs...)
}
