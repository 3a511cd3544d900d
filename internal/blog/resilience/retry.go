package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"bloghub/pkg/logger"
)

// RetryConfig содержит настройки повторных попыток.
type RetryConfig struct {
	// MaxAttempts - число попыток, включая первую.
	MaxAttempts int
	// InitialBackoff - задержка перед второй попыткой.
	InitialBackoff time.Duration
	// MaxBackoff - верхняя граница задержки.
	MaxBackoff time.Duration
	// BackoffFactor - множитель экспоненциальной задержки.
	BackoffFactor float64
	// ShouldRetry решает, повторять ли попытку после ошибки.
	ShouldRetry func(error) bool
}

// DefaultRetryConfig возвращает конфигурацию для подключения к хранилищу при старте.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    5,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
		BackoffFactor:  2.0,
		ShouldRetry:    defaultShouldRetry,
	}
}

// ErrContextCanceled возвращается, если контекст отменен во время ожидания.
var ErrContextCanceled = errors.New("context was canceled during retry")

func defaultShouldRetry(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Константы для логирования.
const (
	LogRetryAttempt     = "retry attempt"
	LogRetrySuccess     = "retry succeeded"
	LogRetryMaxAttempts = "retry max attempts reached"
)

// Retry выполняет операцию с экспоненциальной задержкой между попытками.
type Retry struct {
	name   string
	config RetryConfig
}

// NewRetry создает механизм повторных попыток.
func NewRetry(name string, config RetryConfig) *Retry {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}
	if config.BackoffFactor < 1 {
		config.BackoffFactor = 1
	}
	if config.ShouldRetry == nil {
		config.ShouldRetry = defaultShouldRetry
	}
	return &Retry{name: name, config: config}
}

// Execute вызывает operation, пока она не завершится успешно или не кончатся попытки.
func (r *Retry) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	log := logger.Log(ctx).With(zap.String("retry", r.name))

	backoff := r.config.InitialBackoff
	for attempt := 1; ; attempt++ {
		err := operation(ctx)
		if err == nil {
			if attempt > 1 {
				log.Info(ctx, LogRetrySuccess, zap.Int("attempts", attempt))
			}
			return nil
		}
		if !r.config.ShouldRetry(err) {
			return err
		}
		if attempt >= r.config.MaxAttempts {
			log.Warn(ctx, LogRetryMaxAttempts, zap.Int("attempts", attempt), zap.Error(err))
			return err
		}

		log.Info(ctx, LogRetryAttempt,
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %w", ErrContextCanceled, ctx.Err())
		}

		backoff = time.Duration(float64(backoff) * r.config.BackoffFactor)
		if r.config.MaxBackoff > 0 && backoff > r.config.MaxBackoff {
			backoff = r.config.MaxBackoff
		}
	}
}
