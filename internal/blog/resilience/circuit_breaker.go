// Package resilience защищает вызовы внешних зависимостей блога.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"bloghub/pkg/logger"
)

// CircuitState представляет состояние Circuit Breaker.
type CircuitState int

// Состояния Circuit Breaker.
const (
	StateClosed CircuitState = iota
	StateOpen
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Константы для логирования.
const (
	LogCircuitStateChange = "circuit breaker state changed"
	LogCircuitTrip        = "circuit breaker tripped"
	LogCircuitReject      = "circuit breaker rejected request"
)

// ErrCircuitOpen возвращается, пока Circuit Breaker открыт.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig содержит настройки Circuit Breaker.
type CircuitBreakerConfig struct {
	// ErrorThreshold - число ошибок подряд до размыкания.
	ErrorThreshold int
	// Timeout - время в открытом состоянии до пробных запросов.
	Timeout time.Duration
	// SuccessThreshold - число успехов в полуоткрытом состоянии до замыкания.
	SuccessThreshold int
}

// DefaultCircuitBreakerConfig возвращает конфигурацию по умолчанию.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		ErrorThreshold:   5,
		Timeout:          10 * time.Second,
		SuccessThreshold: 2,
	}
}

// CircuitBreaker размыкается после серии ошибок и пропускает пробные запросы по таймауту.
type CircuitBreaker struct {
	name   string
	config CircuitBreakerConfig
	now    func() time.Time

	mu              sync.Mutex
	state           CircuitState
	failures        int
	successes       int
	lastStateChange time.Time
}

// NewCircuitBreaker создает Circuit Breaker в замкнутом состоянии.
func NewCircuitBreaker(name string, config CircuitBreakerConfig) *CircuitBreaker {
	return newCircuitBreaker(name, config, time.Now)
}

func newCircuitBreaker(name string, config CircuitBreakerConfig, now func() time.Time) *CircuitBreaker {
	if config.ErrorThreshold <= 0 {
		config.ErrorThreshold = 1
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = 1
	}
	return &CircuitBreaker{
		name:            name,
		config:          config,
		now:             now,
		state:           StateClosed,
		lastStateChange: now(),
	}
}

// Execute выполняет fn, если Circuit Breaker пропускает запрос.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if !cb.AllowRequest(ctx) {
		return ErrCircuitOpen
	}

	err := fn()
	cb.RecordResult(ctx, err)
	return err
}

// AllowRequest сообщает, можно ли выполнить запрос. По истечении Timeout
// открытый Circuit Breaker переходит в полуоткрытое состояние.
func (cb *CircuitBreaker) AllowRequest(ctx context.Context) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if cb.now().Sub(cb.lastStateChange) < cb.config.Timeout {
			cb.log(ctx).Debug(ctx, LogCircuitReject)
			return false
		}
		cb.setState(ctx, StateHalfOpen)
		return true
	default:
		return true
	}
}

// RecordResult учитывает результат запроса.
func (cb *CircuitBreaker) RecordResult(ctx context.Context, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		switch cb.state {
		case StateClosed:
			cb.failures++
			if cb.failures >= cb.config.ErrorThreshold {
				cb.log(ctx).Warn(ctx, LogCircuitTrip, zap.Int("failures", cb.failures), zap.Error(err))
				cb.setState(ctx, StateOpen)
			}
		case StateHalfOpen:
			cb.log(ctx).Warn(ctx, LogCircuitTrip, zap.Error(err))
			cb.setState(ctx, StateOpen)
		}
		return
	}

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			cb.setState(ctx, StateClosed)
		}
	}
}

// State возвращает текущее состояние.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// setState вызывается под мьютексом.
func (cb *CircuitBreaker) setState(ctx context.Context, state CircuitState) {
	cb.log(ctx).Info(ctx, LogCircuitStateChange,
		zap.Stringer("from", cb.state),
		zap.Stringer("to", state))
	cb.state = state
	cb.lastStateChange = cb.now()
	cb.failures = 0
	cb.successes = 0
}

func (cb *CircuitBreaker) log(ctx context.Context) *logger.Logger {
	return logger.Log(ctx).With(zap.String("circuit_breaker", cb.name))
}
