package cache

import (
	"context"
	"time"

	"bloghub/internal/blog/ports/cache"
	"bloghub/internal/blog/resilience"
)

// GuardedCache пропускает обращения к кэшу через Circuit Breaker,
// чтобы недоступный Redis не задерживал каждый запрос.
type GuardedCache struct {
	next    cache.Cache
	breaker *resilience.CircuitBreaker
}

// NewGuardedCache оборачивает next.
func NewGuardedCache(next cache.Cache, breaker *resilience.CircuitBreaker) *GuardedCache {
	return &GuardedCache{next: next, breaker: breaker}
}

// Get читает значение через Circuit Breaker.
func (g *GuardedCache) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := g.breaker.Execute(ctx, func() error {
		var err error
		value, err = g.next.Get(ctx, key)
		return err
	})
	return value, err
}

// Set записывает значение через Circuit Breaker.
func (g *GuardedCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return g.breaker.Execute(ctx, func() error {
		return g.next.Set(ctx, key, value, ttl)
	})
}

// Delete удаляет ключи и при открытом Circuit Breaker, учитывая результат.
func (g *GuardedCache) Delete(ctx context.Context, keys ...string) error {
	err := g.next.Delete(ctx, keys...)
	g.breaker.RecordResult(ctx, err)
	return err
}

// Close закрывает обернутый кэш.
func (g *GuardedCache) Close() error {
	return g.next.Close()
}
