// Package cache определяет порт кэша.
package cache

import (
	"context"
	"time"
)

// Cache - строковое хранилище ключ-значение с TTL.
// Get возвращает пустую строку и nil, если ключа нет.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	Close() error
}
