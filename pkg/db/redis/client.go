// Package redis создает клиент go-redis по общей конфигурации.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"bloghub/pkg/logger"
)

const (
	logConnecting = "connecting to Redis"
	logConnected  = "connected to Redis"

	errConnect = "failed to connect to redis"
)

// NewClient создает клиент и проверяет соединение командой PING.
func NewClient(ctx context.Context, cfg *Config) (*redis.Client, error) {
	log := logger.Log(ctx).With(zap.String("address", cfg.Addr()))
	log.Info(ctx, logConnecting)

	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	dialTimeout := cfg.ConnectTimeout
	if dialTimeout <= 0 {
		dialTimeout = DefaultConnectTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:            cfg.Addr(),
		Password:        cfg.Password,
		DB:              cfg.DB,
		DialTimeout:     dialTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        poolSize,
		MinIdleConns:    cfg.MinIdle,
		ConnMaxIdleTime: cfg.IdleTimeout,
		ConnMaxLifetime: cfg.MaxConnLifetime,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Error(ctx, errConnect, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errConnect, err)
	}

	log.Info(ctx, logConnected)
	return client, nil
}
