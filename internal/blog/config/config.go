// Package config содержит конфигурацию сервиса блогов.
package config

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	pkgconfig "bloghub/pkg/config"
	"bloghub/pkg/logger"
)

// ServiceName - имя сервиса в логах.
const ServiceName = "blog"

// EnvConfigFile - переменная окружения с путем к файлу конфигурации.
const EnvConfigFile = "BLOG_CONFIG_FILE"

// Сообщения для конфигурации.
const (
	LogConfigLoaded     = "Blog service configuration loaded"
	ErrFailedLoadConfig = "Failed to load configuration"
)

// Config представляет полную конфигурацию сервиса.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Storage  StorageConfig  `yaml:"storage"`
	Postgres PostgresConfig `yaml:"postgres"`
	JWT      JWTConfig      `yaml:"jwt"`
	Redis    RedisConfig    `yaml:"redis"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load читает конфигурацию из файла BLOG_CONFIG_FILE (если задан) и окружения.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, os.Getenv(EnvConfigFile))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Storage.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.JWT.Validate(cfg.Logging.GetEnvironment()); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("base_path", cfg.HTTP.BasePath),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Bool("grpc_enabled", cfg.GRPC.Enabled),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}
