// Package config загружает конфигурацию сервисов через cleanenv.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"bloghub/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded"
	msgConfigFileMissing       = "config file not found, using environment only"
	msgFailedLoadConfiguration = "failed to load configuration"

	errCtxReadFile = "read config file"
	errCtxReadEnv  = "read environment"

	attrService = "service"
	attrPath    = "path"
)

// Load заполняет T из файла path (yaml, json, toml или .env), если он существует,
// затем из переменных окружения. Пустой path означает только окружение.
func Load[T any](ctx context.Context, serviceName, path string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))
	log.Info(ctx, msgLoadingConfiguration, zap.String(attrPath, path))

	var cfg T

	if path != "" {
		_, statErr := os.Stat(path)
		switch {
		case statErr == nil:
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
				return nil, fmt.Errorf("%s %s: %w", errCtxReadFile, path, err)
			}
			log.Info(ctx, msgConfigurationLoaded)
			return &cfg, nil
		case errors.Is(statErr, os.ErrNotExist):
			log.Warn(ctx, msgConfigFileMissing, zap.String(attrPath, path))
		default:
			log.Error(ctx, msgFailedLoadConfiguration, zap.Error(statErr))
			return nil, fmt.Errorf("%s %s: %w", errCtxReadFile, path, statErr)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxReadEnv, err)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}
