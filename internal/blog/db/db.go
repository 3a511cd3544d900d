// Package db открывает хранилище блога выбранного драйвера.
package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bloghub/internal/blog/adapters/postgres"
	"bloghub/internal/blog/adapters/sqlite"
	"bloghub/internal/blog/config"
	"bloghub/internal/blog/ports/repositories"
	"bloghub/migrations"
	pgdb "bloghub/pkg/db/postgres"
	"bloghub/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing blog storage"
	LogDBInitialized     = "blog storage initialized successfully"
	LogMigrationStarting = "starting database migrations for blog storage"
)

// Константы для сообщений об ошибках.
const (
	ErrDBInit       = "failed to initialize blog storage"
	ErrDBMigrations = "failed to apply blog database migrations"
	ErrDBConnection = "failed to connect to blog database"
)

// Open применяет миграции и открывает хранилище, заданное cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config) (repositories.Store, error) {
	if err := cfg.Storage.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBInit, err)
	}

	log := logger.Log(ctx).With(zap.String("driver", cfg.Storage.Driver))
	log.Info(ctx, LogDBInitializing)

	var (
		store repositories.Store
		err   error
	)
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		store, err = openPostgres(ctx, &cfg.Postgres)
	default:
		store, err = sqlite.Open(ctx, cfg.Storage.SQLitePath)
	}
	if err != nil {
		log.Error(ctx, ErrDBInit, zap.Error(err))
		return nil, err
	}

	log.Info(ctx, LogDBInitialized)
	return store, nil
}

func openPostgres(ctx context.Context, cfg *config.PostgresConfig) (repositories.Store, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogMigrationStarting,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database))

	if err := pgdb.MigrateFS(ctx, cfg.GetConnectionURL(), migrations.Postgres()); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := pgdb.New(ctx, cfg.GetDSN(), cfg.MinConn, cfg.MaxConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	return postgres.NewRepositoryFactory(database.Pool()), nil
}
