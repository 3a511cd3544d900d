// Package sqlite реализует хранилище пользователей и постов на встроенном SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"bloghub/internal/blog/ports/repositories"
	"bloghub/migrations"
	"bloghub/pkg/logger"
)

// Сообщения logger.
const (
	LogOpening           = "opening SQLite database"
	LogMigrationsApplied = "SQLite migrations successfully applied"
	LogClosing           = "closing SQLite database"
)

// Сообщения об ошибках.
const (
	ErrOpenDatabase    = "failed to open SQLite database"
	ErrApplyMigrations = "failed to apply SQLite migrations"
	ErrPingDatabase    = "failed to ping SQLite database"
)

// Store владеет соединением с файлом SQLite и репозиториями поверх него.
type Store struct {
	db       *sql.DB
	userRepo repositories.UserRepository
	postRepo repositories.PostRepository
}

// DSN возвращает строку подключения с включенными внешними ключами.
func DSN(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Open открывает базу по пути path и применяет миграции.
func Open(ctx context.Context, path string) (*Store, error) {
	log := logger.Log(ctx).With(zap.String("path", path))
	log.Info(ctx, LogOpening)

	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		log.Error(ctx, ErrOpenDatabase, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrOpenDatabase, err)
	}
	// SQLite допускает одного писателя.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		log.Error(ctx, ErrOpenDatabase, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrOpenDatabase, err)
	}

	if err := migrateUp(db); err != nil {
		_ = db.Close()
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}
	log.Info(ctx, LogMigrationsApplied)

	return &Store{
		db:       db,
		userRepo: NewUserRepository(db),
		postRepo: NewPostRepository(db),
	}, nil
}

// migrateUp не закрывает мигратор: его Close закрыл бы и db.
func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrations.SQLite(), ".")
	if err != nil {
		return err
	}
	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// UserRepository возвращает репозиторий пользователей.
func (s *Store) UserRepository() repositories.UserRepository {
	return s.userRepo
}

// PostRepository возвращает репозиторий постов.
func (s *Store) PostRepository() repositories.PostRepository {
	return s.postRepo
}

// Ping проверяет доступность базы.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}
	return nil
}

// Close закрывает базу.
func (s *Store) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogClosing)
	return s.db.Close()
}

var _ repositories.Store = (*Store)(nil)

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func toUnix(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromUnix(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
