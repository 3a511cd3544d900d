package config

import (
	"errors"
	"fmt"
)

// Драйверы хранилища.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrUnknownDriver возвращается для неподдерживаемого драйвера хранилища.
var ErrUnknownDriver = errors.New("unknown storage driver")

// StorageConfig выбирает хранилище пользователей и постов.
type StorageConfig struct {
	Driver     string `yaml:"driver" env:"BLOG_STORAGE_DRIVER" env-default:"sqlite"`
	SQLitePath string `yaml:"sqlite_path" env:"BLOG_SQLITE_PATH" env-default:"bloghub.db"`
}

// Validate проверяет имя драйвера.
func (s *StorageConfig) Validate() error {
	switch s.Driver {
	case DriverPostgres, DriverSQLite:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, s.Driver)
	}
}
