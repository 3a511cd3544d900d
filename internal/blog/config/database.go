package config

import (
	"fmt"
	"net/url"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host     string `yaml:"host" env:"BLOG_POSTGRES_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"BLOG_POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"BLOG_POSTGRES_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"BLOG_POSTGRES_PASSWORD" env-default:"postgres"`
	Database string `yaml:"database" env:"BLOG_POSTGRES_DB" env-default:"bloghub"`
	SSLMode  string `yaml:"ssl_mode" env:"BLOG_POSTGRES_SSL_MODE" env-default:"disable"`
	MinConn  int32  `yaml:"min_conn" env:"BLOG_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn  int32  `yaml:"max_conn" env:"BLOG_POSTGRES_MAX_CONN" env-default:"10"`
}

// GetDSN возвращает строку подключения для pgx.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// GetConnectionURL возвращает URL подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     p.Database,
		RawQuery: "sslmode=" + url.QueryEscape(p.SSLMode),
	}
	return u.String()
}
