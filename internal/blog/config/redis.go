package config

import (
	"time"

	"bloghub/pkg/db/redis"
)

// RedisConfig представляет конфигурацию кэша постов.
type RedisConfig struct {
	Enabled         bool          `yaml:"enabled" env:"BLOG_REDIS_ENABLED" env-default:"false"`
	Host            string        `yaml:"host" env:"BLOG_REDIS_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"BLOG_REDIS_PORT" env-default:"6379"`
	Password        string        `yaml:"password" env:"BLOG_REDIS_PASSWORD" env-default:""`
	DB              int           `yaml:"db" env:"BLOG_REDIS_DB" env-default:"0"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"BLOG_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"BLOG_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"BLOG_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize        int           `yaml:"pool_size" env:"BLOG_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle         int           `yaml:"min_idle" env:"BLOG_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"BLOG_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"BLOG_REDIS_MAX_CONN_LIFETIME" env-default:"1h"`
	DefaultTTL      time.Duration `yaml:"default_ttl" env:"BLOG_REDIS_DEFAULT_TTL" env-default:"5m"`
}

// ClientConfig переводит настройки в конфигурацию клиента.
func (c *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:            c.Host,
		Port:            c.Port,
		Password:        c.Password,
		DB:              c.DB,
		PoolSize:        c.PoolSize,
		MinIdle:         c.MinIdle,
		ConnectTimeout:  c.ConnectTimeout,
		ReadTimeout:     c.ReadTimeout,
		WriteTimeout:    c.WriteTimeout,
		IdleTimeout:     c.IdleTimeout,
		MaxConnLifetime: c.MaxConnLifetime,
	}
}
