package redis

import (
	"net"
	"strconv"
	"time"
)

// Значения по умолчанию.
const (
	DefaultPoolSize       = 10
	DefaultConnectTimeout = 5 * time.Second
)

// Config описывает подключение к Redis.
type Config struct {
	Host            string
	Port            int
	Password        string
	DB              int
	PoolSize        int
	MinIdle         int
	ConnectTimeout  time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	MaxConnLifetime time.Duration
}

// Addr возвращает адрес host:port.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
