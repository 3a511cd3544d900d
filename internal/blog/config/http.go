package config

import (
	"fmt"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"BLOG_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"BLOG_HTTP_PORT" env-default:"5000"`
	BasePath     string        `yaml:"base_path" env:"BLOG_HTTP_BASE_PATH" env-default:"/api"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"BLOG_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"BLOG_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	SecureCookie bool          `yaml:"secure_cookie" env:"BLOG_HTTP_SECURE_COOKIE" env-default:"false"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
