package config

import (
	"errors"
	"time"

	"bloghub/pkg/logger"
)

// DefaultTokenTTL используется, если BLOG_JWT_TOKEN_TTL не разбирается.
const DefaultTokenTTL = 24 * time.Hour

// DevSecretKey - ключ по умолчанию. Допустим только в режиме development.
const DevSecretKey = "change-me-in-production"

// Ошибки настроек JWT.
var (
	ErrEmptySecretKey   = errors.New("BLOG_JWT_SECRET_KEY is empty")
	ErrDevSecretKeyUsed = errors.New("BLOG_JWT_SECRET_KEY must be set in production mode")
)

// JWTConfig содержит настройки сессионных токенов и хэширования паролей.
type JWTConfig struct {
	SecretKey  string `yaml:"secret_key" env:"BLOG_JWT_SECRET_KEY" env-default:"change-me-in-production"`
	TokenTTL   string `yaml:"token_ttl" env:"BLOG_JWT_TOKEN_TTL" env-default:"24h"`
	BCryptCost int    `yaml:"bcrypt_cost" env:"BLOG_JWT_BCRYPT_COST" env-default:"10"`
}

// GetTokenTTL возвращает время жизни токена.
func (c *JWTConfig) GetTokenTTL() time.Duration {
	d, err := time.ParseDuration(c.TokenTTL)
	if err != nil || d <= 0 {
		return DefaultTokenTTL
	}
	return d
}

// Validate отклоняет пустой ключ, а в production и ключ по умолчанию.
func (c *JWTConfig) Validate(env logger.Environment) error {
	switch {
	case c.SecretKey == "":
		return ErrEmptySecretKey
	case env == logger.Production && c.SecretKey == DevSecretKey:
		return ErrDevSecretKeyUsed
	}
	return nil
}
