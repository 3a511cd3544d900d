// Package services содержит доменные модели сервисов аутентификации.
package services

import (
	"errors"
	"time"
)

// Ошибки сессионных токенов.
var (
	ErrInvalidJWTToken    = errors.New("invalid JWT token")
	ErrExpiredJWTToken    = errors.New("JWT token has expired")
	ErrGeneratingJWTToken = errors.New("failed to generate JWT token")
)

// JWTConfig содержит настройки выпуска токенов.
type JWTConfig struct {
	SecretKey []byte
	TokenTTL  time.Duration
}

// JWTClaims - утверждения сессионного токена.
type JWTClaims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
