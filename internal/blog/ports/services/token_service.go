package services

import (
	"context"
	"time"

	"bloghub/internal/blog/domain/services"
)

// TokenService определяет выпуск и проверку сессионных токенов.
type TokenService interface {
	GenerateToken(ctx context.Context, userID string) (string, time.Time, error)

	ValidateToken(ctx context.Context, token string) (services.JWTClaims, error)
}
