package services

import (
	"time"

	"bloghub/internal/blog/domain/entities"
)

// AuthResult - результат регистрации или входа.
type AuthResult struct {
	User      *entities.User
	Token     string
	ExpiresAt time.Time
}

// Session - аутентифицированный пользователь запроса.
type Session struct {
	User   *entities.User
	Claims JWTClaims
}
