// Package api определяет входящие порты сервиса блогов.
package api

import (
	"context"

	"bloghub/internal/blog/domain/services"
)

// AuthUseCase определяет операции регистрации и входа.
type AuthUseCase interface {
	Register(ctx context.Context, name, email, password string) (*services.AuthResult, error)

	Login(ctx context.Context, email, password string) (*services.AuthResult, error)

	Logout(ctx context.Context) error
}

// SessionUseCase проверяет сессионный токен и возвращает пользователя запроса.
type SessionUseCase interface {
	Authenticate(ctx context.Context, token string) (*services.Session, error)
}
