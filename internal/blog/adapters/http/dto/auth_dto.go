package dto

import (
	"time"

	"bloghub/internal/blog/domain/entities"
	"bloghub/internal/blog/domain/services"
)

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate проверяет наличие всех полей.
func (r *RegisterRequest) Validate() error {
	return check(r, entities.ErrRegisterFields)
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate проверяет наличие всех полей.
func (r *LoginRequest) Validate() error {
	return check(r, entities.ErrLoginFields)
}

// UserResponse - публичные поля пользователя.
type UserResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserResponse строит ответ без хэша пароля.
func NewUserResponse(u *entities.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// AuthResponse возвращается при регистрации и входе.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// NewAuthResponse строит ответ из результата аутентификации.
func NewAuthResponse(r *services.AuthResult) AuthResponse {
	return AuthResponse{User: NewUserResponse(r.User), Token: r.Token}
}

// MessageResponse - ответ с одним сообщением.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse - тело ответа об ошибке. Error заполняется только для 500.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
