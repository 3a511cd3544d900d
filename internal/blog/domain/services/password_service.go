package services

import (
	"errors"
)

// Ошибки работы с паролями.
var (
	ErrHashingFailed   = errors.New("failed to hash password")
	ErrInvalidPassword = errors.New("invalid password")
)

// MaxPasswordBytes - ограничение bcrypt на длину пароля.
const MaxPasswordBytes = 72
