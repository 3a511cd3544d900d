// Package entities содержит доменные сущности сервиса блогов и их ошибки.
package entities

import "errors"

// Классы доменных ошибок. Конкретная ошибка относится к классу через errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

// Конкретные доменные ошибки.
var (
	ErrUserNotFound       = newKindError(ErrNotFound, "User not found")
	ErrPostNotFound       = newKindError(ErrNotFound, "Blog not found")
	ErrEmailAlreadyExists = newKindError(ErrConflict, "User with this email already exists")
	ErrInvalidCredentials = newKindError(ErrUnauthenticated, "Invalid email or password")
	ErrNotAuthenticated   = newKindError(ErrUnauthenticated, "Not authorized, no token")
	ErrInvalidSession     = newKindError(ErrUnauthenticated, "Not authorized, token failed")
	ErrNotPostAuthor      = newKindError(ErrForbidden, "Not authorized to modify this blog")
	ErrPostFieldsRequired = newKindError(ErrValidation, "Title and content are required.")
	ErrRegisterFields     = newKindError(ErrValidation, "Name, email and password are required.")
	ErrLoginFields        = newKindError(ErrValidation, "Email and password are required.")
	ErrInvalidEmail       = newKindError(ErrValidation, "Email is not valid.")
)

// KindError - доменная ошибка с сообщением для клиента и классом.
type KindError struct {
	kind error
	msg  string
}

func newKindError(kind error, msg string) *KindError {
	return &KindError{kind: kind, msg: msg}
}

// NewValidationError создает ошибку валидации с произвольным сообщением.
func NewValidationError(msg string) *KindError {
	return newKindError(ErrValidation, msg)
}

func (e *KindError) Error() string {
	return e.msg
}

// Unwrap возвращает класс ошибки.
func (e *KindError) Unwrap() error {
	return e.kind
}

// Kind возвращает класс ошибки.
func (e *KindError) Kind() error {
	return e.kind
}
