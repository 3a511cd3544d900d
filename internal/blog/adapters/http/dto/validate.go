// Package dto содержит объекты передачи данных HTTP API блога.
package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"bloghub/internal/blog/domain/entities"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrInvalidBody - тело запроса не разбирается как JSON.
var ErrInvalidBody = entities.NewValidationError("Invalid request body.")

// check проверяет теги validate и заменяет ошибку валидатора на onFail.
func check(req any, onFail error) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return onFail
		}
		return err
	}
	return nil
}
