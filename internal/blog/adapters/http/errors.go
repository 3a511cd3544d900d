package http

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bloghub/internal/blog/adapters/http/dto"
	"bloghub/internal/blog/adapters/http/middleware"
	"bloghub/internal/blog/domain/entities"
	"bloghub/pkg/logger"
)

// Константы для ответов об ошибках.
const (
	MessageServerError   = "Server error"
	MessageRouteNotFound = "Route not found"

	LogRequestFailed   = "request failed"
	LogRequestRejected = "request rejected"
)

// ErrorHandler переводит ошибки обработчиков в JSON ответ с кодом по классу ошибки.
func ErrorHandler(c fiber.Ctx, err error) error {
	requestCtx := middleware.RequestContext(c)
	log := logger.Log(requestCtx).With(zap.String("path", c.Path()), zap.String("method", c.Method()))

	status, body := classify(err)
	if status >= fiber.StatusInternalServerError {
		log.Error(requestCtx, LogRequestFailed, zap.Int("status", status), zap.Error(err))
	} else {
		log.Debug(requestCtx, LogRequestRejected, zap.Int("status", status), zap.Error(err))
	}

	return c.Status(status).JSON(body)
}

func classify(err error) (int, dto.ErrorResponse) {
	var kindErr *entities.KindError
	if errors.As(err, &kindErr) {
		return statusForKind(kindErr.Kind()), dto.ErrorResponse{Message: kindErr.Error()}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, dto.ErrorResponse{Message: fiberErr.Message}
	}

	return fiber.StatusInternalServerError, dto.ErrorResponse{Message: MessageServerError, Error: err.Error()}
}

func statusForKind(kind error) int {
	switch {
	case errors.Is(kind, entities.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(kind, entities.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(kind, entities.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(kind, entities.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(kind, entities.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
