package middleware

import (
	"github.com/gofiber/fiber/v3"

	"bloghub/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware берет идентификатор из X-Request-ID или, если он пуст или
// недопустим, генерирует новый. Идентификатор возвращается в ответе.
func NewRequestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := logger.ContextWithRequestID(c.Context(), c.Get(HeaderRequestID))
		requestID, _ := logger.RequestIDFrom(requestCtx)

		c.Locals(LocalRequestContext, requestCtx)
		c.Set(HeaderRequestID, requestID)

		return c.Next()
	}
}
