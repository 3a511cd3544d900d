package middleware

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bloghub/pkg/logger"
)

// ErrPanic оборачивает значение паники обработчика.
var ErrPanic = errors.New("handler panic")

// NewRecoveryMiddleware превращает панику обработчика в ошибку для ErrorHandler.
func NewRecoveryMiddleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				requestCtx := RequestContext(c)
				logger.Log(requestCtx).Error(requestCtx, "Server panic",
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)
				err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()

		return c.Next()
	}
}
