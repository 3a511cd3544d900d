package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bloghub/pkg/logger"
)

// NewLoggerMiddleware логирует каждый HTTP запрос.
func NewLoggerMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := RequestContext(c)
		start := time.Now()

		log := logger.Log(requestCtx).With(
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.String("ip", c.IP()),
		)

		log.Debug(requestCtx, "Request started")

		err := c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			// Статус выставит ErrorHandler.
			log.Info(requestCtx, "Request completed with error", append(fields, zap.Error(err))...)
			return err
		}

		log.Info(requestCtx, "Request completed", fields...)
		return nil
	}
}
