// Package middleware содержит промежуточное ПО для HTTP обработчиков блога.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"bloghub/internal/blog/domain/services"
)

// Ключи fiber.Locals.
const (
	LocalRequestContext = "requestContext"
	LocalSession        = "session"
)

// RequestContext возвращает контекст запроса с идентификатором запроса.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(LocalRequestContext).(context.Context); ok {
		return ctx
	}
	return c.Context()
}

// CurrentSession возвращает сессию, установленную NewSessionMiddleware.
func CurrentSession(c fiber.Ctx) (*services.Session, bool) {
	session, ok := c.Locals(LocalSession).(*services.Session)
	return session, ok && session != nil && session.User != nil
}
