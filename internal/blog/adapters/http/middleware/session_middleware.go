package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bloghub/internal/blog/ports/api"
	"bloghub/pkg/logger"
)

// TokenCookie - cookie с сессионным токеном.
const TokenCookie = "token"

const bearerPrefix = "Bearer "

// ExtractToken берет токен из заголовка Authorization или, если его нет, из cookie.
func ExtractToken(c fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, bearerPrefix) {
		if token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)); token != "" {
			return token
		}
	}
	return c.Cookies(TokenCookie)
}

// NewSessionMiddleware проверяет сессию и сохраняет ее в fiber.Locals.
func NewSessionMiddleware(sessions api.SessionUseCase) fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := RequestContext(c)

		session, err := sessions.Authenticate(requestCtx, ExtractToken(c))
		if err != nil {
			logger.Log(requestCtx).Debug(requestCtx, "session rejected",
				zap.String("path", c.Path()), zap.Error(err))
			return err
		}

		c.Locals(LocalSession, session)
		return c.Next()
	}
}
