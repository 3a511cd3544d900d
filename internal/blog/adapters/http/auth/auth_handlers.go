// Package auth содержит HTTP обработчики регистрации, входа и выхода.
package auth

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bloghub/internal/blog/adapters/http/dto"
	"bloghub/internal/blog/adapters/http/middleware"
	"bloghub/internal/blog/domain/services"
	"bloghub/internal/blog/ports/api"
	"bloghub/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister = "auth handler: register"
	LogHandlerLogin    = "auth handler: login"
	LogHandlerLogout   = "auth handler: logout"

	ErrorInvalidRequest = "invalid request body"

	MessageLoggedOut = "Logged out successfully"
)

// Handler содержит HTTP обработчики аутентификации.
type Handler struct {
	authUseCase  api.AuthUseCase
	secureCookie bool
}

// NewHandler создает обработчик. secureCookie выставляет флаг Secure у cookie токена.
func NewHandler(authUseCase api.AuthUseCase, secureCookie bool) *Handler {
	return &Handler{authUseCase: authUseCase, secureCookie: secureCookie}
}

// Register обрабатывает POST /auth/register.
func (h *Handler) Register(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := c.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return dto.ErrInvalidBody
	}
	if err := req.Validate(); err != nil {
		return err
	}

	result, err := h.authUseCase.Register(requestCtx, req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setTokenCookie(c, result)
	return c.Status(fiber.StatusCreated).JSON(dto.NewAuthResponse(result))
}

// Login обрабатывает POST /auth/login.
func (h *Handler) Login(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return dto.ErrInvalidBody
	}
	if err := req.Validate(); err != nil {
		return err
	}

	result, err := h.authUseCase.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setTokenCookie(c, result)
	return c.Status(fiber.StatusOK).JSON(dto.NewAuthResponse(result))
}

// Logout обрабатывает POST /auth/logout. Токен не отзывается, cookie очищается.
func (h *Handler) Logout(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerLogout)

	if err := h.authUseCase.Logout(requestCtx); err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: MessageLoggedOut})
}

func (h *Handler) setTokenCookie(c fiber.Ctx, result *services.AuthResult) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    result.Token,
		Path:     "/",
		Expires:  result.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
