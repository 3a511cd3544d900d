// Package users содержит HTTP обработчики профиля пользователя.
package users

import (
	"github.com/gofiber/fiber/v3"

	"bloghub/internal/blog/adapters/http/dto"
	"bloghub/internal/blog/adapters/http/middleware"
	"bloghub/internal/blog/domain/entities"
	"bloghub/internal/blog/ports/api"
)

// Handler содержит HTTP обработчики профиля.
type Handler struct {
	profileUseCase api.ProfileUseCase
}

// NewHandler создает обработчик профиля.
func NewHandler(profileUseCase api.ProfileUseCase) *Handler {
	return &Handler{profileUseCase: profileUseCase}
}

// Me обрабатывает GET /users/me.
func (h *Handler) Me(c fiber.Ctx) error {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return entities.ErrNotAuthenticated
	}

	profile, err := h.profileUseCase.GetCurrentProfile(middleware.RequestContext(c), session.User.ID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewProfileResponse(profile))
}
