// Package blogs содержит HTTP обработчики постов блога.
package blogs

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bloghub/internal/blog/adapters/http/dto"
	"bloghub/internal/blog/adapters/http/middleware"
	"bloghub/internal/blog/domain/entities"
	"bloghub/internal/blog/ports/api"
	"bloghub/pkg/logger"
)

// Константы для логирования.
const (
	ErrorInvalidRequest = "invalid request body"

	MessageDeleted = "Blog deleted successfully"
)

// ParamID - параметр маршрута с ID поста.
const ParamID = "id"

// Handler содержит HTTP обработчики постов.
type Handler struct {
	blogUseCase api.BlogUseCase
}

// NewHandler создает обработчик постов.
func NewHandler(blogUseCase api.BlogUseCase) *Handler {
	return &Handler{blogUseCase: blogUseCase}
}

// requester возвращает ID пользователя сессии.
func requester(c fiber.Ctx) (string, error) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return "", entities.ErrNotAuthenticated
	}
	return session.User.ID, nil
}

// List обрабатывает GET /blogs.
func (h *Handler) List(c fiber.Ctx) error {
	posts, err := h.blogUseCase.ListAll(middleware.RequestContext(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewPostListResponse(posts))
}

// Get обрабатывает GET /blogs/:id.
func (h *Handler) Get(c fiber.Ctx) error {
	post, err := h.blogUseCase.GetByID(middleware.RequestContext(c), c.Params(ParamID))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewPostResponse(post))
}

// Create обрабатывает POST /blogs.
func (h *Handler) Create(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	userID, err := requester(c)
	if err != nil {
		return err
	}

	var req dto.CreatePostRequest
	if err := c.Bind().JSON(&req); err != nil {
		logger.Log(requestCtx).Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return dto.ErrInvalidBody
	}
	if err := req.Validate(); err != nil {
		return err
	}

	post, err := h.blogUseCase.Create(requestCtx, userID, req.Title, req.Content)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPostResponse(post))
}

// Update обрабатывает PUT /blogs/:id.
func (h *Handler) Update(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	userID, err := requester(c)
	if err != nil {
		return err
	}

	// Пустое тело - пустое обновление.
	var req dto.UpdatePostRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			logger.Log(requestCtx).Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
			return dto.ErrInvalidBody
		}
	}

	post, err := h.blogUseCase.Update(requestCtx, userID, c.Params(ParamID), req.Patch())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewPostResponse(post))
}

// Delete обрабатывает DELETE /blogs/:id.
func (h *Handler) Delete(c fiber.Ctx) error {
	userID, err := requester(c)
	if err != nil {
		return err
	}

	if err := h.blogUseCase.Delete(middleware.RequestContext(c), userID, c.Params(ParamID)); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: MessageDeleted})
}
