// Package http содержит HTTP сервер сервиса блогов.
package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"go.uber.org/zap"

	"bloghub/internal/blog/adapters/http/auth"
	"bloghub/internal/blog/adapters/http/blogs"
	"bloghub/internal/blog/adapters/http/dto"
	"bloghub/internal/blog/adapters/http/middleware"
	"bloghub/internal/blog/adapters/http/users"
	"bloghub/internal/blog/config"
	"bloghub/internal/blog/ports/api"
	"bloghub/pkg/logger"
)

// Константы для ответов служебных маршрутов.
const (
	AppName        = "BlogHub"
	BannerText     = "BlogHub API is running"
	StatusOK       = "ok"
	StatusNotReady = "unavailable"

	readinessTimeout = 2 * time.Second
)

// Pinger проверяет готовность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies - сценарии использования, которые обслуживает HTTP сервер.
type Dependencies struct {
	Auth    api.AuthUseCase
	Session api.SessionUseCase
	Blog    api.BlogUseCase
	Profile api.ProfileUseCase
	Store   Pinger
}

// NewApp создает fiber приложение со всеми маршрутами.
func NewApp(cfg *config.HTTPConfig, deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      AppName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: ErrorHandler,
	})

	SetupRouter(app, cfg, deps)
	return app
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, cfg *config.HTTPConfig, deps Dependencies) {
	authHandler := auth.NewHandler(deps.Auth, cfg.SecureCookie)
	blogHandler := blogs.NewHandler(deps.Blog)
	userHandler := users.NewHandler(deps.Profile)
	session := middleware.NewSessionMiddleware(deps.Session)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(cors.New())

	// Служебные маршруты.
	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString(BannerText)
	})
	app.Get("/livez", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": StatusOK})
	})
	app.Get("/readyz", readiness(deps.Store))

	var router fiber.Router = app
	if prefix := strings.TrimRight(cfg.BasePath, "/"); prefix != "" {
		router = app.Group(prefix)
	}

	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout)

	// Чтение постов публичное, изменение требует сессии.
	// fiber выполняет middleware маршрута до его обработчика.
	blogRoutes := router.Group("/blogs")
	blogRoutes.Get("/", blogHandler.List)
	blogRoutes.Get("/:"+blogs.ParamID, blogHandler.Get)
	blogRoutes.Post("/", blogHandler.Create, session)
	blogRoutes.Put("/:"+blogs.ParamID, blogHandler.Update, session)
	blogRoutes.Delete("/:"+blogs.ParamID, blogHandler.Delete, session)

	// Защищенные маршруты.
	userRoutes := router.Group("/users")
	userRoutes.Use(session)
	userRoutes.Get("/me", userHandler.Me)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: MessageRouteNotFound})
	})
}

func readiness(store Pinger) fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := middleware.RequestContext(c)
		pingCtx, cancel := context.WithTimeout(requestCtx, readinessTimeout)
		defer cancel()

		if err := store.Ping(pingCtx); err != nil {
			logger.Log(requestCtx).Warn(requestCtx, "store is not ready", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": StatusNotReady})
		}
		return c.JSON(fiber.Map{"status": StatusOK})
	}
}
