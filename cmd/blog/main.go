package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"bloghub/internal/blog/adapters/cache"
	grpcServer "bloghub/internal/blog/adapters/grpc"
	httpServer "bloghub/internal/blog/adapters/http"
	"bloghub/internal/blog/adapters/services"
	"bloghub/internal/blog/app"
	"bloghub/internal/blog/config"
	"bloghub/internal/blog/db"
	cachePorts "bloghub/internal/blog/ports/cache"
	"bloghub/internal/blog/ports/repositories"
	"bloghub/internal/blog/resilience"
	"bloghub/pkg/logger"
	"bloghub/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "BLOG_LOGGER_MODE"
	EnvLoggerLevel = "BLOG_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrOpenStore            = "failed to open storage"
	ErrCreateRedisClient    = "failed to create Redis client, continuing without cache"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrStartGRPCServer      = "failed to start gRPC health server"
	ErrShutdown             = "shutdown finished with errors"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "blog service started"
	LogServiceShutdownDone = "blog service shutdown complete"
	LogInitStore           = "initializing storage"
	LogInitCache           = "initializing cache"
	LogInitServices        = "initializing services"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingCache        = "closing cache"
	LogClosingStore        = "closing storage"
)

const storeProbeInterval = 10 * time.Second

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == string(logger.Production) {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}
	logger.SetGlobalLogger(log)

	ctx := logger.ContextWithRequestID(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := logger.Log(ctx).Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		exitCode = run(ctx)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func run(ctx context.Context) int {
	log := logger.Log(ctx)

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		return 1
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
		return 1
	}
	logger.SetGlobalLogger(finalLogger)
	log = finalLogger

	log.Info(ctx, LogServiceStarted,
		zap.String("environment", string(cfg.Logging.GetEnvironment())),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	log.Info(ctx, LogInitStore, zap.String("driver", cfg.Storage.Driver))
	var store repositories.Store
	err = resilience.NewRetry("storage", resilience.DefaultRetryConfig()).Execute(ctx, func(ctx context.Context) error {
		var openErr error
		store, openErr = db.Open(ctx, cfg)
		return openErr
	})
	if err != nil {
		log.Error(ctx, ErrOpenStore, zap.Error(err))
		return 1
	}

	log.Info(ctx, LogInitCache, zap.Bool("enabled", cfg.Redis.Enabled))
	postCache := newCache(ctx, &cfg.Redis)

	log.Info(ctx, LogInitServices)
	factory := services.NewServiceFactory(cfg.JWT.SecretKey, cfg.JWT.GetTokenTTL(), cfg.JWT.BCryptCost)
	users := store.UserRepository()
	posts := store.PostRepository()

	fiberApp := httpServer.NewApp(&cfg.HTTP, httpServer.Dependencies{
		Auth:    app.NewAuthUseCase(users, factory.PasswordService(), factory.TokenService()),
		Session: app.NewSessionUseCase(users, factory.TokenService()),
		Blog:    app.NewBlogUseCase(posts, postCache, cfg.Redis.DefaultTTL),
		Profile: app.NewProfileUseCase(users, posts),
		Store:   store,
	})

	log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
	serveCtx := serve(ctx, func() error {
		return fiberApp.Listen(cfg.HTTP.GetAddress())
	})

	hooks := []shutdown.Hook{
		func(ctx context.Context) error {
			log.Info(ctx, LogStoppingHTTP)
			return fiberApp.ShutdownWithContext(ctx)
		},
	}

	if cfg.GRPC.Enabled {
		health := grpcServer.New(&cfg.GRPC)
		if err := health.Start(ctx); err != nil {
			log.Error(ctx, ErrStartGRPCServer, zap.Error(err))
			return 1
		}

		watchCtx, stopWatch := context.WithCancel(ctx)
		go health.WatchStore(watchCtx, store, storeProbeInterval)

		hooks = append(hooks, func(ctx context.Context) error {
			stopWatch()
			health.Stop(ctx)
			return nil
		})
	}

	exitCode := 0
	if err := shutdown.WaitContext(serveCtx, cfg.Shutdown.GetTimeout(), hooks...); err != nil {
		log.Error(ctx, ErrShutdown, zap.Error(err))
		exitCode = 1
	}
	if cause := context.Cause(serveCtx); errors.Is(cause, errListenHTTP) {
		log.Error(ctx, ErrStartHTTPServer, zap.Error(cause))
		exitCode = 1
	}

	log.Info(ctx, LogClosingCache)
	if err := postCache.Close(); err != nil {
		log.Error(ctx, ErrShutdown, zap.Error(err))
	}
	log.Info(ctx, LogClosingStore)
	if err := store.Close(ctx); err != nil {
		log.Error(ctx, ErrShutdown, zap.Error(err))
	}

	log.Info(ctx, LogServiceShutdownDone)
	return exitCode
}

var errListenHTTP = errors.New(ErrStartHTTPServer)

// serve запускает listen в горутине. Возвращенный контекст отменяется,
// если listen завершился с ошибкой; причина оборачивает errListenHTTP.
func serve(ctx context.Context, listen func() error) context.Context {
	serveCtx, cancel := context.WithCancelCause(ctx)
	go func() {
		if err := listen(); err != nil {
			cancel(fmt.Errorf("%w: %w", errListenHTTP, err))
		}
	}()
	return serveCtx
}

// newCache подключает Redis за Circuit Breaker. Без Redis посты читаются из хранилища.
func newCache(ctx context.Context, cfg *config.RedisConfig) cachePorts.Cache {
	if !cfg.Enabled {
		return cache.Noop{}
	}

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	if err != nil {
		logger.Log(ctx).Warn(ctx, ErrCreateRedisClient, zap.Error(err))
		return cache.Noop{}
	}

	breaker := resilience.NewCircuitBreaker("redis", resilience.DefaultCircuitBreakerConfig())
	return cache.NewGuardedCache(redisCache, breaker)
}
