// Package grpc предоставляет gRPC сервер проверки здоровья сервиса блогов.
package grpc

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"bloghub/internal/blog/config"
	"bloghub/pkg/logger"
)

// Константы для логирования.
const (
	LogServerStarting = "Starting gRPC health server"
	LogServerStarted  = "gRPC health server started"
	LogServerStopping = "Stopping gRPC health server"
	LogServerStopped  = "gRPC health server stopped"
	LogHealthChanged  = "health status changed"
	ErrServerStart    = "failed to start gRPC server"
)

// ServiceName - имя сервиса в протоколе grpc.health.v1.
const ServiceName = "bloghub.Blog"

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server представляет gRPC сервер со службой grpc.health.v1.Health.
type Server struct {
	cfg    *config.GRPCConfig
	server *grpc.Server
	health *health.Server

	mu       sync.Mutex
	listener net.Listener
	serving  bool
}

// New создает сервер. До первой проверки хранилища статус NOT_SERVING.
func New(cfg *config.GRPCConfig) *Server {
	s := &Server{
		cfg:    cfg,
		server: grpc.NewServer(),
		health: health.NewServer(),
	}
	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)
	s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// Start начинает принимать соединения.
func (s *Server) Start(ctx context.Context) error {
	log := logger.Log(ctx)
	address := s.cfg.GetAddress()

	log.Info(ctx, LogServerStarting, zap.String("address", address))

	listener, err := net.Listen("tcp", address)
	if err != nil {
		log.Error(ctx, ErrServerStart, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrServerStart, err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.server.Serve(listener); err != nil {
			log.Error(ctx, ErrServerStart, zap.Error(err))
		}
	}()

	log.Info(ctx, LogServerStarted, zap.String("address", listener.Addr().String()))
	return nil
}

// Addr возвращает фактический адрес сервера после Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// CheckStore обновляет статус по результату проверки хранилища.
func (s *Server) CheckStore(ctx context.Context, store Pinger) {
	err := store.Ping(ctx)
	serving := err == nil

	s.mu.Lock()
	changed := serving != s.serving
	s.serving = serving
	s.mu.Unlock()

	if !changed {
		return
	}
	if serving {
		s.setStatus(healthpb.HealthCheckResponse_SERVING)
		logger.Log(ctx).Info(ctx, LogHealthChanged, zap.Bool("serving", true))
		return
	}
	s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
	logger.Log(ctx).Warn(ctx, LogHealthChanged, zap.Bool("serving", false), zap.Error(err))
}

// WatchStore проверяет хранилище каждые interval, пока ctx не отменен.
func (s *Server) WatchStore(ctx context.Context, store Pinger, interval time.Duration) {
	s.CheckStore(ctx, store)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.CheckStore(ctx, store)
		}
	}
}

// Stop переводит все службы в NOT_SERVING и останавливает сервер.
func (s *Server) Stop(ctx context.Context) {
	log := logger.Log(ctx)

	log.Info(ctx, LogServerStopping)
	s.health.Shutdown()
	s.server.GracefulStop()
	log.Info(ctx, LogServerStopped)
}

func (s *Server) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}
