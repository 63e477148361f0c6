// Package grpc содержит административный gRPC сервер: health и reflection.
package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"noteblog/internal/blog/config"
	"noteblog/internal/blog/ports/services"
	"noteblog/pkg/logger"
)

// ServiceName - имя сервиса в протоколе health.
const ServiceName = "noteblog.Blog"

// Константы для логирования.
const (
	LogServerStarted   = "gRPC server started"
	LogServerStopping  = "stopping gRPC server"
	LogServeFailed     = "failed to serve gRPC"
	LogListenerClose   = "failed to close listener"
	LogDependencyCheck = "dependency check failed"
	LogStatusChanged   = "health status changed"
)

// Server представляет gRPC сервер.
type Server struct {
	server   *grpc.Server
	health   *health.Server
	address  string
	listener net.Listener
	checkers map[string]services.HealthChecker
	serving  bool
}

// New создает новый экземпляр gRPC сервера. checkers - обязательные зависимости
// (например "database"): при недоступности любой из них статус NOT_SERVING.
func New(cfg *config.GRPCConfig, checkers map[string]services.HealthChecker) *Server {
	s := &Server{
		server:   grpc.NewServer(),
		health:   health.NewServer(),
		address:  cfg.GetAddress(),
		checkers: checkers,
		serving:  true,
	}
	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)
	return s
}

// RegisterService регистрирует дополнительные gRPC сервисы.
func (s *Server) RegisterService(registerFunc func(*grpc.Server)) {
	registerFunc(s.server)
}

// Probe проверяет зависимости и обновляет статус health. Возвращает true, если все доступны.
func (s *Server) Probe(ctx context.Context) bool {
	log := logger.Log(ctx)

	ok := true
	for name, checker := range s.checkers {
		if err := checker.Ping(ctx); err != nil {
			log.Warn(ctx, LogDependencyCheck, zap.String("dependency", name), zap.Error(err))
			ok = false
		}
	}

	status := healthpb.HealthCheckResponse_SERVING
	if !ok {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	if ok != s.serving {
		log.Info(ctx, LogStatusChanged, zap.String("status", status.String()))
		s.serving = ok
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
	return ok
}

// Watch периодически вызывает Probe до отмены ctx.
func (s *Server) Watch(ctx context.Context, interval time.Duration) {
	s.Probe(ctx)
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Probe(ctx)
		}
	}
}

// Serve обслуживает соединения уже открытого listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) {
	s.listener = listener
	go func() {
		if err := s.server.Serve(listener); err != nil {
			logger.Log(ctx).Error(ctx, LogServeFailed, zap.Error(err))
		}
	}()
}

// Start запускает gRPC сервер.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	logger.Log(ctx).Info(ctx, LogServerStarted, zap.String("address", s.address))
	s.Serve(ctx, listener)
	return nil
}

// Stop останавливает gRPC сервер.
func (s *Server) Stop(ctx context.Context) {
	log := logger.Log(ctx)
	log.Info(ctx, LogServerStopping)

	s.health.Shutdown()
	s.server.GracefulStop()
	if s.listener != nil {
		if err := s.listener.Close(); err != nil {
			log.Debug(ctx, LogListenerClose, zap.Error(err))
		}
	}
}
