// Package health runs the gRPC health service used by orchestrators that
// probe over gRPC rather than HTTP.
package health

import (
	"context"
	"fmt"
	"net"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	grpchealth "google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

// ServiceName is reported alongside the overall status
const ServiceName = "pokedex.v1alpha1.SpeciesService"

// Config contains configuration options for the health server.
type Config struct {
	// Logger (optional)
	Logger *zap.Logger
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return nil
}

// Server serves grpc.health.v1.Health
type Server struct {
	grpcServer *grpc.Server
	health     *grpchealth.Server
	logger     *zap.Logger
}

// New creates a health server. It reports NOT_SERVING until SetServing is called.
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid health config")
	}

	logger := cfg.Logger.With(zap.String("component", "grpc-health"))
	interceptorLogger := InterceptorLogger(logger)
	recoveryOpt := grpc_recovery.WithRecoveryHandler(func(p any) error {
		logger.Error("gRPC handler panicked", zap.Any("panic", p))
		return status.Errorf(codes.Internal, "internal error")
	})

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(interceptorLogger),
			grpc_recovery.UnaryServerInterceptor(recoveryOpt),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(interceptorLogger),
			grpc_recovery.StreamServerInterceptor(recoveryOpt),
		),
	)

	healthServer := grpchealth.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	reflection.Register(srv)

	s := &Server{
		grpcServer: srv,
		health:     healthServer,
		logger:     logger,
	}
	s.SetServing(false)

	return s, nil
}

// SetServing flips the overall and per-service status
func (s *Server) SetServing(serving bool) {
	st := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		st = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

// Serve blocks serving on lis until Shutdown is called
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("gRPC health server starting", zap.String("addr", lis.Addr().String()))
	if err := s.grpcServer.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// Shutdown reports NOT_SERVING and stops gracefully, forcing a stop when
// ctx ends first.
func (s *Server) Shutdown(ctx context.Context) {
	s.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-ctx.Done():
		s.logger.Warn("Graceful shutdown timeout exceeded, forcing stop")
		s.grpcServer.Stop()
		<-stopped
	case <-stopped:
		s.logger.Info("gRPC health server stopped gracefully")
	}
}
