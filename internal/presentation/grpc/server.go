package grpc

import (
	"fmt"
	"log/slog"
	"net"
	"os"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/jengacredit/loanbook/pkg/auth"
	"github.com/jengacredit/loanbook/pkg/tlsutil"
)

// Server wraps the gRPC server with health checking and graceful shutdown.
type Server struct {
	grpcServer *grpclib.Server
	health     *health.Server
	logger     *slog.Logger
}

// NewServer builds the gRPC server with the auth interceptor installed.
// Health checks skip authentication so orchestrators can probe freely.
func NewServer(handler *LoanHandler, logger *slog.Logger, jwtService *auth.JWTService) (*Server, error) {
	skipMethods := []string{
		"/grpc.health.v1.Health/Check",
		"/grpc.health.v1.Health/Watch",
	}

	opts := []grpclib.ServerOption{
		grpclib.ChainUnaryInterceptor(
			auth.UnaryAuthInterceptor(jwtService, skipMethods),
		),
	}

	certFile := os.Getenv("GRPC_TLS_CERT_FILE")
	keyFile := os.Getenv("GRPC_TLS_KEY_FILE")
	if certFile != "" && keyFile != "" {
		creds, err := tlsutil.ServerTLSConfig(certFile, keyFile)
		if err != nil {
			return nil, fmt.Errorf("load TLS credentials: %w", err)
		}
		opts = append(opts, grpclib.Creds(creds))
		logger.Info("gRPC TLS enabled", slog.String("cert_file", certFile))
	}

	grpcServer := grpclib.NewServer(opts...)
	RegisterLoanServiceServer(grpcServer, handler)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("loanbook", healthpb.HealthCheckResponse_SERVING)

	if os.Getenv("GRPC_REFLECTION") == "true" {
		reflection.Register(grpcServer)
	}

	return &Server{
		grpcServer: grpcServer,
		health:     healthServer,
		logger:     logger,
	}, nil
}

// Serve blocks listening on addr until the server stops.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.logger.Info("gRPC server listening", slog.String("addr", addr))
	return s.grpcServer.Serve(lis)
}

// GracefulStop drains in-flight RPCs and shuts the server down.
func (s *Server) GracefulStop() {
	s.health.SetServingStatus("loanbook", healthpb.HealthCheckResponse_NOT_SERVING)
	s.grpcServer.GracefulStop()
}
