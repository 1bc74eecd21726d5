// Package grpc serves the standard gRPC health protocol for the web shell.
// The session's bootstrap phase drives the serving status.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/vitalsync/internal/client/models"
	"github.com/dmitrijs2005/vitalsync/internal/logging"
)

// ServiceName is the health service reporting the session. The empty name
// (overall server health) follows it too.
const ServiceName = "vitalsync.Session"

// PhaseSource is the part of the session the health server follows.
type PhaseSource interface {
	Phase() models.Phase
	Subscribe() (<-chan models.AuthState, func())
}

type GRPCServer struct {
	address string
	session PhaseSource
	health  *health.Server
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, s PhaseSource) *GRPCServer {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &GRPCServer{
		address: a,
		session: s,
		health:  hs,
		logger:  l.With("module", "grpc_server"),
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	followCtx, stop := context.WithCancel(ctx)
	defer stop()
	go s.follow(followCtx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	return nil
}
