package grpc

import (
	"context"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/vitalsync/internal/client/models"
)

// statusFor reports NOT_SERVING while the bootstrap check is in flight and
// SERVING once it has resolved, whichever way.
func statusFor(p models.Phase) healthpb.HealthCheckResponse_ServingStatus {
	if p == models.PhaseChecking {
		return healthpb.HealthCheckResponse_NOT_SERVING
	}
	return healthpb.HealthCheckResponse_SERVING
}

func (s *GRPCServer) setStatus(ctx context.Context, p models.Phase) {
	st := statusFor(p)
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
	s.logger.Debug(ctx, "health status", "phase", p.String(), "status", st.String())
}

// follow mirrors the session phase into the health server until ctx is
// done or the subscription closes.
func (s *GRPCServer) follow(ctx context.Context) {
	updates, cancel := s.session.Subscribe()
	defer cancel()

	s.setStatus(ctx, s.session.Phase())
	for {
		select {
		case st, ok := <-updates:
			if !ok {
				return
			}
			s.setStatus(ctx, st.Phase())
		case <-ctx.Done():
			return
		}
	}
}
