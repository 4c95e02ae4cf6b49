// Package grpcx builds the gRPC server exposed next to the HTTP API.
package grpcx

import (
	"context"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/tair/social-favorites/pkg/auth"
	"github.com/tair/social-favorites/pkg/logger"
)

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewServer creates a traced gRPC server with the health and reflection services registered
func NewServer(tokens *auth.TokenManager) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			LoggingInterceptor,
			AuthInterceptor(tokens, "/grpc.health.v1.Health/", "/grpc.reflection."),
		),
	)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthSrv)
	reflection.Register(srv)

	return srv, healthSrv
}

// WatchDatabase flips the overall health status with the database ping result until ctx ends
func WatchDatabase(ctx context.Context, healthSrv *health.Server, db Pinger, interval time.Duration) {
	check := func() {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		if err := db.PingContext(pingCtx); err != nil {
			logger.Warn(ctx).Err(err).Msg("Database ping failed")
			healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
			return
		}
		healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	}

	check()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			healthSrv.Shutdown()
			return
		case <-ticker.C:
			check()
		}
	}
}
