package grpcx

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/tair/social-favorites/pkg/auth"
)

type flakyDB struct {
	down atomic.Bool
}

func (f *flakyDB) PingContext(context.Context) error {
	if f.down.Load() {
		return errors.New("connection refused")
	}
	return nil
}

func servingStatus(t *testing.T, srv *health.Server) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := srv.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestWatchDatabase(t *testing.T) {
	srv := health.NewServer()
	db := &flakyDB{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		WatchDatabase(ctx, srv, db, 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return servingStatus(t, srv) == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 5*time.Millisecond)

	db.down.Store(true)
	assert.Eventually(t, func() bool {
		return servingStatus(t, srv) == healthpb.HealthCheckResponse_NOT_SERVING
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestAuthInterceptor(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	interceptor := AuthInterceptor(tokens, "/grpc.health.v1.Health/")

	var seen auth.Actor
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		seen, _ = auth.ActorFromContext(ctx)
		return "ok", nil
	}

	t.Run("public method", func(t *testing.T) {
		_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}, handler)
		assert.NoError(t, err)
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/favorites.v1.Favorites/List"}, handler)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := tokens.GenerateToken(7, "alice")
		require.NoError(t, err)

		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
		_, err = interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/favorites.v1.Favorites/List"}, handler)
		require.NoError(t, err)
		assert.Equal(t, uint(7), seen.ID)
	})
}
