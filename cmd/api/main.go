package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm"

	_ "github.com/tair/social-favorites/docs"
	"github.com/tair/social-favorites/internal/app"
	"github.com/tair/social-favorites/internal/events"
	"github.com/tair/social-favorites/internal/notification/inbox"
	"github.com/tair/social-favorites/internal/notification/queue"
	"github.com/tair/social-favorites/kafka"
	"github.com/tair/social-favorites/pkg/auth"
	"github.com/tair/social-favorites/pkg/config"
	"github.com/tair/social-favorites/pkg/database"
	"github.com/tair/social-favorites/pkg/grpcx"
	"github.com/tair/social-favorites/pkg/httpx"
	"github.com/tair/social-favorites/pkg/logger"
	"github.com/tair/social-favorites/pkg/tracing"
)

const version = "1.0.0"

func main() {
	cfg := config.Load("favorites-api", "8080")

	logger.Init(logger.Options{
		Service:     cfg.ServiceName,
		Development: cfg.IsDevelopment(),
		Level:       cfg.LogLevel,
	})

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting favorites API")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.InitTracer(cfg.ServiceName, cfg.JaegerEndpoint, version)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
		}
	}()

	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	if err := app.Migrate(ctx, db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	registry := prometheus.DefaultRegisterer
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	publisher, closePublisher := newPublisher(cfg, db, registry)
	defer closePublisher()

	api, err := app.InitializeAPI(db, tokens, publisher, registry)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handlers")
	}

	router := mux.NewRouter()
	api.RegisterRoutes(router)
	httpx.RegisterHealthCheck(router, cfg.ServiceName, sqlDB)
	httpx.RegisterSwaggerDocs(router)
	router.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           otelhttp.NewHandler(c.Handler(httpx.LoggingMiddleware(router)), cfg.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer, healthSrv := grpcx.NewServer(tokens)
	go grpcx.WatchDatabase(ctx, healthSrv, sqlDB, 15*time.Second)

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("docs", "/swagger/index.html").
			Msg("HTTP server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	go func() {
		lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
		if err != nil {
			logger.Logger.Fatal().Err(err).Str("port", cfg.GRPCPort).Msg("Failed to listen")
		}
		logger.Logger.Info().Str("port", cfg.GRPCPort).Msg("gRPC server started")
		if err := grpcServer.Serve(lis); err != nil {
			logger.Logger.Error().Err(err).Msg("gRPC server stopped")
		}
	}()

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down servers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	grpcServer.GracefulStop()
}

// newPublisher sends post.created to Kafka when brokers are configured and
// otherwise dispatches notifications on in-process workers.
func newPublisher(cfg *config.Config, db *gorm.DB, registry prometheus.Registerer) (events.PostCreatedPublisher, func()) {
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
		if err != nil {
			logger.Logger.Fatal().Err(err).Strs("brokers", cfg.KafkaBrokers).Msg("Failed to create Kafka publisher")
		}
		return publisher, func() {
			if err := publisher.Close(); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to close Kafka publisher")
			}
		}
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	notifier := app.NewNotifier(inbox.NewRedisInbox(rdb), cfg.SMTP)

	dispatcher, err := app.InitializeDispatcher(db, notifier, registry)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize dispatcher")
	}

	q := queue.New(cfg.QueueSize, cfg.QueueWorkers, dispatcher.Handle)
	logger.Logger.Info().
		Int("size", cfg.QueueSize).
		Int("workers", cfg.QueueWorkers).
		Msg("Kafka not configured, dispatching notifications in process")

	return q, func() {
		q.Close()
		_ = rdb.Close()
	}
}
