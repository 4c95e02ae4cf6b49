package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/tair/social-favorites/internal/app"
	"github.com/tair/social-favorites/internal/events"
	notificationhttp "github.com/tair/social-favorites/internal/notification/delivery/http"
	"github.com/tair/social-favorites/internal/notification/inbox"
	"github.com/tair/social-favorites/kafka"
	"github.com/tair/social-favorites/pkg/auth"
	"github.com/tair/social-favorites/pkg/config"
	"github.com/tair/social-favorites/pkg/database"
	"github.com/tair/social-favorites/pkg/logger"
	"github.com/tair/social-favorites/pkg/tracing"
)

const version = "1.0.0"

func main() {
	cfg := config.Load("favorites-notifier", "8081")

	logger.Init(logger.Options{
		Service:     cfg.ServiceName,
		Development: cfg.IsDevelopment(),
		Level:       cfg.LogLevel,
	})

	if len(cfg.KafkaBrokers) == 0 {
		logger.Logger.Fatal().Msg("KAFKA_BROKERS is required by the notifier")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.InitTracer(cfg.ServiceName, cfg.JaegerEndpoint, version)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tracing.Shutdown(shutdownCtx, tp)
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

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis not reachable yet")
	}

	box := inbox.NewRedisInbox(rdb)
	dispatcher, err := app.InitializeDispatcher(db, app.NewNotifier(box, cfg.SMTP), prometheus.DefaultRegisterer)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize dispatcher")
	}

	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, []string{events.TopicPostCreated})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	consumer.RegisterHandler(events.EventTypePostCreated, dispatcher.Handle)
	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
	}

	fiberApp := notificationhttp.NewApp(notificationhttp.AppConfig{
		Service:     cfg.ServiceName,
		Handler:     notificationhttp.NewNotificationHandler(box),
		Tokens:      auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL),
		RateLimiter: notificationhttp.NewRateLimiter(rdb, 100, time.Minute),
		HealthCheck: func(ctx context.Context) error {
			if err := sqlDB.PingContext(ctx); err != nil {
				return err
			}
			return rdb.Ping(ctx).Err()
		},
		Metrics: promhttp.Handler(),
	})

	go func() {
		logger.Logger.Info().Str("port", cfg.HTTPPort).Msg("Notifier HTTP server started")
		if err := fiberApp.Listen(":" + cfg.HTTPPort); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down notifier...")

	if err := fiberApp.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if err := consumer.Close(); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to close Kafka consumer")
	}
}
