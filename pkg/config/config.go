package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tair/social-favorites/pkg/database"
)

// Config is the environment-derived configuration shared by all binaries.
type Config struct {
	ServiceName    string
	Environment    string
	LogLevel       string
	JaegerEndpoint string

	HTTPPort string
	GRPCPort string

	Database database.Config

	JWTSecret string
	JWTTTL    time.Duration

	KafkaBrokers []string
	KafkaGroupID string

	RedisAddr     string
	RedisPassword string

	SMTP SMTPConfig

	QueueSize    int
	QueueWorkers int
}

// SMTPConfig holds outbound mail settings; an empty Host disables mail delivery.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// IsDevelopment reports whether console logging should be used
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads an optional .env file and then the process environment
func Load(defaultService, defaultHTTPPort string) *Config {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	return &Config{
		ServiceName:    getEnv("OTEL_SERVICE_NAME", defaultService),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),
		HTTPPort:       getEnv("HTTP_PORT", defaultHTTPPort),
		GRPCPort:       getEnv("GRPC_PORT", "9090"),
		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "favoritesdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		JWTTTL:        getDuration("JWT_TTL", 24*time.Hour),
		KafkaBrokers:  splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaGroupID:  getEnv("KAFKA_GROUP_ID", "notifier"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getInt("SMTP_PORT", 587),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("SMTP_FROM", "no-reply@localhost"),
		},
		QueueSize:    getInt("QUEUE_SIZE", 256),
		QueueWorkers: getInt("QUEUE_WORKERS", 4),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
