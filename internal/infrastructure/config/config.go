package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jengacredit/loanbook/pkg/auth"
	"github.com/jengacredit/loanbook/pkg/kafka"
	"github.com/jengacredit/loanbook/pkg/observability"
	"github.com/jengacredit/loanbook/pkg/postgres"
)

const serviceName = "loanbook"

// Config assembles every runtime setting of the service from environment
// variables.
type Config struct {
	ServiceName string
	GRPCPort    int
	HTTPPort    int

	DB      postgres.Config
	Kafka   kafka.Config
	JWT     auth.JWTConfig
	Log     observability.LogConfig
	Tracing observability.TracingConfig

	// EventTopic is the Kafka topic domain events are published to.
	EventTopic string

	// SweepInterval is how often the overdue sweep runs. Zero disables
	// the scheduled sweep.
	SweepInterval time.Duration

	// MigrationsPath points at the SQL migration files.
	MigrationsPath string
}

// Load reads configuration from the environment with development defaults.
func Load() Config {
	return Config{
		ServiceName: serviceName,
		GRPCPort:    getEnvInt("GRPC_PORT", 9090),
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		DB: postgres.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "loanbook"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "loanbook"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 2)),

			ConnLifetime: getEnvDuration("DB_CONN_LIFETIME", 0),
			ConnIdleTime: getEnvDuration("DB_CONN_IDLE_TIME", 0),
		},
		Kafka: kafka.Config{
			ClientID:      getEnv("KAFKA_CLIENT_ID", serviceName),
			Brokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLEnabled:   getEnvBool("KAFKA_SASL_ENABLED", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", "PLAIN"),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		JWT: auth.JWTConfig{
			Secret:        getEnv("JWT_SECRET", ""),
			PrivateKeyPEM: getEnv("JWT_PRIVATE_KEY", ""),
			PublicKeyPEM:  getEnv("JWT_PUBLIC_KEY", ""),
			Issuer:        getEnv("JWT_ISSUER", serviceName),
			Expiration:    getEnvDuration("JWT_EXPIRATION", 8*time.Hour),
		},
		Log: observability.LogConfig{
			Service: serviceName,
			Level:   getEnv("LOG_LEVEL", "info"),
			Format:  getEnv("LOG_FORMAT", "json"),
		},
		Tracing: observability.TracingConfig{
			ServiceName: serviceName,
			Endpoint:    getEnv("OTLP_ENDPOINT", ""),
			Insecure:    getEnvBool("OTLP_INSECURE", true),
		},
		EventTopic:     getEnv("KAFKA_EVENT_TOPIC", "loanbook.events"),
		SweepInterval:  getEnvDuration("OVERDUE_SWEEP_INTERVAL", time.Hour),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),
	}
}

// Validate refuses configurations that cannot work.
func (c Config) Validate() error {
	if c.DB.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" && c.JWT.PublicKeyPEM == "" {
		return fmt.Errorf("one of JWT_SECRET or JWT_PUBLIC_KEY is required")
	}
	return nil
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
