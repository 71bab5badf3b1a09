package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// CasdoorConfig holds the identity provider connection settings.
type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Cert         string
	Organization string
	Application  string
}

// DatabaseConfig holds Postgres connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// KafkaConfig holds event bus settings.
type KafkaConfig struct {
	Brokers             []string
	ConsumerGroup       string
	AccountDeletedTopic string
	DomainEventTopic    string
}

// StorageConfig holds blob store settings.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	Database DatabaseConfig
	RedisURL string
	Casdoor  CasdoorConfig
	Kafka    KafkaConfig
	Storage  StorageConfig
}

// LoadConfig reads configuration from the environment, honoring a local
// .env file when present.
func LoadConfig() (*Config, error) {
	// .env is optional; real deployments use plain environment variables
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "campus_connect"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		RedisURL: getEnv("REDIS_URL", ""),

		Casdoor: CasdoorConfig{
			Endpoint:     getEnv("CASDOOR_ENDPOINT", ""),
			ClientID:     getEnv("CASDOOR_CLIENT_ID", ""),
			ClientSecret: getEnv("CASDOOR_CLIENT_SECRET", ""),
			Cert:         getEnv("CASDOOR_CERT", ""),
			Organization: getEnv("CASDOOR_ORGANIZATION", ""),
			Application:  getEnv("CASDOOR_APPLICATION", ""),
		},

		Kafka: KafkaConfig{
			Brokers:             splitList(getEnv("KAFKA_BROKERS", "")),
			ConsumerGroup:       getEnv("KAFKA_CONSUMER_GROUP", "campus-service"),
			AccountDeletedTopic: getEnv("KAFKA_ACCOUNT_DELETED_TOPIC", "identity.account_deleted"),
			DomainEventTopic:    getEnv("KAFKA_DOMAIN_EVENT_TOPIC", "campus.events"),
		},

		Storage: StorageConfig{
			Endpoint:  getEnv("STORAGE_ENDPOINT", ""),
			AccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey: getEnv("STORAGE_SECRET_KEY", ""),
			Bucket:    getEnv("STORAGE_BUCKET", "campus-connect"),
			UseSSL:    parseBool(getEnv("STORAGE_USE_SSL", "false")),
			PublicURL: getEnv("STORAGE_PUBLIC_URL", ""),
		},
	}

	if cfg.Casdoor.Endpoint == "" {
		return nil, fmt.Errorf("CASDOOR_ENDPOINT is required")
	}

	return cfg, nil
}

// DSN builds the Postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseBool(value string) bool {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return b
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
