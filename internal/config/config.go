package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for log archives.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// RedisConfig holds the search-result cache settings.
// An empty URL disables the cache entirely.
type RedisConfig struct {
	URL         string
	SearchTTL   time.Duration
	DialTimeout time.Duration
}

// SlackConfig holds the Slack integration settings.
// WebhookURL and SigningSecret are sensitive and have no defaults.
type SlackConfig struct {
	Channel       string
	WebhookURL    string
	SigningSecret string
}

// RegionConfig describes one regional partner API endpoint.
// KeyEnv names the environment variable that carries the API key for the
// region; a region whose key is unset is skipped at request time.
type RegionConfig struct {
	Name    string
	BaseURL string
	KeyEnv  string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Slack    SlackConfig
	Regions  []RegionConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
	Redis    RedisConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Slack: SlackConfig{
			Channel:       getEnv("SLACK_CHANNEL", ""),
			WebhookURL:    getEnv("SLACK_WEBHOOK_URL", ""),
			SigningSecret: getEnv("SLACK_SIGNING_SECRET", ""),
		},
		Regions: []RegionConfig{
			{
				Name:    getEnv("ZN_REGION_1_NAME", "us-east1"),
				BaseURL: getEnv("ZN_REGION_1_BASE_URL", "https://partners-us-east1.zeronetworks.com/api/v1/internal"),
				KeyEnv:  getEnv("ZN_REGION_1_KEY_ENV", "us_east1_key"),
			},
			{
				Name:    getEnv("ZN_REGION_2_NAME", "eu-west12"),
				BaseURL: getEnv("ZN_REGION_2_BASE_URL", "https://partners-eu-west12.zeronetworks.com/api/v1/internal"),
				KeyEnv:  getEnv("ZN_REGION_2_KEY_ENV", "eu_west12_key"),
			},
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "log-exports"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Redis: RedisConfig{
			URL:         getEnv("REDIS_URL", ""),
			SearchTTL:   time.Duration(getEnvInt("REDIS_SEARCH_TTL_SEC", 60)) * time.Second,
			DialTimeout: time.Duration(getEnvInt("REDIS_DIAL_TIMEOUT_SEC", 5)) * time.Second,
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
