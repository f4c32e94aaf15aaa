package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Session  SessionConfig
	Google   GoogleConfig
	Storage  StorageConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all (e.g. http://localhost:3000,http://localhost:3001)
}

// UpstreamConfig holds settings for the remote academy backend API.
type UpstreamConfig struct {
	BaseURL    string // e.g. https://api.learnova.example/api/v1
	TimeoutSec int
}

// RedisConfig holds Redis connection settings (session persistence).
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DatabaseConfig holds PostgreSQL settings for the support-thread store.
// An empty URL disables Postgres; the seeded in-memory store is used instead.
type DatabaseConfig struct {
	URL string
}

// SessionConfig holds gateway session token settings.
type SessionConfig struct {
	Secret   string
	TTLHours int
}

// GoogleConfig holds the OAuth client ID used to verify Google ID tokens.
type GoogleConfig struct {
	ClientID string
}

// StorageConfig holds CDN and S3 parameters for resolving and signing asset URLs.
type StorageConfig struct {
	Region               string
	AccessKeyID          string
	SecretAccessKey      string
	AssetsBucket         string
	CDNBaseURL           string // public base for course/event images, e.g. https://cdn.learnova.example
	PresignExpireMinutes int
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			ReadTimeout:        getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout:       getEnvInt("WRITE_TIMEOUT_SEC", 30),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001"),
		},
		Upstream: UpstreamConfig{
			BaseURL:    strings.TrimRight(getEnv("UPSTREAM_BASE_URL", "http://localhost:5000/api/v1"), "/"),
			TimeoutSec: getEnvInt("UPSTREAM_TIMEOUT_SEC", 15),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Session: SessionConfig{
			Secret:   getEnv("SESSION_SECRET", "change-me-in-production"),
			TTLHours: getEnvInt("SESSION_TTL_HOURS", 24),
		},
		Google: GoogleConfig{
			ClientID: getEnv("GOOGLE_CLIENT_ID", ""),
		},
		Storage: StorageConfig{
			Region:               getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:          getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey:      getEnv("AWS_SECRET_ACCESS_KEY", ""),
			AssetsBucket:         getEnv("AWS_S3_ASSETS_BUCKET", "learnova-assets"),
			CDNBaseURL:           strings.TrimRight(getEnv("CDN_BASE_URL", ""), "/"),
			PresignExpireMinutes: getEnvInt("AWS_PRESIGN_EXPIRE_MINUTES", 15),
		},
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
