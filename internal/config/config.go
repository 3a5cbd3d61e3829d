package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage drivers selected by the DATABASE_URL scheme.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongodb"
	DriverSQLite   = "sqlite"
)

type Config struct {
	DatabaseURL          string
	MongoDatabase        string
	RedisAddr            string
	CacheTTL             time.Duration
	Port                 string
	AppEnv               string
	LogLevel             slog.Level
	JWTSecret            string
	JWTIssuer            string
	TokenTTL             time.Duration
	BcryptCost           int
	OtelExporterEndpoint string
	CORSOrigins          []string
}

// Load reads configuration from environment variables.
// JWT_SECRET and DATABASE_URL are required in every environment.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		MongoDatabase:        getenv("MONGO_DATABASE", "expense_tracker"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		Port:                 getenv("PORT", "8080"),
		AppEnv:               getenv("APP_ENV", "production"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		JWTIssuer:            getenv("JWT_ISSUER", "expense-tracker"),
		OtelExporterEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		CORSOrigins:          parseCSV(getenv("CORS_ALLOWED_ORIGINS", "*")),
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if _, err := cfg.Driver(); err != nil {
		return Config{}, err
	}

	var err error
	if cfg.TokenTTL, err = duration("TOKEN_TTL", 48*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = duration("CACHE_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}

	cfg.BcryptCost = 10
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cfg.BcryptCost, err = strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// Driver reports which storage backend DATABASE_URL points at.
func (c Config) Driver() (string, error) {
	switch {
	case strings.HasPrefix(c.DatabaseURL, "postgres://"), strings.HasPrefix(c.DatabaseURL, "postgresql://"):
		return DriverPostgres, nil
	case strings.HasPrefix(c.DatabaseURL, "mongodb://"), strings.HasPrefix(c.DatabaseURL, "mongodb+srv://"):
		return DriverMongo, nil
	case strings.HasPrefix(c.DatabaseURL, "sqlite://"), strings.HasPrefix(c.DatabaseURL, "file:"):
		return DriverSQLite, nil
	}
	return "", errors.New("DATABASE_URL has an unsupported scheme")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseCSV(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
