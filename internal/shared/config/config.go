package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Env                 string
	Host                string
	Port                string
	CORSAllowOrigin     []string
	LogLevel            string
	DatabaseURL         string
	DBHost              string
	DBPort              int
	DBName              string
	DBUser              string
	DBPassword          string
	DBSSLMode           string
	DBProbeTimeout      time.Duration
	HealthProbeInterval time.Duration
	ShutdownTimeout     time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Env:                 normalizeEnv(getEnv("ENV", "dev")),
		Host:                getEnv("HOST", "0.0.0.0"),
		Port:                getEnv("PORT", "8082"),
		CORSAllowOrigin:     splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		LogLevel:            strings.ToLower(getEnv("LOG_LEVEL", "info")),
		DatabaseURL:         strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnvInt("DB_PORT", 5432),
		DBName:              getEnv("DB_NAME", "ai-engine-db"),
		DBUser:              getEnv("DB_USER", "dev"),
		DBPassword:          getEnv("DB_PASSWORD", "dev"),
		DBSSLMode:           getEnv("DB_SSLMODE", "disable"),
		DBProbeTimeout:      getEnvDuration("DB_PROBE_TIMEOUT", 3*time.Second),
		HealthProbeInterval: getEnvDuration("HEALTH_PROBE_INTERVAL", 30*time.Second),
		ShutdownTimeout:     getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// Validate reports the first configuration problem that would prevent a clean boot.
func (c Config) Validate() error {
	port, err := strconv.Atoi(strings.TrimPrefix(c.Port, ":"))
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	if c.DatabaseURL == "" {
		if strings.TrimSpace(c.DBHost) == "" {
			return errors.New("DB_HOST is required when DATABASE_URL is empty")
		}
		if strings.TrimSpace(c.DBName) == "" {
			return errors.New("DB_NAME is required when DATABASE_URL is empty")
		}
		if c.DBPort <= 0 || c.DBPort > 65535 {
			return fmt.Errorf("invalid DB_PORT %d", c.DBPort)
		}
		if c.Env == "production" && c.DBPassword == "dev" {
			return errors.New("DB_PASSWORD must be set in production")
		}
	}
	if c.DBProbeTimeout <= 0 {
		return errors.New("DB_PROBE_TIMEOUT must be positive")
	}
	if c.HealthProbeInterval <= 0 {
		return errors.New("HEALTH_PROBE_INTERVAL must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// ListenAddr joins Host and Port into a dialable listen address.
func (c Config) ListenAddr() string {
	port := strings.TrimPrefix(c.Port, ":")
	if port == "" {
		port = "8082"
	}
	return c.Host + ":" + port
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		// -1 is rejected by Validate.
		return -1
	}
	return val
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
