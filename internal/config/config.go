package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort              string
	ServerReadHeaderTimeout time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	RequestTimeout          time.Duration
	DatabaseURL             string
	DBMaxConns              int32
	DBMinConns              int32
	JWTSecret               string
	JWTAccessTTL            time.Duration
	CORSOrigins             []string
	CookieSecure            bool
	RateLimitRPM            int
	AuthRateLimitRPM        int
	AdminName               string
	AdminEmail              string
	AdminPassword           string
	LogFormat               string
	LogLevel                string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:              getEnv("SERVER_PORT", "8080"),
		ServerReadHeaderTimeout: getDuration("SERVER_READ_HEADER_TIMEOUT", 10*time.Second),
		ServerWriteTimeout:      getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:       getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:          getDuration("REQUEST_TIMEOUT", 30*time.Second),
		DatabaseURL:             strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:              int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:              int32(getInt("DB_MIN_CONNS", 1)),
		JWTSecret:               strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTAccessTTL:            getDuration("JWT_ACCESS_TTL", 299*time.Second),
		CORSOrigins:             splitCSV(getEnv("FRONTEND_URL", "http://localhost:5173")),
		CookieSecure:            getBool("COOKIE_SECURE", true),
		RateLimitRPM:            getInt("RATE_LIMIT_RPM", 100),
		AuthRateLimitRPM:        getInt("AUTH_RATE_LIMIT_RPM", 10),
		AdminName:               getEnv("ADMIN_NAME", "Administrator"),
		AdminEmail:              strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminPassword:           os.Getenv("ADMIN_PASSWORD"),
		LogFormat:               strings.ToLower(getEnv("LOG_FORMAT", "pretty")),
		LogLevel:                strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if c.JWTAccessTTL < time.Second {
		return fmt.Errorf("JWT_ACCESS_TTL must be at least one second")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS (%d)", c.DBMaxConns)
	}

	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("FRONTEND_URL cannot be empty")
	}

	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}

	switch c.LogFormat {
	case "pretty", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be pretty or json, got %q", c.LogFormat)
	}

	return nil
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
