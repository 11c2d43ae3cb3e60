package config

import (
	"os"
	"strconv"
	"time"
)

// DefaultStoreURL is the hosted mock API the dashboard was built against.
const DefaultStoreURL = "https://6874ce63dd06792b9c954fc7.mockapi.io/api/v1/users"

type Config struct {
	// Dashboard
	Addr          string
	StoreURL      string
	StoreTimeout  time.Duration
	PageSize      int
	DeleteConfirm bool
	Timezone      string

	// Stand-in store
	StoreAddr   string
	DatabaseURL string

	// Shared
	LogLevel    string
	CORSOrigins string
	SentryDSN   string
	Environment string
}

func Load() *Config {
	return &Config{
		Addr:          getEnv("DASHBOARD_ADDR", ":8080"),
		StoreURL:      getEnv("STORE_URL", DefaultStoreURL),
		StoreTimeout:  parseDuration(getEnv("STORE_TIMEOUT", "0s")),
		PageSize:      getEnvInt("PAGE_SIZE", 10),
		DeleteConfirm: getEnvBool("DELETE_CONFIRM", true),
		Timezone:      getEnv("DASHBOARD_TIMEZONE", "Local"),

		StoreAddr:   getEnv("STORE_ADDR", ":8081"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		SentryDSN:   getEnv("SENTRY_DSN", ""),
		Environment: getEnv("APP_ENV", "development"),
	}
}

// Location resolves Timezone, falling back to the process's local zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

// parseDuration treats anything unparseable as "no timeout".
func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0
	}
	return d
}
