package config

import (
	"fmt"
	"os"
	"strconv"
)

// Store backends selectable via STORE_BACKEND.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Durable store configuration
	StoreBackend string
	SQLitePath   string

	// Redis configuration (used when StoreBackend is "redis")
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Vision model configuration. The per-request API key comes from the
	// caller or the durable store, never from here.
	GeminiModel string
}

// LoadConfig creates a Config from environment variables with development
// defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerHost:    getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		StoreBackend:  getEnv("STORE_BACKEND", StoreSQLite),
		SQLitePath:    getEnv("SQLITE_PATH", "carblens.db"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisURL:      os.Getenv("REDIS_URL"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	switch cfg.StoreBackend {
	case StoreSQLite, StoreRedis, StoreMemory:
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.StoreBackend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
