// Package config resolves runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Store backends and submission policies accepted by the environment.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"

	PolicyReplace = "replace"
	PolicyMerge   = "merge"
)

// Config is the resolved runtime configuration for the fee service.
type Config struct {
	Port        string
	MetricsPort string

	// StoreBackend selects where the rule set lives: memory, redis or postgres.
	StoreBackend string
	// StorePolicy decides whether a new specification replaces the stored
	// rule set or is merged into it. Replace is the default.
	StorePolicy string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	PostgresDSN string
}

// Load reads the environment (and a .env file when present) into a Config.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}

	return Config{
		Port:          GetEnv("PORT", "3000"),
		MetricsPort:   GetEnv("METRICS_PORT", "9090"),
		StoreBackend:  GetEnv("STORE_BACKEND", BackendRedis),
		StorePolicy:   GetEnv("STORE_POLICY", PolicyReplace),
		RedisAddr:     GetEnv("REDIS_HOST", "localhost") + ":" + GetEnv("REDIS_PORT", "6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       GetIntEnv("REDIS_DB", 0),
		PostgresDSN:   GetEnv("POSTGRES_DSN", ""),
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}
