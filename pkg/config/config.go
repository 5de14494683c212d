// Package config loads application configuration from the environment, with
// optional .env file support for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Environment variable names.
const (
	LogLevelEnv       = "QUOTE_STORE_LOG_LEVEL"
	JSONLogEnv        = "QUOTE_STORE_JSON_LOG"
	StoreConfigEnv    = "QUOTE_STORE_CONFIG"
	RotateScheduleEnv = "QUOTE_STORE_ROTATE_SCHEDULE"
)

// Config holds the process-level settings.
type Config struct {
	LogLevel       string // logrus level name
	JSONLog        bool   // emit JSON-formatted logs
	StoreConfig    string // path to the store spec YAML file
	RotateSchedule string // cron expression for quote rotation
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is applied first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		LogLevel:       getEnv(LogLevelEnv, "info"),
		JSONLog:        cast.ToBool(os.Getenv(JSONLogEnv)),
		StoreConfig:    getEnv(StoreConfigEnv, "store.yaml"),
		RotateSchedule: getEnv(RotateScheduleEnv, "@daily"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
