package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const appName = "pomosync"

type Config struct {
	Port            string
	DBPath          string
	MigrationsDir   string
	CORSOrigins     []string
	PreferencesPath string
	TickInterval    time.Duration
	LogLevel        slog.Level
}

func Load() Config {
	return Config{
		Port:            getEnv("PORT", "8080"),
		DBPath:          getEnv("DB_PATH", "./data/pomosync.db"),
		MigrationsDir:   getEnv("MIGRATIONS_DIR", ""),
		CORSOrigins:     getEnvList("CORS_ORIGINS", []string{"http://localhost:5173", "http://127.0.0.1:5173"}),
		PreferencesPath: getEnv("PREFERENCES_PATH", defaultPreferencesPath()),
		TickInterval:    time.Duration(getEnvInt("TICK_INTERVAL_MS", 1000)) * time.Millisecond,
		LogLevel:        parseLevel(getEnv("LOG_LEVEL", "info")),
	}
}

func defaultPreferencesPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", preferencesFileName)
	}
	return filepath.Join(configDir, appName, preferencesFileName)
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
