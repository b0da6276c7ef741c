package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	HTTPPort     string
	AppMode      string
	FiberPrefork bool

	LogLevel  string
	LogFormat string

	// DataFile is the path of the persisted analytics document.
	DataFile string

	// AdminKey guards the administrative purge endpoint; purge is
	// disabled while the key is empty.
	AdminKey string

	WriterBufferSize int
	WriterFlushEvery time.Duration
	WriterFlushAfter int
	TopContentLimit  int
}

// Load reads configuration from environment variables with sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:         getEnv("HTTP_PORT", ":8080"),
		AppMode:          strings.ToLower(getEnv("APP_MODE", "dev")),
		FiberPrefork:     parseBoolEnv("FIBER_PREFORK", false),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		DataFile:         getEnv("ANALYTICS_DATA_FILE", "data/analytics.json"),
		AdminKey:         os.Getenv("ANALYTICS_ADMIN_KEY"),
		WriterBufferSize: parseIntEnv("WRITER_BUFFER_SIZE", 1024),
		WriterFlushEvery: parseDurationEnv("WRITER_FLUSH_EVERY", 5*time.Second),
		WriterFlushAfter: parseIntEnv("WRITER_FLUSH_AFTER", 50),
		TopContentLimit:  parseIntEnv("TOP_CONTENT_LIMIT", 10),
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseBoolEnv(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseIntEnv(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}
