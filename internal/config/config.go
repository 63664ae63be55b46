package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// LLM provider selection
	LLMProvider     string // "gemini", "anthropic", or "mock"
	GeminiAPIKey    string
	AnthropicAPIKey string
	ModelName       string
	LLMTimeout      time.Duration

	// Session limits
	MaxSessions     int
	SessionTimeout  time.Duration
	CleanupInterval time.Duration
	MaxBacktrack    int

	// Request throttling
	RateLimitPerMinute int
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		LLMProvider:     getEnv("LLM_PROVIDER", "gemini"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		ModelName:       getEnv("MODEL_NAME", ""),
		LLMTimeout:      getDuration("LLM_TIMEOUT", 30*time.Second),

		MaxSessions:     getInt("MAX_SESSIONS", 1000),
		SessionTimeout:  getDuration("SESSION_TIMEOUT", 60*time.Minute),
		CleanupInterval: getDuration("CLEANUP_INTERVAL", 5*time.Minute),
		MaxBacktrack:    getInt("MAX_BACKTRACK", 2),

		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 30),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
