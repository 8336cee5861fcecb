package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel string
	DBUrl    string
	// Comma separated; "*" allows any origin
	CORSAllowedOrigins []string
	// Redis Configuration
	RedisURL           string
	RedisPassword      string
	SuggestionCacheTTL time.Duration
	// Engine Configuration
	WeightsFile           string // optional YAML weight table
	MaxTextLength         int    // runes of offer text scanned for domain keywords
	MaxDescriptionLength  int    // requests above this are rejected with 413
	DefaultMaxSuggestions int
	MaxSuggestionsLimit   int
	// Rate Limiting Configuration
	RateLimitWindowSeconds int
	RateLimitThreshold     int
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; a missing file is fine
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DBUrl:    getEnv("DATABASE_URL", ""),
		// CORS
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		// Redis Configuration
		RedisURL:           strings.TrimSpace(getEnv("REDIS_URL", "")),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		SuggestionCacheTTL: getEnvDuration("SUGGESTION_CACHE_TTL", 15*time.Minute),
		// Engine Configuration
		WeightsFile:           getEnv("BENEFIT_WEIGHTS_FILE", ""),
		MaxTextLength:         getEnvInt("MAX_TEXT_LENGTH", 10000),
		MaxDescriptionLength:  getEnvInt("MAX_DESCRIPTION_LENGTH", 50000),
		DefaultMaxSuggestions: getEnvInt("DEFAULT_MAX_SUGGESTIONS", 8),
		MaxSuggestionsLimit:   getEnvInt("MAX_SUGGESTIONS_LIMIT", 50),
		// Rate Limiting Configuration
		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitThreshold:     getEnvInt("RATE_LIMIT_THRESHOLD", 120),
	}

	if cfg.DefaultMaxSuggestions < 1 {
		cfg.DefaultMaxSuggestions = 8
	}
	if cfg.MaxSuggestionsLimit < cfg.DefaultMaxSuggestions {
		cfg.MaxSuggestionsLimit = cfg.DefaultMaxSuggestions
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Offer endpoints will answer 503.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Suggestion cache disabled, rate limiting in memory.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("90s", "15m") or whole seconds
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
