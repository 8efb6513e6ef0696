package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Settings struct {
	Port               string
	DatabaseURL        string
	Store              string
	JWTSecret          string
	TokenTTL           time.Duration
	FrontendURLs       []string
	Environment        string
	LogLevel           string
	RedisURL           string
	RateLimitPerMinute int
}

func (s Settings) IsProduction() bool {
	return s.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads settings from the environment. Call after godotenv.Load.
func Load() (Settings, error) {
	s := Settings{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Store:       strings.ToLower(getEnv("STORE", StorePostgres)),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		RedisURL:    os.Getenv("REDIS_URL"),
	}

	env := getEnv("ENVIRONMENT", getEnv("ENV", "development"))
	if os.Getenv("GIN_MODE") == "release" {
		env = "production"
	}
	s.Environment = env

	for _, origin := range strings.Split(getEnv("FRONTEND_URL", "http://localhost:3000"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			s.FrontendURLs = append(s.FrontendURLs, origin)
		}
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "2h"))
	if err != nil || ttl <= 0 {
		return s, fmt.Errorf("invalid TOKEN_TTL %q", os.Getenv("TOKEN_TTL"))
	}
	s.TokenTTL = ttl

	limit, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "100"))
	if err != nil || limit <= 0 {
		return s, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE %q", os.Getenv("RATE_LIMIT_PER_MINUTE"))
	}
	s.RateLimitPerMinute = limit

	switch s.Store {
	case StorePostgres, StoreMemory:
	default:
		return s, fmt.Errorf("unknown STORE %q (want postgres or memory)", s.Store)
	}
	return s, nil
}

// Validate checks what the HTTP server needs on top of Load.
func (s Settings) Validate() error {
	if s.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if s.Store == StorePostgres && s.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	return nil
}
