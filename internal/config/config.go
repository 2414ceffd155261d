package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL      string
	JWTSecret        string
	Port             string
	BookingBaseURL   string
	MailerBaseURL    string
	RateLimitBooking RateLimitConfig
	TokenTTL         time.Duration
	TokenExpiryDays  int
	ProposalWindow   int
	BookingWindow    int
	PhoneRegion      string
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret"),
		Port:            getEnv("PORT", "8080"),
		BookingBaseURL:  getEnv("BOOKING_BASE_URL", "http://localhost:3000"),
		MailerBaseURL:   getEnv("MAILER_BASE_URL", "http://mailer:9000"),
		TokenTTL:        parseDuration(getEnv("JWT_TTL", "24h")),
		TokenExpiryDays: getEnvInt("TOKEN_EXPIRY_DAYS", 7),
		ProposalWindow:  getEnvInt("PROPOSAL_WINDOW_DAYS", 7),
		BookingWindow:   getEnvInt("BOOKING_WINDOW_DAYS", 30),
		PhoneRegion:     getEnv("PHONE_REGION", "KR"),
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_BOOKING", "10/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BOOKING value: %w", err)
	}
	cfg.RateLimitBooking = rl

	if cfg.TokenExpiryDays <= 0 {
		cfg.TokenExpiryDays = 7
	}
	if cfg.ProposalWindow <= 0 {
		cfg.ProposalWindow = 7
	}
	if cfg.BookingWindow <= 0 {
		cfg.BookingWindow = 30
	}

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseDuration(input string) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}
