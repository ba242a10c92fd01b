package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	JWTSecret string // Required: shared HMAC secret for token signing
	Issuer    string // Optional: issuer claim for tokens (default: camwatch-auth)
	Audience  string // Optional: audience claim for tokens (default: camwatch-api)

	AccessTokenTTL  time.Duration // Optional: access token lifetime (default: 15m)
	RefreshTokenTTL time.Duration // Optional: refresh token lifetime (default: 168h)

	DatabaseFile string        // Optional: path to SQLite database file (default: ./camwatch.db)
	PepperFile   string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	RedisURL     string        // Optional: session cache URL (default: redis://localhost:6379/0)
	CacheTTL     time.Duration // Optional: session cache entry TTL, 0 = no expiry (default: 0)

	S3Endpoint  string // Optional: object store endpoint (default: localhost:9000)
	S3AccessKey string // Optional: object store access key
	S3SecretKey string // Optional: object store secret key
	S3UseSSL    bool   // Optional: dial the object store over TLS (default: false)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		JWTSecret: os.Getenv("AUTH_JWT_SECRET"),
		Issuer:    getEnvOrDefault("AUTH_ISSUER", "camwatch-auth"),
		Audience:  getEnvOrDefault("AUTH_AUDIENCE", "camwatch-api"),

		AccessTokenTTL:  getEnvDurationOrDefault("AUTH_ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: getEnvDurationOrDefault("AUTH_REFRESH_TOKEN_TTL", 7*24*time.Hour),

		DatabaseFile: getEnvOrDefault("AUTH_DATABASE_FILE", "camwatch.db"),
		PepperFile:   getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		RedisURL:     getEnvOrDefault("AUTH_REDIS_URL", "redis://localhost:6379/0"),
		CacheTTL:     getEnvDurationOrDefault("AUTH_CACHE_TTL", 0),

		S3Endpoint:  getEnvOrDefault("AUTH_S3_ENDPOINT", "localhost:9000"),
		S3AccessKey: os.Getenv("AUTH_S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("AUTH_S3_SECRET_KEY"),
		S3UseSSL:    getEnvBoolOrDefault("AUTH_S3_USE_SSL", false),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
