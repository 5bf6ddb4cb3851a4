package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/verdant-events/guestlist/pkg/jwtx"
)

type Config struct {
	DatabaseFile string // Optional: path to SQLite database file (default: ./guestlist.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	TokenSecret string        // Secret for signing bearer tokens; generated in dev when unset
	TokenTTL    time.Duration // Optional: bearer token lifetime (default: 30m)
	TokenIssuer string        // Optional: issuer claim for tokens (default: guestlist)

	AdminUsername string // Bootstrap admin username (default: admin)
	AdminPassword string // Bootstrap admin password; generated and logged once when unset

	WhatsAppPhoneID     string // Optional: WhatsApp Cloud API phone number id; sending disabled when unset
	WhatsAppAccessToken string // Optional: WhatsApp Cloud API access token

	RootPath string // Optional: path prefix the service is mounted under (e.g. /api)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		DatabaseFile: getEnvOrDefault("GUESTLIST_DATABASE_FILE", "guestlist.db"),
		PepperFile:   getEnvOrDefault("GUESTLIST_PEPPER_FILE", "pepper"),

		TokenSecret: os.Getenv("AUTH_TOKEN_SECRET"),
		TokenTTL:    getEnvDurationOrDefault("AUTH_TOKEN_TTL", jwtx.DefaultTokenTTL),
		TokenIssuer: getEnvOrDefault("AUTH_ISSUER", "guestlist"),

		AdminUsername: getEnvOrDefault("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		WhatsAppPhoneID:     os.Getenv("WHATSAPP_PHONE_ID"),
		WhatsAppAccessToken: os.Getenv("WHATSAPP_ACCESS_TOKEN"),

		RootPath: normalizeRootPath(os.Getenv("ROOT_PATH")),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
}

// normalizeRootPath forces a leading slash and strips any trailing one, so
// "/api", "api" and "api/" all mount the service under /api.
func normalizeRootPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(p, "/")
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
