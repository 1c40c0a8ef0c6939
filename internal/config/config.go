package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"document-viewer/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort         string
	LogLevel           string
	SupabaseURL        string
	SupabaseKey        string
	DevAuthTokens      string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	ProgressCacheTTL   time.Duration
	SessionIdleTimeout time.Duration
	SignedURLTTL       time.Duration
	AllowedOrigins     []string
	Viewer             domain.ViewerSettings
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	defaults := domain.DefaultViewerSettings()
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:         getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		SupabaseURL:        getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:        getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		DevAuthTokens:      getEnvOrDefault("DEV_AUTH_TOKENS", ""),
		RedisAddr:          getEnvOrDefault("REDIS_ADDR", ""),
		RedisPassword:      getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:            getEnvIntOrDefault("REDIS_DB", 0),
		ProgressCacheTTL:   getEnvDurationOrDefault("PROGRESS_CACHE_TTL", 24*time.Hour),
		SessionIdleTimeout: getEnvDurationOrDefault("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		SignedURLTTL:       getEnvDurationOrDefault("SIGNED_URL_TTL", time.Hour),
		AllowedOrigins:     getEnvListOrDefault("CORS_ALLOWED_ORIGINS", nil),
		Viewer: domain.ViewerSettings{
			MaxRetries:        getEnvIntOrDefault("LOAD_MAX_RETRIES", defaults.MaxRetries),
			RetryDelay:        getEnvDurationOrDefault("LOAD_RETRY_DELAY", defaults.RetryDelay),
			SwipeThreshold:    getEnvFloatOrDefault("SWIPE_THRESHOLD", defaults.SwipeThreshold),
			ZoomStep:          getEnvFloatOrDefault("ZOOM_STEP", defaults.ZoomStep),
			PageMargin:        getEnvFloatOrDefault("PAGE_MARGIN", defaults.PageMargin),
			MinScale:          getEnvFloatOrDefault("MIN_SCALE", defaults.MinScale),
			MaxScale:          getEnvFloatOrDefault("MAX_SCALE", defaults.MaxScale),
			FallbackViewerURL: getEnvOrDefault("FALLBACK_VIEWER_URL", defaults.FallbackViewerURL),
		},
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetDevAuthTokens returns the static "token:user_id" list used without Supabase
func (c *AppConfig) GetDevAuthTokens() string {
	return c.DevAuthTokens
}

func (c *AppConfig) GetRedisAddr() string {
	return c.RedisAddr
}

func (c *AppConfig) GetRedisPassword() string {
	return c.RedisPassword
}

func (c *AppConfig) GetRedisDB() int {
	return c.RedisDB
}

func (c *AppConfig) GetProgressCacheTTL() time.Duration {
	return c.ProgressCacheTTL
}

// GetSessionIdleTimeout returns how long an untouched session stays open
func (c *AppConfig) GetSessionIdleTimeout() time.Duration {
	return c.SessionIdleTimeout
}

// GetSignedURLTTL returns how long signed storage URLs for the fallback viewer stay valid
func (c *AppConfig) GetSignedURLTTL() time.Duration {
	return c.SignedURLTTL
}

func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// GetViewerSettings returns layout, gesture and load recovery tuning
func (c *AppConfig) GetViewerSettings() domain.ViewerSettings {
	return c.Viewer
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
