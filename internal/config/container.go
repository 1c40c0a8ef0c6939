package config

import (
	"context"
	"fmt"
	"time"

	"document-viewer/internal/domain"
	"document-viewer/internal/infra/supabase"
	"document-viewer/internal/repository"
	"document-viewer/internal/service"
	"document-viewer/internal/viewer"
	"document-viewer/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config         domain.Config
	Logger         domain.Logger
	SupabaseClient domain.SupabaseClient
	AuthService    domain.AuthService
	ProgressStore  domain.ProgressStore
	BookmarkStore  domain.BookmarkStore
	Fallback       domain.FallbackResolver
	SessionService *service.SessionService

	redis *redis.Client
}

// NewContainer creates a new dependency injection container. Without
// Supabase settings it runs on the in-memory store with static dev tokens.
func NewContainer() (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())
	c := &Container{
		Config: config,
		Logger: appLogger,
	}

	if config.GetSupabaseURL() != "" {
		supabaseClient := supabase.NewSupabaseClient(config, appLogger)
		if err := supabaseClient.Initialize(); err != nil {
			return nil, fmt.Errorf("failed to initialize supabase: %w", err)
		}
		c.SupabaseClient = supabaseClient
		c.AuthService = service.NewAuthService(supabaseClient, appLogger)
		c.ProgressStore = repository.NewSupabaseProgressRepository(supabaseClient, appLogger)
		c.BookmarkStore = repository.NewSupabaseBookmarkRepository(supabaseClient, appLogger)
	} else {
		appLogger.Warn("Supabase not configured, using in-memory store and DEV_AUTH_TOKENS")
		mem := repository.NewMemoryStore()
		c.AuthService = service.NewStaticTokenAuthService(config.GetDevAuthTokens())
		c.ProgressStore = mem
		c.BookmarkStore = mem
	}

	if addr := config.GetRedisAddr(); addr != "" {
		rdb := repository.NewRedisClient(repository.RedisConfig{
			Addr:     addr,
			Password: config.GetRedisPassword(),
			DB:       config.GetRedisDB(),
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			appLogger.Warn("Redis unreachable, progress cache disabled", "addr", addr, "error", err)
			_ = rdb.Close()
		} else {
			c.redis = rdb
			c.ProgressStore = repository.NewRedisProgressCache(rdb, c.ProgressStore, config.GetProgressCacheTTL(), appLogger)
			appLogger.Info("Progress cache enabled", "addr", addr, "ttl", config.GetProgressCacheTTL())
		}
	}

	settings := config.GetViewerSettings()
	c.Fallback = viewer.NewURLFallbackResolver(settings.FallbackViewerURL)
	if c.SupabaseClient != nil && c.SupabaseClient.DB().Storage != nil {
		c.Fallback = service.NewStorageFallbackResolver(
			c.SupabaseClient.DB().Storage,
			config.GetSupabaseURL(),
			config.GetSignedURLTTL(),
			c.Fallback,
			appLogger,
		)
	}
	c.SessionService = service.NewSessionService(service.SessionServiceDeps{
		Progress:    c.ProgressStore,
		Bookmarks:   c.BookmarkStore,
		Fallback:    c.Fallback,
		Settings:    settings,
		IdleTimeout: config.GetSessionIdleTimeout(),
		Logger:      appLogger,
	})

	return c, nil
}

// Close releases sessions and connections
func (c *Container) Close() {
	c.SessionService.Shutdown()
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.Logger.Warn("Failed to close redis client", "error", err)
		}
	}
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}
