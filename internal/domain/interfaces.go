package domain

import (
	"context"
	"time"
)

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetProgressCacheTTL() time.Duration
	GetSessionIdleTimeout() time.Duration
	GetAllowedOrigins() []string
	GetDevAuthTokens() string
	GetSignedURLTTL() time.Duration
	GetViewerSettings() ViewerSettings
}

// ViewerSettings tunes layout, gestures and load recovery.
type ViewerSettings struct {
	MaxRetries        int
	RetryDelay        time.Duration
	SwipeThreshold    float64
	ZoomStep          float64
	PageMargin        float64
	MinScale          float64
	MaxScale          float64
	FallbackViewerURL string
}

// DefaultViewerSettings returns the stock tuning values.
func DefaultViewerSettings() ViewerSettings {
	return ViewerSettings{
		MaxRetries:        3,
		RetryDelay:        2 * time.Second,
		SwipeThreshold:    50,
		ZoomStep:          0.1,
		PageMargin:        48,
		MinScale:          0.5,
		MaxScale:          3.0,
		FallbackViewerURL: "https://docs.google.com/gview",
	}
}

// Renderer is the primary rendering collaborator. Render returns nil once
// the document is displayable natively.
type Renderer interface {
	Render(ctx context.Context, ref DocumentRef) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, ref DocumentRef) error

func (f RendererFunc) Render(ctx context.Context, ref DocumentRef) error { return f(ctx, ref) }

// FallbackResolver turns a document reference into an embeddable URL for
// the degraded viewer.
type FallbackResolver interface {
	Resolve(ref DocumentRef) (string, error)
}
