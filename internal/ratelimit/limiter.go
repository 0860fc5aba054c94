// Package ratelimit implements fixed-window request counters.
package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mural_backend/internal/config"
)

// Limiter counts hits per key in fixed windows.
type Limiter interface {
	// Allow records one hit. When the limit is exceeded it returns false
	// and the time until the window resets.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, retryAfter time.Duration, err error)
	// Reset clears the counter for key.
	Reset(ctx context.Context, key string) error
	Close() error
}

// Scopes
const (
	ScopeLogin   = "login"
	ScopePost    = "post"
	ScopeComment = "comment"
)

func Key(scope, id string) string {
	return "ratelimit:" + scope + ":" + id
}

// New builds the limiter selected by rate_limit.backend.
func New(cfg *config.Config) (Limiter, error) {
	switch strings.ToLower(cfg.RateLimit.Backend) {
	case "", "memory":
		return NewMemoryLimiter(), nil
	case "redis":
		return NewRedisLimiter(cfg.RateLimit.RedisAddr, cfg.RateLimit.RedisPassword)
	default:
		return nil, fmt.Errorf("unsupported rate limit backend: %s", cfg.RateLimit.Backend)
	}
}
