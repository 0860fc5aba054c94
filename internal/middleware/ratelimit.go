package middleware

import (
	"math"
	"strconv"
	"time"

	"mural_backend/internal/logger"
	"mural_backend/internal/metrics"
	"mural_backend/internal/ratelimit"
	"mural_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// KeyFunc выбирает идентификатор клиента для лимита
type KeyFunc func(c *gin.Context) string

func ByIP(c *gin.Context) string { return c.ClientIP() }

// ByUser падает обратно на IP для анонимных запросов
func ByUser(c *gin.Context) string {
	if id := GetUserID(c); id != "" {
		return id
	}
	return c.ClientIP()
}

// RateLimit ограничивает запросы в фиксированном окне. Ошибка хранилища не блокирует запрос.
func RateLimit(limiter ratelimit.Limiter, scope string, limit int, window time.Duration, keyFn KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		allowed, retryAfter, err := limiter.Allow(ctx, ratelimit.Key(scope, keyFn(c)), limit, window)
		if err != nil {
			logger.CtxWithError(ctx, "rate limiter unavailable", err, "scope", scope)
			c.Next()
			return
		}
		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			metrics.RateLimitRejectionsTotal.WithLabelValues(scope).Inc()
			logger.CtxWarn(ctx, "rate limit exceeded", "scope", scope, "retry_after", seconds)
			c.Header("Retry-After", strconv.Itoa(seconds))
			apperrors.HandleError(c, apperrors.ErrRateLimited(seconds))
			return
		}
		c.Next()
	}
}
