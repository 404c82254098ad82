package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"novelhub/internal/pkg/apperr"
	"novelhub/internal/pkg/cache"
	"novelhub/internal/pkg/ctxutil"
)

// Limiter 固定窗口限流器
type Limiter interface {
	AllowRequest(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit 按用户和动作限流，需放在 Auth 之后
// 限流器出错时放行
func RateLimit(limiter Limiter, action string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := ctxutil.GetUserUID(c.Request.Context())
		if !ok {
			c.Next()
			return
		}

		key := cache.RateLimitKey(action, uid)
		allowed, err := limiter.AllowRequest(c.Request.Context(), key, limit, window)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		if !allowed {
			abortWithError(c, apperr.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
