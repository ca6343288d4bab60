package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/viewtube/backend/internal/cache"
	"github.com/viewtube/backend/internal/errors"
	"github.com/viewtube/backend/internal/logger"
	"github.com/viewtube/backend/internal/util"
	"go.uber.org/zap"
)

// RedisRateLimitMiddleware creates a distributed per-IP rate limiter backed
// by Redis so the limit holds across multiple instances.
func RedisRateLimitMiddleware(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		redisClient := cache.Get()
		if redisClient == nil {
			// No Redis: let the request through but say so
			logger.Log.Warn("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		clientIP := getClientIP(c.Request.RemoteAddr)
		key := fmt.Sprintf("rate_limit:%s", clientIP)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		count, err := redisClient.IncrWithWindow(ctx, key, window)
		if err != nil {
			logger.Log.Error("rate limit check failed",
				logger.WithIP(clientIP),
				zap.Error(err),
			)
			util.RespondWithAPIError(c, errors.ServiceUnavailable("rate limiter"))
			c.Abort()
			return
		}

		if count > int64(maxRequests) {
			logger.Log.Warn("rate limit exceeded",
				logger.WithIP(clientIP),
				zap.Int("max_requests", maxRequests),
				zap.Int64("current_requests", count),
			)
			c.JSON(http.StatusTooManyRequests, util.ErrorEnvelope{
				StatusCode: http.StatusTooManyRequests,
				Message:    "rate limit exceeded",
				Success:    false,
				Errors:     []string{fmt.Sprintf("retry after %.0f seconds", window.Seconds())},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func getClientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
