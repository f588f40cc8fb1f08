package middlewares

import (
	"context"
	"net/http"
	"time"

	"cleanindia-be/metrics"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	rateLimitPrefix = "complaint_limit"
	rateLimitWindow = 24 * time.Hour
)

// Counter increments a windowed counter and reports the time left in the window.
// Decr hands back one unit without touching the window.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	Decr(ctx context.Context, key string) error
}

type RedisCounter struct {
	Client *redis.Client
}

func (r RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := r.Client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}

	// the window starts with the first submission
	if count == 1 {
		if err := r.Client.Expire(ctx, key, window).Err(); err != nil {
			return 0, 0, err
		}
		return count, window, nil
	}

	ttl, err := r.Client.TTL(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	return count, ttl, nil
}

func (r RedisCounter) Decr(ctx context.Context, key string) error {
	return r.Client.Decr(ctx, key).Err()
}

// ComplaintRateLimiter caps complaint submissions per user per day. Submissions
// the handler rejects with a 4xx are refunded. A nil counter disables the limit.
// Counter failures are logged and let the request through.
func ComplaintRateLimiter(counter Counter, limit int, log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil || limit <= 0 {
			c.Next()
			return
		}

		userID, ok := UserID(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "Unauthorized, no token")
			return
		}

		key := rateLimitPrefix + ":" + userID.Hex()
		count, ttl, err := counter.Incr(c.Request.Context(), key, rateLimitWindow)
		if err != nil {
			log.WithError(err).WithField("user_id", userID.Hex()).Warn("complaint rate limit check failed")
			c.Next()
			return
		}

		if count > int64(limit) {
			metrics.RateLimited.Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success":     false,
				"message":     "Daily complaint limit reached",
				"retry_after": ttl.Seconds(),
			})
			return
		}

		c.Next()

		// rejected submissions do not use up the quota
		if status := c.Writer.Status(); status >= 400 && status < 500 {
			if err := counter.Decr(context.WithoutCancel(c.Request.Context()), key); err != nil {
				log.WithError(err).WithField("user_id", userID.Hex()).Warn("complaint rate limit refund failed")
			}
		}
	}
}
