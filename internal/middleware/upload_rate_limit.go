package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pgf/backend/internal/config"
	"github.com/redis/go-redis/v9"
)

// UploadRateLimit caps the number of storage uploads per day. The window
// resets at midnight so the limit is predictable; Redis outages fail open.
func UploadRateLimit(redisClient *redis.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		if c.Request.Method != http.MethodPost || !isUploadEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		today := time.Now().Format("2006-01-02")
		key := fmt.Sprintf("upload_limit:%s", today)

		count, err := redisClient.Get(ctx, key).Int()
		if err == redis.Nil {
			now := time.Now()
			midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
			if err := redisClient.Set(ctx, key, 1, midnight.Sub(now)).Err(); err != nil {
				c.Next()
				return
			}
		} else if err != nil {
			c.Next()
			return
		} else if count >= cfg.UploadMaxPerDay {
			ttl, _ := redisClient.TTL(ctx, key).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":               "upload_rate_limit_exceeded",
				"message":             "Too many uploads today. Please try again tomorrow.",
				"retry_after_hours":   int(ttl.Hours()),
				"uploads_today":       count,
				"max_uploads_per_day": cfg.UploadMaxPerDay,
			})
			c.Abort()
			return
		} else {
			redisClient.Incr(ctx, key)
		}

		c.Next()
	}
}

func isUploadEndpoint(path string) bool {
	if strings.HasPrefix(path, "/api/v1/admin/upload/") {
		return true
	}
	if path == "/api/v1/admin/artworks/with-images" {
		return true
	}
	// exhibition media uploads: /api/v1/admin/exhibitions/:id/images|videos
	if strings.HasPrefix(path, "/api/v1/admin/exhibitions/") &&
		(strings.HasSuffix(path, "/images") || strings.HasSuffix(path, "/videos")) {
		return true
	}
	return false
}
