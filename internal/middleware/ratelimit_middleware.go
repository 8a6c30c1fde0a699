package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/citycare/citycare/internal/app/models/dto"
	"github.com/citycare/citycare/internal/pkg/logger"
)

const issueRateLimitPrefix = "issue_limit"

// IssueRateLimiter caps how many complaints a citizen may submit per day.
// Each user gets a redis counter with a 24h TTL set on first increment.
// When no redis client is configured the limiter passes everything through.
func IssueRateLimiter(client *redis.Client, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || limit <= 0 {
			c.Next()
			return
		}

		actor, ok := CurrentActor(c)
		if !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		ctx := c.Request.Context()
		userKey := fmt.Sprintf("%s:%d", issueRateLimitPrefix, actor.ID)

		count, err := client.Incr(ctx, userKey).Result()
		if err != nil {
			// Redis being down should not block complaint submission
			logger.Warn().Err(err).Msg("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		if count == 1 {
			if err := client.Expire(ctx, userKey, 24*time.Hour).Err(); err != nil {
				logger.Warn().Err(err).Msg("Failed to set rate limit TTL")
			}
		}

		if count > int64(limit) {
			retryAfter, _ := client.TTL(ctx, userKey).Result()
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeRateLimited, "Daily complaint limit reached").
				WithDetails(map[string]interface{}{"retryAfterSeconds": int64(retryAfter.Seconds())})
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}
