package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"app/internal/ratelimit"

	"github.com/labstack/echo/v4"
)

// RateLimitはlimiterの判定をechoに繋ぐ
// 許可時もlimit系headerを付ける。OPTIONS（CORS preflight）は対象外
func RateLimit(l *ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodOptions {
				return next(c)
			}

			res := l.Check(c.Request())

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			h.Set("X-RateLimit-Reset", res.ResetTime.UTC().Format(time.RFC3339))

			if !res.Allowed {
				//秒は切り上げ（0秒でretryさせない）
				retryAfter := int(math.Ceil(time.Until(res.ResetTime).Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				h.Set("Retry-After", strconv.Itoa(retryAfter))

				return c.JSON(http.StatusTooManyRequests, errorJSON("Too many requests"))
			}

			l.Increment(c.Request())

			return next(c)
		}
	}
}
