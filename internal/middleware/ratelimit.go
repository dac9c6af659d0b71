package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mercass/storefront/internal/config"
)

// RateLimit throttles a route per client IP with a fixed Redis window.
// Used on login and OTP endpoints; without Redis it is a no-op.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf("%s:%s:%s", cfg.Prefix, c.Path(), c.RealIP())

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				// Redis down should not lock users out.
				return next(c)
			}
			if n == 1 {
				_ = rdb.Expire(ctx, key, cfg.Window).Err()
			}
			if n > int64(cfg.Limit) {
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"ErrCode":    "429",
					"ErrMessage": "Çok fazla deneme, lütfen bekleyin",
				})
			}
			return next(c)
		}
	}
}
