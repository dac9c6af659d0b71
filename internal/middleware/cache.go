package middleware

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mercass/storefront/internal/config"
)

// cachedPage is the stored form of a cacheable response.
type cachedPage struct {
	Status      int    `json:"status"`
	ContentType string `json:"ct"`
	Body        []byte `json:"body"`
}

// bodyCapture mirrors the response body into a buffer while streaming it
// to the client.
type bodyCapture struct {
	http.ResponseWriter
	status    int
	body      []byte
	limit     int64
	oversized bool
}

func (bc *bodyCapture) WriteHeader(code int) {
	bc.status = code
	bc.ResponseWriter.WriteHeader(code)
}

func (bc *bodyCapture) Write(b []byte) (int, error) {
	if !bc.oversized {
		if bc.limit <= 0 || int64(len(bc.body))+int64(len(b)) <= bc.limit {
			bc.body = append(bc.body, b...)
		} else {
			bc.body = nil // oversized responses are never cached
			bc.oversized = true
		}
	}
	return bc.ResponseWriter.Write(b)
}

func pageKey(prefix string, c echo.Context) string {
	sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum[:])
}

// PageCache serves successful GET responses from Redis. Guest pages only:
// a request carrying the session cookie always passes through, because
// rendered pages embed per-user data. Without Redis it is a no-op.
func PageCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			if cookie, err := c.Cookie(AuthCookie); err == nil && cookie.Value != "" {
				return next(c)
			}

			ctx := c.Request().Context()
			key := pageKey(cfg.Prefix, c)

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var page cachedPage
				if json.Unmarshal(raw, &page) == nil {
					if page.ContentType != "" {
						c.Response().Header().Set(echo.HeaderContentType, page.ContentType)
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(page.Status)
					_, _ = c.Response().Write(page.Body)
					return nil
				}
			}

			bc := &bodyCapture{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: int64(cfg.MaxBodyBytes)}
			c.Response().Writer = bc
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if bc.status == http.StatusOK && !bc.oversized && bc.body != nil {
				ct := c.Response().Header().Get(echo.HeaderContentType)
				if raw, err := json.Marshal(cachedPage{Status: bc.status, ContentType: ct, Body: bc.body}); err == nil {
					_ = rdb.SetEx(context.Background(), key, raw, cfg.TTL).Err()
				}
			}
			return nil
		}
	}
}
