package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mercass/storefront/internal/config"
)

func TestPageCacheHitSkipsHandler(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	mw := PageCache(config.CacheConfig{
		Enabled:      true,
		TTL:          time.Minute,
		Prefix:       "storefront:page",
		MaxBodyBytes: 1 << 20,
	}, rdb)

	e := echo.New()
	calls := 0
	h := mw(func(c echo.Context) error {
		calls++
		return c.HTML(http.StatusOK, "<h1>Vitrin</h1>")
	})

	get := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/")
		if err := h(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		return rec
	}

	first := get()
	if first.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("first X-Cache = %q", first.Header().Get("X-Cache"))
	}
	second := get()
	if second.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("second X-Cache = %q", second.Header().Get("X-Cache"))
	}
	if second.Body.String() != "<h1>Vitrin</h1>" {
		t.Fatalf("cached body = %q", second.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler calls = %d, want 1", calls)
	}
}

func TestPageCacheNeverStoresOversizedBody(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	mw := PageCache(config.CacheConfig{
		Enabled:      true,
		TTL:          time.Minute,
		Prefix:       "p",
		MaxBodyBytes: 8,
	}, rdb)

	e := echo.New()
	calls := 0
	h := mw(func(c echo.Context) error {
		calls++
		c.Response().WriteHeader(http.StatusOK)
		// Multiple chunks: once the limit trips, later chunks must not
		// repopulate the capture buffer.
		for _, chunk := range []string{"AAAAAAAA", "BBBB", "CCCC"} {
			if _, err := c.Response().Write([]byte(chunk)); err != nil {
				return err
			}
		}
		return nil
	})

	get := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/shop", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/shop")
		if err := h(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		return rec
	}

	first := get()
	if first.Body.String() != "AAAAAAAABBBBCCCC" {
		t.Fatalf("first body = %q", first.Body.String())
	}
	second := get()
	if second.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("second X-Cache = %q, oversized page must not be cached", second.Header().Get("X-Cache"))
	}
	if second.Body.String() != "AAAAAAAABBBBCCCC" {
		t.Fatalf("second body = %q", second.Body.String())
	}
	if calls != 2 {
		t.Fatalf("handler calls = %d, want 2", calls)
	}
}

func TestPageCacheSkipsAuthenticatedRequests(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	mw := PageCache(config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "p"}, rdb)
	e := echo.New()
	calls := 0
	h := mw(func(c echo.Context) error {
		calls++
		return c.HTML(http.StatusOK, "ok")
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/myAccount", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookie, Value: "tok"})
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/myAccount")
		if err := h(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
	}
	if calls != 2 {
		t.Fatalf("handler calls = %d, want 2 (no caching with session)", calls)
	}
}
