// Package middleware carries the session, profile and menu context every
// page and API handler depends on.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mercass/storefront/internal/authclient"
	"github.com/mercass/storefront/internal/store"
)

const (
	// AuthCookie is the session cookie name shared with the auth service.
	AuthCookie = "Auth"
	// LoginPath is where unauthenticated users land.
	LoginPath = "/userLoginandRegister"
)

const storeTimeout = 5 * time.Second

// SessionChecker validates a session token. Satisfied by *authclient.Client.
type SessionChecker interface {
	Check(ctx context.Context, token string) (authclient.Session, error)
}

// AuthCheck gates a route behind a valid session. A missing cookie, a
// failed check or a token the service does not echo back redirects to the
// login page without ever invoking the downstream handler.
func AuthCheck(auth SessionChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AuthCookie)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusFound, LoginPath)
			}
			sess, err := auth.Check(c.Request().Context(), cookie.Value)
			if err != nil {
				slog.Info("session check failed", "path", c.Path(), "error", err)
				return c.Redirect(http.StatusFound, LoginPath)
			}
			c.Set("session", sess)
			c.Set("user_id", sess.UsersID)
			return next(c)
		}
	}
}

// Session returns the authenticated session, or false on guest requests.
func Session(c echo.Context) (authclient.Session, bool) {
	sess, ok := c.Get("session").(authclient.Session)
	return sess, ok
}

// UserID returns the authenticated user id, 0 for guests.
func UserID(c echo.Context) int64 {
	if id, ok := c.Get("user_id").(int64); ok {
		return id
	}
	return 0
}

// WithProfile loads the user's profile view and attaches it as
// "userProfile". Must run after AuthCheck.
func WithProfile(q store.Querier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := UserID(c)
			if id == 0 {
				return next(c)
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
			defer cancel()
			res, err := q.Run(ctx, store.Query(
				"SELECT * FROM v_UsersProfiles WHERE usersId = @usersId",
				store.P("usersId", id)))
			if err != nil {
				slog.Error("load user profile", "user_id", id, "error", err)
				return next(c)
			}
			c.Set("userProfile", res.First())
			return next(c)
		}
	}
}

// ShowMenu attaches the menu categories as "menuData". Safe on guest
// pages; a store failure leaves the menu empty rather than failing the
// page.
func ShowMenu(q store.Querier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
			defer cancel()
			res, err := q.Run(ctx, store.Query("SELECT * FROM v_MenuCategories ORDER BY SearchOrder"))
			if err != nil {
				slog.Error("load menu categories", "error", err)
				return next(c)
			}
			c.Set("menuData", res.First())
			return next(c)
		}
	}
}

// WithUserCategories attaches the categories scoping the user's forum
// feed as "userCategories". Must run after AuthCheck.
func WithUserCategories(q store.Querier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := UserID(c)
			if id == 0 {
				return next(c)
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
			defer cancel()
			res, err := q.Run(ctx, store.Proc("sp_getUserCategories", store.P("UsersId", id)))
			if err != nil {
				slog.Error("load user categories", "user_id", id, "error", err)
				return next(c)
			}
			c.Set("userCategories", res.First())
			return next(c)
		}
	}
}
