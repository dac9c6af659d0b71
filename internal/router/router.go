// Package router wires every storefront route to its handler and
// middleware chain.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mercass/storefront/internal/config"
	"github.com/mercass/storefront/internal/handler"
	"github.com/mercass/storefront/internal/middleware"
	"github.com/mercass/storefront/internal/store"
)

// Deps carries the shared pieces route registration needs.
type Deps struct {
	Handler   *handler.Handler
	Store     store.Querier
	Auth      middleware.SessionChecker
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
}

// Register wires the full route inventory.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)
	registerPages(e, d)
	registerAuth(e, d)
	registerAPI(e, d)
	registerForumAndChat(e, d)
}

// registerPages wires the rendered pages. Authenticated pages run the
// session chain; guest pages only load the menu and go through the page
// cache.
func registerPages(e *echo.Echo, d Deps) {
	h := d.Handler
	authCheck := middleware.AuthCheck(d.Auth)
	withProfile := middleware.WithProfile(d.Store)
	showMenu := middleware.ShowMenu(d.Store)
	pageCache := middleware.PageCache(d.Cache, d.Redis)

	e.GET("/", h.Home, authCheck, showMenu, withProfile)
	e.GET("/productDetail/:id", h.ProductDetail, authCheck, showMenu, withProfile)
	e.GET("/shop", h.Shop, authCheck, showMenu, withProfile)
	e.GET("/category/:cno", h.Category, authCheck, showMenu, withProfile)
	e.GET("/categorysub/:cno", h.CategorySub, authCheck, showMenu, withProfile)
	e.POST("/search", h.Search, authCheck, showMenu, withProfile)
	e.GET("/sellerDetail", h.SellerDetail, authCheck, showMenu, withProfile)
	e.GET("/sellerDetail/:sId", h.SellerDetailByID, authCheck, showMenu, withProfile)
	e.GET("/shopCategories", h.ShopCategories, authCheck, showMenu, withProfile)
	e.GET("/myAccount", h.StaticPage("myAccount"), authCheck, withProfile, showMenu)
	e.GET("/payment", h.PaymentPage, authCheck, showMenu, withProfile)

	// Guest pages: menu only, cacheable.
	e.GET("/priceList", h.PriceList, showMenu, pageCache)
	for route, view := range handler.StaticPages {
		if route == "/myAccount" {
			continue
		}
		switch route {
		case "/aboutUs", "/careers", "/affiliates", "/blog", "/contactUs", "/newArrivals", "/accessories":
			e.GET(route, h.StaticPage(view), authCheck, showMenu, withProfile)
		default:
			e.GET(route, h.StaticPage(view), showMenu, pageCache)
		}
	}
}

// registerAuth wires login, logout and the OTP endpoints. The login
// routes carry the rate limiter.
func registerAuth(e *echo.Echo, d Deps) {
	h := d.Handler
	showMenu := middleware.ShowMenu(d.Store)
	limit := middleware.RateLimit(d.RateLimit, d.Redis)

	e.GET("/login", h.LoginPage, showMenu)
	e.POST("/login", h.Login, limit)
	e.POST("/loginAXAJ", h.LoginAJAX, limit)
	e.GET("/logout", h.Logout)
	e.GET("/userLoginandRegister", h.UserLoginAndRegister, showMenu)
	e.POST("/userLoginandRegister", h.UserLoginAndRegister, showMenu)

	e.POST("/api/createOTP", h.CreateOTP, limit)
	e.POST("/api/validOTP", h.ValidOTP, limit)

	authCheck := middleware.AuthCheck(d.Auth)
	withProfile := middleware.WithProfile(d.Store)
	e.GET("/GetUsersprofile", h.GetUsersProfile, authCheck, withProfile)
	e.POST("/updatemyAccount", h.UpdateMyAccount, authCheck, withProfile)
	e.POST("/updateMyAccountInfo", h.UpdateMyAccountInfo, authCheck, withProfile)
	e.POST("/updateMyAccountPassword", h.UpdateMyAccountPassword, authCheck)
}
