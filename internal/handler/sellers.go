package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mercass/storefront/internal/store"
	"github.com/mercass/storefront/internal/utils"
)

// CreateSeller opens a seller storefront for an existing user.
func (h *Handler) CreateSeller(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_createSeller",
		store.P("UserId", utils.ParseInt(c.FormValue("UserId"), 0)),
		store.P("sellerName", c.FormValue("sellerName")),
		store.P("sellerInfo", c.FormValue("sellerInfo")),
		store.P("subdomain", c.FormValue("subdomain"))))
}

func (h *Handler) DeactivateSeller(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_deactivateSeller",
		store.P("sellerId", utils.ParseInt(c.FormValue("sellerId"), 0))))
}

func (h *Handler) ChangeSellerBanner(c echo.Context) error {
	return h.sellerChange(c, "sp_changeSellerBanner", store.P("banner", c.FormValue("banner")))
}

func (h *Handler) ChangeSellerInfo(c echo.Context) error {
	return h.sellerChange(c, "sp_changeSellerInfo", store.P("sellerInfo", c.FormValue("sellerInfo")))
}

func (h *Handler) ChangeSellerLogo(c echo.Context) error {
	return h.sellerChange(c, "sp_changeSellerLogo", store.P("logo", c.FormValue("logo")))
}

func (h *Handler) ChangeSellerName(c echo.Context) error {
	return h.sellerChange(c, "sp_changeSellerName", store.P("sellerName", c.FormValue("sellerName")))
}

func (h *Handler) ChangeSellerScore(c echo.Context) error {
	return h.sellerChange(c, "sp_changeSellerScore",
		store.P("score", utils.ParseFloat(c.FormValue("score"), 0)))
}

func (h *Handler) ChangeSellerStatus(c echo.Context) error {
	return h.sellerChange(c, "sp_changeSellerStatus",
		store.P("status", utils.ParseInt(c.FormValue("status"), 0)))
}

func (h *Handler) ChangeSellerSubdomain(c echo.Context) error {
	return h.sellerChange(c, "sp_changeSellerSubdomain", store.P("subdomain", c.FormValue("subdomain")))
}

// sellerChange runs one of the single-field seller mutations; every
// procedure takes the seller id plus the changed value.
func (h *Handler) sellerChange(c echo.Context, proc string, value store.Param) error {
	return h.runRaw(c, store.Proc(proc,
		store.P("sellerId", utils.ParseInt(c.FormValue("sellerId"), 0)),
		value))
}

func (h *Handler) AddSellerProduct(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_addSellerProduct",
		store.P("SellerId", utils.ParseInt(c.FormValue("SellerId"), 0)),
		store.P("ProductId", utils.ParseInt(c.FormValue("ProductId"), 0))))
}

func (h *Handler) AddSellerCategory(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_addSellerCategory",
		store.P("SellerId", utils.ParseInt(c.FormValue("SellerId"), 0)),
		store.P("CategoryId", utils.ParseInt(c.FormValue("CategoryId"), 0))))
}

func (h *Handler) AddSellerBadges(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_addSellerBadges",
		store.P("SellerId", utils.ParseInt(c.FormValue("SellerId"), 0)),
		store.P("BadgesId", utils.ParseInt(c.FormValue("BadgesId"), 0))))
}

func (h *Handler) DeleteSellerProduct(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_deleteSellerProduct",
		store.P("SellerId", utils.ParseInt(c.FormValue("SellerId"), 0)),
		store.P("ProductId", utils.ParseInt(c.FormValue("ProductId"), 0))))
}

func (h *Handler) DeleteSellerCategory(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_deleteSellerCategory",
		store.P("SellerId", utils.ParseInt(c.FormValue("SellerId"), 0)),
		store.P("CategoryId", utils.ParseInt(c.FormValue("CategoryId"), 0))))
}

func (h *Handler) DeleteSellerBadges(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_deleteSellerBadges",
		store.P("SellerId", utils.ParseInt(c.FormValue("SellerId"), 0)),
		store.P("BadgesId", utils.ParseInt(c.FormValue("BadgesId"), 0))))
}
