package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mercass/storefront/internal/middleware"
	"github.com/mercass/storefront/internal/store"
	"github.com/mercass/storefront/internal/utils"
)

// Home renders the storefront landing page: sliders, references and the
// popular-product shelves.
func (h *Handler) Home(c echo.Context) error {
	return h.pageMulti(c, "index",
		[]store.Command{
			store.Query("SELECT * FROM v_activeSliders"),
			store.Query("SELECT * FROM v_activeReferences"),
			store.Query("SELECT * FROM v_populerProducts"),
			store.Query("SELECT * FROM v_allSellerPopulerProducts"),
		},
		[]string{"ASliders", "AReferences", "PopularProduct", "AllSellerPopulerProduct"})
}

// ProductDetail renders one product with its image slider, related
// products and properties.
func (h *Handler) ProductDetail(c echo.Context) error {
	id := utils.ParseInt(c.Param("id"), 0)
	return h.pageMulti(c, "productDetail",
		[]store.Command{
			store.Query("SELECT * FROM v_ProductsDetail WHERE Id = @id", store.P("id", id)),
			store.Query("SELECT * FROM v_activeProductImg WHERE productId = @id", store.P("id", id)),
			store.Query("SELECT * FROM v_productsRelaited WHERE RelProduct = @id", store.P("id", id)),
			store.Query("SELECT * FROM ProductProperties WHERE productId = @id", store.P("id", id)),
		},
		[]string{"productDetailDescription", "productDetailImgSlider", "relProduct", "productProperties"})
}

// Shop renders every category with the active products.
func (h *Handler) Shop(c echo.Context) error {
	return h.pageMulti(c, "shop",
		[]store.Command{
			store.Query("SELECT * FROM v_allCategories"),
			store.Query("SELECT * FROM v_activeProducts"),
		},
		[]string{"allCategories", "activeProduct"})
}

// Category renders the shop scoped to one parent category code.
func (h *Handler) Category(c echo.Context) error {
	cno := c.Param("cno")
	return h.pageMulti(c, "shop",
		[]store.Command{
			store.Query("SELECT * FROM v_allCategories WHERE parentCategoryCode = @cno", store.P("cno", cno)),
			store.Query("SELECT * FROM v_activeProducts WHERE categoryCode = @cno", store.P("cno", cno)),
		},
		[]string{"allCategories", "activeProduct"})
}

// CategorySub renders the shop scoped to one leaf category code.
func (h *Handler) CategorySub(c echo.Context) error {
	cno := c.Param("cno")
	return h.pageMulti(c, "shop",
		[]store.Command{
			store.Query("SELECT * FROM v_allCategories WHERE categoryLevel = 1"),
			store.Query("SELECT * FROM v_activeProducts WHERE categoryCode = @cno", store.P("cno", cno)),
		},
		[]string{"allCategories", "activeProduct"})
}

// Search runs the search procedure over the submitted criteria. An
// attached file, when present, is stored before the query runs.
func (h *Handler) Search(c echo.Context) error {
	criteria := c.FormValue("search")
	if criteria == "" {
		criteria = c.FormValue("search_mobile")
	}

	if file, err := c.FormFile("file"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return h.fail(c, err)
		}
		defer src.Close()
		if _, err := h.Uploads.Save("aramaResimleri", middleware.UserID(c), file.Filename, src); err != nil {
			return h.fail(c, err)
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Store.Run(ctx, store.Proc("sp_Search", store.P("criteria", criteria)))
	if err != nil {
		return h.fail(c, err)
	}
	return h.page(c, "search", map[string]any{"SearchResult": res.First()}, nil)
}

// SellerDetail renders the signed-in user's own seller page.
func (h *Handler) SellerDetail(c echo.Context) error {
	return h.sellerDetailPage(c, middleware.UserID(c))
}

// SellerDetailByID renders another seller's page.
func (h *Handler) SellerDetailByID(c echo.Context) error {
	return h.sellerDetailPage(c, int64(utils.ParseInt(c.Param("sId"), 0)))
}

func (h *Handler) sellerDetailPage(c echo.Context, userID int64) error {
	return h.pageMulti(c, "sellerDetail",
		[]store.Command{
			store.Query("SELECT * FROM v_sellerProductDetail WHERE SellerId = (SELECT Id FROM v_allSellers WHERE userId = @userId)",
				store.P("userId", userID)),
			store.Proc("sp_getSellerDetailInfo", store.P("userId", userID)),
			store.Query("SELECT * FROM v_allSellerProductsList WHERE SellerId = (SELECT Id FROM v_allSellers WHERE userId = @userId)",
				store.P("userId", userID)),
		},
		[]string{"sellerDetail", "sellerDetailInfo", "sellerProductList"})
}

// ShopCategories renders the category index grid.
func (h *Handler) ShopCategories(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Store.Run(ctx, store.Query("SELECT * FROM v_allCategories"))
	if err != nil {
		return h.fail(c, err)
	}
	return h.page(c, "shopCategories", res.First(), nil)
}

// PriceList renders the subscription price table.
func (h *Handler) PriceList(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Store.Run(ctx, store.Query("SELECT * FROM v_activeSubscribe"))
	if err != nil {
		return h.fail(c, err)
	}
	return h.page(c, "priceList", res.First(), nil)
}

// PaymentPage renders the payment form.
func (h *Handler) PaymentPage(c echo.Context) error {
	return h.page(c, "payment", nil, nil)
}

// StaticPages maps a route suffix to its template for the content pages
// that carry no data of their own.
var StaticPages = map[string]string{
	"/aboutUs":               "aboutUs",
	"/careers":               "careers",
	"/affiliates":            "affiliates",
	"/blog":                  "blog",
	"/contactUs":             "contactUs",
	"/newArrivals":           "newArrivals",
	"/accessories":           "accessories",
	"/men":                   "men",
	"/women":                 "women",
	"/shopAll":               "shopAll",
	"/customerServices":      "customerServices",
	"/findStore":             "findStore",
	"/legalAndPrivacy":       "legalAndPrivacy",
	"/giftCard":              "giftCard",
	"/resetPassword":         "resetPassword",
	"/userAgreement":         "userAgreement",
	"/cookiePolicy":          "cookiePolicy",
	"/sellerApplicationForm": "sellerApplicationForm",
	"/buyerApplicationForm":  "buyerApplicationForm",
	"/myAccount":             "myAccount",
}

// StaticPage renders one of the content-only templates.
func (h *Handler) StaticPage(view string) echo.HandlerFunc {
	return h.staticPage(view)
}
