package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mercass/storefront/internal/middleware"
	"github.com/mercass/storefront/internal/store"
	"github.com/mercass/storefront/internal/utils"
)

// CreateProduct binds the full product field set with typed coercions:
// missing or malformed numbers fall back to zero, flags to false.
func (h *Handler) CreateProduct(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_createProduct",
		store.P("title", c.FormValue("title")),
		store.P("categoryId", utils.ParseInt(c.FormValue("categoryId"), 0)),
		store.P("baseCopyID", utils.ParseInt(c.FormValue("baseCopyID"), 0)),
		store.P("productOrder", utils.ParseInt(c.FormValue("productOrder"), 0)),
		store.P("productDesc", c.FormValue("productDesc")),
		store.P("productText", c.FormValue("productText")),
		store.P("unit", c.FormValue("unit")),
		store.P("realPrice", utils.ParseFloat(c.FormValue("realPrice"), 0)),
		store.P("meansPrice", utils.ParseFloat(c.FormValue("meansPrice"), 0)),
		store.P("isShowMainPage", utils.ParseBool(c.FormValue("isShowMainPage"))),
		store.P("isShowMostPopuler", utils.ParseBool(c.FormValue("isShowMostPopuler"))),
		store.P("isSearchImportant", utils.ParseBool(c.FormValue("isSearchImportant"))),
		store.P("isPublish", utils.ParseBool(c.FormValue("isPublish")))))
}

func (h *Handler) ChangeProductCategory(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_changeProductCategory",
		store.P("productId", utils.ParseInt(c.FormValue("productId"), 0)),
		store.P("categoryId", utils.ParseInt(c.FormValue("categoryId"), 0))))
}

func (h *Handler) ChangeProductDesc(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_changeProductDesc",
		store.P("productId", utils.ParseInt(c.FormValue("productId"), 0)),
		store.P("productDesc", c.FormValue("productDesc"))))
}

func (h *Handler) ChangeProductOrder(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_changeProductOrder",
		store.P("productId", utils.ParseInt(c.FormValue("productId"), 0)),
		store.P("productOrder", utils.ParseInt(c.FormValue("productOrder"), 0))))
}

func (h *Handler) ChangeProductPrice(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_changeProductPrice",
		store.P("productId", utils.ParseInt(c.FormValue("productId"), 0)),
		store.P("realPrice", utils.ParseFloat(c.FormValue("realPrice"), 0)),
		store.P("meansPrice", utils.ParseFloat(c.FormValue("meansPrice"), 0))))
}

// ChangeProductPublish toggles publication; the publish date is passed
// through as-is and may be empty.
func (h *Handler) ChangeProductPublish(c echo.Context) error {
	var publishDate any
	if d := c.FormValue("publishDate"); d != "" {
		publishDate = d
	}
	return h.runRaw(c, store.Proc("sp_changeProductPublish",
		store.P("productId", utils.ParseInt(c.FormValue("productId"), 0)),
		store.P("isPublish", utils.ParseBool(c.FormValue("isPublish"))),
		store.P("publishDate", publishDate)))
}

func (h *Handler) ChangeProductSearchImportant(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_changeProductSearchImportant",
		store.P("productId", utils.ParseInt(c.FormValue("productId"), 0)),
		store.P("isSearchImportant", utils.ParseBool(c.FormValue("isSearchImportant")))))
}

func (h *Handler) ChangeProductShowMainPage(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_changeProductShowMainPage",
		store.P("productId", utils.ParseInt(c.FormValue("productId"), 0)),
		store.P("isShowMainPage", utils.ParseBool(c.FormValue("isShowMainPage")))))
}

func (h *Handler) ChangeProductShowMostPopular(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_changeProductShowMostPopuler",
		store.P("productId", utils.ParseInt(c.FormValue("productId"), 0)),
		store.P("isShowMostPopuler", utils.ParseBool(c.FormValue("isShowMostPopuler")))))
}

func (h *Handler) ChangeProductText(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_changeProductText",
		store.P("productId", utils.ParseInt(c.FormValue("productId"), 0)),
		store.P("productText", c.FormValue("productText"))))
}

func (h *Handler) ChangeProductTitle(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_changeProductTitle",
		store.P("productId", utils.ParseInt(c.FormValue("productId"), 0)),
		store.P("title", c.FormValue("title"))))
}

func (h *Handler) ChangeProductStock(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_changeProductStock", h.stockParams(c)...))
}

func (h *Handler) CreateProductStock(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_createProductStock", h.stockParams(c)...))
}

func (h *Handler) stockParams(c echo.Context) []store.Param {
	return []store.Param{
		store.P("productId", utils.ParseInt(c.FormValue("productId"), 0)),
		store.P("productCount", utils.ParseInt(c.FormValue("productCount"), 0)),
		store.P("warningCount", utils.ParseInt(c.FormValue("warningCount"), 0)),
		store.P("criticalCount", utils.ParseInt(c.FormValue("criticalCount"), 0)),
		store.P("meansStock", utils.ParseInt(c.FormValue("meansStock"), 0)),
	}
}

func (h *Handler) AddProductRelated(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_addProductRelaited",
		store.P("productId", utils.ParseInt(c.FormValue("productId"), 0)),
		store.P("relProductId", utils.ParseInt(c.FormValue("relProductId"), 0))))
}

func (h *Handler) DeleteProductRelated(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_deleteProductRelaited",
		store.P("productRelaitedId", utils.ParseInt(c.FormValue("productRelaitedId"), 0))))
}

func (h *Handler) DeleteProduct(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_deleteProducts",
		store.P("productId", utils.ParseInt(c.FormValue("productId"), 0))))
}

func (h *Handler) ProductAccept(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_productAccept",
		store.P("productId", utils.ParseInt(c.FormValue("productId"), 0))))
}

func (h *Handler) ActivateProduct(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_activateProduct",
		store.P("productId", utils.ParseInt(c.FormValue("productId"), 0))))
}

func (h *Handler) DeactivateProduct(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_deactivateProduct",
		store.P("productId", utils.ParseInt(c.FormValue("productId"), 0))))
}

// CreateProductImg registers a product image. The image either arrives as
// an existing URL or as a multipart file that is stored first.
func (h *Handler) CreateProductImg(c echo.Context) error {
	productID := utils.ParseInt(c.FormValue("productId"), 0)

	imgURL := c.FormValue("productImg")
	if !strings.HasPrefix(imgURL, "http") {
		file, err := c.FormFile("file")
		if err != nil {
			return h.fail(c, err)
		}
		src, err := file.Open()
		if err != nil {
			return h.fail(c, err)
		}
		defer src.Close()
		imgURL, err = h.Uploads.Save("ProductImg", middleware.UserID(c), file.Filename, src)
		if err != nil {
			return h.fail(c, err)
		}
	}

	return h.runRaw(c, store.Proc("sp_createProductImg",
		store.P("productId", productID),
		store.P("imgUrl", imgURL),
		store.P("imgUserDesc", c.FormValue("imgUserDesc")),
		store.P("imgOrder", utils.ParseInt(c.FormValue("imgOrder"), 0))))
}

func (h *Handler) DeleteProductImg(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_deleteProductImg",
		store.P("productImgId", utils.ParseInt(c.FormValue("productImgId"), 0))))
}

func (h *Handler) ActivateProductImg(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_activateProductImg",
		store.P("productImgId", utils.ParseInt(c.FormValue("Id"), 0))))
}

func (h *Handler) DeactivateProductImg(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_deactivateProductImg",
		store.P("productImgId", utils.ParseInt(c.FormValue("Id"), 0))))
}

func (h *Handler) UpdateProductImgOrder(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_updateProductImgOrder",
		store.P("productImgId", utils.ParseInt(c.FormValue("Id"), 0)),
		store.P("newProductImgOrder", utils.ParseInt(c.FormValue("newProductImgOrder"), 0))))
}
