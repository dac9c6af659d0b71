package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercass/storefront/internal/store"
	"github.com/mercass/storefront/internal/utils"
)

// CategoryDetail serves one category's detail row with the same guard
// shape as the user detail endpoint.
func (h *Handler) CategoryDetail(c echo.Context) error {
	id := utils.ParseInt(c.Param("id"), 0)
	if id <= 0 {
		return c.String(http.StatusInternalServerError, "Geçersiz kategori ID")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Store.Run(ctx, store.Query(
		"SELECT * FROM v_categoryDetails WHERE Id = @categoryId", store.P("categoryId", id)))
	if err != nil {
		return h.fail(c, err)
	}
	if len(res.First()) == 0 {
		return c.String(http.StatusInternalServerError, "Geçersiz kategori ID")
	}
	return c.JSON(http.StatusOK, res.First())
}

// CategoryStatisticsByID serves the statistics row for one category.
func (h *Handler) CategoryStatisticsByID(c echo.Context) error {
	id := utils.ParseInt(c.Param("id"), 0)
	if id <= 0 {
		return c.String(http.StatusInternalServerError, "Geçersiz kategori ID")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Store.Run(ctx, store.Query(
		"SELECT * FROM v_categoryStatistics WHERE Id = @id", store.P("id", id)))
	if err != nil {
		return h.fail(c, err)
	}
	if len(res.First()) == 0 {
		return c.String(http.StatusInternalServerError, "Geçersiz kategori ID")
	}
	return c.JSON(http.StatusOK, res.First())
}

// CreateCategories binds the full category field set into the creation
// procedure and returns its raw result.
func (h *Handler) CreateCategories(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_createCategories",
		store.P("categoryName", c.FormValue("categoryName")),
		store.P("categoryTitle", c.FormValue("categoryTitle")),
		store.P("categoryImg", c.FormValue("categoryImg")),
		store.P("categoryDesc", c.FormValue("categoryDesc")),
		store.P("categoryLevel", utils.ParseInt(c.FormValue("categoryLevel"), 0))))
}

// CategoriesFreeze hides a category from the storefront.
func (h *Handler) CategoriesFreeze(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_categoryFreeze",
		store.P("categoryId", utils.ParseInt(c.FormValue("categoryId"), 0))))
}

// DeleteCategory removes a category.
func (h *Handler) DeleteCategory(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_deleteCategory",
		store.P("categoryId", utils.ParseInt(c.FormValue("categoryId"), 0))))
}

// UpdateCategorySearchOrder repositions a category in search results.
func (h *Handler) UpdateCategorySearchOrder(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_updateCategorySearchOrder",
		store.P("categoryId", utils.ParseInt(c.FormValue("categoryId"), 0)),
		store.P("newSearchOrder", utils.ParseInt(c.FormValue("newSearchOrder"), 0))))
}
