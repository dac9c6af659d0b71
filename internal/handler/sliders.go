package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mercass/storefront/internal/store"
	"github.com/mercass/storefront/internal/utils"
)

// CreateSlider binds the full slider field set into the creation
// procedure.
func (h *Handler) CreateSlider(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_createSlider",
		store.P("categoryId", utils.ParseInt(c.FormValue("categoryId"), 0)),
		store.P("slayt", c.FormValue("slayt")),
		store.P("title", c.FormValue("title")),
		store.P("subTitle", c.FormValue("subTitle")),
		store.P("button1Action", c.FormValue("button1Action")),
		store.P("button2Action", c.FormValue("button2Action")),
		store.P("button3Action", c.FormValue("button3Action")),
		store.P("isActive", utils.ParseInt(c.FormValue("isActive"), 0)),
		store.P("pageOrder", utils.ParseInt(c.FormValue("pageOrder"), 0)),
		store.P("autoPassTime", utils.ParseInt(c.FormValue("autoPassTime"), 0)),
		store.P("createBy", c.FormValue("createBy")),
		store.P("updateBy", c.FormValue("updateBy"))))
}

// UpdateSlider rewrites an existing slider.
func (h *Handler) UpdateSlider(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_updateSlider",
		store.P("sliderId", utils.ParseInt(c.FormValue("sliderId"), 0)),
		store.P("categoryId", utils.ParseInt(c.FormValue("categoryId"), 0)),
		store.P("slayt", c.FormValue("slayt")),
		store.P("title", c.FormValue("title")),
		store.P("subTitle", c.FormValue("subTitle")),
		store.P("button1Action", c.FormValue("button1Action")),
		store.P("button2Action", c.FormValue("button2Action")),
		store.P("button3Action", c.FormValue("button3Action")),
		store.P("isActive", utils.ParseInt(c.FormValue("isActive"), 0)),
		store.P("pageOrder", utils.ParseInt(c.FormValue("pageOrder"), 0)),
		store.P("autoPassTime", utils.ParseInt(c.FormValue("autoPassTime"), 0)),
		store.P("updateBy", c.FormValue("updateBy"))))
}

// UpdateSliderOrder repositions a slider on the landing page.
func (h *Handler) UpdateSliderOrder(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_updateSliderOrder",
		store.P("sliderId", utils.ParseInt(c.FormValue("Id"), 0)),
		store.P("newPageOrder", utils.ParseInt(c.FormValue("newPageOrder"), 0))))
}

// DeleteSlider removes a slider.
func (h *Handler) DeleteSlider(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_deleteSlider",
		store.P("sliderId", utils.ParseInt(c.FormValue("Id"), 0))))
}

// ActivateSlider shows a slider on the landing page.
func (h *Handler) ActivateSlider(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_activateSlider",
		store.P("sliderId", utils.ParseInt(c.FormValue("Id"), 0))))
}

// DeactivateSlider hides a slider.
func (h *Handler) DeactivateSlider(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_deactivateSlider",
		store.P("sliderId", utils.ParseInt(c.FormValue("Id"), 0))))
}
