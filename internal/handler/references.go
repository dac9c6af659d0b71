package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mercass/storefront/internal/store"
	"github.com/mercass/storefront/internal/utils"
)

// CreateReference adds a partner-logo reference to the landing page.
func (h *Handler) CreateReference(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_createReference",
		store.P("title", c.FormValue("title")),
		store.P("refImg", c.FormValue("refImg")),
		store.P("isActive", utils.ParseInt(c.FormValue("isActive"), 0)),
		store.P("isDeleted", utils.ParseInt(c.FormValue("isDeleted"), 0)),
		store.P("refLink", c.FormValue("refLink")),
		store.P("createBy", c.FormValue("createBy")),
		store.P("updateBy", c.FormValue("updateBy"))))
}

// UpdateReference rewrites an existing reference.
func (h *Handler) UpdateReference(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_updateReference",
		store.P("referenceId", utils.ParseInt(c.FormValue("referenceId"), 0)),
		store.P("title", c.FormValue("title")),
		store.P("refImg", c.FormValue("refImg")),
		store.P("isActive", utils.ParseInt(c.FormValue("isActive"), 0)),
		store.P("isDeleted", utils.ParseInt(c.FormValue("isDeleted"), 0)),
		store.P("refLink", c.FormValue("refLink")),
		store.P("updateBy", c.FormValue("updateBy"))))
}

// DeleteReference removes a reference.
func (h *Handler) DeleteReference(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_deleteReference",
		store.P("referenceId", utils.ParseInt(c.FormValue("Id"), 0))))
}

// ActivateReference shows a reference.
func (h *Handler) ActivateReference(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_activateReference",
		store.P("referenceId", utils.ParseInt(c.FormValue("Id"), 0))))
}

// DeactivateReference hides a reference.
func (h *Handler) DeactivateReference(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_deactivateReference",
		store.P("referenceId", utils.ParseInt(c.FormValue("Id"), 0))))
}
