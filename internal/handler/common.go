// Package handler implements every page and API route of the storefront.
// Handlers bind request values into named procedure parameters, run them
// through the store and shape the result for the page or the admin grid.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mercass/storefront/internal/authclient"
	"github.com/mercass/storefront/internal/config"
	"github.com/mercass/storefront/internal/payment"
	"github.com/mercass/storefront/internal/render"
	"github.com/mercass/storefront/internal/store"
	"github.com/mercass/storefront/internal/upload"
)

const storeTimeout = 5 * time.Second

// Handler bundles the dependencies shared by every route.
type Handler struct {
	Store    store.Querier
	Auth     *authclient.Client
	Uploads  *upload.Store
	Payments *payment.Client
	Settings map[string]string
	CDNBase  string
	Secret   string
}

func New(q store.Querier, auth *authclient.Client, uploads *upload.Store, payments *payment.Client, cfg *config.Config) *Handler {
	return &Handler{
		Store:    q,
		Auth:     auth,
		Uploads:  uploads,
		Payments: payments,
		Settings: cfg.FrontEnd,
		CDNBase:  cfg.CDNBaseURL,
		Secret:   cfg.SecretKey,
	}
}

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), storeTimeout)
}

// fail emits the unified error envelope and logs the cause.
func (h *Handler) fail(c echo.Context, err error) error {
	slog.Error("request failed", "path", c.Path(), "error", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"ErrCode":    "500",
		"ErrMessage": "İşlem gerçekleştirilemedi",
	})
}

// runFirst executes one command and emits its first recordset as JSON.
func (h *Handler) runFirst(c echo.Context, cmd store.Command) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Store.Run(ctx, cmd)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, res.First())
}

// runRaw executes one command and emits the whole result verbatim, the
// shape admin grids consume for mutations.
func (h *Handler) runRaw(c echo.Context, cmd store.Command) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Store.Run(ctx, cmd)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// runFirstRow emits only the first row of the first recordset.
func (h *Handler) runFirstRow(c echo.Context, cmd store.Command) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Store.Run(ctx, cmd)
	if err != nil {
		return h.fail(c, err)
	}
	first := res.First()
	if len(first) == 0 {
		return c.JSON(http.StatusOK, store.Row{})
	}
	return c.JSON(http.StatusOK, first[0])
}

// ListView serves SELECT * over one named view. The view name is a
// compile-time constant at every call site.
func (h *Handler) ListView(view string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.runFirst(c, store.Query("SELECT * FROM "+view))
	}
}

// page renders a view with the standard envelope.
func (h *Handler) page(c echo.Context, view string, data, gridprop any) error {
	return c.Render(http.StatusOK, view, render.Params(c, data, gridprop, "main", h.Settings))
}

// pageMulti loads the named recordsets and renders the view with them.
func (h *Handler) pageMulti(c echo.Context, view string, cmds []store.Command, names []string) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	data, err := h.Store.RunMulti(ctx, cmds, names)
	if err != nil {
		return h.fail(c, err)
	}
	return h.page(c, view, data, nil)
}

// staticPage renders a template that needs no data beyond the envelope.
func (h *Handler) staticPage(view string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.page(c, view, nil, nil)
	}
}
