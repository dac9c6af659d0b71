package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mercass/storefront/internal/authclient"
	"github.com/mercass/storefront/internal/device"
	"github.com/mercass/storefront/internal/middleware"
	"github.com/mercass/storefront/internal/store"
	"github.com/mercass/storefront/internal/utils"
)

// loginRequest assembles the delegation payload: a fresh session token,
// the classified device and the fingerprint bound to it. The single login
// field holds either an e-mail or a username.
func (h *Handler) loginRequest(c echo.Context) authclient.LoginRequest {
	login := c.FormValue("login_email")
	password := c.FormValue("login_password")

	userAgent := c.Request().UserAgent()
	ip := c.RealIP()
	info := device.Detect(userAgent)

	req := authclient.LoginRequest{
		Password:     password,
		UserAgent:    userAgent,
		IsMobile:     info.IsMobile,
		BrowserName:  info.Browser,
		Os:           info.OS,
		Auth:         uuid.NewString(),
		ValidHash:    device.Fingerprint(userAgent, info, ip),
		ConnectionIP: ip,
		Devices:      info.DeviceType,
	}
	if utils.ValidEmail(login) {
		req.Email = login
		req.UserName = login
	} else {
		req.UserName = login
	}
	return req
}

func setAuthCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.AuthCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}

func clearAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:   middleware.AuthCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

// Login handles the form post. Success sets the session cookie and lands
// on the storefront; a rejection goes back to the login page carrying the
// service's code and message.
func (h *Handler) Login(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	sess, err := h.Auth.Login(ctx, h.loginRequest(c))
	if err != nil {
		var apiErr *authclient.APIError
		if errors.As(err, &apiErr) {
			return redirectLoginError(c, apiErr.ErrCode, apiErr.ErrMessage)
		}
		return redirectLoginError(c, "500", "Giriş yapılamadı")
	}

	setAuthCookie(c, sess.Auth)
	return c.Redirect(http.StatusFound, "/")
}

// LoginAJAX is the same delegation returned as JSON for script-driven
// logins. The cookie is set only on success.
func (h *Handler) LoginAJAX(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	sess, err := h.Auth.Login(ctx, h.loginRequest(c))
	if err != nil {
		var apiErr *authclient.APIError
		clearAuthCookie(c)
		if errors.As(err, &apiErr) {
			return c.JSON(http.StatusOK, apiErr)
		}
		return h.fail(c, err)
	}

	setAuthCookie(c, sess.Auth)
	return c.JSON(http.StatusOK, sess)
}

// Logout drops the session cookie and lands on the login page.
func (h *Handler) Logout(c echo.Context) error {
	clearAuthCookie(c)
	return c.Redirect(http.StatusFound, middleware.LoginPath+"?ErrC=exit")
}

func redirectLoginError(c echo.Context, code, message string) error {
	q := url.Values{}
	q.Set("ErrC", code)
	q.Set("ErrM", message)
	return c.Redirect(http.StatusFound, middleware.LoginPath+"?"+q.Encode())
}

// LoginPage renders the standalone login template.
func (h *Handler) LoginPage(c echo.Context) error {
	return h.page(c, "login", nil, nil)
}

// UserLoginAndRegister renders the combined login/register page.
func (h *Handler) UserLoginAndRegister(c echo.Context) error {
	return h.page(c, "userloginAndRegister", nil, nil)
}

// CreateOTP asks the store to issue a one-time code for the phone number.
func (h *Handler) CreateOTP(c echo.Context) error {
	var body struct {
		Tel string `json:"Tel" form:"Tel"`
	}
	if err := c.Bind(&body); err != nil {
		return h.fail(c, err)
	}
	return h.runRaw(c, store.Proc("createOTP", store.P("phone", body.Tel)))
}

// ValidOTP verifies a one-time code; the response carries only the
// validity flag.
func (h *Handler) ValidOTP(c echo.Context) error {
	var body struct {
		Telefon string `json:"telefon" form:"telefon"`
		SMSCode string `json:"SMSCode" form:"SMSCode"`
	}
	if err := c.Bind(&body); err != nil {
		return h.fail(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Store.Run(ctx, store.Proc("validOTP",
		store.P("phone", body.Telefon),
		store.P("code", body.SMSCode)))
	if err != nil {
		return h.fail(c, err)
	}

	valid := false
	if first := res.First(); len(first) > 0 {
		valid = utils.AnyInt(first[0]["is_valid"], 0) == 1
	}
	return c.JSON(http.StatusOK, echo.Map{"istelvalid": valid})
}

// GetUsersProfile returns the profile attached by the middleware in the
// shape the account scripts expect.
func (h *Handler) GetUsersProfile(c echo.Context) error {
	profile, _ := c.Get("userProfile").(store.Recordset)
	if len(profile) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{
			"success": false,
			"message": "Kullanıcı profili bulunamadı",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    profile[0],
	})
}
