package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercass/storefront/internal/middleware"
	"github.com/mercass/storefront/internal/store"
	"github.com/mercass/storefront/internal/utils"
)

// UserDetail serves one user's detail row. Non-positive ids are rejected
// before any store call; the admin grid treats the plain-text body as the
// error message.
func (h *Handler) UserDetail(c echo.Context) error {
	id := utils.ParseInt(c.Param("id"), 0)
	if id <= 0 {
		return c.String(http.StatusInternalServerError, "Geçersiz kullanıcı ID")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Store.Run(ctx, store.Query(
		"SELECT * FROM v_userDetails WHERE Id = @UserId", store.P("UserId", id)))
	if err != nil {
		return h.fail(c, err)
	}
	if len(res.First()) == 0 {
		return c.String(http.StatusInternalServerError, "Geçersiz kullanıcı ID")
	}
	return c.JSON(http.StatusOK, res.First())
}

// UsersProfileUpdate binds the full profile field set into the update
// procedure.
func (h *Handler) UsersProfileUpdate(c echo.Context) error {
	id := utils.ParseInt(c.FormValue("UserId"), 0)
	return h.runRaw(c, store.Proc("sp_updateUsers",
		store.P("UsersId", id),
		store.P("IdentityNumber", c.FormValue("IdentityNumber")),
		store.P("TAXNumber", c.FormValue("TAXNumber")),
		store.P("TAXOffice", c.FormValue("TAXOffice")),
		store.P("ProfileName", c.FormValue("ProfileName")),
		store.P("ProfileSurname", c.FormValue("ProfileSurname")),
		store.P("ProfileTitle", c.FormValue("ProfileTitle")),
		store.P("ProfileDesc", c.FormValue("ProfileDesc")),
		store.P("ProfilePhoto", c.FormValue("ProfilePhoto")),
		store.P("ProfileBG", c.FormValue("ProfileBG"))))
}

// UserPasswordChange runs the password procedure for the admin grid.
func (h *Handler) UserPasswordChange(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_ChangePassword",
		store.P("UsersId", utils.ParseInt(c.FormValue("UsersId"), 0)),
		store.P("oldPass", c.FormValue("oldPass")),
		store.P("newPass", c.FormValue("newPass"))))
}

// UsersCreate registers a new account.
func (h *Handler) UsersCreate(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_createUsers",
		store.P("Email", c.FormValue("Email")),
		store.P("UserName", c.FormValue("UserName")),
		store.P("pwd", c.FormValue("pwd")),
		store.P("PhoneNo", c.FormValue("PhoneNo"))))
}

// UserAccountAccept approves a pending account.
func (h *Handler) UserAccountAccept(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_userAccountAccept",
		store.P("UserId", utils.ParseInt(c.FormValue("UserId"), 0))))
}

// UserAccountFreeze suspends an account.
func (h *Handler) UserAccountFreeze(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_userAccountFrezee",
		store.P("UserId", utils.ParseInt(c.FormValue("UserId"), 0))))
}

// UserAccountBlackList bans an account with a reason.
func (h *Handler) UserAccountBlackList(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_userAccountBlackList",
		store.P("UserId", utils.ParseInt(c.FormValue("UserId"), 0)),
		store.P("RText", c.FormValue("RText"))))
}

// UpdateMyAccount saves the signed-in user's profile page. New profile
// and background images arrive as multipart files; their stored URLs are
// bound into the procedure, empty strings mean keep the current image.
func (h *Handler) UpdateMyAccount(c echo.Context) error {
	userID := middleware.UserID(c)

	form, err := c.MultipartForm()
	if err != nil {
		return h.fail(c, err)
	}
	files := form.File["file"]

	fileURL := func(idx int) (string, error) {
		if idx >= len(files) {
			return "", nil
		}
		src, err := files[idx].Open()
		if err != nil {
			return "", err
		}
		defer src.Close()
		return h.Uploads.Save("userProfile", userID, files[idx].Filename, src)
	}

	photo, bg := "", ""
	next := 0
	if c.FormValue("isNewUploadProfile") == "true" {
		if photo, err = fileURL(next); err != nil {
			return h.fail(c, err)
		}
		next++
	}
	if c.FormValue("isNewUploadProfileBg") == "true" {
		if bg, err = fileURL(next); err != nil {
			return h.fail(c, err)
		}
	}

	return h.runRaw(c, store.Proc("sp_updateUsersProfile",
		store.P("userId", userID),
		store.P("ProfileTitle", c.FormValue("ProfileTitle")),
		store.P("ProfileDesc", c.FormValue("ProfileDesc")),
		store.P("ProvinceId", utils.ParseInt(c.FormValue("ProvinceId"), 0)),
		store.P("ProfilePhoto", photo),
		store.P("ProfileBG", bg)))
}

// UpdateMyAccountInfo saves the base account fields and normalizes the
// procedure's Success/Message pair into the envelope the page scripts read.
func (h *Handler) UpdateMyAccountInfo(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Store.Run(ctx, store.Proc("sp_updateUsersProfileBase",
		store.P("UsersId", middleware.UserID(c)),
		store.P("IdentityNumber", c.FormValue("IdentityNumber")),
		store.P("ProfileName", c.FormValue("account_first_name")),
		store.P("ProfileSurname", c.FormValue("account_last_name")),
		store.P("UserName", c.FormValue("UserName")),
		store.P("Email", c.FormValue("account_email")),
		store.P("PhoneNo", c.FormValue("UserPhone"))))
	if err != nil {
		return h.fail(c, err)
	}

	first := res.First()
	if len(first) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"Success": 0, "ErrMessage": "Beklenmeyen bir hata oluştu."})
	}
	message := first[0]["Message"]
	if utils.AnyInt(first[0]["Success"], 0) == 1 {
		return c.JSON(http.StatusOK, echo.Map{"Success": 1, "Message": message})
	}
	return c.JSON(http.StatusOK, echo.Map{"Success": 0, "ErrMessage": message})
}

// UpdateMyAccountPassword validates the form locally before delegating to
// the password procedure.
func (h *Handler) UpdateMyAccountPassword(c echo.Context) error {
	current := c.FormValue("account_current_password")
	newPass := c.FormValue("account_new_password")
	confirm := c.FormValue("account_confirm_password")

	if newPass != confirm {
		return c.JSON(http.StatusBadRequest, echo.Map{"ErrCode": 1, "ErrMessage": "Şifreler Uyuşmuyor"})
	}
	if current == newPass {
		return c.JSON(http.StatusBadRequest, echo.Map{"ErrCode": 1, "ErrMessage": "Yeni Şifre eski şifre ile aynı olamaz"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Store.Run(ctx, store.Proc("sp_ChangePassword",
		store.P("UsersId", middleware.UserID(c)),
		store.P("newPass", newPass),
		store.P("oldPass", current)))
	if err != nil {
		return h.fail(c, err)
	}

	first := res.First()
	if len(first) > 0 && utils.AnyInt(first[0]["Success"], 0) == 1 {
		return c.JSON(http.StatusOK, echo.Map{"ErrCode": 0, "ErrMessage": "Şifre başarıyla güncellendi"})
	}
	message := "Kullanıcı şifre güncellemesi yapılamadı."
	if len(first) > 0 {
		if m, ok := first[0]["Message"].(string); ok && m != "" {
			message = m
		}
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"ErrCode": 2, "ErrMessage": message})
}
