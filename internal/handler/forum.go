package handler

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mercass/storefront/internal/middleware"
	"github.com/mercass/storefront/internal/store"
	"github.com/mercass/storefront/internal/utils"
)

const (
	forumDraftArea   = "ForumResimler"
	forumPublishArea = "ForumPost"
)

// ForumPage renders the forum with the user's draft, the category tree
// and the feed scoped to the user's categories.
func (h *Handler) ForumPage(c echo.Context) error {
	userID := middleware.UserID(c)

	forumCmd := store.Query("SELECT * FROM v_forum")
	if cats, ok := c.Get("userCategories").(store.Recordset); ok && len(cats) > 0 {
		placeholders := make([]string, 0, len(cats))
		params := make([]store.Param, 0, len(cats))
		for i, row := range cats {
			name := fmt.Sprintf("c%d", i)
			placeholders = append(placeholders, "@"+name)
			params = append(params, store.P(name, utils.AnyInt(row["categoryId"], 0)))
		}
		forumCmd = store.Query(
			"SELECT * FROM v_forum WHERE categoryId IN ("+strings.Join(placeholders, ", ")+")",
			params...)
	}

	return h.pageMulti(c, "forum",
		[]store.Command{
			store.Proc("sp_getDraftFormPost", store.P("UserId", userID)),
			store.Query("SELECT * FROM v_allCategories"),
			store.Query("SELECT * FROM v_forumImages"),
			forumCmd,
			store.Query("SELECT * FROM v_forumComment"),
			store.Query("SELECT frm.*, frmImg.imgUrl, frmCmt.commentText FROM v_forum AS frm " +
				"LEFT JOIN v_forumImages AS frmImg ON frm.Id = frmImg.forumId " +
				"LEFT JOIN v_forumComment AS frmCmt ON frm.Id = frmCmt.forumId"),
		},
		[]string{"DraftData", "allCategories", "forumImages", "forum", "forumComment", "allForumData"})
}

// GetForumPost pages the feed five posts at a time.
func (h *Handler) GetForumPost(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_getFormPost2",
		store.P("UserId", utils.ParseInt(c.FormValue("userId"), 0)),
		store.P("f", utils.ParseInt(c.FormValue("first"), 0)),
		store.P("l", 5)))
}

// GetDraftForumPost returns the user's current draft.
func (h *Handler) GetDraftForumPost(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_getDraftFormPost",
		store.P("UserId", utils.ParseInt(c.FormValue("userId"), 0))))
}

// UpdateDraftForumPost saves the draft text and category.
func (h *Handler) UpdateDraftForumPost(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_createDraft_ForumPost",
		store.P("userId", utils.ParseInt(c.FormValue("UserId"), 0)),
		store.P("categoryId", utils.ParseInt(c.FormValue("postCategoryId"), 0)),
		store.P("contentText", c.FormValue("postDesc")),
		store.P("image", "")))
}

// DeleteDraftForumPostImage drops one draft image: the procedure returns
// the stored URL, whose file is then removed from the draft area.
func (h *Handler) DeleteDraftForumPostImage(c echo.Context) error {
	imgID := utils.ParseInt(c.FormValue("ImgID"), 0)

	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Store.Run(ctx, store.Proc("sp_deleteDraft_ForumImage",
		store.P("D_forumImage_ID", imgID)))
	if err != nil {
		return h.fail(c, err)
	}

	if first := res.First(); len(first) > 0 {
		if url, ok := first[0]["IMGUrl"].(string); ok && url != "" {
			if err := h.Uploads.Delete(forumDraftArea, middleware.UserID(c), path.Base(url)); err != nil {
				return h.fail(c, err)
			}
		}
	}
	return c.JSON(http.StatusOK, imgID)
}

// DeleteDraftForumPost discards the draft and every image staged for it.
func (h *Handler) DeleteDraftForumPost(c echo.Context) error {
	userID := int64(utils.ParseInt(c.FormValue("userId"), 0))

	names, err := h.Uploads.List(forumDraftArea, userID)
	if err != nil {
		return h.fail(c, err)
	}
	for _, name := range names {
		if err := h.Uploads.Delete(forumDraftArea, userID, name); err != nil {
			return h.fail(c, err)
		}
	}

	return h.runRaw(c, store.Proc("sp_deleteDraft_Forum", store.P("UserId", userID)))
}

// CreateForumPost publishes the draft, moving its staged images into the
// published area first.
func (h *Handler) CreateForumPost(c echo.Context) error {
	userID := int64(utils.ParseInt(c.FormValue("userId"), 0))

	if _, err := h.Uploads.Move(forumDraftArea, forumPublishArea, userID); err != nil {
		return h.fail(c, err)
	}

	return h.runRaw(c, store.Proc("sp_createForumPost", store.P("UserId", userID)))
}

// ForumAddLike records a like on a post.
func (h *Handler) ForumAddLike(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_forumAddLike",
		store.P("forumId", utils.ParseInt(c.FormValue("forumId"), 0)),
		store.P("userId", utils.ParseInt(c.FormValue("userId"), 0))))
}

// ForumRemoveLike withdraws a like.
func (h *Handler) ForumRemoveLike(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_forumRemoveLike",
		store.P("forumId", utils.ParseInt(c.FormValue("forumId"), 0)),
		store.P("userId", utils.ParseInt(c.FormValue("userId"), 0))))
}

// ForumCommentAdd appends a comment to a post.
func (h *Handler) ForumCommentAdd(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_forumAddComment",
		store.P("forumId", utils.ParseInt(c.FormValue("forumId"), 0)),
		store.P("userId", utils.ParseInt(c.FormValue("userId"), 0)),
		store.P("commentText", c.FormValue("commentText"))))
}

// ForumFeed serves the feed scoped to a comma-separated category id list.
func (h *Handler) ForumFeed(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_getFormPost",
		store.P("cIds", c.QueryParam("uCatsId"))))
}

// ForumComments serves the comments of one post.
func (h *Handler) ForumComments(c echo.Context) error {
	return h.runFirst(c, store.Query(
		"SELECT * FROM v_forumComment WHERE forumId = @forumId",
		store.P("forumId", utils.ParseInt(c.Param("forumId"), 0))))
}

// ForumImages serves the images of one post.
func (h *Handler) ForumImages(c echo.Context) error {
	return h.runFirst(c, store.Query(
		"SELECT * FROM v_forumImages WHERE forumId = @forumId",
		store.P("forumId", utils.ParseInt(c.Param("forumId"), 0))))
}

// CreateForumPostAPI creates a post directly with its full field set.
func (h *Handler) CreateForumPostAPI(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_createForumPost",
		store.P("userId", utils.ParseInt(c.FormValue("userId"), 0)),
		store.P("categoryId", utils.ParseInt(c.FormValue("categoryId"), 0)),
		store.P("provinceId", utils.ParseInt(c.FormValue("provinceId"), 0)),
		store.P("contentText", c.FormValue("contentText")),
		store.P("imageList", c.FormValue("imageList"))))
}

// UpdateForumPost rewrites an existing post.
func (h *Handler) UpdateForumPost(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_updateForumPost",
		store.P("forumId", utils.ParseInt(c.FormValue("forumId"), 0)),
		store.P("userId", utils.ParseInt(c.FormValue("userId"), 0)),
		store.P("categoryId", utils.ParseInt(c.FormValue("categoryId"), 0)),
		store.P("provinceId", utils.ParseInt(c.FormValue("provinceId"), 0)),
		store.P("contentText", c.FormValue("contentText")),
		store.P("imageList", c.FormValue("imageList"))))
}

// DeleteForum removes a post.
func (h *Handler) DeleteForum(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_deleteForum",
		store.P("forumId", utils.ParseInt(c.FormValue("forumId"), 0))))
}

// DeleteForumComment removes one comment.
func (h *Handler) DeleteForumComment(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_deleteForumComment",
		store.P("forumCommentId", utils.ParseInt(c.FormValue("forumCommentId"), 0))))
}

// DeleteForumImg removes one published image record.
func (h *Handler) DeleteForumImg(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_deleteForumImg",
		store.P("forumImgId", utils.ParseInt(c.FormValue("forumImgId"), 0))))
}
