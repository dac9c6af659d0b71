package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mercass/storefront/internal/middleware"
)

// registerForumAndChat wires the forum page, post lifecycle and the chat
// endpoints.
func registerForumAndChat(e *echo.Echo, d Deps) {
	h := d.Handler
	authCheck := middleware.AuthCheck(d.Auth)
	withProfile := middleware.WithProfile(d.Store)
	showMenu := middleware.ShowMenu(d.Store)
	withUserCategories := middleware.WithUserCategories(d.Store)

	// Forum.
	e.GET("/forum", h.ForumPage, authCheck, withProfile, withUserCategories, showMenu)
	e.POST("/GetForumPost", h.GetForumPost)
	e.POST("/GetDraftForumPost", h.GetDraftForumPost)
	e.POST("/UpdateDraftForumPost", h.UpdateDraftForumPost)
	e.POST("/deleteDraftForumPostImage", h.DeleteDraftForumPostImage, authCheck)
	e.POST("/deleteDraftForumPost", h.DeleteDraftForumPost)
	e.POST("/CrateForumPost", h.CreateForumPost)
	e.POST("/forumAddLike", h.ForumAddLike)
	e.POST("/forumRemoveLike", h.ForumRemoveLike)
	e.POST("/forumCommentAdd", h.ForumCommentAdd)

	e.GET("/api/forum", h.ForumFeed)
	e.POST("/api/forumComments/:forumId", h.ForumComments)
	e.POST("/api/forumImages/:forumId", h.ForumImages)
	e.POST("/api/createForumPost", h.CreateForumPostAPI)
	e.POST("/api/updateForumPost", h.UpdateForumPost)
	e.POST("/api/deleteForum", h.DeleteForum)
	e.POST("/api/deleteForumComment", h.DeleteForumComment)
	e.POST("/api/deleteForumImg", h.DeleteForumImg)

	// Chat.
	e.GET("/chat", h.ChatPage, authCheck, showMenu, withProfile)
	e.GET("/chat/:prodId", h.ChatPageForProduct, authCheck, showMenu, withProfile)
	e.POST("/GetChatMessages", h.GetChatMessages, authCheck)
	e.POST("/ChatDel", h.ChatDel, authCheck)
	e.POST("/ChatRead", h.ChatRead, authCheck)
	e.POST("/ChatUnRead", h.ChatUnRead, authCheck)
	e.POST("/AnswerChat", h.AnswerChat)
	e.POST("/newChat", h.NewChat, authCheck)
	e.POST("/AttachFileToMessage", h.AttachFileToMessage)
	e.POST("/MarkMessagesAsRead", h.MarkMessagesAsRead)
}
