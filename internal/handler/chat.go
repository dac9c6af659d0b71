package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercass/storefront/internal/middleware"
	"github.com/mercass/storefront/internal/store"
	"github.com/mercass/storefront/internal/utils"
)

// ChatPage renders the conversation list.
func (h *Handler) ChatPage(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Store.Run(ctx, store.Proc("sp_getChatList",
		store.P("UserId", middleware.UserID(c))))
	if err != nil {
		return h.fail(c, err)
	}
	return h.page(c, "chat", res.First(), nil)
}

// ChatPageForProduct opens (or reuses) the conversation for a product and
// then renders the list.
func (h *Handler) ChatPageForProduct(c echo.Context) error {
	userID := middleware.UserID(c)

	ctx, cancel := reqCtx(c)
	defer cancel()
	if _, err := h.Store.Run(ctx, store.Proc("sp_NewChat",
		store.P("UserId", userID),
		store.P("ProductId", utils.ParseInt(c.Param("prodId"), 0)))); err != nil {
		return h.fail(c, err)
	}

	res, err := h.Store.Run(ctx, store.Proc("sp_getChatList", store.P("UserId", userID)))
	if err != nil {
		return h.fail(c, err)
	}
	return h.page(c, "chat", res.First(), nil)
}

// GetChatMessages returns one conversation: messages grouped by day plus
// the attached files and the seller header.
func (h *Handler) GetChatMessages(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Store.Run(ctx, store.Proc("sp_getChatMessage",
		store.P("ChatId", utils.ParseInt(c.FormValue("chatId"), 0)),
		store.P("UserId", middleware.UserID(c))))
	if err != nil {
		return h.fail(c, err)
	}

	var messages []map[string]any
	for _, row := range res.First() {
		messages = append(messages, row)
	}
	var files, seller store.Recordset
	if len(res.Recordsets) > 1 {
		files = res.Recordsets[1]
	}
	if len(res.Recordsets) > 2 {
		seller = res.Recordsets[2]
	}

	return c.JSON(http.StatusOK, echo.Map{
		"messages": utils.GroupBy(messages, "MessageDay"),
		"files":    files,
		"seller":   seller,
	})
}

// ChatDel hides a conversation for the receiving user.
func (h *Handler) ChatDel(c echo.Context) error {
	return h.chatFlag(c, "sp_ChatDel")
}

// ChatRead marks a conversation read.
func (h *Handler) ChatRead(c echo.Context) error {
	return h.chatFlag(c, "sp_ChatRead")
}

// ChatUnRead marks a conversation unread again.
func (h *Handler) ChatUnRead(c echo.Context) error {
	return h.chatFlag(c, "sp_ChatUnRead")
}

func (h *Handler) chatFlag(c echo.Context, proc string) error {
	return h.runFirstRow(c, store.Proc(proc,
		store.P("ChatId", utils.ParseInt(c.FormValue("chatId"), 0)),
		store.P("ReceiverId", middleware.UserID(c))))
}

// AnswerChat appends a text message to a conversation.
func (h *Handler) AnswerChat(c echo.Context) error {
	return h.runRaw(c, store.Proc("answerChat",
		store.P("UserId", utils.ParseInt(c.FormValue("UserId"), 0)),
		store.P("ChatId", utils.ParseInt(c.FormValue("chatId"), 0)),
		store.P("message", c.FormValue("message")),
		store.P("hasfile", 0),
		store.P("filelink", ""),
		store.P("fname", "")))
}

// NewChat opens (or reuses) the conversation for a product and returns
// its header row.
func (h *Handler) NewChat(c echo.Context) error {
	return h.runFirstRow(c, store.Proc("sp_NewChat",
		store.P("UserId", middleware.UserID(c)),
		store.P("ProductId", utils.ParseInt(c.FormValue("productId"), 0))))
}

// AttachFileToMessage links an already-uploaded file to a chat message.
func (h *Handler) AttachFileToMessage(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Store.Run(ctx, store.Query(
		"INSERT INTO ChatMessageFile (ChatMessageId, fname, fileLink, createdate, fileOwnerId) "+
			"VALUES (@ChatMessageId, @FileName, @FileLink, GETDATE(), @FileOwnerId); "+
			"SELECT SCOPE_IDENTITY() AS fileId;",
		store.P("ChatMessageId", utils.ParseInt(c.FormValue("chatMessageId"), 0)),
		store.P("FileName", c.FormValue("fileName")),
		store.P("FileLink", c.FormValue("fileLink")),
		store.P("FileOwnerId", utils.ParseInt(c.FormValue("fileOwnerId"), 0))))
	if err != nil {
		return h.fail(c, err)
	}

	var fileID any
	if first := res.First(); len(first) > 0 {
		fileID = first[0]["fileId"]
	}
	return c.JSON(http.StatusOK, echo.Map{"fileId": fileID})
}

// MarkMessagesAsRead flags a whole conversation as read.
func (h *Handler) MarkMessagesAsRead(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	_, err := h.Store.Exec(ctx, store.Query(
		"UPDATE ChatMessage SET isread = 1 WHERE ChatId = @ChatId; "+
			"UPDATE Chat SET isread = 1 WHERE Id = @ChatId;",
		store.P("ChatId", utils.ParseInt(c.FormValue("chatId"), 0))))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
