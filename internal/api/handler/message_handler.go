package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careerconnect/jobboard/internal/api/metrics"
	"github.com/careerconnect/jobboard/internal/core/domain"
	"github.com/careerconnect/jobboard/internal/core/ports"
)

type MessageHandler struct {
	messageService ports.MessageService
}

func NewMessageHandler(messageService ports.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send stores a direct message from the caller.
//
// @Summary      Send message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Receiver and content"
// @Success      201   {object}  domain.Message
// @Failure      400   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.messageService.Send(c.Request().Context(), ident, req.ReceiverID, req.Content)
	if err != nil {
		return notFoundOnBadID(err, domain.ErrUserNotFound)
	}

	metrics.MessagesSentTotal.Inc()
	return c.JSON(http.StatusCreated, msg)
}

// Conversations lists the caller's messages grouped by counterpart.
//
// @Summary      List conversations
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Conversation
// @Router       /messages/conversations [get]
func (h *MessageHandler) Conversations(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	convs, err := h.messageService.Conversations(c.Request().Context(), ident)
	if err != nil {
		return err
	}
	if convs == nil {
		convs = []domain.Conversation{}
	}
	return c.JSON(http.StatusOK, convs)
}

// Conversation returns the messages exchanged with one user, oldest first.
//
// @Summary      Conversation with user
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "Counterpart user ID"
// @Success      200     {array}   domain.Message
// @Router       /messages/user/{userId} [get]
func (h *MessageHandler) Conversation(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	msgs, err := h.messageService.Conversation(c.Request().Context(), ident, c.Param("userId"))
	if err != nil {
		return notFoundOnBadID(err, domain.ErrUserNotFound)
	}
	if msgs == nil {
		msgs = []*domain.Message{}
	}
	return c.JSON(http.StatusOK, msgs)
}

// MarkRead flags a received message as read.
//
// @Summary      Mark message read
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Message ID"
// @Success      200  {object}  domain.Message
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /messages/{id}/read [patch]
func (h *MessageHandler) MarkRead(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	msg, err := h.messageService.MarkRead(c.Request().Context(), ident, c.Param("id"))
	if err != nil {
		return notFoundOnBadID(err, domain.ErrMessageNotFound)
	}
	return c.JSON(http.StatusOK, msg)
}

// Delete removes a message the caller sent.
//
// @Summary      Delete message
// @Tags         messages
// @Security     BearerAuth
// @Param        id   path  string  true  "Message ID"
// @Success      204
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /messages/{id} [delete]
func (h *MessageHandler) Delete(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.messageService.Delete(c.Request().Context(), ident, c.Param("id")); err != nil {
		return notFoundOnBadID(err, domain.ErrMessageNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

// Unread returns how many messages wait for the caller.
//
// @Summary      Unread message count
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  unreadResponse
// @Router       /messages/unread [get]
func (h *MessageHandler) Unread(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	n, err := h.messageService.UnreadCount(c.Request().Context(), ident)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unreadResponse{Count: n})
}
