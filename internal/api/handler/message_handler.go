package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gigboard/marketplace/internal/core/domain"
	"github.com/gigboard/marketplace/internal/core/ports"
)

// Enqueuer accepts messages for asynchronous delivery.
type Enqueuer interface {
	Enqueue(msg ports.SendMessageInput)
}

// MessageHandler handles HTTP requests for conversations and messages.
type MessageHandler struct {
	service ports.MessageService
	queue   Enqueuer
}

func NewMessageHandler(service ports.MessageService, queue Enqueuer) *MessageHandler {
	return &MessageHandler{service: service, queue: queue}
}

// List handles GET /v1/conversations.
//
// @Summary      List the caller's conversations
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  false  "Filter by counterpart name"
// @Success      200  {object}  listConversationsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/conversations [get]
func (h *MessageHandler) List(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	items, err := h.service.Conversations(c.Request().Context(), who.ID, c.QueryParam("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toConversationListResponse(items))
}

// Start handles POST /v1/conversations. An existing thread between the two
// accounts is returned instead of opening a second one.
//
// @Summary      Start a conversation
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      startConversationRequest  true  "Counterpart"
// @Success      201   {object}  conversationResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/conversations [post]
func (h *MessageHandler) Start(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req startConversationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	conv, err := h.service.StartConversation(c.Request().Context(),
		domain.Participant{ID: who.ID, Name: who.Name},
		domain.Participant{ID: req.ParticipantID, Name: req.ParticipantName},
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toConversationResponse(conv))
}

// Messages handles GET /v1/conversations/:id/messages. Reading marks the
// caller's incoming messages as read.
//
// @Summary      Read a conversation
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Conversation id"
// @Success      200  {object}  listMessagesResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/conversations/{id}/messages [get]
func (h *MessageHandler) Messages(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	msgs, err := h.service.Messages(c.Request().Context(), c.Param("id"), who.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toMessageListResponse(msgs))
}

// Send handles POST /v1/conversations/:id/messages. Membership is checked
// before the message is queued; delivery itself is asynchronous.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Conversation id"
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/conversations/{id}/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	conv, err := h.service.Conversation(c.Request().Context(), c.Param("id"), who.ID)
	if err != nil {
		return respondError(c, err)
	}

	h.queue.Enqueue(ports.SendMessageInput{
		ConversationID: conv.ID,
		SenderID:       who.ID,
		SenderName:     who.Name,
		Content:        req.Content,
	})
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "message queued"})
}
