package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shulehub/shule-backend/internal/middleware"
	"github.com/shulehub/shule-backend/internal/model"
	"github.com/shulehub/shule-backend/internal/response"
	"github.com/shulehub/shule-backend/internal/service"
	"github.com/shulehub/shule-backend/internal/validator"
)

// MessageHandler handles user messaging and notifications.
type MessageHandler struct {
	messageService      *service.MessageService
	notificationService *service.NotificationService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *service.MessageService, notificationService *service.NotificationService) *MessageHandler {
	return &MessageHandler{messageService: messageService, notificationService: notificationService}
}

// SendMessage godoc
// POST /api/v1/messages
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req model.SendMessageRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	msg, err := h.messageService.Send(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		if errors.Is(err, service.ErrRecipientNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": msg})
}

// Inbox godoc
// GET /api/v1/messages/inbox
func (h *MessageHandler) Inbox(c *gin.Context) {
	claims := middleware.GetClaims(c)
	messages, err := h.messageService.Inbox(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"messages": messages})
}

// UnreadCount godoc
// GET /api/v1/messages/unread
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	claims := middleware.GetClaims(c)
	count, err := h.messageService.UnreadCount(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread": count})
}

// Sent godoc
// GET /api/v1/messages/sent
func (h *MessageHandler) Sent(c *gin.Context) {
	claims := middleware.GetClaims(c)
	messages, err := h.messageService.Sent(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"messages": messages})
}

// ReadMessage godoc
// GET /api/v1/messages/:id
// Fetches one message; stamps it read when the caller is the receiver.
func (h *MessageHandler) ReadMessage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	claims := middleware.GetClaims(c)
	msg, err := h.messageService.Read(c.Request.Context(), id, claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": msg})
}

// ListNotifications godoc
// GET /api/v1/notifications?limit=
func (h *MessageHandler) ListNotifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	claims := middleware.GetClaims(c)
	notifications, err := h.notificationService.List(c.Request.Context(), claims.UserID, limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"notifications": notifications})
}

// MarkNotificationsRead godoc
// POST /api/v1/notifications/read
func (h *MessageHandler) MarkNotificationsRead(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.notificationService.MarkAllRead(c.Request.Context(), claims.UserID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "notifications marked read"})
}
