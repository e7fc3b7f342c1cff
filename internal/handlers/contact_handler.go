package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pgf/backend/internal/models"
	"github.com/pgf/backend/internal/services"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// CreateMessage receives a message from the public contact form
// POST /contact
func (h *ContactHandler) CreateMessage(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required"`
		Phone   string `json:"phone"`
		Subject string `json:"subject"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.contactService.Create(&models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetMessages returns all messages, newest first
// GET /admin/messages
func (h *ContactHandler) GetMessages(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		messages, err := h.contactService.GetByStatus(models.MessageStatus(status))
		if err != nil {
			serviceError(c, err)
			return
		}
		c.JSON(http.StatusOK, messages)
		return
	}
	messages, err := h.contactService.GetAll()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GetMessage returns one message
// GET /admin/messages/:id
func (h *ContactHandler) GetMessage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	message, err := h.contactService.GetByID(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, message)
}

// GetUnreadMessages returns unread messages
// GET /admin/messages/unread
func (h *ContactHandler) GetUnreadMessages(c *gin.Context) {
	messages, err := h.contactService.GetUnread()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GetUnreadCount returns the number of unread messages
// GET /admin/messages/unread/count
func (h *ContactHandler) GetUnreadCount(c *gin.Context) {
	count, err := h.contactService.CountUnread()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkMessageRead marks a message as read
// PUT /admin/messages/:id/read
func (h *ContactHandler) MarkMessageRead(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	message, err := h.contactService.MarkAsRead(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, message)
}

// UpdateMessageStatus sets an explicit message status
// PUT /admin/messages/:id/status
func (h *ContactHandler) UpdateMessageStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	message, err := h.contactService.UpdateStatus(id, models.MessageStatus(req.Status))
	if err != nil {
		if err == services.ErrNotFound {
			serviceError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, message)
}

// DeleteMessage deletes a message
// DELETE /admin/messages/:id
func (h *ContactHandler) DeleteMessage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.contactService.Delete(id); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
