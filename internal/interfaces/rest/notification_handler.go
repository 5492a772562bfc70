package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mlodash/backend/internal/domain/ports"
	"github.com/mlodash/backend/pkg/errors"
)

const defaultNotificationLimit = 50

type NotificationHandler struct {
	notifications ports.NotificationRepository
}

func NewNotificationHandler(notifications ports.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// GetNotifications handles GET /api/notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	recipientID := UserIDFromContext(c)
	if recipientID == "" {
		recipientID = c.Query("userId")
	}
	if recipientID == "" {
		RespondAppError(c, errors.NewValidationError("userId", "recipient is required"))
		return
	}

	limit := defaultNotificationLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			RespondAppError(c, errors.NewValidationError("limit", "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	HandleGetEnvelope(c, "data", func() (interface{}, error) {
		return h.notifications.FindByRecipient(c.Request.Context(), recipientID, limit)
	})
}

// MarkAsRead handles POST /api/notifications/:id/read
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id := c.Param("id")

	if err := h.notifications.MarkAsRead(c.Request.Context(), id); err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
