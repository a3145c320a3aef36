package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/careerpath/careerpath-backend/internal/http/response"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
	"github.com/careerpath/careerpath-backend/internal/services"
)

// NotificationHandler serves the per-device notification list. Callers identify
// the device with the X-Client-Id header.
type NotificationHandler struct {
	log           *logger.Logger
	notifications services.NotificationService
}

func NewNotificationHandler(log *logger.Logger, notifications services.NotificationService) *NotificationHandler {
	return &NotificationHandler{log: log.With("handler", "NotificationHandler"), notifications: notifications}
}

// GET /api/notifications
func (nh *NotificationHandler) List(c *gin.Context) {
	state, err := nh.notifications.Sync(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, nh.log, err)
		return
	}
	response.RespondOK(c, state)
}

// POST /api/notifications/read-all
func (nh *NotificationHandler) MarkAllRead(c *gin.Context) {
	state, err := nh.notifications.MarkAllRead(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, nh.log, err)
		return
	}
	response.RespondOK(c, state)
}
