package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mindline/internal/middleware"
	notification "mindline/internal/pkg/notification/application/domain"
	"mindline/internal/pkg/notification/application/dispatcher"
)

// CreateNotificationController persists a notification for the caller and
// pushes it live when the caller is online (one controller per endpoint).
type CreateNotificationController struct {
	D *dispatcher.Dispatcher
}

func NewCreateNotificationController(d *dispatcher.Dispatcher) *CreateNotificationController {
	return &CreateNotificationController{D: d}
}

type createNotificationRequest struct {
	Title   string         `json:"title" binding:"required"`
	Body    string         `json:"body" binding:"required"`
	Channel string         `json:"channel"`
	Type    string         `json:"type"`
	Meta    map[string]any `json:"meta"`
}

func (h *CreateNotificationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createNotificationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		n, err := h.D.Notify(ctx, notification.Notification{
			UserID:  middleware.UserID(c),
			Title:   req.Title,
			Body:    req.Body,
			Channel: notification.Channel(req.Channel),
			Type:    req.Type,
			Meta:    req.Meta,
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, n)
	}
}
