package controller

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	qport "mindline/internal/infrastructure/queue/port"
	notification "mindline/internal/pkg/notification/application/domain"
	"mindline/internal/pkg/notification/application/task"
)

// BroadcastNotificationController accepts an admin fan-out request and hands
// it to the background queue. Persist-and-push for a large target list is too
// slow for a request handler, so the endpoint only validates and enqueues.
type BroadcastNotificationController struct {
	Queue qport.Client
}

func NewBroadcastNotificationController(q qport.Client) *BroadcastNotificationController {
	return &BroadcastNotificationController{Queue: q}
}

type broadcastNotificationRequest struct {
	UserIDs []string       `json:"user_ids" binding:"required,min=1"`
	Title   string         `json:"title" binding:"required"`
	Body    string         `json:"body" binding:"required"`
	Channel string         `json:"channel"`
	Type    string         `json:"type"`
	Meta    map[string]any `json:"meta"`
}

func (h *BroadcastNotificationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req broadcastNotificationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Channel == "" {
			req.Channel = string(notification.ChannelInApp)
		}
		if !notification.Channel(req.Channel).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown channel: " + req.Channel})
			return
		}

		payload, err := json.Marshal(task.BroadcastNotificationTaskPayload{
			UserIDs: req.UserIDs,
			Title:   req.Title,
			Body:    req.Body,
			Channel: req.Channel,
			Type:    req.Type,
			Meta:    req.Meta,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		id, err := h.Queue.Enqueue(c.Request.Context(), qport.Task{
			Type:    task.BroadcastNotificationTaskType,
			Payload: payload,
		}, qport.EnqueueOption{Queue: "notifications", MaxRetry: 3})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{"taskId": id})
	}
}
