package middleware

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	qport "mindline/internal/infrastructure/queue/port"
	"mindline/internal/pkg/analytics/task"
)

// Analytics records every API request as a queued page-view event. Tracking
// must never slow down or fail a request, so enqueue errors are logged and
// dropped.
func Analytics(queue qport.Client, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			// Unmatched routes (404s) are not worth a row each.
			return
		}

		payload, err := json.Marshal(task.TrackPageTaskPayload{
			UserID:     UserID(c),
			Method:     c.Request.Method,
			Path:       path,
			Status:     c.Writer.Status(),
			DurationMS: time.Since(start).Milliseconds(),
			ObservedAt: start.UTC(),
		})
		if err != nil {
			return
		}

		if _, err := queue.Enqueue(c.Request.Context(), qport.Task{
			Type:    task.TrackPageTaskType,
			Payload: payload,
		}, qport.EnqueueOption{Queue: "analytics"}); err != nil {
			log.Debug("analytics enqueue failed", zap.String("path", path), zap.Error(err))
		}
	}
}
