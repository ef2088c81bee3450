package task

import (
	"context"
	"encoding/json"
	"time"

	qport "mindline/internal/infrastructure/queue/port"
	notification "mindline/internal/pkg/notification/application/domain"
	"mindline/internal/pkg/notification/application/dispatcher"
)

// BroadcastNotificationTaskType is the queue task name for notification fan-out.
const BroadcastNotificationTaskType = "notification:broadcast"

// BroadcastNotificationTaskPayload is the JSON payload transported via the
// queue. Kept decoupled from domain types to avoid coupling to their tags.
type BroadcastNotificationTaskPayload struct {
	UserIDs []string       `json:"userIds"`
	Title   string         `json:"title"`
	Body    string         `json:"body"`
	Channel string         `json:"channel"`
	Type    string         `json:"type"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// RegisterBroadcastNotificationTask binds the fan-out handler to the worker
// server. The handler persists one record per target and then pushes to
// whoever is online; re-running after a partial failure re-persists, which is
// consistent with at-least-once durable delivery.
func RegisterBroadcastNotificationTask(srv qport.Server, d *dispatcher.Dispatcher) {
	srv.Register(BroadcastNotificationTaskType, func(ctx context.Context, t qport.Task) error {
		var p BroadcastNotificationTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// Malformed payload: retrying cannot help, but surfacing the error
			// keeps it visible in the queue's dead letter handling.
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		_, _, err := d.Broadcast(ctx, p.UserIDs, notification.Notification{
			Title:   p.Title,
			Body:    p.Body,
			Channel: notification.Channel(p.Channel),
			Type:    p.Type,
			Meta:    p.Meta,
		})
		return err
	})
}
