// Package dispatcher fans persisted notifications out to online recipients.
package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"mindline/internal/infrastructure/metrics"
	"mindline/internal/infrastructure/realtime"
	notification "mindline/internal/pkg/notification/application/domain"
	repository "mindline/internal/pkg/notification/persistence/repository/port"
)

// Presence is the slice of the presence registry the dispatcher needs.
// Satisfied by realtime.Registry.
type Presence interface {
	Lookup(userID string) (realtime.Sender, bool)
}

// Dispatcher persists notifications and then pushes them to recipients who
// hold a live connection. Durability always precedes delivery: a failed or
// skipped push never loses the stored record, which stays readable through
// the REST path. Live delivery is therefore at-most-once, durable delivery
// at-least-once.
type Dispatcher struct {
	Repo     repository.NotificationRepository
	Presence Presence

	log *zap.Logger
}

func New(repo repository.NotificationRepository, presence Presence, log *zap.Logger) *Dispatcher {
	return &Dispatcher{Repo: repo, Presence: presence, log: log}
}

type pushEvent struct {
	Event string         `json:"event"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Type  string         `json:"type"`
	Meta  map[string]any `json:"meta,omitempty"`
}

// Notify persists n and pushes it live if the target user is online.
func (d *Dispatcher) Notify(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	validated, err := notification.New(n)
	if err != nil {
		return notification.Notification{}, err
	}

	persisted, err := d.Repo.Create(ctx, *validated)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("persist notification: %w", err)
	}

	d.push(persisted)
	return persisted, nil
}

// Broadcast persists one record per target user, then pushes to each target
// that is online. It returns the persisted records and how many live pushes
// succeeded.
func (d *Dispatcher) Broadcast(ctx context.Context, userIDs []string, template notification.Notification) ([]notification.Notification, int, error) {
	rows := make([]notification.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		n := template
		n.UserID = userID
		validated, err := notification.New(n)
		if err != nil {
			return nil, 0, err
		}
		rows = append(rows, *validated)
	}

	persisted, err := d.Repo.CreateBulk(ctx, rows)
	if err != nil {
		return nil, 0, fmt.Errorf("persist broadcast: %w", err)
	}

	pushed := 0
	for _, n := range persisted {
		if d.push(n) {
			pushed++
		}
	}
	return persisted, pushed, nil
}

// push delivers the live copy. Only in-app events travel over the socket;
// records for other channels are stored for the external senders that own
// those channels.
func (d *Dispatcher) push(n notification.Notification) bool {
	if n.Channel != notification.ChannelInApp {
		return false
	}

	conn, online := d.Presence.Lookup(n.UserID)
	if !online {
		metrics.NotificationPushes.WithLabelValues("offline").Inc()
		return false
	}

	payload, err := json.Marshal(pushEvent{
		Event: "getNotification",
		Title: n.Title,
		Body:  n.Body,
		Type:  n.Type,
		Meta:  n.Meta,
	})
	if err != nil {
		return false
	}

	if err := conn.Send(payload); err != nil {
		d.log.Warn("notification push failed", zap.String("user", n.UserID), zap.Error(err))
		metrics.NotificationPushes.WithLabelValues("failed").Inc()
		return false
	}
	metrics.NotificationPushes.WithLabelValues("delivered").Inc()
	return true
}
