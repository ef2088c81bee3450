package notification

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalid reports a notification missing required fields.
var ErrInvalid = errors.New("notification: target user, title and body are required")

// Channel is the delivery channel a notification is intended for. Only the
// in-app channel is delivered by this service; the others are stored for
// external senders to pick up.
type Channel string

const (
	ChannelInApp Channel = "in-app"
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelPush  Channel = "push"
)

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	switch c {
	case ChannelInApp, ChannelEmail, ChannelSMS, ChannelPush:
		return true
	}
	return false
}

// Notification is a durable per-user record. It is created once per target
// and never mutated afterwards except for the read flag.
type Notification struct {
	ID        string         `db:"id" json:"id"`
	UserID    string         `db:"user_id" json:"userId"`
	Title     string         `db:"title" json:"title"`
	Body      string         `db:"body" json:"body"`
	Channel   Channel        `db:"channel" json:"channel"`
	Type      string         `db:"type" json:"type"`
	IsRead    bool           `db:"is_read" json:"isRead"`
	Meta      map[string]any `db:"meta" json:"meta"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
}

// New validates and normalizes a notification ready to persist.
func New(n Notification) (*Notification, error) {
	n.Title = strings.TrimSpace(n.Title)
	n.Body = strings.TrimSpace(n.Body)
	if n.UserID == "" || n.Title == "" || n.Body == "" {
		return nil, ErrInvalid
	}
	if !n.Channel.Valid() {
		n.Channel = ChannelInApp
	}
	if n.Meta == nil {
		n.Meta = map[string]any{}
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	return &n, nil
}
