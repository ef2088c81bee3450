package repository

import (
	"context"
	"errors"

	notification "mindline/internal/pkg/notification/application/domain"
)

// ErrNotFound signals a missing notification (or one owned by another user).
var ErrNotFound = errors.New("notification: not found")

// NotificationRepository persists notification records. All read and write
// operations are scoped to the owning user.
type NotificationRepository interface {
	// Create persists one notification and returns it with its generated id.
	Create(ctx context.Context, n notification.Notification) (notification.Notification, error)

	// CreateBulk persists one row per element in a single round trip.
	CreateBulk(ctx context.Context, ns []notification.Notification) ([]notification.Notification, error)

	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID string) ([]notification.Notification, error)

	// GetByID returns the notification if it belongs to userID.
	GetByID(ctx context.Context, id, userID string) (notification.Notification, error)

	// MarkRead flips the read flag and returns the updated record.
	MarkRead(ctx context.Context, id, userID string) (notification.Notification, error)

	// Delete removes the notification if it belongs to userID.
	Delete(ctx context.Context, id, userID string) error

	// ClearByUser removes all of the user's notifications.
	ClearByUser(ctx context.Context, userID string) error
}
