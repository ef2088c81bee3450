package repository

import (
	"context"
	"time"
)

// UserRepository is the narrow slice of the externally-owned account system
// this service writes to. Account management itself lives elsewhere; only the
// reachability timestamp is updated from here.
type UserRepository interface {
	// UpdateLastSeen records when the user was last reachable over a live
	// connection. Callers treat failures as best-effort.
	UpdateLastSeen(ctx context.Context, userID string, at time.Time) error
}
