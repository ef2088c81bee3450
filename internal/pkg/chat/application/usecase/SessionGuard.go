package usecase

import (
	"context"
	"time"

	session "mindline/internal/pkg/session/application/domain"
)

// SessionGuard authorizes a user to act within a booked session at a point in
// time. Satisfied by guard.Guard; use cases depend on the interface so tests
// can stub the temporal policy.
type SessionGuard interface {
	Authorize(ctx context.Context, appointmentID, userID string, now time.Time) (*session.Appointment, error)
}
