// Package guard enforces session-scoped access control for conversations.
package guard

import (
	"context"
	"fmt"
	"time"

	session "mindline/internal/pkg/session/application/domain"
	repository "mindline/internal/pkg/session/persistence/repository/port"
)

// Guard validates that a user may act within a booked session at a point in
// time. It is applied on the durable write paths (conversation create, message
// create); the socket live-push path deliberately skips it and trusts the
// already-validated durable state.
type Guard struct {
	Appointments repository.AppointmentRepository
}

func New(repo repository.AppointmentRepository) *Guard {
	return &Guard{Appointments: repo}
}

// Authorize resolves the appointment and checks, in order, that userID is one
// of its two participants and that now falls inside the session window. The
// two rejections are distinct: ErrNotParticipant for the membership failure,
// ErrNotActive when the window is closed.
//
// There is a known race between this check and a subsequent durable write: the
// window can close in between. With minutes-scale windows that is accepted
// rather than locked around.
func (g *Guard) Authorize(ctx context.Context, appointmentID, userID string, now time.Time) (*session.Appointment, error) {
	appt, err := g.Appointments.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("guard: resolve appointment: %w", err)
	}

	if !appt.HasParticipant(userID) {
		return nil, session.ErrNotParticipant
	}

	if !appt.Active(now) {
		return nil, session.ErrNotActive
	}

	return appt, nil
}
