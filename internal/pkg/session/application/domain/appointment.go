package session

import (
	"errors"
	"time"
)

// Domain errors raised while authorizing access to a booked session.
var (
	// ErrNotParticipant means the requesting user is neither the booking's
	// client nor its counsellor.
	ErrNotParticipant = errors.New("session: user is not a participant of this appointment")
	// ErrNotActive means the current time falls outside the session window.
	ErrNotActive = errors.New("session: session is not active")
)

// Appointment is the externally-owned booking record this service reads but
// never writes. Scheduling, payment and conflict handling live elsewhere.
type Appointment struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	CounsellorID    string    `db:"counsellor_id"`
	ScheduledAt     time.Time `db:"scheduled_at"`
	DurationMinutes int       `db:"duration_minutes"`
}

// Window returns the half-open interval [ScheduledAt, ScheduledAt+Duration)
// during which the session's conversation may be created and written to.
func (a *Appointment) Window() (start, end time.Time) {
	start = a.ScheduledAt
	end = start.Add(time.Duration(a.DurationMinutes) * time.Minute)
	return start, end
}

// Active reports whether now falls inside the session window.
func (a *Appointment) Active(now time.Time) bool {
	start, end := a.Window()
	return !now.Before(start) && now.Before(end)
}

// HasParticipant reports whether userID is the client or the counsellor.
func (a *Appointment) HasParticipant(userID string) bool {
	return userID != "" && (userID == a.UserID || userID == a.CounsellorID)
}

// Members returns both participant IDs in canonical (sorted) order, the form
// used for conversation membership lookups.
func (a *Appointment) Members() []string {
	if a.CounsellorID < a.UserID {
		return []string{a.CounsellorID, a.UserID}
	}
	return []string{a.UserID, a.CounsellorID}
}
