package guard

import (
	"context"
	"errors"
	"testing"
	"time"

	session "mindline/internal/pkg/session/application/domain"
	repository "mindline/internal/pkg/session/persistence/repository/port"
)

type fakeAppointmentRepo struct {
	appt *session.Appointment
	err  error
}

func (f *fakeAppointmentRepo) FindByID(ctx context.Context, id string) (*session.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.appt == nil || f.appt.ID != id {
		return nil, repository.ErrNotFound
	}
	return f.appt, nil
}

func testAppointment(start time.Time) *session.Appointment {
	return &session.Appointment{
		ID:              "appt-1",
		UserID:          "client-1",
		CounsellorID:    "counsellor-1",
		ScheduledAt:     start,
		DurationMinutes: 30,
	}
}

func TestAuthorizeWindow(t *testing.T) {
	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	g := New(&fakeAppointmentRepo{appt: testAppointment(start)})

	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"one second before start", start.Add(-time.Second), session.ErrNotActive},
		{"exactly at start", start, nil},
		{"one second in", start.Add(time.Second), nil},
		{"last second of window", start.Add(30*time.Minute - time.Second), nil},
		{"exactly at end", start.Add(30 * time.Minute), session.ErrNotActive},
		{"one minute after end", start.Add(31 * time.Minute), session.ErrNotActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appt, err := g.Authorize(context.Background(), "appt-1", "client-1", tt.now)
			if !errors.Is(err, tt.wantErr) && err != tt.wantErr {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr == nil && appt == nil {
				t.Fatal("expected the resolved appointment on success")
			}
		})
	}
}

func TestAuthorizeMembership(t *testing.T) {
	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	g := New(&fakeAppointmentRepo{appt: testAppointment(start)})
	inWindow := start.Add(5 * time.Minute)

	if _, err := g.Authorize(context.Background(), "appt-1", "counsellor-1", inWindow); err != nil {
		t.Fatalf("counsellor must be authorized: %v", err)
	}
	if _, err := g.Authorize(context.Background(), "appt-1", "stranger", inWindow); !errors.Is(err, session.ErrNotParticipant) {
		t.Fatalf("want ErrNotParticipant, got %v", err)
	}
	if _, err := g.Authorize(context.Background(), "appt-1", "", inWindow); !errors.Is(err, session.ErrNotParticipant) {
		t.Fatalf("empty user id: want ErrNotParticipant, got %v", err)
	}
}

// Membership is checked before the window, so a stranger outside the window
// still sees the membership rejection.
func TestAuthorizeMembershipBeforeWindow(t *testing.T) {
	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	g := New(&fakeAppointmentRepo{appt: testAppointment(start)})

	_, err := g.Authorize(context.Background(), "appt-1", "stranger", start.Add(-time.Hour))
	if !errors.Is(err, session.ErrNotParticipant) {
		t.Fatalf("want ErrNotParticipant, got %v", err)
	}
}

func TestAuthorizeUnknownAppointment(t *testing.T) {
	g := New(&fakeAppointmentRepo{})
	_, err := g.Authorize(context.Background(), "missing", "client-1", time.Now())
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("want wrapped ErrNotFound, got %v", err)
	}
}
