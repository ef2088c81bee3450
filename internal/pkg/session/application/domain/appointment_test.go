package session

import (
	"testing"
	"time"
)

func TestWindowIsHalfOpen(t *testing.T) {
	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	a := Appointment{ScheduledAt: start, DurationMinutes: 45}

	gotStart, gotEnd := a.Window()
	if !gotStart.Equal(start) {
		t.Fatalf("want start %v, got %v", start, gotStart)
	}
	if want := start.Add(45 * time.Minute); !gotEnd.Equal(want) {
		t.Fatalf("want end %v, got %v", want, gotEnd)
	}

	if !a.Active(start) {
		t.Fatal("start instant must be inside the window")
	}
	if a.Active(gotEnd) {
		t.Fatal("end instant must be outside the window")
	}
}

func TestMembersCanonicalOrder(t *testing.T) {
	a := Appointment{UserID: "zoe", CounsellorID: "adam"}
	got := a.Members()
	if got[0] != "adam" || got[1] != "zoe" {
		t.Fatalf("unexpected order: %v", got)
	}

	b := Appointment{UserID: "adam", CounsellorID: "zoe"}
	got = b.Members()
	if got[0] != "adam" || got[1] != "zoe" {
		t.Fatalf("order must not depend on roles: %v", got)
	}
}
