package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	session "mindline/internal/pkg/session/application/domain"
)

func TestCreateConversationIsIdempotent(t *testing.T) {
	repo := newFakeChatRepo()
	guard := activeGuard()
	uc := NewCreateConversationUseCase(repo, guard)

	in := CreateConversationInput{
		AppointmentID: "appt-1",
		CallerID:      "client-1",
		Now:           windowStart.Add(time.Minute),
	}

	first, created, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if !created {
		t.Fatal("first call must create the conversation")
	}

	// The counsellor opening the same session resolves to the same row.
	in.CallerID = "counsellor-1"
	second, created, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if created {
		t.Fatal("second call must not create a duplicate")
	}
	if second.ID != first.ID {
		t.Fatalf("expected the same conversation, got %s and %s", first.ID, second.ID)
	}
}

func TestCreateConversationMembersAreCanonical(t *testing.T) {
	repo := newFakeChatRepo()
	guard := activeGuard()

	conv, _, err := NewCreateConversationUseCase(repo, guard).Execute(context.Background(), CreateConversationInput{
		AppointmentID: "appt-1",
		CallerID:      "counsellor-1",
		Now:           windowStart.Add(time.Minute),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(conv.Members) != 2 || conv.Members[0] != "client-1" || conv.Members[1] != "counsellor-1" {
		t.Fatalf("expected sorted member pair, got %v", conv.Members)
	}
	if conv.SessionID != "appt-1" {
		t.Fatalf("expected conversation bound to appt-1, got %q", conv.SessionID)
	}
}

func TestCreateConversationOutsideWindow(t *testing.T) {
	uc := NewCreateConversationUseCase(newFakeChatRepo(), activeGuard())

	_, _, err := uc.Execute(context.Background(), CreateConversationInput{
		AppointmentID: "appt-1",
		CallerID:      "client-1",
		Now:           windowStart.Add(-time.Minute),
	})
	if !errors.Is(err, session.ErrNotActive) {
		t.Fatalf("want ErrNotActive, got %v", err)
	}
}

func TestCreateConversationRejectsStranger(t *testing.T) {
	uc := NewCreateConversationUseCase(newFakeChatRepo(), activeGuard())

	_, _, err := uc.Execute(context.Background(), CreateConversationInput{
		AppointmentID: "appt-1",
		CallerID:      "stranger",
		Now:           windowStart.Add(time.Minute),
	})
	if !errors.Is(err, session.ErrNotParticipant) {
		t.Fatalf("want ErrNotParticipant, got %v", err)
	}
}

func TestCreateConversationValidation(t *testing.T) {
	uc := NewCreateConversationUseCase(newFakeChatRepo(), activeGuard())

	if _, _, err := uc.Execute(context.Background(), CreateConversationInput{CallerID: "client-1"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing appointment id: want ErrValidation, got %v", err)
	}
	if _, _, err := uc.Execute(context.Background(), CreateConversationInput{AppointmentID: "appt-1"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing caller id: want ErrValidation, got %v", err)
	}
}
