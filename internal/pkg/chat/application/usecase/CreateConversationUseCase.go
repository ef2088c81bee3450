package usecase

import (
	"context"
	"fmt"
	"time"

	chat "mindline/internal/pkg/chat/application/domain"
	repository "mindline/internal/pkg/chat/persistence/repository/port"
)

// CreateConversationInput carries the data to open (or fetch) the
// conversation bound to a booked session.
type CreateConversationInput struct {
	AppointmentID string
	CallerID      string
	Now           time.Time // zero means time.Now
}

// CreateConversationUseCase lazily creates the session's conversation on the
// first valid access inside the window. Creation is idempotent: the same
// (members, session) pair always resolves to the same conversation.
type CreateConversationUseCase struct {
	Repo  repository.ChatRepository
	Guard SessionGuard
}

func NewCreateConversationUseCase(repo repository.ChatRepository, guard SessionGuard) *CreateConversationUseCase {
	return &CreateConversationUseCase{Repo: repo, Guard: guard}
}

// Execute authorizes the caller against the appointment and returns the
// conversation, reporting whether it was created by this call.
func (uc *CreateConversationUseCase) Execute(ctx context.Context, in CreateConversationInput) (*chat.Conversation, bool, error) {
	if in.AppointmentID == "" {
		return nil, false, fmt.Errorf("%w: appointmentId is required", ErrValidation)
	}
	if in.CallerID == "" {
		return nil, false, fmt.Errorf("%w: callerId is required", ErrValidation)
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	appt, err := uc.Guard.Authorize(ctx, in.AppointmentID, in.CallerID, now)
	if err != nil {
		return nil, false, err
	}

	conv, created, err := uc.Repo.FindOrCreateConversation(ctx, appt.Members(), appt.ID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &conv, created, nil
}
