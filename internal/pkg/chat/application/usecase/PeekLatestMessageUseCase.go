package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "mindline/internal/pkg/chat/application/domain"
	repository "mindline/internal/pkg/chat/persistence/repository/port"
)

// PeekLatestMessageInput identifies the newest persisted message of one
// sender in one conversation.
type PeekLatestMessageInput struct {
	ConversationID string
	SenderID       string
}

// PeekLatestMessageUseCase serves the socket gateway's live-push hint: the
// durable row written by the send-message path is the payload actually pushed
// to an online peer. Returns nil without error when no message exists yet.
type PeekLatestMessageUseCase struct {
	Repo repository.ChatRepository
}

func NewPeekLatestMessageUseCase(repo repository.ChatRepository) *PeekLatestMessageUseCase {
	return &PeekLatestMessageUseCase{Repo: repo}
}

func (uc *PeekLatestMessageUseCase) Execute(ctx context.Context, in PeekLatestMessageInput) (*chat.Message, error) {
	if in.ConversationID == "" || in.SenderID == "" {
		return nil, fmt.Errorf("%w: conversationId and senderId are required", ErrValidation)
	}
	msg, err := uc.Repo.LatestMessageBySender(ctx, in.ConversationID, in.SenderID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &msg, nil
}
