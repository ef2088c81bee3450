package usecase

import (
	"context"
	"fmt"

	chat "mindline/internal/pkg/chat/application/domain"
	repository "mindline/internal/pkg/chat/persistence/repository/port"
)

// ListChatsInput identifies whose conversations to list.
type ListChatsInput struct {
	UserID string
}

// ListChatsUseCase returns a user's conversations, most recently active first.
// History is retained after the session window closes, so past sessions show
// up here too.
type ListChatsUseCase struct {
	Repo repository.ChatRepository
}

func NewListChatsUseCase(repo repository.ChatRepository) *ListChatsUseCase {
	return &ListChatsUseCase{Repo: repo}
}

func (uc *ListChatsUseCase) Execute(ctx context.Context, in ListChatsInput) ([]chat.Conversation, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}
	convs, err := uc.Repo.ListConversationsByMember(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return convs, nil
}
