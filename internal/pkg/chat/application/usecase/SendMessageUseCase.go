package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	chat "mindline/internal/pkg/chat/application/domain"
	repository "mindline/internal/pkg/chat/persistence/repository/port"
	"mindline/internal/pkg/chat/security"
)

// SendMessageInput carries the data needed to append a message. Attachments
// are pre-uploaded URLs; upload itself happens outside this service.
type SendMessageInput struct {
	ConversationID string
	SenderID       string
	Text           *string
	Emoji          *string
	Attachments    []string
	Now            time.Time // zero means time.Now
}

// SendMessageUseCase is the system of record for messages: it validates
// membership and the session window, encrypts the body under a fresh
// per-message key and persists ciphertext and key together. Live delivery is
// a separate, best-effort concern handled by the socket gateway.
type SendMessageUseCase struct {
	Repo  repository.ChatRepository
	Guard SessionGuard
}

func NewSendMessageUseCase(repo repository.ChatRepository, guard SessionGuard) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo, Guard: guard}
}

// Execute persists a new message and advances the conversation watermark.
func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, error) {
	if in.ConversationID == "" {
		return nil, fmt.Errorf("%w: conversationId is required", ErrValidation)
	}
	if in.SenderID == "" {
		return nil, fmt.Errorf("%w: senderId is required", ErrValidation)
	}

	text := normalizeText(in.Text)
	if text == nil && len(in.Attachments) == 0 {
		return nil, fmt.Errorf("%w: message text or attachment required", ErrValidation)
	}

	conv, err := uc.Repo.FindConversationByID(ctx, in.ConversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !conv.HasMember(in.SenderID) {
		return nil, chat.ErrNotMember
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	if _, err := uc.Guard.Authorize(ctx, conv.SessionID, in.SenderID, now); err != nil {
		return nil, err
	}

	var cipherText *string
	var key []byte
	if text != nil {
		k, hexBody, err := security.Encrypt(*text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		key = k
		cipherText = &hexBody
	}

	msg, err := chat.NewMessage(chat.Message{
		ConversationID: in.ConversationID,
		SenderID:       in.SenderID,
		CipherText:     cipherText,
		Key:            key,
		Emoji:          in.Emoji,
		Attachments:    in.Attachments,
		CreatedAt:      now,
	})
	if err != nil {
		return nil, err
	}

	id, err := uc.Repo.SaveMessage(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	msg.ID = id

	if err := uc.Repo.TouchLastMessageAt(ctx, in.ConversationID, msg.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msg, nil
}

func normalizeText(text *string) *string {
	if text == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*text)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
