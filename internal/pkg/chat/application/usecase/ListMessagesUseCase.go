package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "mindline/internal/pkg/chat/application/domain"
	repository "mindline/internal/pkg/chat/persistence/repository/port"
	"mindline/internal/pkg/chat/security"
)

// ListMessagesInput identifies the conversation history to read and who is
// asking for it.
type ListMessagesInput struct {
	ConversationID string
	CallerID       string
}

// ListMessagesUseCase is the durable read path: it reconstructs the decrypted
// history for a member, independent of who is online. A record that fails to
// decrypt degrades to a placeholder body instead of failing the listing.
type ListMessagesUseCase struct {
	Repo repository.ChatRepository
}

func NewListMessagesUseCase(repo repository.ChatRepository) *ListMessagesUseCase {
	return &ListMessagesUseCase{Repo: repo}
}

// Execute returns the conversation's messages in creation order, decrypted.
func (uc *ListMessagesUseCase) Execute(ctx context.Context, in ListMessagesInput) ([]chat.DecryptedMessage, error) {
	if in.ConversationID == "" {
		return nil, fmt.Errorf("%w: conversationId is required", ErrValidation)
	}
	if in.CallerID == "" {
		return nil, fmt.Errorf("%w: callerId is required", ErrValidation)
	}

	conv, err := uc.Repo.FindConversationByID(ctx, in.ConversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !conv.HasMember(in.CallerID) {
		return nil, chat.ErrNotMember
	}

	msgs, err := uc.Repo.ListMessages(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	out := make([]chat.DecryptedMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, decryptMessage(m))
	}
	return out, nil
}

// decryptMessage produces the transient read-side shape of a stored message.
// Decryption requires exactly the message's own persisted key.
func decryptMessage(m chat.Message) chat.DecryptedMessage {
	d := chat.DecryptedMessage{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Emoji:          m.Emoji,
		Attachments:    m.Attachments,
		CreatedAt:      m.CreatedAt,
	}
	if m.CipherText == nil || len(m.Key) == 0 {
		return d
	}
	text, err := security.Decrypt(m.Key, *m.CipherText)
	if err != nil {
		text = security.PlaceholderText
	}
	d.Text = &text
	return d
}
