package repository

import (
	"context"
	"errors"
	"time"

	chat "mindline/internal/pkg/chat/application/domain"
)

// ErrNotFound signals a missing conversation or message.
var ErrNotFound = errors.New("chat: not found")

// ChatRepository defines persistence for conversations and messages. Every
// operation is single-record atomic; message appends are independent, so no
// multi-row transaction is needed.
type ChatRepository interface {
	// FindOrCreateConversation returns the unique conversation for
	// (members, sessionID), creating it if absent. Members must be in
	// canonical order. The bool reports whether a row was created.
	FindOrCreateConversation(ctx context.Context, members []string, sessionID string) (chat.Conversation, bool, error)

	// FindConversationByID returns ErrNotFound when no row exists.
	FindConversationByID(ctx context.Context, id string) (chat.Conversation, error)

	// ListConversationsByMember returns the user's conversations ordered by
	// last activity, newest first.
	ListConversationsByMember(ctx context.Context, userID string) ([]chat.Conversation, error)

	// SaveMessage appends a message and returns the generated id.
	SaveMessage(ctx context.Context, m chat.Message) (string, error)

	// ListMessages returns all messages of a conversation ordered by creation
	// time ascending.
	ListMessages(ctx context.Context, conversationID string) ([]chat.Message, error)

	// LatestMessageBySender returns the most recent message a sender wrote to
	// the conversation, or ErrNotFound.
	LatestMessageBySender(ctx context.Context, conversationID, senderID string) (chat.Message, error)

	// TouchLastMessageAt advances the conversation's activity watermark.
	TouchLastMessageAt(ctx context.Context, conversationID string, at time.Time) error
}
