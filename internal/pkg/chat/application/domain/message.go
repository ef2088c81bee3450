package chat

import (
	"time"
)

// Message is an immutable log entry in a conversation. The body is stored as
// hex ciphertext together with the per-message key that produced it; nothing
// else can decrypt it, including other messages' keys. CipherText is nil for
// attachment-only messages.
type Message struct {
	ID             string    `db:"id"`
	ConversationID string    `db:"conversation_id"`
	SenderID       string    `db:"sender_id"`
	CipherText     *string   `db:"cipher_text"`
	Key            []byte    `db:"key"`
	Emoji          *string   `db:"emoji"`
	Attachments    []string  `db:"attachments"`
	CreatedAt      time.Time `db:"created_at"`
}

// NewMessage validates and normalizes a message ready to persist. The caller
// has already encrypted the body: CipherText and Key travel together or not
// at all.
func NewMessage(m Message) (*Message, error) {
	if m.ConversationID == "" || m.SenderID == "" {
		return nil, ErrInvalidMessage
	}
	if m.CipherText == nil && len(m.Attachments) == 0 {
		return nil, ErrEmptyMessage
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return &m, nil
}

// DecryptedMessage is the transient read-side shape: the same record with its
// body decrypted for the caller. It is never persisted.
type DecryptedMessage struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Text           *string   `json:"text,omitempty"`
	Emoji          *string   `json:"emoji,omitempty"`
	Attachments    []string  `json:"attachments,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
