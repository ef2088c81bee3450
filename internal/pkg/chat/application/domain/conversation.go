package chat

import (
	"errors"
	"sort"
	"time"
)

// Domain-level errors for the chat context.
var (
	ErrNotMember      = errors.New("chat: user is not a member of the conversation")
	ErrEmptyMessage   = errors.New("chat: empty message (no text or attachment)")
	ErrInvalidMessage = errors.New("chat: conversation and sender are required")
)

// Conversation is a 1:1 thread bound to a booked session. Members always
// holds exactly the booking's two participants in canonical order, and the
// (Members, SessionID) pair is unique: creating a conversation is
// create-or-fetch, never duplicate.
//
// IsGroup is reserved for a future group flow and stays false here.
type Conversation struct {
	ID            string    `db:"id"`
	Members       []string  `db:"members"`
	IsGroup       bool      `db:"is_group"`
	SessionID     string    `db:"session_id"`
	LastMessageAt time.Time `db:"last_message_at"`
	CreatedAt     time.Time `db:"created_at"`
}

// HasMember reports whether userID belongs to the conversation.
func (c *Conversation) HasMember(userID string) bool {
	for _, m := range c.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// CanonicalMembers returns a sorted copy of members, the form stored and used
// for the (members, session) uniqueness constraint.
func CanonicalMembers(members []string) []string {
	out := make([]string, len(members))
	copy(out, members)
	sort.Strings(out)
	return out
}
