package chat

import (
	"testing"
	"time"
)

func TestNewMessageRequiresIdentity(t *testing.T) {
	body := "abcd"
	if _, err := NewMessage(Message{SenderID: "u1", CipherText: &body}); err != ErrInvalidMessage {
		t.Fatalf("missing conversation: want ErrInvalidMessage, got %v", err)
	}
	if _, err := NewMessage(Message{ConversationID: "c1", CipherText: &body}); err != ErrInvalidMessage {
		t.Fatalf("missing sender: want ErrInvalidMessage, got %v", err)
	}
}

func TestNewMessageRequiresContent(t *testing.T) {
	if _, err := NewMessage(Message{ConversationID: "c1", SenderID: "u1"}); err != ErrEmptyMessage {
		t.Fatalf("want ErrEmptyMessage, got %v", err)
	}

	// Attachment-only is valid content.
	m, err := NewMessage(Message{ConversationID: "c1", SenderID: "u1", Attachments: []string{"https://x/y.png"}})
	if err != nil {
		t.Fatalf("attachment-only: %v", err)
	}
	if m.CreatedAt.IsZero() {
		t.Fatal("expected a default creation time")
	}
}

func TestNewMessageKeepsExplicitTimestamp(t *testing.T) {
	at := time.Date(2026, 3, 10, 14, 5, 0, 0, time.UTC)
	body := "abcd"
	m, err := NewMessage(Message{ConversationID: "c1", SenderID: "u1", CipherText: &body, CreatedAt: at})
	if err != nil {
		t.Fatal(err)
	}
	if !m.CreatedAt.Equal(at) {
		t.Fatalf("want %v, got %v", at, m.CreatedAt)
	}
}

func TestCanonicalMembers(t *testing.T) {
	in := []string{"zoe", "adam"}
	got := CanonicalMembers(in)
	if got[0] != "adam" || got[1] != "zoe" {
		t.Fatalf("unexpected order: %v", got)
	}
	if in[0] != "zoe" {
		t.Fatal("input slice must not be mutated")
	}
}

func TestConversationHasMember(t *testing.T) {
	c := Conversation{Members: []string{"adam", "zoe"}}
	if !c.HasMember("adam") || !c.HasMember("zoe") {
		t.Fatal("expected both members")
	}
	if c.HasMember("eve") || c.HasMember("") {
		t.Fatal("unexpected member")
	}
}
