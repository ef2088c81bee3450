package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	chat "mindline/internal/pkg/chat/application/domain"
	"mindline/internal/pkg/chat/security"
)

func TestListMessagesDecryptsHistory(t *testing.T) {
	repo := newFakeChatRepo()
	guard := activeGuard()
	conv := seedConversation(t, repo, guard)
	send := NewSendMessageUseCase(repo, guard)

	for i, text := range []string{"first", "second", "third"} {
		if _, err := send.Execute(context.Background(), SendMessageInput{
			ConversationID: conv.ID,
			SenderID:       "client-1",
			Text:           strptr(text),
			Now:            windowStart.Add(time.Duration(i+1) * time.Minute),
		}); err != nil {
			t.Fatalf("send %q: %v", text, err)
		}
	}

	out, err := NewListMessagesUseCase(repo).Execute(context.Background(), ListMessagesInput{
		ConversationID: conv.ID,
		CallerID:       "counsellor-1",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(out))
	}
	for i, want := range []string{"first", "second", "third"} {
		if out[i].Text == nil || *out[i].Text != want {
			t.Fatalf("message %d: want %q, got %v", i, want, out[i].Text)
		}
	}
}

// A record whose key was corrupted degrades to the placeholder body without
// breaking the rest of the listing.
func TestListMessagesCorruptRecordGetsPlaceholder(t *testing.T) {
	repo := newFakeChatRepo()
	guard := activeGuard()
	conv := seedConversation(t, repo, guard)
	send := NewSendMessageUseCase(repo, guard)

	if _, err := send.Execute(context.Background(), SendMessageInput{
		ConversationID: conv.ID,
		SenderID:       "client-1",
		Text:           strptr("intact"),
		Now:            windowStart.Add(time.Minute),
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := send.Execute(context.Background(), SendMessageInput{
		ConversationID: conv.ID,
		SenderID:       "client-1",
		Text:           strptr("will be corrupted"),
		Now:            windowStart.Add(2 * time.Minute),
	}); err != nil {
		t.Fatal(err)
	}
	repo.messages[1].Key = repo.messages[1].Key[:5] // truncate to an invalid size

	out, err := NewListMessagesUseCase(repo).Execute(context.Background(), ListMessagesInput{
		ConversationID: conv.ID,
		CallerID:       "client-1",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out[0].Text == nil || *out[0].Text != "intact" {
		t.Fatalf("intact record must still decrypt, got %v", out[0].Text)
	}
	if out[1].Text == nil || *out[1].Text != security.PlaceholderText {
		t.Fatalf("corrupt record must degrade to placeholder, got %v", out[1].Text)
	}
}

func TestListMessagesRejectsNonMember(t *testing.T) {
	repo := newFakeChatRepo()
	guard := activeGuard()
	conv := seedConversation(t, repo, guard)

	_, err := NewListMessagesUseCase(repo).Execute(context.Background(), ListMessagesInput{
		ConversationID: conv.ID,
		CallerID:       "stranger",
	})
	if !errors.Is(err, chat.ErrNotMember) {
		t.Fatalf("want ErrNotMember, got %v", err)
	}
}

func TestListMessagesEmptyConversation(t *testing.T) {
	repo := newFakeChatRepo()
	guard := activeGuard()
	conv := seedConversation(t, repo, guard)

	out, err := NewListMessagesUseCase(repo).Execute(context.Background(), ListMessagesInput{
		ConversationID: conv.ID,
		CallerID:       "client-1",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty history, got %d messages", len(out))
	}
}
