package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"mindline/internal/infrastructure/realtime"
	notification "mindline/internal/pkg/notification/application/domain"
)

type fakeNotificationRepo struct {
	rows      []notification.Notification
	createErr error
	nextID    int
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	if f.createErr != nil {
		return notification.Notification{}, f.createErr
	}
	f.nextID++
	n.ID = fmt.Sprintf("n-%d", f.nextID)
	f.rows = append(f.rows, n)
	return n, nil
}

func (f *fakeNotificationRepo) CreateBulk(ctx context.Context, ns []notification.Notification) ([]notification.Notification, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := make([]notification.Notification, 0, len(ns))
	for _, n := range ns {
		f.nextID++
		n.ID = fmt.Sprintf("n-%d", f.nextID)
		f.rows = append(f.rows, n)
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, userID string) ([]notification.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationRepo) GetByID(ctx context.Context, id, userID string) (notification.Notification, error) {
	return notification.Notification{}, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID string) (notification.Notification, error) {
	return notification.Notification{}, nil
}

func (f *fakeNotificationRepo) Delete(ctx context.Context, id, userID string) error { return nil }

func (f *fakeNotificationRepo) ClearByUser(ctx context.Context, userID string) error { return nil }

type fakeConn struct {
	id   string
	sent [][]byte
}

func (f *fakeConn) ID() string { return f.id }

func (f *fakeConn) Send(p []byte) error { f.sent = append(f.sent, p); return nil }

func (f *fakeConn) Close(code int, reason string) {}

type fakePresence struct {
	online map[string]*fakeConn
}

func (f *fakePresence) Lookup(userID string) (realtime.Sender, bool) {
	conn, ok := f.online[userID]
	if !ok {
		return nil, false
	}
	return conn, true
}

func TestNotifyPersistsThenPushes(t *testing.T) {
	repo := &fakeNotificationRepo{}
	conn := &fakeConn{id: "c1"}
	d := New(repo, &fakePresence{online: map[string]*fakeConn{"alice": conn}}, zap.NewNop())

	got, err := d.Notify(context.Background(), notification.Notification{
		UserID: "alice",
		Title:  "Session reminder",
		Body:   "Your session starts in 10 minutes",
		Type:   "reminder",
	})
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if got.ID == "" {
		t.Fatal("expected a persisted id")
	}
	if len(repo.rows) != 1 {
		t.Fatalf("expected 1 stored row, got %d", len(repo.rows))
	}
	if len(conn.sent) != 1 {
		t.Fatalf("expected 1 live push, got %d", len(conn.sent))
	}

	var ev struct {
		Event string `json:"event"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(conn.sent[0], &ev); err != nil {
		t.Fatalf("push payload is not JSON: %v", err)
	}
	if ev.Event != "getNotification" || ev.Title != "Session reminder" {
		t.Fatalf("unexpected push frame: %+v", ev)
	}
}

func TestNotifyOfflineUserStillPersists(t *testing.T) {
	repo := &fakeNotificationRepo{}
	d := New(repo, &fakePresence{online: map[string]*fakeConn{}}, zap.NewNop())

	if _, err := d.Notify(context.Background(), notification.Notification{
		UserID: "bob",
		Title:  "t",
		Body:   "b",
	}); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(repo.rows) != 1 {
		t.Fatal("offline target must still get a durable record")
	}
}

func TestNotifyPersistFailureSkipsPush(t *testing.T) {
	repo := &fakeNotificationRepo{createErr: errors.New("db down")}
	conn := &fakeConn{id: "c1"}
	d := New(repo, &fakePresence{online: map[string]*fakeConn{"alice": conn}}, zap.NewNop())

	if _, err := d.Notify(context.Background(), notification.Notification{
		UserID: "alice",
		Title:  "t",
		Body:   "b",
	}); err == nil {
		t.Fatal("expected the persistence error to surface")
	}
	if len(conn.sent) != 0 {
		t.Fatal("a failed persist must never produce a live push")
	}
}

func TestNotifyRejectsInvalid(t *testing.T) {
	d := New(&fakeNotificationRepo{}, &fakePresence{}, zap.NewNop())
	if _, err := d.Notify(context.Background(), notification.Notification{UserID: "alice"}); !errors.Is(err, notification.ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}

func TestBroadcastPersistsAllPushesOnline(t *testing.T) {
	repo := &fakeNotificationRepo{}
	conn := &fakeConn{id: "c1"}
	d := New(repo, &fakePresence{online: map[string]*fakeConn{"bob": conn}}, zap.NewNop())

	persisted, pushed, err := d.Broadcast(context.Background(), []string{"alice", "bob", "carol"}, notification.Notification{
		Title: "Maintenance window",
		Body:  "The platform goes down at midnight",
	})
	if err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	if len(persisted) != 3 {
		t.Fatalf("expected 3 durable rows, got %d", len(persisted))
	}
	if pushed != 1 {
		t.Fatalf("expected 1 live push (only bob online), got %d", pushed)
	}
	for i, want := range []string{"alice", "bob", "carol"} {
		if persisted[i].UserID != want {
			t.Fatalf("row %d: want user %s, got %s", i, want, persisted[i].UserID)
		}
	}
}

// Email/SMS/push records are stored for external senders, never pushed over
// the socket.
func TestPushOnlyForInAppChannel(t *testing.T) {
	repo := &fakeNotificationRepo{}
	conn := &fakeConn{id: "c1"}
	d := New(repo, &fakePresence{online: map[string]*fakeConn{"alice": conn}}, zap.NewNop())

	if _, err := d.Notify(context.Background(), notification.Notification{
		UserID:  "alice",
		Title:   "t",
		Body:    "b",
		Channel: notification.ChannelEmail,
	}); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(conn.sent) != 0 {
		t.Fatal("email-channel record must not travel over the socket")
	}
	if len(repo.rows) != 1 {
		t.Fatal("email-channel record must still be stored")
	}
}
