package notification

import "testing"

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		in   Notification
	}{
		{"missing user", Notification{Title: "t", Body: "b"}},
		{"missing title", Notification{UserID: "u", Body: "b"}},
		{"missing body", Notification{UserID: "u", Title: "t"}},
		{"whitespace title", Notification{UserID: "u", Title: "   ", Body: "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.in); err != ErrInvalid {
				t.Fatalf("want ErrInvalid, got %v", err)
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	n, err := New(Notification{UserID: "u", Title: " t ", Body: " b "})
	if err != nil {
		t.Fatal(err)
	}
	if n.Title != "t" || n.Body != "b" {
		t.Fatalf("expected trimmed fields, got %q %q", n.Title, n.Body)
	}
	if n.Channel != ChannelInApp {
		t.Fatalf("expected in-app default channel, got %q", n.Channel)
	}
	if n.Meta == nil {
		t.Fatal("expected non-nil meta map")
	}
	if n.CreatedAt.IsZero() {
		t.Fatal("expected a default creation time")
	}
}

func TestChannelValid(t *testing.T) {
	for _, c := range []Channel{ChannelInApp, ChannelEmail, ChannelSMS, ChannelPush} {
		if !c.Valid() {
			t.Fatalf("%q must be valid", c)
		}
	}
	if Channel("carrier-pigeon").Valid() {
		t.Fatal("unknown channel must be invalid")
	}
}
