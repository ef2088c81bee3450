package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"mindline/internal/infrastructure/metrics"
	"mindline/internal/infrastructure/realtime"
	"mindline/internal/pkg/chat/application/usecase"
	repoAdapter "mindline/internal/pkg/chat/persistence/repository/adapter"
	"mindline/internal/pkg/chat/security"
	userAdapter "mindline/internal/repository/adapter"
	userPort "mindline/internal/repository/port"
)

// ChatSocketController owns the lifecycle of each live connection. A
// connection moves from connected to identified (after the peer announces its
// user id) to disconnected; presence, the online-user broadcasts and the
// best-effort live message push all hang off those transitions.
//
// Everything here mirrors already-validated durable state: persistence and
// access checks happen on the REST path, so handler failures are logged and
// swallowed rather than surfaced to the peer or allowed to drop the socket.
type ChatSocketController struct {
	registry  *realtime.Registry
	users     userPort.UserRepository
	peekUC    *usecase.PeekLatestMessageUseCase
	log       *zap.Logger
	opTimeout time.Duration
}

func NewChatSocketController(pool *pgxpool.Pool, registry *realtime.Registry, log *zap.Logger) *ChatSocketController {
	return &ChatSocketController{
		registry:  registry,
		users:     userAdapter.NewPgUserRepository(pool),
		peekUC:    usecase.NewPeekLatestMessageUseCase(repoAdapter.NewPgChatRepository(pool)),
		log:       log,
		opTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when needed.
		return true
	},
}

// Event names on the bidirectional channel.
const (
	eventAddUser     = "addUser"
	eventGetUsers    = "getUsers"
	eventUserOnline  = "userOnline"
	eventSendMessage = "sendMessage"
	eventGetMessage  = "getMessage"
	eventUserOffline = "userOffline"
)

type inboundEvent struct {
	Event          string   `json:"event"`
	UserID         string   `json:"userId,omitempty"`
	ConversationID string   `json:"conversationId,omitempty"`
	SenderID       string   `json:"senderId,omitempty"`
	ReceiverID     string   `json:"receiverId,omitempty"`
	Text           *string  `json:"text,omitempty"`
	Emoji          *string  `json:"emoji,omitempty"`
	Attachments    []string `json:"attachments,omitempty"`
}

type usersEvent struct {
	Event string   `json:"event"`
	Users []string `json:"users"`
}

type presenceEvent struct {
	Event  string `json:"event"`
	UserID string `json:"userId"`
}

type messageEvent struct {
	Event          string    `json:"event"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Text           *string   `json:"text,omitempty"`
	Emoji          *string   `json:"emoji,omitempty"`
	Attachments    []string  `json:"attachments,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

const defaultReadTimeout = 60 * time.Second

// Handle upgrades the HTTP request and processes events until the client
// disconnects.
func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response.
			return
		}

		conn := realtime.NewConnection(ws)
		conn.Start()
		defer func() {
			ctl.handleDisconnect(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 20)
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) &&
					!errors.Is(err, websocket.ErrCloseSent) {
					ctl.log.Debug("socket read ended", zap.String("connection", conn.ID()), zap.Error(err))
				}
				return
			}

			var evt inboundEvent
			if err := json.Unmarshal(data, &evt); err != nil {
				ctl.log.Debug("dropping malformed frame", zap.String("connection", conn.ID()))
				continue
			}

			switch evt.Event {
			case eventAddUser:
				ctl.handleAddUser(conn, evt.UserID)
			case eventSendMessage:
				ctl.handleSendMessage(conn, evt)
			default:
				ctl.log.Debug("unknown event", zap.String("event", evt.Event))
			}
		}
	}
}

// handleAddUser moves the connection into the identified state: it claims the
// presence entry for userID (replacing any previous connection for the same
// user), replies with the current online-user list and announces the arrival
// to everyone else.
func (ctl *ChatSocketController) handleAddUser(conn realtime.Sender, userID string) {
	if userID == "" {
		ctl.log.Debug("addUser without userId", zap.String("connection", conn.ID()))
		return
	}

	if previous := ctl.registry.Register(userID, conn); previous != nil {
		previous.Close(4001, "session replaced")
	}
	metrics.OnlineUsers.Set(float64(ctl.registry.Len()))

	ctl.touchLastSeen(userID)

	if payload, err := json.Marshal(usersEvent{Event: eventGetUsers, Users: ctl.registry.ListUsers()}); err == nil {
		_ = conn.Send(payload)
	}

	if payload, err := json.Marshal(presenceEvent{Event: eventUserOnline, UserID: userID}); err == nil {
		ctl.registry.Broadcast(payload, conn.ID())
	}
}

// handleSendMessage is the live-push hint. The durable message was already
// created through the REST send path; the gateway reloads that row, decrypts
// it and forwards the plaintext to the recipient if (and only if) the
// recipient is currently online. An offline recipient silently loses only the
// live copy, never the durable one.
func (ctl *ChatSocketController) handleSendMessage(conn realtime.Sender, evt inboundEvent) {
	if evt.ConversationID == "" || evt.SenderID == "" || evt.ReceiverID == "" {
		ctl.log.Debug("sendMessage with missing fields", zap.String("connection", conn.ID()))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), ctl.opTimeout)
	defer cancel()

	text := evt.Text

	latest, err := ctl.peekUC.Execute(ctx, usecase.PeekLatestMessageInput{
		ConversationID: evt.ConversationID,
		SenderID:       evt.SenderID,
	})
	if err != nil {
		ctl.log.Error("live push: load latest message", zap.String("conversation", evt.ConversationID), zap.Error(err))
		return
	}
	if latest != nil && latest.CipherText != nil && len(latest.Key) > 0 {
		decrypted, err := security.Decrypt(latest.Key, *latest.CipherText)
		if err != nil {
			ctl.log.Warn("live push: decryption failed", zap.String("message", latest.ID), zap.Error(err))
			metrics.DecryptFailures.Inc()
			decrypted = security.PlaceholderText
		}
		text = &decrypted
	}

	receiver, online := ctl.registry.Lookup(evt.ReceiverID)
	if !online {
		metrics.LivePushes.WithLabelValues("offline").Inc()
		return
	}

	payload, err := json.Marshal(messageEvent{
		Event:          eventGetMessage,
		ConversationID: evt.ConversationID,
		SenderID:       evt.SenderID,
		Text:           text,
		Emoji:          evt.Emoji,
		Attachments:    evt.Attachments,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		return
	}
	if err := receiver.Send(payload); err != nil {
		ctl.log.Warn("live push: send failed", zap.String("receiver", evt.ReceiverID), zap.Error(err))
		metrics.LivePushes.WithLabelValues("failed").Inc()
		return
	}
	metrics.LivePushes.WithLabelValues("delivered").Inc()
}

// handleDisconnect revokes presence and broadcasts userOffline if the
// connection had identified itself. A connection already replaced by a faster
// reconnect no longer owns a presence entry, so this becomes a no-op and the
// fresh session stays registered.
func (ctl *ChatSocketController) handleDisconnect(conn realtime.Sender) {
	userID, ok := ctl.registry.UnregisterByConnection(conn.ID())
	metrics.OnlineUsers.Set(float64(ctl.registry.Len()))
	if !ok {
		return
	}

	ctl.touchLastSeen(userID)

	if payload, err := json.Marshal(presenceEvent{Event: eventUserOffline, UserID: userID}); err == nil {
		ctl.registry.Broadcast(payload, conn.ID())
	}
}

// touchLastSeen updates the externally-owned reachability timestamp.
// Best-effort: failures are logged and never fatal to the connection.
func (ctl *ChatSocketController) touchLastSeen(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), ctl.opTimeout)
	defer cancel()
	if err := ctl.users.UpdateLastSeen(ctx, userID, time.Now().UTC()); err != nil {
		ctl.log.Warn("update last seen", zap.String("user", userID), zap.Error(err))
	}
}
