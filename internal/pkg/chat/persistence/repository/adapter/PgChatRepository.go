package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "mindline/internal/pkg/chat/application/domain"
	repository "mindline/internal/pkg/chat/persistence/repository/port"
)

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

var _ repository.ChatRepository = (*PgChatRepository)(nil)

const conversationColumns = "id::text, members, is_group, session_id::text, last_message_at, created_at"

func (r *PgChatRepository) FindOrCreateConversation(ctx context.Context, members []string, sessionID string) (chat.Conversation, bool, error) {
	if r == nil || r.pool == nil {
		return chat.Conversation{}, false, errors.New("PgChatRepository: nil pool")
	}

	if conv, err := r.findBySession(ctx, members, sessionID); err == nil {
		return conv, false, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return chat.Conversation{}, false, err
	}

	now := time.Now().UTC()
	var conv chat.Conversation
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chat.conversation (members, is_group, session_id, last_message_at, created_at)
		VALUES ($1, false, $2::uuid, $3, $3)
		ON CONFLICT (session_id, members) DO NOTHING
		RETURNING `+conversationColumns, members, sessionID, now,
	).Scan(&conv.ID, &conv.Members, &conv.IsGroup, &conv.SessionID, &conv.LastMessageAt, &conv.CreatedAt)
	if err == nil {
		return conv, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return chat.Conversation{}, false, err
	}

	// Lost the insert race: the row exists now, fetch it.
	conv, err = r.findBySession(ctx, members, sessionID)
	if err != nil {
		return chat.Conversation{}, false, err
	}
	return conv, false, nil
}

func (r *PgChatRepository) findBySession(ctx context.Context, members []string, sessionID string) (chat.Conversation, error) {
	var conv chat.Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT `+conversationColumns+`
		FROM chat.conversation
		WHERE session_id = $1::uuid AND members = $2 AND is_group = false
	`, sessionID, members).Scan(&conv.ID, &conv.Members, &conv.IsGroup, &conv.SessionID, &conv.LastMessageAt, &conv.CreatedAt)
	return conv, err
}

func (r *PgChatRepository) FindConversationByID(ctx context.Context, id string) (chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return chat.Conversation{}, errors.New("PgChatRepository: nil pool")
	}
	var conv chat.Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT `+conversationColumns+`
		FROM chat.conversation
		WHERE id = $1::uuid
	`, id).Scan(&conv.ID, &conv.Members, &conv.IsGroup, &conv.SessionID, &conv.LastMessageAt, &conv.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return chat.Conversation{}, repository.ErrNotFound
	}
	return conv, err
}

func (r *PgChatRepository) ListConversationsByMember(ctx context.Context, userID string) ([]chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+conversationColumns+`
		FROM chat.conversation
		WHERE $1 = ANY(members)
		ORDER BY last_message_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []chat.Conversation
	for rows.Next() {
		var conv chat.Conversation
		if err := rows.Scan(&conv.ID, &conv.Members, &conv.IsGroup, &conv.SessionID, &conv.LastMessageAt, &conv.CreatedAt); err != nil {
			return nil, err
		}
		convs = append(convs, conv)
	}
	return convs, rows.Err()
}

func (r *PgChatRepository) SaveMessage(ctx context.Context, m chat.Message) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgChatRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chat.message (conversation_id, sender_id, cipher_text, key, emoji, attachments, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6, $7)
		RETURNING id::text
	`, m.ConversationID, m.SenderID, m.CipherText, m.Key, m.Emoji, m.Attachments, m.CreatedAt).Scan(&id)
	return id, err
}

const messageColumns = "id::text, conversation_id::text, sender_id::text, cipher_text, key, emoji, attachments, created_at"

func (r *PgChatRepository) ListMessages(ctx context.Context, conversationID string) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+messageColumns+`
		FROM chat.message
		WHERE conversation_id = $1::uuid
		ORDER BY created_at ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

func (r *PgChatRepository) LatestMessageBySender(ctx context.Context, conversationID, senderID string) (chat.Message, error) {
	if r == nil || r.pool == nil {
		return chat.Message{}, errors.New("PgChatRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+messageColumns+`
		FROM chat.message
		WHERE conversation_id = $1::uuid AND sender_id = $2::uuid
		ORDER BY created_at DESC
		LIMIT 1
	`, conversationID, senderID)
	msg, err := scanMessage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return chat.Message{}, repository.ErrNotFound
	}
	return msg, err
}

func (r *PgChatRepository) TouchLastMessageAt(ctx context.Context, conversationID string, at time.Time) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE chat.conversation
		SET last_message_at = $2
		WHERE id = $1::uuid
	`, conversationID, at)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanMessage(row pgx.Row) (chat.Message, error) {
	var msg chat.Message
	err := row.Scan(&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.CipherText, &msg.Key, &msg.Emoji, &msg.Attachments, &msg.CreatedAt)
	return msg, err
}
