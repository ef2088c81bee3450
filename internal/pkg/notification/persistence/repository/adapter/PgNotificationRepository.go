package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	notification "mindline/internal/pkg/notification/application/domain"
	repository "mindline/internal/pkg/notification/persistence/repository/port"
)

type PgNotificationRepository struct {
	pool *pgxpool.Pool
}

func NewPgNotificationRepository(pool *pgxpool.Pool) *PgNotificationRepository {
	return &PgNotificationRepository{pool: pool}
}

var _ repository.NotificationRepository = (*PgNotificationRepository)(nil)

const notificationColumns = "id::text, user_id::text, title, body, channel, type, is_read, meta, created_at"

func (r *PgNotificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	if r == nil || r.pool == nil {
		return notification.Notification{}, errors.New("PgNotificationRepository: nil pool")
	}
	meta, err := json.Marshal(n.Meta)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("encode meta: %w", err)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO notifications.notification (user_id, title, body, channel, type, is_read, meta, created_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+notificationColumns,
		n.UserID, n.Title, n.Body, n.Channel, n.Type, n.IsRead, meta, n.CreatedAt)
	return scanNotification(row)
}

func (r *PgNotificationRepository) CreateBulk(ctx context.Context, ns []notification.Notification) ([]notification.Notification, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgNotificationRepository: nil pool")
	}
	if len(ns) == 0 {
		return nil, nil
	}

	batch := &pgx.Batch{}
	for _, n := range ns {
		meta, err := json.Marshal(n.Meta)
		if err != nil {
			return nil, fmt.Errorf("encode meta: %w", err)
		}
		batch.Queue(`
			INSERT INTO notifications.notification (user_id, title, body, channel, type, is_read, meta, created_at)
			VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+notificationColumns,
			n.UserID, n.Title, n.Body, n.Channel, n.Type, n.IsRead, meta, n.CreatedAt)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	out := make([]notification.Notification, 0, len(ns))
	for range ns {
		n, err := scanNotification(results.QueryRow())
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *PgNotificationRepository) ListByUser(ctx context.Context, userID string) ([]notification.Notification, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgNotificationRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications.notification
		WHERE user_id = $1::uuid
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *PgNotificationRepository) GetByID(ctx context.Context, id, userID string) (notification.Notification, error) {
	if r == nil || r.pool == nil {
		return notification.Notification{}, errors.New("PgNotificationRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications.notification
		WHERE id = $1::uuid AND user_id = $2::uuid
	`, id, userID)
	n, err := scanNotification(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return notification.Notification{}, repository.ErrNotFound
	}
	return n, err
}

func (r *PgNotificationRepository) MarkRead(ctx context.Context, id, userID string) (notification.Notification, error) {
	if r == nil || r.pool == nil {
		return notification.Notification{}, errors.New("PgNotificationRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE notifications.notification
		SET is_read = true
		WHERE id = $1::uuid AND user_id = $2::uuid
		RETURNING `+notificationColumns,
		id, userID)
	n, err := scanNotification(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return notification.Notification{}, repository.ErrNotFound
	}
	return n, err
}

func (r *PgNotificationRepository) Delete(ctx context.Context, id, userID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgNotificationRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		DELETE FROM notifications.notification
		WHERE id = $1::uuid AND user_id = $2::uuid
	`, id, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PgNotificationRepository) ClearByUser(ctx context.Context, userID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgNotificationRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		DELETE FROM notifications.notification
		WHERE user_id = $1::uuid
	`, userID)
	return err
}

func scanNotification(row pgx.Row) (notification.Notification, error) {
	var n notification.Notification
	var meta []byte
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.Channel, &n.Type, &n.IsRead, &meta, &n.CreatedAt)
	if err != nil {
		return notification.Notification{}, err
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &n.Meta); err != nil {
			return notification.Notification{}, fmt.Errorf("decode meta: %w", err)
		}
	}
	return n, nil
}
