package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	repository "mindline/internal/repository/port"
)

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

var _ repository.UserRepository = (*PgUserRepository)(nil)

func (r *PgUserRepository) UpdateLastSeen(ctx context.Context, userID string, at time.Time) error {
	if r == nil || r.pool == nil {
		return errors.New("PgUserRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE accounts.app_user
		SET last_seen = $2
		WHERE id = $1::uuid
	`, userID, at)
	return err
}
