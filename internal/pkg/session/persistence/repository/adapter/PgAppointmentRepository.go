package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	session "mindline/internal/pkg/session/application/domain"
	repository "mindline/internal/pkg/session/persistence/repository/port"
)

type PgAppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewPgAppointmentRepository(pool *pgxpool.Pool) *PgAppointmentRepository {
	return &PgAppointmentRepository{pool: pool}
}

var _ repository.AppointmentRepository = (*PgAppointmentRepository)(nil)

func (r *PgAppointmentRepository) FindByID(ctx context.Context, id string) (*session.Appointment, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgAppointmentRepository: nil pool")
	}
	var a session.Appointment
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, user_id::text, counsellor_id::text, scheduled_at, duration_minutes
		FROM booking.appointment
		WHERE id = $1::uuid
	`, id).Scan(&a.ID, &a.UserID, &a.CounsellorID, &a.ScheduledAt, &a.DurationMinutes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
