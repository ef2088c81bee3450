package repository

import (
	"context"
	"errors"

	session "mindline/internal/pkg/session/application/domain"
)

// ErrNotFound signals that no appointment exists for the given id.
var ErrNotFound = errors.New("appointment: not found")

// AppointmentRepository reads booking records owned by the scheduling system.
type AppointmentRepository interface {
	FindByID(ctx context.Context, id string) (*session.Appointment, error)
}
