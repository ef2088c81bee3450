package controller

import (
	"errors"
	"net/http"

	notification "mindline/internal/pkg/notification/application/domain"
	repository "mindline/internal/pkg/notification/persistence/repository/port"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, notification.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
