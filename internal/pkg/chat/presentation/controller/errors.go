package controller

import (
	"errors"
	"net/http"

	chat "mindline/internal/pkg/chat/application/domain"
	"mindline/internal/pkg/chat/application/usecase"
	chatrepo "mindline/internal/pkg/chat/persistence/repository/port"
	session "mindline/internal/pkg/session/application/domain"
	apptrepo "mindline/internal/pkg/session/persistence/repository/port"
)

// statusForError maps use-case errors onto HTTP statuses: validation 400,
// access rejections 403, missing records 404, infrastructure failures 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, chat.ErrNotMember),
		errors.Is(err, session.ErrNotParticipant),
		errors.Is(err, session.ErrNotActive):
		return http.StatusForbidden
	case errors.Is(err, chatrepo.ErrNotFound),
		errors.Is(err, apptrepo.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
