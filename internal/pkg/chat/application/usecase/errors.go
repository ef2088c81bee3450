package usecase

import "errors"

var (
	// ErrPersistence indicates an infrastructure/repository failure inside a
	// use case. Controllers map it to a 5xx response.
	ErrPersistence = errors.New("chat use case: persistence error")

	// ErrValidation indicates a missing or malformed input field. Reported to
	// the caller, never retried.
	ErrValidation = errors.New("chat use case: validation error")
)
