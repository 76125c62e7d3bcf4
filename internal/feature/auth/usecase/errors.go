// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"errors"

	"finance_backend/internal/shared/apperr"
)

var (
	// ErrUserNotFound is returned when no user matches the given email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidPassword is returned when the stored credential does not match
	// the supplied password. Handlers must collapse this and ErrUserNotFound
	// into one generic response so callers cannot probe which one occurred.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrEmailAlreadyRegistered is returned when attempting to register an email
	// that already belongs to a user. It is a business rule violation, whether
	// raised by the pre-insert check or by the unique index on the store.
	ErrEmailAlreadyRegistered = apperr.NewBusinessRule("email already registered")

	// ErrPasswordTooShort is returned when a signup password is below the
	// minimum length. The transport binding rejects these first; the rule is
	// kept here so the usecase holds regardless of the caller.
	ErrPasswordTooShort = apperr.NewBusinessRule("password must be at least 8 characters long")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionRevoked is returned when attempting to use a revoked session.
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrSessionExpired is returned when attempting to use an expired session.
	ErrSessionExpired = errors.New("session has expired")
)
