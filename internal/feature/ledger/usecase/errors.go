// Package usecase implements the business logic for the ledger feature.
package usecase

import (
	"errors"

	"finance_backend/internal/shared/apperr"
)

// Validation rule violations, one per rule, checked in a fixed order.
// Each is a business rule violation carrying the message for that rule;
// only the first violated rule is reported.
var (
	// ErrInvalidDescription is returned when the description is empty or blank.
	ErrInvalidDescription = apperr.NewBusinessRule("a valid description is required")

	// ErrInvalidMonth is returned when the month is outside 1 through 12.
	ErrInvalidMonth = apperr.NewBusinessRule("a valid month is required")

	// ErrInvalidYear is returned when the year is not a four digit number.
	ErrInvalidYear = apperr.NewBusinessRule("a valid year is required")

	// ErrMissingUser is returned when the entry has no owning user reference.
	ErrMissingUser = apperr.NewBusinessRule("an owning user is required")

	// ErrInvalidValue is returned when the value is missing, zero or negative.
	ErrInvalidValue = apperr.NewBusinessRule("a valid value is required")

	// ErrMissingType is returned when the entry type is missing or unknown.
	ErrMissingType = apperr.NewBusinessRule("an entry type is required")
)

var (
	// ErrEntryNotFound is returned when no entry matches the given ID.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrEntryIDRequired marks a contract violation: update and delete demand
	// an entry that already carries a store-assigned ID. It is a programming
	// error on the caller's side, not a business rule, and is deliberately
	// not an apperr.BusinessRuleError.
	ErrEntryIDRequired = errors.New("entry id is required")
)
