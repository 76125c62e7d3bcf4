// Package apperr defines the error kinds shared across features.
//
// A BusinessRuleError marks a caller-correctable input or state violation,
// as opposed to infrastructure failures which propagate unwrapped.
package apperr

import "errors"

// BusinessRuleError is a user-correctable violation of a business rule.
// Each rule is declared once as a package-level value, so callers can match
// a specific rule with errors.Is and the whole category with errors.As.
type BusinessRuleError struct {
	msg string
}

// NewBusinessRule creates a business rule violation with the given message.
func NewBusinessRule(msg string) *BusinessRuleError {
	return &BusinessRuleError{msg: msg}
}

// Error returns the human-readable rule message.
func (e *BusinessRuleError) Error() string {
	return e.msg
}

// IsBusinessRule reports whether err is a business rule violation.
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}
