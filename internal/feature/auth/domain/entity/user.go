// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account in the finance tracker.
// It contains authentication credentials and metadata for account management.
type User struct {
	// ID is the unique identifier for the user, assigned by the store on creation.
	ID uint `gorm:"primaryKey"`

	// Name is the user's display name.
	Name string `gorm:"size:255;not null"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
