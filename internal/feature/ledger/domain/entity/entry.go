// Package entity defines the domain entities for the ledger feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies an entry as income or expense.
type EntryType string

const (
	EntryTypeIncome  EntryType = "INCOME"
	EntryTypeExpense EntryType = "EXPENSE"
)

// Valid reports whether the type is one of the known values.
func (t EntryType) Valid() bool {
	return t == EntryTypeIncome || t == EntryTypeExpense
}

// EntryStatus is the lifecycle status of an entry.
//
// PENDING is the initial status; transitions are explicit assignments and
// no transition table is enforced, so a SETTLED entry may go back to
// PENDING by an explicit status change.
type EntryStatus string

const (
	EntryStatusPending  EntryStatus = "PENDING"
	EntryStatusSettled  EntryStatus = "SETTLED"
	EntryStatusCanceled EntryStatus = "CANCELED"
)

// Valid reports whether the status is one of the known values.
func (s EntryStatus) Valid() bool {
	return s == EntryStatusPending || s == EntryStatusSettled || s == EntryStatusCanceled
}

// Entry represents a single financial record (income or expense) owned by
// one user, tagged with the month and year it belongs to.
type Entry struct {
	// ID is the unique identifier for the entry, assigned by the store on creation.
	ID uint `gorm:"primaryKey"`

	// Description is a short free-text label for the entry.
	Description string `gorm:"size:255;not null"`

	// Month is the accounting month, 1 through 12.
	Month int `gorm:"not null"`

	// Year is the accounting year, always four digits.
	Year int `gorm:"not null"`

	// Value is the monetary amount, always strictly positive; the sign of a
	// movement is expressed by Type, not by Value.
	Value decimal.Decimal `gorm:"type:numeric(16,2);not null"`

	// Type marks the entry as INCOME or EXPENSE.
	Type EntryType `gorm:"size:16;not null;index"`

	// Status is the lifecycle status, PENDING on creation.
	Status EntryStatus `gorm:"size:16;not null;index"`

	// UserID references the owning user, which must already be persisted.
	UserID uint `gorm:"index;not null"`

	// CreatedAt is the timestamp when the entry was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the entry was last updated.
	UpdatedAt time.Time
}
