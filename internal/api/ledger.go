package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryRequest represents the request body for creating or updating a
// ledger entry. Field validation is deliberately left to the ledger
// usecase so the response carries the specific violated rule.
type EntryRequest struct {
	Description string          `json:"description"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Value       decimal.Decimal `json:"value"`
	Type        string          `json:"type"`
}

// StatusRequest represents the request body for a status change.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// EntryResponse is the public representation of a ledger entry.
type EntryResponse struct {
	ID          uint            `json:"id"`
	Description string          `json:"description"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Value       decimal.Decimal `json:"value"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	UserID      uint            `json:"user_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BalanceResponse carries a user's net balance.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}
