package models

import (
	"time"

	"github.com/google/uuid"
)

// Wallet represents a wallet row in the database. One wallet per user, balance in tokens.
type Wallet struct {
	UserID     uuid.UUID `json:"user_id" db:"user_id"`         // Identifier of the wallet's owner
	Balance    int64     `json:"balance" db:"balance"`         // Current balance in tokens, never negative
	LastAction string    `json:"last_action" db:"last_action"` // Label of the most recent mutation, advisory only
	Version    int64     `json:"version" db:"version"`         // Incremented on every balance mutation
	CreatedAt  time.Time `json:"created_at" db:"created_at"`   // Timestamp when the wallet was created
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`   // Timestamp of the last wallet update
}
