package models

import (
	"time"

	"github.com/google/uuid"
)

// LedgerEventType names a change on the ledger tables.
type LedgerEventType string

// Ledger change feed event types
const (
	EventWalletUpdated       LedgerEventType = "wallet.updated"
	EventTransactionInserted LedgerEventType = "transaction.inserted"
	EventTransactionUpdated  LedgerEventType = "transaction.updated"
	EventTransactionDeleted  LedgerEventType = "transaction.deleted"
)

// LedgerEvent is published to the change feed after a committed mutation.
// Wallet is set for wallet events, Transaction for transaction events.
type LedgerEvent struct {
	ID          uuid.UUID       `json:"id"`
	Type        LedgerEventType `json:"type"`
	UserID      uuid.UUID       `json:"user_id"`
	Wallet      *Wallet         `json:"wallet,omitempty"`
	Transaction *Transaction    `json:"transaction,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
}
