package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentEventChargeSuccess is the provider event name for a completed charge.
const PaymentEventChargeSuccess = "charge.success"

// PaymentEvent is the JSON body delivered by the payment provider webhook.
type PaymentEvent struct {
	Event string           `json:"event"`
	Data  PaymentEventData `json:"data"`
}

// PaymentEventData carries the charge details.
type PaymentEventData struct {
	Reference string          `json:"reference"`
	Amount    int64           `json:"amount"` // minor currency units
	Currency  string          `json:"currency"`
	Metadata  PaymentMetadata `json:"metadata"`
}

// PaymentMetadata is the custom metadata attached to the charge at checkout.
type PaymentMetadata struct {
	UserID string `json:"userId"`
}

// Payment is a processed payment reference row, used to reject duplicate deliveries.
type Payment struct {
	Reference string    `json:"reference" db:"reference"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Tokens    int64     `json:"tokens" db:"tokens"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PaymentCredit is a verified credit waiting to be applied to the ledger.
// It is the payload of the payment retry topic.
type PaymentCredit struct {
	UserID    uuid.UUID `json:"user_id"`
	Tokens    int64     `json:"tokens"`
	Reference string    `json:"reference"`
	Attempts  int       `json:"attempts"`
	LastError string    `json:"last_error,omitempty"`
	FailedAt  time.Time `json:"failed_at"`
}
