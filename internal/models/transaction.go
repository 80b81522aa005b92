package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is an immutable ledger entry recording a credit or a debit.
// Exactly one of TokensIn and TokensOut is expected to be non-zero.
type Transaction struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	Description string    `json:"description" db:"description"`
	TokensIn    int64     `json:"tokens_in" db:"tokens_in"`
	TokensOut   int64     `json:"tokens_out" db:"tokens_out"`
}

// Net returns the signed effect of the transaction on the balance.
func (t Transaction) Net() int64 {
	return t.TokensIn - t.TokensOut
}
