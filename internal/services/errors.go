package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sbilibin2017/gw-token-ledger/internal/models"
)

var (
	// ErrInvalidAmount is returned when a credit or debit amount is not positive.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientBalance is returned when the balance does not cover a debit.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrAlreadyPromoted is returned when a job with an active promotion is promoted again.
	ErrAlreadyPromoted = errors.New("entity is already promoted")
	// ErrDuplicatePaymentReference is returned when a payment reference was already credited.
	ErrDuplicatePaymentReference = errors.New("payment reference already processed")
	// ErrInvalidPaymentReference is returned for an empty payment reference.
	ErrInvalidPaymentReference = errors.New("payment reference is required")
	// ErrAlreadyApplied is returned when the user already applied to the job.
	ErrAlreadyApplied = errors.New("already applied to this job")
	// ErrEntityNotFound is returned when the job or profile does not exist.
	ErrEntityNotFound = errors.New("entity not found")
	// ErrUnsupportedEntity is returned for an entity kind other than job or profile.
	ErrUnsupportedEntity = errors.New("unsupported entity kind")
	// ErrNotEntityOwner is returned when a user promotes somebody else's job or profile.
	ErrNotEntityOwner = errors.New("entity belongs to another user")
	// ErrStoreUnavailable wraps unexpected data store failures.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrStatementNotFound is returned when a statement object does not exist.
	ErrStatementNotFound = errors.New("statement not found")
)

// InsufficientBalanceError carries the figures needed for a funding prompt.
type InsufficientBalanceError struct {
	Balance int64
	Cost    int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: balance %d, cost %d", ErrInsufficientBalance, e.Balance, e.Cost)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// Shortfall returns how many tokens are missing.
func (e *InsufficientBalanceError) Shortfall() int64 {
	return e.Cost - e.Balance
}

// AlreadyPromotedError carries the promotion that is still in effect.
type AlreadyPromotedError struct {
	Tag       models.PromotionTag
	ExpiresAt time.Time
}

func (e *AlreadyPromotedError) Error() string {
	return fmt.Sprintf("%s: %s until %s", ErrAlreadyPromoted, e.Tag, e.ExpiresAt.Format(time.RFC3339))
}

func (e *AlreadyPromotedError) Unwrap() error {
	return ErrAlreadyPromoted
}

func storeError(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
