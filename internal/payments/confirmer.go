package payments

//go:generate mockgen -source=confirmer.go -destination=confirmer_mock.go -package=payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-ledger/internal/logger"
	"github.com/sbilibin2017/gw-token-ledger/internal/metrics"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
	"github.com/sbilibin2017/gw-token-ledger/internal/pricing"
	"github.com/sbilibin2017/gw-token-ledger/internal/services"
	"github.com/segmentio/kafka-go"
)

// ErrMalformedEvent is returned for a success event without a usable user id or reference.
var ErrMalformedEvent = errors.New("malformed payment event")

// ErrRedeliveryExhausted is returned when a credit failed on every redelivery.
var ErrRedeliveryExhausted = errors.New("payment credit redelivery exhausted")

// DefaultMaxRedeliveries bounds how often a credit goes through the retry topic.
const DefaultMaxRedeliveries = 5

// Funder credits tokens bought with a verified payment.
type Funder interface {
	FundFromPayment(ctx context.Context, userID uuid.UUID, tokens int64, reference string) (*models.Wallet, error)
}

// DeadLetterWriter publishes credits that could not be applied.
type DeadLetterWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Outcome describes what happened to a verified webhook.
type Outcome string

// Webhook outcomes
const (
	OutcomeCredited     Outcome = "credited"
	OutcomeDuplicate    Outcome = "duplicate"
	OutcomeIgnored      Outcome = "ignored"
	OutcomeDeadLettered Outcome = "dead_lettered"
)

// Result is the outcome of confirming one payment. LedgerApplied is false when
// the credit was queued for redelivery instead.
type Result struct {
	Outcome       Outcome        `json:"status"`
	LedgerApplied bool           `json:"ledger_applied"`
	Tokens        int64          `json:"tokens"`
	Reference     string         `json:"reference,omitempty"`
	Wallet        *models.Wallet `json:"wallet,omitempty"`
}

// Confirmer turns verified payment events into ledger credits.
type Confirmer struct {
	funder          Funder
	deadLetter      DeadLetterWriter
	pricing         *pricing.Table
	maxRedeliveries int
	newBackOff      func() backoff.BackOff
	now             func() time.Time
}

// NewConfirmer creates a Confirmer. deadLetter may be nil, failed credits are then only logged.
func NewConfirmer(funder Funder, deadLetter DeadLetterWriter, table *pricing.Table) *Confirmer {
	if table == nil {
		table = pricing.Default()
	}
	return &Confirmer{
		funder:          funder,
		deadLetter:      deadLetter,
		pricing:         table,
		maxRedeliveries: DefaultMaxRedeliveries,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			b.MaxElapsedTime = 10 * time.Second
			return b
		},
		now: time.Now,
	}
}

// Confirm applies a verified webhook event.
func (c *Confirmer) Confirm(ctx context.Context, event models.PaymentEvent) (*Result, error) {
	if event.Event != models.PaymentEventChargeSuccess {
		logger.Log.Infow("payment event ignored", "event", event.Event, "reference", event.Data.Reference)
		return &Result{Outcome: OutcomeIgnored, Reference: event.Data.Reference}, nil
	}

	userID, err := uuid.Parse(event.Data.Metadata.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid userId %q", ErrMalformedEvent, event.Data.Metadata.UserID)
	}
	if event.Data.Reference == "" {
		return nil, fmt.Errorf("%w: missing reference", ErrMalformedEvent)
	}

	tokens := c.pricing.TokensForPayment(event.Data.Amount)
	if tokens == 0 {
		logger.Log.Warnw("payment below the price of one token", "reference", event.Data.Reference, "amount", event.Data.Amount)
		return &Result{Outcome: OutcomeIgnored, Reference: event.Data.Reference}, nil
	}

	return c.Apply(ctx, models.PaymentCredit{
		UserID:    userID,
		Tokens:    tokens,
		Reference: event.Data.Reference,
	})
}

// Apply credits the wallet with retries. If the ledger keeps failing the credit is
// published to the dead-letter topic and the result reports LedgerApplied false.
func (c *Confirmer) Apply(ctx context.Context, credit models.PaymentCredit) (*Result, error) {
	result := &Result{Tokens: credit.Tokens, Reference: credit.Reference}

	operation := func() (*models.Wallet, error) {
		wallet, err := c.funder.FundFromPayment(ctx, credit.UserID, credit.Tokens, credit.Reference)
		switch {
		case err == nil:
			return wallet, nil
		case errors.Is(err, services.ErrDuplicatePaymentReference):
			result.Outcome = OutcomeDuplicate
			return nil, nil
		case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, services.ErrInvalidPaymentReference):
			return nil, backoff.Permanent(err)
		default:
			return nil, err
		}
	}
	notify := func(err error, wait time.Duration) {
		logger.Log.Warnw("payment credit failed, retrying",
			"reference", credit.Reference,
			"userID", credit.UserID,
			"wait", wait,
			"error", err,
		)
	}

	wallet, err := backoff.RetryNotifyWithData(operation, backoff.WithContext(c.newBackOff(), ctx), notify)
	if err == nil {
		result.LedgerApplied = true
		result.Wallet = wallet
		if result.Outcome == "" {
			result.Outcome = OutcomeCredited
		}
		return result, nil
	}
	if errors.Is(err, services.ErrInvalidAmount) || errors.Is(err, services.ErrInvalidPaymentReference) {
		return nil, err
	}

	logger.Log.Errorw("payment credit not applied",
		"reference", credit.Reference,
		"userID", credit.UserID,
		"tokens", credit.Tokens,
		"attempts", credit.Attempts,
		"error", err,
	)
	if dlErr := c.deadLetterCredit(context.WithoutCancel(ctx), credit, err); dlErr != nil {
		return nil, dlErr
	}
	result.Outcome = OutcomeDeadLettered
	return result, nil
}

func (c *Confirmer) deadLetterCredit(ctx context.Context, credit models.PaymentCredit, cause error) error {
	credit.Attempts++
	credit.LastError = cause.Error()
	credit.FailedAt = c.now()

	if credit.Attempts > c.maxRedeliveries {
		logger.Log.Errorw("payment credit dropped after redeliveries",
			"reference", credit.Reference,
			"userID", credit.UserID,
			"tokens", credit.Tokens,
			"attempts", credit.Attempts,
		)
		return fmt.Errorf("%w: %s", ErrRedeliveryExhausted, credit.Reference)
	}
	if c.deadLetter == nil {
		return fmt.Errorf("no retry topic configured: %w", cause)
	}

	data, err := json.Marshal(credit)
	if err != nil {
		return err
	}
	if err := c.deadLetter.WriteMessages(ctx, kafka.Message{Key: []byte(credit.Reference), Value: data}); err != nil {
		logger.Log.Errorw("failed to publish payment credit to retry topic", "reference", credit.Reference, "error", err)
		return err
	}

	metrics.RecordDeadLetter()
	logger.Log.Infow("payment credit queued for redelivery", "reference", credit.Reference, "attempts", credit.Attempts)
	return nil
}
