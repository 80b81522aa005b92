package payments

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
	"github.com/sbilibin2017/gw-token-ledger/internal/pricing"
	"github.com/sbilibin2017/gw-token-ledger/internal/services"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var failedAt = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

func newTestConfirmer(t *testing.T) (*Confirmer, *MockFunder, *MockDeadLetterWriter) {
	ctrl := gomock.NewController(t)
	funder := NewMockFunder(ctrl)
	dlq := NewMockDeadLetterWriter(ctrl)

	c := NewConfirmer(funder, dlq, pricing.Default())
	c.newBackOff = func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 2)
	}
	c.now = func() time.Time { return failedAt }
	return c, funder, dlq
}

func successEvent(userID, reference string, amount int64) models.PaymentEvent {
	return models.PaymentEvent{
		Event: models.PaymentEventChargeSuccess,
		Data: models.PaymentEventData{
			Reference: reference,
			Amount:    amount,
			Currency:  "NGN",
			Metadata:  models.PaymentMetadata{UserID: userID},
		},
	}
}

func TestConfirmer_Confirm_Credits(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	c, funder, _ := newTestConfirmer(t)

	// 1000.00 at 250 per token
	funder.EXPECT().FundFromPayment(ctx, userID, int64(4), "ref-1").
		Return(&models.Wallet{UserID: userID, Balance: 4}, nil)

	result, err := c.Confirm(ctx, successEvent(userID.String(), "ref-1", 100000))
	require.NoError(t, err)
	assert.Equal(t, OutcomeCredited, result.Outcome)
	assert.True(t, result.LedgerApplied)
	assert.Equal(t, int64(4), result.Tokens)
	assert.Equal(t, int64(4), result.Wallet.Balance)
}

func TestConfirmer_Confirm_Duplicate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	c, funder, _ := newTestConfirmer(t)

	funder.EXPECT().FundFromPayment(ctx, userID, int64(4), "ref-1").
		Return(nil, services.ErrDuplicatePaymentReference).Times(1)

	result, err := c.Confirm(ctx, successEvent(userID.String(), "ref-1", 100000))
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, result.Outcome)
	assert.True(t, result.LedgerApplied)
}

func TestConfirmer_Confirm_Ignored(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestConfirmer(t)

	event := successEvent(uuid.NewString(), "ref-1", 100000)
	event.Event = "charge.failed"
	result, err := c.Confirm(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, result.Outcome)

	// below the price of one token
	result, err = c.Confirm(ctx, successEvent(uuid.NewString(), "ref-2", 24999))
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, result.Outcome)
	assert.False(t, result.LedgerApplied)
}

func TestConfirmer_Confirm_Malformed(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestConfirmer(t)

	_, err := c.Confirm(ctx, successEvent("not-a-uuid", "ref-1", 100000))
	assert.ErrorIs(t, err, ErrMalformedEvent)

	_, err = c.Confirm(ctx, successEvent(uuid.NewString(), "", 100000))
	assert.ErrorIs(t, err, ErrMalformedEvent)
}

func TestConfirmer_Apply_RetriesThenSucceeds(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	c, funder, _ := newTestConfirmer(t)

	gomock.InOrder(
		funder.EXPECT().FundFromPayment(ctx, userID, int64(4), "ref-1").Return(nil, services.ErrStoreUnavailable),
		funder.EXPECT().FundFromPayment(ctx, userID, int64(4), "ref-1").Return(&models.Wallet{UserID: userID, Balance: 4}, nil),
	)

	result, err := c.Apply(ctx, models.PaymentCredit{UserID: userID, Tokens: 4, Reference: "ref-1"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCredited, result.Outcome)
	assert.True(t, result.LedgerApplied)
}

func TestConfirmer_Apply_DeadLetters(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	c, funder, dlq := newTestConfirmer(t)

	funder.EXPECT().FundFromPayment(ctx, userID, int64(4), "ref-1").Return(nil, services.ErrStoreUnavailable).Times(3)
	dlq.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
			require.Len(t, msgs, 1)
			assert.Equal(t, []byte("ref-1"), msgs[0].Key)

			var credit models.PaymentCredit
			require.NoError(t, json.Unmarshal(msgs[0].Value, &credit))
			assert.Equal(t, userID, credit.UserID)
			assert.Equal(t, int64(4), credit.Tokens)
			assert.Equal(t, 1, credit.Attempts)
			assert.Equal(t, failedAt, credit.FailedAt)
			assert.Contains(t, credit.LastError, "store unavailable")
			return nil
		})

	result, err := c.Apply(ctx, models.PaymentCredit{UserID: userID, Tokens: 4, Reference: "ref-1"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeadLettered, result.Outcome)
	assert.False(t, result.LedgerApplied)
}

func TestConfirmer_Apply_PermanentError(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	c, funder, _ := newTestConfirmer(t)

	funder.EXPECT().FundFromPayment(ctx, userID, int64(0), "ref-1").Return(nil, services.ErrInvalidAmount).Times(1)

	_, err := c.Apply(ctx, models.PaymentCredit{UserID: userID, Tokens: 0, Reference: "ref-1"})
	assert.ErrorIs(t, err, services.ErrInvalidAmount)
}

func TestConfirmer_Apply_RedeliveryExhausted(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	c, funder, _ := newTestConfirmer(t)

	funder.EXPECT().FundFromPayment(ctx, userID, int64(4), "ref-1").Return(nil, services.ErrStoreUnavailable).Times(3)
	// no dead-letter write expected

	_, err := c.Apply(ctx, models.PaymentCredit{UserID: userID, Tokens: 4, Reference: "ref-1", Attempts: DefaultMaxRedeliveries})
	assert.ErrorIs(t, err, ErrRedeliveryExhausted)
}

func TestConfirmer_Apply_DeadLetterWriteFails(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	c, funder, dlq := newTestConfirmer(t)

	funder.EXPECT().FundFromPayment(ctx, userID, int64(4), "ref-1").Return(nil, services.ErrStoreUnavailable).Times(3)
	dlq.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	_, err := c.Apply(ctx, models.PaymentCredit{UserID: userID, Tokens: 4, Reference: "ref-1"})
	assert.EqualError(t, err, "broker down")
}
