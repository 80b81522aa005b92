package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletService_FundFromPayment(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, deps := newTestWalletService(t)

	gomock.InOrder(
		deps.cache.EXPECT().IsProcessed(ctx, "ref-1").Return(false, nil),
		deps.payments.EXPECT().Record(gomock.Any(), "ref-1", userID, int64(4)).Return(nil),
		deps.wallets.EXPECT().Credit(gomock.Any(), userID, int64(4), FundingDescription).
			Return(wallet(userID, 4, 1), txn(userID, 4, 0, FundingDescription), nil),
		deps.cache.EXPECT().MarkProcessed(ctx, "ref-1").Return(nil),
	)
	deps.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

	w, err := svc.FundFromPayment(ctx, userID, 4, "ref-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), w.Balance)
}

func TestWalletService_FundFromPayment_DuplicateCreditsOnce(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, deps := newTestWalletService(t)

	// first delivery
	deps.cache.EXPECT().IsProcessed(ctx, "ref-1").Return(false, nil)
	deps.payments.EXPECT().Record(gomock.Any(), "ref-1", userID, int64(4)).Return(nil)
	deps.wallets.EXPECT().Credit(gomock.Any(), userID, int64(4), FundingDescription).
		Return(wallet(userID, 4, 1), txn(userID, 4, 0, FundingDescription), nil).Times(1)
	deps.cache.EXPECT().MarkProcessed(ctx, "ref-1").Return(nil)
	deps.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.FundFromPayment(ctx, userID, 4, "ref-1")
	require.NoError(t, err)

	// replay answered by the cache
	deps.cache.EXPECT().IsProcessed(ctx, "ref-1").Return(true, nil)
	_, err = svc.FundFromPayment(ctx, userID, 4, "ref-1")
	assert.ErrorIs(t, err, ErrDuplicatePaymentReference)
}

func TestWalletService_FundFromPayment_DuplicateInStore(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, deps := newTestWalletService(t)

	// cache is down and the reference was already claimed in the database
	deps.cache.EXPECT().IsProcessed(ctx, "ref-1").Return(false, errors.New("redis down"))
	deps.payments.EXPECT().Record(gomock.Any(), "ref-1", userID, int64(4)).Return(sql.ErrNoRows)
	deps.cache.EXPECT().MarkProcessed(ctx, "ref-1").Return(errors.New("redis down"))

	_, err := svc.FundFromPayment(ctx, userID, 4, "ref-1")
	assert.ErrorIs(t, err, ErrDuplicatePaymentReference)
}

func TestWalletService_FundFromPayment_Validation(t *testing.T) {
	svc, _ := newTestWalletService(t)

	_, err := svc.FundFromPayment(context.Background(), uuid.New(), 0, "ref-1")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.FundFromPayment(context.Background(), uuid.New(), 4, "")
	assert.ErrorIs(t, err, ErrInvalidPaymentReference)
}

func TestWalletService_FundFromPayment_StoreError(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, deps := newTestWalletService(t)

	deps.cache.EXPECT().IsProcessed(ctx, "ref-1").Return(false, nil)
	deps.payments.EXPECT().Record(gomock.Any(), "ref-1", userID, int64(4)).Return(nil)
	deps.wallets.EXPECT().Credit(gomock.Any(), userID, int64(4), FundingDescription).Return(nil, nil, sql.ErrConnDone)

	_, err := svc.FundFromPayment(ctx, userID, 4, "ref-1")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
