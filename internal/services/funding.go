package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-ledger/internal/logger"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
)

// FundingDescription labels the ledger entry of a token purchase.
const FundingDescription = "Token Purchase"

// FundFromPayment credits tokens bought with a verified payment. A reference is
// credited at most once; later deliveries return ErrDuplicatePaymentReference.
func (s *WalletService) FundFromPayment(ctx context.Context, userID uuid.UUID, tokens int64, reference string) (*models.Wallet, error) {
	if tokens <= 0 {
		return nil, ErrInvalidAmount
	}
	if reference == "" {
		return nil, ErrInvalidPaymentReference
	}

	if s.paymentCache != nil {
		processed, err := s.paymentCache.IsProcessed(ctx, reference)
		if err != nil {
			logger.Log.Warnw("payment reference cache unavailable", "reference", reference, "error", err)
		}
		if processed {
			return nil, ErrDuplicatePaymentReference
		}
	}

	var (
		wallet *models.Wallet
		txn    *models.Transaction
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		err := s.payments.Record(ctx, reference, userID, tokens)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrDuplicatePaymentReference
		}
		if err != nil {
			logger.Log.Errorw("failed to record payment", "reference", reference, "userID", userID, "error", err)
			return storeError(err)
		}

		wallet, txn, err = s.applyCredit(ctx, userID, tokens, FundingDescription)
		return err
	})
	if err != nil && !errors.Is(err, ErrDuplicatePaymentReference) {
		return nil, err
	}

	s.markPaymentProcessed(ctx, reference)
	if err != nil {
		return nil, err
	}

	s.publishChange(ctx, wallet, txn)
	logger.Log.Infow("wallet funded", "userID", userID, "tokens", tokens, "reference", reference, "balance", wallet.Balance)
	return wallet, nil
}

func (s *WalletService) markPaymentProcessed(ctx context.Context, reference string) {
	if s.paymentCache == nil {
		return
	}
	if err := s.paymentCache.MarkProcessed(ctx, reference); err != nil {
		logger.Log.Warnw("failed to cache payment reference", "reference", reference, "error", err)
	}
}
