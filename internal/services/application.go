package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-ledger/internal/logger"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
)

// ApplicationDescription labels the ledger entry of a job application.
const ApplicationDescription = "Job Application"

// ApplicationResult is the outcome of a paid job application.
type ApplicationResult struct {
	Application *models.JobApplication `json:"application"`
	Wallet      *models.Wallet         `json:"wallet"`
	Cost        int64                  `json:"cost"`
}

// SpendForApplication charges the configured application cost and records the
// application in one transaction. An *InsufficientBalanceError carries the
// figures for a funding prompt.
func (s *WalletService) SpendForApplication(ctx context.Context, userID, jobID uuid.UUID) (*ApplicationResult, error) {
	cost := s.pricing.ApplicationCost

	var (
		result = &ApplicationResult{Cost: cost}
		txn    *models.Transaction
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.applications.JobExists(ctx, jobID)
		if err != nil {
			logger.Log.Errorw("failed to check job", "jobID", jobID, "error", err)
			return storeError(err)
		}
		if !exists {
			return ErrEntityNotFound
		}

		result.Wallet, txn, err = s.applyDebit(ctx, userID, cost, ApplicationDescription)
		if err != nil {
			return err
		}

		result.Application, err = s.applications.Create(ctx, jobID, userID, cost)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAlreadyApplied
		}
		if err != nil {
			logger.Log.Errorw("failed to record application", "jobID", jobID, "userID", userID, "error", err)
			return storeError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishChange(ctx, result.Wallet, txn)
	logger.Log.Infow("job application paid", "jobID", jobID, "userID", userID, "cost", cost, "balance", result.Wallet.Balance)
	return result, nil
}
