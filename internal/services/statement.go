package services

//go:generate mockgen -source=statement.go -destination=statement_mock.go -package=services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-ledger/internal/logger"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
)

const statementPageSize = 500

// TransactionLister pages through a user's transactions, newest first.
type TransactionLister interface {
	ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, error)
}

// ObjectStorage is the file storage used for statements.
type ObjectStorage interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, bucket, path string) error
	Exists(ctx context.Context, bucket, path string) (bool, error)
}

// Statement is an exported CSV copy of the transaction history.
type Statement struct {
	ID           uuid.UUID `json:"id"`
	URL          string    `json:"url"`
	Transactions int       `json:"transactions"`
	CreatedAt    time.Time `json:"createdAt"`
}

// StatementService exports transaction history to object storage.
type StatementService struct {
	transactions TransactionLister
	storage      ObjectStorage
	bucket       string
	now          func() time.Time
}

// NewStatementService creates a new StatementService writing to bucket.
func NewStatementService(transactions TransactionLister, storage ObjectStorage, bucket string) *StatementService {
	return &StatementService{
		transactions: transactions,
		storage:      storage,
		bucket:       bucket,
		now:          time.Now,
	}
}

func statementPath(userID, statementID uuid.UUID) string {
	return fmt.Sprintf("statements/%s/%s.csv", userID, statementID)
}

// Export renders the full history as CSV, uploads it and returns its public URL.
func (s *StatementService) Export(ctx context.Context, userID uuid.UUID) (*Statement, error) {
	var txns []models.Transaction
	for offset := 0; ; offset += statementPageSize {
		page, err := s.transactions.ListTransactions(ctx, userID, statementPageSize, offset)
		if err != nil {
			logger.Log.Errorw("failed to read transactions for statement", "userID", userID, "error", err)
			return nil, storeError(err)
		}
		txns = append(txns, page...)
		if len(page) < statementPageSize {
			break
		}
	}

	data, err := renderStatement(txns)
	if err != nil {
		return nil, err
	}

	statement := &Statement{
		ID:           uuid.New(),
		Transactions: len(txns),
		CreatedAt:    s.now(),
	}
	statement.URL, err = s.storage.Upload(ctx, s.bucket, statementPath(userID, statement.ID), data, "text/csv")
	if err != nil {
		logger.Log.Errorw("failed to upload statement", "userID", userID, "statementID", statement.ID, "error", err)
		return nil, storeError(err)
	}

	logger.Log.Infow("statement exported", "userID", userID, "statementID", statement.ID, "transactions", len(txns))
	return statement, nil
}

// Delete removes a statement the user exported earlier.
func (s *StatementService) Delete(ctx context.Context, userID, statementID uuid.UUID) error {
	path := statementPath(userID, statementID)

	exists, err := s.storage.Exists(ctx, s.bucket, path)
	if err != nil {
		logger.Log.Errorw("failed to look up statement", "userID", userID, "statementID", statementID, "error", err)
		return storeError(err)
	}
	if !exists {
		return ErrStatementNotFound
	}

	if err := s.storage.Remove(ctx, s.bucket, path); err != nil {
		logger.Log.Errorw("failed to remove statement", "userID", userID, "statementID", statementID, "error", err)
		return storeError(err)
	}
	return nil
}

func renderStatement(txns []models.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "created_at", "description", "tokens_in", "tokens_out"}); err != nil {
		return nil, err
	}
	for _, t := range txns {
		record := []string{
			t.ID.String(),
			t.CreatedAt.UTC().Format(time.RFC3339),
			t.Description,
			strconv.FormatInt(t.TokensIn, 10),
			strconv.FormatInt(t.TokensOut, 10),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
