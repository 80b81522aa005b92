package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatementService_Export(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	ctrl := gomock.NewController(t)

	lister := NewMockTransactionLister(ctrl)
	storage := NewMockObjectStorage(ctrl)
	svc := NewStatementService(lister, storage, "statements")
	svc.now = func() time.Time { return fixedNow }

	txns := []models.Transaction{
		{ID: uuid.New(), UserID: userID, CreatedAt: fixedNow, Description: "Job Application", TokensOut: 3},
		{ID: uuid.New(), UserID: userID, CreatedAt: fixedNow.Add(-time.Hour), Description: "Token Purchase", TokensIn: 10},
	}
	lister.EXPECT().ListTransactions(ctx, userID, statementPageSize, 0).Return(txns, nil)

	var uploaded []byte
	storage.EXPECT().Upload(ctx, "statements", gomock.Any(), gomock.Any(), "text/csv").
		DoAndReturn(func(_ context.Context, bucket, path string, data []byte, _ string) (string, error) {
			assert.Contains(t, path, fmt.Sprintf("statements/%s/", userID))
			uploaded = data
			return "http://minio:9000/" + bucket + "/" + path, nil
		})

	statement, err := svc.Export(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, statement.Transactions)
	assert.Contains(t, statement.URL, statement.ID.String())
	assert.Equal(t, fixedNow, statement.CreatedAt)

	records, err := csv.NewReader(bytes.NewReader(uploaded)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"id", "created_at", "description", "tokens_in", "tokens_out"}, records[0])
	assert.Equal(t, "Job Application", records[1][2])
	assert.Equal(t, "3", records[1][4])
	assert.Equal(t, "10", records[2][3])
}

func TestStatementService_Export_Pages(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	ctrl := gomock.NewController(t)

	lister := NewMockTransactionLister(ctrl)
	storage := NewMockObjectStorage(ctrl)
	svc := NewStatementService(lister, storage, "statements")

	full := make([]models.Transaction, statementPageSize)
	gomock.InOrder(
		lister.EXPECT().ListTransactions(ctx, userID, statementPageSize, 0).Return(full, nil),
		lister.EXPECT().ListTransactions(ctx, userID, statementPageSize, statementPageSize).Return(full[:1], nil),
	)
	storage.EXPECT().Upload(ctx, "statements", gomock.Any(), gomock.Any(), "text/csv").Return("url", nil)

	statement, err := svc.Export(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, statementPageSize+1, statement.Transactions)
}

func TestStatementService_Export_UploadError(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	ctrl := gomock.NewController(t)

	lister := NewMockTransactionLister(ctrl)
	storage := NewMockObjectStorage(ctrl)
	svc := NewStatementService(lister, storage, "statements")

	lister.EXPECT().ListTransactions(ctx, userID, statementPageSize, 0).Return(nil, nil)
	storage.EXPECT().Upload(ctx, "statements", gomock.Any(), gomock.Any(), "text/csv").Return("", errors.New("access denied"))

	_, err := svc.Export(ctx, userID)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestStatementService_Delete(t *testing.T) {
	ctx := context.Background()
	userID, statementID := uuid.New(), uuid.New()
	path := statementPath(userID, statementID)
	ctrl := gomock.NewController(t)

	storage := NewMockObjectStorage(ctrl)
	svc := NewStatementService(NewMockTransactionLister(ctrl), storage, "statements")

	storage.EXPECT().Exists(ctx, "statements", path).Return(true, nil)
	storage.EXPECT().Remove(ctx, "statements", path).Return(nil)
	assert.NoError(t, svc.Delete(ctx, userID, statementID))

	storage.EXPECT().Exists(ctx, "statements", path).Return(false, nil)
	assert.ErrorIs(t, svc.Delete(ctx, userID, statementID), ErrStatementNotFound)

	storage.EXPECT().Exists(ctx, "statements", path).Return(false, errors.New("timeout"))
	assert.ErrorIs(t, svc.Delete(ctx, userID, statementID), ErrStoreUnavailable)
}
