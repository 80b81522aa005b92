package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestPaymentReferenceCache_IsProcessed(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewPaymentReferenceCacheRepository(client, time.Hour)
	ctx := context.Background()

	mock.ExpectExists("payment_reference:ref-1").SetVal(1)
	processed, err := repo.IsProcessed(ctx, "ref-1")
	assert.NoError(t, err)
	assert.True(t, processed)

	mock.ExpectExists("payment_reference:ref-2").SetVal(0)
	processed, err = repo.IsProcessed(ctx, "ref-2")
	assert.NoError(t, err)
	assert.False(t, processed)

	mock.ExpectExists("payment_reference:ref-3").SetErr(errors.New("connection refused"))
	processed, err = repo.IsProcessed(ctx, "ref-3")
	assert.Error(t, err)
	assert.False(t, processed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentReferenceCache_MarkProcessed(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewPaymentReferenceCacheRepository(client, 24*time.Hour)

	mock.ExpectSet("payment_reference:ref-1", "1", 24*time.Hour).SetVal("OK")
	assert.NoError(t, repo.MarkProcessed(context.Background(), "ref-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
