package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var entityCols = []string{"id", "owner_id", "promotion_tag", "promotion_expires_at"}

func TestPromotionRepository_Get_Job(t *testing.T) {
	db, mock := newMockDB(t)
	jobID, ownerID := uuid.New(), uuid.New()
	expires := time.Now().Add(time.Hour).UTC()

	mock.ExpectQuery(`SELECT id, owner_id, promotion_tag, promotion_expires_at FROM jobs WHERE id = \$1`).
		WithArgs(jobID).
		WillReturnRows(sqlmock.NewRows(entityCols).AddRow(jobID.String(), ownerID.String(), "gold", expires))

	entity, err := NewPromotionRepository(db).Get(context.Background(), models.EntityJob, jobID)
	require.NoError(t, err)
	assert.Equal(t, models.EntityJob, entity.Kind)
	assert.Equal(t, ownerID, entity.OwnerID)
	assert.Equal(t, models.PromotionGold, entity.PromotionTag)
	require.NotNil(t, entity.PromotionExpiresAt)
	assert.True(t, expires.Equal(*entity.PromotionExpiresAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromotionRepository_GetForUpdate_Profile(t *testing.T) {
	db, mock := newMockDB(t)
	userID := uuid.New()

	mock.ExpectQuery(`FROM profiles WHERE user_id = \$1 FOR UPDATE`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(entityCols).AddRow(userID.String(), userID.String(), "none", nil))

	entity, err := NewPromotionRepository(db).GetForUpdate(context.Background(), models.EntityProfile, userID)
	require.NoError(t, err)
	assert.Equal(t, models.EntityProfile, entity.Kind)
	assert.Equal(t, models.PromotionNone, entity.PromotionTag)
	assert.Nil(t, entity.PromotionExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromotionRepository_Get_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	jobID := uuid.New()

	mock.ExpectQuery(`FROM jobs`).WithArgs(jobID).WillReturnRows(sqlmock.NewRows(entityCols))

	entity, err := NewPromotionRepository(db).Get(context.Background(), models.EntityJob, jobID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Nil(t, entity)
}

func TestPromotionRepository_UnsupportedKind(t *testing.T) {
	db, _ := newMockDB(t)

	_, err := NewPromotionRepository(db).Get(context.Background(), "portfolio", uuid.New())
	assert.Error(t, err)

	_, err = NewPromotionRepository(db).SetPromotion(context.Background(), "portfolio", uuid.New(), models.PromotionGold, time.Now())
	assert.Error(t, err)
}

func TestPromotionRepository_SetPromotion(t *testing.T) {
	db, mock := newMockDB(t)
	jobID, ownerID := uuid.New(), uuid.New()
	expires := time.Now().Add(72 * time.Hour)

	mock.ExpectQuery(`UPDATE jobs SET promotion_tag = \$2, promotion_expires_at = \$3 WHERE id = \$1`).
		WithArgs(jobID, models.PromotionSilver, expires).
		WillReturnRows(sqlmock.NewRows(entityCols).AddRow(jobID.String(), ownerID.String(), "silver", expires))

	entity, err := NewPromotionRepository(db).SetPromotion(context.Background(), models.EntityJob, jobID, models.PromotionSilver, expires)
	require.NoError(t, err)
	assert.Equal(t, models.PromotionSilver, entity.PromotionTag)
	assert.Equal(t, models.EntityJob, entity.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}
