package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
)

// entityStatements holds the per-table SQL of a promotable entity kind.
type entityStatements struct {
	get       string
	getLocked string
	update    string
}

var promotionStatements = map[models.EntityKind]entityStatements{
	models.EntityJob: {
		get: `
			SELECT id, owner_id, promotion_tag, promotion_expires_at
			FROM jobs
			WHERE id = $1
		`,
		getLocked: `
			SELECT id, owner_id, promotion_tag, promotion_expires_at
			FROM jobs
			WHERE id = $1
			FOR UPDATE
		`,
		update: `
			UPDATE jobs
			SET promotion_tag = $2, promotion_expires_at = $3
			WHERE id = $1
			RETURNING id, owner_id, promotion_tag, promotion_expires_at
		`,
	},
	models.EntityProfile: {
		get: `
			SELECT user_id AS id, user_id AS owner_id, promotion_tag, promotion_expires_at
			FROM profiles
			WHERE user_id = $1
		`,
		getLocked: `
			SELECT user_id AS id, user_id AS owner_id, promotion_tag, promotion_expires_at
			FROM profiles
			WHERE user_id = $1
			FOR UPDATE
		`,
		update: `
			UPDATE profiles
			SET promotion_tag = $2, promotion_expires_at = $3
			WHERE user_id = $1
			RETURNING user_id AS id, user_id AS owner_id, promotion_tag, promotion_expires_at
		`,
	},
}

// PromotionRepository reads and writes the promotion columns of jobs and profiles.
type PromotionRepository struct {
	db *sqlx.DB
}

// NewPromotionRepository creates a new PromotionRepository.
func NewPromotionRepository(db *sqlx.DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

// Get returns the promotion state of an entity. sql.ErrNoRows if it does not exist.
func (r *PromotionRepository) Get(ctx context.Context, kind models.EntityKind, id uuid.UUID) (*models.PromotableEntity, error) {
	stmts, err := statementsFor(kind)
	if err != nil {
		return nil, err
	}
	return r.fetch(ctx, kind, stmts.get, id)
}

// GetForUpdate is Get with a row lock held until the surrounding transaction ends.
func (r *PromotionRepository) GetForUpdate(ctx context.Context, kind models.EntityKind, id uuid.UUID) (*models.PromotableEntity, error) {
	stmts, err := statementsFor(kind)
	if err != nil {
		return nil, err
	}
	return r.fetch(ctx, kind, stmts.getLocked, id)
}

// SetPromotion stores a new tag and expiry on the entity.
func (r *PromotionRepository) SetPromotion(
	ctx context.Context,
	kind models.EntityKind,
	id uuid.UUID,
	tag models.PromotionTag,
	expiresAt time.Time,
) (*models.PromotableEntity, error) {
	stmts, err := statementsFor(kind)
	if err != nil {
		return nil, err
	}

	var entity models.PromotableEntity
	err = sqlx.GetContext(ctx, executor(ctx, r.db), &entity, stmts.update, id, tag, expiresAt)
	logQuery(stmts.update, []any{id, tag, expiresAt}, entity.PromotionTag, err)
	if err != nil {
		return nil, err
	}
	entity.Kind = kind
	return &entity, nil
}

func (r *PromotionRepository) fetch(ctx context.Context, kind models.EntityKind, query string, id uuid.UUID) (*models.PromotableEntity, error) {
	var entity models.PromotableEntity
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &entity, query, id)
	logQuery(query, []any{id}, entity.PromotionTag, err)
	if err != nil {
		return nil, err
	}
	entity.Kind = kind
	return &entity, nil
}

func statementsFor(kind models.EntityKind) (entityStatements, error) {
	stmts, ok := promotionStatements[kind]
	if !ok {
		return entityStatements{}, fmt.Errorf("unsupported entity kind %q", kind)
	}
	return stmts, nil
}
