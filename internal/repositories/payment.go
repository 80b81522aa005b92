package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// PaymentRepository stores processed payment references.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Record claims a payment reference. A reference that was already recorded
// returns sql.ErrNoRows.
func (r *PaymentRepository) Record(ctx context.Context, reference string, userID uuid.UUID, tokens int64) error {
	const query = `
		INSERT INTO payments (reference, user_id, tokens, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (reference) DO NOTHING
		RETURNING reference
	`

	var claimed string
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &claimed, query, reference, userID, tokens)
	logQuery(query, []any{reference, userID, tokens}, claimed, err)
	return err
}
