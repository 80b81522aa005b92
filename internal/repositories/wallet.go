package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
)

// WalletRepository persists wallets and their append-only transaction log.
type WalletRepository struct {
	db *sqlx.DB
	tx *Transactor
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(db *sqlx.DB) *WalletRepository {
	return &WalletRepository{db: db, tx: NewTransactor(db)}
}

// GetOrCreate returns the user's wallet, creating an empty one on first access.
func (r *WalletRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	ex := executor(ctx, r.db)
	if err := r.ensure(ctx, ex, userID); err != nil {
		return nil, err
	}

	const query = `
		SELECT user_id, balance, last_action, version, created_at, updated_at
		FROM wallets
		WHERE user_id = $1
	`

	var wallet models.Wallet
	err := sqlx.GetContext(ctx, ex, &wallet, query, userID)
	logQuery(query, []any{userID}, wallet.Balance, err)
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Credit adds amount to the balance and appends a tokens_in transaction, atomically.
func (r *WalletRepository) Credit(ctx context.Context, userID uuid.UUID, amount int64, description string) (*models.Wallet, *models.Transaction, error) {
	const query = `
		UPDATE wallets
		SET balance = balance + $2, last_action = $3, version = version + 1, updated_at = NOW()
		WHERE user_id = $1
		RETURNING user_id, balance, last_action, version, created_at, updated_at
	`

	var (
		wallet models.Wallet
		txn    models.Transaction
	)
	err := r.tx.WithinTx(ctx, func(ctx context.Context) error {
		ex := executor(ctx, r.db)
		if err := r.ensure(ctx, ex, userID); err != nil {
			return err
		}

		err := sqlx.GetContext(ctx, ex, &wallet, query, userID, amount, description)
		logQuery(query, []any{userID, amount, description}, wallet.Balance, err)
		if err != nil {
			return err
		}

		return r.appendTransaction(ctx, ex, &txn, userID, description, amount, 0)
	})
	if err != nil {
		return nil, nil, err
	}
	return &wallet, &txn, nil
}

// Debit subtracts amount from the balance in a single conditional update and appends
// a tokens_out transaction. When the balance does not cover amount nothing is written
// and sql.ErrNoRows is returned.
func (r *WalletRepository) Debit(ctx context.Context, userID uuid.UUID, amount int64, description string) (*models.Wallet, *models.Transaction, error) {
	const query = `
		UPDATE wallets
		SET balance = balance - $2, last_action = $3, version = version + 1, updated_at = NOW()
		WHERE user_id = $1 AND balance >= $2
		RETURNING user_id, balance, last_action, version, created_at, updated_at
	`

	var (
		wallet models.Wallet
		txn    models.Transaction
	)
	err := r.tx.WithinTx(ctx, func(ctx context.Context) error {
		ex := executor(ctx, r.db)

		err := sqlx.GetContext(ctx, ex, &wallet, query, userID, amount, description)
		logQuery(query, []any{userID, amount, description}, wallet.Balance, err)
		if err != nil {
			return err
		}

		return r.appendTransaction(ctx, ex, &txn, userID, description, 0, amount)
	})
	if err != nil {
		return nil, nil, err
	}
	return &wallet, &txn, nil
}

// ListTransactions returns the user's transactions, newest first.
func (r *WalletRepository) ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, error) {
	const query = `
		SELECT id, user_id, created_at, description, tokens_in, tokens_out
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	txns := []models.Transaction{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &txns, query, userID, limit, offset)
	logQuery(query, []any{userID, limit, offset}, len(txns), err)
	if err != nil {
		return nil, err
	}
	return txns, nil
}

// CountTransactions returns how many ledger entries the user has.
func (r *WalletRepository) CountTransactions(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `SELECT COUNT(*) FROM transactions WHERE user_id = $1`

	var count int64
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &count, query, userID)
	logQuery(query, []any{userID}, count, err)
	return count, err
}

// ensure creates an empty wallet row if the user has none.
func (r *WalletRepository) ensure(ctx context.Context, ex sqlx.ExtContext, userID uuid.UUID) error {
	const query = `
		INSERT INTO wallets (user_id, balance, last_action, version, created_at, updated_at)
		VALUES ($1, 0, 'created', 0, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`

	res, err := ex.ExecContext(ctx, query, userID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, []any{userID}, rowsAffected, err)
	return err
}

func (r *WalletRepository) appendTransaction(
	ctx context.Context,
	ex sqlx.ExtContext,
	txn *models.Transaction,
	userID uuid.UUID,
	description string,
	tokensIn, tokensOut int64,
) error {
	const query = `
		INSERT INTO transactions (id, user_id, created_at, description, tokens_in, tokens_out)
		VALUES ($1, $2, clock_timestamp(), $3, $4, $5)
		RETURNING id, user_id, created_at, description, tokens_in, tokens_out
	`

	args := []any{uuid.New(), userID, description, tokensIn, tokensOut}
	err := sqlx.GetContext(ctx, ex, txn, query, args...)
	logQuery(query, args, txn.ID, err)
	return err
}
