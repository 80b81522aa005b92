package services

//go:generate mockgen -source=wallet.go -destination=wallet_mock.go -package=services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-ledger/internal/entitlement"
	"github.com/sbilibin2017/gw-token-ledger/internal/logger"
	"github.com/sbilibin2017/gw-token-ledger/internal/metrics"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
	"github.com/sbilibin2017/gw-token-ledger/internal/pricing"
	"github.com/segmentio/kafka-go"
)

// Transaction history page bounds
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// WalletStore persists wallets and their transaction log.
type WalletStore interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	Credit(ctx context.Context, userID uuid.UUID, amount int64, description string) (*models.Wallet, *models.Transaction, error)
	Debit(ctx context.Context, userID uuid.UUID, amount int64, description string) (*models.Wallet, *models.Transaction, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, error)
	CountTransactions(ctx context.Context, userID uuid.UUID) (int64, error)
}

// Transactor runs fn inside one database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// PromotionStore reads and writes the promotion state of jobs and profiles.
type PromotionStore interface {
	Get(ctx context.Context, kind models.EntityKind, id uuid.UUID) (*models.PromotableEntity, error)
	GetForUpdate(ctx context.Context, kind models.EntityKind, id uuid.UUID) (*models.PromotableEntity, error)
	SetPromotion(ctx context.Context, kind models.EntityKind, id uuid.UUID, tag models.PromotionTag, expiresAt time.Time) (*models.PromotableEntity, error)
}

// ApplicationStore records paid job applications.
type ApplicationStore interface {
	JobExists(ctx context.Context, jobID uuid.UUID) (bool, error)
	Create(ctx context.Context, jobID, userID uuid.UUID, tokensSpent int64) (*models.JobApplication, error)
}

// PaymentStore claims payment references.
type PaymentStore interface {
	Record(ctx context.Context, reference string, userID uuid.UUID, tokens int64) error
}

// PaymentReferenceCache answers replayed payment references without a database round trip.
type PaymentReferenceCache interface {
	IsProcessed(ctx context.Context, reference string) (bool, error)
	MarkProcessed(ctx context.Context, reference string) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// WalletService runs every balance mutation together with its ledger entry and
// publishes the committed changes to the ledger change feed.
type WalletService struct {
	wallets      WalletStore
	tx           Transactor
	promotions   PromotionStore
	applications ApplicationStore
	payments     PaymentStore
	paymentCache PaymentReferenceCache
	kafkaWriter  KafkaWriter
	pricing      *pricing.Table
	now          func() time.Time
}

// NewWalletService creates a new WalletService. paymentCache and kafkaWriter may be nil.
func NewWalletService(
	wallets WalletStore,
	tx Transactor,
	promotions PromotionStore,
	applications ApplicationStore,
	payments PaymentStore,
	paymentCache PaymentReferenceCache,
	kafkaWriter KafkaWriter,
	table *pricing.Table,
) *WalletService {
	if table == nil {
		table = pricing.Default()
	}
	return &WalletService{
		wallets:      wallets,
		tx:           tx,
		promotions:   promotions,
		applications: applications,
		payments:     payments,
		paymentCache: paymentCache,
		kafkaWriter:  kafkaWriter,
		pricing:      table,
		now:          time.Now,
	}
}

// Pricing returns the price list the service charges from.
func (s *WalletService) Pricing() *pricing.Table {
	return s.pricing
}

// GetOrCreateWallet returns the user's wallet, creating an empty one on first access.
func (s *WalletService) GetOrCreateWallet(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	wallet, err := s.wallets.GetOrCreate(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get wallet", "userID", userID, "error", err)
		return nil, storeError(err)
	}
	return wallet, nil
}

// Credit adds amount to the user's balance and appends a tokens_in entry.
func (s *WalletService) Credit(ctx context.Context, userID uuid.UUID, amount int64, description string) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var (
		wallet *models.Wallet
		txn    *models.Transaction
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		wallet, txn, err = s.applyCredit(ctx, userID, amount, description)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishChange(ctx, wallet, txn)
	return wallet, nil
}

// Debit subtracts amount from the user's balance and appends a tokens_out entry.
// The balance is checked before anything is written.
func (s *WalletService) Debit(ctx context.Context, userID uuid.UUID, amount int64, description string) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var (
		wallet *models.Wallet
		txn    *models.Transaction
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		wallet, txn, err = s.applyDebit(ctx, userID, amount, description)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishChange(ctx, wallet, txn)
	return wallet, nil
}

// TransactionPage is one page of the transaction history.
type TransactionPage struct {
	Transactions []models.Transaction `json:"transactions"`
	Total        int64                `json:"total"`
	Limit        int                  `json:"limit"`
	Offset       int                  `json:"offset"`
}

// ListTransactions returns the user's transactions, newest first.
func (s *WalletService) ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) (*TransactionPage, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	txns, err := s.wallets.ListTransactions(ctx, userID, limit, offset)
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "userID", userID, "error", err)
		return nil, storeError(err)
	}

	total, err := s.wallets.CountTransactions(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to count transactions", "userID", userID, "error", err)
		return nil, storeError(err)
	}

	return &TransactionPage{Transactions: txns, Total: total, Limit: limit, Offset: offset}, nil
}

// applyCredit credits inside the caller's transaction.
func (s *WalletService) applyCredit(ctx context.Context, userID uuid.UUID, amount int64, description string) (*models.Wallet, *models.Transaction, error) {
	wallet, txn, err := s.wallets.Credit(ctx, userID, amount, description)
	if err != nil {
		logger.Log.Errorw("failed to credit wallet", "userID", userID, "amount", amount, "error", err)
		metrics.RecordLedgerOperation("credit", "error")
		return nil, nil, storeError(err)
	}

	metrics.RecordLedgerOperation("credit", "ok")
	metrics.RecordTokens("in", amount)
	return wallet, txn, nil
}

// applyDebit debits inside the caller's transaction. The pre-check gives a
// descriptive error; the conditional update in the store is what guarantees
// the balance never goes negative under concurrency.
func (s *WalletService) applyDebit(ctx context.Context, userID uuid.UUID, amount int64, description string) (*models.Wallet, *models.Transaction, error) {
	current, err := s.wallets.GetOrCreate(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to read wallet before debit", "userID", userID, "error", err)
		return nil, nil, storeError(err)
	}
	if !entitlement.CanAfford(current.Balance, amount) {
		metrics.RecordLedgerOperation("debit", "insufficient_balance")
		return nil, nil, &InsufficientBalanceError{Balance: current.Balance, Cost: amount}
	}

	wallet, txn, err := s.wallets.Debit(ctx, userID, amount, description)
	if errors.Is(err, sql.ErrNoRows) {
		// another debit committed after the pre-check
		latest, rerr := s.wallets.GetOrCreate(ctx, userID)
		if rerr != nil {
			logger.Log.Errorw("failed to reread wallet after lost debit", "userID", userID, "error", rerr)
			metrics.RecordLedgerOperation("debit", "error")
			return nil, nil, storeError(rerr)
		}
		if entitlement.CanAfford(latest.Balance, amount) {
			logger.Log.Errorw("conditional debit matched no row", "userID", userID, "amount", amount, "balance", latest.Balance)
			metrics.RecordLedgerOperation("debit", "error")
			return nil, nil, ErrStoreUnavailable
		}
		metrics.RecordLedgerOperation("debit", "insufficient_balance")
		return nil, nil, &InsufficientBalanceError{Balance: latest.Balance, Cost: amount}
	}
	if err != nil {
		logger.Log.Errorw("failed to debit wallet", "userID", userID, "amount", amount, "error", err)
		metrics.RecordLedgerOperation("debit", "error")
		return nil, nil, storeError(err)
	}

	metrics.RecordLedgerOperation("debit", "ok")
	metrics.RecordTokens("out", amount)
	return wallet, txn, nil
}
