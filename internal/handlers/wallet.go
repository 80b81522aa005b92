package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-ledger/internal/logger"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
	"github.com/sbilibin2017/gw-token-ledger/internal/services"
)

//go:generate mockgen -source=wallet.go -destination=wallet_mock.go -package=handlers

// WalletReader defines the interface that the service must implement.
type WalletReader interface {
	GetOrCreateWallet(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
}

// TransactionReader lists the ledger history of a user.
type TransactionReader interface {
	ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) (*services.TransactionPage, error)
}

// WalletResponse represents the caller's wallet
// swagger:model WalletResponse
type WalletResponse struct {
	// Balance in tokens
	// default: 12
	Balance int64 `json:"balance"`

	// Label of the last balance change
	// default: Job Application
	LastAction string `json:"lastAction"`

	// Incremented on every balance change
	Version int64 `json:"version"`
}

// NewGetWalletHandler returns an HTTP handler for fetching the caller's wallet.
// A first request creates the wallet with a zero balance.
// @Summary Get wallet
// @Description Returns the token balance of the authenticated user
// @Tags wallet
// @Produce json
// @Success 200 {object} handlers.WalletResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 503 {object} handlers.ErrorResponse "Store unavailable"
// @Router /wallet [get]
// @Security BearerAuth
func NewGetWalletHandler(walletReader WalletReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := userID(w, r)
		if !ok {
			return
		}

		wallet, err := walletReader.GetOrCreateWallet(r.Context(), uid)
		if err != nil {
			logger.Log.Errorw("failed to get wallet", "userID", uid, "error", err)
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, WalletResponse{
			Balance:    wallet.Balance,
			LastAction: wallet.LastAction,
			Version:    wallet.Version,
		})
	}
}

// NewListTransactionsHandler returns an HTTP handler for the transaction history.
// @Summary List transactions
// @Description Returns the caller's ledger entries, newest first
// @Tags wallet
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Entries to skip"
// @Success 200 {object} services.TransactionPage
// @Failure 400 {object} handlers.ErrorResponse "Invalid paging parameters"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 503 {object} handlers.ErrorResponse "Store unavailable"
// @Router /wallet/transactions [get]
// @Security BearerAuth
func NewListTransactionsHandler(transactions TransactionReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := userID(w, r)
		if !ok {
			return
		}

		limit, err := queryInt(r, "limit")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		offset, err := queryInt(r, "offset")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid offset")
			return
		}

		page, err := transactions.ListTransactions(r.Context(), uid, limit, offset)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if page.Transactions == nil {
			page.Transactions = []models.Transaction{}
		}

		writeJSON(w, http.StatusOK, page)
	}
}

// queryInt parses an optional non-negative integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, strconv.ErrRange
	}
	return v, nil
}

// RegisterWalletHandlers registers the wallet read routes
func RegisterWalletHandlers(r chi.Router, getWallet, listTransactions http.HandlerFunc) {
	r.Get("/wallet", getWallet)
	r.Get("/wallet/transactions", listTransactions)
}
