package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
	"github.com/sbilibin2017/gw-token-ledger/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestGetWalletHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := NewMockWalletReader(ctrl)
	userID := uuid.New()

	tests := []struct {
		name           string
		authenticated  bool
		setupMocks     func()
		expectedStatus int
		expectedBody   *WalletResponse
	}{
		{
			name:          "successful wallet fetch",
			authenticated: true,
			setupMocks: func() {
				mockReader.EXPECT().GetOrCreateWallet(gomock.Any(), userID).
					Return(&models.Wallet{UserID: userID, Balance: 12, LastAction: "Token Purchase", Version: 4}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   &WalletResponse{Balance: 12, LastAction: "Token Purchase", Version: 4},
		},
		{
			name:           "unauthorized",
			setupMocks:     func() {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:          "store unavailable",
			authenticated: true,
			setupMocks: func() {
				mockReader.EXPECT().GetOrCreateWallet(gomock.Any(), userID).
					Return(nil, services.ErrStoreUnavailable)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:          "unexpected error",
			authenticated: true,
			setupMocks: func() {
				mockReader.EXPECT().GetOrCreateWallet(gomock.Any(), userID).
					Return(nil, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMocks()

			req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet", nil)
			if tt.authenticated {
				req = authenticated(req, userID)
			}
			rr := httptest.NewRecorder()

			NewGetWalletHandler(mockReader).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedBody != nil {
				var body WalletResponse
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				assert.Equal(t, *tt.expectedBody, body)
			} else {
				var body ErrorResponse
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				assert.NotEmpty(t, body.Error)
			}
		})
	}
}

func TestListTransactionsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := NewMockTransactionReader(ctrl)
	userID := uuid.New()

	tests := []struct {
		name           string
		query          string
		setupMocks     func()
		expectedStatus int
	}{
		{
			name:  "defaults",
			query: "",
			setupMocks: func() {
				mockReader.EXPECT().ListTransactions(gomock.Any(), userID, 0, 0).
					Return(&services.TransactionPage{Limit: 20}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "explicit paging",
			query: "?limit=5&offset=10",
			setupMocks: func() {
				mockReader.EXPECT().ListTransactions(gomock.Any(), userID, 5, 10).
					Return(&services.TransactionPage{
						Transactions: []models.Transaction{{ID: uuid.New(), UserID: userID, TokensIn: 4}},
						Total:        11,
						Limit:        5,
						Offset:       10,
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid limit",
			query:          "?limit=abc",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative offset",
			query:          "?offset=-1",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "store unavailable",
			query: "",
			setupMocks: func() {
				mockReader.EXPECT().ListTransactions(gomock.Any(), userID, 0, 0).
					Return(nil, services.ErrStoreUnavailable)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMocks()

			req := authenticated(httptest.NewRequest(http.MethodGet, "/api/v1/wallet/transactions"+tt.query, nil), userID)
			rr := httptest.NewRecorder()

			NewListTransactionsHandler(mockReader).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				var page services.TransactionPage
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&page))
				assert.NotNil(t, page.Transactions)
			}
		})
	}
}
