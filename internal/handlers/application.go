package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-ledger/internal/services"
)

//go:generate mockgen -source=application.go -destination=application_mock.go -package=handlers

// ApplicationSpender charges for a job application.
type ApplicationSpender interface {
	SpendForApplication(ctx context.Context, userID, jobID uuid.UUID) (*services.ApplicationResult, error)
}

// FundingPromptResponse is returned with 402 when the balance does not cover the cost.
// The client uses it to offer a token purchase.
// swagger:model FundingPromptResponse
type FundingPromptResponse struct {
	// Error message
	// default: Insufficient balance
	Error string `json:"error"`

	// Current balance in tokens
	// default: 1
	Balance int64 `json:"balance"`

	// Cost of the action in tokens
	// default: 3
	Cost int64 `json:"cost"`

	// Tokens missing to afford the action
	// default: 2
	Shortfall int64 `json:"shortfall"`
}

// writeFundingPrompt answers 402 for an insufficient balance and reports whether it did.
func writeFundingPrompt(w http.ResponseWriter, err error) bool {
	var insufficient *services.InsufficientBalanceError
	if !errors.As(err, &insufficient) {
		return false
	}
	writeJSON(w, http.StatusPaymentRequired, FundingPromptResponse{
		Error:     "Insufficient balance",
		Balance:   insufficient.Balance,
		Cost:      insufficient.Cost,
		Shortfall: insufficient.Shortfall(),
	})
	return true
}

// NewApplyToJobHandler returns an HTTP handler that charges for a job application.
// @Summary Apply to a job
// @Description Spends the application cost and records the application
// @Tags applications
// @Produce json
// @Param jobID path string true "Job ID"
// @Success 201 {object} services.ApplicationResult
// @Failure 400 {object} handlers.ErrorResponse "Invalid job id"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 402 {object} handlers.FundingPromptResponse "Insufficient balance"
// @Failure 404 {object} handlers.ErrorResponse "Job not found"
// @Failure 409 {object} handlers.ErrorResponse "Already applied"
// @Failure 503 {object} handlers.ErrorResponse "Store unavailable"
// @Router /jobs/{jobID}/applications [post]
// @Security BearerAuth
func NewApplyToJobHandler(spender ApplicationSpender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := userID(w, r)
		if !ok {
			return
		}

		jobID, err := uuid.Parse(chi.URLParam(r, "jobID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid job id")
			return
		}

		result, err := spender.SpendForApplication(r.Context(), uid, jobID)
		if err != nil {
			if writeFundingPrompt(w, err) {
				return
			}
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, result)
	}
}

// RegisterApplyToJobHandler registers the job application route
func RegisterApplyToJobHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/jobs/{jobID}/applications", h)
}
