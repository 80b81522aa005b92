package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-ledger/internal/logger"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
	"github.com/sbilibin2017/gw-token-ledger/internal/services"
)

//go:generate mockgen -source=promotion.go -destination=promotion_mock.go -package=handlers

// Promoter quotes and buys promotions.
type Promoter interface {
	QuotePromotion(ctx context.Context, userID uuid.UUID, req services.PromotionRequest) (*services.PromotionQuote, error)
	PromoteEntity(ctx context.Context, userID uuid.UUID, req services.PromotionRequest) (*services.PromotionResult, error)
}

// AlreadyPromotedResponse is returned with 409 for a job whose promotion is still running.
// swagger:model AlreadyPromotedResponse
type AlreadyPromotedResponse struct {
	// Error message
	// default: Already promoted
	Error string `json:"error"`

	// Tag of the running promotion
	// default: gold
	Tag models.PromotionTag `json:"tag"`

	// End of the running promotion
	ExpiresAt time.Time `json:"expiresAt"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewQuotePromotionHandler returns an HTTP handler that previews a promotion.
// @Summary Quote a promotion
// @Description Returns cost, affordability and the resulting expiry without charging
// @Tags promotions
// @Produce json
// @Param entityId query string true "Job or profile ID"
// @Param entityKind query string true "job or profile"
// @Param plan query string true "silver, gold or premium"
// @Success 200 {object} services.PromotionQuote
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Not the owner"
// @Failure 404 {object} handlers.ErrorResponse "Entity not found"
// @Router /promotions/quote [get]
// @Security BearerAuth
func NewQuotePromotionHandler(promoter Promoter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := userID(w, r)
		if !ok {
			return
		}

		q := r.URL.Query()
		entityID, err := uuid.Parse(q.Get("entityId"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid entityId")
			return
		}
		req := services.PromotionRequest{
			EntityID:   entityID,
			EntityKind: models.EntityKind(q.Get("entityKind")),
			Plan:       models.PromotionTag(q.Get("plan")),
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		quote, err := promoter.QuotePromotion(r.Context(), uid, req)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, quote)
	}
}

// NewPromoteHandler returns an HTTP handler that buys a promotion.
// Cost and duration come from the pricing table, never from the request.
// @Summary Promote a job or profile
// @Description Charges the plan cost and tags the entity. An active profile promotion is extended.
// @Tags promotions
// @Accept json
// @Produce json
// @Param request body services.PromotionRequest true "Promotion request"
// @Success 200 {object} services.PromotionResult
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 402 {object} handlers.FundingPromptResponse "Insufficient balance"
// @Failure 403 {object} handlers.ErrorResponse "Not the owner"
// @Failure 404 {object} handlers.ErrorResponse "Entity not found"
// @Failure 409 {object} handlers.AlreadyPromotedResponse "Already promoted"
// @Failure 503 {object} handlers.ErrorResponse "Store unavailable"
// @Router /promotions [post]
// @Security BearerAuth
func NewPromoteHandler(promoter Promoter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := userID(w, r)
		if !ok {
			return
		}

		var req services.PromotionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		result, err := promoter.PromoteEntity(r.Context(), uid, req)
		if err != nil {
			var promoted *services.AlreadyPromotedError
			switch {
			case errors.As(err, &promoted):
				writeJSON(w, http.StatusConflict, AlreadyPromotedResponse{
					Error:     "Already promoted",
					Tag:       promoted.Tag,
					ExpiresAt: promoted.ExpiresAt,
				})
			case writeFundingPrompt(w, err):
			default:
				logger.Log.Warnw("promotion rejected", "userID", uid, "entityID", req.EntityID, "error", err)
				writeServiceError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// RegisterPromotionHandlers registers the promotion routes
func RegisterPromotionHandlers(r chi.Router, quote, promote http.HandlerFunc) {
	r.Get("/promotions/quote", quote)
	r.Post("/promotions", promote)
}
