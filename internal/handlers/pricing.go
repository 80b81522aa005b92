package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
	"github.com/sbilibin2017/gw-token-ledger/internal/pricing"
)

//go:generate mockgen -source=pricing.go -destination=pricing_mock.go -package=handlers

// PricingReader exposes the active price list.
type PricingReader interface {
	Pricing() *pricing.Table
}

// PricingResponse represents the price list
// swagger:model PricingResponse
type PricingResponse struct {
	// Tokens charged per job application
	// default: 3
	ApplicationCost int64 `json:"applicationCost"`

	// Price of one token in major currency units
	// default: 250
	PricePerToken int64 `json:"pricePerToken"`

	// Promotion plans ordered by cost
	Plans []models.PromotionPlan `json:"plans"`
}

// NewGetPricingHandler returns an HTTP handler for the price list.
// @Summary Get pricing
// @Description Returns the application cost and the promotion plans
// @Tags pricing
// @Produce json
// @Success 200 {object} handlers.PricingResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /pricing [get]
// @Security BearerAuth
func NewGetPricingHandler(reader PricingReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table := reader.Pricing()
		writeJSON(w, http.StatusOK, PricingResponse{
			ApplicationCost: table.ApplicationCost,
			PricePerToken:   table.PricePerToken,
			Plans:           table.PlanList(),
		})
	}
}

// RegisterGetPricingHandler registers the pricing route
func RegisterGetPricingHandler(r chi.Router, h http.HandlerFunc) {
	r.Get("/pricing", h)
}
