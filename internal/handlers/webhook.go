package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-token-ledger/internal/logger"
	"github.com/sbilibin2017/gw-token-ledger/internal/metrics"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
	"github.com/sbilibin2017/gw-token-ledger/internal/payments"
)

//go:generate mockgen -source=webhook.go -destination=webhook_mock.go -package=handlers

// MaxWebhookBodySize bounds the payment provider payload.
const MaxWebhookBodySize = 1 << 20

// PaymentConfirmer applies verified payment events.
type PaymentConfirmer interface {
	Confirm(ctx context.Context, event models.PaymentEvent) (*payments.Result, error)
}

// NewPaymentWebhookHandler returns the payment provider webhook.
// The signature is checked over the raw body before anything is parsed. A verified
// event always answers 200 unless the credit could not even be queued: malformed
// events are acknowledged as ignored and logged for reconciliation, and
// ledger_applied tells a credit from one queued for redelivery.
// @Summary Payment webhook
// @Description Credits tokens for a verified charge.success event
// @Tags payments
// @Accept json
// @Produce json
// @Param X-Signature header string true "Hex HMAC-SHA512 of the body"
// @Param event body models.PaymentEvent true "Payment event"
// @Success 200 {object} payments.Result
// @Failure 400 {object} handlers.ErrorResponse "Unreadable body"
// @Failure 401 {object} handlers.ErrorResponse "Signature mismatch"
// @Failure 429 {object} handlers.ErrorResponse "Too many requests"
// @Failure 500 {object} handlers.ErrorResponse "Credit could not be queued"
// @Router /payments/webhook [post]
func NewPaymentWebhookHandler(confirmer PaymentConfirmer, secret []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxWebhookBodySize))
		if err != nil {
			metrics.RecordWebhook("malformed")
			writeError(w, http.StatusBadRequest, "Unreadable body")
			return
		}

		if err := payments.VerifySignature(secret, body, r.Header.Get(payments.SignatureHeader)); err != nil {
			metrics.RecordWebhook("signature_mismatch")
			logger.Log.Warnw("payment webhook rejected", "remote", r.RemoteAddr, "error", err)
			writeError(w, http.StatusUnauthorized, "Signature mismatch")
			return
		}

		var event models.PaymentEvent
		if err := json.Unmarshal(body, &event); err != nil {
			logger.Log.Errorw("verified payment webhook is not valid JSON, needs reconciliation",
				"body", string(body), "error", err)
			acknowledgeMalformed(w, "")
			return
		}

		result, err := confirmer.Confirm(r.Context(), event)
		if err != nil {
			if errors.Is(err, payments.ErrMalformedEvent) {
				logger.Log.Errorw("verified payment event is malformed, needs reconciliation",
					"reference", event.Data.Reference, "userID", event.Data.Metadata.UserID, "amount", event.Data.Amount, "error", err)
				acknowledgeMalformed(w, event.Data.Reference)
				return
			}
			logger.Log.Errorw("payment event not applied", "reference", event.Data.Reference, "error", err)
			metrics.RecordWebhook("failed")
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		metrics.RecordWebhook(string(result.Outcome))
		writeJSON(w, http.StatusOK, result)
	}
}

// acknowledgeMalformed answers 200 so the provider stops redelivering an event
// that can never be applied.
func acknowledgeMalformed(w http.ResponseWriter, reference string) {
	metrics.RecordWebhook("malformed")
	writeJSON(w, http.StatusOK, payments.Result{Outcome: payments.OutcomeIgnored, Reference: reference})
}

// RegisterPaymentWebhookHandler registers the webhook route
func RegisterPaymentWebhookHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/payments/webhook", h)
}
