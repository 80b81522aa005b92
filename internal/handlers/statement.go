package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-ledger/internal/services"
)

//go:generate mockgen -source=statement.go -destination=statement_mock.go -package=handlers

// StatementExporter creates and removes CSV statements.
type StatementExporter interface {
	Export(ctx context.Context, userID uuid.UUID) (*services.Statement, error)
	Delete(ctx context.Context, userID, statementID uuid.UUID) error
}

// NewExportStatementHandler returns an HTTP handler that exports the history as CSV.
// @Summary Export statement
// @Description Uploads the caller's transaction history as CSV and returns its URL
// @Tags wallet
// @Produce json
// @Success 201 {object} services.Statement
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 503 {object} handlers.ErrorResponse "Store unavailable"
// @Router /wallet/statements [post]
// @Security BearerAuth
func NewExportStatementHandler(exporter StatementExporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := userID(w, r)
		if !ok {
			return
		}

		statement, err := exporter.Export(r.Context(), uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, statement)
	}
}

// NewDeleteStatementHandler returns an HTTP handler that removes an exported statement.
// @Summary Delete statement
// @Tags wallet
// @Param statementID path string true "Statement ID"
// @Success 204
// @Failure 400 {object} handlers.ErrorResponse "Invalid statement id"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Statement not found"
// @Router /wallet/statements/{statementID} [delete]
// @Security BearerAuth
func NewDeleteStatementHandler(exporter StatementExporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := userID(w, r)
		if !ok {
			return
		}

		statementID, err := uuid.Parse(chi.URLParam(r, "statementID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid statement id")
			return
		}

		if err := exporter.Delete(r.Context(), uid, statementID); err != nil {
			writeServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// RegisterStatementHandlers registers the statement routes
func RegisterStatementHandlers(r chi.Router, export, remove http.HandlerFunc) {
	r.Post("/wallet/statements", export)
	r.Delete("/wallet/statements/{statementID}", remove)
}
